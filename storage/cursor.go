// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/tokenstore/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	namespace *Namespace
	floor     []byte // start of the cursor's range
	maxRange  ldb_util.Range
}

// NewFetchCursor - initialise a cursor to the start of a namespace
func (n *Namespace) NewFetchCursor() *FetchCursor {
	return newFetchCursor(n, n.Range())
}

// NewPrefixCursor - initialise a cursor restricted to keys that begin
// with prefix (excluding the namespace prefix)
func (n *Namespace) NewPrefixCursor(prefix []byte) *FetchCursor {
	return newFetchCursor(n, n.PrefixRange(prefix))
}

func newFetchCursor(n *Namespace, r *ldb_util.Range) *FetchCursor {
	return &FetchCursor{
		namespace: n,
		floor:     append([]byte(nil), r.Start...),
		maxRange:  *r,
	}
}

// Seek - move cursor to the first key at or after key
//
// may move backwards, but never before the start of the range the
// cursor was created with
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	start := cursor.namespace.Key(key)
	if bytes.Compare(start, cursor.floor) < 0 {
		start = append([]byte(nil), cursor.floor...)
	}
	cursor.maxRange.Start = start
	return cursor
}

// After - move cursor to the first key strictly after key
func (cursor *FetchCursor) After(key []byte) *FetchCursor {
	next := make([]byte, len(key)+1) // key ++ 0x00 is the immediate successor
	copy(next, key)
	return cursor.Seek(next)
}

// Fetch - return up to count elements and advance the cursor past them
//
// element keys exclude the namespace prefix
func (cursor *FetchCursor) Fetch(access Access, count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if nil == access {
		return nil, fault.ErrDatabaseIsNotSet
	}

	iter := access.Iterator(&cursor.maxRange)

	results := make([]Element, 0, count)
	var lastKey []byte
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		lastKey = append(lastKey[:0], key...)

		dataKey := make([]byte, len(key)-len(cursor.namespace.prefix)) // strip the prefix
		copy(dataKey, key[len(cursor.namespace.prefix):])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	if nil != lastKey {
		cursor.maxRange.Start = append(lastKey, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
//
// stops at the first error returned by the function
func (cursor *FetchCursor) Map(access Access, f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}
	if nil == access {
		return fault.ErrDatabaseIsNotSet
	}

	iter := access.Iterator(&cursor.maxRange)

	var err error
iterating:
	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-len(cursor.namespace.prefix))
		copy(dataKey, key[len(cursor.namespace.prefix):])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
