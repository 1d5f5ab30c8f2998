// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/storage"
)

// IndexCursor - position within the entries of one secondary key
type IndexCursor[T any] struct {
	m         *IndexedMap[T]
	index     *Index[T]
	secondary []byte
	prefix    []byte // index entry key after the namespace, up to the primary key
	fetch     *storage.FetchCursor
}

// NewIndexCursor - initialise a cursor to the first entry for secondary
func (m *IndexedMap[T]) NewIndexCursor(name string, secondary []byte) (*IndexCursor[T], error) {
	idx, err := m.index(name)
	if nil != err {
		return nil, err
	}

	fullPrefix, err := idx.Namespace.IndexPrefix(secondary)
	if nil != err {
		return nil, err
	}
	prefix, err := idx.Namespace.StripKey(fullPrefix)
	if nil != err {
		return nil, err
	}

	return &IndexCursor[T]{
		m:         m,
		index:     idx,
		secondary: append([]byte(nil), secondary...),
		prefix:    prefix,
		fetch:     idx.Namespace.NewPrefixCursor(prefix),
	}, nil
}

// Seek - move cursor to the first primary key at or after key
func (cursor *IndexCursor[T]) Seek(key string) *IndexCursor[T] {
	cursor.fetch.Seek(cursor.entry(key))
	return cursor
}

// After - move cursor to the first primary key strictly after key
func (cursor *IndexCursor[T]) After(key string) *IndexCursor[T] {
	cursor.fetch.After(cursor.entry(key))
	return cursor
}

func (cursor *IndexCursor[T]) entry(key string) []byte {
	entry := make([]byte, len(cursor.prefix), len(cursor.prefix)+len(key))
	copy(entry, cursor.prefix)
	return append(entry, key...)
}

// up to count primary keys, without loading the records
func (cursor *IndexCursor[T]) keys(access storage.Access, count int) ([]string, error) {
	elements, err := cursor.fetch.Fetch(access, count)
	if nil != err {
		return nil, err
	}
	keys := make([]string, 0, len(elements))
	for _, e := range elements {
		keys = append(keys, string(e.Key[len(cursor.prefix):]))
	}
	return keys, nil
}

// Fetch - up to count records and advance the cursor past them
//
// an entry whose record is missing is fault.ErrIndexCorruption; an
// entry whose record no longer derives this secondary key is stale
// and is skipped
func (cursor *IndexCursor[T]) Fetch(access storage.Access, count int) ([]Pair[T], error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Pair[T], 0, count)
	for len(results) < count {
		keys, err := cursor.keys(access, count-len(results))
		if nil != err {
			return nil, err
		}
		if 0 == len(keys) {
			break
		}
		for _, key := range keys {
			value, ok, err := cursor.load(access, key)
			if nil != err {
				return nil, err
			}
			if ok {
				results = append(results, Pair[T]{Key: key, Value: value})
			}
		}
	}
	return results, nil
}

// Map - run a function on every record for the secondary key
//
// stops at the first error from the function or from loading
func (cursor *IndexCursor[T]) Map(access storage.Access, f func(key string, value T) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	// collect keys first: the function may write through access
	keys := []string{}
	err := cursor.fetch.Map(access, func(entry []byte, _ []byte) error {
		keys = append(keys, string(entry[len(cursor.prefix):]))
		return nil
	})
	if nil != err {
		return err
	}

	for _, key := range keys {
		value, ok, err := cursor.load(access, key)
		if nil != err {
			return err
		}
		if !ok {
			continue
		}
		if err := f(key, value); nil != err {
			return err
		}
	}
	return nil
}

// dereference one entry
func (cursor *IndexCursor[T]) load(access storage.Access, key string) (T, bool, error) {
	value, found, err := cursor.m.primary.MayLoad(access, key)
	if nil != err {
		return value, false, err
	}
	if !found {
		logger.Criticalf("index: %q  secondary: %x  primary: %q  has no record", cursor.index.Name, cursor.secondary, key)
		return value, false, fault.ErrIndexCorruption
	}
	if !bytes.Equal(cursor.index.Derive(value), cursor.secondary) {
		logger.Criticalf("index: %q  secondary: %x  primary: %q  stale entry skipped", cursor.index.Name, cursor.secondary, key)
		return value, false, nil
	}
	return value, true, nil
}
