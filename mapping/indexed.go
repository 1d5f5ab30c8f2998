// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

import (
	"bytes"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/storage"
)

// value of every index entry
var emptyValue = []byte{}

// IndexedMap - a Map whose secondary indexes are maintained on every write
//
// the index list is fixed at construction
type IndexedMap[T any] struct {
	primary *Map[T]
	indexes []Index[T]
}

// NewIndexedMap - create a map with its indexes
//
// panics if an index is incomplete, two indexes share a name or an
// index shares a namespace with the records or another index
func NewIndexedMap[T any](namespace *storage.Namespace, codec Codec[T], indexes ...Index[T]) *IndexedMap[T] {
	seenNames := make(map[string]struct{})
	seenNamespaces := map[*storage.Namespace]struct{}{
		namespace: {},
	}
	for _, idx := range indexes {
		if "" == idx.Name || nil == idx.Namespace || nil == idx.Derive {
			fault.Panicf("indexed map: %q  incomplete index: %q", namespace.Tag(), idx.Name)
		}
		if _, ok := seenNames[idx.Name]; ok {
			fault.Panicf("indexed map: %q  index: %q  error: %s", namespace.Tag(), idx.Name, fault.ErrDuplicateIndex)
		}
		if _, ok := seenNamespaces[idx.Namespace]; ok {
			fault.Panicf("indexed map: %q  index: %q  error: %s", namespace.Tag(), idx.Name, fault.ErrDuplicateNamespace)
		}
		seenNames[idx.Name] = struct{}{}
		seenNamespaces[idx.Namespace] = struct{}{}
	}

	return &IndexedMap[T]{
		primary: NewMap(namespace, codec),
		indexes: append([]Index[T](nil), indexes...),
	}
}

// Primary - the underlying map of records
//
// writing through it bypasses index maintenance
func (m *IndexedMap[T]) Primary() *Map[T] {
	return m.primary
}

// Load - fetch a record, fails with fault.ErrNotFound if absent
func (m *IndexedMap[T]) Load(access storage.Access, key string) (T, error) {
	return m.primary.Load(access, key)
}

// MayLoad - fetch a record, second result is false if absent
func (m *IndexedMap[T]) MayLoad(access storage.Access, key string) (T, bool, error) {
	return m.primary.MayLoad(access, key)
}

// Has - check if a record exists
func (m *IndexedMap[T]) Has(access storage.Access, key string) (bool, error) {
	return m.primary.Has(access, key)
}

// Range - records in ascending primary key order, see Map.Range
func (m *IndexedMap[T]) Range(access storage.Access, start string, count int) ([]Pair[T], string, error) {
	return m.primary.Range(access, start, count)
}

// Save - store a record and reconcile every index
//
// index entries are written before the record so that an interrupted
// Save on a store without atomic commit leaves at worst an entry whose
// record does not match it, never a record missing from an index
func (m *IndexedMap[T]) Save(access storage.Access, key string, value T) error {
	if 0 == len(key) {
		return fault.ErrInvalidKeyLength
	}

	old, found, err := m.primary.MayLoad(access, key)
	if nil != err {
		return err
	}

	for i := range m.indexes {
		idx := &m.indexes[i]

		newKey, err := idx.entryKey(value, key)
		if nil != err {
			return err
		}

		if found {
			oldKey, err := idx.entryKey(old, key)
			if nil != err {
				return err
			}
			if bytes.Equal(oldKey, newKey) {
				continue
			}
			if err := access.Delete(oldKey); nil != err {
				return err
			}
		}

		if err := access.Put(newKey, emptyValue); nil != err {
			return err
		}
	}

	return m.primary.Save(access, key, value)
}

// Remove - delete a record and its index entries, no error if absent
func (m *IndexedMap[T]) Remove(access storage.Access, key string) error {
	old, found, err := m.primary.MayLoad(access, key)
	if nil != err || !found {
		return err
	}

	for i := range m.indexes {
		oldKey, err := m.indexes[i].entryKey(old, key)
		if nil != err {
			return err
		}
		if err := access.Delete(oldKey); nil != err {
			return err
		}
	}

	return m.primary.Remove(access, key)
}

// RangeByIndex - records whose index value equals secondary, in
// ascending primary key order
//
// start is exclusive, empty to begin at the first key; the returned
// key is the start for the next call, empty when no records remain
func (m *IndexedMap[T]) RangeByIndex(access storage.Access, name string, secondary []byte, start string, count int) ([]Pair[T], string, error) {
	if count <= 0 {
		return nil, "", fault.ErrInvalidCount
	}

	cursor, err := m.NewIndexCursor(name, secondary)
	if nil != err {
		return nil, "", err
	}
	if "" != start {
		cursor.After(start)
	}

	results, err := cursor.Fetch(access, count+1)
	if nil != err {
		return nil, "", err
	}

	next := ""
	if len(results) > count {
		results = results[:count]
		next = results[count-1].Key
	}
	return results, next, nil
}

// find an index by name
func (m *IndexedMap[T]) index(name string) (*Index[T], error) {
	for i := range m.indexes {
		if name == m.indexes[i].Name {
			return &m.indexes[i], nil
		}
	}
	return nil, fault.ErrUnknownIndex
}
