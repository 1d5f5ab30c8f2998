// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

import (
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/storage"
)

// Map - one record per primary key
type Map[T any] struct {
	namespace *storage.Namespace
	codec     Codec[T]
}

// NewMap - create a map over a namespace
func NewMap[T any](namespace *storage.Namespace, codec Codec[T]) *Map[T] {
	return &Map[T]{
		namespace: namespace,
		codec:     codec,
	}
}

// Namespace - the namespace holding the records
func (m *Map[T]) Namespace() *storage.Namespace {
	return m.namespace
}

// Load - fetch a record, fails with fault.ErrNotFound if absent
func (m *Map[T]) Load(access storage.Access, key string) (T, error) {
	value, found, err := m.MayLoad(access, key)
	if nil != err {
		return value, err
	}
	if !found {
		return value, fault.ErrNotFound
	}
	return value, nil
}

// MayLoad - fetch a record, second result is false if absent
func (m *Map[T]) MayLoad(access storage.Access, key string) (T, bool, error) {
	var value T
	buffer, found, err := access.Get(m.namespace.Key([]byte(key)))
	if nil != err || !found {
		return value, false, err
	}
	value, err = m.codec.Unpack(buffer)
	if nil != err {
		return value, false, err
	}
	return value, true, nil
}

// Has - check if a record exists
func (m *Map[T]) Has(access storage.Access, key string) (bool, error) {
	return access.Has(m.namespace.Key([]byte(key)))
}

// Save - store a record, replacing any previous one
func (m *Map[T]) Save(access storage.Access, key string, value T) error {
	if 0 == len(key) {
		return fault.ErrInvalidKeyLength
	}
	buffer, err := m.codec.Pack(value)
	if nil != err {
		return err
	}
	return access.Put(m.namespace.Key([]byte(key)), buffer)
}

// Remove - delete a record, no error if absent
func (m *Map[T]) Remove(access storage.Access, key string) error {
	return access.Delete(m.namespace.Key([]byte(key)))
}

// Range - records in ascending key order
//
// start is exclusive, empty to begin at the first key; the returned
// key is the start for the next call, empty when no records remain
func (m *Map[T]) Range(access storage.Access, start string, count int) ([]Pair[T], string, error) {
	if count <= 0 {
		return nil, "", fault.ErrInvalidCount
	}

	cursor := m.namespace.NewFetchCursor()
	if "" != start {
		cursor.After([]byte(start))
	}

	elements, err := cursor.Fetch(access, count+1)
	if nil != err {
		return nil, "", err
	}

	next := ""
	if len(elements) > count {
		elements = elements[:count]
		next = string(elements[count-1].Key)
	}

	results := make([]Pair[T], 0, len(elements))
	for _, e := range elements {
		value, err := m.codec.Unpack(e.Value)
		if nil != err {
			return nil, "", err
		}
		results = append(results, Pair[T]{Key: string(e.Key), Value: value})
	}
	return results, next, nil
}
