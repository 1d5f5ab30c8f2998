// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

import (
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/storage"
)

// Item - a single value stored at the bare namespace key
type Item[T any] struct {
	namespace *storage.Namespace
	codec     Codec[T]
}

// NewItem - create an item in a namespace of its own
func NewItem[T any](namespace *storage.Namespace, codec Codec[T]) *Item[T] {
	return &Item[T]{
		namespace: namespace,
		codec:     codec,
	}
}

// Load - fails with fault.ErrNotFound if never saved
func (item *Item[T]) Load(access storage.Access) (T, error) {
	value, found, err := item.MayLoad(access)
	if nil != err {
		return value, err
	}
	if !found {
		return value, fault.ErrNotFound
	}
	return value, nil
}

// MayLoad - second result is false if never saved
func (item *Item[T]) MayLoad(access storage.Access) (T, bool, error) {
	var value T
	buffer, found, err := access.Get(item.namespace.Key(nil))
	if nil != err || !found {
		return value, false, err
	}
	value, err = item.codec.Unpack(buffer)
	if nil != err {
		return value, false, err
	}
	return value, true, nil
}

// Save - replace the value
func (item *Item[T]) Save(access storage.Access, value T) error {
	buffer, err := item.codec.Pack(value)
	if nil != err {
		return err
	}
	return access.Put(item.namespace.Key(nil), buffer)
}

// Remove - delete the value, no error if absent
func (item *Item[T]) Remove(access storage.Access) error {
	return access.Delete(item.namespace.Key(nil))
}
