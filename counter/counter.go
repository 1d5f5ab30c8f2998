// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"encoding/binary"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/storage"
)

// stored as an 8 byte big endian value
const packedLength = 8

// Counter - a durable unsigned count that starts at zero and only
// moves upwards
//
// not synchronised: the caller must hold exclusive access to the
// store, normally by running inside a storage.Transaction
type Counter struct {
	item *mapping.Item[uint64]
}

var codec = mapping.Codec[uint64]{
	Pack:   pack,
	Unpack: unpack,
}

// New - create a counter stored at the bare key of a namespace
func New(namespace *storage.Namespace) *Counter {
	return &Counter{
		item: mapping.NewItem(namespace, codec),
	}
}

// Load - current value, zero if never saved
func (c *Counter) Load(access storage.Access) (uint64, error) {
	value, _, err := c.item.MayLoad(access)
	if nil != err {
		return 0, err
	}
	return value, nil
}

// IncrementAndSave - store the current value plus one and return it
func (c *Counter) IncrementAndSave(access storage.Access) (uint64, error) {
	value, err := c.Load(access)
	if nil != err {
		return 0, err
	}
	if ^uint64(0) == value {
		return 0, fault.ErrCounterOverflow
	}
	value += 1
	if err := c.item.Save(access, value); nil != err {
		return 0, err
	}
	return value, nil
}

func pack(value uint64) ([]byte, error) {
	buffer := make([]byte, packedLength)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer, nil
}

func unpack(buffer []byte) (uint64, error) {
	if packedLength != len(buffer) {
		return 0, fault.ErrNotCounterPack
	}
	return binary.BigEndian.Uint64(buffer), nil
}
