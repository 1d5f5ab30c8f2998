// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - ordered byte store as seen by the map layer
//
// implemented by both Database (each write applied immediately) and
// Transaction (all writes applied together on Commit)
type Access interface {
	Get([]byte) ([]byte, bool, error)
	Has([]byte) (bool, error)
	Put([]byte, []byte) error
	Delete([]byte) error
	Iterator(*ldb_util.Range) iterator.Iterator
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// both handles satisfy Access
var (
	_ Access = (*Database)(nil)
	_ Access = (*Transaction)(nil)
)
