// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

import (
	"github.com/bitmark-inc/tokenstore/storage"
)

// Index - a secondary index definition
//
// Derive must be a pure function of the record: it is applied to both
// the stored and the new value on every Save to work out which entries
// to remove and add
type Index[T any] struct {
	Name      string
	Namespace *storage.Namespace
	Derive    func(T) []byte
}

// full key of the entry pointing at primary for this value
func (idx *Index[T]) entryKey(value T, primary string) ([]byte, error) {
	return idx.Namespace.IndexKey(idx.Derive(value), []byte(primary))
}
