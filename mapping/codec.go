// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping

// Codec - convert a value to and from its stored bytes
type Codec[T any] struct {
	Pack   func(T) ([]byte, error)
	Unpack func([]byte) (T, error)
}

// Pair - a primary key and its record
type Pair[T any] struct {
	Key   string
	Value T
}
