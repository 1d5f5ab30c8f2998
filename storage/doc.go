// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// This maintains a LevelDB database split into a series of
// namespaces.  Each namespace is identified by a short tag that is
// registered once and never reused for a different logical map.
//
// Notes:
// 1. ++            = concatenation of byte data
// 2. tag           = namespace tag, 1..64 bytes
// 3. len16(x)      = big endian uint16 byte count of x
// 4. primary key   = caller supplied string, stored as raw bytes
// 5. secondary key = bytes derived from a record by an index function
//
// Layout:
//
//	len16(tag) ++ tag ++ primary key
//	                             - primary record
//	                               data: packed record
//
//	len16(tag) ++ tag
//	                             - singleton item (e.g. counter)
//	                               data: packed item
//
//	len16(tag) ++ tag ++ len16(secondary key) ++ secondary key ++ primary key
//	                             - secondary index entry
//	                               data: empty
//
//	00 'V' 'E' 'R' 'S' 'I' 'O' 'N'
//	                             - database version
//	                               data: big endian uint32
//
// Since tags are at most 64 bytes every namespace begins 00 ≤40 and
// cannot overlap the version key.  The length prefix on the tag means
// no namespace is a prefix of another, and the length prefix on the
// secondary key means an index scan for one secondary key never
// returns entries of a longer secondary key that shares its bytes.
package storage
