// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mapping - typed records over storage namespaces
//
// Item holds a single value, Map holds one value per string key and
// IndexedMap is a Map that keeps one or more secondary indexes in step
// with every Save and Remove.
//
// All operations take the storage.Access to use as their first
// argument; nothing here holds a database handle or locks anything.
// Pass a storage.Transaction so that the several writes of one Save or
// Remove commit together.
package mapping
