// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheWriteThenRead(t *testing.T) {
	c := newCache()

	key := "test"
	expected := []byte{'a', 'b', 'c', 'd'}

	actual, found := c.Get(key)
	assert.False(t, found, "key already exists")
	assert.Nil(t, actual, "absent value")

	c.Set(dbPut, key, expected)
	actual, found = c.Get(key)
	assert.True(t, found, "key not found after set")
	assert.Equal(t, expected, actual, "wrong value")
}

func TestCacheCopiesValue(t *testing.T) {
	c := newCache()

	buffer := []byte{'a', 'b'}
	c.Set(dbPut, "k", buffer)
	buffer[0] = 'z'

	actual, found := c.Get("k")
	assert.True(t, found, "key not found")
	assert.Equal(t, []byte{'a', 'b'}, actual, "cache shares caller buffer")
}

func TestCacheClear(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "test", []byte{'a'})
	c.Clear()

	_, found := c.Get("test")
	assert.False(t, found, "clear did not empty the cache")
}

func TestCacheDeleteOperation(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "test", []byte{'a'})
	c.Set(dbDelete, "test", nil)

	_, found := c.Get("test")
	assert.False(t, found, "deleted key should not be found")
}
