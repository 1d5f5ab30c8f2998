// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - recently read or committed values
type Cache interface {
	Get(string) ([]byte, bool)
	Set(dbOperation, string, []byte)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	defaultCleanup    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(defaultExpiration, defaultCleanup),
	}
}

// Get - the second value is false if the key is absent or deleted, in
// both cases the database must be consulted
func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, false
	}

	return data.value, true
}

// Set - the value is copied so the caller may reuse its buffer
func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op: op,
	}
	if dbPut == op {
		cached.value = make([]byte, len(value))
		copy(cached.value, value)
	}
	c.cache.Set(key, cached, cache.DefaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
