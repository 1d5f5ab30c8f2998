// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"sort"
	"sync"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/tokenstore/fault"
)

// limits on the length prefixed parts of a key
const (
	MaximumTagLength          = 64
	MaximumSecondaryKeyLength = 0xffff

	lengthSize = 2 // bytes in a length prefix
)

// Namespace - a disjoint region of the key space
type Namespace struct {
	tag    string
	prefix []byte
}

// registered namespaces
var registry struct {
	sync.Mutex
	namespaces map[string]*Namespace
}

// NewNamespace - create an unregistered namespace
func NewNamespace(tag string) (*Namespace, error) {
	if 0 == len(tag) || len(tag) > MaximumTagLength {
		return nil, fault.ErrInvalidNamespace
	}

	prefix := make([]byte, lengthSize, lengthSize+len(tag))
	binary.BigEndian.PutUint16(prefix, uint16(len(tag)))
	prefix = append(prefix, tag...)

	return &Namespace{
		tag:    tag,
		prefix: prefix,
	}, nil
}

// Register - create a namespace and record its tag
//
// a tag may only be registered once, any attempt to reuse one is a
// programming error and panics
func Register(tag string) *Namespace {
	n, err := NewNamespace(tag)
	if nil != err {
		fault.Panicf("namespace: %q  error: %s", tag, err)
	}

	registry.Lock()
	defer registry.Unlock()

	if nil == registry.namespaces {
		registry.namespaces = make(map[string]*Namespace)
	}
	if _, ok := registry.namespaces[tag]; ok {
		fault.Panicf("namespace: %q  error: %s", tag, fault.ErrDuplicateNamespace)
	}
	registry.namespaces[tag] = n
	return n
}

// Lookup - find a registered namespace by its tag
func Lookup(tag string) (*Namespace, error) {
	registry.Lock()
	defer registry.Unlock()

	n, ok := registry.namespaces[tag]
	if !ok {
		return nil, fault.ErrUnknownNamespace
	}
	return n, nil
}

// Namespaces - all registered namespaces in tag order
func Namespaces() []*Namespace {
	registry.Lock()
	defer registry.Unlock()

	result := make([]*Namespace, 0, len(registry.namespaces))
	for _, n := range registry.namespaces {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].tag < result[j].tag
	})
	return result
}

// Tag - the namespace tag
func (n *Namespace) Tag() string {
	return n.tag
}

// Key - prepend the namespace prefix onto the key
func (n *Namespace) Key(key []byte) []byte {
	prefixedKey := make([]byte, len(n.prefix), len(n.prefix)+len(key))
	copy(prefixedKey, n.prefix)
	return append(prefixedKey, key...)
}

// IndexPrefix - the part of an index key common to all entries for
// one secondary key
func (n *Namespace) IndexPrefix(secondary []byte) ([]byte, error) {
	if len(secondary) > MaximumSecondaryKeyLength {
		return nil, fault.ErrKeyTooLong
	}
	buffer := make([]byte, len(n.prefix)+lengthSize, len(n.prefix)+lengthSize+len(secondary))
	copy(buffer, n.prefix)
	binary.BigEndian.PutUint16(buffer[len(n.prefix):], uint16(len(secondary)))
	return append(buffer, secondary...), nil
}

// IndexKey - full key of an index entry
func (n *Namespace) IndexKey(secondary []byte, primary []byte) ([]byte, error) {
	prefix, err := n.IndexPrefix(secondary)
	if nil != err {
		return nil, err
	}
	return append(prefix, primary...), nil
}

// StripKey - remove the namespace prefix from a full key
func (n *Namespace) StripKey(fullKey []byte) ([]byte, error) {
	if !bytes.HasPrefix(fullKey, n.prefix) {
		return nil, fault.ErrInvalidKeyLength
	}
	return fullKey[len(n.prefix):], nil
}

// SplitIndexKey - split a full index key into secondary and primary parts
func (n *Namespace) SplitIndexKey(fullKey []byte) ([]byte, []byte, error) {
	key, err := n.StripKey(fullKey)
	if nil != err {
		return nil, nil, err
	}
	if len(key) < lengthSize {
		return nil, nil, fault.ErrInvalidKeyLength
	}
	secondaryLength := int(binary.BigEndian.Uint16(key))
	key = key[lengthSize:]
	if len(key) < secondaryLength {
		return nil, nil, fault.ErrInvalidKeyLength
	}
	return key[:secondaryLength], key[secondaryLength:], nil
}

// Range - the key range covering the whole namespace
func (n *Namespace) Range() *ldb_util.Range {
	return ldb_util.BytesPrefix(n.prefix)
}

// PrefixRange - the key range of all namespace keys beginning with prefix
//
// prefix excludes the namespace prefix
func (n *Namespace) PrefixRange(prefix []byte) *ldb_util.Range {
	return ldb_util.BytesPrefix(n.Key(prefix))
}
