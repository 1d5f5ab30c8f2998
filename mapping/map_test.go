// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/storage"
)

func TestMapSaveLoad(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("plain")
	m := mapping.NewMap(n, thingCodec)

	assert.Equal(t, n, m.Namespace(), "wrong namespace")

	_, err = m.Load(db, "a")
	assert.Equal(t, fault.ErrNotFound, err, "absent record loaded")

	ok, err := m.Has(db, "a")
	assert.Nil(t, err, "has error")
	assert.False(t, ok, "absent record present")

	record := thing{Owner: "alice", Tag: "x", Level: 12345}
	assert.Nil(t, m.Save(db, "a", record), "save error")

	loaded, err := m.Load(db, "a")
	assert.Nil(t, err, "load error")
	assert.Equal(t, record, loaded, "wrong record")

	ok, err = m.Has(db, "a")
	assert.Nil(t, err, "has error")
	assert.True(t, ok, "saved record absent")

	assert.Nil(t, m.Remove(db, "a"), "remove error")
	assert.Nil(t, m.Remove(db, "a"), "second remove error")

	_, found, err := m.MayLoad(db, "a")
	assert.Nil(t, err, "may load error")
	assert.False(t, found, "removed record found")

	assert.Equal(t, fault.ErrInvalidKeyLength, m.Save(db, "", record), "empty key accepted")
}

func TestMapNamespacesAreSeparate(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	// "ab"+"c" and "a"+"bc" must not collide
	n1, _ := storage.NewNamespace("ab")
	n2, _ := storage.NewNamespace("a")
	m1 := mapping.NewMap(n1, thingCodec)
	m2 := mapping.NewMap(n2, thingCodec)

	assert.Nil(t, m1.Save(db, "c", thing{Owner: "one"}), "save error")
	assert.Nil(t, m2.Save(db, "bc", thing{Owner: "two"}), "save error")

	r1, err := m1.Load(db, "c")
	assert.Nil(t, err, "load error")
	assert.Equal(t, "one", r1.Owner, "record overwritten")

	r2, err := m2.Load(db, "bc")
	assert.Nil(t, err, "load error")
	assert.Equal(t, "two", r2.Owner, "record overwritten")

	p1, _, err := m1.Range(db, "", 10)
	assert.Nil(t, err, "range error")
	assert.Equal(t, 1, len(p1), "namespace leaked into range")
}

func TestMapRange(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("ranged")
	m := mapping.NewMap(n, thingCodec)

	for i := 7; i >= 0; i -= 1 {
		assert.Nil(t, m.Save(db, fmt.Sprintf("r%d", i), thing{Level: uint64(i)}), "save error")
	}

	pairs, next, err := m.Range(db, "", 3)
	assert.Nil(t, err, "range error")
	assert.Equal(t, "r2", next, "wrong continuation")
	assert.Equal(t, 3, len(pairs), "wrong count")
	for i, p := range pairs {
		assert.Equal(t, fmt.Sprintf("r%d", i), p.Key, "wrong key")
		assert.Equal(t, uint64(i), p.Value.Level, "wrong value")
	}

	pairs, next, err = m.Range(db, "r5", 10)
	assert.Nil(t, err, "range error")
	assert.Equal(t, "", next, "unexpected continuation")
	assert.Equal(t, []mapping.Pair[thing]{
		{Key: "r6", Value: thing{Level: 6}},
		{Key: "r7", Value: thing{Level: 7}},
	}, pairs, "wrong tail")

	_, _, err = m.Range(db, "", -1)
	assert.Equal(t, fault.ErrInvalidCount, err, "negative count accepted")
}

func TestMapBadRecord(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("bad")
	m := mapping.NewMap(n, thingCodec)

	assert.Nil(t, db.Put(n.Key([]byte("x")), []byte{0x05, 'a'}), "put error")

	_, err = m.Load(db, "x")
	assert.Equal(t, fault.ErrNotTokenPack, err, "truncated record decoded")
}
