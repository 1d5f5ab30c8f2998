// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/counter"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/storage"
	"github.com/bitmark-inc/tokenstore/storage/mocks"
)

func TestCounter(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("num_tokens")
	c := counter.New(n)

	value, err := c.Load(db)
	assert.Nil(t, err, "load error")
	assert.Equal(t, uint64(0), value, "counter is not zero at start")

	for i := uint64(1); i <= 5; i += 1 {
		value, err := c.IncrementAndSave(db)
		assert.Nil(t, err, "increment error")
		assert.Equal(t, i, value, "wrong increment result")
	}

	value, err = c.Load(db)
	assert.Nil(t, err, "load error")
	assert.Equal(t, uint64(5), value, "counter is not 5 after incrementing")

	stored, found, err := db.Get(n.Key(nil))
	assert.Nil(t, err, "get error")
	assert.True(t, found, "counter not stored")
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 5}, stored, "wrong stored format")
}

func TestCounterDurable(t *testing.T) {
	dir := t.TempDir()
	name := dir + "/counter.leveldb"

	n, _ := storage.NewNamespace("num_tokens")

	db, err := storage.Open(name, storage.ReadWrite)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	c := counter.New(n)
	for i := 0; i < 3; i += 1 {
		_, err := c.IncrementAndSave(db)
		assert.Nil(t, err, "increment error")
	}
	db.Close()

	db, err = storage.Open(name, storage.ReadOnly)
	if nil != err {
		t.Fatalf("reopen error: %s", err)
	}
	defer db.Close()

	value, err := counter.New(n).Load(db)
	assert.Nil(t, err, "load error")
	assert.Equal(t, uint64(3), value, "counter not durable")
}

func TestCounterAbortedIncrement(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("num_tokens")
	c := counter.New(n)
	_, _ = c.IncrementAndSave(db)

	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	value, err := c.IncrementAndSave(trx)
	assert.Nil(t, err, "increment error")
	assert.Equal(t, uint64(2), value, "wrong value inside transaction")
	trx.Abort()

	value, err = c.Load(db)
	assert.Nil(t, err, "load error")
	assert.Equal(t, uint64(1), value, "aborted increment visible")
}

func TestCounterErrors(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("broken")
	c := counter.New(n)

	assert.Nil(t, db.Put(n.Key(nil), []byte{1, 2, 3}), "put error")
	_, err = c.Load(db)
	assert.Equal(t, fault.ErrNotCounterPack, err, "short value accepted")

	assert.Nil(t, db.Put(n.Key(nil), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}), "put error")
	_, err = c.IncrementAndSave(db)
	assert.Equal(t, fault.ErrCounterOverflow, err, "counter wrapped")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	access := mocks.NewMockAccess(ctl)
	failure := errors.New("store failed")

	gomock.InOrder(
		access.EXPECT().Get(n.Key(nil)).Return([]byte{0, 0, 0, 0, 0, 0, 0, 7}, true, nil).Times(1),
		access.EXPECT().Put(n.Key(nil), []byte{0, 0, 0, 0, 0, 0, 0, 8}).Return(failure).Times(1),
	)
	_, err = c.IncrementAndSave(access)
	assert.Equal(t, failure, err, "store error changed")
}
