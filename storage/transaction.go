// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/tokenstore/fault"
)

// Transaction - a set of writes applied atomically on Commit
//
// reads and iterators see the transaction's own uncommitted writes
type Transaction struct {
	database *Database
	trx      *leveldb.Transaction
	pending  []pendingWrite
	done     bool
}

type pendingWrite struct {
	op    dbOperation
	key   string
	value []byte
}

// Begin - start a transaction
//
// only one transaction may be open on a database at a time
func (d *Database) Begin() (*Transaction, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if d.inUse {
		return nil, fault.ErrTransactionInUse
	}

	trx, err := d.db.OpenTransaction()
	if nil != err {
		return nil, err
	}
	d.inUse = true

	return &Transaction{
		database: d,
		trx:      trx,
	}, nil
}

// Get - read a value, the second result is false if the key is absent
func (t *Transaction) Get(key []byte) ([]byte, bool, error) {
	if t.done {
		return nil, false, fault.ErrTransactionClosed
	}
	value, err := t.trx.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Has - check if a key exists
func (t *Transaction) Has(key []byte) (bool, error) {
	if t.done {
		return false, fault.ErrTransactionClosed
	}
	return t.trx.Has(key, nil)
}

// Put - add a key/value write to the transaction
func (t *Transaction) Put(key []byte, value []byte) error {
	if t.done {
		return fault.ErrTransactionClosed
	}
	if err := t.trx.Put(key, value, nil); nil != err {
		return err
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	t.pending = append(t.pending, pendingWrite{op: dbPut, key: string(key), value: stored})
	return nil
}

// Delete - add a key removal to the transaction
func (t *Transaction) Delete(key []byte) error {
	if t.done {
		return fault.ErrTransactionClosed
	}
	if err := t.trx.Delete(key, nil); nil != err {
		return err
	}
	t.pending = append(t.pending, pendingWrite{op: dbDelete, key: string(key)})
	return nil
}

// Iterator - iterate over committed data merged with this transaction's writes
//
// the caller must Release the iterator
func (t *Transaction) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	if t.done {
		return iterator.NewEmptyIterator(fault.ErrTransactionClosed)
	}
	return t.trx.NewIterator(searchRange, nil)
}

// Commit - apply all writes as a single atomic unit
//
// the transaction is finished whether or not this succeeds
func (t *Transaction) Commit() error {
	if t.done {
		return fault.ErrTransactionClosed
	}
	t.done = true
	defer t.release()

	err := t.trx.Commit()
	if nil != err {
		t.database.log.Errorf("commit of %d writes failed: %s", len(t.pending), err)
		t.trx.Discard()
		return err
	}

	for _, w := range t.pending {
		t.database.cache.Set(w.op, w.key, w.value)
	}
	t.database.log.Debugf("committed %d writes", len(t.pending))
	return nil
}

// Abort - discard all writes
func (t *Transaction) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.trx.Discard()
	t.release()
}

func (t *Transaction) release() {
	t.pending = nil
	t.database.Lock()
	t.database.inUse = false
	t.database.Unlock()
}
