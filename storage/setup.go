// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenstore/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - handle to an open LevelDB database
//
// the handle is passed explicitly to every map operation, either
// directly or through a Transaction obtained from Begin
//
// LevelDB holds its write lock while a transaction is open so Put and
// Delete on the Database block until that transaction ends
type Database struct {
	sync.RWMutex
	db       *leveldb.DB
	cache    Cache
	log      *logger.L
	readOnly bool
	inUse    bool // a transaction is open
}

// Open - open or create a database directory
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	d, err := newDatabase(db, readOnly)
	if nil != err {
		db.Close()
		return nil, err
	}
	d.log.Infof("opened: %q  read only: %t", name, readOnly)
	return d, nil
}

// NewMemory - a database held entirely in memory, contents are lost on Close
func NewMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	d, err := newDatabase(db, ReadWrite)
	if nil != err {
		db.Close()
		return nil, err
	}
	return d, nil
}

func newDatabase(db *leveldb.DB, readOnly bool) (*Database, error) {
	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleDatabaseVersion
	}

	if 0 == version {
		if readOnly {
			log.Critical("read only database has no version")
			return nil, fault.ErrIncompatibleDatabaseVersion
		}
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	} else if version < currentDBVersion {
		log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleDatabaseVersion
	}

	return &Database{
		db:       db,
		cache:    newCache(),
		log:      log,
		readOnly: readOnly,
	}, nil
}

// Close - close the database, the handle is unusable afterwards
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.cache.Clear()
	d.log.Info("closed")
	return err
}

// Get - read a value, the second result is false if the key is absent
//
// this returns the cached element - copy the result if it must be modified
func (d *Database) Get(key []byte) ([]byte, bool, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, false, fault.ErrDatabaseIsNotSet
	}

	if value, found := d.cache.Get(string(key)); found {
		return value, true, nil
	}

	d.log.Tracef("cache miss: %x", key)
	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, err
	}
	d.cache.Set(dbPut, string(key), value)
	return value, true, nil
}

// Has - check if a key exists
func (d *Database) Has(key []byte) (bool, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return false, fault.ErrDatabaseIsNotSet
	}
	if _, found := d.cache.Get(string(key)); found {
		return true, nil
	}
	return d.db.Has(key, nil)
}

// Put - store a key/value bytes pair, durable on return
func (d *Database) Put(key []byte, value []byte) error {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.ErrDatabaseIsNotSet
	}
	if err := d.db.Put(key, value, nil); nil != err {
		return err
	}
	d.cache.Set(dbPut, string(key), value)
	return nil
}

// Delete - remove a key, absent keys are not an error
func (d *Database) Delete(key []byte) error {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.ErrDatabaseIsNotSet
	}
	if err := d.db.Delete(key, nil); nil != err {
		return err
	}
	d.cache.Set(dbDelete, string(key), nil)
	return nil
}

// Iterator - iterate over the committed data in a key range
//
// the caller must Release the iterator
func (d *Database) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return iterator.NewEmptyIterator(fault.ErrDatabaseIsNotSet)
	}
	return d.db.NewIterator(searchRange, nil)
}

// Update - run a function inside a transaction
//
// commits if the function returns nil, otherwise aborts and returns
// the function's error unchanged
func (d *Database) Update(f func(Access) error) error {
	trx, err := d.Begin()
	if nil != err {
		return err
	}
	if err := f(trx); nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// return the stored version, zero if absent
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fault.ErrIncompatibleDatabaseVersion
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
