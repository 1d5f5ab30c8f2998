// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}
	if err := state.Initialise(); nil != err {
		panic("state setup failed: " + err.Error())
	}

	rc := m.Run()

	_ = state.Finalise()
	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

var (
	alice  = makeAccount(0xa1)
	bob    = makeAccount(0xb0)
	carol  = makeAccount(0xc0)
	minter = makeAccount(0x99)
)

// position used unless a test needs another
var now = expiration.Block{
	Height: 1000,
	Time:   time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
}

func makeAccount(b byte) *account.Account {
	return &account.Account{
		Test:      true,
		PublicKey: bytes.Repeat([]byte{b}, 32),
	}
}

// a fresh contract with its minter set
func setup(t *testing.T) *storage.Database {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	err = state.Setup(db, record.ContractInfo{Name: "Monsters", Symbol: "MON"}, minter)
	if nil != err {
		db.Close()
		t.Fatalf("setup error: %s", err)
	}
	return db
}

func mint(t *testing.T, access storage.Access, tokenID string, owner *account.Account) {
	_, err := state.Mint(access, minter, &state.MintData{
		TokenID: tokenID,
		Owner:   owner,
		Name:    "monster " + tokenID,
		Level:   1,
	})
	if nil != err {
		t.Fatalf("mint: %q  error: %s", tokenID, err)
	}
}

// token ids held by an owner
func ownedBy(t *testing.T, access storage.Access, owner *account.Account) []string {
	pairs, _, err := state.TokensByOwner(access, owner, "", 100)
	if nil != err {
		t.Fatalf("tokens by owner error: %s", err)
	}
	ids := []string{}
	for _, p := range pairs {
		ids = append(ids, p.Key)
	}
	return ids
}

func atTime(t *testing.T, when time.Time) expiration.Expiration {
	e, err := expiration.NewAtTime(when)
	if nil != err {
		t.Fatalf("at time: %s  error: %s", when, err)
	}
	return e
}
