// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/state"
)

func makeTransaction(input string) record.Transaction {
	return record.Transaction{
		UserID:     *alice,
		ProviderID: "provider",
		ServiceID:  "service",
		InputData:  input,
	}
}

// equal input data returns both transactions in id order
func TestTransactionsByInput(t *testing.T) {
	db := setup(t)
	defer db.Close()

	assert.Nil(t, state.SaveTransaction(db, "tx2", makeTransaction("hello")), "save error")
	assert.Nil(t, state.SaveTransaction(db, "tx1", makeTransaction("hello")), "save error")
	assert.Nil(t, state.SaveTransaction(db, "tx3", makeTransaction("hello!")), "save error")

	pairs, next, err := state.TransactionsByInput(db, "hello", "", 10)
	assert.Nil(t, err, "range error")
	assert.Equal(t, "", next, "continuation")
	if assert.Equal(t, 2, len(pairs), "matches") {
		assert.Equal(t, "tx1", pairs[0].Key, "first")
		assert.Equal(t, "tx2", pairs[1].Key, "second")
		assert.Equal(t, makeTransaction("hello"), pairs[0].Value, "record")
	}
}

func TestTransactionUpdate(t *testing.T) {
	db := setup(t)
	defer db.Close()

	tx := makeTransaction("question")
	assert.Nil(t, state.CreateTransaction(db, "tx1", tx), "create error")
	assert.Equal(t, fault.ErrTransactionAlreadyExists, state.CreateTransaction(db, "tx1", tx), "duplicate created")

	// an answer does not move the index entry
	tx.OutputData = "answer"
	tx.Status = 2
	assert.Nil(t, state.SaveTransaction(db, "tx1", tx), "update error")

	pairs, _, err := state.TransactionsByInput(db, "question", "", 10)
	assert.Nil(t, err, "range error")
	assert.Equal(t, 1, len(pairs), "entries")
	assert.Equal(t, tx, pairs[0].Value, "updated record")

	loaded, err := state.Transaction(db, "tx1")
	assert.Nil(t, err, "load error")
	assert.Equal(t, tx, loaded, "loaded record")

	// new input data moves it
	tx.InputData = "another question"
	assert.Nil(t, state.SaveTransaction(db, "tx1", tx), "update error")

	pairs, _, err = state.TransactionsByInput(db, "question", "", 10)
	assert.Nil(t, err, "range error")
	assert.Equal(t, 0, len(pairs), "old input still indexed")

	_, err = state.Transaction(db, "tx9")
	assert.Equal(t, fault.ErrNotFound, err, "missing transaction")
}
