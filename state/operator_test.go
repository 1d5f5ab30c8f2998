// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/state"
)

func TestOperators(t *testing.T) {
	db := setup(t)
	defer db.Close()

	mint(t, db, "t1", alice)
	mint(t, db, "t2", alice)

	ok, err := state.IsOperator(db, alice, bob, now)
	assert.Nil(t, err, "is operator error")
	assert.False(t, ok, "operator before approval")

	err = state.ApproveAll(db, alice, bob, atTime(t, now.Time), now)
	assert.Equal(t, fault.ErrInvalidExpiration, err, "expired operator accepted")

	deadline := now.Time.Add(time.Hour)
	assert.Nil(t, state.ApproveAll(db, alice, bob, atTime(t, deadline), now), "approve all error")
	assert.Nil(t, state.ApproveAll(db, alice, carol, expiration.NewNever(), now), "approve all error")

	ok, err = state.IsOperator(db, alice, bob, now)
	assert.Nil(t, err, "is operator error")
	assert.True(t, ok, "operator not set")

	// operator of alice is not operator of bob
	ok, _ = state.IsOperator(db, bob, alice, now)
	assert.False(t, ok, "reversed operator")

	// operators may approve and transfer
	assert.Nil(t, state.Approve(db, bob, "t1", carol, expiration.NewNever(), now), "operator approve error")
	assert.Nil(t, state.Transfer(db, bob, "t2", carol, now), "operator transfer error")
	assert.Equal(t, []string{"t1"}, ownedBy(t, db, alice), "alice tokens")
	assert.Equal(t, []string{"t2"}, ownedBy(t, db, carol), "carol tokens")

	later := expiration.Block{Height: now.Height, Time: deadline}
	operators, err := state.Operators(db, alice, false, later)
	assert.Nil(t, err, "operators error")
	assert.Equal(t, []state.Operator{{Spender: *carol, Expires: expiration.NewNever()}}, operators, "unexpired operators")

	operators, err = state.Operators(db, alice, true, later)
	assert.Nil(t, err, "operators error")
	assert.Equal(t, 2, len(operators), "all operators")
	assert.Equal(t, *bob, operators[0].Spender, "account order")

	err = state.Transfer(db, bob, "t1", bob, later)
	assert.Equal(t, fault.ErrUnauthorised, err, "expired operator transferred")

	assert.Nil(t, state.RevokeAll(db, alice, carol), "revoke all error")
	assert.Nil(t, state.RevokeAll(db, alice, carol), "second revoke all error")
	ok, _ = state.IsOperator(db, alice, carol, now)
	assert.False(t, ok, "revoked operator")

	operators, err = state.Operators(db, bob, true, now)
	assert.Nil(t, err, "operators error")
	assert.Equal(t, []state.Operator{}, operators, "operators of an owner without any")
}
