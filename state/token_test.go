// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
)

// a minted token is found under its owner
func TestMintIndexedByOwner(t *testing.T) {
	db := setup(t)
	defer db.Close()

	count, err := state.Mint(db, minter, &state.MintData{
		TokenID: "t1",
		Owner:   alice,
		Name:    "X",
		Level:   1,
	})
	assert.Nil(t, err, "mint error")
	assert.Equal(t, uint64(1), count, "minted total")

	expected := record.Token{
		Owner:     *alice,
		Approvals: []record.Approval{},
		Name:      "X",
		Level:     1,
	}

	pairs, next, err := state.TokensByOwner(db, alice, "", 10)
	assert.Nil(t, err, "range error")
	assert.Equal(t, "", next, "continuation")
	assert.Equal(t, []mapping.Pair[record.Token]{{Key: "t1", Value: expected}}, pairs, "owned tokens")
}

// changing the owner moves the token between index entries
func TestTransferMovesOwner(t *testing.T) {
	db := setup(t)
	defer db.Close()

	mint(t, db, "t1", alice)

	err := state.Transfer(db, alice, "t1", bob, now)
	assert.Nil(t, err, "transfer error")

	assert.Equal(t, []string{}, ownedBy(t, db, alice), "alice still owns")

	pairs, _, err := state.TokensByOwner(db, bob, "", 10)
	assert.Nil(t, err, "range error")
	if assert.Equal(t, 1, len(pairs), "bob owns") {
		assert.Equal(t, "t1", pairs[0].Key, "token id")
		assert.Equal(t, *bob, pairs[0].Value.Owner, "owner")
		assert.Equal(t, "monster t1", pairs[0].Value.Name, "name kept")
	}
}

func TestMintRules(t *testing.T) {
	db := setup(t)
	defer db.Close()

	_, err := state.Mint(db, alice, &state.MintData{TokenID: "t1", Owner: alice})
	assert.Equal(t, fault.ErrUnauthorised, err, "non minter minted")

	mint(t, db, "t1", alice)

	_, err = state.Mint(db, minter, &state.MintData{TokenID: "t1", Owner: bob})
	assert.Equal(t, fault.ErrTokenAlreadyExists, err, "token id reused")

	token, err := state.Token(db, "t1")
	assert.Nil(t, err, "load error")
	assert.Equal(t, *alice, token.Owner, "existing token replaced")

	count, _ := state.NumTokens(db)
	assert.Equal(t, uint64(1), count, "failed mints counted")
}

func TestApprovals(t *testing.T) {
	db := setup(t)
	defer db.Close()

	mint(t, db, "t1", alice)

	// only the owner or an operator may approve
	err := state.Approve(db, bob, "t1", bob, expiration.NewNever(), now)
	assert.Equal(t, fault.ErrUnauthorised, err, "stranger approved")

	err = state.Approve(db, alice, "t1", bob, expiration.NewAtHeight(now.Height), now)
	assert.Equal(t, fault.ErrInvalidExpiration, err, "expired approval accepted")

	err = state.Approve(db, alice, "t1", bob, expiration.NewAtHeight(2000), now)
	assert.Nil(t, err, "approve error")

	// approving again replaces the earlier approval
	err = state.Approve(db, alice, "t1", bob, expiration.NewNever(), now)
	assert.Nil(t, err, "approve error")

	token, _ := state.Token(db, "t1")
	assert.Equal(t, []record.Approval{{Spender: *bob, Expires: expiration.NewNever()}}, token.Approvals, "approvals")

	err = state.Revoke(db, alice, "t1", bob, now)
	assert.Nil(t, err, "revoke error")
	token, _ = state.Token(db, "t1")
	assert.Equal(t, []record.Approval{}, token.Approvals, "approval not revoked")

	err = state.Transfer(db, bob, "t1", bob, now)
	assert.Equal(t, fault.ErrUnauthorised, err, "revoked spender transferred")
}

func TestApprovedSpenderTransfers(t *testing.T) {
	db := setup(t)
	defer db.Close()

	mint(t, db, "t1", alice)
	assert.Nil(t, state.Approve(db, alice, "t1", bob, expiration.NewAtHeight(1500), now), "approve error")
	assert.Nil(t, state.Approve(db, alice, "t1", carol, expiration.NewNever(), now), "approve error")

	later := expiration.Block{Height: 1500, Time: now.Time}
	err := state.Transfer(db, bob, "t1", bob, later)
	assert.Equal(t, fault.ErrUnauthorised, err, "expired approval used")

	err = state.Transfer(db, bob, "t1", bob, now)
	assert.Nil(t, err, "approved transfer error")

	token, _ := state.Token(db, "t1")
	assert.Equal(t, *bob, token.Owner, "owner")
	assert.Equal(t, []record.Approval{}, token.Approvals, "approvals survived transfer")

	// carol's approval was cleared by the transfer
	err = state.Transfer(db, carol, "t1", carol, now)
	assert.Equal(t, fault.ErrUnauthorised, err, "cleared approval used")
}

func TestBurn(t *testing.T) {
	db := setup(t)
	defer db.Close()

	mint(t, db, "t1", alice)
	mint(t, db, "t2", alice)

	err := state.Burn(db, bob, "t1", now)
	assert.Equal(t, fault.ErrUnauthorised, err, "stranger burned")

	err = state.Burn(db, alice, "t1", now)
	assert.Nil(t, err, "burn error")

	_, err = state.Token(db, "t1")
	assert.Equal(t, fault.ErrNotFound, err, "burned token loaded")
	assert.Equal(t, []string{"t2"}, ownedBy(t, db, alice), "burned token still indexed")

	err = state.Burn(db, alice, "t1", now)
	assert.Equal(t, fault.ErrNotFound, err, "burned twice")

	count, _ := state.NumTokens(db)
	assert.Equal(t, uint64(2), count, "minted total changed by burn")
}

func TestAllTokens(t *testing.T) {
	db := setup(t)
	defer db.Close()

	mint(t, db, "c", alice)
	mint(t, db, "a", bob)
	mint(t, db, "b", carol)

	pairs, next, err := state.AllTokens(db, "", 2)
	assert.Nil(t, err, "range error")
	assert.Equal(t, "b", next, "continuation")
	assert.Equal(t, 2, len(pairs), "page size")
	assert.Equal(t, "a", pairs[0].Key, "first")
	assert.Equal(t, "b", pairs[1].Key, "second")

	pairs, next, err = state.AllTokens(db, next, 2)
	assert.Nil(t, err, "range error")
	assert.Equal(t, "", next, "continuation")
	assert.Equal(t, 1, len(pairs), "last page")
	assert.Equal(t, "c", pairs[0].Key, "third")
}

// a failed operation inside a transaction leaves nothing behind
func TestAbortedMint(t *testing.T) {
	db := setup(t)
	defer db.Close()

	err := db.Update(func(access storage.Access) error {
		mint(t, access, "t1", alice)
		return fault.ErrUnauthorised
	})
	assert.Equal(t, fault.ErrUnauthorised, err, "update error")

	_, err = state.Token(db, "t1")
	assert.Equal(t, fault.ErrNotFound, err, "aborted token visible")
	assert.Equal(t, []string{}, ownedBy(t, db, alice), "aborted index entry visible")

	count, _ := state.NumTokens(db)
	assert.Equal(t, uint64(0), count, "aborted mint counted")
}

func TestBalance(t *testing.T) {
	db := setup(t)
	defer db.Close()

	count, err := state.Balance(db, alice)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(0), count, "empty balance")

	mint(t, db, "t1", alice)
	mint(t, db, "t2", alice)
	mint(t, db, "t3", bob)

	count, err = state.Balance(db, alice)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(2), count, "alice balance")

	assert.Nil(t, state.Transfer(db, alice, "t1", bob, now), "transfer error")

	count, err = state.Balance(db, alice)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(1), count, "alice balance after transfer")

	count, err = state.Balance(db, bob)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(2), count, "bob balance after transfer")
}
