// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"bytes"

	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/storage"
)

// MintData - the caller supplied part of a new token
type MintData struct {
	TokenID     string
	Owner       *account.Account
	Name        string
	Level       uint64
	Description string
	Image       *string
}

// Token - fetch one token
func Token(access storage.Access, tokenID string) (record.Token, error) {
	return tokens.Load(access, tokenID)
}

// AllTokens - tokens in token id order, see mapping.Map.Range
func AllTokens(access storage.Access, start string, limit int) ([]mapping.Pair[record.Token], string, error) {
	return tokens.Range(access, start, limit)
}

// TokensByOwner - tokens held by one owner in token id order
func TokensByOwner(access storage.Access, owner *account.Account, start string, limit int) ([]mapping.Pair[record.Token], string, error) {
	return tokens.RangeByIndex(access, OwnerIndex, owner.Bytes(), start, limit)
}

// Balance - number of tokens held by one owner
func Balance(access storage.Access, owner *account.Account) (uint64, error) {
	cursor, err := tokens.NewIndexCursor(OwnerIndex, owner.Bytes())
	if nil != err {
		return 0, err
	}
	count := uint64(0)
	err = cursor.Map(access, func(_ string, _ record.Token) error {
		count += 1
		return nil
	})
	return count, err
}

// Mint - create a token, only the minter may do this
//
// returns the new minted total
func Mint(access storage.Access, sender *account.Account, data *MintData) (uint64, error) {
	log, err := stateLog()
	if nil != err {
		return 0, err
	}

	m, err := minter.Load(access)
	if nil != err {
		return 0, err
	}
	if !sameAccount(&m, sender) {
		return 0, fault.ErrUnauthorised
	}

	exists, err := tokens.Has(access, data.TokenID)
	if nil != err {
		return 0, err
	}
	if exists {
		return 0, fault.ErrTokenAlreadyExists
	}

	token := record.Token{
		Owner:       *data.Owner,
		Approvals:   []record.Approval{},
		Name:        data.Name,
		Level:       data.Level,
		Description: data.Description,
		Image:       data.Image,
	}
	if err := tokens.Save(access, data.TokenID, token); nil != err {
		return 0, err
	}

	count, err := numTokens.IncrementAndSave(access)
	if nil != err {
		return 0, err
	}

	log.Infof("mint: %q  owner: %s  count: %d", data.TokenID, data.Owner, count)
	return count, nil
}

// Transfer - give a token to a new owner, clearing all approvals
func Transfer(access storage.Access, sender *account.Account, tokenID string, recipient *account.Account, block expiration.Block) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	token, err := tokens.Load(access, tokenID)
	if nil != err {
		return err
	}
	if err := checkCanSend(access, sender, &token, block); nil != err {
		return err
	}

	previous := token.Owner
	token.Owner = *recipient
	token.Approvals = []record.Approval{}
	if err := tokens.Save(access, tokenID, token); nil != err {
		return err
	}

	log.Infof("transfer: %q  from: %s  to: %s", tokenID, &previous, recipient)
	return nil
}

// Approve - allow spender to transfer one token until it expires
//
// replaces any earlier approval for the same spender
func Approve(access storage.Access, sender *account.Account, tokenID string, spender *account.Account, expires expiration.Expiration, block expiration.Block) error {
	return updateApprovals(access, sender, tokenID, spender, &expires, block)
}

// Revoke - remove a spender's approval for one token
func Revoke(access storage.Access, sender *account.Account, tokenID string, spender *account.Account, block expiration.Block) error {
	return updateApprovals(access, sender, tokenID, spender, nil, block)
}

// Burn - destroy a token, the minted total is unchanged
func Burn(access storage.Access, sender *account.Account, tokenID string, block expiration.Block) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	token, err := tokens.Load(access, tokenID)
	if nil != err {
		return err
	}
	if err := checkCanSend(access, sender, &token, block); nil != err {
		return err
	}

	if err := tokens.Remove(access, tokenID); nil != err {
		return err
	}

	log.Infof("burn: %q  owner: %s", tokenID, &token.Owner)
	return nil
}

// add or remove (nil expires) the approval for spender
func updateApprovals(access storage.Access, sender *account.Account, tokenID string, spender *account.Account, expires *expiration.Expiration, block expiration.Block) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	token, err := tokens.Load(access, tokenID)
	if nil != err {
		return err
	}
	if err := checkCanApprove(access, sender, &token, block); nil != err {
		return err
	}

	approvals := make([]record.Approval, 0, len(token.Approvals)+1)
	for _, a := range token.Approvals {
		if !sameAccount(&a.Spender, spender) {
			approvals = append(approvals, a)
		}
	}

	if nil != expires {
		if expires.IsExpired(block) {
			return fault.ErrInvalidExpiration
		}
		approvals = append(approvals, record.Approval{
			Spender: *spender,
			Expires: *expires,
		})
		log.Infof("approve: %q  spender: %s  expires: %s", tokenID, spender, expires)
	} else {
		log.Infof("revoke: %q  spender: %s", tokenID, spender)
	}

	token.Approvals = approvals
	return tokens.Save(access, tokenID, token)
}

// owner, an unexpired approval or an unexpired operator may send
func checkCanSend(access storage.Access, sender *account.Account, token *record.Token, block expiration.Block) error {
	if sameAccount(&token.Owner, sender) {
		return nil
	}
	for _, a := range token.Approvals {
		if sameAccount(&a.Spender, sender) && !a.Expires.IsExpired(block) {
			return nil
		}
	}
	return checkOperator(access, &token.Owner, sender, block)
}

// owner or an unexpired operator may change approvals
func checkCanApprove(access storage.Access, sender *account.Account, token *record.Token, block expiration.Block) error {
	if sameAccount(&token.Owner, sender) {
		return nil
	}
	return checkOperator(access, &token.Owner, sender, block)
}

func checkOperator(access storage.Access, owner *account.Account, sender *account.Account, block expiration.Block) error {
	ok, err := IsOperator(access, owner, sender, block)
	if nil != err {
		return err
	}
	if !ok {
		return fault.ErrUnauthorised
	}
	return nil
}

func sameAccount(a *account.Account, b *account.Account) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}
