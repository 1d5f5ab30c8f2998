// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/storage"
	"github.com/bitmark-inc/tokenstore/util"
)

// Operator - an account allowed to act for every token of an owner
type Operator struct {
	Spender account.Account       `json:"spender"`
	Expires expiration.Expiration `json:"expires"`
}

// ApproveAll - let operator act on all of the sender's tokens until it expires
func ApproveAll(access storage.Access, sender *account.Account, operator *account.Account, expires expiration.Expiration, block expiration.Block) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	if expires.IsExpired(block) {
		return fault.ErrInvalidExpiration
	}
	if err := operators.Save(access, operatorKey(sender, operator), expires); nil != err {
		return err
	}

	log.Infof("approve all: owner: %s  operator: %s  expires: %s", sender, operator, expires)
	return nil
}

// RevokeAll - remove an operator, no error if it was not set
func RevokeAll(access storage.Access, sender *account.Account, operator *account.Account) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	if err := operators.Remove(access, operatorKey(sender, operator)); nil != err {
		return err
	}

	log.Infof("revoke all: owner: %s  operator: %s", sender, operator)
	return nil
}

// IsOperator - true if operator holds an unexpired approval from owner
func IsOperator(access storage.Access, owner *account.Account, operator *account.Account, block expiration.Block) (bool, error) {
	expires, found, err := operators.MayLoad(access, operatorKey(owner, operator))
	if nil != err || !found {
		return false, err
	}
	return !expires.IsExpired(block), nil
}

// Operators - the operators of one owner in account order
//
// expired entries are included only if includeExpired is set
func Operators(access storage.Access, owner *account.Account, includeExpired bool, block expiration.Block) ([]Operator, error) {
	prefix := util.AppendBytes(nil, owner.Bytes())

	result := []Operator{}
	cursor := operatorsNamespace.NewPrefixCursor(prefix)
	err := cursor.Map(access, func(key []byte, value []byte) error {
		spender, n := util.FromBytes(key[len(prefix):], account.Length)
		if 0 == n || n != len(key)-len(prefix) {
			return fault.ErrInvalidKeyLength
		}
		a, err := account.FromBytes(spender)
		if nil != err {
			return err
		}
		expires, err := expirationCodec.Unpack(value)
		if nil != err {
			return err
		}
		if includeExpired || !expires.IsExpired(block) {
			result = append(result, Operator{
				Spender: *a,
				Expires: expires,
			})
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// composite key: both accounts length prefixed
func operatorKey(owner *account.Account, operator *account.Account) string {
	key := util.AppendBytes(nil, owner.Bytes())
	key = util.AppendBytes(key, operator.Bytes())
	return string(key)
}
