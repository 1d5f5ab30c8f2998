// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/storage"
)

// Setup - store the contract description and the only account allowed
// to mint, fails if the contract was already set up
func Setup(access storage.Access, info record.ContractInfo, minterAccount *account.Account) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	_, found, err := minter.MayLoad(access)
	if nil != err {
		return err
	}
	if found {
		return fault.ErrMinterAlreadySet
	}

	if err := contractInfo.Save(access, info); nil != err {
		return err
	}
	if err := minter.Save(access, *minterAccount); nil != err {
		return err
	}

	log.Infof("setup: %q  symbol: %q  minter: %s", info.Name, info.Symbol, minterAccount)
	return nil
}

// ContractInfo - name and symbol, fault.ErrNotFound before Setup
func ContractInfo(access storage.Access) (record.ContractInfo, error) {
	return contractInfo.Load(access)
}

// Minter - the minting account, fault.ErrNotFound before Setup
func Minter(access storage.Access) (*account.Account, error) {
	a, err := minter.Load(access)
	if nil != err {
		return nil, err
	}
	return &a, nil
}

// NumTokens - total number of tokens ever minted
func NumTokens(access storage.Access) (uint64, error) {
	return numTokens.Load(access)
}

// IncrementTokens - add one to the minted total and return it
func IncrementTokens(access storage.Access) (uint64, error) {
	return numTokens.IncrementAndSave(access)
}
