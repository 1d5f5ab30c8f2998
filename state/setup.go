// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/counter"
	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/storage"
)

// names of the secondary indexes
const (
	OwnerIndex     = "owner"
	InputDataIndex = "input_data"
)

// persisted namespace tags, never reuse or rename
var (
	tokensNamespace           = storage.Register("tokens")
	tokenOwnerNamespace       = storage.Register("tokens__owner")
	transactionsNamespace     = storage.Register("transactions")
	transactionInputNamespace = storage.Register("transactions__input_data")
	numTokensNamespace        = storage.Register("num_tokens")
	contractInfoNamespace     = storage.Register("nft_info")
	minterNamespace           = storage.Register("minter")
	operatorsNamespace        = storage.Register("operators")
)

var (
	tokens = mapping.NewIndexedMap(tokensNamespace, record.TokenCodec,
		mapping.Index[record.Token]{
			Name:      OwnerIndex,
			Namespace: tokenOwnerNamespace,
			Derive:    record.TokenOwner,
		},
	)

	transactions = mapping.NewIndexedMap(transactionsNamespace, record.TransactionCodec,
		mapping.Index[record.Transaction]{
			Name:      InputDataIndex,
			Namespace: transactionInputNamespace,
			Derive:    record.TransactionInputData,
		},
	)

	numTokens    = counter.New(numTokensNamespace)
	contractInfo = mapping.NewItem(contractInfoNamespace, record.ContractInfoCodec)
	minter       = mapping.NewItem(minterNamespace, accountCodec)
	operators    = mapping.NewMap(operatorsNamespace, expirationCodec)
)

var accountCodec = mapping.Codec[account.Account]{
	Pack: func(a account.Account) ([]byte, error) {
		return a.Bytes(), nil
	},
	Unpack: func(buffer []byte) (account.Account, error) {
		a, err := account.FromBytes(buffer)
		if nil != err {
			return account.Account{}, err
		}
		return *a, nil
	},
}

var expirationCodec = mapping.Codec[expiration.Expiration]{
	Pack: func(e expiration.Expiration) ([]byte, error) {
		return e.Pack(), nil
	},
	Unpack: func(buffer []byte) (expiration.Expiration, error) {
		e, n, err := expiration.Unpack(buffer)
		if nil != err {
			return e, err
		}
		if n != len(buffer) {
			return expiration.Expiration{}, fault.ErrNotExpirationPack
		}
		return e, nil
	},
}

type stateData struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

var globalData stateData

// Initialise - set up the log channel for state changes
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("state")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.initialised = true

	globalData.log.Info("starting…")
	return nil
}

// Finalise - flush the log channel
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// log channel for an operation, nil if not initialised
func stateLog() (*logger.L, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}
	return globalData.log, nil
}

// Tokens - all tokens, indexed by owner
func Tokens() *mapping.IndexedMap[record.Token] {
	return tokens
}

// Transactions - all service transactions, indexed by input data
func Transactions() *mapping.IndexedMap[record.Transaction] {
	return transactions
}
