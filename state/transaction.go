// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/storage"
)

// Transaction - fetch one service transaction
func Transaction(access storage.Access, transactionID string) (record.Transaction, error) {
	return transactions.Load(access, transactionID)
}

// CreateTransaction - store a new transaction, fails if the id is taken
func CreateTransaction(access storage.Access, transactionID string, transaction record.Transaction) error {
	exists, err := transactions.Has(access, transactionID)
	if nil != err {
		return err
	}
	if exists {
		return fault.ErrTransactionAlreadyExists
	}
	return SaveTransaction(access, transactionID, transaction)
}

// SaveTransaction - store or replace a transaction
func SaveTransaction(access storage.Access, transactionID string, transaction record.Transaction) error {
	log, err := stateLog()
	if nil != err {
		return err
	}

	if err := transactions.Save(access, transactionID, transaction); nil != err {
		return err
	}

	log.Debugf("transaction: %q  provider: %q  service: %q  status: %d", transactionID, transaction.ProviderID, transaction.ServiceID, transaction.Status)
	return nil
}

// TransactionsByInput - transactions with the given input data in id order
func TransactionsByInput(access storage.Access, inputData string, start string, limit int) ([]mapping.Pair[record.Transaction], string, error) {
	return transactions.RangeByIndex(access, InputDataIndex, []byte(inputData), start, limit)
}
