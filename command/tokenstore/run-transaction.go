// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
)

const maxStatus = 255

func runTxSave(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	transactionID := c.String("id")
	if "" == transactionID {
		transactionID = uuid.New().String()
	}
	user, err := checkAccount(c, "user", m)
	if nil != err {
		return err
	}
	status := c.Uint("status")
	if status > maxStatus {
		return fmt.Errorf("status: %d  exceeds: %d", status, maxStatus)
	}

	transaction := record.Transaction{
		UserID:            *user,
		ProviderID:        c.String("provider"),
		ServiceID:         c.String("service"),
		InputData:         c.String("input"),
		OutputData:        c.String("output"),
		ExpertsOutputData: c.String("experts-output"),
		Status:            uint8(status),
	}

	create := c.Bool("create")
	err = m.db.Update(func(access storage.Access) error {
		if create {
			return state.CreateTransaction(access, transactionID, transaction)
		}
		return state.SaveTransaction(access, transactionID, transaction)
	})
	if nil != err {
		return err
	}
	return printJson(m.w, keyed{Key: transactionID, Record: transaction})
}

func runTxGet(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	transactionID, err := checkRequired(c, "id")
	if nil != err {
		return err
	}

	transaction, err := state.Transaction(m.db, transactionID)
	if nil != err {
		return err
	}
	return printJson(m.w, keyed{Key: transactionID, Record: transaction})
}

func runTxFind(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	input, err := checkRequired(c, "input")
	if nil != err {
		return err
	}

	pairs, next, err := state.TransactionsByInput(m.db, input, c.String("start"), c.Int("limit"))
	if nil != err {
		return err
	}
	return printPage(m.w, pairs, next)
}
