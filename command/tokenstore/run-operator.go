// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
)

func runOperatorApprove(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	operator, err := checkAccount(c, "operator", m)
	if nil != err {
		return err
	}
	expires, err := checkExpiration(c, "expires")
	if nil != err {
		return err
	}

	block := currentBlock(c)
	err = m.db.Update(func(access storage.Access) error {
		return state.ApproveAll(access, sender, operator, expires, block)
	})
	if nil != err {
		return err
	}

	operators, err := state.Operators(m.db, sender, false, block)
	if nil != err {
		return err
	}
	return printJson(m.w, operators)
}

func runOperatorRevoke(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	operator, err := checkAccount(c, "operator", m)
	if nil != err {
		return err
	}

	err = m.db.Update(func(access storage.Access) error {
		return state.RevokeAll(access, sender, operator)
	})
	if nil != err {
		return err
	}

	operators, err := state.Operators(m.db, sender, false, currentBlock(c))
	if nil != err {
		return err
	}
	return printJson(m.w, operators)
}

func runOperators(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner", m)
	if nil != err {
		return err
	}

	operators, err := state.Operators(m.db, owner, c.Bool("expired"), currentBlock(c))
	if nil != err {
		return err
	}
	return printJson(m.w, operators)
}
