// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
)

type infoResult struct {
	Name      string           `json:"name"`
	Symbol    string           `json:"symbol"`
	Minter    *account.Account `json:"minter"`
	NumTokens uint64           `json:"num_tokens"`
}

type countResult struct {
	Count uint64 `json:"count"`
}

func runInit(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	contract := m.config.Contract
	if "" == contract.Name || "" == contract.Symbol || "" == contract.Minter {
		return fmt.Errorf("contract: %w", ErrMissingParameter)
	}
	minter, err := account.FromBase58(contract.Minter)
	if nil != err {
		return fmt.Errorf("contract minter: %w", err)
	}
	if minter.IsTesting() != m.config.Testing {
		return fmt.Errorf("contract minter: %w", ErrWrongNetwork)
	}

	info := record.ContractInfo{
		Name:   contract.Name,
		Symbol: contract.Symbol,
	}
	err = m.db.Update(func(access storage.Access) error {
		return state.Setup(access, info, minter)
	})
	if nil != err {
		return err
	}

	return runInfo(c)
}

func runInfo(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	info, err := state.ContractInfo(m.db)
	if nil != err {
		return err
	}
	minter, err := state.Minter(m.db)
	if nil != err {
		return err
	}
	n, err := state.NumTokens(m.db)
	if nil != err {
		return err
	}

	return printJson(m.w, infoResult{
		Name:      info.Name,
		Symbol:    info.Symbol,
		Minter:    minter,
		NumTokens: n,
	})
}

func runCount(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	n, err := state.NumTokens(m.db)
	if nil != err {
		return err
	}
	return printJson(m.w, countResult{Count: n})
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
