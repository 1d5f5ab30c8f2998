// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
)

type mintResult struct {
	TokenID   string `json:"token_id"`
	NumTokens uint64 `json:"num_tokens"`
}

func runMint(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	tokenID, err := checkRequired(c, "token")
	if nil != err {
		return err
	}
	owner, err := checkAccount(c, "owner", m)
	if nil != err {
		return err
	}
	name, err := checkRequired(c, "name")
	if nil != err {
		return err
	}

	data := &state.MintData{
		TokenID:     tokenID,
		Owner:       owner,
		Name:        name,
		Level:       c.Uint64("level"),
		Description: c.String("description"),
	}
	if image := c.String("image"); "" != image {
		data.Image = &image
	}

	if m.verbose {
		fmt.Fprintf(m.e, "token: %q\n", tokenID)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
	}

	var count uint64
	err = m.db.Update(func(access storage.Access) error {
		var err error
		count, err = state.Mint(access, sender, data)
		return err
	})
	if nil != err {
		return err
	}

	return printJson(m.w, mintResult{
		TokenID:   tokenID,
		NumTokens: count,
	})
}

func runTransfer(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	tokenID, err := checkRequired(c, "token")
	if nil != err {
		return err
	}
	recipient, err := checkAccount(c, "receiver", m)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "token: %q\n", tokenID)
		fmt.Fprintf(m.e, "receiver: %s\n", recipient)
	}

	block := currentBlock(c)
	err = m.db.Update(func(access storage.Access) error {
		return state.Transfer(access, sender, tokenID, recipient, block)
	})
	if nil != err {
		return err
	}
	return showToken(m, tokenID)
}

func runApprove(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	tokenID, err := checkRequired(c, "token")
	if nil != err {
		return err
	}
	spender, err := checkAccount(c, "spender", m)
	if nil != err {
		return err
	}
	expires, err := checkExpiration(c, "expires")
	if nil != err {
		return err
	}

	block := currentBlock(c)
	err = m.db.Update(func(access storage.Access) error {
		return state.Approve(access, sender, tokenID, spender, expires, block)
	})
	if nil != err {
		return err
	}
	return showToken(m, tokenID)
}

func runRevoke(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	tokenID, err := checkRequired(c, "token")
	if nil != err {
		return err
	}
	spender, err := checkAccount(c, "spender", m)
	if nil != err {
		return err
	}

	block := currentBlock(c)
	err = m.db.Update(func(access storage.Access) error {
		return state.Revoke(access, sender, tokenID, spender, block)
	})
	if nil != err {
		return err
	}
	return showToken(m, tokenID)
}

func runBurn(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	sender, err := checkSender(c, m)
	if nil != err {
		return err
	}
	tokenID, err := checkRequired(c, "token")
	if nil != err {
		return err
	}

	block := currentBlock(c)
	err = m.db.Update(func(access storage.Access) error {
		return state.Burn(access, sender, tokenID, block)
	})
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "burnt: %q\n", tokenID)
	}
	return nil
}

func runToken(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	tokenID, err := checkRequired(c, "token")
	if nil != err {
		return err
	}
	return showToken(m, tokenID)
}

func runOwned(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner", m)
	if nil != err {
		return err
	}

	pairs, next, err := state.TokensByOwner(m.db, owner, c.String("start"), c.Int("limit"))
	if nil != err {
		return err
	}
	return printPage(m.w, pairs, next)
}

type balanceResult struct {
	Owner   string `json:"owner"`
	Balance uint64 `json:"balance"`
}

func runBalance(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner", m)
	if nil != err {
		return err
	}

	count, err := state.Balance(m.db, owner)
	if nil != err {
		return err
	}
	return printJson(m.w, balanceResult{
		Owner:   owner.String(),
		Balance: count,
	})
}

func runAllTokens(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	pairs, next, err := state.AllTokens(m.db, c.String("start"), c.Int("limit"))
	if nil != err {
		return err
	}
	return printPage(m.w, pairs, next)
}

func showToken(m *metadata, tokenID string) error {
	token, err := state.Token(m.db, tokenID)
	if nil != err {
		return err
	}
	return printJson(m.w, keyed{Key: tokenID, Record: token})
}
