// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/account"
)

type keygenResult struct {
	PrivateKey *account.PrivateKey `json:"private_key"`
	Account    *account.Account    `json:"account"`
}

func runKeygen(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	privateKey, err := account.NewPrivateKey(c.Bool("testing"), rand.Reader)
	if nil != err {
		return err
	}

	return printJson(m.w, keygenResult{
		PrivateKey: privateKey,
		Account:    privateKey.Account(),
	})
}
