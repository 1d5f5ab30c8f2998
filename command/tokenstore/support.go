// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/mapping"
)

// one page of a listing
type page struct {
	Items interface{} `json:"items"`
	Next  string      `json:"next,omitempty"`
}

// a listed record with its primary key
type keyed struct {
	Key    string      `json:"key"`
	Record interface{} `json:"record"`
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func printPage[T any](handle io.Writer, pairs []mapping.Pair[T], next string) error {
	items := make([]keyed, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, keyed{Key: p.Key, Record: p.Value})
	}
	return printJson(handle, page{Items: items, Next: next})
}

func getMetadata(c *cli.Context) (*metadata, error) {
	m, ok := c.App.Metadata["config"].(*metadata)
	if !ok || nil == m.db {
		return nil, ErrNoDatabase
	}
	return m, nil
}

// a non-blank flag value
func checkRequired(c *cli.Context, name string) (string, error) {
	s := c.String(name)
	if "" == s {
		return "", fmt.Errorf("%s: %w", name, ErrMissingParameter)
	}
	return s, nil
}

// account from a flag, must be on the configured network
func checkAccount(c *cli.Context, name string, m *metadata) (*account.Account, error) {
	s, err := checkRequired(c, name)
	if nil != err {
		return nil, err
	}
	a, err := account.FromBase58(s)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if a.IsTesting() != m.config.Testing {
		return nil, fmt.Errorf("%s: %w", name, ErrWrongNetwork)
	}
	return a, nil
}

// the account of the global private key
func checkSender(c *cli.Context, m *metadata) (*account.Account, error) {
	s := c.GlobalString("key")
	if "" == s {
		return nil, ErrMissingKey
	}
	privateKey, err := account.PrivateKeyFromBase58(s)
	if nil != err {
		return nil, err
	}
	sender := privateKey.Account()
	if sender.IsTesting() != m.config.Testing {
		return nil, ErrWrongNetwork
	}
	if m.verbose {
		fmt.Fprintf(m.e, "sender: %s\n", sender)
	}
	return sender, nil
}

func checkExpiration(c *cli.Context, name string) (expiration.Expiration, error) {
	e, err := expiration.Parse(c.String(name))
	if nil != err {
		return expiration.Expiration{}, fmt.Errorf("%s: %w", name, err)
	}
	return e, nil
}

// the block used for expiry checks
func currentBlock(c *cli.Context) expiration.Block {
	return expiration.Block{
		Height: c.GlobalUint64("height"),
		Time:   time.Now(),
	}
}
