// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// commands that only read, the database is opened read only
var readOnlyCommands = map[string]struct{}{
	"info":       {},
	"count":      {},
	"token":      {},
	"owned":      {},
	"balance":    {},
	"all-tokens": {},
	"operators":  {},
	"tx-get":     {},
	"tx-find":    {},
}

func commands() []cli.Command {
	tokenFlag := cli.StringFlag{
		Name:  "token, t",
		Value: "",
		Usage: "*token `ID`",
	}
	pageFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "start, s",
			Value: "",
			Usage: " continue after this `ID`",
		},
		cli.IntFlag{
			Name:  "limit, l",
			Value: 10,
			Usage: " maximum results `COUNT`",
		},
	}

	return []cli.Command{
		{
			Name:      "keygen",
			Usage:     "generate a new private key and its account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "testing, T",
					Usage: " key for the test network",
				},
			},
			Action: runKeygen,
		},
		{
			Name:      "init",
			Usage:     "set contract name, symbol and minter from the configuration",
			ArgsUsage: "\n   (* = required)",
			Action:    runInit,
		},
		{
			Name:      "info",
			Usage:     "show contract information",
			ArgsUsage: "\n   (* = required)",
			Action:    runInfo,
		},
		{
			Name:      "count",
			Usage:     "number of tokens minted",
			ArgsUsage: "\n   (* = required)",
			Action:    runCount,
		},
		{
			Name:      "mint",
			Usage:     "mint a new token, sender must be the minter",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				tokenFlag,
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*token `NAME`",
				},
				cli.Uint64Flag{
					Name:  "level",
					Value: 1,
					Usage: " token `LEVEL`",
				},
				cli.StringFlag{
					Name:  "description",
					Value: "",
					Usage: " token `TEXT`",
				},
				cli.StringFlag{
					Name:  "image",
					Value: "",
					Usage: " image `URI`",
				},
			},
			Action: runMint,
		},
		{
			Name:      "transfer",
			Usage:     "transfer a token to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				tokenFlag,
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*recipient `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "approve",
			Usage:     "allow an account to transfer one token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				tokenFlag,
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: "*approved `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "expires, e",
					Value: "never",
					Usage: " `EXPIRY` never | height:N | time:RFC3339",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "revoke",
			Usage:     "remove an approval from one token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				tokenFlag,
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: "*approved `ACCOUNT`",
				},
			},
			Action: runRevoke,
		},
		{
			Name:      "burn",
			Usage:     "destroy a token",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{tokenFlag},
			Action:    runBurn,
		},
		{
			Name:      "token",
			Usage:     "show one token",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{tokenFlag},
			Action:    runToken,
		},
		{
			Name:      "owned",
			Usage:     "list the tokens of an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
			}, pageFlags...),
			Action: runOwned,
		},
		{
			Name:      "balance",
			Usage:     "count the tokens of an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "all-tokens",
			Usage:     "list all tokens",
			ArgsUsage: "\n   (* = required)",
			Flags:     pageFlags,
			Action:    runAllTokens,
		},
		{
			Name:      "operator-approve",
			Usage:     "allow an account to act for all of the sender's tokens",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "operator, o",
					Value: "",
					Usage: "*operator `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "expires, e",
					Value: "never",
					Usage: " `EXPIRY` never | height:N | time:RFC3339",
				},
			},
			Action: runOperatorApprove,
		},
		{
			Name:      "operator-revoke",
			Usage:     "remove an operator",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "operator, o",
					Value: "",
					Usage: "*operator `ACCOUNT`",
				},
			},
			Action: runOperatorRevoke,
		},
		{
			Name:      "operators",
			Usage:     "list the operators of an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.BoolFlag{
					Name:  "expired, x",
					Usage: " include expired operators",
				},
			},
			Action: runOperators,
		},
		{
			Name:      "tx-save",
			Usage:     "store or update a service transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: " transaction `ID` (default: a new UUID)",
				},
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: "*requesting user `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "provider, p",
					Value: "",
					Usage: " provider `ID`",
				},
				cli.StringFlag{
					Name:  "service",
					Value: "",
					Usage: " service `ID`",
				},
				cli.StringFlag{
					Name:  "input",
					Value: "",
					Usage: " input `DATA`",
				},
				cli.StringFlag{
					Name:  "output",
					Value: "",
					Usage: " output `DATA`",
				},
				cli.StringFlag{
					Name:  "experts-output",
					Value: "",
					Usage: " experts output `DATA`",
				},
				cli.UintFlag{
					Name:  "status",
					Value: 0,
					Usage: " status `CODE` 0..255",
				},
				cli.BoolFlag{
					Name:  "create",
					Usage: " fail if the transaction exists",
				},
			},
			Action: runTxSave,
		},
		{
			Name:      "tx-get",
			Usage:     "show one service transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*transaction `ID`",
				},
			},
			Action: runTxGet,
		},
		{
			Name:      "tx-find",
			Usage:     "list the transactions with some input data",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "input",
					Value: "",
					Usage: "*input `DATA`",
				},
			}, pageFlags...),
			Action: runTxFind,
		},
		{
			Name:      "version",
			Usage:     "display tokenstore version",
			ArgsUsage: "\n   (* = required)",
			Action:    runVersion,
		},
	}
}
