// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/tokenstore/fault"
)

// command line errors - keep in alphabetic order
const (
	ErrMissingKey       = fault.InvalidError("private key is required")
	ErrMissingParameter = fault.InvalidError("missing parameter")
	ErrNoDatabase       = fault.ProcessError("database is not open")
	ErrWrongNetwork     = fault.InvalidError("account is for the wrong network")
)
