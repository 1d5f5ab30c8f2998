// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/expiration"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	TokenTag        = TagType(iota) // a token and its approvals
	TransactionTag  = TagType(iota) // a service request
	ContractInfoTag = TagType(iota) // name and symbol of the contract

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// byte sizes for various fields
const (
	maxNameLength        = 256
	maxSymbolLength      = 64
	maxDescriptionLength = 8192
	maxImageLength       = 2048
	maxApprovals         = 1024
	maxAccountLength     = 256

	// input data is used as a secondary key
	maxDataLength = 65535
)

// Approval - an account allowed to transfer a token until it expires
type Approval struct {
	Spender account.Account       `json:"spender"`
	Expires expiration.Expiration `json:"expires"`
}

// Token - the state of one token
type Token struct {
	Owner       account.Account `json:"owner"`
	Approvals   []Approval      `json:"approvals"`
	Name        string          `json:"name"`
	Level       uint64          `json:"level"`
	Description string          `json:"description"`
	Image       *string         `json:"image,omitempty"`
}

// Transaction - a request made to a service provider and its outcome
type Transaction struct {
	UserID            account.Account `json:"user_id"`
	ProviderID        string          `json:"provider_id"`
	ServiceID         string          `json:"service_id"`
	InputData         string          `json:"input_data"`
	OutputData        string          `json:"output_data"`
	ExpertsOutputData string          `json:"experts_output_data"`
	Status            uint8           `json:"status"`
}

// ContractInfo - contract wide description
type ContractInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// TokenOwner - secondary key of the owner index
func TokenOwner(token Token) []byte {
	return token.Owner.Bytes()
}

// TransactionInputData - secondary key of the input data index
func TransactionInputData(transaction Transaction) []byte {
	return []byte(transaction.InputData)
}
