// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/util"
)

// Pack - turn a token into a byte slice
func (token *Token) Pack() (Packed, error) {
	if err := checkAccount(&token.Owner); nil != err {
		return nil, err
	}
	if len(token.Name) > maxNameLength ||
		len(token.Description) > maxDescriptionLength ||
		len(token.Approvals) > maxApprovals {
		return nil, fault.ErrFieldTooLong
	}
	if nil != token.Image && len(*token.Image) > maxImageLength {
		return nil, fault.ErrFieldTooLong
	}

	message := appendUint64(nil, uint64(TokenTag))
	message = appendAccount(message, &token.Owner)

	message = appendUint64(message, uint64(len(token.Approvals)))
	for i := range token.Approvals {
		approval := &token.Approvals[i]
		if err := checkAccount(&approval.Spender); nil != err {
			return nil, err
		}
		message = appendAccount(message, &approval.Spender)
		message = append(message, approval.Expires.Pack()...)
	}

	message = appendString(message, token.Name)
	message = appendUint64(message, token.Level)
	message = appendString(message, token.Description)

	// optional image: flag then value
	if nil == token.Image {
		message = appendUint64(message, 0)
	} else {
		message = appendUint64(message, 1)
		message = appendString(message, *token.Image)
	}
	return message, nil
}

// Pack - turn a transaction into a byte slice
func (transaction *Transaction) Pack() (Packed, error) {
	if err := checkAccount(&transaction.UserID); nil != err {
		return nil, err
	}
	for _, s := range []string{
		transaction.ProviderID,
		transaction.ServiceID,
		transaction.InputData,
		transaction.OutputData,
		transaction.ExpertsOutputData,
	} {
		if len(s) > maxDataLength {
			return nil, fault.ErrFieldTooLong
		}
	}

	message := appendUint64(nil, uint64(TransactionTag))
	message = appendAccount(message, &transaction.UserID)
	message = appendString(message, transaction.ProviderID)
	message = appendString(message, transaction.ServiceID)
	message = appendString(message, transaction.InputData)
	message = appendString(message, transaction.OutputData)
	message = appendString(message, transaction.ExpertsOutputData)
	message = appendUint64(message, uint64(transaction.Status))
	return message, nil
}

// Pack - turn contract info into a byte slice
func (info *ContractInfo) Pack() (Packed, error) {
	if len(info.Name) > maxNameLength || len(info.Symbol) > maxSymbolLength {
		return nil, fault.ErrFieldTooLong
	}

	message := appendUint64(nil, uint64(ContractInfoTag))
	message = appendString(message, info.Name)
	message = appendString(message, info.Symbol)
	return message, nil
}

// an account must hold a complete public key to be packed
func checkAccount(address *account.Account) error {
	if ed25519.PublicKeySize != len(address.PublicKey) {
		return fault.ErrInvalidKeyLength
	}
	return nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	return util.AppendBytes(buffer, []byte(s))
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	return util.AppendBytes(buffer, address.Bytes())
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return util.AppendVarint64(buffer, value)
}
