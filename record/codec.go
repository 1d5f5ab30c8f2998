// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
)

// codecs for storing records in maps
var (
	TokenCodec = mapping.Codec[Token]{
		Pack:   func(t Token) ([]byte, error) { return t.Pack() },
		Unpack: UnpackToken,
	}
	TransactionCodec = mapping.Codec[Transaction]{
		Pack:   func(t Transaction) ([]byte, error) { return t.Pack() },
		Unpack: UnpackTransaction,
	}
	ContractInfoCodec = mapping.Codec[ContractInfo]{
		Pack:   func(c ContractInfo) ([]byte, error) { return c.Pack() },
		Unpack: UnpackContractInfo,
	}
)

// UnpackToken - decode a packed token, the whole buffer must be used
func UnpackToken(buffer []byte) (Token, error) {
	r, err := unpackAll(buffer, fault.ErrNotTokenPack)
	if nil != err {
		return Token{}, err
	}
	token, ok := r.(*Token)
	if !ok {
		return Token{}, fault.ErrNotTokenPack
	}
	return *token, nil
}

// UnpackTransaction - decode a packed transaction, the whole buffer must be used
func UnpackTransaction(buffer []byte) (Transaction, error) {
	r, err := unpackAll(buffer, fault.ErrNotTransactionPack)
	if nil != err {
		return Transaction{}, err
	}
	transaction, ok := r.(*Transaction)
	if !ok {
		return Transaction{}, fault.ErrNotTransactionPack
	}
	return *transaction, nil
}

// UnpackContractInfo - decode packed contract info, the whole buffer must be used
func UnpackContractInfo(buffer []byte) (ContractInfo, error) {
	r, err := unpackAll(buffer, fault.ErrNotContractInfoPack)
	if nil != err {
		return ContractInfo{}, err
	}
	info, ok := r.(*ContractInfo)
	if !ok {
		return ContractInfo{}, fault.ErrNotContractInfoPack
	}
	return *info, nil
}

func unpackAll(buffer []byte, trailing error) (interface{}, error) {
	r, n, err := Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, trailing
	}
	return r, nil
}
