// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/tokenstore/account"
	"github.com/bitmark-inc/tokenstore/expiration"
	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//
//	switch r := result.(type) {
//	case *record.Token:
func (record Packed) Unpack() (t interface{}, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			t = nil
			n = 0
			e = fault.ErrNotRecordPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.ErrNotRecordPack
	}

	failure := fault.ErrNotRecordPack

unpack_switch:
	switch TagType(recordType) {

	case TokenTag:
		failure = fault.ErrNotTokenPack

		// owner public key
		owner, ownerLength, err := readAccount(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += ownerLength

		// approvals
		approvalCount, approvalCountLength := util.FromVarint64(record[n:])
		if 0 == approvalCountLength || approvalCount > maxApprovals {
			break unpack_switch
		}
		n += approvalCountLength

		approvals := make([]Approval, 0, approvalCount)
		for i := uint64(0); i < approvalCount; i += 1 {
			spender, spenderLength, err := readAccount(record[n:])
			if nil != err {
				return nil, 0, err
			}
			n += spenderLength

			expires, expiresLength, err := expiration.Unpack(record[n:])
			if nil != err {
				return nil, 0, err
			}
			n += expiresLength

			approvals = append(approvals, Approval{
				Spender: *spender,
				Expires: expires,
			})
		}

		// name
		name, nameLength := readString(record[n:], maxNameLength)
		if 0 == nameLength {
			break unpack_switch
		}
		n += nameLength

		// level
		level, levelLength := util.FromVarint64(record[n:])
		if 0 == levelLength {
			break unpack_switch
		}
		n += levelLength

		// description
		description, descriptionLength := readString(record[n:], maxDescriptionLength)
		if 0 == descriptionLength {
			break unpack_switch
		}
		n += descriptionLength

		// optional image
		hasImage, hasImageLength := util.ClippedVarint64(record[n:], 0, 1)
		if 0 == hasImageLength {
			break unpack_switch
		}
		n += hasImageLength

		var image *string
		if 1 == hasImage {
			s, imageLength := readString(record[n:], maxImageLength)
			if 0 == imageLength {
				break unpack_switch
			}
			n += imageLength
			image = &s
		}

		r := &Token{
			Owner:       *owner,
			Approvals:   approvals,
			Name:        name,
			Level:       level,
			Description: description,
			Image:       image,
		}
		return r, n, nil

	case TransactionTag:
		failure = fault.ErrNotTransactionPack

		// user public key
		user, userLength, err := readAccount(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += userLength

		// five strings in order
		fields := make([]string, 5)
		for i := range fields {
			s, sLength := readString(record[n:], maxDataLength)
			if 0 == sLength {
				break unpack_switch
			}
			n += sLength
			fields[i] = s
		}

		// status
		status, statusLength := util.ClippedVarint64(record[n:], 0, 255)
		if 0 == statusLength {
			break unpack_switch
		}
		n += statusLength

		r := &Transaction{
			UserID:            *user,
			ProviderID:        fields[0],
			ServiceID:         fields[1],
			InputData:         fields[2],
			OutputData:        fields[3],
			ExpertsOutputData: fields[4],
			Status:            uint8(status),
		}
		return r, n, nil

	case ContractInfoTag:
		failure = fault.ErrNotContractInfoPack

		name, nameLength := readString(record[n:], maxNameLength)
		if 0 == nameLength {
			break unpack_switch
		}
		n += nameLength

		symbol, symbolLength := readString(record[n:], maxSymbolLength)
		if 0 == symbolLength {
			break unpack_switch
		}
		n += symbolLength

		r := &ContractInfo{
			Name:   name,
			Symbol: symbol,
		}
		return r, n, nil

	default: // also NullTag
	}
	return nil, 0, failure
}

// read a length prefixed account
func readAccount(buffer []byte) (*account.Account, int, error) {
	data, n := util.FromBytes(buffer, maxAccountLength)
	if 0 == n {
		return nil, 0, fault.ErrCannotDecodeAccount
	}
	a, err := account.FromBytes(data)
	if nil != err {
		return nil, 0, err
	}
	return a, n, nil
}

// read a length prefixed string, zero count on failure
func readString(buffer []byte, maximum int) (string, int) {
	data, n := util.FromBytes(buffer, maximum)
	if 0 == n {
		return "", 0
	}
	return string(data), n
}
