// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tokenstore/fault"
)

// enumeration of supported key algorithms
const (
	// list of valid algorithms
	Nothing = iota // zero keytype, never a valid account
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm

	// key code byte followed by the public key
	Length = 1 + ed25519.PublicKeySize
)

// Account - an owner identity, the ed25519 public key of its holder
//
// the binary form is fixed length so it sorts and compares as plain
// bytes, which makes it usable directly as a secondary index key
type Account struct {
	Test      bool
	PublicKey []byte
}

// FromBase58 - decode the checksummed text form of an account
func FromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	if len(accountDecoded) <= checksumLength {
		return nil, fault.ErrInvalidKeyLength
	}
	checksumStart := len(accountDecoded) - checksumLength

	account, err := FromBytes(accountDecoded[:checksumStart])
	if nil != err {
		return nil, err
	}

	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return account, nil
}

// FromBytes - decode the binary form of an account
func FromBytes(accountBytes []byte) (*Account, error) {
	if 0 == len(accountBytes) {
		return nil, fault.ErrNotPublicKey
	}

	// a single byte key code
	keyVariant := accountBytes[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}

	keyAlgorithm := int(keyVariant >> algorithmShift)
	if keyAlgorithm >= algorithmLimit || Nothing == keyAlgorithm {
		return nil, fault.ErrInvalidKeyType
	}

	if Length != len(accountBytes) {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, accountBytes[1:])

	return &Account{
		Test:      0 != keyVariant&testKeyCode,
		PublicKey: publicKey,
	}, nil
}

// KeyType - key algorithm code
func (account *Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - the raw public key
func (account *Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// IsTesting - true for an account on the test network
func (account *Account) IsTesting() bool {
	return account.Test
}

// IsZero - true if the public key is all zero bytes
func (account *Account) IsZero() bool {
	for _, b := range account.PublicKey {
		if 0 != b {
			return false
		}
	}
	return true
}

// Bytes - the fixed length binary form
func (account *Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey[:]...)
}

// String - base58 encoding of the binary form with a checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its Base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert Base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}
