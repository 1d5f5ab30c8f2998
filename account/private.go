// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"io"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tokenstore/fault"
)

// PrivateKey - ed25519 private key for an account
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// NewPrivateKey - generate a key pair from a source of randomness
func NewPrivateKey(test bool, random io.Reader) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(random)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: priv,
	}, nil
}

// PrivateKeyFromBase58 - decode the checksummed text form of a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	privateKeyDecoded, err := base58.Decode(privateKeyBase58Encoded)
	if nil != err || 0 == len(privateKeyDecoded) {
		return nil, fault.ErrCannotDecodePrivateKey
	}

	if 1+ed25519.PrivateKeySize+checksumLength != len(privateKeyDecoded) {
		return nil, fault.ErrInvalidKeyLength
	}

	// private keys never carry the public key bit
	keyVariant := privateKeyDecoded[0]
	if keyVariant&publicKeyCode == publicKeyCode {
		return nil, fault.ErrNotPrivateKey
	}
	if ED25519 != int(keyVariant>>algorithmShift) {
		return nil, fault.ErrInvalidKeyType
	}

	checksumStart := len(privateKeyDecoded) - checksumLength
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(priv, privateKeyDecoded[1:checksumStart])

	return &PrivateKey{
		Test:       0 != keyVariant&testKeyCode,
		PrivateKey: priv,
	}, nil
}

// Account - the account whose public key pairs with this key
func (privateKey *PrivateKey) Account() *Account {
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey.PrivateKey.Public().(ed25519.PublicKey))
	return &Account{
		Test:      privateKey.Test,
		PublicKey: publicKey,
	}
}

// Bytes - key code followed by the raw private key
func (privateKey *PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	if privateKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, privateKey.PrivateKey...)
}

// String - base58 encoding of the binary form with a checksum
func (privateKey *PrivateKey) String() string {
	buffer := privateKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert a private key to its Base58 JSON form
func (privateKey PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}
