// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised          = ExistsError("already initialised")
	ErrCannotDecodeAccount         = RecordError("cannot decode account")
	ErrCannotDecodePrivateKey      = RecordError("cannot decode private key")
	ErrChecksumMismatch            = ProcessError("checksum mismatch")
	ErrCounterOverflow             = ProcessError("counter overflow")
	ErrDatabaseIsNotSet            = ProcessError("database is not set")
	ErrDuplicateIndex              = ExistsError("duplicate index name")
	ErrDuplicateNamespace          = ExistsError("duplicate namespace")
	ErrFieldTooLong                = LengthError("field too long")
	ErrIncompatibleDatabaseVersion = InvalidError("incompatible database version")
	ErrIndexCorruption             = RecordError("index entry points to a missing record")
	ErrInvalidConfiguration        = InvalidError("invalid configuration")
	ErrInvalidCount                = InvalidError("invalid count")
	ErrInvalidCursor               = InvalidError("invalid cursor")
	ErrInvalidExpiration           = InvalidError("invalid expiration")
	ErrInvalidKeyLength            = LengthError("invalid key length")
	ErrInvalidKeyType              = InvalidError("invalid key type")
	ErrInvalidLoggerChannel        = InvalidError("invalid logger channel")
	ErrInvalidNamespace            = InvalidError("invalid namespace")
	ErrInvalidStructPointer        = InvalidError("invalid struct pointer")
	ErrKeyTooLong                  = LengthError("key too long")
	ErrMinterAlreadySet            = ExistsError("minter already set")
	ErrNotContractInfoPack         = RecordError("not contract info pack")
	ErrNotCounterPack              = RecordError("not counter pack")
	ErrNotExpirationPack           = RecordError("not expiration pack")
	ErrNotFound                    = NotFoundError("not found")
	ErrNotInitialised              = ProcessError("not initialised")
	ErrNotPrivateKey               = InvalidError("not private key")
	ErrNotPublicKey                = InvalidError("not public key")
	ErrNotRecordPack               = RecordError("not record pack")
	ErrNotTokenPack                = RecordError("not token pack")
	ErrNotTransactionPack          = RecordError("not transaction pack")
	ErrTokenAlreadyExists          = ExistsError("token already exists")
	ErrTransactionAlreadyExists    = ExistsError("transaction already exists")
	ErrTransactionClosed           = ProcessError("transaction already finished")
	ErrTransactionInUse            = ProcessError("transaction already in use")
	ErrUnauthorised                = InvalidError("unauthorised")
	ErrUnknownIndex                = InvalidError("unknown index")
	ErrUnknownNamespace            = NotFoundError("unknown namespace")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
