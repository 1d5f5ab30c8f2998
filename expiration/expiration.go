// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package expiration

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/util"
)

// Kind - the measure an expiration is checked against
type Kind uint8

// kinds of expiration, the values are persisted
const (
	Never    Kind = 0
	AtHeight Kind = 1
	AtTime   Kind = 2
)

// Expiration - the point after which an approval stops being valid
//
// Value is a block height for AtHeight and Unix nanoseconds for AtTime
type Expiration struct {
	Kind  Kind
	Value uint64
}

var epoch = time.Unix(0, 0)

// Block - the position an expiration is compared with
type Block struct {
	Height uint64
	Time   time.Time
}

// NewNever - an expiration that is never reached
func NewNever() Expiration {
	return Expiration{Kind: Never}
}

// NewAtHeight - expires once the block height reaches height
func NewAtHeight(height uint64) Expiration {
	return Expiration{Kind: AtHeight, Value: height}
}

// NewAtTime - expires once the block time reaches t
//
// times before the Unix epoch are fault.ErrInvalidExpiration
func NewAtTime(t time.Time) (Expiration, error) {
	if t.Before(epoch) {
		return Expiration{}, fault.ErrInvalidExpiration
	}
	return Expiration{Kind: AtTime, Value: uint64(t.UnixNano())}, nil
}

// IsExpired - true once the block is at or past the expiration point
//
// a block without a time, or one before the epoch, has passed no
// AtTime expiration
func (e Expiration) IsExpired(block Block) bool {
	switch e.Kind {
	case AtHeight:
		return block.Height >= e.Value
	case AtTime:
		if block.Time.Before(epoch) {
			return false
		}
		return uint64(block.Time.UnixNano()) >= e.Value
	default:
		return false
	}
}

// Pack - kind byte followed by a varint value
func (e Expiration) Pack() []byte {
	buffer := []byte{byte(e.Kind)}
	if Never == e.Kind {
		return buffer
	}
	return util.AppendVarint64(buffer, e.Value)
}

// Unpack - decode a packed expiration, also returns bytes consumed
func Unpack(buffer []byte) (Expiration, int, error) {
	if 0 == len(buffer) {
		return Expiration{}, 0, fault.ErrNotExpirationPack
	}
	e := Expiration{Kind: Kind(buffer[0])}
	switch e.Kind {
	case Never:
		return e, 1, nil
	case AtHeight, AtTime:
		value, n := util.FromVarint64(buffer[1:])
		if 0 == n || (AtTime == e.Kind && value > math.MaxInt64) {
			return Expiration{}, 0, fault.ErrNotExpirationPack
		}
		e.Value = value
		return e, 1 + n, nil
	default:
		return Expiration{}, 0, fault.ErrNotExpirationPack
	}
}

// Parse - text form used on the command line
//
//	never
//	height:<block height>
//	time:<RFC3339 time>
func Parse(s string) (Expiration, error) {
	if "never" == s || "" == s {
		return NewNever(), nil
	}
	parts := strings.SplitN(s, ":", 2)
	if 2 != len(parts) {
		return Expiration{}, fault.ErrInvalidExpiration
	}
	switch parts[0] {
	case "height":
		height, err := strconv.ParseUint(parts[1], 10, 64)
		if nil != err {
			return Expiration{}, fault.ErrInvalidExpiration
		}
		return NewAtHeight(height), nil
	case "time":
		t, err := time.Parse(time.RFC3339, parts[1])
		if nil != err {
			return Expiration{}, fault.ErrInvalidExpiration
		}
		return NewAtTime(t)
	default:
		return Expiration{}, fault.ErrInvalidExpiration
	}
}

// String - the form accepted by Parse
func (e Expiration) String() string {
	switch e.Kind {
	case AtHeight:
		return fmt.Sprintf("height:%d", e.Value)
	case AtTime:
		return "time:" + time.Unix(0, int64(e.Value)).UTC().Format(time.RFC3339)
	default:
		return "never"
	}
}

// JSON form
type expirationJSON struct {
	AtHeight *uint64   `json:"at_height,omitempty"`
	AtTime   *string   `json:"at_time,omitempty"`
	Never    *struct{} `json:"never,omitempty"`
}

// MarshalJSON - one of {"at_height":n}, {"at_time":"nanoseconds"} or {"never":{}}
func (e Expiration) MarshalJSON() ([]byte, error) {
	j := expirationJSON{}
	switch e.Kind {
	case AtHeight:
		j.AtHeight = &e.Value
	case AtTime:
		s := strconv.FormatUint(e.Value, 10)
		j.AtTime = &s
	default:
		j.Never = &struct{}{}
	}
	return json.Marshal(j)
}

// UnmarshalJSON - inverse of MarshalJSON
func (e *Expiration) UnmarshalJSON(s []byte) error {
	j := expirationJSON{}
	if err := json.Unmarshal(s, &j); nil != err {
		return err
	}
	switch {
	case nil != j.AtHeight && nil == j.AtTime && nil == j.Never:
		*e = NewAtHeight(*j.AtHeight)
	case nil != j.AtTime && nil == j.AtHeight && nil == j.Never:
		value, err := strconv.ParseUint(*j.AtTime, 10, 64)
		if nil != err || value > math.MaxInt64 {
			return fault.ErrInvalidExpiration
		}
		*e = Expiration{Kind: AtTime, Value: value}
	case nil != j.Never && nil == j.AtHeight && nil == j.AtTime:
		*e = NewNever()
	default:
		return fault.ErrInvalidExpiration
	}
	return nil
}
