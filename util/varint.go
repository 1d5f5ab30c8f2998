// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
//
// Structure of the result
// byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
// byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
// byte 3:  ext | B20 | B19 | B18 | B17 | B16 | B15 | B14
// byte 4:  ext | B27 | B26 | B25 | B24 | B23 | B22 | B21
// byte 5:  ext | B34 | B33 | B32 | B31 | B30 | B29 | B28
// byte 6:  ext | B41 | B40 | B39 | B38 | B37 | B36 | B35
// byte 7:  ext | B48 | B47 | B46 | B45 | B44 | B43 | B42
// byte 8:  ext | B55 | B54 | B53 | B52 | B51 | B50 | B49
// byte 9:  B63 | B62 | B61 | B60 | B59 | B58 | B57 | B56
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	if value < 0x80 {
		result = append(result, byte(value))
		return result
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		result = append(result, byte(value|ext))
		value >>= 7
	}
	return result
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)

	shift := uint(0)
	count := 0

	for count < len(buffer) {
		currByte := uint64(buffer[count])
		count += 1
		if count < Varint64MaximumBytes {
			result |= currByte & 0x7f << shift
			if 0 == currByte&0x80 {
				return result, count
			}
		} else {
			result |= currByte << shift
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// ClippedVarint64 - return a positive clipped value as an int
// any value outside the range minimum..maximum is an error
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, count := FromVarint64(buffer)
	if 0 == count {
		return 0, 0
	}
	iValue := int(value)
	if iValue < minimum || iValue > maximum {
		return 0, 0
	}
	return iValue, count
}

// AppendVarint64 - append the Varint64 form of a value to a buffer
func AppendVarint64(buffer []byte, value uint64) []byte {
	return append(buffer, ToVarint64(value)...)
}

// AppendBytes - append Varint64(length) followed by the data
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// FromBytes - read a Varint64 length prefixed item from the start of a buffer
//
// returns the item and the total number of bytes consumed
// returns nil, 0 if the buffer is truncated or the length exceeds maximum
func FromBytes(buffer []byte, maximum int) ([]byte, int) {
	length, n := FromVarint64(buffer)
	if 0 == n || length > uint64(maximum) {
		return nil, 0
	}
	end := n + int(length)
	if end > len(buffer) {
		return nil, 0
	}
	return buffer[n:end], end
}
