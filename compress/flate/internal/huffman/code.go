// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "math/bits"

// GenerateCode assigns canonical codes to lengths and writes them into codes
// in reversed format, ready to be written least significant bit first.
// Codes are ordered by increasing length, then by increasing symbol.
func GenerateCode(lengths []uint8, codes []uint16) {
	var blCount [MaxCodeLength + 1]uint16
	maxBits := 0
	for _, v := range lengths {
		blCount[v]++
		if int(v) > maxBits {
			maxBits = int(v)
		}
	}
	blCount[0] = 0

	var nextCodes [MaxCodeLength + 1]uint16
	code := uint16(0)
	for n := 1; n <= maxBits; n++ {
		code = (code + blCount[n-1]) << 1
		nextCodes[n] = code
	}
	for i, l := range lengths {
		if l == 0 {
			codes[i] = 0
			continue
		}
		codes[i] = bits.Reverse16(nextCodes[l]) >> (16 - l)
		nextCodes[l]++
	}
}

// Codes returns the reversed canonical codes for lengths.
func Codes(lengths []uint8) []uint16 {
	codes := make([]uint16, len(lengths))
	GenerateCode(lengths, codes)
	return codes
}
