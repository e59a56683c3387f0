// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"fmt"
	"math/bits"
)

const (
	endOfBlock = 256
	// a match occupies six entries of the symbol stream:
	// length symbol, length extra value, length extra bit count,
	// distance symbol, distance extra value, distance extra bit count
	matchTokens = 6

	numLitLen = 286
	numDist   = 30
)

// LengthBase and LengthExtraBits describe length symbols 257..285.
var (
	LengthBase = [29]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	LengthExtraBits = [29]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
)

// DistBase and DistExtraBits describe distance symbols 0..29.
var (
	DistBase = [30]uint16{
		0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0007, 0x0009, 0x000d,
		0x0011, 0x0019, 0x0021, 0x0031, 0x0041, 0x0061, 0x0081, 0x00c1,
		0x0101, 0x0181, 0x0201, 0x0301, 0x0401, 0x0601, 0x0801, 0x0c01,
		0x1001, 0x1801, 0x2001, 0x3001, 0x4001, 0x6001,
	}
	DistExtraBits = [30]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// getLengthSymbol maps a match length in [3,258] to its symbol and extra bits.
func getLengthSymbol(length uint32) (sym, extra, extraBits uint32) {
	switch {
	case length == maxMatchLength:
		return 285, 0, 0
	case length <= 10:
		return 257 + length - minMatchLength, 0, 0
	}
	l := length - minMatchLength
	extraBits = uint32(32-bits.LeadingZeros32(l)) - 3
	extra = l & (1<<extraBits - 1)
	sym = 257 + l>>extraBits + 4*extraBits
	return sym, extra, extraBits
}

// getDistSymbol maps a distance in [1,32768] to its symbol and extra bits.
func getDistSymbol(dist uint32) (sym, extra, extraBits uint32) {
	if dist <= 2 {
		return dist - 1, 0, 0
	}
	dist--
	msb := 32 - bits.LeadingZeros32(dist)
	extraBits = uint32(msb - 2)
	extra = dist & (1<<extraBits - 1)
	dist >>= extraBits
	sym = dist + 2*extraBits
	return sym, extra, extraBits
}

// appendMatch appends the six entries describing a match.
func appendMatch(symbols []uint16, length, dist uint32) []uint16 {
	lsym, lextra, lbits := getLengthSymbol(length)
	dsym, dextra, dbits := getDistSymbol(dist)
	return append(symbols,
		uint16(lsym), uint16(lextra), uint16(lbits),
		uint16(dsym), uint16(dextra), uint16(dbits),
	)
}

// Match is a back reference of Length bytes starting Distance bytes back.
type Match struct {
	Length   int
	Distance int
}

func (m Match) String() string {
	return fmt.Sprintf("<LEN/DIST %d / %d>", m.Length, m.Distance)
}

// match decodes the six entries at symbols[i:] back into a Match.
func match(symbols []uint16) Match {
	l := int(symbols[0]) - 257
	d := int(symbols[3])
	return Match{
		Length:   int(LengthBase[l]) + int(symbols[1]),
		Distance: int(DistBase[d]) + int(symbols[4]),
	}
}
