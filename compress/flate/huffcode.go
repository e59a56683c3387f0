// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/intel/zlibgo/compress/flate/internal/deflate"
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

const (
	numLitLenSymbols = 286
	numDistSymbols   = 30
	codeLenCodes     = 19
)

// staticLitHuffCode and staticDistHuffCode decode fixed Huffman blocks.
// Symbols 286, 287, 30 and 31 complete the codes but never appear in a
// valid stream.
var (
	staticLitHuffCode  = mustDecodeTable(fixedLitLenLengths())
	staticDistHuffCode = mustDecodeTable(fixedDistLengths())
)

func fixedLitLenLengths() []uint8 {
	lengths := make([]uint8, 288)
	for i := range lengths {
		switch {
		case i < 144:
			lengths[i] = 8
		case i < 256:
			lengths[i] = 9
		case i < 280:
			lengths[i] = 7
		default:
			lengths[i] = 8
		}
	}
	return lengths
}

func fixedDistLengths() []uint8 {
	lengths := make([]uint8, 32)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}

func mustDecodeTable(lengths []uint8) *huffman.DecodeTable {
	t, err := huffman.BuildDecodeTable(lengths)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	lengthBase      = deflate.LengthBase
	lengthExtraBits = deflate.LengthExtraBits
	distBase        = deflate.DistBase
	distExtraBits   = deflate.DistExtraBits
)

var codeLengthOrder = [codeLenCodes]uint8{
	0x10, 0x11, 0x12, 0x00, 0x08, 0x07, 0x09, 0x06,
	0x0a, 0x05, 0x0b, 0x04, 0x0c, 0x03, 0x0d, 0x02, 0x0e, 0x01, 0x0f,
}
