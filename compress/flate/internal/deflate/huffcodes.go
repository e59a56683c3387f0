// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

// histogram counts how often every literal/length and distance symbol occurs
// in a symbol stream.
type histogram struct {
	literalCodes  [numLitLen]uint32 // lit[0,255] | end_of_block[256] | len symbols[257,285]
	distanceCodes [numDist]uint32
}

// reset clears the counts. The end of block symbol occurs at least once.
func (h *histogram) reset() {
	for i := range h.literalCodes {
		h.literalCodes[i] = 0
	}
	for i := range h.distanceCodes {
		h.distanceCodes[i] = 0
	}
	h.literalCodes[endOfBlock] = 1
}

// huffcodeTable holds the code lengths and bit reversed codes of one block.
type huffcodeTable struct {
	litLens   [numLitLen]uint8
	litCodes  [numLitLen]uint16
	distLens  [numDist]uint8
	distCodes [numDist]uint16
}

// generate builds length limited codes for the counts in hist.
func (t *huffcodeTable) generate(gen huffman.TreeGenerator, hist *histogram) error {
	if err := gen.Generate(maxLitLenCodeLength, hist.literalCodes[:], t.litLens[:]); err != nil {
		return err
	}
	if err := gen.Generate(maxDistCodeLength, hist.distanceCodes[:], t.distLens[:]); err != nil {
		return err
	}
	used := false
	for _, l := range t.distLens {
		if l != 0 {
			used = true
			break
		}
	}
	if !used {
		// an empty distance tree is still sent with one code
		t.distLens[0] = 1
	}
	huffman.GenerateCode(t.litLens[:], t.litCodes[:])
	huffman.GenerateCode(t.distLens[:], t.distCodes[:])
	return nil
}

const (
	maxLitLenCodeLength = 15
	maxDistCodeLength   = 15
	maxCodeLenCodeBits  = 7
)

// fixedLitCode returns the fixed Huffman code of a literal/length symbol
// (RFC1951 3.2.6), most significant bit first.
func fixedLitCode(sym uint32) (code uint32, length uint8) {
	switch {
	case sym <= 143:
		return 0x30 + sym, 8
	case sym <= 255:
		return 0x190 + sym - 144, 9
	case sym <= 279:
		return sym - 256, 7
	default:
		return 0xc0 + sym - 280, 8
	}
}
