// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

var _ blockCompressor = &dynCompressor{}

type dynCompressor struct {
	lz77  *lz77Matcher
	gen   *huffman.LenLimitedCode
	codes huffcodeTable
	hdr   *dynamicHeader
}

func newDynCompressor(lazy int) *dynCompressor {
	gen := huffman.NewLenLimitedCode()
	return &dynCompressor{
		lz77: newLZ77Matcher(lazy),
		gen:  gen,
		hdr:  newDynamicHeader(gen),
	}
}

// compress writes data as a single final block with codes built from its
// symbol frequencies.
func (c *dynCompressor) compress(data []byte, b *BitWriter) error {
	symbols, hist := c.lz77.encode(data)
	if err := c.codes.generate(c.gen, hist); err != nil {
		return err
	}
	if err := c.hdr.prepare(&c.codes); err != nil {
		return err
	}
	b.WriteBits(1, 1, true)
	b.WriteBits(2, 2, true)
	c.hdr.writeTo(b)
	c.encodeSymbols(symbols, b)
	return nil
}

func (c *dynCompressor) encodeSymbols(symbols []uint16, b *BitWriter) {
	t := &c.codes
	for i := 0; i < len(symbols); i++ {
		sym := symbols[i]
		b.WriteBits(uint32(t.litCodes[sym]), t.litLens[sym], true)
		switch {
		case sym == endOfBlock:
			return
		case sym > endOfBlock:
			m := symbols[i+1 : i+matchTokens]
			b.WriteBits(uint32(m[0]), uint8(m[1]), true)
			b.WriteBits(uint32(t.distCodes[m[2]]), t.distLens[m[2]], true)
			b.WriteBits(uint32(m[3]), uint8(m[4]), true)
			i += matchTokens - 1
		}
	}
}
