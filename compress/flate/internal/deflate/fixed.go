// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

var _ blockCompressor = &fixedCompressor{}

type fixedCompressor struct {
	lz77 *lz77Matcher
}

// compress writes data as a single final block with the fixed codes.
func (c *fixedCompressor) compress(data []byte, b *BitWriter) error {
	b.WriteBits(1, 1, true)
	b.WriteBits(1, 2, true)
	symbols, _ := c.lz77.encode(data)
	writeFixedSymbols(symbols, b)
	return nil
}

func writeFixedSymbols(symbols []uint16, b *BitWriter) {
	for i := 0; i < len(symbols); i++ {
		sym := uint32(symbols[i])
		code, length := fixedLitCode(sym)
		b.WriteBits(code, length, false)
		switch {
		case sym == endOfBlock:
			return
		case sym > endOfBlock:
			m := symbols[i+1 : i+matchTokens]
			b.WriteBits(uint32(m[0]), uint8(m[1]), true)
			b.WriteBits(uint32(m[2]), 5, false)
			b.WriteBits(uint32(m[3]), uint8(m[4]), true)
			i += matchTokens - 1
		}
	}
}
