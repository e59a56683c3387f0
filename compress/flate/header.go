// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

// dynamicHeaderReader keeps the tables of the current dynamic block.
type dynamicHeaderReader struct {
	clcTable  huffman.DecodeTable
	litTable  huffman.DecodeTable
	distTable huffman.DecodeTable
	clens     [codeLenCodes]uint8
	lengths   [numLitLenSymbols + numDistSymbols]uint8
}

// setupStaticHeader selects the fixed Huffman tables.
func (state *inflate) setupStaticHeader() {
	state.litTable = staticLitHuffCode
	state.distTable = staticDistHuffCode
	state.phase = phaseHuffman
}

// setupDynamicHeader reads HLIT, HDIST, HCLEN, the code length code and the
// literal/length and distance code lengths, and builds their tables.
func (state *inflate) setupDynamicHeader() error {
	br := &state.br
	ctx := &state.dynHdr
	hlit, err := br.readBits(5)
	if err != nil {
		return err
	}
	hdist, err := br.readBits(5)
	if err != nil {
		return err
	}
	hclen, err := br.readBits(4)
	if err != nil {
		return err
	}
	nlit, ndist := int(hlit)+257, int(hdist)+1
	if nlit > numLitLenSymbols || ndist > numDistSymbols {
		return ErrInvalidBlockHeader
	}

	ctx.clens = [codeLenCodes]uint8{}
	for i := 0; i < int(hclen)+4; i++ {
		v, err := br.readBits(3)
		if err != nil {
			return err
		}
		ctx.clens[codeLengthOrder[i]] = uint8(v)
	}
	if err := ctx.clcTable.Build(ctx.clens[:]); err != nil {
		return ErrInvalidBlockHeader
	}

	if err := state.readLitDistLens(nlit + ndist); err != nil {
		return err
	}
	lengths := ctx.lengths[:nlit+ndist]
	if lengths[256] == 0 {
		return ErrInvalidBlockHeader
	}
	if err := ctx.litTable.Build(lengths[:nlit]); err != nil {
		return ErrInvalidBlockHeader
	}
	if err := ctx.distTable.Build(lengths[nlit:]); err != nil {
		return ErrInvalidBlockHeader
	}
	state.litTable = &ctx.litTable
	state.distTable = &ctx.distTable
	state.phase = phaseHuffman
	return nil
}

// readLitDistLens decodes n run length coded code lengths.
func (state *inflate) readLitDistLens(n int) error {
	br := &state.br
	ctx := &state.dynHdr
	for i := 0; i < n; {
		sym, err := br.readCodeByTable(&ctx.clcTable)
		if err != nil {
			return err
		}
		if sym < 16 {
			ctx.lengths[i] = uint8(sym)
			i++
			continue
		}

		var repeat uint32
		var value uint8
		switch sym {
		case 16:
			if i == 0 {
				return ErrInvalidBlockHeader
			}
			value = ctx.lengths[i-1]
			if repeat, err = br.readBits(2); err != nil {
				return err
			}
			repeat += 3
		case 17:
			if repeat, err = br.readBits(3); err != nil {
				return err
			}
			repeat += 3
		case 18:
			if repeat, err = br.readBits(7); err != nil {
				return err
			}
			repeat += 11
		default:
			return ErrInvalidBlockHeader
		}
		if i+int(repeat) > n {
			return ErrInvalidBlockHeader
		}
		for ; repeat > 0; repeat-- {
			ctx.lengths[i] = value
			i++
		}
	}
	return nil
}
