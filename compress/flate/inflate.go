// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

const (
	phaseNewBlock = iota
	phaseLitBlock
	phaseHuffman
	phaseFinish
)

// inflate is the decompressor state machine. Before every block header and
// every Huffman symbol it records a checkpoint; when the reader may receive
// more input, running out of bits rewinds to the checkpoint so that decoding
// resumes there once input is appended.
type inflate struct {
	br     bitReader
	acc    accumulator
	phase  int
	bfinal bool

	litBlockLength int // bytes left in the current stored block

	litTable  *huffman.DecodeTable
	distTable *huffman.DecodeTable
	dynHdr    dynamicHeaderReader

	checkpoint bitState
}

func (state *inflate) reset(acc accumulator) {
	state.br = bitReader{}
	state.acc = acc
	state.phase = phaseNewBlock
	state.bfinal = false
	state.litBlockLength = 0
	state.litTable = nil
	state.distTable = nil
	acc.reset()
}

func (state *inflate) save() {
	state.checkpoint = state.br.state()
}

// run decodes until the final block ends, the input runs out or an error is
// found. A suspension for more input returns nil with phase != phaseFinish.
func (state *inflate) run() error {
	for state.phase != phaseFinish {
		var err error
		switch state.phase {
		case phaseNewBlock:
			err = state.readHeader()
		case phaseLitBlock:
			err = state.decodeLiteralBlock()
		case phaseHuffman:
			err = state.decodeHuffman()
		}
		if err == ErrInputTruncated && state.br.more {
			state.br.restore(state.checkpoint)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readHeader reads the three header bits of a block and what follows them up
// to the first byte or symbol of data.
func (state *inflate) readHeader() error {
	state.save()
	br := &state.br
	bfinal, err := br.readBits(1)
	if err != nil {
		return err
	}
	btype, err := br.readBits(2)
	if err != nil {
		return err
	}
	switch btype {
	case 0:
		err = state.prepareForLitBlock()
	case 1:
		state.setupStaticHeader()
	case 2:
		err = state.setupDynamicHeader()
	default:
		err = ErrInvalidBlockType
	}
	if err != nil {
		return err
	}
	state.bfinal = bfinal == 1
	return nil
}

func (state *inflate) prepareForLitBlock() error {
	br := &state.br
	br.alignToByte()
	br.giveBack()
	if br.available() < 4 {
		return ErrInputTruncated
	}
	in := br.in[br.ip:]
	length := uint16(in[0]) | uint16(in[1])<<8
	nlen := uint16(in[2]) | uint16(in[3])<<8
	if nlen != ^length {
		return ErrInvalidBlockHeader
	}
	br.ip += 4
	state.litBlockLength = int(length)
	state.phase = phaseLitBlock
	return nil
}

// endBlock moves to the next block, or finishes the stream after the final
// one, handing unread whole bytes back to the input.
func (state *inflate) endBlock() {
	if state.bfinal {
		state.br.giveBack()
		state.phase = phaseFinish
		return
	}
	state.phase = phaseNewBlock
}

// growth describes the decoding progress to the accumulator.
func (state *inflate) growth(fixRatio int) growth {
	g := growth{
		inputLen: len(state.br.in),
		ip:       state.br.ip,
		fixRatio: fixRatio,
	}
	if state.litTable != nil {
		g.minLitLen = int(state.litTable.MinLen)
	}
	return g
}
