// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

// bitReader reads a DEFLATE bit stream least significant bit first.
type bitReader struct {
	in    []byte
	ip    int    // next unread byte of in
	bits  uint64 // buffered bits, next bit lowest
	nbits uint
	// more reports whether input may still be appended to in. Running out of
	// bits then means suspension instead of a malformed stream.
	more bool
}

type bitState struct {
	ip    int
	bits  uint64
	nbits uint
}

func (br *bitReader) state() bitState {
	return bitState{ip: br.ip, bits: br.bits, nbits: br.nbits}
}

func (br *bitReader) restore(s bitState) {
	br.ip, br.bits, br.nbits = s.ip, s.bits, s.nbits
}

// readBits returns the next n bits, n <= 32.
func (br *bitReader) readBits(n uint) (uint32, error) {
	if br.nbits < n {
		need := int(n-br.nbits+7) / 8
		if br.ip+need > len(br.in) {
			return 0, ErrInputTruncated
		}
		for br.nbits < n {
			br.bits |= uint64(br.in[br.ip]) << br.nbits
			br.ip++
			br.nbits += 8
		}
	}
	v := uint32(br.bits & (1<<n - 1))
	br.bits >>= n
	br.nbits -= n
	return v, nil
}

// readCodeByTable decodes one symbol. It buffers up to MaxLen bits but stops
// at the end of input, so that the last code of a stream can be read with
// exactly the bits left.
func (br *bitReader) readCodeByTable(t *huffman.DecodeTable) (uint16, error) {
	for br.nbits < uint(t.MaxLen) && br.ip < len(br.in) {
		br.bits |= uint64(br.in[br.ip]) << br.nbits
		br.ip++
		br.nbits += 8
	}
	l, sym := t.Lookup(uint32(br.bits))
	if l == 0 || uint(l) > br.nbits {
		// more bits can only help when some code continues the ones buffered
		if br.more && br.nbits < uint(t.MaxLen) && t.HasPrefix(uint32(br.bits), uint8(br.nbits)) {
			return 0, ErrInputTruncated
		}
		return 0, ErrInvalidCode
	}
	br.bits >>= l
	br.nbits -= uint(l)
	return sym, nil
}

// alignToByte drops the bits left in the current byte.
func (br *bitReader) alignToByte() {
	rest := br.nbits % 8
	br.bits >>= rest
	br.nbits -= rest
}

// giveBack returns whole buffered bytes to the input. A partly read byte
// stays consumed.
func (br *bitReader) giveBack() {
	for br.nbits >= 8 {
		br.nbits -= 8
		br.ip--
	}
	br.bits &= 1<<br.nbits - 1
}

// available returns the number of whole bytes readable after giveBack.
func (br *bitReader) available() int {
	return len(br.in) - br.ip
}
