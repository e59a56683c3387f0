// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"errors"

	"github.com/icza/bitio"
)

// ErrWriterFinished is returned when bits are written after Finish.
var ErrWriterFinished = errors.New("deflate: write after finish")

const defaultBlockSize = 0x8000

// reverseTable maps every byte to the byte with its bit order reversed.
var reverseTable = buildReverseTable()

func buildReverseTable() (table [256]uint8) {
	for i := range table {
		r, n := uint8(0), uint8(i)
		for b := 0; b < 8; b++ {
			r = r<<1 | n&1
			n >>= 1
		}
		table[i] = r
	}
	return table
}

func rev32(n uint32) uint32 {
	return uint32(reverseTable[n&0xff])<<24 |
		uint32(reverseTable[n>>8&0xff])<<16 |
		uint32(reverseTable[n>>16&0xff])<<8 |
		uint32(reverseTable[n>>24&0xff])
}

// byteSink receives the octets completed by the bit packer. Octets are packed
// most significant bit first, so each one is reversed into DEFLATE order.
type byteSink struct {
	buf []byte
}

func (s *byteSink) WriteByte(c byte) error {
	if len(s.buf) == cap(s.buf) {
		grown := make([]byte, len(s.buf), 2*cap(s.buf)+1)
		copy(grown, s.buf)
		s.buf = grown
	}
	s.buf = append(s.buf, reverseTable[c])
	return nil
}

func (s *byteSink) Write(p []byte) (int, error) {
	for _, c := range p {
		s.WriteByte(c)
	}
	return len(p), nil
}

// BitWriter packs integers of arbitrary width into a DEFLATE bit stream.
type BitWriter struct {
	sink     byteSink
	w        *bitio.Writer
	bitLen   uint64
	finished bool
	err      error
}

// NewBitWriter creates a BitWriter whose buffer starts with room for sizeHint bytes.
func NewBitWriter(sizeHint int) *BitWriter {
	if sizeHint < defaultBlockSize {
		sizeHint = defaultBlockSize
	}
	b := &BitWriter{}
	b.sink.buf = make([]byte, 0, sizeHint)
	b.w = bitio.NewWriter(&b.sink)
	return b
}

// WriteBits appends the low n bits of value. Huffman codes are stored most
// significant bit first; header fields and extra bits set reversed so they
// end up least significant bit first.
func (b *BitWriter) WriteBits(value uint32, n uint8, reversed bool) {
	if n == 0 {
		return
	}
	if b.finished {
		b.setErr(ErrWriterFinished)
		return
	}
	if reversed && n > 1 {
		if n > 8 {
			value = rev32(value) >> (32 - n)
		} else {
			value = uint32(reverseTable[value&0xff]) >> (8 - n)
		}
	}
	b.setErr(b.w.WriteBits(uint64(value)&(1<<n-1), n))
	b.bitLen += uint64(n)
}

// Align pads the current octet with zero bits.
func (b *BitWriter) Align() {
	if rest := b.bitLen % 8; rest != 0 {
		b.WriteBits(0, uint8(8-rest), false)
	}
}

// WriteBytes appends p octet by octet. The stream must be aligned.
func (b *BitWriter) WriteBytes(p []byte) {
	for _, c := range p {
		b.WriteBits(uint32(c), 8, true)
	}
}

// Finish flushes a pending partial octet and returns the stream truncated to
// its exact length. No writes are accepted afterwards.
func (b *BitWriter) Finish() ([]byte, error) {
	if !b.finished {
		b.finished = true
		b.setErr(b.w.Close())
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.sink.buf, nil
}

func (b *BitWriter) setErr(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}
