// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"bytes"
	"testing"

	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

func TestReadCodeIncompleteTable(t *testing.T) {
	// codes 00 and 01; every pattern starting with a 1 bit is unused
	table, err := huffman.BuildDecodeTable([]uint8{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		bits  uint64
		nbits uint
		more  bool
		err   error
	}{
		{0b0, 1, true, ErrInputTruncated},
		{0b1, 1, true, ErrInvalidCode},
		{0b0, 1, false, ErrInvalidCode},
		{0b11, 2, true, ErrInvalidCode},
		{0, 0, true, ErrInputTruncated},
	}
	for _, c := range cases {
		br := bitReader{bits: c.bits, nbits: c.nbits, more: c.more}
		if _, err := br.readCodeByTable(table); err != c.err {
			t.Fatalf("bits %b/%d more %v: expected %v, got %v", c.bits, c.nbits, c.more, c.err, err)
		}
	}

	br := bitReader{bits: 0b10, nbits: 2, more: true}
	if sym, err := br.readCodeByTable(table); err != nil || sym != 1 {
		t.Fatalf("expected symbol 1, got %d, %v", sym, err)
	}
}

func TestInflaterCorruptCodeAtEnd(t *testing.T) {
	// dynamic block whose literal code only has 'a' (00) and end of block
	// (01); the single bit left after two literals selects no code
	b := &bitWriter{}
	b.field(1, 1)
	b.field(2, 2)
	b.field(0, 5) // HLIT 257
	b.field(0, 5) // HDIST 1
	b.field(15, 4)
	// code length code: lengths 0, 1 and 2 used, 18 for the zero runs
	clens := map[int]uint32{18: 2, 0: 2, 1: 2, 2: 2}
	for _, sym := range codeLengthOrder {
		b.field(clens[int(sym)], 3)
	}
	// canonical code length codes: 0 -> 00, 1 -> 01, 2 -> 10, 18 -> 11
	b.bits(0b11, 2)
	b.field(97-11, 7) // 97 zeros
	b.bits(0b10, 2)   // 'a': 2
	b.bits(0b11, 2)
	b.field(138-11, 7)
	b.bits(0b11, 2)
	b.field(158-138-11, 7) // up to 256
	b.bits(0b10, 2)        // end of block: 2
	b.bits(0b01, 2)        // distance 0: 1
	b.bits(0b00, 2)        // 'a'
	b.bits(0b00, 2)        // 'a'
	b.bits(0b1, 1)         // unused pattern, the last bit of the stream
	stream := b.out
	if b.nbits%8 != 0 {
		t.Fatalf("the unused pattern must end the input, %d bits written", b.nbits)
	}

	f := NewInflater(0)
	out, err := f.Decompress(stream)
	if err != ErrInvalidCode {
		t.Fatalf("expected ErrInvalidCode, got %v (%q)", err, out)
	}
	if !bytes.Equal(out, []byte("aa")) {
		t.Fatalf("unexpected output %q", out)
	}
	if err := f.Close(); err != ErrInvalidCode {
		t.Fatalf("Close: expected ErrInvalidCode, got %v", err)
	}
}
