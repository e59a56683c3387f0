// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "math/bits"

// DecodeTable maps every MaxLen-bit pattern, read least significant bit
// first, to the symbol whose code is a prefix of it.
// Each entry is packed as length<<16 | symbol; a zero entry matches no code.
type DecodeTable struct {
	Entries []uint32
	MaxLen  uint8
	MinLen  uint8
}

// Lookup returns the code length and symbol for the low MaxLen bits of b.
func (t *DecodeTable) Lookup(b uint32) (length uint8, symbol uint16) {
	e := t.Entries[b&(1<<t.MaxLen-1)]
	return uint8(e >> 16), uint16(e)
}

// HasPrefix reports whether a code starts with the n low bits of b, n < MaxLen.
func (t *DecodeTable) HasPrefix(b uint32, n uint8) bool {
	if n >= t.MaxLen {
		l, _ := t.Lookup(b)
		return l != 0 && l <= n
	}
	step := 1 << n
	for i := int(b & (1<<n - 1)); i < len(t.Entries); i += step {
		if t.Entries[i] != 0 {
			return true
		}
	}
	return false
}

// BuildDecodeTable builds the decode table for the canonical code described
// by lengths. Incomplete codes are accepted; their unused slots stay zero.
func BuildDecodeTable(lengths []uint8) (*DecodeTable, error) {
	t := &DecodeTable{}
	if err := t.Build(lengths); err != nil {
		return nil, err
	}
	return t, nil
}

// Build rebuilds t in place, reusing its entry storage when possible.
func (t *DecodeTable) Build(lengths []uint8) error {
	var count [MaxCodeLength + 1]int
	maxLen, minLen := uint8(0), uint8(0)
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l > MaxCodeLength {
			return ErrOversubscribed
		}
		count[l]++
		if l > maxLen {
			maxLen = l
		}
		if minLen == 0 || l < minLen {
			minLen = l
		}
	}

	// Kraft: the codes of each length must fit in what the shorter ones left
	left := 1
	for l := 1; l <= int(maxLen); l++ {
		left <<= 1
		left -= count[l]
		if left < 0 {
			return ErrOversubscribed
		}
	}

	size := 1 << maxLen
	if cap(t.Entries) < size {
		t.Entries = make([]uint32, size)
	}
	t.Entries = t.Entries[:size]
	for i := range t.Entries {
		t.Entries[i] = 0
	}
	t.MaxLen = maxLen
	t.MinLen = minLen

	code := 0
	skip := 2
	for l := uint8(1); l <= maxLen; l++ {
		for sym, sl := range lengths {
			if sl != l {
				continue
			}
			reversed := int(bits.Reverse16(uint16(code)) >> (16 - l))
			for j := reversed; j < size; j += skip {
				t.Entries[j] = uint32(l)<<16 | uint32(sym)
			}
			code++
		}
		code <<= 1
		skip <<= 1
	}
	return nil
}
