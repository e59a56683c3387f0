// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"errors"
	"math/rand"
	"testing"
)

func randomFreqs(r *rand.Rand, n int) []uint32 {
	freqs := make([]uint32, n)
	for i := range freqs {
		switch r.Intn(4) {
		case 0:
			// unused symbol
		case 1:
			freqs[i] = uint32(r.Intn(4) + 1)
		case 2:
			freqs[i] = uint32(r.Intn(100000) + 1)
		default:
			// skewed weights force long codes
			freqs[i] = uint32(1) << uint(r.Intn(20))
		}
	}
	return freqs
}

func kraft(lengths []uint8, limit int) (sum int) {
	for _, l := range lengths {
		if l != 0 {
			sum += 1 << (limit - int(l))
		}
	}
	return sum
}

func cost(freqs []uint32, lengths []uint8) (c uint64) {
	for i, f := range freqs {
		c += uint64(f) * uint64(lengths[i])
	}
	return c
}

func TestHeapOrder(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	var h freqHeap
	for i := 0; i < 500; i++ {
		h.push(uint16(i), uint32(r.Intn(50)))
	}
	nodes := h.drain(nil)
	if len(nodes) != 500 || h.Len() != 0 {
		t.Fatalf("expected 500 drained nodes, got %d (left %d)", len(nodes), h.Len())
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i].freq > nodes[i-1].freq {
			t.Fatalf("heap order broken at %d: %d > %d", i, nodes[i].freq, nodes[i-1].freq)
		}
	}
}

func TestLenLimitedContract(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	gen := NewLenLimitedCode()
	for _, limit := range []int{7, 9, 15} {
		for _, n := range []int{2, 3, 19, 30, 286} {
			for trial := 0; trial < 50; trial++ {
				freqs := randomFreqs(r, n)
				lengths := make([]uint8, n)
				err := gen.Generate(limit, freqs, lengths)
				if errors.Is(err, ErrUnsupportedFeature) {
					continue
				}
				if err != nil {
					t.Fatal(err)
				}
				used := 0
				for i, l := range lengths {
					if int(l) > limit {
						t.Fatalf("limit %d: symbol %d got length %d", limit, i, l)
					}
					if (freqs[i] == 0) != (l == 0) {
						t.Fatalf("symbol %d freq %d got length %d", i, freqs[i], l)
					}
					if l != 0 {
						used++
					}
				}
				if used > 1 && kraft(lengths, limit) != 1<<limit {
					t.Fatalf("limit %d: code is not complete: %d/%d", limit, kraft(lengths, limit), 1<<limit)
				}

				// package-merge alone finds a code of the same cost
				if used > 1 {
					if a, b := cost(freqs, lengths), packageMergeCost(gen, limit); a != b {
						t.Fatalf("limit %d: generated cost %d, package-merge cost %d", limit, a, b)
					}
				}
			}
		}
	}
}

func TestLenLimitedForcesLimit(t *testing.T) {
	// fibonacci weights would need 24 bit codes without a limit
	freqs := make([]uint32, 25)
	a, b := uint32(1), uint32(1)
	for i := range freqs {
		freqs[i] = a
		a, b = b, a+b
	}
	lengths := make([]uint8, len(freqs))
	if err := NewLenLimitedCode().Generate(7, freqs, lengths); err != nil {
		t.Fatal(err)
	}
	if k := kraft(lengths, 7); k > 1<<7 {
		t.Fatalf("kraft sum %d exceeds %d", k, 1<<7)
	}
	for i, l := range lengths {
		if l == 0 || l > 7 {
			t.Fatalf("symbol %d got length %d", i, l)
		}
	}
	if _, maxLen := optimalLengths(freqs); maxLen != 24 {
		t.Fatalf("expected a 24 bit optimal code, got %d bits", maxLen)
	}
}

func TestMinimumRedundancy(t *testing.T) {
	w := []uint32{10, 6, 2, 1, 1}
	if maxLen := minimumRedundancy(w); maxLen != 4 {
		t.Fatalf("expected 4 bit codes, got %d", maxLen)
	}
	for i, l := range []uint32{1, 2, 3, 4, 4} {
		if w[i] != l {
			t.Fatalf("expected lengths 1 2 3 4 4, got %v", w)
		}
	}

	w = []uint32{7, 7, 7, 7}
	if maxLen := minimumRedundancy(w); maxLen != 2 || w[0] != 2 || w[3] != 2 {
		t.Fatalf("equal weights got lengths %v", w)
	}
	w = []uint32{5}
	if maxLen := minimumRedundancy(w); maxLen != 1 || w[0] != 1 {
		t.Fatalf("single weight got length %v", w)
	}
}

func TestLenLimitedUsesOptimalCode(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	gen := NewLenLimitedCode()
	fitted := 0
	for trial := 0; trial < 200; trial++ {
		freqs := make([]uint32, 286)
		for i := range freqs {
			freqs[i] = uint32(r.Intn(1000))
		}
		optimal, maxLen := optimalLengths(freqs)
		if maxLen > 15 {
			continue
		}
		fitted++
		lengths := make([]uint8, len(freqs))
		if err := gen.Generate(15, freqs, lengths); err != nil {
			t.Fatal(err)
		}
		for i := range lengths {
			if lengths[i] != optimal[i] {
				t.Fatalf("symbol %d: got length %d, optimal code has %d", i, lengths[i], optimal[i])
			}
		}
	}
	if fitted == 0 {
		t.Fatal("no optimal code fitted 15 bits")
	}
}

// optimalLengths returns unlimited minimum-redundancy code lengths for freqs
// and the longest of them.
func optimalLengths(freqs []uint32) ([]uint8, uint32) {
	var h freqHeap
	for i, v := range freqs {
		if v != 0 {
			h.push(uint16(i), v)
		}
	}
	nodes := h.drain(nil)
	w := make([]uint32, len(nodes))
	for i, v := range nodes {
		w[i] = v.freq
	}
	maxLen := minimumRedundancy(w)
	lengths := make([]uint8, len(freqs))
	for i, v := range nodes {
		lengths[v.symbol] = uint8(w[i])
	}
	return lengths, maxLen
}

// packageMergeCost runs package-merge alone on the weights of the last
// Generate call of l.
func packageMergeCost(l *LenLimitedCode, limit int) (c uint64) {
	l.reversePackageMerge(l.weights, limit)
	for i, w := range l.weights {
		c += uint64(w) * uint64(l.lens[i])
	}
	return c
}

func TestLenLimitedEdgeCases(t *testing.T) {
	gen := NewLenLimitedCode()
	lengths := make([]uint8, 30)

	if err := gen.Generate(15, make([]uint32, 30), lengths); err != nil {
		t.Fatal(err)
	}
	for i, l := range lengths {
		if l != 0 {
			t.Fatalf("empty table: symbol %d got length %d", i, l)
		}
	}

	freqs := make([]uint32, 30)
	freqs[17] = 42
	if err := gen.Generate(15, freqs, lengths); err != nil {
		t.Fatal(err)
	}
	if lengths[17] != 1 {
		t.Fatalf("single symbol should get length 1, got %d", lengths[17])
	}

	many := make([]uint32, 286)
	for i := range many {
		many[i] = 1
	}
	if err := gen.Generate(7, many, make([]uint8, 286)); !errors.Is(err, ErrUnsupportedFeature) {
		t.Fatalf("expected ErrUnsupportedFeature, got %v", err)
	}
	if err := gen.Generate(8, many[:256], make([]uint8, 256)); err != nil {
		t.Fatalf("256 symbols fit in 8 bits: %v", err)
	}
}

func TestCodesFromLengths(t *testing.T) {
	codes := Codes([]uint8{2, 1, 3, 3})
	// canonical codes 10, 0, 110, 111 stored bit reversed
	expected := []uint16{0b01, 0b0, 0b011, 0b111}
	for i := range expected {
		if codes[i] != expected[i] {
			t.Fatalf("symbol %d: expected code %b, got %b", i, expected[i], codes[i])
		}
	}
}

func TestDecodeTable(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	gen := NewLenLimitedCode()
	for trial := 0; trial < 100; trial++ {
		n := 2 + r.Intn(285)
		freqs := randomFreqs(r, n)
		lengths := make([]uint8, n)
		if err := gen.Generate(15, freqs, lengths); err != nil {
			t.Fatal(err)
		}
		codes := Codes(lengths)
		table, err := BuildDecodeTable(lengths)
		if err != nil {
			t.Fatal(err)
		}
		for sym, l := range lengths {
			if l == 0 {
				continue
			}
			// every pattern starting with the code decodes to the symbol
			for pad := 0; pad < 1<<(table.MaxLen-l); pad += 1 + r.Intn(7) {
				pattern := uint32(codes[sym]) | uint32(pad)<<l
				gotLen, gotSym := table.Lookup(pattern)
				if gotLen != l || int(gotSym) != sym {
					t.Fatalf("pattern %b: expected (%d,%d), got (%d,%d)", pattern, l, sym, gotLen, gotSym)
				}
			}
		}
	}
}

func TestDecodeTableIncompleteAndInvalid(t *testing.T) {
	table, err := BuildDecodeTable([]uint8{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if l, s := table.Lookup(0); l != 1 || s != 1 {
		t.Fatalf("expected symbol 1, got (%d,%d)", l, s)
	}
	if l, _ := table.Lookup(1); l != 0 {
		t.Fatalf("unused slot should be empty, got length %d", l)
	}
	if _, err := BuildDecodeTable([]uint8{1, 1, 1}); !errors.Is(err, ErrOversubscribed) {
		t.Fatalf("expected ErrOversubscribed, got %v", err)
	}
}
