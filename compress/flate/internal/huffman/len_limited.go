// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

var _ TreeGenerator = &LenLimitedCode{}

// LenLimitedCode implements a length limited huffman tree generator. The
// optimal code is used when it fits the limit, otherwise the reverse
// package-merge algorithm runs: every leaf starts at the length limit and
// each selection of a leaf by a "take package" step shortens it by one bit.
type LenLimitedCode struct {
	heap    freqHeap
	sorted  []heapNode
	weights []uint32
	depths  []uint32
	lens    []uint8

	// per level state, levels are laid out back to back in value/kind
	minCost []int
	flag    []bool
	offset  []int
	pos     []int
	value   []uint32
	kind    []int32
	stack   []int
}

// NewLenLimitedCode creates a new LenLimitedCode instance
func NewLenLimitedCode() *LenLimitedCode {
	return &LenLimitedCode{}
}

// Generate assigns lengths of at most limit bits to every symbol with a
// nonzero frequency. A single used symbol gets length 1.
func (l *LenLimitedCode) Generate(limit int, freqs []uint32, lengths []uint8) error {
	for i := range lengths {
		lengths[i] = 0
	}
	l.heap.reset()
	for i, v := range freqs {
		if v != 0 {
			l.heap.push(uint16(i), v)
		}
	}
	n := l.heap.Len()
	switch {
	case n == 0:
		return nil
	case limit < 1 || limit > MaxCodeLength || n > 1<<limit:
		return ErrUnsupportedFeature
	case n == 1:
		lengths[l.heap.pop().symbol] = 1
		return nil
	}

	l.sorted = l.heap.drain(l.sorted[:0])
	l.weights = l.weights[:0]
	for _, v := range l.sorted {
		l.weights = append(l.weights, v.freq)
	}
	l.depths = append(l.depths[:0], l.weights...)
	if minimumRedundancy(l.depths) <= uint32(limit) {
		for i, v := range l.sorted {
			lengths[v.symbol] = uint8(l.depths[i])
		}
		return nil
	}
	l.reversePackageMerge(l.weights, limit)
	for i, v := range l.sorted {
		lengths[v.symbol] = l.lens[i]
	}
	return nil
}

// reversePackageMerge computes code lengths for freqs, which must be sorted
// in decreasing order, limited to limit bits. The result is left in l.lens.
func (l *LenLimitedCode) reversePackageMerge(freqs []uint32, limit int) {
	n := len(freqs)
	l.minCost = resizeInts(l.minCost, limit)
	l.offset = resizeInts(l.offset, limit)
	l.pos = resizeInts(l.pos, limit)
	if cap(l.flag) < limit {
		l.flag = make([]bool, limit)
	}
	l.flag = l.flag[:limit]

	// the binary digits of the excess decide at which levels a node is taken
	excess := 1<<limit - n
	half := 1 << (limit - 1)
	l.minCost[limit-1] = n
	for j := 0; j < limit; j++ {
		l.flag[j] = excess >= half
		if l.flag[j] {
			excess -= half
		}
		excess <<= 1
		if k := limit - 2 - j; k >= 0 {
			l.minCost[k] = l.minCost[k+1]/2 + n
		}
	}
	l.minCost[0] = b2i(l.flag[0])
	for j := 1; j < limit; j++ {
		if bound := 2*l.minCost[j-1] + b2i(l.flag[j]); l.minCost[j] > bound {
			l.minCost[j] = bound
		}
	}

	total := 0
	for j := 0; j < limit; j++ {
		l.offset[j] = total
		total += l.minCost[j]
	}
	if cap(l.value) < total {
		l.value = make([]uint32, total)
		l.kind = make([]int32, total)
	}
	l.value = l.value[:total]
	l.kind = l.kind[:total]
	if cap(l.lens) < n {
		l.lens = make([]uint8, n)
	}
	l.lens = l.lens[:n]
	for i := range l.lens {
		l.lens[i] = uint8(limit)
	}

	// deepest level holds the leaves only
	top := l.offset[limit-1]
	for t := 0; t < l.minCost[limit-1]; t++ {
		l.value[top+t] = freqs[t]
		l.kind[top+t] = int32(t)
	}
	for i := range l.pos {
		l.pos[i] = 0
	}
	if l.flag[limit-1] {
		l.lens[0]--
		l.pos[limit-1]++
	}

	pkg := int32(n)
	for j := limit - 2; j >= 0; j-- {
		below, size := l.offset[j+1], l.minCost[j+1]
		next := l.pos[j+1]
		i := 0
		for t := 0; t < l.minCost[j]; t++ {
			slot := l.offset[j] + t
			havePkg := next+1 < size
			var weight uint32
			if havePkg {
				weight = l.value[below+next] + l.value[below+next+1]
			}
			if havePkg && (i >= n || weight > freqs[i]) {
				l.value[slot] = weight
				l.kind[slot] = pkg
				next += 2
			} else {
				l.value[slot] = freqs[i]
				l.kind[slot] = int32(i)
				i++
			}
		}
		l.pos[j] = 0
		if l.flag[j] {
			l.takePackage(j, pkg)
		}
	}
}

// takePackage takes the next node of level j. A leaf loses one bit, a
// package expands into the next two nodes of the level below.
func (l *LenLimitedCode) takePackage(j int, pkg int32) {
	l.stack = append(l.stack[:0], j)
	for len(l.stack) > 0 {
		level := l.stack[len(l.stack)-1]
		l.stack = l.stack[:len(l.stack)-1]

		x := l.kind[l.offset[level]+l.pos[level]]
		l.pos[level]++
		if x == pkg {
			l.stack = append(l.stack, level+1, level+1)
		} else {
			l.lens[x]--
		}
	}
}

func resizeInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
