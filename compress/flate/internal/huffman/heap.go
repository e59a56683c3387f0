// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

type heapNode struct {
	symbol uint16
	freq   uint32
}

// freqHeap is a binary heap of (symbol, frequency) pairs ordered by
// frequency. pop returns the most frequent remaining symbol.
type freqHeap struct {
	nodes []heapNode
}

func (h *freqHeap) reset() {
	h.nodes = h.nodes[:0]
}

func (h *freqHeap) Len() int {
	return len(h.nodes)
}

func (h *freqHeap) push(symbol uint16, freq uint32) {
	h.nodes = append(h.nodes, heapNode{symbol: symbol, freq: freq})
	current := len(h.nodes) - 1
	for current > 0 {
		parent := (current - 1) / 2
		if h.nodes[current].freq <= h.nodes[parent].freq {
			break
		}
		h.nodes[current], h.nodes[parent] = h.nodes[parent], h.nodes[current]
		current = parent
	}
}

func (h *freqHeap) pop() heapNode {
	top := h.nodes[0]
	last := len(h.nodes) - 1
	h.nodes[0] = h.nodes[last]
	h.nodes = h.nodes[:last]

	parent := 0
	for {
		child := 2*parent + 1
		if child >= len(h.nodes) {
			break
		}
		if child+1 < len(h.nodes) && h.nodes[child+1].freq > h.nodes[child].freq {
			child++
		}
		if h.nodes[child].freq <= h.nodes[parent].freq {
			break
		}
		h.nodes[parent], h.nodes[child] = h.nodes[child], h.nodes[parent]
		parent = child
	}
	return top
}

// drain pops every node, appending them to dst in decreasing frequency order.
func (h *freqHeap) drain(dst []heapNode) []heapNode {
	for h.Len() > 0 {
		dst = append(dst, h.pop())
	}
	return dst
}
