// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

// minimumRedundancy replaces the weights in w, sorted in decreasing order,
// by the lengths of an optimal prefix code and returns the longest one.
// See Moffat and Katajainen, In-Place Calculation of Minimum-Redundancy
// Codes, http://hjemmesider.diku.dk/~jyrki/Paper/WADS95.pdf .
func minimumRedundancy(w []uint32) uint32 {
	n := len(w)
	switch n {
	case 0:
		return 0
	case 1:
		w[0] = 1
		return 1
	}

	// Internal nodes are built from the light end of w. Once an internal
	// node is merged its slot holds the index of its parent.
	leaf, root := n-1, n-1
	pick := func(next int) uint32 {
		if leaf >= 0 && (root <= next || w[leaf] <= w[root]) {
			leaf--
			return w[leaf+1]
		}
		v := w[root]
		w[root] = uint32(next)
		root--
		return v
	}
	for next := n - 1; next > 0; next-- {
		first := pick(next)
		w[next] = first + pick(next)
	}

	// depth of every internal node, w[1] is the root
	w[1] = 0
	for next := 2; next < n; next++ {
		w[next] = w[w[next]] + 1
	}

	// leaves take the slots left free by internal nodes at each depth
	avail, next := 1, 0
	internal := 1
	for depth := uint32(0); avail > 0; depth++ {
		used := 0
		for ; internal < n && w[internal] == depth; internal++ {
			used++
		}
		for ; avail > used; avail-- {
			w[next] = depth
			next++
		}
		avail = 2 * used
	}
	return w[n-1]
}
