// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

const (
	minMatchLength = 3
	maxMatchLength = 258
	windowSize     = 32768
)

// hashChain lists the earlier positions sharing a 3-byte prefix, oldest first.
type hashChain struct {
	positions []int
}

// prune drops the positions farther than the window from pos.
func (c *hashChain) prune(pos int) {
	i := 0
	for i < len(c.positions) && pos-c.positions[i] > windowSize {
		i++
	}
	if i > 0 {
		c.positions = c.positions[:copy(c.positions, c.positions[i:])]
	}
}

func (c *hashChain) push(pos int) {
	c.positions = append(c.positions, pos)
}

// lz77Matcher turns the input into a symbol stream with a hash chain search
// over the whole 32KB window.
type lz77Matcher struct {
	table   map[uint32]*hashChain
	hist    histogram
	symbols []uint16
	lazy    int

	skip    int
	held    Match
	hasHeld bool
}

func newLZ77Matcher(lazy int) *lz77Matcher {
	return &lz77Matcher{lazy: lazy}
}

func (m *lz77Matcher) reset() {
	m.table = make(map[uint32]*hashChain)
	m.hist.reset()
	m.symbols = m.symbols[:0]
	m.skip = 0
	m.hasHeld = false
}

func hashKey(data []byte, pos int) uint32 {
	return uint32(data[pos])<<16 | uint32(data[pos+1])<<8 | uint32(data[pos+2])
}

func (m *lz77Matcher) chain(key uint32) *hashChain {
	c := m.table[key]
	if c == nil {
		c = &hashChain{}
		m.table[key] = c
	}
	return c
}

func (m *lz77Matcher) literal(c byte) {
	m.symbols = append(m.symbols, uint16(c))
	m.hist.literalCodes[c]++
}

// emit writes a match; the next length+offset-1 positions are covered by it.
func (m *lz77Matcher) emit(mt Match, offset int) {
	m.symbols = appendMatch(m.symbols, uint32(mt.Length), uint32(mt.Distance))
	n := len(m.symbols)
	m.hist.literalCodes[m.symbols[n-matchTokens]]++
	m.hist.distanceCodes[m.symbols[n-matchTokens+3]]++
	m.skip = mt.Length + offset - 1
	m.hasHeld = false
}

// encode returns the symbol stream of data terminated by the end of block
// symbol, and the frequency of every symbol in it.
func (m *lz77Matcher) encode(data []byte) ([]uint16, *histogram) {
	m.reset()
	n := len(data)
	for pos := 0; pos < n; pos++ {
		full := pos+minMatchLength <= n
		if m.skip > 0 {
			m.skip--
			if full {
				m.chain(hashKey(data, pos)).push(pos)
			}
			continue
		}

		if pos+minMatchLength >= n {
			start := pos
			if m.hasHeld {
				// the held match started one byte back
				start = pos - 1 + m.held.Length
				m.emit(m.held, -1)
			}
			for i := start; i < n; i++ {
				m.literal(data[i])
			}
			break
		}

		c := m.chain(hashKey(data, pos))
		c.prune(pos)

		switch {
		case len(c.positions) > 0:
			longest := longestMatch(data, pos, c.positions)
			switch {
			case m.hasHeld:
				if m.held.Length < longest.Length {
					m.literal(data[pos-1])
					m.emit(longest, 0)
				} else {
					m.emit(m.held, -1)
				}
			case longest.Length < m.lazy:
				m.held = longest
				m.hasHeld = true
			default:
				m.emit(longest, 0)
			}
		case m.hasHeld:
			m.emit(m.held, -1)
		default:
			m.literal(data[pos])
		}
		c.push(pos)
	}
	m.symbols = append(m.symbols, endOfBlock)
	m.hist.literalCodes[endOfBlock]++
	return m.symbols, &m.hist
}

// longestMatch searches candidates from the newest one back. Among equally
// long matches the nearest wins.
func longestMatch(data []byte, pos int, candidates []int) Match {
	best, bestLen := 0, 0
	n := len(data)
candidates:
	for i := len(candidates) - 1; i >= 0; i-- {
		prev := candidates[i]
		length := minMatchLength
		if bestLen > minMatchLength {
			// only a candidate sharing the best prefix can beat it
			for j := bestLen; j > minMatchLength; j-- {
				if data[prev+j-1] != data[pos+j-1] {
					continue candidates
				}
			}
			length = bestLen
		}
		for length < maxMatchLength && pos+length < n && data[prev+length] == data[pos+length] {
			length++
		}
		if length > bestLen {
			best, bestLen = prev, length
		}
		if length == maxMatchLength {
			break
		}
	}
	return Match{Length: bestLen, Distance: pos - best}
}
