// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

const (
	historySize       = 32 * 1024
	maxMatchLength    = 258
	defaultBufferSize = 0x8000

	// maxExpansion is the most output one input byte can produce: four
	// 2-bit codes of a 258 byte match.
	maxExpansion = 4 * maxMatchLength
	// maxGrowFactor bounds a single growth step of the adaptive buffer.
	maxGrowFactor = 4
)

// output is the buffer decoded bytes are written into.
type output struct {
	buf   []byte
	op    int // next write position
	mark  int // first byte not yet handed out
	start int // position of the first byte of the stream still in buf
}

func (o *output) room() int {
	return len(o.buf) - o.op
}

// growth carries what the adaptive accumulator needs to estimate the final size.
type growth struct {
	inputLen  int
	ip        int
	minLitLen int
	// fixRatio replaces the estimated ratio when nonzero
	fixRatio int
}

// accumulator owns the output window and decides how it grows.
type accumulator interface {
	window() *output
	// reserve makes room for n bytes after op, or for as many as a single
	// window allows.
	reserve(n int, g growth)
	// take returns the bytes produced since the previous call.
	take() []byte
	reset()
}

// blockOutput keeps a sliding window of historySize bytes followed by
// bufferSize bytes of fresh output. Full windows are moved to a block list.
type blockOutput struct {
	output
	bufferSize int
	blocks     [][]byte
}

func newBlockOutput(bufferSize int) *blockOutput {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	b := &blockOutput{bufferSize: bufferSize}
	b.buf = make([]byte, historySize+bufferSize+maxMatchLength)
	b.reset()
	return b
}

func (b *blockOutput) window() *output {
	return &b.output
}

func (b *blockOutput) reset() {
	b.op, b.mark, b.start = historySize, historySize, historySize
	b.blocks = b.blocks[:0]
}

func (b *blockOutput) reserve(n int, _ growth) {
	if b.room() >= n || b.op == historySize {
		return
	}
	if b.mark < b.op {
		b.blocks = append(b.blocks, append([]byte(nil), b.buf[b.mark:b.op]...))
	}
	shift := b.op - historySize
	copy(b.buf, b.buf[shift:b.op])
	b.op, b.mark = historySize, historySize
	if b.start -= shift; b.start < 0 {
		b.start = 0
	}
}

func (b *blockOutput) take() []byte {
	size := b.op - b.mark
	for _, block := range b.blocks {
		size += len(block)
	}
	out := make([]byte, 0, size)
	for _, block := range b.blocks {
		out = append(out, block...)
	}
	out = append(out, b.buf[b.mark:b.op]...)
	b.blocks = b.blocks[:0]
	b.mark = b.op
	return out
}

// adaptiveOutput grows a single buffer by a ratio estimated from the input
// consumed so far.
type adaptiveOutput struct {
	output
	initial int
	resize  bool
}

func newAdaptiveOutput(size int, resize bool) *adaptiveOutput {
	if size <= 0 {
		size = defaultBufferSize
	}
	a := &adaptiveOutput{initial: size, resize: resize}
	a.buf = make([]byte, size)
	return a
}

func (a *adaptiveOutput) window() *output {
	return &a.output
}

func (a *adaptiveOutput) reset() {
	a.op, a.mark, a.start = 0, 0, 0
}

func (a *adaptiveOutput) reserve(n int, g growth) {
	for a.room() < n {
		a.grow(n, g)
	}
}

func (a *adaptiveOutput) grow(n int, g growth) {
	size := len(a.buf)
	ratio := g.fixRatio
	if ratio == 0 && g.ip > 0 {
		ratio = g.inputLen/g.ip + 1
	}

	var newSize int
	if ratio < 2 && g.minLitLen > 0 {
		maxHuffCode := (g.inputLen - g.ip) / g.minLitLen
		maxInflateSize := maxHuffCode / 2 * maxMatchLength
		if maxInflateSize < size {
			newSize = size + maxInflateSize
		} else {
			newSize = size * 2
		}
	} else if ratio < 2 {
		newSize = size * 2
	} else {
		newSize = size * ratio
	}
	if newSize > size*maxGrowFactor {
		newSize = size * maxGrowFactor
	}
	// the bit reader may hold up to 8 bytes already taken from the input
	if bound := a.op + (g.inputLen-g.ip+8)*maxExpansion; newSize > bound {
		newSize = bound
	}
	if newSize < a.op+n {
		newSize = a.op + n
	}
	buf := make([]byte, newSize)
	copy(buf, a.buf[:a.op])
	a.buf = buf
}

// take copies the output when Resize is set or when more than half of the
// buffer would otherwise stay pinned behind it.
func (a *adaptiveOutput) take() []byte {
	out := a.buf[a.mark:a.op]
	if a.resize || cap(out) > 2*len(out) {
		exact := make([]byte, len(out))
		copy(exact, out)
		out = exact
	}
	a.mark = a.op
	return out
}
