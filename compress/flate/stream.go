// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// compactThreshold is how many consumed input bytes an Inflater keeps before
// dropping them.
const compactThreshold = 64 * 1024

// Inflater decodes a raw DEFLATE stream that arrives in pieces.
type Inflater struct {
	state inflate
	out   *blockOutput
	base  int64 // stream offset of state.br.in[0]
	err   error
}

// NewInflater returns an Inflater with a window of bufferSize bytes past the
// history; zero selects the default.
func NewInflater(bufferSize int) *Inflater {
	f := &Inflater{out: newBlockOutput(bufferSize)}
	f.Reset()
	return f
}

// Reset discards all state so that a new stream can be decoded.
func (f *Inflater) Reset() {
	f.state.reset(f.out)
	f.state.br.more = true
	f.base = 0
	f.err = nil
}

// Decompress appends chunk to the buffered input, decodes as far as possible
// and returns the bytes produced by this call.
func (f *Inflater) Decompress(chunk []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.compact()
	br := &f.state.br
	br.in = append(br.in, chunk...)
	if err := f.state.run(); err != nil {
		f.err = err
		return f.out.take(), err
	}
	return f.out.take(), nil
}

func (f *Inflater) compact() {
	br := &f.state.br
	if br.ip < compactThreshold || f.state.phase == phaseFinish {
		return
	}
	n := copy(br.in, br.in[br.ip:])
	br.in = br.in[:n]
	f.base += int64(br.ip)
	f.state.checkpoint.ip -= br.ip
	br.ip = 0
}

// Done reports whether the final block has been decoded.
func (f *Inflater) Done() bool {
	return f.state.phase == phaseFinish
}

// Offset returns the number of input bytes consumed. Once Done, it is the
// offset of the first byte after the stream.
func (f *Inflater) Offset() int64 {
	return f.base + int64(f.state.br.ip)
}

// Unused returns the buffered input following the stream.
func (f *Inflater) Unused() []byte {
	if !f.Done() {
		return nil
	}
	br := &f.state.br
	return br.in[br.ip:]
}

// Close reports ErrInputTruncated if the stream has not ended.
func (f *Inflater) Close() error {
	if f.err != nil {
		return f.err
	}
	if !f.Done() {
		return ErrInputTruncated
	}
	return nil
}
