// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package deflate implements the DEFLATE (RFC1951) compressor: LZ77 matching
// over a 32KB window, length limited Huffman codes and the stored, fixed and
// dynamic block encodings.
package deflate

import (
	"errors"
	"io"
)

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("deflate: write to closed writer")

// Compress returns the raw DEFLATE stream of input.
func Compress(input []byte, opts Options) ([]byte, error) {
	c, err := newBlockCompressor(opts)
	if err != nil {
		return nil, err
	}
	b := NewBitWriter(len(input)/2 + 16)
	if err := c.compress(input, b); err != nil {
		return nil, err
	}
	return b.Finish()
}

// Writer collects everything written to it and compresses it on Close.
type Writer struct {
	err    error
	closed bool
	w      io.Writer
	buffer []byte
	lc     blockCompressor
}

// NewWriter returns a Writer compressing into under with the given level.
func NewWriter(under io.Writer, level int) (*Writer, error) {
	opts, err := LevelOptions(level)
	if err != nil {
		return nil, err
	}
	return NewWriterOptions(under, opts)
}

// NewWriterOptions returns a Writer compressing into under with opts.
func NewWriterOptions(under io.Writer, opts Options) (*Writer, error) {
	lc, err := newBlockCompressor(opts)
	if err != nil {
		return nil, err
	}
	return &Writer{w: under, lc: lc}, nil
}

// Write buffers data until Close.
func (w *Writer) Write(data []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrClosed
	}
	w.buffer = append(w.buffer, data...)
	return len(data), nil
}

// Flush does nothing on an open Writer; the stream is produced by Close.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrClosed
	}
	return nil
}

// Close compresses the buffered input and writes the stream.
func (w *Writer) Close() (err error) {
	if w.err != nil || w.closed {
		return w.err
	}
	w.closed = true
	b := NewBitWriter(len(w.buffer)/2 + 16)
	if err = w.lc.compress(w.buffer, b); err != nil {
		w.err = err
		return err
	}
	out, err := b.Finish()
	if err == nil {
		_, err = w.w.Write(out)
	}
	w.err = err
	return err
}

// Reset discards the buffered input and starts a new stream into under.
func (w *Writer) Reset(under io.Writer) {
	w.err = nil
	w.closed = false
	w.w = under
	w.buffer = w.buffer[:0]
}
