// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"io"

	"github.com/intel/zlibgo/compress/flate"
)

// Writer collects everything written to it and writes the zlib stream on
// Close.
type Writer struct {
	w      io.Writer
	opts   flate.CompressOptions
	buffer []byte
	closed bool
	err    error
}

// NewWriter returns a Writer with DefaultCompression.
func NewWriter(w io.Writer) *Writer {
	z, _ := NewWriterLevel(w, flate.DefaultCompression)
	return z
}

// NewWriterLevel returns a Writer for a flate compression level.
func NewWriterLevel(w io.Writer, level int) (*Writer, error) {
	opts, err := flate.LevelOptions(level)
	if err != nil {
		return nil, err
	}
	return NewWriterOptions(w, opts), nil
}

// NewWriterOptions returns a Writer using opts.
func NewWriterOptions(w io.Writer, opts flate.CompressOptions) *Writer {
	return &Writer{w: w, opts: opts}
}

func (z *Writer) Write(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if z.closed {
		return 0, flate.ErrClosed
	}
	z.buffer = append(z.buffer, p...)
	return len(p), nil
}

// Flush is a no-op; the stream is written by Close.
func (z *Writer) Flush() error {
	if z.closed {
		return flate.ErrClosed
	}
	return z.err
}

// Close writes the zlib stream. It does not close the underlying writer.
func (z *Writer) Close() error {
	if z.err != nil || z.closed {
		return z.err
	}
	z.closed = true
	var out []byte
	if out, z.err = Compress(z.buffer, z.opts); z.err != nil {
		return z.err
	}
	_, z.err = z.w.Write(out)
	return z.err
}

// Reset discards the buffered data and starts a new stream into w.
func (z *Writer) Reset(w io.Writer) {
	z.w = w
	z.buffer = z.buffer[:0]
	z.closed = false
	z.err = nil
}
