// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/intel/zlibgo/compress/flate"
)

// A Writer is an io.WriteCloser that writes one gzip member. Header fields
// must be set before the first Write or Close.
type Writer struct {
	Header
	w           io.Writer
	level       int
	wroteHeader bool
	compressor  *flate.Writer
	digest      uint32
	size        uint32
	closed      bool
	buf         []byte
	err         error
}

// NewWriter returns a Writer with DefaultCompression.
func NewWriter(w io.Writer) *Writer {
	z, _ := NewWriterLevel(w, flate.DefaultCompression)
	return z
}

// NewWriterLevel returns a Writer for a flate compression level. HuffmanOnly
// and out of range levels are rejected.
func NewWriterLevel(w io.Writer, level int) (*Writer, error) {
	if _, err := flate.LevelOptions(level); err != nil {
		return nil, err
	}
	z := new(Writer)
	z.init(w, level)
	return z, nil
}

func (z *Writer) init(w io.Writer, level int) {
	compressor := z.compressor
	if compressor != nil {
		compressor.Reset(w)
	}
	*z = Writer{
		Header:     Header{OS: osUnknown},
		w:          w,
		level:      level,
		compressor: compressor,
		buf:        z.buf[:0],
	}
}

// Reset discards the state of z and starts a new member into w, keeping the
// compression level. The header is reset too.
func (z *Writer) Reset(w io.Writer) {
	z.init(w, z.level)
}

func (z *Writer) writeHeader() error {
	z.wroteHeader = true
	if err := z.Header.validate(); err != nil {
		return err
	}
	z.buf = z.Header.appendHeader(z.buf[:0], extraFlags(z.level))
	if _, err := z.w.Write(z.buf); err != nil {
		return err
	}
	if z.compressor == nil {
		var err error
		if z.compressor, err = flate.NewWriter(z.w, z.level); err != nil {
			return err
		}
	}
	return nil
}

func (z *Writer) Write(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if z.closed {
		return 0, flate.ErrClosed
	}
	if !z.wroteHeader {
		if z.err = z.writeHeader(); z.err != nil {
			return 0, z.err
		}
	}
	z.size += uint32(len(p))
	z.digest = crc32.Update(z.digest, crc32.IEEETable, p)
	var n int
	n, z.err = z.compressor.Write(p)
	return n, z.err
}

// Flush writes the header if it has not been written. Compressed data is
// only produced by Close.
func (z *Writer) Flush() error {
	if z.err != nil {
		return z.err
	}
	if z.closed {
		return flate.ErrClosed
	}
	if !z.wroteHeader {
		z.err = z.writeHeader()
	}
	return z.err
}

// Close writes the compressed data and the trailer. It does not close the
// underlying writer.
func (z *Writer) Close() error {
	if z.err != nil || z.closed {
		return z.err
	}
	z.closed = true
	if !z.wroteHeader {
		if z.err = z.writeHeader(); z.err != nil {
			return z.err
		}
	}
	if z.err = z.compressor.Close(); z.err != nil {
		return z.err
	}
	z.buf = binary.LittleEndian.AppendUint32(z.buf[:0], z.digest)
	z.buf = binary.LittleEndian.AppendUint32(z.buf, z.size)
	_, z.err = z.w.Write(z.buf)
	return z.err
}
