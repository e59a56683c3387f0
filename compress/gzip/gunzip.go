// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/intel/zlibgo/compress/flate"
)

// A Reader is an io.Reader that decodes a gzip stream. Header holds the
// header of the member being read. Input is read through a bufio.Reader,
// which is the reader passed to Reset when it is one.
type Reader struct {
	Header
	r            *bufio.Reader
	decompressor io.ReadCloser
	digest       uint32
	size         uint32
	buf          [8]byte
	err          error
	multistream  bool
}

// NewReader returns a Reader positioned after the first member header.
func NewReader(r io.Reader) (*Reader, error) {
	z := new(Reader)
	if err := z.Reset(r); err != nil {
		return nil, err
	}
	return z, nil
}

// Reset discards the state of z and reads the first member header from r.
// It returns io.EOF when r is empty.
func (z *Reader) Reset(r io.Reader) error {
	*z = Reader{
		decompressor: z.decompressor,
		multistream:  true,
	}
	if br, ok := r.(*bufio.Reader); ok {
		z.r = br
	} else {
		z.r = bufio.NewReader(r)
	}
	z.Header, _, z.err = readHeader(z.r)
	if z.err != nil {
		return z.err
	}
	z.resetDecompressor()
	return nil
}

func (z *Reader) resetDecompressor() {
	if z.decompressor == nil {
		z.decompressor = flate.NewReader(z.r)
	} else {
		z.decompressor.(flate.Resetter).Reset(z.r, nil)
	}
}

// Multistream controls whether z reads the members following the first one
// as a single stream. With ok false, Read returns io.EOF at the end of each
// member, and the next member can be read by calling Reset with the same
// bufio.Reader.
func (z *Reader) Multistream(ok bool) {
	z.multistream = ok
}

func (z *Reader) Read(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}

	for n == 0 {
		n, z.err = z.decompressor.Read(p)
		z.digest = crc32.Update(z.digest, crc32.IEEETable, p[:n])
		z.size += uint32(n)
		if z.err != io.EOF {
			return n, z.err
		}

		if _, err := io.ReadFull(z.r, z.buf[:8]); err != nil {
			z.err = noEOF(err)
			return n, z.err
		}
		digest := binary.LittleEndian.Uint32(z.buf[:4])
		size := binary.LittleEndian.Uint32(z.buf[4:8])
		if digest != z.digest || size != z.size {
			z.err = ErrChecksum
			return n, z.err
		}
		z.digest, z.size = 0, 0

		if !z.multistream {
			return n, io.EOF
		}
		z.err = nil
		if z.Header, _, z.err = readHeader(z.r); z.err != nil {
			return n, z.err
		}
		z.resetDecompressor()
	}
	return n, nil
}

// Close does not close the underlying reader.
func (z *Reader) Close() error {
	if z.decompressor == nil {
		return z.err
	}
	return z.decompressor.Close()
}
