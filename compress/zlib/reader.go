// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bufio"
	"encoding/binary"
	"hash"
	"hash/adler32"
	"io"

	"github.com/intel/zlibgo/compress/flate"
)

type reader struct {
	r            *bufio.Reader
	decompressor io.ReadCloser
	digest       hash.Hash32
	verify       bool
	err          error
	scratch      [4]byte
}

// NewReader returns a ReadCloser that decodes the zlib stream read from r
// and verifies its checksum. The returned reader implements flate.Resetter.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	return NewReaderOptions(r, nil)
}

// NewReaderOptions is NewReader with options; Decompress in opts is ignored.
func NewReaderOptions(r io.Reader, opts *ReadOptions) (io.ReadCloser, error) {
	if opts == nil {
		opts = DefaultReadOptions()
	}
	z := &reader{verify: opts.Verify, digest: adler32.New()}
	if err := z.Reset(r, nil); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *reader) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}

	var n int
	n, z.err = z.decompressor.Read(p)
	z.digest.Write(p[:n])
	if z.err != io.EOF {
		return n, z.err
	}

	if _, err := io.ReadFull(z.r, z.scratch[:trailerSize]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		z.err = err
		return n, z.err
	}
	if z.verify && binary.BigEndian.Uint32(z.scratch[:]) != z.digest.Sum32() {
		z.err = ErrChecksum
		return n, z.err
	}
	return n, io.EOF
}

// Close does not close the wrapped reader.
func (z *reader) Close() error {
	if z.err != nil && z.err != io.EOF {
		return z.err
	}
	z.err = z.decompressor.Close()
	return z.err
}

func (z *reader) Reset(r io.Reader, dict []byte) error {
	if len(dict) != 0 {
		z.err = ErrDictionary
		return z.err
	}
	if br, ok := r.(*bufio.Reader); ok {
		z.r = br
	} else {
		z.r = bufio.NewReader(r)
	}
	z.digest.Reset()

	if _, err := io.ReadFull(z.r, z.scratch[:headerSize]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		z.err = err
		return err
	}
	if z.err = checkHeader(z.scratch[:headerSize]); z.err != nil {
		return z.err
	}
	if z.decompressor == nil {
		z.decompressor = flate.NewReader(z.r)
	} else {
		z.decompressor.(flate.Resetter).Reset(z.r, nil)
	}
	return nil
}
