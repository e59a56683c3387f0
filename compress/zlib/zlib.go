// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package zlib implements the zlib format (RFC1950) around the raw DEFLATE
// codec of package flate.
package zlib

import (
	"encoding/binary"
	"errors"
	"hash/adler32"

	"github.com/intel/zlibgo/compress/flate"
)

const (
	zlibDeflate   = 8
	zlibMaxWindow = 7
	cmf           = zlibMaxWindow<<4 | zlibDeflate // 0x78, 32KB window
	fdict         = 0x20
	headerSize    = 2
	trailerSize   = 4
)

var (
	// ErrChecksum is returned when the Adler-32 of the decoded data does not
	// match the trailer.
	ErrChecksum = errors.New("zlib: invalid checksum")
	// ErrDictionary is returned for streams that need a preset dictionary.
	ErrDictionary = errors.New("zlib: preset dictionaries are not supported")
	// ErrHeader is returned when the header check bits are wrong.
	ErrHeader = errors.New("zlib: invalid header")
	// ErrUnsupportedMethod is returned when the compression method is not DEFLATE.
	ErrUnsupportedMethod = errors.New("zlib: unsupported compression method")
)

// ReadOptions controls Decompress, Stream and NewReaderOptions.
type ReadOptions struct {
	// Verify checks the Adler-32 trailer.
	Verify bool
	// Decompress is passed to flate.Decompress; nil selects its defaults.
	Decompress *flate.DecompressOptions
}

// DefaultReadOptions verifies the checksum.
func DefaultReadOptions() *ReadOptions {
	return &ReadOptions{Verify: true}
}

// level returns the FLEVEL field for a strategy.
func level(s flate.Strategy) byte {
	switch s {
	case flate.Stored:
		return 0
	case flate.Fixed:
		return 1
	}
	return 2
}

func header(s flate.Strategy) [headerSize]byte {
	flg := level(s) << 6
	flg |= 31 - byte((uint(cmf)<<8|uint(flg))%31)
	return [headerSize]byte{cmf, flg}
}

// checkHeader validates CMF and FLG.
func checkHeader(h []byte) error {
	if h[0]&0x0f != zlibDeflate {
		return ErrUnsupportedMethod
	}
	if h[0]>>4 > zlibMaxWindow || (uint(h[0])<<8|uint(h[1]))%31 != 0 {
		return ErrHeader
	}
	if h[1]&fdict != 0 {
		return ErrDictionary
	}
	return nil
}

// Compress returns input as a zlib stream.
func Compress(input []byte, opts flate.CompressOptions) ([]byte, error) {
	body, err := flate.Compress(input, opts)
	if err != nil {
		return nil, err
	}
	h := header(opts.Strategy)
	out := make([]byte, 0, headerSize+len(body)+trailerSize)
	out = append(out, h[:]...)
	out = append(out, body...)
	return binary.BigEndian.AppendUint32(out, adler32.Checksum(input)), nil
}

// Decompress decodes a zlib stream. Bytes after the trailer are ignored.
// A nil opts means DefaultReadOptions.
func Decompress(input []byte, opts *ReadOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultReadOptions()
	}
	if len(input) < headerSize {
		return nil, flate.ErrInputTruncated
	}
	if err := checkHeader(input); err != nil {
		return nil, err
	}
	out, end, err := flate.Decompress(input, headerSize, opts.Decompress)
	if err != nil {
		return nil, err
	}
	if !opts.Verify {
		return out, nil
	}
	if len(input)-end < trailerSize {
		return nil, flate.ErrInputTruncated
	}
	if binary.BigEndian.Uint32(input[end:]) != adler32.Checksum(out) {
		return nil, ErrChecksum
	}
	return out, nil
}
