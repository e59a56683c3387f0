// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"compress/flate"
	"io"

	"github.com/intel/zlibgo/compress/flate/internal/deflate"
)

// Compression level constants compatible with standard library
const (
	NoCompression      = flate.NoCompression      // stored blocks
	BestSpeed          = flate.BestSpeed          // fixed Huffman codes
	BestCompression    = flate.BestCompression    // dynamic Huffman codes with lazy matching
	DefaultCompression = flate.DefaultCompression // dynamic Huffman codes
)

// Writer buffers its input and writes the compressed stream on Close.
type Writer = deflate.Writer

// NewWriter creates a compressor with the specified level. Levels 2 to 8
// behave like DefaultCompression; HuffmanOnly is not supported.
func NewWriter(under io.Writer, level int) (w *Writer, err error) {
	return deflate.NewWriter(under, level)
}

// NewWriterOptions creates a compressor using opts.
func NewWriterOptions(under io.Writer, opts CompressOptions) (w *Writer, err error) {
	return deflate.NewWriterOptions(under, opts)
}

// Compress returns the raw DEFLATE stream of input.
func Compress(input []byte, opts CompressOptions) ([]byte, error) {
	return deflate.Compress(input, opts)
}

// LevelOptions returns the CompressOptions used for a compression level.
func LevelOptions(level int) (CompressOptions, error) {
	return deflate.LevelOptions(level)
}
