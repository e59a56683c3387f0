// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"fmt"

	"github.com/intel/zlibgo/compress/flate/internal/deflate"
)

// BufferType selects how Decompress grows its output.
type BufferType int

const (
	// Adaptive grows a single buffer by a ratio estimated from the input.
	Adaptive BufferType = iota
	// Block decodes into a fixed window and collects full windows in a list.
	Block
)

func (t BufferType) String() string {
	switch t {
	case Adaptive:
		return "adaptive"
	case Block:
		return "block"
	}
	return fmt.Sprintf("BufferType(%d)", int(t))
}

// DecompressOptions controls Decompress.
type DecompressOptions struct {
	BufferType BufferType
	// BufferSize is the Block window size past the history, and the initial
	// Adaptive buffer size when SizeHint is zero.
	BufferSize int
	// SizeHint is the expected decompressed size.
	SizeHint int
	// Resize trims the Adaptive buffer to the decompressed size.
	Resize bool
}

// DefaultDecompressOptions returns the options used when nil is passed to Decompress.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{
		BufferType: Adaptive,
		BufferSize: defaultBufferSize,
	}
}

func (o *DecompressOptions) accumulator() (accumulator, error) {
	switch o.BufferType {
	case Adaptive:
		size := o.BufferSize
		if o.SizeHint > 0 {
			size = o.SizeHint
		}
		return newAdaptiveOutput(size, o.Resize), nil
	case Block:
		return newBlockOutput(o.BufferSize), nil
	}
	return nil, fmt.Errorf("flate: invalid buffer type %v", o.BufferType)
}

type (
	// Strategy selects the block type used by Compress.
	Strategy = deflate.Strategy
	// CompressOptions controls Compress.
	CompressOptions = deflate.Options
)

const (
	Stored  = deflate.Stored
	Fixed   = deflate.Fixed
	Dynamic = deflate.Dynamic
)

// DefaultCompressOptions returns dynamic Huffman coding without lazy matching.
func DefaultCompressOptions() CompressOptions {
	return deflate.DefaultOptions()
}

// ParseStrategy returns the Strategy named "stored", "fixed" or "dynamic".
func ParseStrategy(name string) (Strategy, error) {
	return deflate.ParseStrategy(name)
}
