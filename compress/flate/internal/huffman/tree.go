// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman builds the canonical prefix codes used by DEFLATE:
// length-limited code lengths, bit-reversed canonical codes and the
// flat lookup tables used by the decoder.
package huffman

import "errors"

var (
	// ErrUnsupportedFeature is returned when a length limit cannot represent
	// every symbol of an alphabet.
	ErrUnsupportedFeature = errors.New("huffman: length limit cannot represent alphabet")
	// ErrOversubscribed is returned for code lengths that violate Kraft's inequality.
	ErrOversubscribed = errors.New("huffman: over-subscribed code lengths")
)

// MaxCodeLength is the longest code any generator in this package will assign.
const MaxCodeLength = 16

// TreeGenerator generates code lengths from a frequency table.
// A generator keeps scratch memory between calls and must be reused
// by a single goroutine at a time.
type TreeGenerator interface {
	// Generate writes one code length per entry of freqs into lengths.
	// Symbols with a zero frequency get length 0.
	Generate(limit int, freqs []uint32, lengths []uint8) error
}
