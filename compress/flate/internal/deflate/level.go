// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"compress/flate"
	"fmt"
)

const (
	NoCompression      = flate.NoCompression
	BestSpeed          = flate.BestSpeed
	BestCompression    = flate.BestCompression
	DefaultCompression = flate.DefaultCompression
	HuffmanOnly        = flate.HuffmanOnly
)

// Strategy selects the block type used to encode the input.
type Strategy int

const (
	// Stored copies the input into uncompressed blocks of at most 65535 bytes.
	Stored Strategy = iota
	// Fixed encodes one block with the predefined Huffman codes.
	Fixed
	// Dynamic encodes one block with Huffman codes built for the input.
	Dynamic
)

func (s Strategy) String() string {
	switch s {
	case Stored:
		return "stored"
	case Fixed:
		return "fixed"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the Strategy named name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{Stored, Fixed, Dynamic} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("deflate: unknown strategy %q", name)
}

// lazyBestCompression is the match length under which BestCompression holds
// a match back to look for a longer one at the next position.
const lazyBestCompression = 8

// Options controls Compress.
type Options struct {
	Strategy Strategy
	// Lazy holds matches shorter than Lazy back for one position.
	// Zero disables lazy matching.
	Lazy int
}

// DefaultOptions returns the options used by DefaultCompression.
func DefaultOptions() Options {
	return Options{Strategy: Dynamic}
}

// LevelOptions maps a compression level to Options. HuffmanOnly has no
// equivalent and is rejected together with out of range levels.
func LevelOptions(level int) (Options, error) {
	switch {
	case level == NoCompression:
		return Options{Strategy: Stored}, nil
	case level == BestSpeed:
		return Options{Strategy: Fixed}, nil
	case level == DefaultCompression:
		return DefaultOptions(), nil
	case level == BestCompression:
		return Options{Strategy: Dynamic, Lazy: lazyBestCompression}, nil
	case level > BestSpeed && level < BestCompression:
		return Options{Strategy: Dynamic}, nil
	}
	return Options{}, fmt.Errorf("deflate: invalid compression level %d", level)
}

// blockCompressor writes the blocks of a whole input into b.
type blockCompressor interface {
	compress(data []byte, b *BitWriter) error
}

func newBlockCompressor(opts Options) (blockCompressor, error) {
	switch opts.Strategy {
	case Stored:
		return storedCompressor{}, nil
	case Fixed:
		return &fixedCompressor{lz77: newLZ77Matcher(opts.Lazy)}, nil
	case Dynamic:
		return newDynCompressor(opts.Lazy), nil
	}
	return nil, fmt.Errorf("deflate: invalid strategy %v", opts.Strategy)
}
