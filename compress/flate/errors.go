// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"errors"
	"strconv"

	"github.com/intel/zlibgo/compress/flate/internal/deflate"
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

var (
	// ErrInvalidBlockType is returned for a block type of 3.
	ErrInvalidBlockType = errors.New("flate: invalid block type")
	// ErrInvalidBlockHeader is returned for a stored block whose NLEN is not
	// the complement of LEN and for malformed dynamic block headers.
	ErrInvalidBlockHeader = errors.New("flate: invalid block header")
	// ErrInputTruncated is returned when the stream ends before its final block.
	ErrInputTruncated = errors.New("flate: input truncated")
	// ErrInvalidCode is returned for bits that do not decode to a valid symbol.
	ErrInvalidCode = errors.New("flate: invalid code")
	// ErrInvalidDistance is returned for a back reference before the first output byte.
	ErrInvalidDistance = errors.New("flate: invalid distance")
)

var (
	ErrUnsupportedFeature = huffman.ErrUnsupportedFeature
	ErrWriterFinished     = deflate.ErrWriterFinished
	ErrClosed             = deflate.ErrClosed
)

// A CorruptInputError reports the input offset at which a corrupt stream
// was detected and the reason.
type CorruptInputError struct {
	Offset int64
	Err    error
}

func (e *CorruptInputError) Error() string {
	return "flate: corrupt input before offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

func (e *CorruptInputError) Unwrap() error {
	return e.Err
}

func isCorrupt(err error) bool {
	return err == ErrInvalidBlockType || err == ErrInvalidBlockHeader ||
		err == ErrInvalidCode || err == ErrInvalidDistance
}
