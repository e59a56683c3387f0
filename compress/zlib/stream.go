// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"encoding/binary"
	"hash"
	"hash/adler32"

	"github.com/intel/zlibgo/compress/flate"
)

type streamPhase int

const (
	streamHeader streamPhase = iota
	streamBody
	streamTrailer
	streamDone
)

// Stream decodes a zlib stream that arrives in pieces.
type Stream struct {
	inflater *flate.Inflater
	digest   hash.Hash32
	verify   bool
	phase    streamPhase
	frame    []byte // header or trailer bytes collected so far
	err      error
}

// NewStream returns a Stream; a nil opts means DefaultReadOptions.
func NewStream(opts *ReadOptions) *Stream {
	if opts == nil {
		opts = DefaultReadOptions()
	}
	bufferSize := 0
	if opts.Decompress != nil {
		bufferSize = opts.Decompress.BufferSize
	}
	s := &Stream{
		inflater: flate.NewInflater(bufferSize),
		digest:   adler32.New(),
		verify:   opts.Verify,
	}
	s.Reset()
	return s
}

// Reset prepares s for a new stream.
func (s *Stream) Reset() {
	s.inflater.Reset()
	s.digest.Reset()
	s.phase = streamHeader
	s.frame = s.frame[:0]
	s.err = nil
}

// collect moves up to n-len(s.frame) bytes from chunk into s.frame and
// returns the rest of chunk.
func (s *Stream) collect(chunk []byte, n int) []byte {
	k := n - len(s.frame)
	if k > len(chunk) {
		k = len(chunk)
	}
	s.frame = append(s.frame, chunk[:k]...)
	return chunk[k:]
}

// Decompress feeds chunk and returns the bytes decoded from it. Input after
// the trailer is ignored.
func (s *Stream) Decompress(chunk []byte) (out []byte, err error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.phase == streamHeader {
		if chunk = s.collect(chunk, headerSize); len(s.frame) < headerSize {
			return nil, nil
		}
		if s.err = checkHeader(s.frame); s.err != nil {
			return nil, s.err
		}
		s.frame = s.frame[:0]
		s.phase = streamBody
	}
	if s.phase == streamBody {
		out, s.err = s.inflater.Decompress(chunk)
		s.digest.Write(out)
		if s.err != nil {
			return out, s.err
		}
		if !s.inflater.Done() {
			return out, nil
		}
		chunk = s.inflater.Unused()
		s.phase = streamTrailer
	}
	if s.phase == streamTrailer {
		if chunk = s.collect(chunk, trailerSize); len(s.frame) < trailerSize {
			return out, nil
		}
		s.phase = streamDone
		if s.verify && binary.BigEndian.Uint32(s.frame) != s.digest.Sum32() {
			s.err = ErrChecksum
			return out, s.err
		}
	}
	return out, nil
}

// Done reports whether the trailer has been read.
func (s *Stream) Done() bool {
	return s.phase == streamDone
}

// Close reports an error if the stream is incomplete or failed.
func (s *Stream) Close() error {
	if s.err != nil {
		return s.err
	}
	if s.phase != streamDone {
		return flate.ErrInputTruncated
	}
	return nil
}
