// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"bufio"
	"compress/flate"
	"errors"
	"io"
)

type (
	Reader   = flate.Reader
	Resetter = flate.Resetter
)

var errDictionary = errors.New("flate: preset dictionaries are not supported")

// NewReader returns a ReadCloser that decompresses the raw DEFLATE stream
// read from r. Input is read through a bufio.Reader, which is r itself when r
// is one; bytes following the stream are left unread in it.
func NewReader(r io.Reader) io.ReadCloser {
	rr := &decompressor{inflater: NewInflater(0)}
	rr.Reset(r, nil)
	return rr
}

type decompressor struct {
	inflater *Inflater
	r        io.Reader
	rBuf     *bufio.Reader
	pending  []byte
	err      error
}

func (r *decompressor) Reset(under io.Reader, dict []byte) error {
	r.r = under
	if ur, ok := under.(*bufio.Reader); ok {
		r.rBuf = ur
	} else {
		if r.rBuf != nil {
			r.rBuf.Reset(under)
		} else {
			r.rBuf = bufio.NewReader(under)
		}
	}
	r.inflater.Reset()
	r.pending = nil
	r.err = nil
	if len(dict) != 0 {
		r.err = errDictionary
		return r.err
	}
	return nil
}

func (r *decompressor) Close() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}

func (f *decompressor) Read(b []byte) (n int, err error) {
	for {
		if len(f.pending) > 0 {
			n = copy(b, f.pending)
			f.pending = f.pending[n:]
			return n, nil
		}
		if f.err != nil {
			return 0, f.err
		}
		f.pending, f.err = f.step()
	}
}

// step feeds what is buffered in rBuf to the inflater. Input it takes is
// discarded from rBuf, except the bytes following the end of the stream.
func (f *decompressor) step() ([]byte, error) {
	if f.inflater.Done() {
		return nil, io.EOF
	}
	if f.rBuf.Buffered() == 0 {
		if _, err := f.rBuf.Peek(1); err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	input, _ := f.rBuf.Peek(f.rBuf.Buffered())

	out, err := f.inflater.Decompress(input)
	discardSize := len(input)
	if f.inflater.Done() {
		if unused := len(f.inflater.Unused()); unused < discardSize {
			discardSize -= unused
		} else {
			discardSize = 0
		}
	}
	if _, derr := f.rBuf.Discard(discardSize); derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		if isCorrupt(err) {
			err = &CorruptInputError{Offset: f.inflater.Offset(), Err: err}
		}
		return out, err
	}
	if f.inflater.Done() {
		return out, io.EOF
	}
	return out, nil
}
