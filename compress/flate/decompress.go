// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import "fmt"

// Decompress decodes the raw DEFLATE stream starting at input[start]. It
// returns the decoded bytes and the offset of the first input byte after the
// stream. A nil opts means DefaultDecompressOptions.
func Decompress(input []byte, start int, opts *DecompressOptions) (out []byte, end int, err error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}
	if start < 0 || start > len(input) {
		return nil, 0, fmt.Errorf("flate: start offset %d out of range [0,%d]", start, len(input))
	}
	acc, err := opts.accumulator()
	if err != nil {
		return nil, 0, err
	}
	var state inflate
	state.reset(acc)
	state.br.in = input
	state.br.ip = start
	if err := state.run(); err != nil {
		return nil, state.br.ip, err
	}
	return acc.take(), state.br.ip, nil
}
