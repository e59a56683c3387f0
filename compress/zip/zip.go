// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package zip registers the DEFLATE codec of package flate as the Deflate
// method of archive/zip readers and writers.
package zip

import (
	"archive/zip"
	"io"

	"github.com/intel/zlibgo/compress/flate"
)

// RegisterReader makes r decode Deflate entries with flate.NewReader.
func RegisterReader(r *zip.Reader) {
	r.RegisterDecompressor(zip.Deflate, flate.NewReader)
}

// RegisterWriter makes w encode Deflate entries at the given level. Each
// entry is compressed when it is closed.
func RegisterWriter(w *zip.Writer, level int) error {
	opts, err := flate.LevelOptions(level)
	if err != nil {
		return err
	}
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriterOptions(out, opts)
	})
	return nil
}
