// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package zlibgo provides a DEFLATE codec with zlib, gzip and zip framing.
// The codecs live in compress/flate, compress/zlib, compress/gzip and
// compress/zip; this package only recognizes which framing a stream uses.
package zlibgo

import "fmt"

// Format is the framing around a DEFLATE stream.
type Format int

const (
	Raw Format = iota
	Zlib
	Gzip
)

func (f Format) String() string {
	switch f {
	case Raw:
		return "raw"
	case Zlib:
		return "zlib"
	case Gzip:
		return "gzip"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the Format named "raw", "zlib" or "gzip".
func ParseFormat(name string) (Format, error) {
	for _, f := range []Format{Raw, Zlib, Gzip} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("zlibgo: unknown format %q", name)
}

// Detect guesses the Format from the first bytes of a stream. A raw stream
// has no signature, so anything else is reported as Raw.
func Detect(header []byte) Format {
	if len(header) >= 3 && header[0] == 0x1f && header[1] == 0x8b && header[2] == 8 {
		return Gzip
	}
	if len(header) >= 2 && header[0]&0x0f == 8 && header[0]>>4 <= 7 &&
		(uint(header[0])<<8|uint(header[1]))%31 == 0 {
		return Zlib
	}
	return Raw
}
