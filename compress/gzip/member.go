// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/intel/zlibgo/compress/flate"
)

// maxRatio bounds how much a DEFLATE stream can expand: a 258 byte match
// costs at least two bits.
const maxRatio = 1032

// Member is one decoded member of a gzip file.
type Member struct {
	Header
	XFL   byte
	CRC32 uint32
	ISize uint32
	Data  []byte
}

// Gunzip decodes every member of a gzip file held in memory.
func Gunzip(input []byte) ([]Member, error) {
	var members []Member
	for ip := 0; ip < len(input); {
		m, next, err := decodeMember(input, ip)
		if err != nil {
			return members, err
		}
		members = append(members, m)
		ip = next
	}
	return members, nil
}

// Decompress returns the concatenated data of every member of input.
func Decompress(input []byte) ([]byte, error) {
	members, err := Gunzip(input)
	if err != nil {
		return nil, err
	}
	if len(members) == 1 {
		return members[0].Data, nil
	}
	size := 0
	for i := range members {
		size += len(members[i].Data)
	}
	out := make([]byte, 0, size)
	for i := range members {
		out = append(out, members[i].Data...)
	}
	return out, nil
}

func decodeMember(input []byte, ip int) (m Member, next int, err error) {
	r := bytes.NewReader(input[ip:])
	if m.Header, m.XFL, err = readHeader(r); err != nil {
		return m, ip, noEOF(err)
	}
	ip = len(input) - r.Len()

	opts := flate.DefaultDecompressOptions()
	// ISIZE of the last member of the file sizes the output when it is
	// plausible for the remaining input.
	if len(input) >= 4 {
		isize := int64(binary.LittleEndian.Uint32(input[len(input)-4:]))
		rest := int64(len(input) - ip - 8)
		if rest < isize*512 && isize <= int64(len(input)-ip)*maxRatio {
			opts.SizeHint = int(isize)
			opts.Resize = true
		}
	}
	if m.Data, ip, err = flate.Decompress(input, ip, opts); err != nil {
		return m, ip, err
	}

	if len(input)-ip < 8 {
		return m, ip, flate.ErrInputTruncated
	}
	m.CRC32 = binary.LittleEndian.Uint32(input[ip:])
	m.ISize = binary.LittleEndian.Uint32(input[ip+4:])
	if crc32.ChecksumIEEE(m.Data) != m.CRC32 || uint32(len(m.Data)) != m.ISize {
		return m, ip, ErrChecksum
	}
	return m, ip + 8, nil
}
