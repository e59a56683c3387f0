// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package gzip implements the gzip format (RFC1952) around the raw DEFLATE
// codec of package flate.
package gzip

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/intel/zlibgo/compress/flate"
)

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	flagText    = 1 << 0
	flagHdrCrc  = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
	flagReserve = 0xe0

	// osUnknown is written when Header.OS is left zero by NewWriter.
	osUnknown = 255
)

var (
	// ErrChecksum is returned when the CRC-32 or ISIZE of a member does not
	// match its data.
	ErrChecksum = errors.New("gzip: invalid checksum")
	// ErrHeader is returned for a malformed member header.
	ErrHeader = errors.New("gzip: invalid header")
	// ErrUnsupportedMethod is returned when the compression method is not DEFLATE.
	ErrUnsupportedMethod = errors.New("gzip: unsupported compression method")
)

// Header is the metadata of a gzip member. Strings are UTF-8 in Go and
// ISO 8859-1 in the stream.
type Header struct {
	Comment string
	Extra   []byte
	ModTime time.Time
	Name    string
	OS      byte
	// Text is the FTEXT hint.
	Text bool
	// HeaderCRC adds a CRC-16 of the header on write, and reports its
	// presence on read.
	HeaderCRC bool
}

// validate collects every field that cannot be encoded.
func (h *Header) validate() error {
	var result *multierror.Error
	if len(h.Extra) > 0xffff {
		result = multierror.Append(result, fmt.Errorf("gzip: extra field of %d bytes exceeds 65535", len(h.Extra)))
	}
	if err := checkLatin1("name", h.Name); err != nil {
		result = multierror.Append(result, err)
	}
	if err := checkLatin1("comment", h.Comment); err != nil {
		result = multierror.Append(result, err)
	}
	if !h.ModTime.IsZero() {
		if sec := h.ModTime.Unix(); sec < 0 || sec > 1<<32-1 {
			result = multierror.Append(result, fmt.Errorf("gzip: modification time %v out of range", h.ModTime))
		}
	}
	return result.ErrorOrNil()
}

func checkLatin1(field, s string) error {
	for _, r := range s {
		if r == 0 || r > 0xff {
			return fmt.Errorf("gzip: %s %q is not NUL free ISO 8859-1", field, s)
		}
	}
	return nil
}

func (h *Header) flags() byte {
	var flg byte
	if h.Text {
		flg |= flagText
	}
	if h.HeaderCRC {
		flg |= flagHdrCrc
	}
	if h.Extra != nil {
		flg |= flagExtra
	}
	if h.Name != "" {
		flg |= flagName
	}
	if h.Comment != "" {
		flg |= flagComment
	}
	return flg
}

// appendHeader appends the encoded header. xfl is the extra flags byte.
func (h *Header) appendHeader(b []byte, xfl byte) []byte {
	start := len(b)
	b = append(b, gzipID1, gzipID2, gzipDeflate, h.flags())
	var mtime uint32
	if !h.ModTime.IsZero() {
		mtime = uint32(h.ModTime.Unix())
	}
	b = binary.LittleEndian.AppendUint32(b, mtime)
	b = append(b, xfl, h.OS)
	if h.Extra != nil {
		b = binary.LittleEndian.AppendUint16(b, uint16(len(h.Extra)))
		b = append(b, h.Extra...)
	}
	if h.Name != "" {
		b = appendLatin1(b, h.Name)
	}
	if h.Comment != "" {
		b = appendLatin1(b, h.Comment)
	}
	if h.HeaderCRC {
		b = binary.LittleEndian.AppendUint16(b, uint16(crc32.ChecksumIEEE(b[start:])))
	}
	return b
}

func appendLatin1(b []byte, s string) []byte {
	for _, r := range s {
		b = append(b, byte(r))
	}
	return append(b, 0)
}

// byteReader is what header decoding reads from.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// readHeader decodes a member header. It returns io.EOF when r is empty.
func readHeader(r byteReader) (h Header, xfl byte, err error) {
	var buf [10]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return h, 0, err
	}
	if buf[0] != gzipID1 || buf[1] != gzipID2 {
		return h, 0, ErrHeader
	}
	if buf[2] != gzipDeflate {
		return h, 0, ErrUnsupportedMethod
	}
	flg := buf[3]
	if flg&flagReserve != 0 {
		return h, 0, ErrHeader
	}
	if t := int64(binary.LittleEndian.Uint32(buf[4:8])); t > 0 {
		h.ModTime = time.Unix(t, 0)
	}
	xfl = buf[8]
	h.OS = buf[9]
	h.Text = flg&flagText != 0
	digest := crc32.ChecksumIEEE(buf[:])

	if flg&flagExtra != 0 {
		if _, err = io.ReadFull(r, buf[:2]); err != nil {
			return h, 0, noEOF(err)
		}
		digest = crc32.Update(digest, crc32.IEEETable, buf[:2])
		h.Extra = make([]byte, binary.LittleEndian.Uint16(buf[:2]))
		if _, err = io.ReadFull(r, h.Extra); err != nil {
			return h, 0, noEOF(err)
		}
		digest = crc32.Update(digest, crc32.IEEETable, h.Extra)
	}
	if flg&flagName != 0 {
		if h.Name, digest, err = readString(r, digest); err != nil {
			return h, 0, err
		}
	}
	if flg&flagComment != 0 {
		if h.Comment, digest, err = readString(r, digest); err != nil {
			return h, 0, err
		}
	}
	if flg&flagHdrCrc != 0 {
		h.HeaderCRC = true
		if _, err = io.ReadFull(r, buf[:2]); err != nil {
			return h, 0, noEOF(err)
		}
		if binary.LittleEndian.Uint16(buf[:2]) != uint16(digest) {
			return h, 0, ErrHeader
		}
	}
	return h, xfl, nil
}

// readString reads a NUL terminated ISO 8859-1 string.
func readString(r io.ByteReader, digest uint32) (string, uint32, error) {
	var raw []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return "", digest, noEOF(err)
		}
		raw = append(raw, c)
		if c == 0 {
			break
		}
	}
	digest = crc32.Update(digest, crc32.IEEETable, raw)
	s := make([]rune, len(raw)-1)
	for i, c := range raw[:len(raw)-1] {
		s[i] = rune(c)
	}
	return string(s), digest, nil
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// extraFlags is the XFL value for a compression level.
func extraFlags(level int) byte {
	switch level {
	case flate.BestCompression:
		return 2
	case flate.BestSpeed:
		return 4
	}
	return 0
}
