// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	kgzip "github.com/klauspost/compress/gzip"

	"github.com/intel/zlibgo/compress/flate"
)

var testLevels = []int{
	flate.NoCompression,
	flate.BestSpeed,
	flate.DefaultCompression,
	flate.BestCompression,
}

func testHeader() Header {
	return Header{
		Comment:   "comment é",
		Extra:     []byte{'A', 'B', 2, 0, 'x', 'y'},
		ModTime:   time.Unix(1700000000, 0),
		Name:      "namesü.txt",
		OS:        3,
		Text:      true,
		HeaderCRC: true,
	}
}

func gzipData(t *testing.T, level int, h Header, data []byte) []byte {
	var buf bytes.Buffer
	w, err := NewWriterLevel(&buf, level)
	if err != nil {
		t.Fatal(err)
	}
	w.Header = h
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWriter(t *testing.T) {
	source := bytes.Repeat([]byte("gzip member data "), 5000)
	h := testHeader()
	for _, level := range testLevels {
		compressed := gzipData(t, level, h, source)

		std, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		data, err := io.ReadAll(std)
		if err != nil || !bytes.Equal(data, source) {
			t.Fatalf("level %d: std decoding failed: %v", level, err)
		}
		if std.Name != h.Name || std.Comment != h.Comment || !bytes.Equal(std.Extra, h.Extra) ||
			!std.ModTime.Equal(h.ModTime) || std.OS != h.OS {
			t.Fatalf("level %d: header %+v differs from %+v", level, std.Header, h)
		}

		k, err := kgzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatal(err)
		}
		if data, err := io.ReadAll(k); err != nil || !bytes.Equal(data, source) {
			t.Fatalf("level %d: klauspost decoding failed: %v", level, err)
		}

		r, err := NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatal(err)
		}
		if data, err := io.ReadAll(r); err != nil || !bytes.Equal(data, source) {
			t.Fatalf("level %d: decoding failed: %v", level, err)
		}
		if r.Header.Name != h.Name || r.Header.Comment != h.Comment || !r.Header.Text || !r.Header.HeaderCRC {
			t.Fatalf("level %d: header %+v differs from %+v", level, r.Header, h)
		}
	}
}

func TestWriterDefaults(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if b[0] != gzipID1 || b[1] != gzipID2 || b[2] != gzipDeflate || b[3] != 0 || b[9] != osUnknown {
		t.Fatalf("unexpected header % x", b[:10])
	}
	out, err := Decompress(b)
	if err != nil || len(out) != 0 {
		t.Fatalf("empty member: %q, %v", out, err)
	}

	w.Reset(&buf)
	if w.Header.OS != osUnknown || w.Name != "" {
		t.Fatalf("Reset kept the header %+v", w.Header)
	}
	if _, err := NewWriterLevel(&buf, -2); err == nil {
		t.Fatal("HuffmanOnly accepted")
	}
}

func TestWriterInvalidHeader(t *testing.T) {
	w := NewWriter(io.Discard)
	w.Name = "nul\x00name"
	w.Comment = "€"
	w.Extra = make([]byte, 70000)
	w.ModTime = time.Unix(-10, 0)
	_, err := w.Write([]byte("data"))
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a multierror, got %v", err)
	}
	if len(merr.Errors) != 4 {
		t.Fatalf("expected 4 header problems, got %v", merr)
	}
	if w.Close() != err {
		t.Fatal("Close should report the header error")
	}
}

func TestGunzipKlauspost(t *testing.T) {
	source := bytes.Repeat([]byte("klauspost member "), 3000)
	var buf bytes.Buffer
	w := kgzip.NewWriter(&buf)
	w.Name = "k.txt"
	w.Comment = "from klauspost"
	w.ModTime = time.Unix(1600000000, 0)
	w.Write(source)
	w.Close()

	members, err := Gunzip(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 {
		t.Fatalf("expected one member, got %d", len(members))
	}
	m := members[0]
	if m.Name != "k.txt" || m.Comment != "from klauspost" || !m.ModTime.Equal(w.ModTime) {
		t.Fatalf("unexpected header %+v", m.Header)
	}
	if !bytes.Equal(m.Data, source) || int(m.ISize) != len(source) {
		t.Fatal("data differs")
	}
}

func TestGunzipErrors(t *testing.T) {
	good := gzipData(t, flate.DefaultCompression, Header{Name: "a"}, []byte("checked data"))

	corrupt := func(i int) []byte {
		b := append([]byte(nil), good...)
		b[i] ^= 0xff
		return b
	}
	hcrc := gzipData(t, flate.DefaultCompression, Header{HeaderCRC: true}, []byte("x"))
	hcrc[10] ^= 0x01

	cases := []struct {
		name  string
		input []byte
		err   error
	}{
		{"magic", corrupt(0), ErrHeader},
		{"method", corrupt(2), ErrUnsupportedMethod},
		{"reserved", append([]byte{0x1f, 0x8b, 8, 0x20}, good[4:]...), ErrHeader},
		{"crc", corrupt(len(good) - 8), ErrChecksum},
		{"isize", corrupt(len(good) - 1), ErrChecksum},
		{"header-crc", hcrc, ErrHeader},
		{"trailer", good[:len(good)-3], flate.ErrInputTruncated},
		{"header", good[:5], io.ErrUnexpectedEOF},
	}
	for _, c := range cases {
		if _, err := Gunzip(c.input); !errors.Is(err, c.err) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.err, err)
		}
	}

	r, err := NewReader(bytes.NewReader(corrupt(len(good) - 8)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadAll(r); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
	r, _ = NewReader(bytes.NewReader(good[:len(good)-3]))
	if _, err := io.ReadAll(r); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if _, err := NewReader(bytes.NewReader(nil)); err != io.EOF {
		t.Fatalf("expected io.EOF for an empty input, got %v", err)
	}
}
