// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"reflect"
	"testing"

	kgzip "github.com/klauspost/compress/gzip"
)

var multistreamFileMap = map[string]int{
	"bitbuf.go":  1446,
	"inflate.go": 5703,
	"lz77.go":    1497,
	"output.go":  1266,
	"empty.go":   0,
}

// multistreamFile concatenates one klauspost gzip member per entry of files.
func multistreamFile(t testing.TB, files map[string]int) []byte {
	r := rand.New(rand.NewSource(1))
	var buf bytes.Buffer
	for name, size := range files {
		w, err := kgzip.NewWriterLevel(&buf, kgzip.BestCompression)
		if err != nil {
			t.Fatal(err)
		}
		w.Name = name
		data := make([]byte, size)
		for i := range data {
			data[i] = "gzip members\n"[r.Intn(13)]
		}
		w.Write(data)
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func testMultiStream(t *testing.T, compressed []byte) (res map[string]int) {
	res = map[string]int{}
	br := bufio.NewReader(bytes.NewReader(compressed))
	var r Reader
	for {
		err := r.Reset(br)
		r.Multistream(false)
		if err != nil {
			return res
		}
		data, err := io.ReadAll(&r)
		if err != nil {
			t.Fatal(err)
		}
		res[r.Name] = len(data)
	}
}

func TestGunzipMultiStream(t *testing.T) {
	res := testMultiStream(t, multistreamFile(t, multistreamFileMap))
	if !reflect.DeepEqual(res, multistreamFileMap) {
		t.Fatalf("expected %v got %v", multistreamFileMap, res)
	}
}

func TestGunzip(t *testing.T) {
	members, err := Gunzip(multistreamFile(t, multistreamFileMap))
	if err != nil {
		t.Fatal(err)
	}
	res := map[string]int{}
	for _, m := range members {
		if int(m.ISize) != len(m.Data) {
			t.Fatalf("%s: ISIZE %d for %d bytes", m.Name, m.ISize, len(m.Data))
		}
		res[m.Name] = len(m.Data)
	}
	if !reflect.DeepEqual(res, multistreamFileMap) {
		t.Fatalf("expected %v got %v", multistreamFileMap, res)
	}
}

func TestGunzipConcatenated(t *testing.T) {
	compressed := multistreamFile(t, multistreamFileMap)
	r, err := NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	streamed, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	oneShot, err := Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, size := range multistreamFileMap {
		total += size
	}
	if len(streamed) != total || !bytes.Equal(streamed, oneShot) {
		t.Fatalf("expected %d bytes, got %d streamed and %d one-shot", total, len(streamed), len(oneShot))
	}
}
