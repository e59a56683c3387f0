// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/intel/zlibgo/compress/flate"
)

func testFiles() map[string][]byte {
	files := map[string][]byte{"empty.txt": {}}
	for i := 1; i <= 4; i++ {
		files[fmt.Sprintf("file%d.txt", i)] = bytes.Repeat([]byte(fmt.Sprintf("entry %d of the archive\n", i)), 1000*i)
	}
	return files
}

func writeArchive(t *testing.T, files map[string][]byte, register func(*zip.Writer)) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	register(w)
	for name, data := range files {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func readArchive(t *testing.T, archive []byte, register func(*zip.Reader)) map[string][]byte {
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatal(err)
	}
	register(r)
	files := map[string][]byte{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: %v", f.Name, err)
		}
		rc.Close()
		files[f.Name] = data
	}
	return files
}

func checkFiles(t *testing.T, expected, got map[string][]byte) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d files, got %d", len(expected), len(got))
	}
	for name, data := range expected {
		if !bytes.Equal(got[name], data) {
			t.Fatalf("%s differs", name)
		}
	}
}

func TestRegister(t *testing.T) {
	files := testFiles()
	for _, level := range []int{flate.NoCompression, flate.BestSpeed, flate.DefaultCompression, flate.BestCompression} {
		archive := writeArchive(t, files, func(w *zip.Writer) {
			if err := RegisterWriter(w, level); err != nil {
				t.Fatal(err)
			}
		})
		checkFiles(t, files, readArchive(t, archive, func(*zip.Reader) {}))
		checkFiles(t, files, readArchive(t, archive, RegisterReader))
	}

	archive := writeArchive(t, files, func(*zip.Writer) {})
	checkFiles(t, files, readArchive(t, archive, RegisterReader))

	if err := RegisterWriter(zip.NewWriter(io.Discard), 10); err == nil {
		t.Fatal("level 10 accepted")
	}
}
