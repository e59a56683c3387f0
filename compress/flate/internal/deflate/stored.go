// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

const maxStoredBlockSize = 0xffff

var _ blockCompressor = storedCompressor{}

type storedCompressor struct{}

// compress splits data into stored blocks. An empty input still produces
// one empty final block.
func (storedCompressor) compress(data []byte, b *BitWriter) error {
	for {
		n := len(data)
		if n > maxStoredBlockSize {
			n = maxStoredBlockSize
		}
		writeStoredBlock(data[:n], n == len(data), b)
		data = data[n:]
		if len(data) == 0 {
			return nil
		}
	}
}

func writeStoredBlock(block []byte, final bool, b *BitWriter) {
	b.WriteBits(boolBit(final), 1, true)
	b.WriteBits(0, 2, true)
	b.Align()
	n := uint32(len(block))
	b.WriteBits(n, 16, true)
	b.WriteBits(^n&0xffff, 16, true)
	b.WriteBytes(block)
}

func boolBit(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
