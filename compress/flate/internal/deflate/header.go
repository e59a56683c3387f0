// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"github.com/intel/zlibgo/compress/flate/internal/huffman"
)

const (
	numRepeat3_6     = 16
	zeroRepeat3_10   = 17
	zeroRepeat11_138 = 18
	numCodeLenCodes  = 19
)

var hclenOrder = [numCodeLenCodes]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// extra bit counts of the repeat codes
var repeatBits = [3]uint8{2, 3, 7}

type dynamicHeader struct {
	generator   huffman.TreeGenerator
	litNum      int
	distanceNum int
	source      []uint8 // lit/len lengths followed by distance lengths
	data        []uint8 // run length coded lengths, repeat codes followed by their extra value
	histogram   [numCodeLenCodes]uint32
	lengths     [numCodeLenCodes]uint8
	rcodes      [numCodeLenCodes]uint16
}

func newDynamicHeader(gen huffman.TreeGenerator) *dynamicHeader {
	return &dynamicHeader{
		generator: gen,
		source:    make([]uint8, 0, numLitLen+numDist),
	}
}

// prepare run length codes the code lengths of t and builds the code length code.
func (c *dynamicHeader) prepare(t *huffcodeTable) error {
	c.litNum = numLitLen
	for c.litNum > 257 && t.litLens[c.litNum-1] == 0 {
		c.litNum--
	}
	c.distanceNum = numDist
	for c.distanceNum > 1 && t.distLens[c.distanceNum-1] == 0 {
		c.distanceNum--
	}
	c.source = append(c.source[:0], t.litLens[:c.litNum]...)
	c.source = append(c.source, t.distLens[:c.distanceNum]...)

	c.data = c.data[:0]
	for i := range c.histogram {
		c.histogram[i] = 0
	}
	c.alphabet(c.source)

	if err := c.generator.Generate(maxCodeLenCodeBits, c.histogram[:], c.lengths[:]); err != nil {
		return err
	}
	huffman.GenerateCode(c.lengths[:], c.rcodes[:])
	return nil
}

// codeSize returns HCLEN+4, the number of code length code lengths sent.
func (c *dynamicHeader) codeSize() (num int) {
	num = numCodeLenCodes
	for num > 4 && c.lengths[hclenOrder[num-1]] == 0 {
		num--
	}
	return num
}

// writeTo writes HLIT, HDIST, HCLEN, the code length code and the coded lengths.
func (c *dynamicHeader) writeTo(b *BitWriter) {
	codeSize := c.codeSize()
	b.WriteBits(uint32(c.litNum-257), 5, true)
	b.WriteBits(uint32(c.distanceNum-1), 5, true)
	b.WriteBits(uint32(codeSize-4), 4, true)
	for i := 0; i < codeSize; i++ {
		b.WriteBits(uint32(c.lengths[hclenOrder[i]]), 3, true)
	}
	for i := 0; i < len(c.data); i++ {
		value := c.data[i]
		b.WriteBits(uint32(c.rcodes[value]), c.lengths[value], true)
		if value >= numRepeat3_6 {
			i++
			b.WriteBits(uint32(c.data[i]), repeatBits[value-numRepeat3_6], true)
		}
	}
}

// alphabet run length codes source. A run is never split so that fewer
// than three lengths are left for a repeat code.
func (c *dynamicHeader) alphabet(source []uint8) {
	for i := 0; i < len(source); {
		j := 1
		for i+j < len(source) && source[i+j] == source[i] {
			j++
		}
		if source[i] == 0 {
			c.zeroRepeat(j)
		} else {
			c.numRepeat(source[i], j)
		}
		i += j
	}
}

func splitRun(repeated, limit int) int {
	rpt := repeated
	if rpt > limit {
		rpt = limit
	}
	if rpt > repeated-3 && rpt < repeated {
		rpt = repeated - 3
	}
	return rpt
}

func (c *dynamicHeader) numRepeat(num uint8, repeated int) {
	c.data = append(c.data, num)
	c.histogram[num]++
	repeated--
	if repeated < 3 {
		for ; repeated > 0; repeated-- {
			c.data = append(c.data, num)
			c.histogram[num]++
		}
		return
	}
	for repeated > 0 {
		rpt := splitRun(repeated, 6)
		c.data = append(c.data, numRepeat3_6, uint8(rpt-3))
		c.histogram[numRepeat3_6]++
		repeated -= rpt
	}
}

func (c *dynamicHeader) zeroRepeat(repeated int) {
	if repeated < 3 {
		for ; repeated > 0; repeated-- {
			c.data = append(c.data, 0)
			c.histogram[0]++
		}
		return
	}
	for repeated > 0 {
		rpt := splitRun(repeated, 138)
		if rpt <= 10 {
			c.data = append(c.data, zeroRepeat3_10, uint8(rpt-3))
			c.histogram[zeroRepeat3_10]++
		} else {
			c.data = append(c.data, zeroRepeat11_138, uint8(rpt-11))
			c.histogram[zeroRepeat11_138]++
		}
		repeated -= rpt
	}
}
