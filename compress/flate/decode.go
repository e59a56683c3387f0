// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// decodeLiteralBlock copies the payload of a stored block. The payload may
// arrive in pieces; every copied byte is consumed for good.
func (state *inflate) decodeLiteralBlock() error {
	br := &state.br
	out := state.acc.window()
	for state.litBlockLength > 0 {
		avail := br.available()
		if avail == 0 {
			state.save()
			return ErrInputTruncated
		}
		if out.room() == 0 {
			state.acc.reserve(state.litBlockLength, state.growth(2))
			out = state.acc.window()
		}
		n := state.litBlockLength
		if n > avail {
			n = avail
		}
		if n > out.room() {
			n = out.room()
		}
		copy(out.buf[out.op:], br.in[br.ip:br.ip+n])
		out.op += n
		br.ip += n
		state.litBlockLength -= n
	}
	state.endBlock()
	return nil
}

// decodeHuffman decodes symbols of a fixed or dynamic block until its end
// of block symbol.
func (state *inflate) decodeHuffman() error {
	br := &state.br
	out := state.acc.window()
	for {
		state.save()
		if out.room() < maxMatchLength {
			state.acc.reserve(maxMatchLength, state.growth(0))
			out = state.acc.window()
		}
		sym, err := br.readCodeByTable(state.litTable)
		if err != nil {
			return err
		}
		switch {
		case sym < 256:
			out.buf[out.op] = byte(sym)
			out.op++
			continue
		case sym == 256:
			state.endBlock()
			return nil
		case sym >= numLitLenSymbols:
			return ErrInvalidCode
		}

		i := sym - 257
		extra, err := br.readBits(uint(lengthExtraBits[i]))
		if err != nil {
			return err
		}
		length := int(lengthBase[i]) + int(extra)

		dsym, err := br.readCodeByTable(state.distTable)
		if err != nil {
			return err
		}
		if dsym >= numDistSymbols {
			return ErrInvalidCode
		}
		extra, err = br.readBits(uint(distExtraBits[dsym]))
		if err != nil {
			return err
		}
		dist := int(distBase[dsym]) + int(extra)
		if out.op-dist < out.start {
			return ErrInvalidDistance
		}
		byteCopy(out.buf, out.op, dist, length)
		out.op += length
	}
}

// byteCopy copies length bytes from dist bytes back. Overlapping copies
// repeat the last dist bytes.
func byteCopy(hist []byte, curr int, dist, length int) {
	end := curr + length
	start := curr - dist
	for curr < end {
		to := hist[curr:end]
		from := hist[start:curr]
		size := copy(to, from)
		curr += size
	}
}
