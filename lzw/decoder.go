// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/dsnet/golib/errs"

// Decoder holds the state of one in-progress decompression: the
// string table, the bit reservoir, and the bookkeeping needed to
// resolve the self-referential KwKwK code. The zero value is ready to
// use; the first call to Decompress seeds the literal roots.
type Decoder struct {
	tbl         table
	res         reservoir
	initialized bool
	mustReset   bool

	// LongestPrefix is the longest prefix resolved from a single code
	// since the Decoder was created. A self-referential (KwKwK) code
	// writes one byte more than its prefix, so a dst of LongestPrefix+1
	// bytes always makes forward progress on this stream.
	LongestPrefix int
}

// NewDecoder returns a ready-to-use Decoder. It is equivalent to
// new(Decoder); it exists for symmetry with NewEncoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) init() {
	d.tbl.seedRoots()
	d.tbl.reset()
	d.res = reservoir{}
	d.mustReset = false
	d.initialized = true
}

// Decompress decodes complete codes from src into dst for as long as
// both hold out, returning the number of bytes written to dst (nDst)
// and the number of bytes of src consumed (nSrc).
//
// Source bytes count as consumed as soon as they are loaded into the
// Decoder's reservoir, even if the code they complete has not been
// resolved yet. If dst fills up mid-code, or src runs out mid-code, the
// pending bits stay in the Decoder's reservoir and are resolved again on the next call, so on
// a retry the caller only needs to supply src[nSrc:] (or nothing at
// all, if the reservoir already holds a complete pending code).
//
// final tells Decompress whether more source bytes may ever arrive.
// If src runs out mid-code and final is false, Decompress returns with
// a nil error, expecting a continuation call. If final is true in the
// same situation, the stream is genuinely truncated and
// ErrInvalidCodeStream is returned.
func (d *Decoder) Decompress(dst, src []byte, final bool) (nDst, nSrc int, err error) {
	defer errs.Recover(&err)

	if !d.initialized {
		d.init()
	}

	bits, nbits := d.res.bits, d.res.nbits
	wptr := 0
	rptr := 0

	for rptr < len(src) || nbits >= d.tbl.codeWidth {
		for nbits < d.tbl.codeWidth && rptr < len(src) {
			bits |= uint32(src[rptr]) << nbits
			rptr++
			nbits += 8
		}

		// Snapshot before consuming a single bit of this code, so that
		// any early return below leaves it decodable again next call.
		d.res.bits, d.res.nbits = bits, nbits

		if nbits < d.tbl.codeWidth {
			if final {
				return wptr, rptr, ErrInvalidCodeStream
			}
			return wptr, rptr, nil
		}

		code := bits & maskFromWidth(d.tbl.codeWidth)
		bits >>= d.tbl.codeWidth
		nbits -= d.tbl.codeWidth

		if code == codeClear {
			if d.tbl.nextCode != codeFirst {
				d.tbl.reset()
			}
			d.mustReset = false
			// This code is fully processed and won't be revisited; commit
			// the post-shift state now, since this "continue" can reach
			// the outer loop's exit without ever reaching the refill
			// block's own snapshot again.
			d.res.bits, d.res.nbits = bits, nbits
			continue
		}
		if code == codeEOF {
			return wptr, rptr, nil
		}
		if d.mustReset {
			return wptr, rptr, ErrStringTableFull
		}
		if code > d.tbl.nextCode {
			return wptr, rptr, ErrInvalidCodeStream
		}

		knownCode := code < d.tbl.nextCode
		tcode := code
		if !knownCode {
			tcode = d.tbl.prevCode
			if tcode == codeEOF {
				return wptr, rptr, ErrInvalidCodeStream
			}
		}

		prefixLen := 1 + int(d.tbl.nodes[tcode].prefixLen())
		errs.Assert(prefixLen > 0, Error("internal: zero-length prefix"))
		if prefixLen > d.LongestPrefix {
			d.LongestPrefix = prefixLen
		}

		extra := 0
		if !knownCode {
			extra = 1
		}
		if prefixLen+extra > len(dst) {
			return wptr, rptr, ErrDestinationTooSmall
		}
		if wptr+prefixLen+extra > len(dst) {
			return wptr, rptr, nil
		}

		var firstSymbol byte
		walk := tcode
		for i := 0; i < prefixLen; i++ {
			n := d.tbl.nodes[walk]
			sym := byte(n.symbol())
			dst[wptr+prefixLen-1-i] = sym
			if i == prefixLen-1 {
				firstSymbol = sym
			}
			walk = n.parent()
		}
		wptr += prefixLen

		if d.tbl.prevCode != codeEOF {
			if !knownCode {
				dst[wptr] = firstSymbol
				wptr++
			}

			d.tbl.nodes[d.tbl.nextCode] = makeNode(uint32(firstSymbol), d.tbl.prevCode,
				1+d.tbl.nodes[d.tbl.prevCode].prefixLen())

			if d.tbl.nextCode >= maskFromWidth(d.tbl.codeWidth) {
				if d.tbl.codeWidth == MaxCodeWidth {
					// Out of bits in the current code width. The next
					// code this decoder accepts MUST be a CLEAR.
					d.mustReset = true
					d.tbl.prevCode = code
					// Same reasoning as the CLEAR case above: this code is
					// fully processed, so commit its post-shift state now.
					d.res.bits, d.res.nbits = bits, nbits
					continue
				}
				d.tbl.codeWidth++
			}
			d.tbl.nextCode++
		}
		d.tbl.prevCode = code

		// This code's output is fully written and the table updated;
		// commit the post-shift state so a call boundary right here
		// (outer loop condition going false before the next refill)
		// doesn't leave a stale pre-shift snapshot behind.
		d.res.bits, d.res.nbits = bits, nbits
	}
	if final && nbits > 0 {
		return wptr, rptr, ErrInvalidCodeStream
	}
	return wptr, rptr, nil
}
