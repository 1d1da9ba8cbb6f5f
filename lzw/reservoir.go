// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/dsnet/golib/errs"

// reservoir is the bit buffer shared by the encoder and decoder: a
// scalar register plus a bit count, serializing variable-width codes
// at byte boundaries, LSB-first. It is embedded directly in Encoder
// and Decoder as two plain fields so that codec state stays a flat,
// zero-allocation struct, never a stream-shaped io.Reader/io.Writer.
type reservoir struct {
	bits  uint32
	nbits uint32
}

// enqueue places code's low width bits at bit position nbits and
// advances nbits by width. Callers must ensure nbits+width stays below
// 32, which is asserted; the encoder flushes after every emitted code,
// so at most a code and a CLEAR sit on top of fewer than 8 bits.
func (r *reservoir) enqueue(code, width uint32) {
	errs.Assert(r.nbits+width < 32, Error("internal: reservoir overflow"))
	r.bits |= code << r.nbits
	r.nbits += width
}

// flush writes complete low-order bytes from the reservoir into
// dst[*wptr:], advancing *wptr. If final, any trailing partial byte is
// written out padded with zero bits and the reservoir is emptied.
func (r *reservoir) flush(dst []byte, wptr *int, final bool) {
	for r.nbits >= 8 {
		dst[*wptr] = byte(r.bits)
		*wptr++
		r.bits >>= 8
		r.nbits -= 8
	}
	if final && r.nbits > 0 {
		dst[*wptr] = byte(r.bits)
		*wptr++
		r.bits = 0
		r.nbits = 0
	}
}
