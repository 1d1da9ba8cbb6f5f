// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/dsnet/golib/errs"

// Encoder holds the state of one in-progress compression: the string
// table, the bit reservoir, and the lazily-emitted stream framing. The
// zero value is ready to use; the first call to Compress seeds the
// literal roots.
type Encoder struct {
	tbl         table
	res         reservoir
	initialized bool

	// streamStarted is true once the leading CLEAR code has been
	// queued. It stays false for wholly-empty input, so that
	// compressing zero bytes with final set produces zero bytes of
	// output rather than a lone CLEAR+EOF pair.
	streamStarted bool

	// eofDone guards against emitting the terminal EOF code twice. It
	// is a dedicated field rather than a reuse of tbl.prevCode: the
	// C reference conflates the two, and a CLEAR-triggered table reset
	// immediately before true end-of-input leaves prevCode equal to
	// codeEOF by coincidence, silently swallowing the real EOF code.
	eofDone bool

	// LongestPrefix is the longest prefix the Encoder has emitted as a
	// single code since it was created.
	LongestPrefix int

	// LongestPrefixAllowed, if nonzero, bounds how long a match the
	// encoder will extend before forcing a new code, trading
	// compression ratio for a caller-chosen ceiling on decoder-side
	// dst sizing. Zero means unbounded (up to MaxCodeWidth governs the
	// table anyway).
	LongestPrefixAllowed int
}

// NewEncoder returns a ready-to-use Encoder. It is equivalent to
// new(Encoder); it exists for symmetry with NewDecoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) init() {
	e.tbl.seedRoots()
	e.tbl.reset()
	e.res = reservoir{}
	e.initialized = true
}

func (e *Encoder) ensureStarted() {
	if !e.streamStarted {
		e.res.enqueue(codeClear, e.tbl.codeWidth)
		e.streamStarted = true
	}
}

// Compress extends the longest matching dictionary prefix it can find
// for src, emitting one code per extension, for as long as src and the
// headroom in dst both hold out. It returns the number of bytes
// written to dst (nDst) and the number of bytes of src consumed
// (nSrc).
//
// A prefix under construction that hasn't yet produced a code is never
// counted as consumed; on a retry the caller only needs to supply
// src[nSrc:]. final tells Compress that no more source bytes will ever
// follow, so the trailing in-progress code (if any) and the terminal
// EOF code should be flushed now; passing final on an empty tail is
// the correct way to close a stream that was built up over several
// calls.
func (e *Encoder) Compress(dst, src []byte, final bool) (nDst, nSrc int, err error) {
	defer errs.Recover(&err)

	if !e.initialized {
		e.init()
	}

	wptr := 0
	rptr := 0
	prefixEnd := 0
	var code uint32

	for rptr+prefixEnd < len(src) {
		if wptr+reserveBytes(e.tbl.codeWidth) > len(dst) {
			return wptr, rptr, nil
		}

		prefixEnd++
		c, found := e.tbl.lookup(src[rptr : rptr+prefixEnd])
		overlong := e.LongestPrefixAllowed > 0 && prefixEnd >= e.LongestPrefixAllowed
		if found {
			code = c
		}

		// An overlong cutoff needs to peek one byte past the match it
		// just accepted, to give the new dictionary entry the same
		// symbol the decoder will independently derive (the first
		// byte of whatever comes next). If that byte isn't in src yet,
		// defer: fall through as if this iteration hadn't found
		// anything overlong, the outer loop condition then ends the
		// extension naturally, and the tail below (or a future call
		// with more src) picks it up.
		if overlong && rptr+prefixEnd >= len(src) {
			overlong = false
		}

		if !found || overlong {
			e.ensureStarted()

			// parent is the code for the longest prefix that was
			// actually found: on a failed lookup that's still the
			// match from the previous iteration (one byte shorter);
			// on an overlong cutoff it's the match just resolved this
			// iteration, for the full extended prefix.
			parent := code
			parentLen := 1 + int(e.tbl.nodes[parent].prefixLen())
			// The new entry extends parent with the first byte of the
			// next match attempt: rptr+parentLen is that attempt's
			// start both when parent is one byte short of this
			// iteration's prefix (normal mismatch, parentLen ==
			// prefixEnd-1) and when parent IS this iteration's full
			// prefix (overlong cutoff, parentLen == prefixEnd).
			symbol := src[rptr+parentLen]

			if parentLen > e.LongestPrefix {
				e.LongestPrefix = parentLen
			}
			e.res.enqueue(parent, e.tbl.codeWidth)

			e.tbl.nodes[e.tbl.nextCode] = makeNode(uint32(symbol), parent, uint32(parentLen))

			if e.tbl.nextCode > maskFromWidth(e.tbl.codeWidth) {
				if e.tbl.codeWidth >= MaxCodeWidth {
					e.res.enqueue(codeClear, e.tbl.codeWidth)
					e.res.flush(dst, &wptr, false)
					e.tbl.reset()
				} else {
					e.tbl.codeWidth++
					e.tbl.prevCode = e.tbl.nextCode
					e.tbl.nextCode++
				}
			} else {
				e.tbl.prevCode = e.tbl.nextCode
				e.tbl.nextCode++
			}

			rptr += parentLen
			prefixEnd = 0
			e.res.flush(dst, &wptr, false)
		}
	}

	if final && prefixEnd != 0 {
		if wptr+reserveBytes(e.tbl.codeWidth) > len(dst) {
			return wptr, rptr, nil
		}
		e.ensureStarted()
		if prefixEnd > e.LongestPrefix {
			e.LongestPrefix = prefixEnd
		}
		e.res.enqueue(code, e.tbl.codeWidth)
		e.res.flush(dst, &wptr, false)
		e.tbl.prevCode = code
		rptr += prefixEnd
		prefixEnd = 0
	}

	if final && rptr == len(src) && e.streamStarted && !e.eofDone {
		if wptr+reserveBytes(e.tbl.codeWidth) > len(dst) {
			return wptr, rptr, nil
		}
		e.res.enqueue(codeEOF, e.tbl.codeWidth)
		e.res.flush(dst, &wptr, true)
		e.eofDone = true
	}

	return wptr, rptr, nil
}
