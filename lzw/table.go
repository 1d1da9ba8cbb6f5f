// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// table is the string table: a fixed array of packed nodes plus the
// scalar cursors that track where the next code will be assigned and
// how wide codes currently are. Entries [0, 256) are the immutable
// literal roots; entries [codeFirst, nextCode) are live assignments;
// the rest is uninitialized.
type table struct {
	nodes     [maxCode + 1]node
	nextCode  uint32
	prevCode  uint32
	codeWidth uint32
}

// seedRoots writes the 256 literal-byte roots. Called once per codec
// lifetime; reset never touches these.
func (t *table) seedRoots() {
	for i := uint32(0); i < 256; i++ {
		t.nodes[i] = makeNode(i, 0, 0)
	}
}

// reset returns the table to a fresh epoch: width back to the minimum,
// next_code rebased to the first assignable code, and no prevCode to
// resolve a KwKwK code against.
func (t *table) reset() {
	t.nextCode = codeFirst
	t.prevCode = codeEOF
	t.codeWidth = MinCodeWidth
}

// lookup performs the encoder's reverse-suffix search: scanning from
// the newest assigned code down to codeFirst, it looks for a node
// whose prefix (read by walking parent links) matches prefix exactly.
// Single-byte prefixes always resolve directly to their literal root.
//
// Scanning newest-to-oldest is mandatory: when a caller bounds prefix
// length via Encoder.LongestPrefixAllowed, duplicate prefixes of the
// same bytes can coexist in the table, and only the newest one is
// valid for the decoder to stay in sync.
func (t *table) lookup(prefix []byte) (code uint32, found bool) {
	if len(prefix) == 1 {
		return uint32(prefix[0]), true
	}

	want := uint32(len(prefix) - 1)
	for i := t.nextCode - 1; i >= codeFirst; i-- {
		n := t.nodes[i]
		if n.prefixLen() != want {
			continue
		}

		cur := n
		j := 0
		for {
			if prefix[len(prefix)-1-j] != byte(cur.symbol()) {
				break
			}
			if cur.prefixLen() == 0 {
				return i, true
			}
			cur = t.nodes[cur.parent()]
			j++
		}
	}
	return 0, false
}
