// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/varwidth/lzw/internal/testutil"
)

// compressAll drives e to completion against input, growing dst as needed,
// and is the single-shot helper most round-trip tests build on.
func compressAll(e *Encoder, input []byte) []byte {
	var out []byte
	src := input
	buf := make([]byte, 256)
	for {
		n, m, err := e.Compress(buf, src, true)
		if err != nil {
			panic(err)
		}
		out = append(out, buf[:n]...)
		src = src[m:]
		if n == 0 && m == 0 {
			break
		}
	}
	return out
}

func decompressAll(d *Decoder, input []byte) []byte {
	var out []byte
	src := input
	buf := make([]byte, 256)
	for {
		n, m, err := d.Decompress(buf, src, true)
		if err != nil {
			panic(err)
		}
		out = append(out, buf[:n]...)
		src = src[m:]
		if n == 0 && m == 0 {
			break
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	var vectors = []struct {
		label string
		input []byte
	}{
		{"empty", nil},
		{"single-byte", []byte("A")},
		{"kwkwk", []byte("ababababababab")},
		{"repeats", bytes.Repeat([]byte("the quick brown fox "), 200)},
		{"random-small", testutil.NewRand(1).Bytes(37)},
		{"random-large", testutil.NewRand(2).Bytes(5000)},
		{"all-bytes", func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return bytes.Repeat(b, 8)
		}()},
	}

	for i, v := range vectors {
		e := NewEncoder()
		compressed := compressAll(e, v.input)

		d := NewDecoder()
		decompressed := decompressAll(d, compressed)

		if !bytes.Equal(decompressed, v.input) {
			t.Errorf("test %d (%s): round-trip mismatch:\ngot:  %x\nwant: %x", i, v.label, decompressed, v.input)
		}
	}
}

func TestEmptyInputProducesEmptyOutput(t *testing.T) {
	e := NewEncoder()
	buf := make([]byte, 64)
	n, m, err := e.Compress(buf, nil, true)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	if n != 0 || m != 0 {
		t.Errorf("Compress(nil, final) = (%d, %d), want (0, 0)", n, m)
	}
}

func TestChunkingInvariance(t *testing.T) {
	input := bytes.Repeat([]byte("mississippi river "), 50)

	e := NewEncoder()
	whole := compressAll(e, input)

	// Compress the same input fed one byte at a time. Compress never
	// counts a not-yet-resolved match as consumed (see its doc
	// comment), so a byte-at-a-time producer must keep resupplying
	// whatever Compress left unconsumed alongside each new byte,
	// exactly like growing a bufio-style input window.
	e2 := NewEncoder()
	var chunked []byte
	var pending []byte
	buf := make([]byte, 64)
	for i := 0; i < len(input); i++ {
		pending = append(pending, input[i])
		n, m, err := e2.Compress(buf, pending, false)
		if err != nil {
			t.Fatalf("Compress error at byte %d: %v", i, err)
		}
		chunked = append(chunked, buf[:n]...)
		pending = pending[m:]
	}
	for {
		n, m, err := e2.Compress(buf, pending, true)
		if err != nil {
			t.Fatalf("final Compress error: %v", err)
		}
		chunked = append(chunked, buf[:n]...)
		pending = pending[m:]
		if n == 0 && m == 0 {
			break
		}
	}

	if diff := cmp.Diff(whole, chunked); diff != "" {
		t.Errorf("chunked compression diverged from whole-input compression (-whole +chunked):\n%s", diff)
	}

	// And the decoder must accept the stream fed back one byte at a time.
	d := NewDecoder()
	var out []byte
	dbuf := make([]byte, 64)
	for i := 0; i < len(whole); i++ {
		n, _, err := d.Decompress(dbuf, whole[i:i+1], false)
		if err != nil {
			t.Fatalf("Decompress error at byte %d: %v", i, err)
		}
		out = append(out, dbuf[:n]...)
	}
	for {
		n, _, err := d.Decompress(dbuf, nil, true)
		if err != nil {
			t.Fatalf("final Decompress error: %v", err)
		}
		out = append(out, dbuf[:n]...)
		if n == 0 {
			break
		}
	}

	if !bytes.Equal(out, input) {
		t.Errorf("byte-at-a-time decode mismatch:\ngot:  %x\nwant: %x", out, input)
	}
}

func TestTruncatedStream(t *testing.T) {
	e := NewEncoder()
	compressed := compressAll(e, bytes.Repeat([]byte("truncate me please"), 20))
	if len(compressed) < 2 {
		t.Fatalf("compressed stream unexpectedly short")
	}

	d := NewDecoder()
	// Large enough for all 360 decoded bytes, so the call runs into the
	// truncation instead of stopping early on a full dst.
	buf := make([]byte, 1024)
	_, _, err := d.Decompress(buf, compressed[:len(compressed)-1], true)
	if err != ErrInvalidCodeStream {
		t.Errorf("Decompress on truncated final input = %v, want %v", err, ErrInvalidCodeStream)
	}
}

func TestLongestPrefixAllowed(t *testing.T) {
	e := NewEncoder()
	e.LongestPrefixAllowed = 4
	input := bytes.Repeat([]byte("abcdefgh"), 500)
	compressed := compressAll(e, input)

	if e.LongestPrefix > 4 {
		t.Errorf("LongestPrefix = %d, want <= 4", e.LongestPrefix)
	}

	d := NewDecoder()
	decompressed := decompressAll(d, compressed)
	if !bytes.Equal(decompressed, input) {
		t.Errorf("round-trip under LongestPrefixAllowed mismatch")
	}
	if d.LongestPrefix > 4 {
		t.Errorf("decoder LongestPrefix = %d, want <= 4", d.LongestPrefix)
	}
}

func TestDestinationTooSmall(t *testing.T) {
	e := NewEncoder()
	compressed := compressAll(e, []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))

	d := NewDecoder()
	tiny := make([]byte, 0)
	_, _, err := d.Decompress(tiny, compressed, true)
	if err != ErrDestinationTooSmall {
		t.Errorf("Decompress into zero-length dst = %v, want %v", err, ErrDestinationTooSmall)
	}
}

func TestStrerror(t *testing.T) {
	if got := Strerror(nil); got != "no error" {
		t.Errorf("Strerror(nil) = %q, want %q", got, "no error")
	}
	if got := Strerror(ErrInvalidCodeStream); got != ErrInvalidCodeStream.Error() {
		t.Errorf("Strerror(ErrInvalidCodeStream) = %q, want %q", got, ErrInvalidCodeStream.Error())
	}
}
