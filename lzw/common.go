// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements a variable-width LZW compressor and decompressor
// that operates entirely out of caller-supplied source and destination
// byte slices, with no dynamic allocation on the hot path.
//
// A Decoder or Encoder is usable at its zero value. Each call to
// Decompress or Compress consumes as much of src as it can, writes as
// much of dst as fits, and returns; no bits in flight are lost between
// calls, so work can be resumed by calling again once more buffer space
// or input is available.
//
// This codec is LSB-first, like the traditional compress(1) utility,
// and is not compatible with GIF's MSB-first bit order.
package lzw

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	// ErrDestinationTooSmall indicates dst cannot hold even a single
	// emitted prefix. The caller must restart decoding from the
	// beginning with a larger buffer; the nDst bytes the failing call
	// wrote before that prefix are still valid output.
	ErrDestinationTooSmall error = Error("destination buffer too small")

	// ErrInvalidCodeStream indicates a decoded code was out of range,
	// or the stream ended mid-code with no more input promised, or the
	// first post-reset code required a prevCode that doesn't exist.
	ErrInvalidCodeStream error = Error("invalid code stream")

	// ErrStringTableFull indicates a code arrived after the table
	// signaled it must see a CLEAR next; the producer violated the
	// protocol.
	ErrStringTableFull error = Error("string table full")
)

// Strerror returns the textual message for err, or "no error" if err is
// nil. It exists as a compatibility shim for callers porting code from
// the C original's lzw_strerror; in idiomatic Go, err.Error() already
// provides this.
func Strerror(err error) string {
	if err == nil {
		return "no error"
	}
	return err.Error()
}

// Code width configuration. Going outside of 9..12-bit codes is
// untested upstream; beyond 12-bit codes the uint32 node word, and
// beyond 16-bit codes the uint32 reservoir word, would need to grow
// (both are checked at compile time below).
const (
	SymbolBits   = 8
	MinCodeWidth = 9
	MaxCodeWidth = 12
)

const (
	codeClear = uint32(1) << SymbolBits // 256: dictionary reset
	codeEOF   = codeClear + 1           // 257: end of stream
	codeFirst = codeClear + 2           // 258: first assignable code

	maxCode = uint32(1) << MaxCodeWidth
)

// Compile-time width checks, mirroring the original's static_asserts.
const (
	_ uint = 32 - (SymbolBits + MaxCodeWidth + MaxCodeWidth) // node word must fit in uint32
	_ uint = 32 - 2*MaxCodeWidth                              // reservoir word must fit in uint32
)

func maskFromWidth(w uint32) uint32 {
	return uint32(1)<<w - 1
}

// reserveBytes is the worst-case number of destination bytes a single
// encoder iteration might flush: the current code, a possible CLEAR,
// and a possible EOF, each up to 2 bytes at 16-bit codes.
func reserveBytes(codeWidth uint32) int {
	return int(codeWidth>>3) + 1 + 2 + 2
}
