// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

/*
lzw compresses or decompresses a single file using the variable-width LZW
codec implemented by github.com/varwidth/lzw/lzw.

Usage:

	lzw -c [-m size] [-o output] [input]
	lzw -d [-o output] [input]

If no input is given, stdin is used. If no -o is given, output is written to
stdout.

Flags:

-c
	compress the input
-d, -x
	decompress the input
-o string
	output file, or - for stdout (default: stdout)
-m string
	maximum prefix length the encoder may extend a match to, accepting a
	size suffix like "4K" (default: unbounded)
-Z int
	0 or 1: wrap the stream in a 3-byte compress(1)-compatible header
	(0x1F 0x9D, followed by 0x80 | max code width) on compress, and
	expect and strip the same header on decompress
-v
	print version information and exit
-p
	print the longest prefix seen to stderr when done

Exit status is 0 on success, 1 on an I/O error, and 2 on a malformed or
truncated code stream.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/golib/strconv"

	"github.com/varwidth/lzw/lzw"
)

const (
	zMagic0    = 0x1F
	zMagic1    = 0x9D
	zBlockMode = 0x80
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var (
	fCompress    = flag.Bool("c", false, "compress the input")
	fDecompress  = flag.Bool("d", false, "decompress the input")
	fDecompress2 = flag.Bool("x", false, "alias for -d")
	fOutput      = flag.String("o", "", "output file (default: stdout, or - for stdout explicitly)")
	fMaxPrefix   = flag.String("m", "", "maximum prefix length, e.g. \"4K\" (default: unbounded)")
	fZHeader     = flag.Int("Z", 0, "0 or 1: wrap/expect a compress(1)-compatible header")
	fVersion     = flag.Bool("v", false, "print version information and exit")
	fPrefixInfo  = flag.Bool("p", false, "print the longest prefix seen to stderr")
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	flag.Parse()

	if *fVersion {
		fmt.Printf("lzw version %s (commit %s)\n", version, commit)
		return 0
	}

	decompress := *fDecompress || *fDecompress2

	if *fCompress == decompress {
		fmt.Fprintln(os.Stderr, "lzw: exactly one of -c or -d/-x must be given")
		return 2
	}
	if *fZHeader != 0 && *fZHeader != 1 {
		fmt.Fprintln(os.Stderr, "lzw: -Z must be 0 or 1")
		return 2
	}
	zHeader := *fZHeader == 1

	input := os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "lzw:", err)
			return 1
		}
		defer f.Close()
		input = f
	}

	output := os.Stdout
	if *fOutput != "" && *fOutput != "-" {
		f, err := os.Create(*fOutput)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lzw:", err)
			return 1
		}
		defer f.Close()
		output = f
	}

	src, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lzw:", err)
		return 1
	}

	var longest int
	var dst []byte
	if *fCompress {
		dst, longest, err = runCompress(src, *fMaxPrefix, zHeader)
	} else {
		dst, longest, err = runDecompress(src, zHeader)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lzw:", lzw.Strerror(err))
		if isCodecError(err) {
			return 2
		}
		return 1
	}

	if _, err := output.Write(dst); err != nil {
		fmt.Fprintln(os.Stderr, "lzw:", err)
		return 1
	}
	if *fPrefixInfo {
		fmt.Fprintf(os.Stderr, "lzw: longest prefix %d\n", longest)
	}
	return 0
}

func isCodecError(err error) bool {
	switch err {
	case lzw.ErrInvalidCodeStream, lzw.ErrStringTableFull, lzw.ErrDestinationTooSmall:
		return true
	}
	return false
}

func runCompress(src []byte, maxPrefixFlag string, zHeader bool) (dst []byte, longest int, err error) {
	e := lzw.NewEncoder()
	if maxPrefixFlag != "" {
		n, perr := strconv.ParsePrefix(maxPrefixFlag, strconv.AutoParse)
		if perr != nil {
			return nil, 0, fmt.Errorf("invalid -m value %q: %v", maxPrefixFlag, perr)
		}
		e.LongestPrefixAllowed = int(n)
	}

	if zHeader {
		dst = append(dst, zMagic0, zMagic1, zBlockMode|lzw.MaxCodeWidth)
	}

	buf := make([]byte, 1<<16)
	rptr := 0
	for {
		n, m, cerr := e.Compress(buf, src[rptr:], true)
		dst = append(dst, buf[:n]...)
		rptr += m
		if cerr != nil {
			return nil, 0, cerr
		}
		if n == 0 && m == 0 {
			break
		}
	}
	return dst, e.LongestPrefix, nil
}

func runDecompress(src []byte, zHeader bool) (dst []byte, longest int, err error) {
	if zHeader {
		if len(src) < 3 || src[0] != zMagic0 || src[1] != zMagic1 {
			return nil, 0, fmt.Errorf("missing or invalid compress(1)-style header")
		}
		src = src[3:]
	}

	d := lzw.NewDecoder()
	buf := make([]byte, 1<<16)
	rptr := 0
	for {
		n, m, derr := d.Decompress(buf, src[rptr:], true)
		dst = append(dst, buf[:n]...)
		rptr += m
		if derr != nil {
			return nil, 0, derr
		}
		if n == 0 && m == 0 {
			break
		}
	}
	return dst, d.LongestPrefix, nil
}
