// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "testing"

func TestNodePacking(t *testing.T) {
	vectors := []struct {
		symbol, parent, prefixLen uint32
	}{
		{0, 0, 0},
		{255, 0, 0},
		{65, 258, 1},
		{10, maxCode - 1, MaxCodeWidth * 2},
	}

	for i, v := range vectors {
		n := makeNode(v.symbol, v.parent, v.prefixLen)
		if got := n.symbol(); got != v.symbol {
			t.Errorf("test %d: symbol() = %d, want %d", i, got, v.symbol)
		}
		if got := n.parent(); got != v.parent {
			t.Errorf("test %d: parent() = %d, want %d", i, got, v.parent)
		}
		if got := n.prefixLen(); got != v.prefixLen {
			t.Errorf("test %d: prefixLen() = %d, want %d", i, got, v.prefixLen)
		}
	}
}
