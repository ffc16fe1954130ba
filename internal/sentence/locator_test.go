// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sentence

import "testing"

func TestLocatorSentence(t *testing.T) {
	spans := []Span{
		{Begin: 0, End: 3},
		{Begin: 3, End: 3},
		{Begin: 3, End: 10},
	}
	loc, err := NewLocator(spans)
	if err != nil {
		t.Fatalf("NewLocator: %v", err)
	}

	cases := []struct {
		row       int
		wantIdx   int
		wantSpan  Span
		wantFound bool
	}{
		{row: 0, wantIdx: 0, wantSpan: spans[0], wantFound: true},
		{row: 2, wantIdx: 0, wantSpan: spans[0], wantFound: true},
		{row: 3, wantIdx: 2, wantSpan: spans[2], wantFound: true},
		{row: 9, wantIdx: 2, wantSpan: spans[2], wantFound: true},
		{row: 10, wantFound: false},
		{row: -1, wantFound: false},
	}
	for _, c := range cases {
		idx, s, ok := loc.Sentence(c.row)
		if ok != c.wantFound {
			t.Errorf("Sentence(%d) found = %v, want %v", c.row, ok, c.wantFound)
			continue
		}
		if !ok {
			continue
		}
		if idx != c.wantIdx || s != c.wantSpan {
			t.Errorf("Sentence(%d) = (%d, %v), want (%d, %v)", c.row, idx, s, c.wantIdx, c.wantSpan)
		}
	}
}
