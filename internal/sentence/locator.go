// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sentence

import "github.com/biogo/store/interval"

// Locator answers row→sentence lookups against a sentence index in
// O(log n) using an interval tree, instead of a linear or binary search
// over the span slice.
type Locator struct {
	tree interval.IntTree
}

// span is the interval.IntInterface wrapper around one sentence Span.
type span struct {
	idx        uintptr
	begin, end int
}

func (s span) ID() uintptr { return s.idx }

func (s span) Range() interval.IntRange {
	return interval.IntRange{Start: s.begin, End: s.end}
}

// Overlap reports whether the half-open range [s.begin, s.end) overlaps b.
func (s span) Overlap(b interval.IntRange) bool {
	return s.begin < b.End && b.Start < s.end
}

// NewLocator builds a Locator over spans.
func NewLocator(spans []Span) (*Locator, error) {
	var tree interval.IntTree
	for i, s := range spans {
		iv := span{idx: uintptr(i), begin: int(s.Begin), end: int(s.End)}
		if err := tree.Insert(iv, true); err != nil {
			return nil, err
		}
	}
	tree.AdjustRanges()
	return &Locator{tree: tree}, nil
}

// Sentence returns the sentence index and Span containing row, and false
// if row falls outside every span (e.g. the trailing dropped sentence
// described in spec §4.1).
func (l *Locator) Sentence(row int) (index int, s Span, ok bool) {
	hits := l.tree.Get(span{begin: row, end: row + 1})
	if len(hits) == 0 {
		return 0, Span{}, false
	}
	h := hits[0].(span)
	return int(h.idx), Span{Begin: uint32(h.begin), End: uint32(h.end)}, true
}
