// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpusstat computes summary statistics over a built workspace:
// per-column feature-frequency entropy and sentence-length distribution.
// It is a supplemented feature with no counterpart in the core index,
// compiler and VM.
package corpusstat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"modernc.org/mathutil"
	"modernc.org/sortutil"

	"github.com/kortschak/mgrep/internal/body"
	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/sentence"
)

// Column reports the feature-frequency distribution of one body column.
type Column struct {
	// Distinct is the number of distinct Feature IDs observed in the
	// column.
	Distinct int
	// Entropy is the Shannon entropy, in nats, of the column's Feature ID
	// frequency distribution (gonum.org/v1/gonum/stat.Entropy uses the
	// natural logarithm).
	Entropy float64
	// Top is the most frequent Feature ID in the column and its count.
	Top      uint32
	TopCount int
}

// Sentences reports the sentence-length distribution of a workspace.
type Sentences struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
	StdDev float64
}

// Report is the full corpus statistics summary for a workspace.
type Report struct {
	Rows      int
	Columns   [feature.Cols]Column
	Sentences Sentences
}

// Compute summarizes bt's columns and spans's sentence-length distribution.
func Compute(bt *body.Table, spans []sentence.Span) Report {
	var r Report
	r.Rows = bt.Len()
	for c := 0; c < feature.Cols; c++ {
		r.Columns[c] = columnStats(bt.Column(c))
	}
	r.Sentences = sentenceStats(spans)
	return r
}

// columnStats computes the frequency distribution of col, its entropy, and
// its most frequent entry.
func columnStats(col []uint32) Column {
	counts := make(map[uint32]int, len(col))
	for _, id := range col {
		counts[id]++
	}

	freqs := make([]float64, 0, len(counts))
	ids := make([]int, 0, len(counts))
	for id, n := range counts {
		ids = append(ids, int(id))
		freqs = append(freqs, float64(n))
	}
	sortutil.IntSlice(ids).Sort()

	var top uint32
	var topCount int
	for _, id := range ids {
		if n := counts[uint32(id)]; n > topCount {
			top, topCount = uint32(id), n
		}
	}

	return Column{
		Distinct: len(counts),
		Entropy:  stat.Entropy(normalize(freqs)),
		Top:      top,
		TopCount: topCount,
	}
}

// normalize rescales freqs in place to sum to 1, so stat.Entropy treats them
// as a probability distribution rather than raw counts.
func normalize(freqs []float64) []float64 {
	var total float64
	for _, f := range freqs {
		total += f
	}
	if total == 0 {
		return freqs
	}
	for i := range freqs {
		freqs[i] /= total
	}
	return freqs
}

// median returns the median of a sorted slice of sentence lengths.
func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// sentenceStats computes the length distribution of spans.
func sentenceStats(spans []sentence.Span) Sentences {
	if len(spans) == 0 {
		return Sentences{}
	}

	lens := make([]int, len(spans))
	lensF := make([]float64, len(spans))
	lo, hi := math.MaxInt32, 0
	for i, s := range spans {
		n := s.Len()
		lens[i] = n
		lensF[i] = float64(n)
		lo = mathutil.Min(lo, n)
		hi = mathutil.Max(hi, n)
	}
	sort.Ints(lens)

	mean, std := stat.MeanStdDev(lensF, nil)
	return Sentences{
		Count:  len(spans),
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		Median: median(lens),
		StdDev: std,
	}
}
