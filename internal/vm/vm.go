// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm implements the Thompson-style backtracking interpreter that
// evaluates a compiled query (package compile) against the columnar body
// table, sentence by sentence, per spec §4.4.
package vm

import (
	"bufio"
	"io"

	"github.com/kortschak/mgrep/internal/body"
	"github.com/kortschak/mgrep/internal/compile"
	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/sentence"
)

// NoLimit indicates an unbounded scan: every sentence is visited.
const NoLimit = -1

// Program pairs a compiled bytecode program with the data it is run
// against: the memory-mapped body table, the sentence index, and column
// 0's dictionary (used to decode matched surface forms for output).
type Program struct {
	inst  []compile.Inst
	body  *body.Table
	spans []sentence.Span
	dict0 *feature.Dictionary
}

// New returns a Program ready to Run inst against body, scanning the
// sentences described by spans and decoding column 0 through dict0.
func New(inst []compile.Inst, body *body.Table, spans []sentence.Span, dict0 *feature.Dictionary) *Program {
	return &Program{inst: inst, body: body, spans: spans, dict0: dict0}
}

// Run scans every sentence in order, trying every start position within
// each, and writes one output line per match to w. Matches are emitted in
// strictly increasing (sentence, start) order (spec §5, "Ordering"). If
// limit is not NoLimit, Run stops as soon as limit matches have been
// emitted, without scanning further sentences. It returns the number of
// matches emitted.
func (p *Program) Run(w io.Writer, limit int) (int, error) {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriterSize(w, 1<<20)
		defer bw.Flush()
	}

	emitted := 0
	for _, sp := range p.spans {
		if limit != NoLimit && emitted >= limit {
			break
		}
		n := sp.Len()
		if n == 0 {
			continue
		}
		cols := p.body.Slice(int(sp.Begin), int(sp.End))

		var surfaces [][]byte // built lazily, cached across starts in this sentence
		for start := 0; start < n; start++ {
			if limit != NoLimit && emitted >= limit {
				break
			}
			end, matched := exec(p.inst, &cols, n, 0, start)
			if !matched {
				continue
			}
			if surfaces == nil {
				surfaces = decodeSurfaces(cols[0], p.dict0)
			}
			if err := writeMatch(bw, surfaces, start, end); err != nil {
				return emitted, err
			}
			emitted++
		}
	}
	if err := bw.Flush(); err != nil {
		return emitted, err
	}
	return emitted, nil
}

// exec is the interpreter kernel described in spec §4.4: it runs the
// program starting at instruction pc and scan position sp within a
// sentence of n rows, and returns the end position of a successful match.
//
// Split tries its first target before its second (leftmost-first
// preference, spec §4.4/§8); there is no memoization, so pathological
// patterns can be exponential, which spec §4.4 accepts as a known
// trade-off for the intended small query patterns.
func exec(prog []compile.Inst, cols *[feature.Cols][]uint32, n, pc, sp int) (int, bool) {
	for pc < len(prog) {
		inst := prog[pc]
		switch inst.Op {
		case compile.OpExpect:
			if sp >= n || cols[inst.Col][sp] != inst.Feat {
				return 0, false
			}
			pc++
		case compile.OpNext:
			if sp >= n {
				return 0, false
			}
			sp++
			pc++
		case compile.OpJump:
			pc = inst.A
		case compile.OpSplit:
			if end, ok := exec(prog, cols, n, inst.A, sp); ok {
				return end, true
			}
			return exec(prog, cols, n, inst.B, sp)
		case compile.OpMatch:
			return sp, true
		case compile.OpNoop:
			pc++
		default:
			return 0, false
		}
	}
	return 0, false
}

// decodeSurfaces decodes every column-0 Feature ID in a sentence to its
// surface-form bytes.
func decodeSurfaces(col0 []uint32, dict0 *feature.Dictionary) [][]byte {
	out := make([][]byte, len(col0))
	for i, id := range col0 {
		out[i] = dict0.Decode(id)
	}
	return out
}

// writeMatch writes "<prefix>\t<match>\t<suffix>\n" where each part is the
// concatenation of the surface forms in its row range (spec §4.4).
func writeMatch(w *bufio.Writer, surfaces [][]byte, start, end int) error {
	for _, s := range surfaces[:start] {
		if _, err := w.Write(s); err != nil {
			return err
		}
	}
	if err := w.WriteByte('\t'); err != nil {
		return err
	}
	for _, s := range surfaces[start:end] {
		if _, err := w.Write(s); err != nil {
			return err
		}
	}
	if err := w.WriteByte('\t'); err != nil {
		return err
	}
	for _, s := range surfaces[end:] {
		if _, err := w.Write(s); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
