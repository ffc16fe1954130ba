// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile lowers a query AST (package query) into the flat
// bytecode program the matching VM (package vm) executes, per spec §4.3.
package compile

import (
	"fmt"

	"github.com/kortschak/mgrep/internal/query"
)

// Op is a bytecode opcode tag.
type Op int

const (
	// OpExpect requires the feature ID at Col to equal Feat.
	OpExpect Op = iota
	// OpNext advances the scan position by one row.
	OpNext
	// OpJump sets pc unconditionally to A.
	OpJump
	// OpSplit tries A first, then B, on backtrack.
	OpSplit
	// OpMatch reports a successful match.
	OpMatch
	// OpNoop does nothing but advance pc.
	OpNoop
)

// Inst is one bytecode instruction; only the fields relevant to Op are
// meaningful.
type Inst struct {
	Op   Op
	Col  int
	Feat uint32
	A, B int // Jump uses A; Split uses A and B.
}

func (i Inst) String() string {
	switch i.Op {
	case OpExpect:
		return fmt.Sprintf("Expect(%d, %d)", i.Col, i.Feat)
	case OpNext:
		return "Next"
	case OpJump:
		return fmt.Sprintf("Jump(%d)", i.A)
	case OpSplit:
		return fmt.Sprintf("Split(%d, %d)", i.A, i.B)
	case OpMatch:
		return "Match"
	case OpNoop:
		return "Noop"
	default:
		return "?"
	}
}

// Compile lowers node into a flat instruction vector terminated by
// OpMatch, following the recursive asm(node, pc) rules in spec §4.3
// exactly: Pattern emits Expect per concrete column then Next; Concat
// threads pc through its children in order; Union emits a Split over its
// two branches joined by a Jump; Star emits a Split that either enters the
// child or exits, followed by a Jump back to the Split.
//
// Compiling the same AST twice yields byte-identical output (spec §8,
// "Compiler determinism"), since asm is a pure function of (node, pc).
func Compile(node query.Node) []Inst {
	var prog []Inst
	asm(node, 0, &prog)
	prog = append(prog, Inst{Op: OpMatch})
	return prog
}

// asm appends node's instructions to *prog, starting at absolute offset
// pc (which is always len(*prog) on entry), and returns the offset
// immediately past the last instruction it appended.
func asm(node query.Node, pc int, prog *[]Inst) int {
	switch n := node.(type) {
	case *query.Pattern:
		for col, id := range n.Feats {
			if id == nil {
				continue
			}
			*prog = append(*prog, Inst{Op: OpExpect, Col: col, Feat: *id})
		}
		*prog = append(*prog, Inst{Op: OpNext})
		return len(*prog)

	case *query.Concat:
		for _, child := range n.Nodes {
			pc = asm(child, pc, prog)
		}
		return pc

	case *query.Union:
		splitIdx := len(*prog)
		*prog = append(*prog, Inst{})
		aPC := len(*prog)
		aEnd := asm(n.Left, aPC, prog)
		jumpIdx := len(*prog)
		*prog = append(*prog, Inst{})
		bPC := len(*prog)
		bEnd := asm(n.Right, bPC, prog)
		(*prog)[splitIdx] = Inst{Op: OpSplit, A: aPC, B: bPC}
		(*prog)[jumpIdx] = Inst{Op: OpJump, A: bEnd}
		return bEnd

	case *query.Star:
		splitIdx := len(*prog)
		*prog = append(*prog, Inst{})
		childPC := len(*prog)
		childEnd := asm(n.Child, childPC, prog)
		*prog = append(*prog, Inst{Op: OpJump, A: splitIdx})
		(*prog)[splitIdx] = Inst{Op: OpSplit, A: childPC, B: childEnd + 1}
		return childEnd + 1

	default:
		// query.Empty: emits nothing.
		return pc
	}
}
