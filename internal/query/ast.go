// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements the query grammar described in spec §4.2: a
// lexer and recursive-descent parser that turn a query string into an AST,
// plus the single shallow simplification pass the spec allows.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is an AST node: one of *Pattern, *Concat, *Union, *Star, or Empty.
type Node interface {
	node()
	String() string
}

// Pattern matches exactly one morpheme row. Feats[c] is the required
// Feature ID at column c, or nil if column c is a wildcard. len(Feats) may
// be less than feature.Cols; trailing columns are implicitly wildcarded.
type Pattern struct {
	Feats []*uint32
}

func (*Pattern) node() {}

func (p *Pattern) String() string {
	parts := make([]string, len(p.Feats))
	for i, f := range p.Feats {
		if f == nil {
			parts[i] = "/"
		} else {
			parts[i] = strconv.FormatUint(uint64(*f), 10)
		}
	}
	return strings.Join(parts, "-")
}

// Concat matches its children in sequence.
type Concat struct {
	Nodes []Node
}

func (*Concat) node() {}

func (c *Concat) String() string {
	parts := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}

// Union matches Left, or Right if Left fails. Left is always preferred
// (spec §8, "Union preference").
type Union struct {
	Left, Right Node
}

func (*Union) node() {}

func (u *Union) String() string {
	return fmt.Sprintf("%s|%s", u.Left, u.Right)
}

// Star matches Child zero or more times, greedily (spec §8, "Star
// preference": the maximal repetition count is reported).
type Star struct {
	Child Node
}

func (*Star) node() {}

func (s *Star) String() string {
	return fmt.Sprintf("(%s)*", s.Child)
}

// empty matches the empty sequence.
type empty struct{}

func (empty) node() {}

func (empty) String() string { return "" }

// Empty is the unique Empty node.
var Empty Node = empty{}

// Simplify applies the spec's one simplification rule: a Concat with
// exactly one child collapses to that child. It recurses into every node's
// children; no other rewrite is performed (spec §4.2: "No other rewrites").
func Simplify(n Node) Node {
	switch v := n.(type) {
	case *Pattern, empty:
		return n
	case *Concat:
		nodes := make([]Node, len(v.Nodes))
		for i, c := range v.Nodes {
			nodes[i] = Simplify(c)
		}
		if len(nodes) == 1 {
			return nodes[0]
		}
		return &Concat{Nodes: nodes}
	case *Union:
		return &Union{Left: Simplify(v.Left), Right: Simplify(v.Right)}
	case *Star:
		return &Star{Child: Simplify(v.Child)}
	default:
		panic(fmt.Sprintf("query: unknown node type %T", n))
	}
}
