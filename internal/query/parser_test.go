// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"errors"
	"testing"
)

func TestParseSimplePattern(t *testing.T) {
	n, err := Parse("5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := n.(*Pattern)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *Pattern", "5", n)
	}
	if len(p.Feats) != 1 || *p.Feats[0] != 5 {
		t.Errorf("Feats = %v, want [5]", p.Feats)
	}
}

func TestParseWildcard(t *testing.T) {
	n, err := Parse("/")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := n.(*Pattern)
	if !ok || len(p.Feats) != 1 || p.Feats[0] != nil {
		t.Fatalf("Parse(%q) = %#v, want wildcard Pattern", "/", n)
	}
}

func TestParseMorphemeMultiColumn(t *testing.T) {
	n, err := Parse("1-/-3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := n.(*Pattern)
	if !ok || len(p.Feats) != 3 {
		t.Fatalf("Parse(%q) = %#v, want 3-column Pattern", "1-/-3", n)
	}
	if *p.Feats[0] != 1 || p.Feats[1] != nil || *p.Feats[2] != 3 {
		t.Errorf("Feats = %v", p.Feats)
	}
}

func TestParseConcatSimplifiesSingleton(t *testing.T) {
	n, err := Parse("5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := n.(*Concat); ok {
		t.Errorf("Parse(%q) left a singleton Concat, want Simplify to collapse it", "5")
	}
}

func TestParseConcatSequence(t *testing.T) {
	n, err := Parse("1 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, ok := n.(*Concat)
	if !ok || len(c.Nodes) != 2 {
		t.Fatalf("Parse(%q) = %#v, want 2-element Concat", "1 2", n)
	}
}

func TestParseUnion(t *testing.T) {
	n, err := Parse("1|2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := n.(*Union); !ok {
		t.Fatalf("Parse(%q) = %#v, want *Union", "1|2", n)
	}
}

func TestParseStar(t *testing.T) {
	n, err := Parse("1*")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := n.(*Star); !ok {
		t.Fatalf("Parse(%q) = %#v, want *Star", "1*", n)
	}
}

func TestParseEmptySeq(t *testing.T) {
	n, err := Parse("()")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != Empty {
		t.Errorf("Parse(%q) = %#v, want Empty", "()", n)
	}
}

func TestParseGroupingPrecedence(t *testing.T) {
	n, err := Parse("(1|2) 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, ok := n.(*Concat)
	if !ok || len(c.Nodes) != 2 {
		t.Fatalf("Parse(%q) = %#v, want 2-element Concat", "(1|2) 3", n)
	}
	if _, ok := c.Nodes[0].(*Union); !ok {
		t.Errorf("Parse(%q) first node = %#v, want *Union", "(1|2) 3", c.Nodes[0])
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []string{
		"1-",
		"(1",
		"x",
		"1-2-3-4-5-6-7-8-9-10-11",
	}
	for _, q := range cases {
		_, err := Parse(q)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", q)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) err = %v, want wrapping ErrSyntax", q, err)
		}
	}
}

func TestParseEmptyQuerySucceeds(t *testing.T) {
	n, err := Parse("   ")
	if err != nil {
		t.Fatalf("Parse on blank query: %v", err)
	}
	if n != Empty {
		t.Errorf("Parse(blank) = %#v, want Empty", n)
	}
}
