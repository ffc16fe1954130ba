// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kortschak/mgrep/internal/feature"
)

// ErrSyntax is the sentinel every *ParseError wraps; callers that only need
// to know "this was a parse error, not an I/O error" can test with
// errors.Is(err, query.ErrSyntax).
var ErrSyntax = errors.New("query: syntax error")

// ParseError reports a parse failure at a byte offset into the query
// string, naming the grammar production that was expected there (spec
// §4.2: "a positional message naming the expected production").
type ParseError struct {
	Pos      int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query: at byte %d: expected %s", e.Pos, e.Expected)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// Parser is a recursive-descent parser for the grammar in spec §4.2:
//
//	Query    := Union EOF
//	Union    := Seq ('|' Seq)*
//	Seq      := Star+ | ε
//	Star     := Factor '*'?
//	Factor   := Morpheme | '(' Union ')'
//	Morpheme := Feature ('-' Feature)*
//	Feature  := Integer | '/'
//	Integer  := [0-9]+
type Parser struct {
	lex *lexer
	tok token
}

// Parse parses query and returns its simplified AST, or a *ParseError.
func Parse(query string) (Node, error) {
	p := &Parser{lex: newLexer(query)}
	p.advance()
	n, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	return Simplify(n), nil
}

func (p *Parser) advance() {
	p.tok = p.lex.next()
}

func (p *Parser) errorf(expected string) error {
	return &ParseError{Pos: p.tok.pos, Expected: expected}
}

func (p *Parser) parseQuery() (Node, error) {
	n, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("union")
	}
	return n, nil
}

func (p *Parser) parseUnion() (Node, error) {
	left, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPipe {
		p.advance()
		right, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		left = &Union{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) startsFactor() bool {
	switch p.tok.kind {
	case tokInt, tokSlash, tokLParen:
		return true
	default:
		return false
	}
}

func (p *Parser) parseSeq() (Node, error) {
	var nodes []Node
	for p.startsFactor() {
		n, err := p.parseStar()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return Empty, nil
	}
	return &Concat{Nodes: nodes}, nil
}

func (p *Parser) parseStar() (Node, error) {
	f, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokStar {
		p.advance()
		return &Star{Child: f}, nil
	}
	return f, nil
}

func (p *Parser) parseFactor() (Node, error) {
	if p.tok.kind == tokLParen {
		p.advance()
		n, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("')'")
		}
		p.advance()
		return n, nil
	}
	return p.parseMorpheme()
}

func (p *Parser) parseMorpheme() (Node, error) {
	first, err := p.parseFeature()
	if err != nil {
		return nil, p.errorf("pattern")
	}
	feats := []*uint32{first}
	for p.tok.kind == tokDash {
		p.advance()
		f, err := p.parseFeature()
		if err != nil {
			return nil, p.errorf("pattern")
		}
		feats = append(feats, f)
	}
	if len(feats) > feature.Cols {
		return nil, &ParseError{Pos: p.tok.pos, Expected: "pattern (at most 10 columns)"}
	}
	return &Pattern{Feats: feats}, nil
}

// parseFeature returns a pointer to the parsed Feature ID, or nil for a
// wildcard ('/').
func (p *Parser) parseFeature() (*uint32, error) {
	switch p.tok.kind {
	case tokSlash:
		p.advance()
		return nil, nil
	case tokInt:
		v, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, p.errorf("feature")
	}
}

func (p *Parser) parseInteger() (uint32, error) {
	if p.tok.kind != tokInt {
		return 0, p.errorf("integer")
	}
	v, err := strconv.ParseUint(p.tok.lit, 10, 32)
	if err != nil {
		return 0, p.errorf("integer")
	}
	p.advance()
	return uint32(v), nil
}
