// Package parser registers the concrete grammar productions (types,
// statements, expressions) against the combinator core in lang/grammar,
// and exposes entry points that turn source text into a lang/ast tree.
package parser

import (
	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/scanner"
	"github.com/electroly/quill/lang/token"
)

// Parser turns source text into a lang/ast tree. It owns one Registry,
// built once and reused across every call: constructing and freezing the
// grammar is the one part of this package not meant to happen per-parse.
type Parser struct {
	reg *grammar.Registry
}

// New builds a Parser with a freshly constructed and frozen grammar.
func New() (*Parser, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return &Parser{reg: reg}, nil
}

// scanAll tokenizes src and drops EOL tokens: statement boundaries in this
// grammar are disambiguated by each statement's leading keyword rather
// than by an explicit line terminator (grammar.ebnf has no EOL production),
// so newlines are insignificant once scanned, the same way comments are.
func scanAll(src []byte) ([]token.Token, []scanner.Value, error) {
	var s scanner.Scanner
	var firstErr error
	s.Init(src, func(pos token.Pos, msg string) {
		if firstErr == nil {
			firstErr = &grammar.Error{Pos: pos, Msg: msg}
		}
	})
	var toks []token.Token
	var vals []scanner.Value
	var v scanner.Value
	for {
		tok := s.Scan(&v)
		if tok == token.EOL {
			continue
		}
		toks = append(toks, tok)
		vals = append(vals, v)
		if tok == token.EOF {
			break
		}
	}
	return toks, vals, firstErr
}

// ParseProgram scans and parses an entire compilation unit: zero or more
// interleaved procedure declarations and top-level Dim/Const statements.
func (p *Parser) ParseProgram(src []byte) (*ast.Program, error) {
	toks, vals, err := scanAll(src)
	if err != nil {
		return nil, err
	}
	node, err := grammar.NewDriver(p.reg, toks, vals).Parse("Program")
	if err != nil {
		return nil, err
	}
	return node.(*ast.Program), nil
}

// ParseMember scans and parses a single top-level member: one Procedure or
// one Dim/Const declaration. Useful for tooling that edits or re-parses
// one declaration at a time rather than a whole file.
func (p *Parser) ParseMember(src []byte) (ast.Node, error) {
	toks, vals, err := scanAll(src)
	if err != nil {
		return nil, err
	}
	node, err := grammar.NewDriver(p.reg, toks, vals).Parse("ProgramMember")
	if err != nil {
		return nil, err
	}
	return node.(ast.Node), nil
}

// ParseExpr scans and parses a single standalone expression, useful for
// tooling such as a REPL or a watch-expression evaluator.
func (p *Parser) ParseExpr(src []byte) (ast.Expr, error) {
	toks, vals, err := scanAll(src)
	if err != nil {
		return nil, err
	}
	node, err := grammar.NewDriver(p.reg, toks, vals).Parse("Expr")
	if err != nil {
		return nil, err
	}
	return node.(ast.Expr), nil
}
