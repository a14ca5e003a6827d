// Package parser registers the concrete grammar productions (types,
// statements, expressions) against the combinator core in lang/grammar,
// and exposes Parse entry points that turn a token stream into a
// lang/ast tree.
package parser

import (
	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/token"
)

// captureSingleNode expects slot to hold exactly one node of type T and
// panics if it is absent: a production whose grammar guarantees a
// mandatory child called this on a slot that didn't capture is a
// construction bug, not a parse failure.
func captureSingleNode[T any](c *grammar.Captures, slot int) T {
	v := c.Node(slot)
	if v == nil {
		panic("parser: expected capture in slot, got none")
	}
	return v.(T)
}

// captureSingleNodeOrNull returns the zero value of T if slot is empty
// (e.g. it wrapped an Opt that did not match).
func captureSingleNodeOrNull[T any](c *grammar.Captures, slot int) T {
	var zero T
	v := c.Node(slot)
	if v == nil {
		return zero
	}
	return v.(T)
}

// captureNodeArray reads a Star-captured slot and type-asserts every
// element to T.
func captureNodeArray[T any](c *grammar.Captures, slot int) []T {
	items := c.List(slot)
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.(T)
	}
	return out
}

// captureToken expects slot to hold a single terminal.
func captureToken(c *grammar.Captures, slot int) *grammar.Leaf {
	v := c.Leaf(slot)
	if v == nil {
		panic("parser: expected token capture in slot, got none")
	}
	return v
}

func captureTokenOrNull(c *grammar.Captures, slot int) *grammar.Leaf { return c.Leaf(slot) }

func captureTokenText(c *grammar.Captures, slot int) string { return captureToken(c, slot).Value.Raw }

func captureTokenPos(c *grammar.Captures, slot int) token.Pos { return captureToken(c, slot).Value.Pos }

// spanOf returns the Start/End of any lang/ast Node.
func spanOf(n ast.Node) (token.Pos, token.Pos) { return n.Span() }

// blockEnd returns the End position of the last statement in stmts, or
// fallback if stmts is empty.
func blockEnd(stmts []ast.Stmt, fallback token.Pos) token.Pos {
	if len(stmts) == 0 {
		return fallback
	}
	_, end := stmts[len(stmts)-1].Span()
	return end
}

func exprEnd(e ast.Expr, fallback token.Pos) token.Pos {
	if e == nil {
		return fallback
	}
	_, end := e.Span()
	return end
}
