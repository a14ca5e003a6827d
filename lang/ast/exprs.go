package ast

import (
	"fmt"

	"github.com/electroly/quill/lang/token"
)

// LiteralBoolExpr is a TRUE/FALSE literal.
type LiteralBoolExpr struct {
	Start, End token.Pos
	Value      bool
}

func (*LiteralBoolExpr) expr() {}
func (n *LiteralBoolExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("bool %t", n.Value), nil)
}
func (n *LiteralBoolExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LiteralBoolExpr) Walk(_ Visitor)               {}

// LiteralNumberExpr is a decimal number literal, kept as raw source text so
// the compiler can decode it with full decimal precision.
type LiteralNumberExpr struct {
	Start, End token.Pos
	Raw        string
}

func (*LiteralNumberExpr) expr() {}
func (n *LiteralNumberExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "number "+n.Raw, nil)
}
func (n *LiteralNumberExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LiteralNumberExpr) Walk(_ Visitor)               {}

// LiteralStringExpr is a string literal with its escapes already decoded.
type LiteralStringExpr struct {
	Start, End token.Pos
	Value      string
}

func (*LiteralStringExpr) expr() {}
func (n *LiteralStringExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("string %q", n.Value), nil)
}
func (n *LiteralStringExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LiteralStringExpr) Walk(_ Visitor)               {}

// LiteralArrayExpr is a `{e1, e2, ...}` list literal.
type LiteralArrayExpr struct {
	Start, End token.Pos
	Elems      []Expr
}

func (*LiteralArrayExpr) expr() {}
func (n *LiteralArrayExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array", map[string]int{"elems": len(n.Elems)})
}
func (n *LiteralArrayExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LiteralArrayExpr) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}

// RecordFieldInit is a single `name: value` pair in a LiteralRecordExpr.
type RecordFieldInit struct {
	Name  string
	Value Expr
}

// LiteralRecordExpr is a `{name: value, ...}` record literal.
type LiteralRecordExpr struct {
	Start, End token.Pos
	Fields     []RecordFieldInit
}

func (*LiteralRecordExpr) expr() {}
func (n *LiteralRecordExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "record", map[string]int{"fields": len(n.Fields)})
}
func (n *LiteralRecordExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LiteralRecordExpr) Walk(v Visitor) {
	for _, fl := range n.Fields {
		Walk(v, fl.Value)
	}
}

// SymbolExpr references a named variable, parameter, constant or
// procedure.
type SymbolExpr struct {
	Start, End token.Pos
	Name       string
}

func (*SymbolExpr) expr() {}
func (n *SymbolExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "symbol "+n.Name, nil) }
func (n *SymbolExpr) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *SymbolExpr) Walk(_ Visitor)                {}

// CallExpr calls a procedure (or a value obtained from a dotted
// expression) with a list of argument expressions.
type CallExpr struct {
	Start, End token.Pos
	Callee     Expr
	Args       []Expr
}

func (*CallExpr) expr() {}
func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// DottedExpr accesses a field of a Record, or indexes a List/Map, via
// `.`, reducing both member access and indexing to the same node shape
// (Index is nil for plain field access).
type DottedExpr struct {
	Start, End token.Pos
	Base       Expr
	Field      string
	Index      Expr // non-nil for `base[index]`-style access
}

func (*DottedExpr) expr() {}
func (n *DottedExpr) Format(f fmt.State, verb rune) {
	lbl := "dotted"
	if n.Field != "" {
		lbl += " ." + n.Field
	}
	format(f, verb, n, lbl, nil)
}
func (n *DottedExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *DottedExpr) Walk(v Visitor) {
	Walk(v, n.Base)
	if n.Index != nil {
		Walk(v, n.Index)
	}
}

// ConvertExpr is a `expr As Type` conversion expression.
type ConvertExpr struct {
	Start, End token.Pos
	Value      Expr
	Type       *TypeRef
}

func (*ConvertExpr) expr() {}
func (n *ConvertExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "convert", nil) }
func (n *ConvertExpr) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ConvertExpr) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Type)
}

// NotExpr is the unary logical/bitwise negation `Not expr`.
type NotExpr struct {
	Start, End token.Pos
	Value      Expr
}

func (*NotExpr) expr() {}
func (n *NotExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "not", nil) }
func (n *NotExpr) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *NotExpr) Walk(v Visitor)                { Walk(v, n.Value) }

// BinaryOp enumerates the binary operators produced by
// parseBinaryExpression's precedence climbing.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	return [...]string{"+", "-", "*", "/", "mod", "=", "<>", "<", "<=", ">", ">=", "and", "or"}[op]
}

// BinaryExpr is a binary operator expression, built by
// parseBinaryExpression as a left-associative chain of the same or
// higher-precedence operators folded into a single node per level.
type BinaryExpr struct {
	Start, End  token.Pos
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) expr() {}
func (n *BinaryExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "binary "+n.Op.String(), nil) }
func (n *BinaryExpr) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
