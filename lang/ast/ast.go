// Package ast defines the types representing the abstract syntax tree (AST)
// produced by the parser: programs, procedures, statements and
// expressions. Each node type implements the Node interface (a
// fmt.Formatter for debug printing, Span for source positions, and Walk for
// the visitor pattern), following the same per-node-type shape throughout
// rather than a tagged single struct, since the statement and expression
// families are naturally open and are consumed primarily through type
// switches in the compiler.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/electroly/quill/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so it can print a
	// description of itself. The only supported verbs are 'v' and 's'. The
	// '#' flag prints count information about child nodes. A width sets the
	// number of runes printed for the description, padded or truncated.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk visits the direct children of this node with v.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node

	// BlockEnding reports whether the statement must appear only as the last
	// statement of its containing block (return, exit, continue, throw,
	// rethrow).
	BlockEnding() bool
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}

// Program is the root node of a compiled unit: a sequence of procedure
// declarations (Sub and Function), plus any top-level Dim/Const
// declarations that make up the program's global state.
type Program struct {
	Start, End token.Pos
	Globals    []Stmt
	Procedures []*Procedure
}

func (n *Program) Format(f fmt.State, verb rune) {
	format(f, verb, n, "program", map[string]int{"procedures": len(n.Procedures), "globals": len(n.Globals)})
}
func (n *Program) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Program) Walk(v Visitor) {
	for _, s := range n.Globals {
		Walk(v, s)
	}
	for _, p := range n.Procedures {
		Walk(v, p)
	}
}

// ProcedureKind distinguishes a Sub (no return value) from a Function.
type ProcedureKind int

const (
	SubProcedure ProcedureKind = iota
	FunctionProcedure
)

// Parameter is a single formal parameter of a Procedure.
type Parameter struct {
	NamePos token.Pos
	Name    string
	Type    *TypeRef
}

func (n *Parameter) Format(f fmt.State, verb rune) { format(f, verb, n, "param "+n.Name, nil) }
func (n *Parameter) Span() (start, end token.Pos) {
	_, end = n.Type.Span()
	return n.NamePos, end
}
func (n *Parameter) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
}

// TypeRef names a type: a scalar keyword type, or a compound List/Map/
// Record/Optional type built from other TypeRefs.
type TypeRef struct {
	Start, End token.Pos
	Kind       TypeKind
	Of         *TypeRef   // List Of, Optional Of
	Key, Value *TypeRef   // Map Key ... Value ...
	Fields     []*Field   // Record fields
}

// TypeKind enumerates the scalar and compound type kinds.
type TypeKind int

const (
	TypeBoolean TypeKind = iota
	TypeNumber
	TypeString
	TypeDate
	TypeDateTime
	TypeDateTimeOffset
	TypeTimeSpan
	TypeTimeZone
	TypeList
	TypeMap
	TypeRecord
	TypeOptional
	TypeNamed // reference to a user-defined Type declaration
)

func (n *TypeRef) Format(f fmt.State, verb rune) { format(f, verb, n, "type", nil) }
func (n *TypeRef) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *TypeRef) Walk(v Visitor) {
	if n.Of != nil {
		Walk(v, n.Of)
	}
	if n.Key != nil {
		Walk(v, n.Key)
	}
	if n.Value != nil {
		Walk(v, n.Value)
	}
	for _, fl := range n.Fields {
		Walk(v, fl)
	}
}

// Field is a single named field inside a Record TypeRef.
type Field struct {
	NamePos token.Pos
	Name    string
	Type    *TypeRef
}

func (n *Field) Format(f fmt.State, verb rune) { format(f, verb, n, "field "+n.Name, nil) }
func (n *Field) Span() (start, end token.Pos) {
	_, end = n.Type.Span()
	return n.NamePos, end
}
func (n *Field) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
}

// Procedure is a Sub or Function declaration.
type Procedure struct {
	Start, End token.Pos
	Kind       ProcedureKind
	NamePos    token.Pos
	Name       string
	Params     []*Parameter
	ReturnType *TypeRef // nil for Sub
	Body       *Block
}

func (n *Procedure) Format(f fmt.State, verb rune) {
	lbl := "sub " + n.Name
	if n.Kind == FunctionProcedure {
		lbl = "function " + n.Name
	}
	format(f, verb, n, lbl, map[string]int{"params": len(n.Params)})
}
func (n *Procedure) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Procedure) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	if n.ReturnType != nil {
		Walk(v, n.ReturnType)
	}
	if n.Body != nil {
		Walk(v, n.Body)
	}
}

// Block represents a sequence of statements delimited by a construct's
// own start/end keywords (e.g. the body of an If, For, Sub).
type Block struct {
	Start, End token.Pos
	Stmts      []Stmt
}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Block) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
