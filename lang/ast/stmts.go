package ast

import (
	"fmt"

	"github.com/electroly/quill/lang/token"
)

// DimStmt declares a single local or global variable with an optional
// initializer.
type DimStmt struct {
	Start, End token.Pos
	Name       string
	Type       *TypeRef // nil if inferred from Init
	Init       Expr     // nil if none
}

func (n *DimStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "dim "+n.Name, nil) }
func (n *DimStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *DimStmt) BlockEnding() bool             { return false }
func (n *DimStmt) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
	if n.Init != nil {
		Walk(v, n.Init)
	}
}

// ConstStmt declares a compile-time constant.
type ConstStmt struct {
	Start, End token.Pos
	Name       string
	Value      Expr
}

func (n *ConstStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "const "+n.Name, nil) }
func (n *ConstStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ConstStmt) BlockEnding() bool             { return false }
func (n *ConstStmt) Walk(v Visitor)                { Walk(v, n.Value) }

// AssignStmt assigns a value to an lvalue target (symbol, dotted field
// access, or list/map index).
type AssignStmt struct {
	Start, End token.Pos
	Target     Expr
	Value      Expr
}

func (n *AssignStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "assign", nil) }
func (n *AssignStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *AssignStmt) BlockEnding() bool             { return false }
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}

// CallStmt invokes a Sub or Function, discarding any return value.
type CallStmt struct {
	Start, End token.Pos
	Call       *CallExpr
}

func (n *CallStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "call", nil) }
func (n *CallStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *CallStmt) BlockEnding() bool             { return false }
func (n *CallStmt) Walk(v Visitor)                { Walk(v, n.Call) }

// ReturnStmt returns from the enclosing Function (with Value) or Sub
// (Value is nil).
type ReturnStmt struct {
	Start, End token.Pos
	Value      Expr
}

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ReturnStmt) BlockEnding() bool             { return true }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// ElseIfClause is one "Else If cond Then" arm of an IfStmt.
type ElseIfClause struct {
	Start, End token.Pos
	Cond       Expr
	Body       *Block
}

func (n *ElseIfClause) Format(f fmt.State, verb rune) { format(f, verb, n, "elseif", nil) }
func (n *ElseIfClause) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ElseIfClause) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}

// IfStmt is an If/ElseIf/Else chain.
type IfStmt struct {
	Start, End token.Pos
	Cond       Expr
	Then       *Block
	ElseIfs    []*ElseIfClause
	Else       *Block // nil if no else clause
}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "if", map[string]int{"elseifs": len(n.ElseIfs)})
}
func (n *IfStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *IfStmt) BlockEnding() bool            { return false }
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	for _, ei := range n.ElseIfs {
		Walk(v, ei)
	}
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// CaseClause is one "Case expr, expr, ..." arm of a SelectCaseStmt.
type CaseClause struct {
	Start, End token.Pos
	Values     []Expr // empty for a "Case Else" clause
	Body       *Block
}

func (n *CaseClause) Format(f fmt.State, verb rune) {
	format(f, verb, n, "case", map[string]int{"values": len(n.Values)})
}
func (n *CaseClause) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CaseClause) Walk(v Visitor) {
	for _, val := range n.Values {
		Walk(v, val)
	}
	Walk(v, n.Body)
}

// SelectCaseStmt is a Select Case multi-way branch.
type SelectCaseStmt struct {
	Start, End token.Pos
	Subject    Expr
	Cases      []*CaseClause
}

func (n *SelectCaseStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "select-case", map[string]int{"cases": len(n.Cases)})
}
func (n *SelectCaseStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *SelectCaseStmt) BlockEnding() bool            { return false }
func (n *SelectCaseStmt) Walk(v Visitor) {
	Walk(v, n.Subject)
	for _, c := range n.Cases {
		Walk(v, c)
	}
}

// ForStmt is a counted For/Next loop with an optional Step expression.
type ForStmt struct {
	Start, End       token.Pos
	Name             string
	From, To, Step   Expr // Step is nil if omitted (implies 1)
	Body             *Block
}

func (n *ForStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "for "+n.Name, nil) }
func (n *ForStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ForStmt) BlockEnding() bool             { return false }
func (n *ForStmt) Walk(v Visitor) {
	Walk(v, n.From)
	Walk(v, n.To)
	if n.Step != nil {
		Walk(v, n.Step)
	}
	Walk(v, n.Body)
}

// ForEachStmt iterates the elements of a List, Map's keys, or Record's
// fields.
type ForEachStmt struct {
	Start, End token.Pos
	Name       string
	In         Expr
	Body       *Block
}

func (n *ForEachStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "for-each "+n.Name, nil) }
func (n *ForEachStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ForEachStmt) BlockEnding() bool             { return false }
func (n *ForEachStmt) Walk(v Visitor) {
	Walk(v, n.In)
	Walk(v, n.Body)
}

// WhileStmt repeats Body While Cond holds, checked before each iteration.
type WhileStmt struct {
	Start, End token.Pos
	Cond       Expr
	Body       *Block
}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *WhileStmt) BlockEnding() bool             { return false }
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}

// DoStmt repeats Body until Cond holds, checked after each iteration
// (Do ... Loop Until cond).
type DoStmt struct {
	Start, End token.Pos
	Body       *Block
	Cond       Expr
}

func (n *DoStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "do", nil) }
func (n *DoStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *DoStmt) BlockEnding() bool             { return false }
func (n *DoStmt) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.Cond)
}

// TryStmt is a Try/Catch/Finally structured exception handler.
type TryStmt struct {
	Start, End  token.Pos
	Try         *Block
	CatchName   string // bound error variable name, may be empty
	Catch       *Block // nil if no Catch clause
	Finally     *Block // nil if no Finally clause
}

func (n *TryStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "try", nil) }
func (n *TryStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *TryStmt) BlockEnding() bool             { return false }
func (n *TryStmt) Walk(v Visitor) {
	Walk(v, n.Try)
	if n.Catch != nil {
		Walk(v, n.Catch)
	}
	if n.Finally != nil {
		Walk(v, n.Finally)
	}
}

// ThrowStmt raises a new program-visible error.
type ThrowStmt struct {
	Start, End token.Pos
	Message    Expr
	Code       Expr // nil if omitted
}

func (n *ThrowStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "throw", nil) }
func (n *ThrowStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ThrowStmt) BlockEnding() bool             { return true }
func (n *ThrowStmt) Walk(v Visitor) {
	Walk(v, n.Message)
	if n.Code != nil {
		Walk(v, n.Code)
	}
}

// RethrowStmt re-raises the error currently being handled by an enclosing
// Catch clause.
type RethrowStmt struct {
	Start, End token.Pos
}

func (n *RethrowStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "rethrow", nil) }
func (n *RethrowStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *RethrowStmt) BlockEnding() bool             { return true }
func (n *RethrowStmt) Walk(_ Visitor)                {}

// ExitStmt exits the nearest enclosing loop or select-case (Exit For,
// Exit Do, Exit While, Exit Select, Exit Sub, Exit Function).
type ExitStmt struct {
	Start, End token.Pos
	Kind       token.Token // e.g. token.FOR, token.DO, token.WHILE, token.SELECT, token.SUB, token.FUNCTION
}

func (n *ExitStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "exit "+n.Kind.String(), nil) }
func (n *ExitStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ExitStmt) BlockEnding() bool             { return true }
func (n *ExitStmt) Walk(_ Visitor)                {}

// ContinueStmt continues the nearest enclosing loop (Continue For,
// Continue Do, Continue While). This is distinct from ExitStmt: it is
// driven by the dedicated CONTINUE keyword rather than reusing EXIT, which
// the grounding source conflated.
type ContinueStmt struct {
	Start, End token.Pos
	Kind       token.Token
}

func (n *ContinueStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "continue "+n.Kind.String(), nil)
}
func (n *ContinueStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *ContinueStmt) BlockEnding() bool            { return true }
func (n *ContinueStmt) Walk(_ Visitor)               {}

// GroupStmt partitions the elements of an input list into groups sharing a
// common key, binding each group in turn to Name for the Body:
// Group item In list By key() Into Name ... End Group.
type GroupStmt struct {
	Start, End token.Pos
	ItemName   string
	In         Expr
	By         Expr
	IntoName   string
	Body       *Block
}

func (n *GroupStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "group", nil) }
func (n *GroupStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *GroupStmt) BlockEnding() bool             { return false }
func (n *GroupStmt) Walk(v Visitor) {
	Walk(v, n.In)
	Walk(v, n.By)
	Walk(v, n.Body)
}

// JoinStmt joins two sequences on a predicate, binding each matching pair
// in turn for the Body: Join item In list On cond ... End Join. The on
// expression and the body are kept in distinct fields (and distinct parse
// capture slots, see lang/parser) since the grounding source conflated
// them into a single capture slot.
type JoinStmt struct {
	Start, End token.Pos
	ItemName   string
	In         Expr
	On         Expr
	Body       *Block
}

func (n *JoinStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "join", nil) }
func (n *JoinStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *JoinStmt) BlockEnding() bool             { return false }
func (n *JoinStmt) Walk(v Visitor) {
	Walk(v, n.In)
	Walk(v, n.On)
	Walk(v, n.Body)
}
