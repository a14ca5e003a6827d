package parser_test

import (
	"testing"

	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/parser"
	"github.com/electroly/quill/lang/token"
	"github.com/stretchr/testify/require"
)

func mustParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.New()
	require.NoError(t, err)
	return p
}

func TestParseMemberDim(t *testing.T) {
	p := mustParser(t)
	node, err := p.ParseMember([]byte("dim x as number\n"))
	require.NoError(t, err)
	dim, ok := node.(*ast.DimStmt)
	require.True(t, ok)
	require.Equal(t, "x", dim.Name)
	require.Equal(t, ast.TypeNumber, dim.Type.Kind)
	require.Nil(t, dim.Init)
}

func TestParseMemberDimWithInit(t *testing.T) {
	p := mustParser(t)
	node, err := p.ParseMember([]byte("dim total as number = 1 + 2\n"))
	require.NoError(t, err)
	dim, ok := node.(*ast.DimStmt)
	require.True(t, ok)
	bin, ok := dim.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, bin.Op)
}

func TestParseExprPrecedence(t *testing.T) {
	p := mustParser(t)
	// 1 + 2 * 3 should bind as 1 + (2 * 3), not (1 + 2) * 3.
	e, err := p.ParseExpr([]byte("1 + 2 * 3"))
	require.NoError(t, err)
	bin, ok := e.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, bin.Op)
	_, ok = bin.Left.(*ast.LiteralNumberExpr)
	require.True(t, ok)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseExprLeftAssociative(t *testing.T) {
	p := mustParser(t)
	// 10 - 3 - 2 should bind as (10 - 3) - 2.
	e, err := p.ParseExpr([]byte("10 - 3 - 2"))
	require.NoError(t, err)
	bin, ok := e.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpSub, bin.Op)
	lhs, ok := bin.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpSub, lhs.Op)
}

func TestParseExprCallArgs(t *testing.T) {
	p := mustParser(t)
	e, err := p.ParseExpr([]byte("foo(1, 2, 3)"))
	require.NoError(t, err)
	call, ok := e.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 3)
}

func TestParseExprPostfixChain(t *testing.T) {
	p := mustParser(t)
	e, err := p.ParseExpr([]byte("a.b[1].c(2)"))
	require.NoError(t, err)
	call, ok := e.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	dotC, ok := call.Callee.(*ast.DottedExpr)
	require.True(t, ok)
	require.Equal(t, "c", dotC.Field)
}

func TestParseExprArrayLiteral(t *testing.T) {
	p := mustParser(t)
	e, err := p.ParseExpr([]byte("{1, 2, 3}"))
	require.NoError(t, err)
	lit, ok := e.(*ast.LiteralArrayExpr)
	require.True(t, ok)
	require.Len(t, lit.Elems, 3)
}

func TestParseExprEmptyArrayLiteral(t *testing.T) {
	p := mustParser(t)
	e, err := p.ParseExpr([]byte("{}"))
	require.NoError(t, err)
	lit, ok := e.(*ast.LiteralArrayExpr)
	require.True(t, ok)
	require.Empty(t, lit.Elems)
}

func TestParseExprRecordLiteral(t *testing.T) {
	p := mustParser(t)
	e, err := p.ParseExpr([]byte("{x: 1, y: 2}"))
	require.NoError(t, err)
	lit, ok := e.(*ast.LiteralRecordExpr)
	require.True(t, ok)
	require.Len(t, lit.Fields, 2)
	require.Equal(t, "x", lit.Fields[0].Name)
	require.Equal(t, "y", lit.Fields[1].Name)
}

func TestParseIfStmtWithElseIf(t *testing.T) {
	p := mustParser(t)
	src := `if x = 1 then
  dim a as number
else if x = 2 then
  dim b as number
else
  dim c as number
end if
`
	node, err := p.ParseMember([]byte("sub Main()\n" + src + "end sub\n"))
	require.NoError(t, err)
	proc, ok := node.(*ast.Procedure)
	require.True(t, ok)
	require.Len(t, proc.Body.Stmts, 1)
	ifs, ok := proc.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.ElseIfs, 1)
	require.NotNil(t, ifs.Else)
}

func TestParseSelectCaseStmt(t *testing.T) {
	p := mustParser(t)
	src := `sub Main()
select case x
case 1, 2
  dim a as number
case else
  dim b as number
end select
end sub
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	sel, ok := proc.Body.Stmts[0].(*ast.SelectCaseStmt)
	require.True(t, ok)
	require.Len(t, sel.Cases, 2)
	require.Len(t, sel.Cases[0].Values, 2)
	require.Empty(t, sel.Cases[1].Values)
}

func TestParseForStmtWithStep(t *testing.T) {
	p := mustParser(t)
	src := `sub Main()
for i = 1 to 10 step 2
  dim a as number
next
end sub
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	f, ok := proc.Body.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.Equal(t, "i", f.Name)
	require.NotNil(t, f.Step)
}

func TestParseForStmtWithoutStep(t *testing.T) {
	p := mustParser(t)
	src := `sub Main()
for i = 1 to 10
  dim a as number
next
end sub
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	f, ok := proc.Body.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.Nil(t, f.Step)
}

func TestParseTryCatchFinally(t *testing.T) {
	p := mustParser(t)
	src := `sub Main()
try
  dim a as number
catch err
  dim b as number
finally
  dim c as number
end try
end sub
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	try, ok := proc.Body.Stmts[0].(*ast.TryStmt)
	require.True(t, ok)
	require.Equal(t, "err", try.CatchName)
	require.NotNil(t, try.Catch)
	require.NotNil(t, try.Finally)
}

func TestParseGroupAndJoinStmt(t *testing.T) {
	p := mustParser(t)
	src := `sub Main()
group item in items by item.name into g
  dim a as number
end group
join left in rights on left.id = right.id
  dim b as number
end join
end sub
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	require.Len(t, proc.Body.Stmts, 2)
	grp, ok := proc.Body.Stmts[0].(*ast.GroupStmt)
	require.True(t, ok)
	require.Equal(t, "g", grp.IntoName)
	join, ok := proc.Body.Stmts[1].(*ast.JoinStmt)
	require.True(t, ok)
	require.Equal(t, "left", join.ItemName)
}

func TestParseExitAndContinue(t *testing.T) {
	p := mustParser(t)
	src := `sub Main()
while true
  exit while
  continue while
wend
end sub
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	w := proc.Body.Stmts[0].(*ast.WhileStmt)
	require.Len(t, w.Body.Stmts, 2)
	ex, ok := w.Body.Stmts[0].(*ast.ExitStmt)
	require.True(t, ok)
	require.Equal(t, token.WHILE, ex.Kind)
	cont, ok := w.Body.Stmts[1].(*ast.ContinueStmt)
	require.True(t, ok)
	require.Equal(t, token.WHILE, cont.Kind)
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	p := mustParser(t)
	src := `function Add(a as number, b as number) as number
return a + b
end function
`
	node, err := p.ParseMember([]byte(src))
	require.NoError(t, err)
	proc := node.(*ast.Procedure)
	require.Equal(t, ast.FunctionProcedure, proc.Kind)
	require.Len(t, proc.Params, 2)
	require.Equal(t, ast.TypeNumber, proc.ReturnType.Kind)
	ret, ok := proc.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParseProgramWithGlobalsAndProcedures(t *testing.T) {
	p := mustParser(t)
	src := `const Limit = 10
sub DoWork()
dim i as number
end sub
dim total as number
`
	prog, err := p.ParseProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Globals, 2)
	require.Len(t, prog.Procedures, 1)
	require.Equal(t, "DoWork", prog.Procedures[0].Name)
}
