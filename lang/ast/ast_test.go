package ast_test

import (
	"fmt"
	"testing"

	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/token"
	"github.com/stretchr/testify/require"
)

func TestFormatAndSpan(t *testing.T) {
	sym := &ast.SymbolExpr{Start: token.MakePos(1, 1), End: token.MakePos(1, 2), Name: "x"}
	require.Equal(t, "symbol x", fmt.Sprintf("%v", sym))
	start, end := sym.Span()
	require.Equal(t, token.MakePos(1, 1), start)
	require.Equal(t, token.MakePos(1, 2), end)
}

func TestWalkVisitsChildren(t *testing.T) {
	bin := &ast.BinaryExpr{
		Op:   ast.OpAdd,
		Left: &ast.LiteralNumberExpr{Raw: "1"},
		Right: &ast.LiteralNumberExpr{Raw: "2"},
	}
	var visited []string
	ast.Walk(ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			visited = append(visited, fmt.Sprintf("%v", n))
		}
		return ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
			if dir == ast.VisitEnter {
				visited = append(visited, fmt.Sprintf("%v", n))
			}
			return nil
		})
	}), bin)
	require.Equal(t, []string{"binary +", "number 1", "number 2"}, visited)
}

func TestBlockEndingStatements(t *testing.T) {
	require.True(t, (&ast.ReturnStmt{}).BlockEnding())
	require.True(t, (&ast.ExitStmt{}).BlockEnding())
	require.True(t, (&ast.ContinueStmt{}).BlockEnding())
	require.True(t, (&ast.ThrowStmt{}).BlockEnding())
	require.True(t, (&ast.RethrowStmt{}).BlockEnding())
	require.False(t, (&ast.DimStmt{}).BlockEnding())
	require.False(t, (&ast.IfStmt{}).BlockEnding())
}
