package parser

import (
	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/token"
)

// procHead carries the head of a Procedure (keyword, name, params, return
// type) as one value: Procedure has more independent parts than the
// five-slot capture array holds, so ProcedureHead parses its own and hands
// the result back to Procedure's Parse callback.
type procHead struct {
	start      token.Pos
	kind       ast.ProcedureKind
	namePos    token.Pos
	name       string
	params     []*ast.Parameter
	returnType *ast.TypeRef
}

func defineProgram(reg *grammar.Registry) {
	reg.Define("ProcedureKeyword", grammar.Or(
		grammar.Capture(0, grammar.T(token.SUB)),
		grammar.Capture(0, grammar.T(token.FUNCTION)),
	), func(c *grammar.Captures) (any, error) {
		return captureToken(c, 0), nil
	})

	reg.Define("ProcedureHead", grammar.And(
		grammar.Capture(0, grammar.NT("ProcedureKeyword")),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.Capture(2, grammar.Opt(grammar.NT("ParamList"))),
		grammar.Opt(grammar.And(grammar.T(token.AS), grammar.Capture(3, grammar.NT("Type")))),
	), func(c *grammar.Captures) (any, error) {
		kwLeaf := captureSingleNode[*grammar.Leaf](c, 0)
		kind := ast.SubProcedure
		if kwLeaf.Token == token.FUNCTION {
			kind = ast.FunctionProcedure
		}
		nameLeaf := captureToken(c, 1)
		params := captureSingleNodeOrNull[[]*ast.Parameter](c, 2)
		returnType := captureSingleNodeOrNull[*ast.TypeRef](c, 3)
		return &procHead{
			start: kwLeaf.Value.Pos, kind: kind, namePos: nameLeaf.Value.Pos, name: nameLeaf.Value.Raw,
			params: params, returnType: returnType,
		}, nil
	})

	reg.Define("Procedure", grammar.And(
		grammar.Capture(0, grammar.NT("ProcedureHead")),
		stmtsTerm(1),
		grammar.T(token.END),
		grammar.Capture(2, grammar.NT("ProcedureKeyword")),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[*procHead](c, 0)
		stmts := captureStmts(c, 1)
		endKw := captureSingleNode[*grammar.Leaf](c, 2)
		start := head.start
		end := endKw.Value.Pos
		return &ast.Procedure{
			Start: start, End: end, Kind: head.kind, NamePos: head.namePos, Name: head.name,
			Params: head.params, ReturnType: head.returnType, Body: block(stmts, start, end),
		}, nil
	})

	reg.Define("GlobalDecl", grammar.Or(
		grammar.Capture(0, grammar.NT("DimStmt")),
		grammar.Capture(0, grammar.NT("ConstStmt")),
	), func(c *grammar.Captures) (any, error) {
		return c.Node(0), nil
	})

	reg.Define("ProgramMember", grammar.Or(
		grammar.Capture(0, grammar.NT("Procedure")),
		grammar.Capture(0, grammar.NT("GlobalDecl")),
	), func(c *grammar.Captures) (any, error) {
		return c.Node(0), nil
	})

	reg.Define("Program", grammar.Capture(0, grammar.Star(grammar.NT("ProgramMember"))), func(c *grammar.Captures) (any, error) {
		members := captureNodeArray[any](c, 0)
		prog := &ast.Program{}
		for _, m := range members {
			switch n := m.(type) {
			case *ast.Procedure:
				prog.Procedures = append(prog.Procedures, n)
			case ast.Stmt:
				prog.Globals = append(prog.Globals, n)
			}
		}
		if len(members) > 0 {
			prog.Start, _ = spanOf(members[0].(ast.Node))
			_, prog.End = spanOf(members[len(members)-1].(ast.Node))
		}
		return prog, nil
	})
}
