package parser

import (
	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/token"
)

func block(stmts []ast.Stmt, start, end token.Pos) *ast.Block {
	return &ast.Block{Start: start, End: end, Stmts: stmts}
}

// stmtsTerm matches zero or more statements, each one an independent NT
// call, so Star directly accumulates the parsed ast.Stmt values.
func stmtsTerm(slot int) *grammar.Term { return grammar.Capture(slot, grammar.Star(grammar.NT("Statement"))) }

func captureStmts(c *grammar.Captures, slot int) []ast.Stmt { return captureNodeArray[ast.Stmt](c, slot) }

func defineStmts(reg *grammar.Registry) {
	reg.Define("DimStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.DIM)),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.T(token.AS),
		grammar.Capture(2, grammar.NT("Type")),
		grammar.Capture(3, grammar.Opt(grammar.And(grammar.T(token.EQ), grammar.Capture(4, grammar.NT("Expr"))))),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		name := captureTokenText(c, 1)
		typ := captureSingleNode[*ast.TypeRef](c, 2)
		init := captureSingleNodeOrNull[ast.Expr](c, 4)
		end := exprEnd(init, func() token.Pos { _, e := typ.Span(); return e }())
		return &ast.DimStmt{Start: start, End: end, Name: name, Type: typ, Init: init}, nil
	})

	reg.Define("ConstStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.CONST)),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.T(token.EQ),
		grammar.Capture(2, grammar.NT("Expr")),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		name := captureTokenText(c, 1)
		val := captureSingleNode[ast.Expr](c, 2)
		_, end := val.Span()
		return &ast.ConstStmt{Start: start, End: end, Name: name, Value: val}, nil
	})

	reg.Define("AssignStmt", grammar.And(
		grammar.Capture(0, grammar.NT("PostfixExpr")),
		grammar.T(token.EQ),
		grammar.Capture(1, grammar.NT("Expr")),
	), func(c *grammar.Captures) (any, error) {
		target := captureSingleNode[ast.Expr](c, 0)
		val := captureSingleNode[ast.Expr](c, 1)
		start, _ := target.Span()
		_, end := val.Span()
		return &ast.AssignStmt{Start: start, End: end, Target: target, Value: val}, nil
	})

	reg.Define("CallStmt", grammar.Capture(0, grammar.NT("PostfixExpr")), func(c *grammar.Captures) (any, error) {
		expr := captureSingleNode[ast.Expr](c, 0)
		call, ok := expr.(*ast.CallExpr)
		if !ok {
			return nil, &grammar.Error{Msg: "expected a procedure call"}
		}
		start, end := call.Span()
		return &ast.CallStmt{Start: start, End: end, Call: call}, nil
	})

	reg.Define("ReturnStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.RETURN)),
		grammar.Capture(1, grammar.Opt(grammar.NT("Expr"))),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		val := captureSingleNodeOrNull[ast.Expr](c, 1)
		return &ast.ReturnStmt{Start: start, End: exprEnd(val, start), Value: val}, nil
	})

	reg.Define("ElseIfClause", grammar.And(
		grammar.Capture(0, grammar.T(token.ELSE)),
		grammar.T(token.IF),
		grammar.Capture(1, grammar.NT("Expr")),
		grammar.T(token.THEN),
		stmtsTerm(2),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		cond := captureSingleNode[ast.Expr](c, 1)
		stmts := captureStmts(c, 2)
		_, condEnd := cond.Span()
		return &ast.ElseIfClause{Start: start, End: blockEnd(stmts, condEnd), Cond: cond, Body: block(stmts, start, blockEnd(stmts, condEnd))}, nil
	})

	reg.Define("ElseIfRest", grammar.And(
		grammar.Capture(0, grammar.NT("ElseIfClause")),
		grammar.Capture(1, grammar.Opt(grammar.NT("ElseIfRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[*ast.ElseIfClause](c, 0)
		tail := captureSingleNodeOrNull[[]*ast.ElseIfClause](c, 1)
		return append([]*ast.ElseIfClause{head}, tail...), nil
	})

	reg.Define("IfStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.IF)),
		grammar.Capture(1, grammar.NT("Expr")),
		grammar.T(token.THEN),
		stmtsTerm(2),
		grammar.Capture(3, grammar.Opt(grammar.NT("ElseIfRest"))),
		grammar.Opt(grammar.And(grammar.T(token.ELSE), stmtsTerm(4))),
		grammar.T(token.END), grammar.T(token.IF),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		cond := captureSingleNode[ast.Expr](c, 1)
		thenStmts := captureStmts(c, 2)
		elseIfs := captureSingleNodeOrNull[[]*ast.ElseIfClause](c, 3)
		var elseBlock *ast.Block
		if c.Get(4) != nil {
			elseStmts := captureStmts(c, 4)
			elseBlock = block(elseStmts, start, blockEnd(elseStmts, start))
		}
		_, condEnd := cond.Span()
		thenEnd := blockEnd(thenStmts, condEnd)
		return &ast.IfStmt{
			Start: start, End: thenEnd,
			Cond: cond, Then: block(thenStmts, start, thenEnd),
			ElseIfs: elseIfs, Else: elseBlock,
		}, nil
	})

	reg.Define("CaseClause", grammar.Or(
		grammar.And(
			grammar.Capture(1, grammar.T(token.CASE)),
			grammar.Capture(2, grammar.T(token.ELSE)),
			stmtsTerm(3),
		),
		grammar.And(
			grammar.Capture(1, grammar.T(token.CASE)),
			grammar.Capture(2, grammar.NT("Expr")),
			grammar.Capture(4, grammar.Opt(grammar.NT("ExprRest"))),
			stmtsTerm(3),
		),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 1)
		stmts := captureStmts(c, 3)
		end := blockEnd(stmts, start)
		var values []ast.Expr
		if _, isElse := c.Get(2).(*grammar.Leaf); !isElse {
			head := captureSingleNode[ast.Expr](c, 2)
			values = append([]ast.Expr{head}, captureSingleNodeOrNull[[]ast.Expr](c, 4)...)
		}
		return &ast.CaseClause{Start: start, End: end, Values: values, Body: block(stmts, start, end)}, nil
	})

	reg.Define("SelectCaseStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.SELECT)),
		grammar.T(token.CASE),
		grammar.Capture(1, grammar.NT("Expr")),
		grammar.Capture(2, grammar.Star(grammar.NT("CaseClause"))),
		grammar.T(token.END),
		grammar.Capture(3, grammar.T(token.SELECT)),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		subject := captureSingleNode[ast.Expr](c, 1)
		cases := captureNodeArray[*ast.CaseClause](c, 2)
		end := captureTokenPos(c, 3)
		return &ast.SelectCaseStmt{Start: start, End: end, Subject: subject, Cases: cases}, nil
	})

	reg.Define("ForTail", grammar.And(
		grammar.Opt(grammar.And(grammar.T(token.STEP), grammar.Capture(0, grammar.NT("Expr")))),
		stmtsTerm(1),
		grammar.Capture(2, grammar.T(token.NEXT)),
	), func(c *grammar.Captures) (any, error) {
		step := captureSingleNodeOrNull[ast.Expr](c, 0)
		stmts := captureStmts(c, 1)
		end := captureTokenPos(c, 2)
		return &forTail{step: step, stmts: stmts, end: end}, nil
	})

	reg.Define("ForStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.FOR)),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.T(token.EQ),
		grammar.Capture(2, grammar.NT("Expr")),
		grammar.T(token.TO),
		grammar.Capture(3, grammar.NT("Expr")),
		grammar.Capture(4, grammar.NT("ForTail")),
	), func(c *grammar.Captures) (any, error) {
		return forStmtParse(c)
	})

	reg.Define("ForEachStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.FOR)),
		grammar.T(token.EACH),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.T(token.IN),
		grammar.Capture(2, grammar.NT("Expr")),
		stmtsTerm(3),
		grammar.T(token.NEXT),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		name := captureTokenText(c, 1)
		in := captureSingleNode[ast.Expr](c, 2)
		stmts := captureStmts(c, 3)
		end := blockEnd(stmts, start)
		return &ast.ForEachStmt{Start: start, End: end, Name: name, In: in, Body: block(stmts, start, end)}, nil
	})

	reg.Define("WhileStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.WHILE)),
		grammar.Capture(1, grammar.NT("Expr")),
		stmtsTerm(2),
		grammar.T(token.WEND),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		cond := captureSingleNode[ast.Expr](c, 1)
		stmts := captureStmts(c, 2)
		end := blockEnd(stmts, start)
		return &ast.WhileStmt{Start: start, End: end, Cond: cond, Body: block(stmts, start, end)}, nil
	})

	reg.Define("DoStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.DO)),
		stmtsTerm(1),
		grammar.T(token.LOOP),
		grammar.T(token.UNTIL),
		grammar.Capture(2, grammar.NT("Expr")),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		stmts := captureStmts(c, 1)
		cond := captureSingleNode[ast.Expr](c, 2)
		_, end := cond.Span()
		return &ast.DoStmt{Start: start, End: end, Body: block(stmts, start, blockEnd(stmts, start)), Cond: cond}, nil
	})

	reg.Define("TryStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.TRY)),
		stmtsTerm(1),
		grammar.Capture(2, grammar.Opt(grammar.NT("CatchClause"))),
		grammar.Opt(grammar.And(grammar.T(token.FINALLY), stmtsTerm(3))),
		grammar.T(token.END),
		grammar.Capture(4, grammar.T(token.TRY)),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		tryStmts := captureStmts(c, 1)
		end := captureTokenPos(c, 4)
		var catchName string
		var catchBlock *ast.Block
		if cc, ok := c.Get(2).(*catchClause); ok && cc != nil {
			catchName = cc.name
			catchBlock = block(cc.stmts, start, blockEnd(cc.stmts, start))
		}
		var finallyBlock *ast.Block
		if c.Get(3) != nil {
			finallyStmts := captureStmts(c, 3)
			finallyBlock = block(finallyStmts, start, blockEnd(finallyStmts, start))
		}
		return &ast.TryStmt{
			Start: start, End: end,
			Try: block(tryStmts, start, blockEnd(tryStmts, start)),
			CatchName: catchName, Catch: catchBlock, Finally: finallyBlock,
		}, nil
	})

	reg.Define("CatchClause", grammar.And(
		grammar.T(token.CATCH),
		grammar.Capture(0, grammar.Opt(grammar.T(token.IDENT))),
		stmtsTerm(1),
	), func(c *grammar.Captures) (any, error) {
		name := ""
		if leaf := captureTokenOrNull(c, 0); leaf != nil {
			name = leaf.Value.Raw
		}
		return &catchClause{name: name, stmts: captureStmts(c, 1)}, nil
	})

	reg.Define("ThrowStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.THROW)),
		grammar.Capture(1, grammar.NT("Expr")),
		grammar.Opt(grammar.And(grammar.T(token.COMMA), grammar.Capture(2, grammar.NT("Expr")))),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		msg := captureSingleNode[ast.Expr](c, 1)
		code := captureSingleNodeOrNull[ast.Expr](c, 2)
		_, msgEnd := msg.Span()
		return &ast.ThrowStmt{Start: start, End: exprEnd(code, msgEnd), Message: msg, Code: code}, nil
	})

	reg.Define("RethrowStmt", grammar.Capture(0, grammar.T(token.RETHROW)), func(c *grammar.Captures) (any, error) {
		leaf := captureToken(c, 0)
		return &ast.RethrowStmt{Start: leaf.Value.Pos, End: leaf.Value.Pos}, nil
	})

	exitKeywords := grammar.Or(
		grammar.Capture(1, grammar.T(token.FOR)), grammar.Capture(1, grammar.T(token.DO)),
		grammar.Capture(1, grammar.T(token.WHILE)), grammar.Capture(1, grammar.T(token.SELECT)),
		grammar.Capture(1, grammar.T(token.SUB)), grammar.Capture(1, grammar.T(token.FUNCTION)),
	)
	reg.Define("ExitStmt", grammar.And(grammar.Capture(0, grammar.T(token.EXIT)), exitKeywords), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		kindLeaf := captureToken(c, 1)
		return &ast.ExitStmt{Start: start, End: kindLeaf.Value.Pos, Kind: kindLeaf.Token}, nil
	})

	continueKeywords := grammar.Or(
		grammar.Capture(1, grammar.T(token.FOR)), grammar.Capture(1, grammar.T(token.DO)),
		grammar.Capture(1, grammar.T(token.WHILE)),
	)
	reg.Define("ContinueStmt", grammar.And(grammar.Capture(0, grammar.T(token.CONTINUE)), continueKeywords), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		kindLeaf := captureToken(c, 1)
		return &ast.ContinueStmt{Start: start, End: kindLeaf.Value.Pos, Kind: kindLeaf.Token}, nil
	})

	reg.Define("GroupTail", grammar.And(
		grammar.Capture(0, grammar.T(token.IDENT)),
		stmtsTerm(1),
		grammar.T(token.END),
		grammar.Capture(2, grammar.T(token.GROUP)),
	), func(c *grammar.Captures) (any, error) {
		return &groupTail{
			intoName: captureTokenText(c, 0),
			stmts:    captureStmts(c, 1),
			end:      captureTokenPos(c, 2),
		}, nil
	})

	reg.Define("GroupStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.GROUP)),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.T(token.IN),
		grammar.Capture(2, grammar.NT("Expr")),
		grammar.T(token.BY),
		grammar.Capture(3, grammar.NT("Expr")),
		grammar.T(token.INTO),
		grammar.Capture(4, grammar.NT("GroupTail")),
	), func(c *grammar.Captures) (any, error) {
		return groupStmtParse(c)
	})

	reg.Define("JoinStmt", grammar.And(
		grammar.Capture(0, grammar.T(token.JOIN)),
		grammar.Capture(1, grammar.T(token.IDENT)),
		grammar.T(token.IN),
		grammar.Capture(2, grammar.NT("Expr")),
		grammar.T(token.ON),
		grammar.Capture(3, grammar.NT("Expr")),
		stmtsTerm(4),
		grammar.T(token.END),
		grammar.T(token.JOIN),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		itemName := captureTokenText(c, 1)
		in := captureSingleNode[ast.Expr](c, 2)
		on := captureSingleNode[ast.Expr](c, 3)
		stmts := captureStmts(c, 4)
		end := blockEnd(stmts, start)
		return &ast.JoinStmt{Start: start, End: end, ItemName: itemName, In: in, On: on, Body: block(stmts, start, end)}, nil
	})

	reg.Define("Statement", grammar.Or(
		grammar.Capture(0, grammar.NT("DimStmt")),
		grammar.Capture(0, grammar.NT("ConstStmt")),
		grammar.Capture(0, grammar.NT("IfStmt")),
		grammar.Capture(0, grammar.NT("SelectCaseStmt")),
		grammar.Capture(0, grammar.NT("ForEachStmt")),
		grammar.Capture(0, grammar.NT("ForStmt")),
		grammar.Capture(0, grammar.NT("WhileStmt")),
		grammar.Capture(0, grammar.NT("DoStmt")),
		grammar.Capture(0, grammar.NT("TryStmt")),
		grammar.Capture(0, grammar.NT("ThrowStmt")),
		grammar.Capture(0, grammar.NT("RethrowStmt")),
		grammar.Capture(0, grammar.NT("ExitStmt")),
		grammar.Capture(0, grammar.NT("ContinueStmt")),
		grammar.Capture(0, grammar.NT("GroupStmt")),
		grammar.Capture(0, grammar.NT("JoinStmt")),
		grammar.Capture(0, grammar.NT("ReturnStmt")),
		grammar.Capture(0, grammar.NT("AssignStmt")),
		grammar.Capture(0, grammar.NT("CallStmt")),
	), func(c *grammar.Captures) (any, error) {
		return c.Node(0), nil
	})
}

// catchClause is an internal carrier for a parsed Catch clause's bound
// name and body, since ast.TryStmt flattens these into its own fields
// rather than nesting a dedicated node.
type catchClause struct {
	name  string
	stmts []ast.Stmt
}

// forTail carries the optional Step expression, the loop body, and the
// closing Next position as one value: ForStmt has more independent parts
// (start, name, from, to, step, body, end) than the five-slot capture
// array holds, so the tail past "to" is parsed as its own production and
// folded back in here.
type forTail struct {
	step  ast.Expr
	stmts []ast.Stmt
	end   token.Pos
}

func forStmtParse(c *grammar.Captures) (any, error) {
	start := captureTokenPos(c, 0)
	name := captureTokenText(c, 1)
	from := captureSingleNode[ast.Expr](c, 2)
	to := captureSingleNode[ast.Expr](c, 3)
	tail := c.Get(4).(*forTail)
	return &ast.ForStmt{
		Start: start, End: tail.end, Name: name, From: from, To: to, Step: tail.step,
		Body: block(tail.stmts, start, tail.end),
	}, nil
}

// groupTail carries the "Into Name ... End Group" tail of a GroupStmt as
// one value, for the same reason forTail exists: more independent parts
// than the five-slot capture array holds.
type groupTail struct {
	intoName string
	stmts    []ast.Stmt
	end      token.Pos
}

func groupStmtParse(c *grammar.Captures) (any, error) {
	start := captureTokenPos(c, 0)
	itemName := captureTokenText(c, 1)
	in := captureSingleNode[ast.Expr](c, 2)
	by := captureSingleNode[ast.Expr](c, 3)
	tail := c.Get(4).(*groupTail)
	return &ast.GroupStmt{
		Start: start, End: tail.end, ItemName: itemName, In: in, By: by, IntoName: tail.intoName,
		Body: block(tail.stmts, start, tail.end),
	}, nil
}
