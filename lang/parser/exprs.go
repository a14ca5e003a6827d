package parser

import (
	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/token"
)

// binTail is one "(operator, right-operand)" suffix produced by a
// precedence level's *Rest production; the level's own Parse callback
// folds a chain of these onto its head operand into a left-associative
// BinaryExpr tree, following parseBinaryExpression's role in the grounding
// combinator engine.
type binTail struct {
	op    ast.BinaryOp
	right ast.Expr
}

func foldBinary(head ast.Expr, tail []binTail) ast.Expr {
	result := head
	for _, t := range tail {
		start, _ := result.Span()
		_, end := t.right.Span()
		result = &ast.BinaryExpr{Start: start, End: end, Op: t.op, Left: result, Right: t.right}
	}
	return result
}

var cmpOps = map[token.Token]ast.BinaryOp{
	token.EQ: ast.OpEq, token.NEQ: ast.OpNeq,
	token.LT: ast.OpLt, token.LE: ast.OpLe,
	token.GT: ast.OpGt, token.GE: ast.OpGe,
}

func defineExprs(reg *grammar.Registry) {
	reg.Define("Expr", grammar.Capture(0, grammar.NT("OrExpr")), func(c *grammar.Captures) (any, error) {
		return c.Node(0), nil
	})

	// OrExpr = AndExpr { "or" AndExpr } .
	reg.Define("OrExprRest", grammar.And(
		grammar.T(token.OR),
		grammar.Capture(0, grammar.NT("AndExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("OrExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		right := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return append([]binTail{{op: ast.OpOr, right: right}}, tail...), nil
	})
	reg.Define("OrExpr", grammar.And(
		grammar.Capture(0, grammar.NT("AndExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("OrExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return foldBinary(head, tail), nil
	})

	// AndExpr = CmpExpr { "and" CmpExpr } .
	reg.Define("AndExprRest", grammar.And(
		grammar.T(token.AND),
		grammar.Capture(0, grammar.NT("CmpExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("AndExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		right := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return append([]binTail{{op: ast.OpAnd, right: right}}, tail...), nil
	})
	reg.Define("AndExpr", grammar.And(
		grammar.Capture(0, grammar.NT("CmpExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("AndExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return foldBinary(head, tail), nil
	})

	// CmpExpr = AddExpr [ ( "=" | "<>" | "<" | "<=" | ">" | ">=" ) AddExpr ] .
	reg.Define("CmpExpr", grammar.And(
		grammar.Capture(0, grammar.NT("AddExpr")),
		grammar.Capture(1, grammar.Opt(grammar.And(
			grammar.Capture(2, grammar.Or(
				grammar.Capture(2, grammar.T(token.EQ)),
				grammar.Capture(2, grammar.T(token.NEQ)),
				grammar.Capture(2, grammar.T(token.LT)),
				grammar.Capture(2, grammar.T(token.LE)),
				grammar.Capture(2, grammar.T(token.GT)),
				grammar.Capture(2, grammar.T(token.GE)),
			)),
			grammar.Capture(3, grammar.NT("AddExpr")),
		))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.Expr](c, 0)
		if c.Get(3) == nil {
			return head, nil
		}
		opLeaf := captureToken(c, 2)
		right := captureSingleNode[ast.Expr](c, 3)
		start, _ := head.Span()
		_, end := right.Span()
		return &ast.BinaryExpr{Start: start, End: end, Op: cmpOps[opLeaf.Token], Left: head, Right: right}, nil
	})

	// AddExpr = MulExpr { ( "+" | "-" ) MulExpr } .
	reg.Define("AddExprRest", grammar.And(
		grammar.Capture(2, grammar.Or(grammar.Capture(2, grammar.T(token.PLUS)), grammar.Capture(2, grammar.T(token.MINUS)))),
		grammar.Capture(0, grammar.NT("MulExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("AddExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		opLeaf := captureToken(c, 2)
		op := ast.OpAdd
		if opLeaf.Token == token.MINUS {
			op = ast.OpSub
		}
		right := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return append([]binTail{{op: op, right: right}}, tail...), nil
	})
	reg.Define("AddExpr", grammar.And(
		grammar.Capture(0, grammar.NT("MulExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("AddExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return foldBinary(head, tail), nil
	})

	// MulExpr = UnaryExpr { ( "*" | "/" | "mod" ) UnaryExpr } .
	reg.Define("MulExprRest", grammar.And(
		grammar.Capture(2, grammar.Or(
			grammar.Capture(2, grammar.T(token.STAR)),
			grammar.Capture(2, grammar.T(token.SLASH)),
			grammar.Capture(2, grammar.T(token.MOD)),
		)),
		grammar.Capture(0, grammar.NT("UnaryExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("MulExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		opLeaf := captureToken(c, 2)
		var op ast.BinaryOp
		switch opLeaf.Token {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		right := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return append([]binTail{{op: op, right: right}}, tail...), nil
	})
	reg.Define("MulExpr", grammar.And(
		grammar.Capture(0, grammar.NT("UnaryExpr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("MulExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]binTail](c, 1)
		return foldBinary(head, tail), nil
	})

	// UnaryExpr = [ "not" ] ConvertExpr .
	reg.Define("UnaryExpr", grammar.And(
		grammar.Capture(0, grammar.Opt(grammar.T(token.NOT))),
		grammar.Capture(1, grammar.NT("ConvertExpr")),
	), func(c *grammar.Captures) (any, error) {
		val := captureSingleNode[ast.Expr](c, 1)
		if notLeaf := captureTokenOrNull(c, 0); notLeaf != nil {
			_, end := val.Span()
			return &ast.NotExpr{Start: notLeaf.Value.Pos, End: end, Value: val}, nil
		}
		return val, nil
	})

	// ConvertExpr = PostfixExpr [ "as" Type ] .
	reg.Define("ConvertExpr", grammar.And(
		grammar.Capture(0, grammar.NT("PostfixExpr")),
		grammar.Capture(1, grammar.Opt(grammar.And(grammar.T(token.AS), grammar.Capture(2, grammar.NT("Type"))))),
	), func(c *grammar.Captures) (any, error) {
		val := captureSingleNode[ast.Expr](c, 0)
		if c.Get(2) == nil {
			return val, nil
		}
		typ := captureSingleNode[*ast.TypeRef](c, 2)
		start, _ := val.Span()
		_, end := typ.Span()
		return &ast.ConvertExpr{Start: start, End: end, Value: val, Type: typ}, nil
	})

	definePostfixAndAtom(reg)
}

// postfixSuffix is one ".field", "[index]" or "(args...)" suffix chained
// onto a base expression by PostfixExpr.
type postfixSuffix struct {
	field string // set for ".field"
	index ast.Expr
	args  []ast.Expr
	isCall bool
	end   token.Pos
}

func definePostfixAndAtom(reg *grammar.Registry) {
	reg.Define("PostfixSuffixRest", grammar.And(
		grammar.Capture(0, grammar.Or(
			grammar.Capture(0, grammar.NT("DotSuffix")),
			grammar.Capture(0, grammar.NT("IndexSuffix")),
			grammar.Capture(0, grammar.NT("CallSuffix")),
		)),
		grammar.Capture(1, grammar.Opt(grammar.NT("PostfixSuffixRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[postfixSuffix](c, 0)
		tail := captureSingleNodeOrNull[[]postfixSuffix](c, 1)
		return append([]postfixSuffix{head}, tail...), nil
	})

	reg.Define("DotSuffix", grammar.And(
		grammar.T(token.DOT),
		grammar.Capture(0, grammar.T(token.IDENT)),
	), func(c *grammar.Captures) (any, error) {
		leaf := captureToken(c, 0)
		return postfixSuffix{field: leaf.Value.Raw, end: leaf.Value.Pos}, nil
	})

	reg.Define("IndexSuffix", grammar.And(
		grammar.T(token.LBRACK),
		grammar.Capture(0, grammar.NT("Expr")),
		grammar.Capture(1, grammar.T(token.RBRACK)),
	), func(c *grammar.Captures) (any, error) {
		idx := captureSingleNode[ast.Expr](c, 0)
		end := captureTokenPos(c, 1)
		return postfixSuffix{index: idx, end: end}, nil
	})

	reg.Define("CallSuffix", grammar.And(
		grammar.T(token.LPAREN),
		grammar.Capture(0, grammar.Opt(grammar.NT("Expr"))),
		grammar.Capture(1, grammar.Opt(grammar.NT("ExprRest"))),
		grammar.Capture(2, grammar.T(token.RPAREN)),
	), func(c *grammar.Captures) (any, error) {
		var args []ast.Expr
		if head := captureSingleNodeOrNull[ast.Expr](c, 0); head != nil {
			args = append([]ast.Expr{head}, captureSingleNodeOrNull[[]ast.Expr](c, 1)...)
		}
		end := captureTokenPos(c, 2)
		return postfixSuffix{isCall: true, args: args, end: end}, nil
	})

	reg.Define("ExprRest", grammar.And(
		grammar.T(token.COMMA),
		grammar.Capture(0, grammar.NT("Expr")),
		grammar.Capture(1, grammar.Opt(grammar.NT("ExprRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.Expr](c, 0)
		tail := captureSingleNodeOrNull[[]ast.Expr](c, 1)
		return append([]ast.Expr{head}, tail...), nil
	})

	reg.Define("PostfixExpr", grammar.And(
		grammar.Capture(0, grammar.NT("Atom")),
		grammar.Capture(1, grammar.Opt(grammar.NT("PostfixSuffixRest"))),
	), func(c *grammar.Captures) (any, error) {
		base := captureSingleNode[ast.Expr](c, 0)
		suffixes := captureSingleNodeOrNull[[]postfixSuffix](c, 1)
		for _, s := range suffixes {
			start, _ := base.Span()
			switch {
			case s.isCall:
				base = &ast.CallExpr{Start: start, End: s.end, Callee: base, Args: s.args}
			case s.index != nil:
				base = &ast.DottedExpr{Start: start, End: s.end, Base: base, Index: s.index}
			default:
				base = &ast.DottedExpr{Start: start, End: s.end, Base: base, Field: s.field}
			}
		}
		return base, nil
	})

	reg.Define("RecordFieldInit", grammar.And(
		grammar.Capture(0, grammar.T(token.IDENT)),
		grammar.T(token.COLON),
		grammar.Capture(1, grammar.NT("Expr")),
	), func(c *grammar.Captures) (any, error) {
		name := captureTokenText(c, 0)
		val := captureSingleNode[ast.Expr](c, 1)
		return ast.RecordFieldInit{Name: name, Value: val}, nil
	})

	reg.Define("RecordFieldInitRest", grammar.And(
		grammar.T(token.COMMA),
		grammar.Capture(0, grammar.NT("RecordFieldInit")),
		grammar.Capture(1, grammar.Opt(grammar.NT("RecordFieldInitRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[ast.RecordFieldInit](c, 0)
		tail := captureSingleNodeOrNull[[]ast.RecordFieldInit](c, 1)
		return append([]ast.RecordFieldInit{head}, tail...), nil
	})

	reg.Define("Atom", grammar.Or(
		grammar.Capture(0, grammar.T(token.BOOLEANLIT)),
		grammar.Capture(0, grammar.T(token.NUMBERLIT)),
		grammar.Capture(0, grammar.T(token.STRINGLIT)),
		grammar.Capture(0, grammar.NT("ArrayOrRecordLiteral")),
		grammar.And(grammar.T(token.LPAREN), grammar.Capture(1, grammar.NT("Expr")), grammar.T(token.RPAREN)),
		grammar.Capture(0, grammar.T(token.IDENT)),
	), func(c *grammar.Captures) (any, error) {
		if paren := c.Get(1); paren != nil {
			return paren.(ast.Expr), nil
		}
		v := c.Node(0)
		leaf, ok := v.(*grammar.Leaf)
		if !ok {
			return v.(ast.Expr), nil
		}
		switch leaf.Token {
		case token.BOOLEANLIT:
			return &ast.LiteralBoolExpr{Start: leaf.Value.Pos, End: leaf.Value.Pos, Value: leaf.Value.Bool}, nil
		case token.NUMBERLIT:
			return &ast.LiteralNumberExpr{Start: leaf.Value.Pos, End: leaf.Value.Pos, Raw: leaf.Value.Raw}, nil
		case token.STRINGLIT:
			return &ast.LiteralStringExpr{Start: leaf.Value.Pos, End: leaf.Value.Pos, Value: leaf.Value.String}, nil
		default: // IDENT
			return &ast.SymbolExpr{Start: leaf.Value.Pos, End: leaf.Value.Pos, Name: leaf.Value.Raw}, nil
		}
	})

	// ArrayOrRecordLiteral disambiguates "{" "}" (empty array), "{ expr,
	// ... }" (array) and "{ ident: expr, ... }" (record) by trying the
	// record-field shape first under a cut, falling back to the array
	// shape otherwise.
	reg.Define("ArrayOrRecordLiteral", grammar.Or(
		grammar.Capture(0, grammar.And(
			grammar.Capture(1, grammar.T(token.LBRACE)),
			grammar.Capture(2, grammar.NT("RecordFieldInit")),
			grammar.CutTerm(),
			grammar.Capture(3, grammar.Opt(grammar.NT("RecordFieldInitRest"))),
			grammar.Capture(4, grammar.T(token.RBRACE)),
		)),
		grammar.Capture(0, grammar.And(
			grammar.Capture(1, grammar.T(token.LBRACE)),
			grammar.Capture(2, grammar.Opt(grammar.NT("Expr"))),
			grammar.Capture(3, grammar.Opt(grammar.NT("ExprRest"))),
			grammar.Capture(4, grammar.T(token.RBRACE)),
		)),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 1)
		end := captureTokenPos(c, 4)
		if fi, ok := c.Get(2).(ast.RecordFieldInit); ok {
			rest := captureSingleNodeOrNull[[]ast.RecordFieldInit](c, 3)
			return &ast.LiteralRecordExpr{Start: start, End: end, Fields: append([]ast.RecordFieldInit{fi}, rest...)}, nil
		}
		var elems []ast.Expr
		if head := captureSingleNodeOrNull[ast.Expr](c, 2); head != nil {
			elems = append([]ast.Expr{head}, captureSingleNodeOrNull[[]ast.Expr](c, 3)...)
		}
		return &ast.LiteralArrayExpr{Start: start, End: end, Elems: elems}, nil
	})
}
