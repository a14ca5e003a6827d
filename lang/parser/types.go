package parser

import (
	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/token"
)

var scalarKinds = map[token.Token]ast.TypeKind{
	token.BOOLEAN:        ast.TypeBoolean,
	token.NUMBER:         ast.TypeNumber,
	token.STRING:         ast.TypeString,
	token.DATE:           ast.TypeDate,
	token.DATETIME:       ast.TypeDateTime,
	token.DATETIMEOFFSET: ast.TypeDateTimeOffset,
	token.TIMESPAN:       ast.TypeTimeSpan,
	token.TIMEZONE:       ast.TypeTimeZone,
}

func defineTypes(reg *grammar.Registry) {
	reg.Define("ScalarType", grammar.Or(
		grammar.Capture(0, grammar.T(token.BOOLEAN)),
		grammar.Capture(0, grammar.T(token.NUMBER)),
		grammar.Capture(0, grammar.T(token.STRING)),
		grammar.Capture(0, grammar.T(token.DATE)),
		grammar.Capture(0, grammar.T(token.DATETIME)),
		grammar.Capture(0, grammar.T(token.DATETIMEOFFSET)),
		grammar.Capture(0, grammar.T(token.TIMESPAN)),
		grammar.Capture(0, grammar.T(token.TIMEZONE)),
	), func(c *grammar.Captures) (any, error) {
		leaf := captureToken(c, 0)
		return &ast.TypeRef{Start: leaf.Value.Pos, End: leaf.Value.Pos, Kind: scalarKinds[leaf.Token]}, nil
	})

	reg.Define("ListType", grammar.And(
		grammar.Capture(0, grammar.T(token.LIST)),
		grammar.T(token.OF),
		grammar.Capture(1, grammar.NT("Type")),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		of := captureSingleNode[*ast.TypeRef](c, 1)
		_, end := of.Span()
		return &ast.TypeRef{Start: start, End: end, Kind: ast.TypeList, Of: of}, nil
	})

	reg.Define("MapType", grammar.And(
		grammar.Capture(0, grammar.T(token.MAP)),
		grammar.T(token.OF),
		grammar.Capture(1, grammar.NT("Type")),
		grammar.T(token.TO),
		grammar.Capture(2, grammar.NT("Type")),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		key := captureSingleNode[*ast.TypeRef](c, 1)
		val := captureSingleNode[*ast.TypeRef](c, 2)
		_, end := val.Span()
		return &ast.TypeRef{Start: start, End: end, Kind: ast.TypeMap, Key: key, Value: val}, nil
	})

	reg.Define("OptionalType", grammar.And(
		grammar.Capture(0, grammar.T(token.OPTIONAL)),
		grammar.Capture(1, grammar.NT("Type")),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		of := captureSingleNode[*ast.TypeRef](c, 1)
		_, end := of.Span()
		return &ast.TypeRef{Start: start, End: end, Kind: ast.TypeOptional, Of: of}, nil
	})

	reg.Define("Field", grammar.And(
		grammar.Capture(0, grammar.T(token.IDENT)),
		grammar.T(token.AS),
		grammar.Capture(1, grammar.NT("Type")),
	), func(c *grammar.Captures) (any, error) {
		nameLeaf := captureToken(c, 0)
		typ := captureSingleNode[*ast.TypeRef](c, 1)
		return &ast.Field{NamePos: nameLeaf.Value.Pos, Name: nameLeaf.Value.Raw, Type: typ}, nil
	})

	reg.Define("FieldRest", grammar.And(
		grammar.T(token.COMMA),
		grammar.Capture(0, grammar.NT("Field")),
		grammar.Capture(1, grammar.Opt(grammar.NT("FieldRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[*ast.Field](c, 0)
		tail := captureSingleNodeOrNull[[]*ast.Field](c, 1)
		return append([]*ast.Field{head}, tail...), nil
	})

	reg.Define("RecordType", grammar.And(
		grammar.Capture(0, grammar.T(token.RECORD)),
		grammar.T(token.LPAREN),
		grammar.Capture(1, grammar.NT("Field")),
		grammar.Capture(2, grammar.Opt(grammar.NT("FieldRest"))),
		grammar.Capture(3, grammar.T(token.RPAREN)),
	), func(c *grammar.Captures) (any, error) {
		start := captureTokenPos(c, 0)
		head := captureSingleNode[*ast.Field](c, 1)
		tail := captureSingleNodeOrNull[[]*ast.Field](c, 2)
		end := captureTokenPos(c, 3)
		return &ast.TypeRef{Start: start, End: end, Kind: ast.TypeRecord, Fields: append([]*ast.Field{head}, tail...)}, nil
	})

	reg.Define("Type", grammar.Or(
		grammar.Capture(0, grammar.NT("ScalarType")),
		grammar.Capture(0, grammar.NT("ListType")),
		grammar.Capture(0, grammar.NT("MapType")),
		grammar.Capture(0, grammar.NT("OptionalType")),
		grammar.Capture(0, grammar.NT("RecordType")),
		grammar.Capture(0, grammar.T(token.IDENT)),
	), func(c *grammar.Captures) (any, error) {
		v := c.Node(0)
		if leaf, ok := v.(*grammar.Leaf); ok {
			return &ast.TypeRef{Start: leaf.Value.Pos, End: leaf.Value.Pos, Kind: ast.TypeNamed, Fields: nil}, nil
		}
		return v.(*ast.TypeRef), nil
	})

	reg.Define("Param", grammar.And(
		grammar.Capture(0, grammar.T(token.IDENT)),
		grammar.T(token.AS),
		grammar.Capture(1, grammar.NT("Type")),
	), func(c *grammar.Captures) (any, error) {
		nameLeaf := captureToken(c, 0)
		typ := captureSingleNode[*ast.TypeRef](c, 1)
		return &ast.Parameter{NamePos: nameLeaf.Value.Pos, Name: nameLeaf.Value.Raw, Type: typ}, nil
	})

	reg.Define("ParamRest", grammar.And(
		grammar.T(token.COMMA),
		grammar.Capture(0, grammar.NT("Param")),
		grammar.Capture(1, grammar.Opt(grammar.NT("ParamRest"))),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNode[*ast.Parameter](c, 0)
		tail := captureSingleNodeOrNull[[]*ast.Parameter](c, 1)
		return append([]*ast.Parameter{head}, tail...), nil
	})

	reg.Define("ParamList", grammar.And(
		grammar.T(token.LPAREN),
		grammar.Capture(0, grammar.Opt(grammar.NT("Param"))),
		grammar.Capture(1, grammar.Opt(grammar.NT("ParamRest"))),
		grammar.T(token.RPAREN),
	), func(c *grammar.Captures) (any, error) {
		head := captureSingleNodeOrNull[*ast.Parameter](c, 0)
		if head == nil {
			return []*ast.Parameter(nil), nil
		}
		tail := captureSingleNodeOrNull[[]*ast.Parameter](c, 1)
		return append([]*ast.Parameter{head}, tail...), nil
	})
}
