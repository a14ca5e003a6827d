package scanner_test

import (
	"testing"

	"github.com/electroly/quill/lang/scanner"
	"github.com/electroly/quill/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, []scanner.Value) {
	t.Helper()
	var s scanner.Scanner
	var errs []string
	s.Init([]byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	var toks []token.Token
	var vals []scanner.Value
	var v scanner.Value
	for {
		tok := s.Scan(&v)
		toks = append(toks, tok)
		vals = append(vals, v)
		if tok == token.EOF {
			break
		}
	}
	require.Empty(t, errs)
	return toks, vals
}

func TestScanDimStatement(t *testing.T) {
	toks, vals := scanAll(t, "dim x as number\n")
	require.Equal(t, []token.Token{
		token.DIM, token.IDENT, token.AS, token.NUMBER, token.EOL, token.EOF,
	}, toks)
	require.Equal(t, "x", vals[1].Raw)
}

func TestScanNumberLiteral(t *testing.T) {
	for _, src := range []string{"123", "1.5", "0.25", "1e10", "1.5e-3", "2E+4"} {
		toks, vals := scanAll(t, src)
		require.Equal(t, token.NUMBERLIT, toks[0], src)
		require.Equal(t, src, vals[0].Raw, src)
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks, vals := scanAll(t, `"hello ""world"""`)
	require.Equal(t, token.STRINGLIT, toks[0])
	require.Equal(t, `hello "world"`, vals[0].String)
}

func TestScanOperators(t *testing.T) {
	toks, _ := scanAll(t, "<> <= >= = < >")
	require.Equal(t, []token.Token{
		token.NEQ, token.LE, token.GE, token.EQ, token.LT, token.GT, token.EOF,
	}, toks)
}

func TestScanComment(t *testing.T) {
	toks, _ := scanAll(t, "dim x ' this is a comment\nx = 1\n")
	require.Equal(t, token.DIM, toks[0])
	require.Contains(t, toks, token.EOL)
}

func TestScanKeywordsCaseInsensitive(t *testing.T) {
	toks, _ := scanAll(t, "Dim DIM dim")
	require.Equal(t, []token.Token{token.DIM, token.DIM, token.DIM, token.EOF}, toks)
}
