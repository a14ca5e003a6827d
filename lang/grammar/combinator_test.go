package grammar_test

import (
	"testing"

	"github.com/electroly/quill/lang/grammar"
	"github.com/electroly/quill/lang/scanner"
	"github.com/electroly/quill/lang/token"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) ([]token.Token, []scanner.Value) {
	t.Helper()
	var s scanner.Scanner
	s.Init([]byte(src), nil)
	var toks []token.Token
	var vals []scanner.Value
	var v scanner.Value
	for {
		tok := s.Scan(&v)
		if tok == token.EOL {
			continue
		}
		toks = append(toks, tok)
		vals = append(vals, v)
		if tok == token.EOF {
			break
		}
	}
	return toks, vals
}

// TestOrTriesAlternativesInOrder verifies that Or commits to the first
// matching alternative and that a failed alternative fully reverts any
// position it had advanced.
func TestOrTriesAlternativesInOrder(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Define("root", grammar.Or(
		grammar.And(grammar.T(token.DIM), grammar.T(token.STRINGLIT)),
		grammar.And(grammar.T(token.DIM), grammar.T(token.IDENT)),
	), func(c *grammar.Captures) (any, error) { return "matched", nil })
	require.NoError(t, reg.Freeze())

	toks, vals := scan(t, "dim x")
	d := grammar.NewDriver(reg, toks, vals)
	got, err := d.Parse("root")
	require.NoError(t, err)
	require.Equal(t, "matched", got)
}

// TestCutCommitsAlternative verifies that once a Cut is passed inside an
// Or alternative, a later failure in that same alternative is a hard
// failure: Or does not fall through to try the next alternative.
func TestCutCommitsAlternative(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Define("root", grammar.Or(
		grammar.And(grammar.T(token.DIM), grammar.CutTerm(), grammar.T(token.STRINGLIT)),
		grammar.And(grammar.T(token.DIM), grammar.T(token.IDENT)),
	), func(c *grammar.Captures) (any, error) { return "matched", nil })
	require.NoError(t, reg.Freeze())

	toks, vals := scan(t, "dim x")
	d := grammar.NewDriver(reg, toks, vals)
	_, err := d.Parse("root")
	require.Error(t, err)
}

// TestCaptureAndExtract exercises the Capture/Captures round trip used by
// every production's Parse callback.
func TestCaptureAndExtract(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Define("root", grammar.And(
		grammar.T(token.DIM),
		grammar.Capture(0, grammar.T(token.IDENT)),
	), func(c *grammar.Captures) (any, error) {
		leaf := c.Leaf(0)
		return leaf.Value.Raw, nil
	})
	require.NoError(t, reg.Freeze())

	toks, vals := scan(t, "dim count")
	d := grammar.NewDriver(reg, toks, vals)
	got, err := d.Parse("root")
	require.NoError(t, err)
	require.Equal(t, "count", got)
}

// TestZeroOrMoreCollectsAll verifies Star accumulates every repetition and
// stops without error when the pattern no longer matches.
func TestZeroOrMoreCollectsAll(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Define("root", grammar.And(
		grammar.Capture(0, grammar.Star(grammar.Capture(1, grammar.T(token.COMMA)))),
		grammar.T(token.EOF),
	), func(c *grammar.Captures) (any, error) {
		return len(c.List(0)), nil
	})
	require.NoError(t, reg.Freeze())

	toks, vals := scan(t, ",,,")
	d := grammar.NewDriver(reg, toks, vals)
	got, err := d.Parse("root")
	require.NoError(t, err)
	require.Equal(t, 3, got)
}

// TestOrRevertsCapturesFromFailedAlternative verifies that a capture made
// while trying an Or alternative that later fails does not survive into
// whichever alternative finally succeeds: "fully reverts" has to cover
// capture state, not just token position.
func TestOrRevertsCapturesFromFailedAlternative(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Define("root", grammar.Or(
		grammar.And(grammar.Capture(0, grammar.T(token.IDENT)), grammar.T(token.STRINGLIT)),
		grammar.T(token.IDENT),
	), func(c *grammar.Captures) (any, error) {
		return c.Get(0), nil
	})
	require.NoError(t, reg.Freeze())

	toks, vals := scan(t, "x")
	d := grammar.NewDriver(reg, toks, vals)
	got, err := d.Parse("root")
	require.NoError(t, err)
	require.Nil(t, got, "capture from the failed first alternative must not survive into the second")
}

func TestUndefinedProductionFailsFreeze(t *testing.T) {
	reg := grammar.NewRegistry()
	reg.Define("root", grammar.NT("missing"), nil)
	require.Error(t, reg.Freeze())
}
