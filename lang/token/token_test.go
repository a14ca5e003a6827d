package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookup(t *testing.T) {
	require.Equal(t, DIM, Lookup("dim"))
	require.Equal(t, DIM, Lookup("DIM"))
	require.Equal(t, DIM, Lookup("Dim"))
	require.Equal(t, CONTINUE, Lookup("continue"))
	require.Equal(t, EXIT, Lookup("exit"))
	require.NotEqual(t, CONTINUE, EXIT)
	require.Equal(t, IDENT, Lookup("x"))
	require.Equal(t, IDENT, Lookup("dimmer"))
}

func TestIsKeyword(t *testing.T) {
	require.True(t, DIM.IsKeyword())
	require.True(t, WITH.IsKeyword())
	require.False(t, IDENT.IsKeyword())
	require.False(t, PLUS.IsKeyword())
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "dim", DIM.GoString())
}
