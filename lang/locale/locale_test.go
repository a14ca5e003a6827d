package locale_test

import (
	"testing"

	"github.com/electroly/quill/lang/locale"
	"github.com/stretchr/testify/require"
)

func TestAvailableLocalesSorted(t *testing.T) {
	tags := locale.AvailableLocales()
	require.NotEmpty(t, tags)
	for i := 1; i < len(tags); i++ {
		require.LessOrEqual(t, tags[i-1], tags[i])
	}
	require.True(t, locale.Known("en-US"))
	require.False(t, locale.Known("xx-XX"))
}

func TestCharacters(t *testing.T) {
	chars := locale.Characters("en-US", "abc")
	require.Equal(t, []string{"a", "b", "c"}, chars)
}

func TestChr(t *testing.T) {
	require.Equal(t, "A", locale.Chr(65))
	require.Equal(t, "", locale.Chr(-1))
}

func TestTurkishCasing(t *testing.T) {
	require.Equal(t, "İ", locale.ToUpper("tr-TR", "i"))
	require.Equal(t, "I", locale.ToUpper("en-US", "i"))
}

func TestCompareString(t *testing.T) {
	require.Equal(t, 0, locale.CompareString("en-US", "Go", "go"))
	require.Equal(t, -1, locale.CompareString("en-US", "a", "b"))
}
