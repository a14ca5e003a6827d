package persist_test

import (
	"testing"

	"github.com/electroly/quill/lang/persist"
	"github.com/stretchr/testify/require"
)

func TestArrayAppendAndGet(t *testing.T) {
	var a persist.Array[int]
	for i := 0; i < 200; i++ {
		a = a.Append(i)
	}
	require.Equal(t, 200, a.Len())
	for i := 0; i < 200; i++ {
		require.Equal(t, i, a.Get(i))
	}
}

func TestArraySetDoesNotMutateOriginal(t *testing.T) {
	a := persist.NewArray(1, 2, 3, 4, 5)
	b := a.Set(2, 99)
	require.Equal(t, 3, a.Get(2))
	require.Equal(t, 99, b.Get(2))
	require.Equal(t, []int{1, 2, 3, 4, 5}, a.Slice())
	require.Equal(t, []int{1, 2, 99, 4, 5}, b.Slice())
}

func TestArraySetSharesStructure(t *testing.T) {
	var a persist.Array[int]
	for i := 0; i < 100; i++ {
		a = a.Append(i)
	}
	b := a.Set(50, -1)
	for i := 0; i < 100; i++ {
		if i == 50 {
			continue
		}
		require.Equal(t, a.Get(i), b.Get(i))
	}
	require.NotEqual(t, a.Get(50), b.Get(50))
}

func stringHash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func stringEq(a, b string) bool { return a == b }

func TestMapSetGetDelete(t *testing.T) {
	m := persist.NewMap[string, int](stringHash, stringEq)
	m = m.Set("a", 1)
	m = m.Set("b", 2)
	m = m.Set("c", 3)
	require.Equal(t, 3, m.Len())

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	m2 := m.Delete("b")
	require.Equal(t, 2, m2.Len())
	_, ok = m2.Get("b")
	require.False(t, ok)
	// original unaffected
	_, ok = m.Get("b")
	require.True(t, ok)
}

func TestMapSetIsImmutable(t *testing.T) {
	m1 := persist.NewMap[string, int](stringHash, stringEq)
	m1 = m1.Set("x", 1)
	m2 := m1.Set("x", 2)
	v1, _ := m1.Get("x")
	v2, _ := m2.Get("x")
	require.Equal(t, 1, v1)
	require.Equal(t, 2, v2)
}

func TestMapManyEntries(t *testing.T) {
	m := persist.NewMap[string, int](stringHash, stringEq)
	const n = 500
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		k := string(rune('a'+i%26)) + string(rune('A'+(i/26)%26)) + string(rune('0'+i%10))
		keys[i] = k
		m = m.Set(k, i)
	}
	for i, k := range keys {
		v, ok := m.Get(k)
		require.True(t, ok, k)
		require.Equal(t, i, v, k)
	}
}

func TestMapRangeVisitsEveryEntry(t *testing.T) {
	m := persist.NewMap[string, int](stringHash, stringEq)
	m = m.Set("a", 1).Set("b", 2).Set("c", 3)
	seen := map[string]int{}
	m.Range(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	require.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, seen)
}
