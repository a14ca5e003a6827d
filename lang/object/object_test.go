package object_test

import (
	"testing"

	"github.com/electroly/quill/lang/object"
	"github.com/stretchr/testify/require"
)

func TestValueArithmetic(t *testing.T) {
	a := object.NewFromInt64(10)
	b := object.NewFromInt64(3)
	require.Equal(t, "13", object.Add(a, b).String())
	require.Equal(t, "7", object.Sub(a, b).String())
	require.Equal(t, "30", object.Mul(a, b).String())

	q, err := object.Div(a, b)
	require.NoError(t, err)
	require.Equal(t, 1, object.Cmp(object.Mul(q, b), object.NewFromInt64(9)))

	_, err = object.Div(a, object.Zero)
	require.ErrorIs(t, err, object.ErrDivideByZero)
}

func TestValueModSignFollowsDividend(t *testing.T) {
	tenNeg := object.NewFromInt64(-10)
	three := object.NewFromInt64(3)
	r, err := object.Mod(tenNeg, three)
	require.NoError(t, err)
	require.Equal(t, "-1", r.String())

	ten := object.NewFromInt64(10)
	threeNeg := object.NewFromInt64(-3)
	r2, err := object.Mod(ten, threeNeg)
	require.NoError(t, err)
	require.Equal(t, "1", r2.String())
}

func TestValueFromStringDecimal(t *testing.T) {
	v, err := object.NewFromString("1.5")
	require.NoError(t, err)
	require.Equal(t, "1.5", v.String())

	_, err = object.NewFromString("not-a-number")
	require.Error(t, err)
}

func TestValueNegAndEqual(t *testing.T) {
	v := object.NewFromInt64(5)
	require.True(t, object.Equal(v.Neg().Neg(), v))
	require.Equal(t, "-5", v.Neg().String())
	require.True(t, object.Zero.IsZero())
}

func TestStringObject(t *testing.T) {
	s := object.NewString("hello")
	require.Equal(t, object.KindString, s.Kind())
	require.Equal(t, "hello", s.String())
}

func TestRecordFieldsAreOrderedAndNamed(t *testing.T) {
	r := object.NewRecord(
		object.Field{Name: "x", Value: object.NewFromInt64(1)},
		object.Field{Name: "y", Value: object.NewFromInt64(2)},
	)
	require.Equal(t, 2, r.FieldCount())
	require.Equal(t, "x", r.FieldAt(0).Name)

	v, ok := r.FieldByName("y")
	require.True(t, ok)
	require.True(t, object.Equal(v.(object.Value), object.NewFromInt64(2)))

	r2 := r.WithField("x", object.NewFromInt64(99))
	v0, _ := r2.FieldByName("x")
	require.True(t, object.Equal(v0.(object.Value), object.NewFromInt64(99)))
	orig, _ := r.FieldByName("x")
	require.True(t, object.Equal(orig.(object.Value), object.NewFromInt64(1)))
}

func TestValueListAppendAndSetAreImmutable(t *testing.T) {
	l := object.NewValueList(object.NewFromInt64(1), object.NewFromInt64(2))
	require.Equal(t, 2, l.Len())

	l2 := l.AppendValue(object.NewFromInt64(3))
	require.Equal(t, 3, l2.Len())
	require.Equal(t, 2, l.Len())

	l3 := l.WithValueAt(0, object.NewFromInt64(42))
	require.True(t, object.Equal(l3.ValueAt(0), object.NewFromInt64(42)))
	require.True(t, object.Equal(l.ValueAt(0), object.NewFromInt64(1)))
}

func TestObjectListHoldsReferences(t *testing.T) {
	a := object.NewString("a")
	b := object.NewString("b")
	l := object.NewObjectList(a, b)
	require.Equal(t, 2, l.Len())
	require.Same(t, a, l.ObjectAt(0))

	l2 := l.AppendObject(object.NewString("c"))
	require.Equal(t, 3, l2.Len())
	require.Equal(t, 2, l.Len())
}

func TestValueToValueMap(t *testing.T) {
	m := object.NewValueToValueMap()
	m = m.SetValueToValue(object.NewFromInt64(1), object.NewFromInt64(100))
	m2 := m.SetValueToValue(object.NewFromInt64(2), object.NewFromInt64(200))

	v, ok := m2.GetValueToValue(object.NewFromInt64(1))
	require.True(t, ok)
	require.True(t, object.Equal(v, object.NewFromInt64(100)))
	require.Equal(t, 1, m.MapLen())
	require.Equal(t, 2, m2.MapLen())

	m3 := m2.DeleteValueToValue(object.NewFromInt64(1))
	require.Equal(t, 1, m3.MapLen())
	_, ok = m3.GetValueToValue(object.NewFromInt64(1))
	require.False(t, ok)
}

func TestObjectToObjectMapUsesReferenceEquality(t *testing.T) {
	keyA := object.NewString("a")
	keyB := object.NewString("a") // distinct object, same contents
	m := object.NewObjectToObjectMap()
	m = m.SetObjectToObject(keyA, object.NewString("valueForA"))

	_, ok := m.GetObjectToObject(keyB)
	require.False(t, ok, "distinct objects with equal contents must not collide")

	v, ok := m.GetObjectToObject(keyA)
	require.True(t, ok)
	require.Equal(t, "valueForA", v.String())
}

func TestOptionalValue(t *testing.T) {
	empty := object.NewOptionalValueEmpty()
	require.False(t, empty.HasValue())

	present := object.NewOptionalValue(object.NewFromInt64(7))
	require.True(t, present.HasValue())
	require.True(t, object.Equal(present.OptionalValue(), object.NewFromInt64(7)))
}

func TestOptionalObject(t *testing.T) {
	empty := object.NewOptionalObjectEmpty()
	require.False(t, empty.HasValue())

	present := object.NewOptionalObject(object.NewString("s"))
	require.True(t, present.HasValue())
	require.Equal(t, "s", present.OptionalObject().String())
}
