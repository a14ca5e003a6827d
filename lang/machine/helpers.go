package machine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/electroly/quill/lang/object"
)

// stringMid implements the StringMid opcode's substring semantics: a
// 1-based start index and a length, both clamped to the string's rune
// bounds rather than erroring.
func stringMid(s string, start, length int64) string {
	runes := []rune(s)
	n := int64(len(runes))
	i := start - 1
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	end := i + length
	if length < 0 || end > n {
		end = n
	}
	if end < i {
		end = i
	}
	return string(runes[i:end])
}

// stringIndexOf returns the 1-based rune index of the first occurrence of
// needle in s, or 0 if absent, matching the language's 1-based indexing
// convention for string positions.
func stringIndexOf(s, needle string) int {
	i := strings.Index(s, needle)
	if i < 0 {
		return 0
	}
	return utf8.RuneCountInString(s[:i]) + 1
}

// stringAsc returns the numeric code point of the first rune of s, or 0
// for an empty string, backing the Asc/Chr built-in pair.
func stringAsc(s string) int64 {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return int64(r)
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s
}

func recordSlotValue(o *object.Object, i int) object.Value {
	v, ok := o.FieldByName(fmt.Sprintf("v%d", i))
	if !ok {
		fatalf("record has no value field %d", i)
	}
	val, ok := v.(object.Value)
	if !ok {
		fatalf("record field v%d is not a scalar", i)
	}
	return val
}

func recordSlotObject(o *object.Object, i int) *object.Object {
	v, ok := o.FieldByName(fmt.Sprintf("o%d", i))
	if !ok {
		fatalf("record has no object field %d", i)
	}
	val, _ := v.(*object.Object)
	return val
}

func recordWithValue(o *object.Object, i int, v object.Value) *object.Object {
	name := fmt.Sprintf("v%d", i)
	if _, ok := o.FieldByName(name); !ok {
		fatalf("record has no value field %d", i)
	}
	return o.WithField(name, v)
}

func recordWithObject(o *object.Object, i int, v *object.Object) *object.Object {
	name := fmt.Sprintf("o%d", i)
	if _, ok := o.FieldByName(name); !ok {
		fatalf("record has no object field %d", i)
	}
	return o.WithField(name, v)
}

func valueListInsert(list *object.Object, i int, v object.Value) *object.Object {
	n := list.Len()
	if i < 0 || i > n {
		fatalf("value list insert index %d out of range (len %d)", i, n)
	}
	elems := make([]object.Value, 0, n+1)
	for j := 0; j < i; j++ {
		elems = append(elems, list.ValueAt(j))
	}
	elems = append(elems, v)
	for j := i; j < n; j++ {
		elems = append(elems, list.ValueAt(j))
	}
	return object.NewValueList(elems...)
}

func valueListRemove(list *object.Object, i int) *object.Object {
	n := list.Len()
	if i < 0 || i >= n {
		fatalf("value list remove index %d out of range (len %d)", i, n)
	}
	elems := make([]object.Value, 0, n-1)
	for j := 0; j < n; j++ {
		if j != i {
			elems = append(elems, list.ValueAt(j))
		}
	}
	return object.NewValueList(elems...)
}

// objectListFromAny adapts a builder's generic object.Value|*object.Object
// field slice (shared with Record field storage) down to a plain
// []*object.Object for ObjectListBuilderEnd.
func objectListFromAny(fields []any) *object.Object {
	elems := make([]*object.Object, len(fields))
	for i, f := range fields {
		elems[i], _ = f.(*object.Object)
	}
	return object.NewObjectList(elems...)
}

func objectListInsert(list *object.Object, i int, v *object.Object) *object.Object {
	n := list.Len()
	if i < 0 || i > n {
		fatalf("object list insert index %d out of range (len %d)", i, n)
	}
	elems := make([]*object.Object, 0, n+1)
	for j := 0; j < i; j++ {
		elems = append(elems, list.ObjectAt(j))
	}
	elems = append(elems, v)
	for j := i; j < n; j++ {
		elems = append(elems, list.ObjectAt(j))
	}
	return object.NewObjectList(elems...)
}

func objectListRemove(list *object.Object, i int) *object.Object {
	n := list.Len()
	if i < 0 || i >= n {
		fatalf("object list remove index %d out of range (len %d)", i, n)
	}
	elems := make([]*object.Object, 0, n-1)
	for j := 0; j < n; j++ {
		if j != i {
			elems = append(elems, list.ObjectAt(j))
		}
	}
	return object.NewObjectList(elems...)
}

func v2vKeys(m *object.Object) *object.Object {
	var keys []object.Value
	m.RangeValueToValue(func(k, _ object.Value) bool {
		keys = append(keys, k)
		return true
	})
	return object.NewValueList(keys...)
}

func v2vValues(m *object.Object) *object.Object {
	var vals []object.Value
	m.RangeValueToValue(func(_, v object.Value) bool {
		vals = append(vals, v)
		return true
	})
	return object.NewValueList(vals...)
}

func v2oKeys(m *object.Object) *object.Object {
	var keys []object.Value
	m.RangeValueToObject(func(k object.Value, _ *object.Object) bool {
		keys = append(keys, k)
		return true
	})
	return object.NewValueList(keys...)
}

func v2oValues(m *object.Object) *object.Object {
	var vals []*object.Object
	m.RangeValueToObject(func(_ object.Value, v *object.Object) bool {
		vals = append(vals, v)
		return true
	})
	return object.NewObjectList(vals...)
}

func o2vKeys(m *object.Object) *object.Object {
	var keys []*object.Object
	m.RangeObjectToValue(func(k *object.Object, _ object.Value) bool {
		keys = append(keys, k)
		return true
	})
	return object.NewObjectList(keys...)
}

func o2vValues(m *object.Object) *object.Object {
	var vals []object.Value
	m.RangeObjectToValue(func(_ *object.Object, v object.Value) bool {
		vals = append(vals, v)
		return true
	})
	return object.NewValueList(vals...)
}

func o2oKeys(m *object.Object) *object.Object {
	var keys []*object.Object
	m.RangeObjectToObject(func(k, _ *object.Object) bool {
		keys = append(keys, k)
		return true
	})
	return object.NewObjectList(keys...)
}

func o2oValues(m *object.Object) *object.Object {
	var vals []*object.Object
	m.RangeObjectToObject(func(_, v *object.Object) bool {
		vals = append(vals, v)
		return true
	})
	return object.NewObjectList(vals...)
}
