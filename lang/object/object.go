package object

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/electroly/quill/lang/persist"
)

// Kind tags the variant an Object holds.
type Kind uint8

const (
	KindString Kind = iota
	KindRecord
	KindValueList
	KindObjectList
	KindValueToValueMap
	KindValueToObjectMap
	KindObjectToValueMap
	KindObjectToObjectMap
	KindOptionalValue
	KindOptionalObject
)

func (k Kind) String() string { return objectKindNames[k] }

var objectKindNames = [...]string{
	KindString:            "String",
	KindRecord:            "Record",
	KindValueList:         "ValueList",
	KindObjectList:        "ObjectList",
	KindValueToValueMap:   "ValueToValueMap",
	KindValueToObjectMap:  "ValueToObjectMap",
	KindObjectToValueMap:  "ObjectToValueMap",
	KindObjectToObjectMap: "ObjectToObjectMap",
	KindOptionalValue:     "OptionalValue",
	KindOptionalObject:    "OptionalObject",
}

// Object is a single tagged union over every heap-allocated value kind the
// language has, rather than an interface with one concrete type per kind:
// the set of kinds is closed and small, and the interpreter's hot paths
// dispatch on Kind directly (mirroring the Opcode-driven switch in the
// bytecode loop) instead of paying for virtual method dispatch or type
// assertions.
type Object struct {
	kind Kind

	str string

	record Record

	valueList  persist.Array[Value]
	objectList persist.Array[*Object]

	v2v persist.Map[Value, Value]
	v2o persist.Map[Value, *Object]
	o2v persist.Map[*Object, Value]
	o2o persist.Map[*Object, *Object]

	optValue    Value
	optObject   *Object
	optHasValue bool
}

// Kind returns the variant tag of o.
func (o *Object) Kind() Kind { return o.kind }

// NewString creates a String object.
func NewString(s string) *Object { return &Object{kind: KindString, str: s} }

// String returns the underlying Go string of a String object. It panics
// if o is not a String.
func (o *Object) String() string {
	if o.kind != KindString {
		panic("object: String() called on a " + o.kind.String())
	}
	return o.str
}

// Field is one name/value pair of a Record.
type Field struct {
	Name  string
	Value any // Value or *Object, per the field's static type
}

// Record is an immutable, ordered collection of named fields. Field order
// is fixed by the record's type and preserved across Set, so field access
// by declared position (used by the bytecode's record opcodes) stays
// stable.
type Record struct {
	fields persist.Array[Field]
	index  map[string]int
}

// NewRecord builds a Record with the given fields, in order.
func NewRecord(fields ...Field) *Object {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return &Object{kind: KindRecord, record: Record{fields: persist.NewArray(fields...), index: idx}}
}

// FieldCount returns the number of fields in a Record object.
func (o *Object) FieldCount() int {
	o.mustBe(KindRecord)
	return o.record.fields.Len()
}

// FieldAt returns the i-th field of a Record object.
func (o *Object) FieldAt(i int) Field {
	o.mustBe(KindRecord)
	return o.record.fields.Get(i)
}

// FieldByName returns the named field's value and whether it exists.
func (o *Object) FieldByName(name string) (any, bool) {
	o.mustBe(KindRecord)
	i, ok := o.record.index[name]
	if !ok {
		return nil, false
	}
	return o.record.fields.Get(i).Value, true
}

// WithField returns a new Record with the named field set to val, sharing
// structure with o for every other field.
func (o *Object) WithField(name string, val any) *Object {
	o.mustBe(KindRecord)
	i, ok := o.record.index[name]
	if !ok {
		panic("object: unknown record field " + name)
	}
	fields := o.record.fields.Set(i, Field{Name: name, Value: val})
	return &Object{kind: KindRecord, record: Record{fields: fields, index: o.record.index}}
}

// NewValueList builds a List(Of <scalar>) object.
func NewValueList(elems ...Value) *Object {
	return &Object{kind: KindValueList, valueList: persist.NewArray(elems...)}
}

// NewObjectList builds a List(Of <reference type>) object.
func NewObjectList(elems ...*Object) *Object {
	return &Object{kind: KindObjectList, objectList: persist.NewArray(elems...)}
}

// Len returns the number of elements of a ValueList or ObjectList object.
func (o *Object) Len() int {
	switch o.kind {
	case KindValueList:
		return o.valueList.Len()
	case KindObjectList:
		return o.objectList.Len()
	default:
		panic("object: Len() called on a " + o.kind.String())
	}
}

// ValueAt returns the i-th element of a ValueList object.
func (o *Object) ValueAt(i int) Value {
	o.mustBe(KindValueList)
	return o.valueList.Get(i)
}

// ObjectAt returns the i-th element of an ObjectList object.
func (o *Object) ObjectAt(i int) *Object {
	o.mustBe(KindObjectList)
	return o.objectList.Get(i)
}

// WithValueAt returns a new ValueList with index i set to v.
func (o *Object) WithValueAt(i int, v Value) *Object {
	o.mustBe(KindValueList)
	return &Object{kind: KindValueList, valueList: o.valueList.Set(i, v)}
}

// WithObjectAt returns a new ObjectList with index i set to v.
func (o *Object) WithObjectAt(i int, v *Object) *Object {
	o.mustBe(KindObjectList)
	return &Object{kind: KindObjectList, objectList: o.objectList.Set(i, v)}
}

// AppendValue returns a new ValueList with v appended.
func (o *Object) AppendValue(v Value) *Object {
	o.mustBe(KindValueList)
	return &Object{kind: KindValueList, valueList: o.valueList.Append(v)}
}

// AppendObject returns a new ObjectList with v appended.
func (o *Object) AppendObject(v *Object) *Object {
	o.mustBe(KindObjectList)
	return &Object{kind: KindObjectList, objectList: o.objectList.Append(v)}
}

func (o *Object) mustBe(k Kind) {
	if o.kind != k {
		panic(fmt.Sprintf("object: expected %s, got %s", k, o.kind))
	}
}

// hashValue and equalValue / hashObject and equalObject adapt Value and
// *Object (compared by identity, matching the language's reference
// semantics for non-scalar keys) to persist.Map's HashFunc/EqualFunc.
func hashValue(v Value) uint64 {
	// trailing fractional zeros are dropped so that equal values such as
	// 5 and 5.000 hash alike
	s := v.String()
	if strings.Contains(s, ".") {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	h := uint64(14695981039346656037)
	for _, b := range []byte(s) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h
}

func equalValue(a, b Value) bool { return Equal(a, b) }

// hashObject returns an identity hash of the pointer value: objects are
// compared and hashed by reference for map keys of non-scalar element
// type, matching the language's reference-equality rule for
// Record/List/Map keys.
func hashObject(o *Object) uint64 { return uint64(uintptr(unsafe.Pointer(o))) }

func equalObject(a, b *Object) bool { return a == b }

// NewValueToValueMap builds an empty Map(Of <scalar>, <scalar>) object.
func NewValueToValueMap() *Object {
	return &Object{kind: KindValueToValueMap, v2v: persist.NewMap[Value, Value](hashValue, equalValue)}
}

// NewValueToObjectMap builds an empty Map(Of <scalar>, <reference>) object.
func NewValueToObjectMap() *Object {
	return &Object{kind: KindValueToObjectMap, v2o: persist.NewMap[Value, *Object](hashValue, equalValue)}
}

// NewObjectToValueMap builds an empty Map(Of <reference>, <scalar>) object.
func NewObjectToValueMap() *Object {
	return &Object{kind: KindObjectToValueMap, o2v: persist.NewMap[*Object, Value](hashObject, equalObject)}
}

// NewObjectToObjectMap builds an empty Map(Of <reference>, <reference>) object.
func NewObjectToObjectMap() *Object {
	return &Object{kind: KindObjectToObjectMap, o2o: persist.NewMap[*Object, *Object](hashObject, equalObject)}
}

// SetValueToValue returns a new map with key bound to val.
func (o *Object) SetValueToValue(key, val Value) *Object {
	o.mustBe(KindValueToValueMap)
	return &Object{kind: o.kind, v2v: o.v2v.Set(key, val)}
}

// GetValueToValue looks up key in a ValueToValueMap.
func (o *Object) GetValueToValue(key Value) (Value, bool) {
	o.mustBe(KindValueToValueMap)
	return o.v2v.Get(key)
}

// DeleteValueToValue returns a new map with key removed, if present.
func (o *Object) DeleteValueToValue(key Value) *Object {
	o.mustBe(KindValueToValueMap)
	return &Object{kind: o.kind, v2v: o.v2v.Delete(key)}
}

// SetValueToObject returns a new map with key bound to val.
func (o *Object) SetValueToObject(key Value, val *Object) *Object {
	o.mustBe(KindValueToObjectMap)
	return &Object{kind: o.kind, v2o: o.v2o.Set(key, val)}
}

// GetValueToObject looks up key in a ValueToObjectMap.
func (o *Object) GetValueToObject(key Value) (*Object, bool) {
	o.mustBe(KindValueToObjectMap)
	return o.v2o.Get(key)
}

// DeleteValueToObject returns a new map with key removed, if present.
func (o *Object) DeleteValueToObject(key Value) *Object {
	o.mustBe(KindValueToObjectMap)
	return &Object{kind: o.kind, v2o: o.v2o.Delete(key)}
}

// SetObjectToValue returns a new map with key bound to val.
func (o *Object) SetObjectToValue(key *Object, val Value) *Object {
	o.mustBe(KindObjectToValueMap)
	return &Object{kind: o.kind, o2v: o.o2v.Set(key, val)}
}

// GetObjectToValue looks up key in an ObjectToValueMap.
func (o *Object) GetObjectToValue(key *Object) (Value, bool) {
	o.mustBe(KindObjectToValueMap)
	return o.o2v.Get(key)
}

// DeleteObjectToValue returns a new map with key removed, if present.
func (o *Object) DeleteObjectToValue(key *Object) *Object {
	o.mustBe(KindObjectToValueMap)
	return &Object{kind: o.kind, o2v: o.o2v.Delete(key)}
}

// SetObjectToObject returns a new map with key bound to val.
func (o *Object) SetObjectToObject(key, val *Object) *Object {
	o.mustBe(KindObjectToObjectMap)
	return &Object{kind: o.kind, o2o: o.o2o.Set(key, val)}
}

// GetObjectToObject looks up key in an ObjectToObjectMap.
func (o *Object) GetObjectToObject(key *Object) (*Object, bool) {
	o.mustBe(KindObjectToObjectMap)
	return o.o2o.Get(key)
}

// DeleteObjectToObject returns a new map with key removed, if present.
func (o *Object) DeleteObjectToObject(key *Object) *Object {
	o.mustBe(KindObjectToObjectMap)
	return &Object{kind: o.kind, o2o: o.o2o.Delete(key)}
}

// RangeValueToValue calls f for every entry of a ValueToValueMap.
func (o *Object) RangeValueToValue(f func(Value, Value) bool) {
	o.mustBe(KindValueToValueMap)
	o.v2v.Range(f)
}

// RangeValueToObject calls f for every entry of a ValueToObjectMap.
func (o *Object) RangeValueToObject(f func(Value, *Object) bool) {
	o.mustBe(KindValueToObjectMap)
	o.v2o.Range(f)
}

// RangeObjectToValue calls f for every entry of an ObjectToValueMap.
func (o *Object) RangeObjectToValue(f func(*Object, Value) bool) {
	o.mustBe(KindObjectToValueMap)
	o.o2v.Range(f)
}

// RangeObjectToObject calls f for every entry of an ObjectToObjectMap.
func (o *Object) RangeObjectToObject(f func(*Object, *Object) bool) {
	o.mustBe(KindObjectToObjectMap)
	o.o2o.Range(f)
}

// MapLen returns the number of entries of any Map-kind object.
func (o *Object) MapLen() int {
	switch o.kind {
	case KindValueToValueMap:
		return o.v2v.Len()
	case KindValueToObjectMap:
		return o.v2o.Len()
	case KindObjectToValueMap:
		return o.o2v.Len()
	case KindObjectToObjectMap:
		return o.o2o.Len()
	default:
		panic("object: MapLen() called on a " + o.kind.String())
	}
}

// NewOptionalValue wraps a present scalar value.
func NewOptionalValue(v Value) *Object {
	return &Object{kind: KindOptionalValue, optValue: v, optHasValue: true}
}

// NewOptionalValueEmpty builds an absent OptionalValue.
func NewOptionalValueEmpty() *Object { return &Object{kind: KindOptionalValue} }

// NewOptionalObject wraps a present reference value.
func NewOptionalObject(v *Object) *Object {
	return &Object{kind: KindOptionalObject, optObject: v, optHasValue: true}
}

// NewOptionalObjectEmpty builds an absent OptionalObject.
func NewOptionalObjectEmpty() *Object { return &Object{kind: KindOptionalObject} }

// HasValue reports whether an Optional-kind object holds a value.
func (o *Object) HasValue() bool { return o.optHasValue }

// OptionalValue returns the wrapped scalar of an OptionalValue object.
func (o *Object) OptionalValue() Value {
	o.mustBe(KindOptionalValue)
	return o.optValue
}

// OptionalObject returns the wrapped reference of an OptionalObject object.
func (o *Object) OptionalObject() *Object {
	o.mustBe(KindOptionalObject)
	return o.optObject
}
