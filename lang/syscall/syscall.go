// Package syscall builds the system call table the interpreter dispatches
// SystemCall instructions through: three locale-aware built-ins
// (AvailableLocales, Characters, Chr) plus a set of supplemental
// string/path built-ins (ToUpper, ToLower, Trim family, Len, IndexOf,
// CompareString, PathCombine, PathExists).
//
// Argument-passing convention: every call here takes its String arguments
// from the object stack at offsets 0, 1, ... (nearest argument first) and
// its Number arguments from the value stack the same way, leaving it to
// the caller (a code generator, or a hand-assembled test program) to push
// them before emitting SystemCall and to PopObjects/PopValues the count
// the SyscallResult reports.
package syscall

import (
	"os"
	"path/filepath"

	"github.com/electroly/quill/lang/locale"
	"github.com/electroly/quill/lang/machine"
	"github.com/electroly/quill/lang/object"
)

// Numbered identifiers for Call<u16> operands. Stable once assigned: a
// code generator or persisted program may reference these across builds.
const (
	AvailableLocales uint16 = iota
	Characters
	Chr
	ToUpper
	ToLower
	Trim
	TrimStart
	TrimEnd
	Len
	IndexOf
	CompareString
	PathCombine
	PathExists
)

// New builds the default system call table.
func New() machine.SyscallTable {
	return machine.SyscallTable{
		AvailableLocales: availableLocales,
		Characters:       characters,
		Chr:              chr,
		ToUpper:          toUpper,
		ToLower:          toLower,
		Trim:             trim,
		TrimStart:        trimStart,
		TrimEnd:          trimEnd,
		Len:              length,
		IndexOf:          indexOf,
		CompareString:    compareString,
		PathCombine:      pathCombine,
		PathExists:       pathExists,
	}
}

// stringList builds an ObjectList of String objects.
func stringList(ss []string) *object.Object {
	objs := make([]*object.Object, len(ss))
	for i, s := range ss {
		objs[i] = object.NewString(s)
	}
	return object.NewObjectList(objs...)
}

func availableLocales(_ *machine.Interpreter) machine.SyscallResult {
	return machine.SyscallResult{X: stringList(locale.AvailableLocales()), SetX: true}
}

// characters takes (String, String locale) from the object stack, nearest
// first: offset 0 is the locale tag, offset 1 is the subject string.
func characters(m *machine.Interpreter) machine.SyscallResult {
	loc := m.PeekObject(0).String()
	s := m.PeekObject(1).String()
	return machine.SyscallResult{
		X: stringList(locale.Characters(loc, s)), SetX: true,
		PopObjects: 2,
	}
}

// chr takes a Number code point from the value stack at offset 0.
func chr(m *machine.Interpreter) machine.SyscallResult {
	code := m.PeekValue(0)
	return machine.SyscallResult{
		X: object.NewString(locale.Chr(code.Int64())), SetX: true,
		PopValues: 1,
	}
}

// toUpper/toLower take (String subject, String locale), nearest first.
func toUpper(m *machine.Interpreter) machine.SyscallResult {
	loc := m.PeekObject(0).String()
	s := m.PeekObject(1).String()
	return machine.SyscallResult{X: object.NewString(locale.ToUpper(loc, s)), SetX: true, PopObjects: 2}
}

func toLower(m *machine.Interpreter) machine.SyscallResult {
	loc := m.PeekObject(0).String()
	s := m.PeekObject(1).String()
	return machine.SyscallResult{X: object.NewString(locale.ToLower(loc, s)), SetX: true, PopObjects: 2}
}

func trim(m *machine.Interpreter) machine.SyscallResult {
	s := m.PeekObject(0).String()
	return machine.SyscallResult{X: object.NewString(trimSpace(s)), SetX: true, PopObjects: 1}
}

func trimStart(m *machine.Interpreter) machine.SyscallResult {
	s := m.PeekObject(0).String()
	return machine.SyscallResult{X: object.NewString(trimLeftSpace(s)), SetX: true, PopObjects: 1}
}

func trimEnd(m *machine.Interpreter) machine.SyscallResult {
	s := m.PeekObject(0).String()
	return machine.SyscallResult{X: object.NewString(trimRightSpace(s)), SetX: true, PopObjects: 1}
}

func length(m *machine.Interpreter) machine.SyscallResult {
	s := m.PeekObject(0).String()
	return machine.SyscallResult{A: object.NewFromInt64(int64(runeLen(s))), SetA: true, PopObjects: 1}
}

func indexOf(m *machine.Interpreter) machine.SyscallResult {
	needle := m.PeekObject(0).String()
	s := m.PeekObject(1).String()
	return machine.SyscallResult{A: object.NewFromInt64(int64(indexOfRune(s, needle))), SetA: true, PopObjects: 2}
}

func compareString(m *machine.Interpreter) machine.SyscallResult {
	loc := m.PeekObject(0).String()
	b := m.PeekObject(1).String()
	a := m.PeekObject(2).String()
	return machine.SyscallResult{
		A: object.NewFromInt64(int64(locale.CompareString(loc, a, b))), SetA: true,
		PopObjects: 3,
	}
}

func pathCombine(m *machine.Interpreter) machine.SyscallResult {
	b := m.PeekObject(0).String()
	a := m.PeekObject(1).String()
	return machine.SyscallResult{X: object.NewString(filepath.Join(a, b)), SetX: true, PopObjects: 2}
}

func pathExists(m *machine.Interpreter) machine.SyscallResult {
	p := m.PeekObject(0).String()
	_, err := os.Stat(p)
	exists := err == nil
	var a object.Value
	if exists {
		a = object.NewFromInt64(1)
	}
	return machine.SyscallResult{A: a, SetA: true, PopObjects: 1}
}
