package machine_test

import (
	"bytes"
	"testing"

	"github.com/electroly/quill/lang/compiler"
	"github.com/electroly/quill/lang/machine"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, src string) *compiler.Program {
	t.Helper()
	prog, err := compiler.Asm([]byte(src))
	require.NoError(t, err)
	return prog
}

// TestSimpleArithmetic runs a procedure computing (41+1) and returning it
// in A, mirroring a Sub that ends with no explicit stack frame.
func TestSimpleArithmetic(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +value
		code:
			loadconstanta 41
			loadconstantb 1
			add
			return
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	more, err := m.Run(1000)
	require.NoError(t, err)
	require.False(t, more)
	require.Equal(t, "42", m.A().String())
}

// TestBranching exercises BranchIfNotA/Jump control flow, computing
// max(3, 5) into A via a simple compare-and-branch.
func TestBranching(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +value
		code:
			loadconstanta 3
			loadconstantb 5
			lt
			branchifnota 6
			loadconstanta 5
			jump 7
			loadconstanta 3
			return
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	_, err := m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "5", m.A().String())
}

// TestCallReturn exercises a Call into a second procedure and back,
// checking that the callee's A result is visible to the caller after Return.
func TestCallReturn(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +value
		code:
			call 1
			loadconstantb 100
			add
			return

	procedure: AddOne 0 0 0 +value
		code:
			loadconstanta 1
			return
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	_, err := m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "101", m.A().String())
}

// TestDivideByZeroSetsError exercises the pending-error slot path: dividing
// by zero must not panic, but set the program-visible error flag instead.
func TestDivideByZeroSetsError(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +value
		code:
			loadconstanta 1
			loadconstantb 0
			div
			returniferror
			loadconstanta 999
			return
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	_, err := m.Run(1000)
	require.NoError(t, err)
	_, _, ok := m.PendingError()
	require.True(t, ok)
}

// TestRecordBuilder exercises record construction and field access.
func TestRecordBuilder(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +value
		code:
			recordbuilderbegin 2 0
			loadconstanta 7
			recordbuilderstorea 0
			loadconstanta 9
			recordbuilderstorea 1
			recordbuilderend
			recordloada 1
			return
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	_, err := m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "9", m.A().String())
}

// TestValueList exercises list construction and Count.
func TestValueList(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +value
		code:
			valuelistbuilderbegin
			loadconstanta 10
			valuelistbuilderadda
			loadconstanta 20
			valuelistbuilderadda
			loadconstanta 30
			valuelistbuilderadda
			valuelistbuilderend
			valuelistcount
			return
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	_, err := m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "3", m.A().String())
}

// TestStringConcatenate exercises the string register ops plus the
// StringPrint opcode writing to a supplied Stdout buffer.
func TestStringConcatenate(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0 +object
		code:
			loadconststringx "hello, "
			loadconststringy "world"
			stringxconcatenatey
			stringprint
			return
`)
	var out bytes.Buffer
	var m machine.Interpreter
	m.Stdout = &out
	m.Init(prog, 0)
	_, err := m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "hello, world", out.String())
}

// TestExit confirms Run reports no more work after an Exit instruction.
func TestExit(t *testing.T) {
	prog := assemble(t, `
program:
	procedure: Main 0 0 0
		code:
			exit
`)
	var m machine.Interpreter
	m.Init(prog, 0)
	more, err := m.Run(1000)
	require.NoError(t, err)
	require.False(t, more)
}
