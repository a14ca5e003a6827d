package syscall_test

import (
	"testing"

	"github.com/electroly/quill/lang/compiler"
	"github.com/electroly/quill/lang/machine"
	"github.com/electroly/quill/lang/syscall"
	"github.com/stretchr/testify/require"
)

// TestChrSyscall drives the interpreter through a real SystemCall
// instruction for the Chr built-in: push a code point, call, read A.
func TestChrSyscall(t *testing.T) {
	prog, err := compiler.Asm([]byte(`
program:
	procedure: Main 0 1 0 +object
		code:
			pushvalues 1
			loadconstanta 65
			storea 0
			syscall 2
			return
`))
	require.NoError(t, err)

	var m machine.Interpreter
	m.Syscalls = syscall.New()
	m.Init(prog, 0)
	_, err = m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "A", m.X().String())
}

// TestLenSyscall pushes a string onto the object stack and calls Len.
func TestLenSyscall(t *testing.T) {
	prog, err := compiler.Asm([]byte(`
program:
	procedure: Main 0 0 0 +value
		code:
			pushobjects 1
			loadconststringx "hello"
			storex 0
			syscall 8
			return
`))
	require.NoError(t, err)

	var m machine.Interpreter
	m.Syscalls = syscall.New()
	m.Init(prog, 0)
	_, err = m.Run(1000)
	require.NoError(t, err)
	require.Equal(t, "5", m.A().String())
}
