package compiler_test

import (
	"testing"

	"github.com/electroly/quill/lang/compiler"
	"github.com/stretchr/testify/require"
)

func TestAsmErrors(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		err  string
	}{
		{"empty", ``, "expected program section"},
		{"not program", `procedure:`, "expected program section"},
		{"missing procedure", `program:`, "missing at least one procedure"},
		{"invalid procedure", "program:\n\tprocedure: MissingArgs\n", "invalid procedure: want at least 5 fields"},
		{"missing code", "program:\n\tprocedure: Top 0 1 0\n", "expected code section"},
		{"invalid opcode", "program:\n\tprocedure: Top 0 1 0\n\t\tcode:\n\t\t\tfrobnicate\n", "invalid opcode: frobnicate"},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			_, err := compiler.Asm([]byte(c.in))
			if c.err == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, c.err)
			}
		})
	}
}

func TestAsmDasmRoundTrip(t *testing.T) {
	src := `
program:
	globals: 1 0

	procedure: Main 0 2 0 +value
		code:
			loadconstanta 41
			storea 0
			loada 0
			loadconstanta 1
			add
			branchifa 6
			jump 7
			loadconstantb 0
			return
`
	prog, err := compiler.Asm([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Procedures, 1)
	require.Equal(t, "Main", prog.Procedures[0].Name)
	require.Equal(t, 1, prog.NumValueGlobals)

	out, err := compiler.Dasm(prog)
	require.NoError(t, err)

	reprog, err := compiler.Asm(out)
	require.NoError(t, err)
	require.Equal(t, prog.Procedures[0].Code, reprog.Procedures[0].Code)
}

func TestAsmStringLiteral(t *testing.T) {
	src := `
program:
	procedure: Greet 0 0 0 +object
		code:
			loadconststringx "hello, world"
			return
`
	prog, err := compiler.Asm([]byte(src))
	require.NoError(t, err)
	inst, _ := compiler.Decode(prog.Procedures[0].Code, 0)
	require.Equal(t, compiler.LoadConstantStringX, inst.Op)
	require.Equal(t, "hello, world", inst.Str)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var code []byte
	code = compiler.Encode(code, compiler.LoadConstantA, []int64{1234}, "")
	code = compiler.Encode(code, compiler.StoreA, []int64{-3}, "")
	code = compiler.Encode(code, compiler.LoadConstantStringX, nil, "quill")
	code = compiler.Encode(code, compiler.Return, nil, "")

	inst, pc := compiler.Decode(code, 0)
	require.Equal(t, compiler.LoadConstantA, inst.Op)
	require.Equal(t, []int64{1234}, inst.Args)

	inst, pc = compiler.Decode(code, pc)
	require.Equal(t, compiler.StoreA, inst.Op)
	require.Equal(t, []int64{-3}, inst.Args)

	inst, pc = compiler.Decode(code, pc)
	require.Equal(t, compiler.LoadConstantStringX, inst.Op)
	require.Equal(t, "quill", inst.Str)

	inst, pc = compiler.Decode(code, pc)
	require.Equal(t, compiler.Return, inst.Op)
	require.Equal(t, len(code), pc)
}
