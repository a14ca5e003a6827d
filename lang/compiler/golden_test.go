package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/electroly/quill/internal/difftest"
	"github.com/electroly/quill/lang/compiler"
	"github.com/stretchr/testify/require"
)

// TestDasmGolden checks the disassembly text format against a checked-in
// golden file, independent of the Asm/Dasm round-trip byte-equality checks
// in asm_test.go: this pins the exact mnemonic/operand/comment layout a
// human reads.
func TestDasmGolden(t *testing.T) {
	const dir = "testdata"
	fis := difftest.SourceFiles(t, dir, ".quillasm")
	require.NotEmpty(t, fis)

	update := false
	for _, fi := range fis {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			require.NoError(t, err)

			prog, err := compiler.Asm(src)
			require.NoError(t, err)

			out, err := compiler.Dasm(prog)
			require.NoError(t, err)

			difftest.DiffOutput(t, fi, string(out), dir, &update)
		})
	}
}
