package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/electroly/quill/lang/compiler"
	"github.com/electroly/quill/lang/machine"
	"github.com/electroly/quill/lang/runtimeconfig"
	"github.com/electroly/quill/lang/syscall"
)

// Run assembles a textual bytecode listing and executes its entry
// (index 0) procedure to completion, printing the final A register, or
// the pending error if one is set. The X register is not printed.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := runtimeconfig.Load()
	if err != nil {
		return printError(stdio, err)
	}
	maxCycles := cfg.MaxCycles
	if c.flags["max-cycles"] {
		maxCycles = c.MaxCycles
	}

	var firstErr error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		prog, err := compiler.Asm(src)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		var m machine.Interpreter
		m.Stdout = stdio.Stdout
		m.Syscalls = syscall.New()
		m.ValueStackSize = cfg.ValueStackSize
		m.ObjectStackSize = cfg.ObjectStackSize
		m.Init(prog, 0)

		for {
			more, err := m.Run(maxCycles)
			if err != nil {
				fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
				if firstErr == nil {
					firstErr = err
				}
				break
			}
			if !more {
				break
			}
		}
		if msg, code, ok := m.PendingError(); ok {
			text := ""
			if msg != nil {
				text = msg.String()
			}
			fmt.Fprintf(stdio.Stdout, "error: %s (%s)\n", text, code.String())
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%s\n", m.A().String())
	}
	return firstErr
}
