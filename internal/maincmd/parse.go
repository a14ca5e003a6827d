package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/electroly/quill/lang/ast"
	"github.com/electroly/quill/lang/parser"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, args...)
}

// ParseFiles parses each file and pretty-prints its Program AST.
func ParseFiles(stdio mainer.Stdio, files ...string) error {
	p, err := parser.New()
	if err != nil {
		return printError(stdio, err)
	}

	printer := ast.Printer{Output: stdio.Stdout}

	var firstErr error
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		prog, err := p.ParseProgram(src)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := printer.Print(prog); err != nil {
			return printError(stdio, err)
		}
	}
	return firstErr
}
