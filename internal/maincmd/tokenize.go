package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/electroly/quill/lang/scanner"
	"github.com/electroly/quill/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each file in turn and prints one line per token:
// "path:line:col: TOKEN [literal]", the literal quoted.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
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

		var s scanner.Scanner
		s.Init(src, func(pos token.Pos, msg string) {
			line, col := pos.LineCol()
			fmt.Fprintf(stdio.Stderr, "%s:%d:%d: %s\n", path, line, col, msg)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %s", path, msg)
			}
		})

		var val scanner.Value
		for {
			tok := s.Scan(&val)
			line, col := val.Pos.LineCol()
			fmt.Fprintf(stdio.Stdout, "%s:%d:%d: %s", path, line, col, tok)
			if val.Raw != "" && val.Raw != tok.String() {
				fmt.Fprintf(stdio.Stdout, " %q", val.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok == token.EOF {
				break
			}
		}
	}
	return firstErr
}
