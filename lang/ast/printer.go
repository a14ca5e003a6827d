package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of AST nodes, used mainly by the
// disassembler-adjacent test tooling and the cmd/quill `parse` subcommand.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// ShowPos prints each node's start:end position alongside its label.
	ShowPos bool

	// NodeFmt is the format string used to print each node's label. The verb
	// must be either `s` or `v`; a width, `#` and `-` flags are supported.
	// Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints n and its descendants as an indented tree.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, showPos: p.ShowPos, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	showPos bool
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}
	format := "%s"
	args := []any{strings.Repeat(". ", indent)}
	if p.showPos {
		start, end := n.Span()
		sl, sc := start.LineCol()
		el, ec := end.LineCol()
		format += fmt.Sprintf("[%d:%d-%d:%d] ", sl, sc, el, ec)
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
