package compiler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// This file implements a human-readable/writable form of a compiled
// Program, used by tests to exercise the machine package without going
// through the parser or a code generator, and by the cmd/quill disasm and
// run subcommands. The format:
//
//	program:
//		globals: <numValueGlobals> <numObjectGlobals>   # optional, default 0 0
//
//	procedure: NAME <numParams> <maxValueStack> <maxObjectStack> [+value] [+object]
//		code:
//			NOP
//			LOADCONSTANTA 5
//			JUMP 3        # index into this procedure's code section, not a byte address
//
// +value / +object on the procedure: line record whether it returns a Value
// and/or an Object (a procedure may return neither, either, or conceptually
// both via separate registers, matching ReturnsValue/ReturnsObject).

var sections = map[string]bool{
	"program:":   true,
	"globals:":   true,
	"procedure:": true,
	"code:":      true,
}

// Asm assembles the textual form into a Program.
func Asm(b []byte) (*Program, error) {
	a := asm{s: bufio.NewScanner(bytes.NewReader(b))}

	fields := a.next()
	a.program(fields)

	fields = a.next()
	fields = a.globals(fields)

	for a.err == nil && len(fields) > 0 && strings.EqualFold(fields[0], "procedure:") {
		fields = a.procedure(fields)
	}

	if a.err == nil {
		if len(fields) > 0 {
			a.err = fmt.Errorf("unexpected section: %s", fields[0])
		} else if len(a.p.Procedures) == 0 {
			a.err = errors.New("missing at least one procedure")
		}
	}
	return a.p, a.err
}

type asm struct {
	s       *bufio.Scanner
	rawLine string
	p       *Program
	proc    *Procedure
	err     error
}

func (a *asm) program(fields []string) {
	if a.err != nil {
		return
	}
	if len(fields) == 0 || !strings.EqualFold(fields[0], "program:") {
		msg := "expected program section"
		if len(fields) > 0 {
			msg += ", found " + fields[0]
		}
		a.err = errors.New(msg)
		return
	}
	a.p = &Program{}
}

func (a *asm) globals(fields []string) []string {
	if a.err != nil || len(fields) == 0 || !strings.EqualFold(fields[0], "globals:") {
		return fields
	}
	if len(fields) != 3 {
		a.err = fmt.Errorf("invalid globals: want 2 fields, got %d", len(fields)-1)
		return fields
	}
	a.p.NumValueGlobals = int(a.int(fields[1]))
	a.p.NumObjectGlobals = int(a.int(fields[2]))
	return a.next()
}

func (a *asm) procedure(fields []string) []string {
	if a.err != nil || len(fields) == 0 || !strings.EqualFold(fields[0], "procedure:") {
		return fields
	}
	if len(fields) < 5 {
		a.err = fmt.Errorf("invalid procedure: want at least 5 fields, got %d (%s)", len(fields), strings.Join(fields, " "))
		fields = a.next()
		return fields
	}
	proc := Procedure{
		Name:           fields[1],
		NumParams:      int(a.int(fields[2])),
		MaxValueStack:  int(a.int(fields[3])),
		MaxObjectStack: int(a.int(fields[4])),
		ReturnsValue:   a.option(fields[5:], "value"),
		ReturnsObject:  a.option(fields[5:], "object"),
	}
	a.proc = &proc

	fields = a.next()
	fields, _ = a.code(fields)

	a.proc = nil
	a.p.Procedures = append(a.p.Procedures, &proc)
	return fields
}

func (a *asm) code(fields []string) ([]string, []int) {
	var indexToAddr []int
	if a.err != nil {
		return fields, indexToAddr
	}
	if len(fields) == 0 || !strings.EqualFold(fields[0], "code:") {
		msg := "expected code section"
		if len(fields) > 0 {
			msg += ", found " + fields[0]
		}
		a.err = errors.New(msg)
		return fields, indexToAddr
	}

	var insns []Inst
	var addr int
	for fields = a.next(); len(fields) > 0 && !sections[strings.ToLower(fields[0])]; fields = a.next() {
		op, ok := reverseLookupOpcode[strings.ToLower(fields[0])]
		if !ok {
			a.err = fmt.Errorf("invalid opcode: %s", fields[0])
			return fields, indexToAddr
		}

		kinds := Operands(op)
		inst := Inst{Op: op}
		if op == LoadConstantStringX || op == LoadConstantStringY || op == LoadConstantStringZ {
			qs, err := strconv.QuotedPrefix(a.rawLineArg())
			if err != nil {
				a.err = fmt.Errorf("invalid string operand for %s: %w", fields[0], err)
				return fields, indexToAddr
			}
			s, err := strconv.Unquote(qs)
			if err != nil {
				a.err = fmt.Errorf("invalid string operand for %s: %w", fields[0], err)
				return fields, indexToAddr
			}
			inst.Str = s
			insns = append(insns, inst)
			indexToAddr = append(indexToAddr, addr)
			addr += SizeStr(s)
			continue
		}

		if len(fields)-1 != len(kinds) {
			a.err = fmt.Errorf("expected %d operand(s) for %s, got %d", len(kinds), fields[0], len(fields)-1)
			return fields, indexToAddr
		}
		for i := range kinds {
			inst.Args = append(inst.Args, a.int(fields[i+1]))
		}
		insns = append(insns, inst)
		indexToAddr = append(indexToAddr, addr)
		addr += Size(op)
	}

	for i, inst := range insns {
		if idx, ok := jumpArgIndex(inst.Op); ok {
			target := int(inst.Args[idx])
			if target < 0 || target >= len(indexToAddr) {
				a.err = fmt.Errorf("invalid jump index %d: instruction %s at index %d", target, inst.Op, i)
				return fields, indexToAddr
			}
			inst.Args[idx] = int64(indexToAddr[target])
		}
		a.proc.Code = Encode(a.proc.Code, inst.Op, inst.Args, inst.Str)
	}

	return fields, indexToAddr
}

// jumpArgIndex returns the index within Inst.Args that carries a branch
// target expressed as a code-section instruction index (translated to a
// byte address by the assembler, and back by the disassembler).
func jumpArgIndex(op Opcode) (int, bool) {
	switch op {
	case Jump, BranchIfA, BranchIfNotA, BranchIfNotError:
		return 0, true
	case PopBranchIfError:
		return 2, true
	default:
		return 0, false
	}
}

func (a *asm) option(fields []string, opt string) bool {
	for _, fld := range fields {
		if fld == "+"+opt {
			return true
		}
	}
	return false
}

func (a *asm) int(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		a.err = fmt.Errorf("invalid integer: %s: %w", s, err)
	}
	return i
}

// rawLineArg returns everything on the raw current line after the opcode
// name, used to recover a quoted string operand that may itself contain
// whitespace (strings.Fields would otherwise split it).
func (a *asm) rawLineArg() string {
	s := strings.TrimSpace(a.rawLine)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(s[i:])
}

func (a *asm) next() []string {
	a.rawLine = ""
	if a.err != nil {
		return nil
	}
	for a.s.Scan() {
		line := a.s.Text()
		fields := strings.Fields(line)
		if len(fields) != 0 && !strings.HasPrefix(fields[0], "#") {
			for i, fld := range fields {
				if strings.HasPrefix(fld, "#") {
					fields = fields[:i]
					break
				}
			}
			a.rawLine = line
			return fields
		}
	}
	a.err = a.s.Err()
	return nil
}

// Dasm disassembles a Program into its textual form.
func Dasm(p *Program) ([]byte, error) {
	d := dasm{p: p, buf: new(bytes.Buffer)}
	d.program()

	if len(p.Procedures) == 0 {
		d.err = errors.New("missing at least one procedure")
	}
	if d.err == nil {
		for _, proc := range p.Procedures {
			d.write("\n")
			d.procedure(proc)
		}
	}
	return d.buf.Bytes(), d.err
}

type dasm struct {
	p   *Program
	buf *bytes.Buffer
	err error
}

func (d *dasm) program() {
	d.write("program:\n")
	if d.p.NumValueGlobals != 0 || d.p.NumObjectGlobals != 0 {
		d.writef("\tglobals: %d %d\n", d.p.NumValueGlobals, d.p.NumObjectGlobals)
	}
}

func (d *dasm) procedure(proc *Procedure) {
	if d.err != nil {
		return
	}
	d.writef("\tprocedure: %s %d %d %d", proc.Name, proc.NumParams, proc.MaxValueStack, proc.MaxObjectStack)
	if proc.ReturnsValue {
		d.write(" +value")
	}
	if proc.ReturnsObject {
		d.write(" +object")
	}
	d.write("\n")

	addrToIndex := make([]int, len(proc.Code))
	for i := range addrToIndex {
		addrToIndex[i] = -1
	}
	var insns []Inst
	var addr int
	for addr < len(proc.Code) {
		addrToIndex[addr] = len(insns)
		inst, next := Decode(proc.Code, addr)
		insns = append(insns, inst)
		addr = next
	}

	if len(insns) > 0 {
		d.write("\t\tcode:\n")
		for i, inst := range insns {
			if inst.Op == LoadConstantStringX || inst.Op == LoadConstantStringY || inst.Op == LoadConstantStringZ {
				d.writef("\t\t\t%s %q\t# %03d\n", inst.Op, inst.Str, i)
				continue
			}
			if idx, ok := jumpArgIndex(inst.Op); ok {
				addr := int(inst.Args[idx])
				if addr < 0 || addr >= len(addrToIndex) || addrToIndex[addr] == -1 {
					d.err = fmt.Errorf("invalid jump address %d in procedure %s, instruction %d (%s)", addr, proc.Name, i, inst.Op)
					return
				}
				inst.Args[idx] = int64(addrToIndex[addr])
			}
			if len(inst.Args) == 0 {
				d.writef("\t\t\t%s\t# %03d\n", inst.Op, i)
			} else {
				strs := make([]string, len(inst.Args))
				for j, a := range inst.Args {
					strs[j] = strconv.FormatInt(a, 10)
				}
				d.writef("\t\t\t%s %s\t# %03d\n", inst.Op, strings.Join(strs, " "), i)
			}
		}
	}
}

func (d *dasm) writef(s string, args ...any) {
	d.write(fmt.Sprintf(s, args...))
}

func (d *dasm) write(s string) {
	if d.err != nil {
		return
	}
	_, d.err = d.buf.WriteString(s)
}
