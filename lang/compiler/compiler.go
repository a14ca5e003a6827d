// Package compiler defines the fixed-width bytecode format the machine
// package executes: the Opcode enum, Procedure/Program container types, and
// an encoder/decoder pair for instructions (compiler.go), plus a
// human-writable assembler/disassembler (asm.go) used by tests and by the
// cmd/quill disasm and run subcommands, never by the interpreter itself.
// There is no AST-lowering
// code generator here: turning a resolved lang/ast tree into a Program is a
// policy decision (type checking, register allocation) explicitly left to
// the embedder.
package compiler

import (
	"encoding/binary"
	"fmt"
)

// Inst is one decoded instruction: an Opcode plus its operands in the order
// Operands(op) declares them, with inline strings (LoadConstantString*)
// carried separately since they are not fixed-width integers.
type Inst struct {
	Op   Opcode
	Args []int64
	Str  string
}

// Size returns the number of bytes Encode would produce for a fixed-width
// (non-opStr) instruction of op.
func Size(op Opcode) int {
	n := 1
	for _, k := range Operands(op) {
		switch k {
		case opI16, opU16:
			n += 2
		case opU32:
			n += 4
		case opI64:
			n += 8
		}
	}
	return n
}

// SizeStr returns the encoded size of a single-opStr instruction carrying s.
func SizeStr(s string) int { return 1 + 4 + len(s) }

// Encode appends the binary encoding of op with the given operands to buf
// and returns the extended slice. args must match Operands(op) in count and
// order; str is used only for opStr operands.
func Encode(buf []byte, op Opcode, args []int64, str string) []byte {
	buf = append(buf, byte(op))
	kinds := Operands(op)
	ai := 0
	for _, k := range kinds {
		switch k {
		case opI16, opU16:
			buf = binary.LittleEndian.AppendUint16(buf, uint16(args[ai]))
			ai++
		case opU32:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(args[ai]))
			ai++
		case opI64:
			buf = binary.LittleEndian.AppendUint64(buf, uint64(args[ai]))
			ai++
		case opStr:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(str)))
			buf = append(buf, str...)
		}
	}
	return buf
}

// Decode reads one instruction starting at code[pc] and returns it along
// with the offset of the following instruction. It panics on truncated or
// malformed code: bytecode is trusted input produced by Encode/Asm, never
// untrusted host data, so malformed code is a fatal, assertion-class
// error rather than a recoverable one.
func Decode(code []byte, pc int) (Inst, int) {
	op := Opcode(code[pc])
	pc++
	inst := Inst{Op: op}
	for _, k := range Operands(op) {
		switch k {
		case opI16:
			inst.Args = append(inst.Args, int64(int16(binary.LittleEndian.Uint16(code[pc:]))))
			pc += 2
		case opU16:
			inst.Args = append(inst.Args, int64(binary.LittleEndian.Uint16(code[pc:])))
			pc += 2
		case opU32:
			inst.Args = append(inst.Args, int64(binary.LittleEndian.Uint32(code[pc:])))
			pc += 4
		case opI64:
			inst.Args = append(inst.Args, int64(binary.LittleEndian.Uint64(code[pc:])))
			pc += 8
		case opStr:
			n := binary.LittleEndian.Uint32(code[pc:])
			pc += 4
			inst.Str = string(code[pc : pc+int(n)])
			pc += int(n)
		}
	}
	return inst, pc
}

// InstSize returns the encoded byte length of the instruction at code[pc],
// without fully decoding it.
func InstSize(code []byte, pc int) int {
	op := Opcode(code[pc])
	n := 1
	for _, k := range Operands(op) {
		switch k {
		case opI16, opU16:
			n += 2
		case opU32:
			n += 4
		case opI64:
			n += 8
		case opStr:
			strLen := binary.LittleEndian.Uint32(code[pc+n:])
			n += 4 + int(strLen)
		}
	}
	return n
}

func (i Inst) String() string {
	if i.Op == LoadConstantStringX || i.Op == LoadConstantStringY || i.Op == LoadConstantStringZ {
		return fmt.Sprintf("%s %q", i.Op, i.Str)
	}
	if len(i.Args) == 0 {
		return i.Op.String()
	}
	return fmt.Sprintf("%s %v", i.Op, i.Args)
}
