// Package machine implements the register-and-stack bytecode virtual
// machine that executes a compiled Program (lang/compiler): two scalar/
// object register files, two fixed-capacity stacks, a call-frame stack, an
// auxiliary builder stack for Record/List construction, and a single
// pending-error slot modeling the language's structured error handling.
package machine

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/electroly/quill/lang/compiler"
	"github.com/electroly/quill/lang/object"
)

// defaultStackCapacity bounds each of the two operand stacks. Exceeding it
// is a fatal, assertion-class error: stack overflow is treated alongside
// malformed bytecode, not as a recoverable program-visible error.
const defaultStackCapacity = 1 << 16

// FatalError is the panic type raised by the interpreter loop on a
// bug-class condition (malformed bytecode, stack overflow, a dynamic type
// mismatch on an operand). Run recovers panics of this type at its
// boundary and resurfaces them as a plain error, so a library consumer
// never observes a raw panic escaping Run.
type FatalError struct{ Msg string }

func (e *FatalError) Error() string { return "machine: fatal: " + e.Msg }

func fatalf(format string, args ...any) {
	panic(&FatalError{Msg: fmt.Sprintf(format, args...)})
}

// callFrame records enough of the caller's state for Return to restore it.
type callFrame struct {
	procIndex       int
	returnPC        int
	callerValueTop  int
	callerObjectTop int
}

// buildKind tags what an entry on the builder stack is accumulating.
type buildKind uint8

const (
	buildRecord buildKind = iota
	buildValueList
	buildObjectList
)

type builderFrame struct {
	kind         buildKind
	valueFields  []object.Value
	objectFields []any // object.Value or *object.Object, indexed like record fields
	numValue     int
	numObject    int
}

// Interpreter executes one Program at a time. The zero Interpreter is not
// ready to run; call Init first.
type Interpreter struct {
	Stdout   io.Writer
	Stdin    *bufio.Reader
	Syscalls SyscallTable

	// ValueStackSize and ObjectStackSize override defaultStackCapacity when
	// nonzero; set them before calling Init.
	ValueStackSize  int
	ObjectStackSize int

	prog *compiler.Program

	a object.Value
	b object.Value
	x *object.Object
	y *object.Object
	z *object.Object

	valueStack  []object.Value
	objectStack []*object.Object
	valueTop    int
	objectTop   int

	valueGlobals  []object.Value
	objectGlobals []*object.Object

	callStack []callFrame
	builders  []builderFrame

	errMessage *object.Object
	errCode    object.Value
	errFlag    bool

	procIndex int
	pc        int
	exited    bool
}

// SyscallResult is what a host system call hands back to the interpreter.
type SyscallResult struct {
	A          object.Value
	SetA       bool
	X          *object.Object
	SetX       bool
	PopValues  int
	PopObjects int
	Err        bool
	ErrMessage string
	ErrCode    int64
}

// SyscallFunc implements one entry of the system call table. It receives
// the interpreter purely to read the current stacks/registers as
// read-only context, passing the current stacks and tops along; it must
// not mutate m directly.
type SyscallFunc func(m *Interpreter) SyscallResult

// SyscallTable is the closed, host-extensible set of system calls,
// identified by a stable u16 the interpreter treats opaquely.
type SyscallTable map[uint16]SyscallFunc

// Init selects the entry procedure and resets all interpreter state.
func (m *Interpreter) Init(prog *compiler.Program, procIndex int) {
	if procIndex < 0 || procIndex >= len(prog.Procedures) {
		fatalf("init: procedure index %d out of range", procIndex)
	}
	valueCap, objectCap := m.ValueStackSize, m.ObjectStackSize
	if valueCap == 0 {
		valueCap = defaultStackCapacity
	}
	if objectCap == 0 {
		objectCap = defaultStackCapacity
	}

	m.prog = prog
	m.valueStack = make([]object.Value, valueCap)
	m.objectStack = make([]*object.Object, objectCap)
	m.valueTop = valueCap
	m.objectTop = objectCap
	m.valueGlobals = make([]object.Value, prog.NumValueGlobals)
	m.objectGlobals = make([]*object.Object, prog.NumObjectGlobals)
	m.callStack = m.callStack[:0]
	m.builders = m.builders[:0]
	m.a, m.b = object.Zero, object.Zero
	m.x, m.y, m.z = nil, nil, nil
	m.errMessage, m.errCode, m.errFlag = nil, object.Zero, false
	m.procIndex = procIndex
	m.pc = 0
	m.exited = false

	if m.Stdout == nil {
		m.Stdout = os.Stdout
	}
	if m.Stdin == nil {
		m.Stdin = bufio.NewReader(os.Stdin)
	}
}

// A returns the current scalar A register (exported for host inspection,
// e.g. a CLI's "run" subcommand printing the entry procedure's result).
func (m *Interpreter) A() object.Value { return m.a }

// X returns the current object X register.
func (m *Interpreter) X() *object.Object { return m.x }

// PeekValue reads the value stack slot at top+offset without popping it,
// for use by SyscallFunc implementations that take their arguments from
// the value stack (the read-only "current stacks and tops" context).
func (m *Interpreter) PeekValue(offset int) object.Value {
	return m.valueStack[m.valueSlot(int64(offset))]
}

// PeekObject reads the object stack slot at top+offset without popping it.
func (m *Interpreter) PeekObject(offset int) *object.Object {
	return m.objectStack[m.objectSlot(int64(offset))]
}

// PendingError reports the interpreter's program-visible error slot.
func (m *Interpreter) PendingError() (message *object.Object, code object.Value, ok bool) {
	return m.errMessage, m.errCode, m.errFlag
}

// Run executes at most maxCycles dispatch iterations under a cooperative
// scheduling contract: more is true while there is still work left (the
// procedure has not Exited nor fallen off its Return), false once the
// program has cleanly terminated. Fatal interpreter errors panic
// internally and are recovered here, surfaced as a normal Go error
// instead of letting the panic escape.
func (m *Interpreter) Run(maxCycles int) (more bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			err = fe
			more = false
		}
		if !more {
			for len(m.builders) > 0 {
				m.builders = m.builders[:len(m.builders)-1]
			}
		}
	}()

	if m.exited {
		return false, nil
	}

	proc := m.prog.Procedures[m.procIndex]
	for cycles := 0; cycles < maxCycles; cycles++ {
		if m.pc >= len(proc.Code) {
			fatalf("procedure %s: pc %d past end of code (len %d)", proc.Name, m.pc, len(proc.Code))
		}
		cont := m.step(&proc)
		if !cont {
			return !m.exited, nil
		}
	}
	return true, nil
}

// step decodes and executes one instruction, returning false if the
// program has terminated (Exit, or Return from the outermost frame) and
// true if execution should continue.
func (m *Interpreter) step(proc **compiler.Procedure) bool {
	inst, next := compiler.Decode((*proc).Code, m.pc)
	m.pc = next

	switch inst.Op {
	case compiler.NOP:

	case compiler.LoadConstantA:
		m.a = object.NewFromInt64(inst.Args[0])
	case compiler.LoadConstantB:
		m.b = object.NewFromInt64(inst.Args[0])
	case compiler.LoadConstantStringX:
		m.x = object.NewString(inst.Str)
	case compiler.LoadConstantStringY:
		m.y = object.NewString(inst.Str)
	case compiler.LoadConstantStringZ:
		m.z = object.NewString(inst.Str)
	case compiler.SetAFromB:
		m.a = m.b
	case compiler.SetBFromA:
		m.b = m.a
	case compiler.SetXFromY:
		m.x = m.y
	case compiler.SetYFromX:
		m.y = m.x
	case compiler.ClearX:
		m.x = nil
	case compiler.ClearY:
		m.y = nil
	case compiler.ClearZ:
		m.z = nil

	case compiler.PushValues:
		m.pushValues(int(inst.Args[0]))
	case compiler.PopValues:
		m.popValues(int(inst.Args[0]))
	case compiler.PushObjects:
		m.pushObjects(int(inst.Args[0]))
	case compiler.PopObjects:
		m.popObjects(int(inst.Args[0]))
	case compiler.LoadA:
		m.a = m.valueStack[m.valueSlot(inst.Args[0])]
	case compiler.LoadB:
		m.b = m.valueStack[m.valueSlot(inst.Args[0])]
	case compiler.LoadX:
		m.x = m.objectStack[m.objectSlot(inst.Args[0])]
	case compiler.LoadY:
		m.y = m.objectStack[m.objectSlot(inst.Args[0])]
	case compiler.LoadZ:
		m.z = m.objectStack[m.objectSlot(inst.Args[0])]
	case compiler.StoreA:
		m.valueStack[m.valueSlot(inst.Args[0])] = m.a
	case compiler.StoreB:
		m.valueStack[m.valueSlot(inst.Args[0])] = m.b
	case compiler.StoreX:
		m.objectStack[m.objectSlot(inst.Args[0])] = m.x
	case compiler.StoreY:
		m.objectStack[m.objectSlot(inst.Args[0])] = m.y
	case compiler.StoreZ:
		m.objectStack[m.objectSlot(inst.Args[0])] = m.z

	case compiler.Add:
		m.a = object.Add(m.a, m.b)
	case compiler.Sub:
		m.a = object.Sub(m.a, m.b)
	case compiler.Mul:
		m.a = object.Mul(m.a, m.b)
	case compiler.Div:
		v, err := object.Div(m.a, m.b)
		if err != nil {
			m.setError(object.NewString(err.Error()), object.Zero)
			break
		}
		m.a = v
	case compiler.Mod:
		v, err := object.Mod(m.a, m.b)
		if err != nil {
			m.setError(object.NewString(err.Error()), object.Zero)
			break
		}
		m.a = v
	case compiler.Or:
		m.a = boolValue(!m.a.IsZero() || !m.b.IsZero())
	case compiler.And:
		m.a = boolValue(!m.a.IsZero() && !m.b.IsZero())
	case compiler.Eql:
		m.a = boolValue(object.Equal(m.a, m.b))
	case compiler.Neq:
		m.a = boolValue(!object.Equal(m.a, m.b))
	case compiler.Lt:
		m.a = boolValue(object.Cmp(m.a, m.b) < 0)
	case compiler.Le:
		m.a = boolValue(object.Cmp(m.a, m.b) <= 0)
	case compiler.Gt:
		m.a = boolValue(object.Cmp(m.a, m.b) > 0)
	case compiler.Ge:
		m.a = boolValue(object.Cmp(m.a, m.b) >= 0)
	case compiler.AEqualsConstant:
		m.a = boolValue(object.Equal(m.a, object.NewFromInt64(inst.Args[0])))
	case compiler.BEqualsConstant:
		m.b = boolValue(object.Equal(m.b, object.NewFromInt64(inst.Args[0])))

	case compiler.StringXEqualsY:
		m.b = boolValue(m.x.String() == m.y.String())
	case compiler.StringXConcatenateY:
		m.x = object.NewString(m.x.String() + m.y.String())
	case compiler.StringMid:
		m.x = object.NewString(stringMid(m.x.String(), m.a.Int64(), m.b.Int64()))
	case compiler.StringIndexOf:
		m.a = object.NewFromInt64(int64(stringIndexOf(m.x.String(), m.y.String())))
	case compiler.StringAsc:
		m.a = object.NewFromInt64(stringAsc(m.x.String()))
	case compiler.StringPrint:
		fmt.Fprint(m.Stdout, m.x.String())
	case compiler.StringInputLine:
		line, _ := m.Stdin.ReadString('\n')
		m.x = object.NewString(trimNewline(line))
	case compiler.NumberToString:
		m.x = object.NewString(m.a.String())
	case compiler.StringToNumber:
		v, err := object.NewFromString(m.x.String())
		if err != nil {
			m.a, m.b = object.Zero, object.Zero
			break
		}
		m.a, m.b = v, object.NewFromInt64(1)

	case compiler.Jump:
		m.pc = int(inst.Args[0])
	case compiler.BranchIfA:
		if !m.a.IsZero() {
			m.pc = int(inst.Args[0])
		}
	case compiler.BranchIfNotA:
		if m.a.IsZero() {
			m.pc = int(inst.Args[0])
		}
	case compiler.Call:
		m.call(int(inst.Args[0]))
		proc2 := m.prog.Procedures[m.procIndex]
		*proc = proc2
	case compiler.SystemCall:
		m.systemCall(uint16(inst.Args[0]))
	case compiler.Return:
		if !m.ret() {
			return false
		}
		proc2 := m.prog.Procedures[m.procIndex]
		*proc = proc2
	case compiler.Exit:
		m.exited = true
		return false

	case compiler.SetError:
		m.setError(m.x, m.a)
	case compiler.ClearError:
		m.errMessage, m.errCode, m.errFlag = nil, object.Zero, false
	case compiler.BubbleError:
		m.errFlag = true
	case compiler.ReturnIfError:
		if m.errFlag {
			if !m.ret() {
				return false
			}
			*proc = m.prog.Procedures[m.procIndex]
		}
	case compiler.PopBranchIfError:
		if m.errFlag {
			m.popValues(int(inst.Args[0]))
			m.popObjects(int(inst.Args[1]))
			m.pc = int(inst.Args[2])
		}
	case compiler.BranchIfNotError:
		if !m.errFlag {
			m.pc = int(inst.Args[0])
		}
	case compiler.LoadErrorMessageX:
		m.x = m.errMessage
	case compiler.LoadErrorCodeA:
		m.a = m.errCode

	case compiler.RecordBuilderBegin:
		m.builders = append(m.builders, builderFrame{
			kind:      buildRecord,
			numValue:  int(inst.Args[0]),
			numObject: int(inst.Args[1]),
		})
	case compiler.RecordBuilderStoreA:
		m.curBuilder().setValueSlot(int(inst.Args[0]), m.a)
	case compiler.RecordBuilderStoreX:
		m.curBuilder().setObjectSlot(int(inst.Args[0]), m.x)
	case compiler.RecordBuilderEnd:
		b := m.popBuilder()
		m.x = b.toRecord()

	case compiler.RecordLoadA:
		m.a = recordSlotValue(m.x, int(inst.Args[0]))
	case compiler.RecordLoadX:
		m.x = recordSlotObject(m.x, int(inst.Args[0]))
	case compiler.RecordStoreA:
		m.x = recordWithValue(m.x, int(inst.Args[0]), m.a)
	case compiler.RecordStoreY:
		m.x = recordWithObject(m.x, int(inst.Args[0]), m.y)

	case compiler.ValueListBuilderBegin:
		m.builders = append(m.builders, builderFrame{kind: buildValueList})
	case compiler.ValueListBuilderAddA:
		bld := m.curBuilder()
		bld.valueFields = append(bld.valueFields, m.a)
	case compiler.ValueListBuilderEnd:
		m.x = object.NewValueList(m.popBuilder().valueFields...)
	case compiler.ValueListGet:
		m.a = m.x.ValueAt(int(m.a.Int64()))
	case compiler.ValueListSet:
		m.x = m.x.WithValueAt(int(m.a.Int64()), m.b)
	case compiler.ValueListCount:
		m.a = object.NewFromInt64(int64(m.x.Len()))
	case compiler.ValueListInsert:
		m.x = valueListInsert(m.x, int(m.a.Int64()), m.b)
	case compiler.ValueListRemove:
		m.x = valueListRemove(m.x, int(m.a.Int64()))

	case compiler.ObjectListBuilderBegin:
		m.builders = append(m.builders, builderFrame{kind: buildObjectList})
	case compiler.ObjectListBuilderAddY:
		bld := m.curBuilder()
		bld.objectFields = append(bld.objectFields, m.y)
	case compiler.ObjectListBuilderEnd:
		m.x = objectListFromAny(m.popBuilder().objectFields)
	case compiler.ObjectListGet:
		m.y = m.x.ObjectAt(int(m.a.Int64()))
	case compiler.ObjectListSet:
		m.x = m.x.WithObjectAt(int(m.a.Int64()), m.y)
	case compiler.ObjectListCount:
		m.a = object.NewFromInt64(int64(m.x.Len()))
	case compiler.ObjectListInsert:
		m.x = objectListInsert(m.x, int(m.a.Int64()), m.y)
	case compiler.ObjectListRemove:
		m.x = objectListRemove(m.x, int(m.a.Int64()))

	case compiler.ValueToValueMapNew:
		m.x = object.NewValueToValueMap()
	case compiler.ValueToValueMapTryGet:
		v, ok := m.x.GetValueToValue(m.a)
		m.b = boolValue(ok)
		m.a = v
	case compiler.ValueToValueMapCount:
		m.a = object.NewFromInt64(int64(m.x.MapLen()))
	case compiler.ValueToValueMapSet:
		m.x = m.x.SetValueToValue(m.a, m.b)
	case compiler.ValueToValueMapRemove:
		m.x = m.x.DeleteValueToValue(m.a)
	case compiler.ValueToValueMapKeys:
		m.x = v2vKeys(m.x)
	case compiler.ValueToValueMapValues:
		m.x = v2vValues(m.x)

	case compiler.ValueToObjectMapNew:
		m.x = object.NewValueToObjectMap()
	case compiler.ValueToObjectMapTryGet:
		v, ok := m.x.GetValueToObject(m.a)
		m.b = boolValue(ok)
		m.x = v
	case compiler.ValueToObjectMapCount:
		m.a = object.NewFromInt64(int64(m.x.MapLen()))
	case compiler.ValueToObjectMapSet:
		m.x = m.x.SetValueToObject(m.a, m.y)
	case compiler.ValueToObjectMapRemove:
		m.x = m.x.DeleteValueToObject(m.a)
	case compiler.ValueToObjectMapKeys:
		m.x = v2oKeys(m.x)
	case compiler.ValueToObjectMapValues:
		m.x = v2oValues(m.x)

	case compiler.ObjectToValueMapNew:
		m.x = object.NewObjectToValueMap()
	case compiler.ObjectToValueMapTryGet:
		v, ok := m.x.GetObjectToValue(m.y)
		m.b = boolValue(ok)
		m.a = v
	case compiler.ObjectToValueMapCount:
		m.a = object.NewFromInt64(int64(m.x.MapLen()))
	case compiler.ObjectToValueMapSet:
		m.x = m.x.SetObjectToValue(m.y, m.b)
	case compiler.ObjectToValueMapRemove:
		m.x = m.x.DeleteObjectToValue(m.y)
	case compiler.ObjectToValueMapKeys:
		m.x = o2vKeys(m.x)
	case compiler.ObjectToValueMapValues:
		m.x = o2vValues(m.x)

	case compiler.ObjectToObjectMapNew:
		m.x = object.NewObjectToObjectMap()
	case compiler.ObjectToObjectMapTryGet:
		v, ok := m.x.GetObjectToObject(m.y)
		m.b = boolValue(ok)
		m.x = v
	case compiler.ObjectToObjectMapCount:
		m.a = object.NewFromInt64(int64(m.x.MapLen()))
	case compiler.ObjectToObjectMapSet:
		m.x = m.x.SetObjectToObject(m.y, m.z)
	case compiler.ObjectToObjectMapRemove:
		m.x = m.x.DeleteObjectToObject(m.y)
	case compiler.ObjectToObjectMapKeys:
		m.x = o2oKeys(m.x)
	case compiler.ObjectToObjectMapValues:
		m.x = o2oValues(m.x)

	case compiler.ValueOptionalNewMissing:
		m.x = object.NewOptionalValueEmpty()
	case compiler.ValueOptionalNewPresent:
		m.x = object.NewOptionalValue(m.a)
	case compiler.ObjectOptionalNewMissing:
		m.x = object.NewOptionalObjectEmpty()
	case compiler.ObjectOptionalNewPresent:
		m.x = object.NewOptionalObject(m.y)

	case compiler.ValueGlobalLoad:
		m.a = m.valueGlobals[inst.Args[0]]
	case compiler.ValueGlobalStore:
		m.valueGlobals[inst.Args[0]] = m.a
	case compiler.ObjectGlobalLoad:
		m.x = m.objectGlobals[inst.Args[0]]
	case compiler.ObjectGlobalStore:
		m.objectGlobals[inst.Args[0]] = m.x

	case compiler.Dup, compiler.Pop:
		// Reserved stack-shuffle opcodes with no operand-stack semantics in
		// this register-based design; accepted as no-ops so that bytecode
		// emitted against an older opcode table still decodes.

	default:
		fatalf("illegal opcode %s", inst.Op)
	}
	return true
}

func boolValue(b bool) object.Value {
	if b {
		return object.NewFromInt64(1)
	}
	return object.Zero
}

func (m *Interpreter) pushValues(n int) {
	m.valueTop -= n
	if m.valueTop < 0 {
		fatalf("value stack overflow")
	}
	for i := 0; i < n; i++ {
		m.valueStack[m.valueTop+i] = object.Zero
	}
}

func (m *Interpreter) popValues(n int) {
	for i := 0; i < n; i++ {
		m.valueStack[m.valueTop+i] = object.Zero
	}
	m.valueTop += n
	if m.valueTop > len(m.valueStack) {
		fatalf("value stack underflow")
	}
}

func (m *Interpreter) pushObjects(n int) {
	m.objectTop -= n
	if m.objectTop < 0 {
		fatalf("object stack overflow")
	}
	for i := 0; i < n; i++ {
		m.objectStack[m.objectTop+i] = nil
	}
}

func (m *Interpreter) popObjects(n int) {
	for i := 0; i < n; i++ {
		m.objectStack[m.objectTop+i] = nil
	}
	m.objectTop += n
	if m.objectTop > len(m.objectStack) {
		fatalf("object stack underflow")
	}
}

func (m *Interpreter) valueSlot(off int64) int {
	i := m.valueTop + int(off)
	if i < 0 || i >= len(m.valueStack) {
		fatalf("value stack index %d out of range", i)
	}
	return i
}

func (m *Interpreter) objectSlot(off int64) int {
	i := m.objectTop + int(off)
	if i < 0 || i >= len(m.objectStack) {
		fatalf("object stack index %d out of range", i)
	}
	return i
}

func (m *Interpreter) setError(message *object.Object, code object.Value) {
	m.errMessage, m.errCode, m.errFlag = message, code, true
}

// call pushes a CallFrame for the current point of execution and jumps to
// procedure k at offset 0.
func (m *Interpreter) call(k int) {
	if k < 0 || k >= len(m.prog.Procedures) {
		fatalf("call: procedure index %d out of range", k)
	}
	m.callStack = append(m.callStack, callFrame{
		procIndex:       m.procIndex,
		returnPC:        m.pc,
		callerValueTop:  m.valueTop,
		callerObjectTop: m.objectTop,
	})
	m.procIndex = k
	m.pc = 0
}

// ret pops the call frame, zeroing/nilling the callee's stack region
// between the current top and the caller's top, and restores the caller.
// It returns false if there is no caller (the outermost procedure
// returned), signaling Run to stop.
func (m *Interpreter) ret() bool {
	if len(m.builders) != 0 {
		fatalf("return with %d unfinished builder(s) on the stack", len(m.builders))
	}
	if len(m.callStack) == 0 {
		m.exited = true
		return false
	}
	fr := m.callStack[len(m.callStack)-1]
	m.callStack = m.callStack[:len(m.callStack)-1]

	for i := m.valueTop; i < fr.callerValueTop; i++ {
		m.valueStack[i] = object.Zero
	}
	for i := m.objectTop; i < fr.callerObjectTop; i++ {
		m.objectStack[i] = nil
	}
	m.valueTop = fr.callerValueTop
	m.objectTop = fr.callerObjectTop
	m.procIndex = fr.procIndex
	m.pc = fr.returnPC
	return true
}

func (m *Interpreter) systemCall(n uint16) {
	fn, ok := m.Syscalls[n]
	if !ok {
		fatalf("system call %d not registered", n)
	}
	res := fn(m)
	if res.SetA {
		m.a = res.A
	}
	if res.SetX {
		m.x = res.X
	}
	m.popValues(res.PopValues)
	m.popObjects(res.PopObjects)
	if res.Err {
		m.setError(object.NewString(res.ErrMessage), object.NewFromInt64(res.ErrCode))
	}
}

func (m *Interpreter) curBuilder() *builderFrame {
	if len(m.builders) == 0 {
		fatalf("no builder in progress")
	}
	return &m.builders[len(m.builders)-1]
}

func (m *Interpreter) popBuilder() builderFrame {
	bld := *m.curBuilder()
	m.builders = m.builders[:len(m.builders)-1]
	return bld
}

func (b *builderFrame) setValueSlot(i int, v object.Value) {
	for len(b.valueFields) <= i {
		b.valueFields = append(b.valueFields, object.Zero)
	}
	b.valueFields[i] = v
}

func (b *builderFrame) setObjectSlot(i int, v *object.Object) {
	for len(b.objectFields) <= i {
		b.objectFields = append(b.objectFields, (*object.Object)(nil))
	}
	b.objectFields[i] = v
}

// toRecord freezes the builder's slots into a Record object. Field names
// are synthesized positionally ("v0".."vN-1", "o0".."oN-1") since the
// builder protocol only carries slot indices: a code generator pairs these
// indices with declared field names at a higher layer than the machine
// needs to know about.
func (b *builderFrame) toRecord() *object.Object {
	fields := make([]object.Field, 0, b.numValue+b.numObject)
	for i := 0; i < b.numValue; i++ {
		var v object.Value
		if i < len(b.valueFields) {
			v = b.valueFields[i]
		}
		fields = append(fields, object.Field{Name: fmt.Sprintf("v%d", i), Value: v})
	}
	for i := 0; i < b.numObject; i++ {
		var v *object.Object
		if i < len(b.objectFields) {
			v, _ = b.objectFields[i].(*object.Object)
		}
		fields = append(fields, object.Field{Name: fmt.Sprintf("o%d", i), Value: v})
	}
	return object.NewRecord(fields...)
}
