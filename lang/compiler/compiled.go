package compiler

// Procedure is the compiled form of one Sub or Function: a flat byte stream
// of fixed-width instructions plus the bookkeeping the machine needs to
// set up a call frame. A Procedure carries no constant pool and no
// free-variable list: every immediate (Value, inline string) is encoded
// directly into the instruction stream, and there are no closures in this
// language, only globals and a single flat local/parameter stack frame
// per call.
type Procedure struct {
	Name           string
	Code           []byte
	NumParams      int
	MaxValueStack  int // locals+params+scratch high-water mark on the Value stack
	MaxObjectStack int // same, on the Object stack
	ReturnsValue   bool
	ReturnsObject  bool
}

// Program is a whole compiled unit: an ordered set of procedures (index 0
// is always the entry point used by Interpreter.Init) plus the declared
// size of the two global slot tables every procedure can address via
// ValueGlobalLoad/Store and ObjectGlobalLoad/Store.
type Program struct {
	Procedures       []*Procedure
	NumValueGlobals  int
	NumObjectGlobals int
}

// ProcedureByName returns the procedure named n, or nil if none matches.
func (p *Program) ProcedureByName(n string) *Procedure {
	for _, proc := range p.Procedures {
		if proc.Name == n {
			return proc
		}
	}
	return nil
}

// IndexOf returns the index of proc within p.Procedures, or -1.
func (p *Program) IndexOf(proc *Procedure) int {
	for i, pr := range p.Procedures {
		if pr == proc {
			return i
		}
	}
	return -1
}
