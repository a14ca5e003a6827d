package grammar

import (
	"fmt"

	"github.com/electroly/quill/lang/scanner"
	"github.com/electroly/quill/lang/token"
)

// Error reports a parse failure: the production chain could not match the
// input at the reported position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string {
	line, col := e.Pos.LineCol()
	return fmt.Sprintf("%d:%d: %s", line, col, e.Msg)
}

// frame is one entry of the driver's explicit evaluation stack: the state
// needed to resume evaluating one Term after a child frame pushed on its
// behalf has resolved. Which fields are live depends on term.Kind - this
// is a single struct rather than one type per Kind because every kind's
// state machine shares the same two-phase shape (push a child, then
// inspect its result) and Go has no sum-type sugar worth fighting for
// here; term.Kind is the tag, and driver.step's switch is the dispatch.
type frame struct {
	term *Term
	caps *Captures

	awaitingChild bool
	idx           int  // And/Or: index of the child currently in flight
	cutHit        bool // And: whether a Cut was passed so far in this sequence

	items []any // ZeroOrMore: repetitions matched so far

	posCkpt int // pos at the point this frame could still cleanly backtrack to
	capCkpt captureCheckpoint

	// NonTerminal only.
	prod *Production
	sub  *Captures
}

// Driver evaluates Terms against a fixed token stream using an explicit,
// heap-allocated stack of frames rather than Go call-stack recursion: a
// deeply nested expression grows d.stack, not the goroutine stack, so
// stack depth is bounded by available heap rather than a fixed runtime
// limit. It is reusable across multiple top-level parses (e.g.
// re-parsing after an edit), but a single Driver is not safe for
// concurrent use, matching the single-threaded cooperative execution
// model of the rest of this module.
type Driver struct {
	reg  *Registry
	toks []token.Token
	vals []scanner.Value
	pos  int

	stack []*frame

	// pending* carries the outcome of the most recently popped frame to
	// whatever frame is now on top of the stack, standing in for the
	// return value a recursive eval would have handed directly to its
	// caller.
	pendingVal any
	pendingOK  bool
	pendingCut bool
}

// NewDriver creates a Driver that reads from the given parallel token/value
// slices (as produced by repeatedly calling a scanner.Scanner's Scan
// method), resolving NT references against reg.
func NewDriver(reg *Registry, toks []token.Token, vals []scanner.Value) *Driver {
	return &Driver{reg: reg, toks: toks, vals: vals}
}

// Parse evaluates the named root production against the full token
// stream, requiring it to consume every token before the final token.EOF
// (the root may also consume the EOF itself). It returns the root
// production's parsed node.
func (d *Driver) Parse(rootName string) (any, error) {
	root := d.reg.Lookup(rootName)
	if root == nil {
		return nil, &UndefinedProductionError{Name: rootName}
	}
	d.pos = 0
	node, ok := d.run(NT(rootName), &Captures{})
	if !ok {
		return nil, &Error{Pos: d.curPos(), Msg: "no viable alternative at token " + d.toks[d.pos].GoString()}
	}
	if d.pos < len(d.toks) && d.toks[d.pos] != token.EOF {
		return nil, &Error{Pos: d.curPos(), Msg: "unexpected trailing token " + d.toks[d.pos].GoString()}
	}
	return node, nil
}

func (d *Driver) curPos() token.Pos { return d.vals[d.pos].Pos }

// run pushes term as a new frame and drives the stack until that frame
// (and everything it pushed in turn) has resolved, then returns its
// result. It is called exactly once per parse, from Parse: production
// references are pushed as NonTerminal frames rather than evaluated by a
// nested call to run, so every frame transition happens through step.
func (d *Driver) run(term *Term, caps *Captures) (any, bool) {
	base := len(d.stack)
	d.push(term, caps)
	for len(d.stack) > base {
		d.step()
	}
	return d.pendingVal, d.pendingOK
}

func (d *Driver) push(term *Term, caps *Captures) {
	d.stack = append(d.stack, &frame{term: term, caps: caps})
}

// finish pops the top frame and records its outcome for the new top
// frame to read on its next step. Only And (via finishAndCut) may report
// a true cutHit upward: every other kind always clears it, matching the
// rule that a Cut only commits the innermost enclosing And sequence, not
// whatever Or/Optional/ZeroOrMore/Capture happens to wrap that sequence.
func (d *Driver) finish(val any, ok bool) {
	d.stack = d.stack[:len(d.stack)-1]
	d.pendingVal, d.pendingOK, d.pendingCut = val, ok, false
}

func (d *Driver) finishAndCut(val any, ok, cutHit bool) {
	d.stack = d.stack[:len(d.stack)-1]
	d.pendingVal, d.pendingOK, d.pendingCut = val, ok, cutHit
}

// step advances the top frame of d.stack by exactly one unit of work:
// either pushing one child frame and yielding, or inspecting the result
// of a child frame it pushed on a previous call and reacting to it. It
// never recurses.
func (d *Driver) step() {
	top := d.stack[len(d.stack)-1]
	switch top.term.Kind {
	case KindTerminal:
		d.stepTerminal(top)
	case KindNonTerminal:
		d.stepNonTerminal(top)
	case KindAnd:
		d.stepAnd(top)
	case KindOr:
		d.stepOr(top)
	case KindOptional:
		d.stepOptional(top)
	case KindZeroOrMore:
		d.stepZeroOrMore(top)
	case KindCapture:
		d.stepCapture(top)
	case KindCut:
		d.finish(nil, true)
	default:
		panic(fmt.Sprintf("grammar: unknown term kind %d", top.term.Kind))
	}
}

func (d *Driver) stepTerminal(top *frame) {
	if d.toks[d.pos] != top.term.Token {
		d.finish(nil, false)
		return
	}
	leaf := &Leaf{Token: d.toks[d.pos], Value: d.vals[d.pos]}
	d.pos++
	d.finish(leaf, true)
}

func (d *Driver) stepNonTerminal(top *frame) {
	if top.awaitingChild {
		top.awaitingChild = false
		if !d.pendingOK {
			d.pos = top.posCkpt
			d.finish(nil, false)
			return
		}
		node, err := top.prod.Parse(top.sub)
		if err != nil {
			d.pos = top.posCkpt
			d.finish(nil, false)
			return
		}
		d.finish(node, true)
		return
	}
	top.prod = d.reg.Lookup(top.term.Name)
	if top.prod == nil || top.prod.Term == nil {
		panic("grammar: unresolved production " + top.term.Name)
	}
	top.posCkpt = d.pos
	top.sub = &Captures{}
	d.push(top.prod.Term, top.sub)
	top.awaitingChild = true
}

// stepAnd drives a sequence: each non-Cut child is pushed as its own
// frame in order, and any child's mismatch reverts pos and every capture
// box to this And's entry checkpoint. A Cut child is handled inline
// (it is zero-width and never fails) rather than pushed, exactly as in
// the original recursive evaluator.
func (d *Driver) stepAnd(top *frame) {
	if top.awaitingChild {
		top.awaitingChild = false
		if d.pendingCut {
			top.cutHit = true
		}
		if !d.pendingOK {
			d.pos = top.posCkpt
			top.caps.revertTo(top.capCkpt)
			d.finishAndCut(nil, false, top.cutHit)
			return
		}
		top.idx++
	} else if top.idx == 0 {
		top.posCkpt = d.pos
		top.capCkpt = top.caps.checkpoint()
	}
	for top.idx < len(top.term.Sub) && top.term.Sub[top.idx].Kind == KindCut {
		top.cutHit = true
		top.idx++
	}
	if top.idx >= len(top.term.Sub) {
		d.finishAndCut(nil, true, top.cutHit)
		return
	}
	d.push(top.term.Sub[top.idx], top.caps)
	top.awaitingChild = true
}

// stepOr drives an ordered choice: each alternative is tried in turn at
// the same starting position, with pos and every capture box reverted to
// this Or's entry checkpoint before the next attempt. An alternative that
// fails after passing a Cut is elevated to a hard failure of the whole
// Or - no further alternative is tried.
func (d *Driver) stepOr(top *frame) {
	if top.awaitingChild {
		top.awaitingChild = false
		if d.pendingOK {
			d.finish(d.pendingVal, true)
			return
		}
		d.pos = top.posCkpt
		top.caps.revertTo(top.capCkpt)
		if d.pendingCut {
			d.finish(nil, false)
			return
		}
		top.idx++
	} else if top.idx == 0 {
		top.posCkpt = d.pos
		top.capCkpt = top.caps.checkpoint()
	}
	if top.idx >= len(top.term.Sub) {
		d.finish(nil, false)
		return
	}
	d.pos = top.posCkpt
	d.push(top.term.Sub[top.idx], top.caps)
	top.awaitingChild = true
}

func (d *Driver) stepOptional(top *frame) {
	if top.awaitingChild {
		top.awaitingChild = false
		if !d.pendingOK {
			d.pos = top.posCkpt
			top.caps.revertTo(top.capCkpt)
			d.finish(nil, true)
			return
		}
		d.finish(d.pendingVal, true)
		return
	}
	top.posCkpt = d.pos
	top.capCkpt = top.caps.checkpoint()
	d.push(top.term.Sub[0], top.caps)
	top.awaitingChild = true
}

// stepZeroOrMore drives repetition: every iteration gets its own
// pos/capture checkpoint, so the one iteration that finally fails reverts
// cleanly without disturbing the items already matched by the iterations
// before it.
func (d *Driver) stepZeroOrMore(top *frame) {
	if top.awaitingChild {
		top.awaitingChild = false
		if !d.pendingOK {
			d.pos = top.posCkpt
			top.caps.revertTo(top.capCkpt)
			d.finish(&List{Items: top.items}, true)
			return
		}
		if d.pendingVal != nil {
			top.items = append(top.items, d.pendingVal)
		}
	}
	top.posCkpt = d.pos
	top.capCkpt = top.caps.checkpoint()
	d.push(top.term.Sub[0], top.caps)
	top.awaitingChild = true
}

func (d *Driver) stepCapture(top *frame) {
	if top.awaitingChild {
		top.awaitingChild = false
		if !d.pendingOK {
			d.finish(nil, false)
			return
		}
		top.caps.append(top.term.Slot, d.pendingVal)
		d.finish(d.pendingVal, true)
		return
	}
	d.push(top.term.Sub[0], top.caps)
	top.awaitingChild = true
}
