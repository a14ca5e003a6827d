package grammar

import (
	"github.com/electroly/quill/lang/scanner"
	"github.com/electroly/quill/lang/token"
)

// Leaf is the terminal match result for a KindTerminal term: the matched
// token kind plus its scanned value (text, position, and any decoded
// literal payload).
type Leaf struct {
	Token token.Token
	Value scanner.Value
}

// List is the result of a KindZeroOrMore term: the (possibly empty)
// sequence of results produced by each repetition.
type List struct {
	Items []any
}

// Box is an ordered, append-only sequence of values produced by every
// Capture term that targets the same slot within one production's Term
// tree. Most slots here are written at most once per parse: Or makes its
// alternatives mutually exclusive, and a Star's own repetitions are
// captured as a single *List rather than one append per repetition. Box
// never assumes that, though - a slot captured more than once keeps every
// value in arrival order, and a failed backtrack trims the box back to
// its pre-attempt length rather than leaving stale entries behind.
type Box struct {
	items []any
}

func (b *Box) append(v any) { b.items = append(b.items, v) }

func (b *Box) length() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// trim discards every item appended after the first n, undoing the
// appends made since a checkpoint at length n.
func (b *Box) trim(n int) { b.items = b.items[:n] }

func (b *Box) last() any {
	if b.length() == 0 {
		return nil
	}
	return b.items[len(b.items)-1]
}

// Captures holds up to five Boxes of results from Capture subterms of a
// single Production's Term, indexed by the slot number passed to
// Capture(slot, ...). Five slots comfortably covers every production this
// grammar needs (mirroring the fixed-size capture array of the grounding
// combinator engine) without the bookkeeping of a growable slice.
type Captures [5]Box

// captureCheckpoint records the element count of each of a Captures'
// five boxes, taken before attempting a term that might fail and need to
// undo whatever it captured along the way.
type captureCheckpoint [5]int

func (c *Captures) checkpoint() captureCheckpoint {
	var cp captureCheckpoint
	for i := range c {
		cp[i] = c[i].length()
	}
	return cp
}

// revertTo trims every box back to the length recorded in cp, discarding
// anything appended since the checkpoint was taken.
func (c *Captures) revertTo(cp captureCheckpoint) {
	for i := range c {
		c[i].trim(cp[i])
	}
}

func (c *Captures) append(slot int, v any) { c[slot].append(v) }

// Get returns the most recently captured value for slot, or nil if
// nothing was captured there (Capture was never reached, or wrapped an
// Opt that did not match).
func (c *Captures) Get(slot int) any { return c[slot].last() }

// Node returns the most recently captured value for slot, the same as
// Get. It does not check that the value is an AST node; callers
// type-assert the result themselves.
func (c *Captures) Node(slot int) any { return c.Get(slot) }

// Leaf asserts that slot captured a terminal token and returns its Leaf.
func (c *Captures) Leaf(slot int) *Leaf {
	v := c.Get(slot)
	if v == nil {
		return nil
	}
	return v.(*Leaf)
}

// List asserts that slot captured a KindZeroOrMore repetition and returns
// its items.
func (c *Captures) List(slot int) []any {
	v := c.Get(slot)
	if v == nil {
		return nil
	}
	return v.(*List).Items
}
