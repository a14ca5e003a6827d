// Package grammar implements the declarative combinator core the parser is
// built from: Term values describe a small regular-expression-like algebra
// over tokens and named Productions (terminal, sequence, alternation,
// optional, zero-or-more, capture, and a committed-choice cut), and
// Registry binds Production names so productions can refer to each other,
// including to themselves, before every production in a grammar has been
// constructed.
//
// The actual evaluation of a Term against a token stream happens in
// driver.go, on an explicit heap-allocated stack of frames rather than
// through Go call-stack recursion: Driver.step advances whichever frame
// is on top of that stack by one unit of work per call, so a deeply
// nested expression or block grows the Driver's own stack slice, not the
// goroutine stack.
package grammar

import (
	"github.com/dolthub/swiss"
	"github.com/electroly/quill/lang/token"
)

// Kind identifies the shape of a Term.
type Kind int

const (
	KindTerminal Kind = iota
	KindNonTerminal
	KindAnd
	KindOr
	KindOptional
	KindZeroOrMore
	KindCapture
	KindCut
)

// Term is a node of the grammar algebra. Exactly one production of the
// Sub slice's content is dictated by Kind: Terminal uses Token,
// NonTerminal uses Name, And/Or/Optional/ZeroOrMore/Capture use Sub
// (Capture uses Sub[0] and Slot), Cut uses neither.
type Term struct {
	Kind  Kind
	Token token.Token // KindTerminal
	Name  string      // KindNonTerminal: name of the referenced Production
	Sub   []*Term     // KindAnd, KindOr, KindOptional, KindZeroOrMore, KindCapture
	Slot  int         // KindCapture
}

// T matches a single terminal token of the given kind.
func T(tok token.Token) *Term { return &Term{Kind: KindTerminal, Token: tok} }

// NT refers to a named production, resolved against the Registry at parse
// time so that productions may reference each other (including
// themselves) regardless of declaration order.
func NT(name string) *Term { return &Term{Kind: KindNonTerminal, Name: name} }

// And matches each of terms in sequence; it fails, fully backtracking to
// its starting position, if any of them fails.
func And(terms ...*Term) *Term { return &Term{Kind: KindAnd, Sub: terms} }

// Or tries each alternative in order, committing to the first one that
// matches. If an alternative hits a Cut before failing, Or does not try
// any further alternative: the cut's failure propagates as a hard failure
// of the whole Or.
func Or(terms ...*Term) *Term { return &Term{Kind: KindOr, Sub: terms} }

// Opt matches term if possible, and otherwise succeeds anyway, consuming
// nothing.
func Opt(term *Term) *Term { return &Term{Kind: KindOptional, Sub: []*Term{term}} }

// Star matches term zero or more times, consuming as many repetitions as
// possible.
func Star(term *Term) *Term { return &Term{Kind: KindZeroOrMore, Sub: []*Term{term}} }

// Capture matches term and, if it succeeds, records its result in capture
// slot slot (0-4) for the enclosing Production's Parse callback to read.
func Capture(slot int, term *Term) *Term {
	return &Term{Kind: KindCapture, Slot: slot, Sub: []*Term{term}}
}

// CutTerm is a zero-width term that always succeeds and marks the
// enclosing Or alternative (if any) as committed: once evaluation passes a
// Cut, a later failure in the same alternative is no longer recoverable by
// trying the Or's remaining alternatives.
func CutTerm() *Term { return &Term{Kind: KindCut} }

// ParseFunc builds the typed AST node for a production once its Term has
// matched, reading whatever was recorded into caps by Capture subterms.
type ParseFunc func(caps *Captures) (any, error)

// Production is a single named grammar rule.
type Production struct {
	Name  string
	Term  *Term
	Parse ParseFunc
}

// Registry owns the set of named productions that make up a grammar. It
// supports two-phase construction: Declare reserves a name up front (so
// other productions under construction can refer to it via NT), and
// Define later attaches the actual Term and ParseFunc. Freeze verifies
// every declared name was defined and that every NT reference names a
// declared production, then prevents further registration.
type Registry struct {
	prods  *swiss.Map[string, *Production]
	frozen bool
}

// NewRegistry creates an empty, unfrozen Registry. It uses a mutable
// swiss.Map rather than the persistent collections the rest of this
// module favors: a Registry is built once, during process or interpreter
// startup, by a single goroutine before any parsing happens, so it has no
// use for structural sharing across versions — only for fast repeated
// name lookups once frozen.
func NewRegistry() *Registry {
	return &Registry{prods: swiss.NewMap[string, *Production](64)}
}

// Declare reserves name, returning the (initially empty) Production so
// that other productions can reference it via NT(name) before Define is
// called on it.
func (r *Registry) Declare(name string) *Production {
	if r.frozen {
		panic("grammar: Declare called on a frozen Registry")
	}
	if p, ok := r.prods.Get(name); ok {
		return p
	}
	p := &Production{Name: name}
	r.prods.Put(name, p)
	return p
}

// Define attaches term and parse to the production previously reserved by
// Declare(name), declaring it first if needed.
func (r *Registry) Define(name string, term *Term, parse ParseFunc) *Production {
	p := r.Declare(name)
	p.Term = term
	p.Parse = parse
	return p
}

// Lookup returns the named production, or nil if it was never declared.
func (r *Registry) Lookup(name string) *Production {
	p, _ := r.prods.Get(name)
	return p
}

// Freeze checks that every production referenced by name was actually
// defined, and that every declared production has a Term, then locks the
// Registry against further registration. It is intended to run once per
// process (or once per *Registry instance if a host wants isolated
// grammars, e.g. in tests), not per parse.
func (r *Registry) Freeze() error {
	var firstErr error
	r.prods.Iter(func(name string, p *Production) (stop bool) {
		if p.Term == nil {
			firstErr = &UndefinedProductionError{Name: name}
			return true
		}
		if err := r.checkRefs(p.Term); err != nil {
			firstErr = err
			return true
		}
		return false
	})
	if firstErr != nil {
		return firstErr
	}
	r.frozen = true
	return nil
}

func (r *Registry) checkRefs(t *Term) error {
	if t == nil {
		return nil
	}
	if t.Kind == KindNonTerminal {
		if _, ok := r.prods.Get(t.Name); !ok {
			return &UndefinedProductionError{Name: t.Name}
		}
		return nil
	}
	for _, sub := range t.Sub {
		if err := r.checkRefs(sub); err != nil {
			return err
		}
	}
	return nil
}

// UndefinedProductionError reports a Declare without a matching Define, or
// an NT reference to a name that was never declared.
type UndefinedProductionError struct{ Name string }

func (e *UndefinedProductionError) Error() string {
	return "grammar: production " + e.Name + " is referenced but never defined"
}
