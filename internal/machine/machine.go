// Package machine implements the deterministic automata executed during
// validation: a plain transition-table variant, a counted-range variant
// whose transitions carry counter actions, and a single-state interleave
// variant.
package machine

import "iter"

// Start is the initial state of every table-driven automaton.
const Start = 0

const noTransition = -1

// Automaton is a compiled content model. It is immutable once built and may
// be shared; each validation run obtains its own Cursor.
type Automaton interface {
	// InitialState returns a fresh cursor positioned at the start state.
	InitialState() Cursor

	// Dump renders the transition table and final states for debugging.
	Dump() string
}

// Cursor tracks one validation run. Cursors are exclusively owned by their
// caller and must not be shared between goroutines. After Step returns
// false the cursor is spent and must not be reused.
type Cursor interface {
	// Step consumes one symbol, advancing the cursor. It reports whether
	// the transition was valid.
	Step(symbol string) bool

	// Valid reports whether Step would succeed on symbol, without
	// consuming it.
	Valid(symbol string) bool

	// ValidNextSymbols yields, in sorted order, every symbol on which
	// Valid currently reports true.
	ValidNextSymbols() iter.Seq[string]

	// Accepting reports whether the input consumed so far is a complete
	// match.
	Accepting() bool
}
