package cmv

import (
	"iter"
	"strings"

	"github.com/jacoelho/cmv/internal/machine"
	"github.com/jacoelho/cmv/internal/syntax"
	"github.com/jacoelho/cmv/internal/token"
)

// Model is a compiled content model. It is immutable and may be shared
// between goroutines; each validation run uses its own cursor.
type Model struct {
	name      string
	tree      *syntax.Tree
	automaton machine.Automaton
}

// Name returns the name the model was created with.
func (m *Model) Name() string {
	return m.name
}

// Expression renders the compiled expression back as text.
func (m *Model) Expression() string {
	return m.tree.String()
}

// InitialState returns a fresh validation cursor at the start state.
func (m *Model) InitialState() Cursor {
	return m.automaton.InitialState()
}

// Alphabet yields the unique symbol strings of the expression in sorted
// order.
func (m *Model) Alphabet() iter.Seq[string] {
	symbols := m.tree.Symbols()
	return func(yield func(string) bool) {
		for _, s := range symbols {
			if !yield(s) {
				return
			}
		}
	}
}

// Validate tokenizes input on commas and whitespace, steps the automaton
// through each token, and reports whether it ends accepting. Empty input
// is valid exactly when the expression matches the empty sequence.
func (m *Model) Validate(input string) bool {
	cursor := m.automaton.InitialState()
	for tok := range token.Tokens(input) {
		if !cursor.Step(tok) {
			return false
		}
	}
	return cursor.Accepting()
}

// Dump renders the syntax tree with its position functions and the
// automaton, for debugging.
func (m *Model) Dump() string {
	var sb strings.Builder
	sb.WriteString(m.tree.Dump())
	sb.WriteString(m.automaton.Dump())
	return sb.String()
}
