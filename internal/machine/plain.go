package machine

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/jacoelho/cmv/internal/posset"
)

// NoRanges is the transition-table automaton used when the expression
// contains neither counted ranges nor an interleave. States are the symbol
// positions of the expression; Start is the extra initial state.
type NoRanges struct {
	name   string
	states int
	rows   map[string][]int
	finals *posset.Set
}

// NewNoRanges creates an automaton with the given number of states. Until
// final states are set, only the start state accepts.
func NewNoRanges(name string, states int) *NoRanges {
	return &NoRanges{
		name:   name,
		states: states,
		rows:   make(map[string][]int),
		finals: posset.Of(Start),
	}
}

// AddTransition records table[symbol][from] = to. It reports false when the
// slot is already taken, which makes the content model ambiguous.
func (m *NoRanges) AddTransition(symbol string, from, to int) bool {
	row, ok := m.rows[symbol]
	if !ok {
		row = newRow(m.states)
		m.rows[symbol] = row
	}
	if row[from] != noTransition {
		return false
	}
	row[from] = to
	return true
}

// SetFinalStates replaces the accepting-state set.
func (m *NoRanges) SetFinalStates(finals *posset.Set) {
	m.finals = finals
}

func newRow(n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = noTransition
	}
	return row
}

func (m *NoRanges) next(symbol string, from int) int {
	row, ok := m.rows[symbol]
	if !ok {
		return noTransition
	}
	return row[from]
}

// InitialState returns a cursor at the start state.
func (m *NoRanges) InitialState() Cursor {
	return &noRangesCursor{m: m}
}

// Dump renders the transition table, start state, and final states.
func (m *NoRanges) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "automaton %q\n", m.name)
	for _, symbol := range sortedSymbols(m.rows) {
		fmt.Fprintf(&sb, "%q:", symbol)
		for from, to := range m.rows[symbol] {
			if to != noTransition {
				fmt.Fprintf(&sb, " %d->%d", from, to)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "start: %d\nfinals: %s\n", Start, m.finals)
	return sb.String()
}

func sortedSymbols[V any](rows map[string]V) []string {
	symbols := make([]string, 0, len(rows))
	for symbol := range rows {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	return symbols
}

type noRangesCursor struct {
	m     *NoRanges
	state int
}

func (c *noRangesCursor) Step(symbol string) bool {
	next := c.m.next(symbol, c.state)
	if next == noTransition {
		return false
	}
	c.state = next
	return true
}

func (c *noRangesCursor) Valid(symbol string) bool {
	return c.m.next(symbol, c.state) != noTransition
}

func (c *noRangesCursor) ValidNextSymbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, symbol := range sortedSymbols(c.m.rows) {
			if c.Valid(symbol) && !yield(symbol) {
				return
			}
		}
	}
}

func (c *noRangesCursor) Accepting() bool {
	return c.m.finals.Contains(c.state)
}
