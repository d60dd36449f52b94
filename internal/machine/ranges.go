package machine

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/jacoelho/cmv/internal/limits"
)

type transitionKind uint8

const (
	transitionNone transitionKind = iota
	transitionValid
	transitionToStart
	transitionFromEnd
	transitionFromEndToStart
	transitionFromEndToStartInc
)

// transition is one entry of the counted-range transition table. checks
// lists range indexes whose counter must be within bounds when the edge
// leaves their last position; inits lists range indexes whose counter is
// set to 1 when the edge enters their first position; inc is the range
// incremented when the edge closes and reopens the same range.
type transition struct {
	kind   transitionKind
	to     int
	checks []int
	inits  []int
	inc    int
}

// Ranges is the automaton variant whose transitions manipulate per-range
// occurrence counters.
type Ranges struct {
	name   string
	states int
	rows   map[string][]transition
	limits []limits.Limits
	// finals maps each accepting state to the ranges checked on exit.
	finals map[int][]int
}

// NewRanges creates a counted-range automaton. rangeLimits holds the bounds
// of every range in the expression, indexed by range position.
func NewRanges(name string, states int, rangeLimits []limits.Limits) *Ranges {
	return &Ranges{
		name:   name,
		states: states,
		rows:   make(map[string][]transition),
		limits: rangeLimits,
		finals: map[int][]int{Start: nil},
	}
}

func (m *Ranges) add(symbol string, from int, t transition) bool {
	row, ok := m.rows[symbol]
	if !ok {
		row = make([]transition, m.states)
		m.rows[symbol] = row
	}
	if row[from].kind != transitionNone {
		return false
	}
	row[from] = t
	return true
}

// AddValid records an edge that crosses no range boundary.
func (m *Ranges) AddValid(symbol string, from, to int) bool {
	return m.add(symbol, from, transition{kind: transitionValid, to: to})
}

// AddToStart records an edge entering the first position of the listed
// ranges.
func (m *Ranges) AddToStart(symbol string, from, to int, inits []int) bool {
	return m.add(symbol, from, transition{kind: transitionToStart, to: to, inits: inits})
}

// AddFromEnd records an edge leaving the last position of the listed
// ranges.
func (m *Ranges) AddFromEnd(symbol string, from, to int, checks []int) bool {
	return m.add(symbol, from, transition{kind: transitionFromEnd, to: to, checks: checks})
}

// AddFromEndToStart records an edge that leaves some ranges and enters
// others, none of which is the same range.
func (m *Ranges) AddFromEndToStart(symbol string, from, to int, checks, inits []int) bool {
	return m.add(symbol, from, transition{kind: transitionFromEndToStart, to: to, checks: checks, inits: inits})
}

// AddFromEndToStartInc records an edge that closes and reopens range inc,
// incrementing its counter, besides checking and initializing the others.
func (m *Ranges) AddFromEndToStartInc(symbol string, from, to int, checks, inits []int, inc int) bool {
	return m.add(symbol, from, transition{kind: transitionFromEndToStartInc, to: to, checks: checks, inits: inits, inc: inc})
}

// SetFinalStates replaces the accepting-state map. Each accepting state
// lists the ranges whose counters are verified when validation ends there.
func (m *Ranges) SetFinalStates(finals map[int][]int) {
	m.finals = finals
}

// InitialState returns a cursor at the start state with zeroed counters.
func (m *Ranges) InitialState() Cursor {
	return &rangesCursor{m: m, counts: make([]int, len(m.limits))}
}

// Dump renders the transition table with counter actions, the range
// bounds, and the final states.
func (m *Ranges) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "automaton %q\n", m.name)
	for i, l := range m.limits {
		fmt.Fprintf(&sb, "range %d: %s\n", i, l)
	}
	for _, symbol := range sortedSymbols(m.rows) {
		fmt.Fprintf(&sb, "%q:\n", symbol)
		for from, t := range m.rows[symbol] {
			if t.kind == transitionNone {
				continue
			}
			fmt.Fprintf(&sb, "\t%d -> %d", from, t.to)
			switch t.kind {
			case transitionToStart:
				fmt.Fprintf(&sb, " init %v", t.inits)
			case transitionFromEnd:
				fmt.Fprintf(&sb, " check %v", t.checks)
			case transitionFromEndToStart:
				fmt.Fprintf(&sb, " check %v init %v", t.checks, t.inits)
			case transitionFromEndToStartInc:
				fmt.Fprintf(&sb, " inc %d check %v init %v", t.inc, t.checks, t.inits)
			}
			sb.WriteByte('\n')
		}
	}
	fmt.Fprintf(&sb, "start: %d\nfinals:", Start)
	for _, state := range slices.Sorted(maps.Keys(m.finals)) {
		fmt.Fprintf(&sb, " %d%v", state, m.finals[state])
	}
	sb.WriteByte('\n')
	return sb.String()
}

type rangesCursor struct {
	m      *Ranges
	state  int
	counts []int
}

func (c *rangesCursor) Step(symbol string) bool {
	row, ok := c.m.rows[symbol]
	if !ok {
		return false
	}
	t := row[c.state]
	switch t.kind {
	case transitionNone:
		return false
	case transitionValid:
		c.state = t.to
		return true
	case transitionToStart:
		c.state = t.to
		c.init(t.inits)
		return true
	case transitionFromEnd:
		c.state = t.to
		return c.check(t.checks)
	case transitionFromEndToStart:
		c.state = t.to
		if !c.check(t.checks) {
			return false
		}
		c.init(t.inits)
		return true
	case transitionFromEndToStartInc:
		if !c.increment(t.inc) {
			return false
		}
		c.state = t.to
		if !c.check(t.checks) {
			return false
		}
		c.init(t.inits)
		return true
	}
	return false
}

func (c *rangesCursor) init(ranges []int) {
	for _, r := range ranges {
		c.counts[r] = 1
	}
}

func (c *rangesCursor) check(ranges []int) bool {
	for _, r := range ranges {
		if !c.m.limits[r].Check(c.counts[r]) {
			return false
		}
	}
	return true
}

func (c *rangesCursor) increment(r int) bool {
	c.counts[r]++
	return c.m.limits[r].CheckMax(c.counts[r])
}

func (c *rangesCursor) Valid(symbol string) bool {
	probe := rangesCursor{m: c.m, state: c.state, counts: slices.Clone(c.counts)}
	return probe.Step(symbol)
}

func (c *rangesCursor) ValidNextSymbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, symbol := range sortedSymbols(c.m.rows) {
			if c.Valid(symbol) && !yield(symbol) {
				return
			}
		}
	}
}

func (c *rangesCursor) Accepting() bool {
	checks, ok := c.m.finals[c.state]
	if !ok {
		return false
	}
	return c.check(checks)
}
