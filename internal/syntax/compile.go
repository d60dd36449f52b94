package syntax

import (
	"github.com/jacoelho/cmv/errors"
	"github.com/jacoelho/cmv/internal/limits"
	"github.com/jacoelho/cmv/internal/machine"
	"github.com/jacoelho/cmv/internal/posset"
)

// Compile checks the tree, runs the function pass, and builds the
// automaton variant the expression calls for: interleave when the root is
// "&", counted ranges when any range node is present, and the plain
// transition table otherwise.
func (t *Tree) Compile() (machine.Automaton, error) {
	root := t.root
	if root == nil {
		// an empty expression accepts only empty input
		return machine.NewNoRanges(t.Name, 1), nil
	}

	for n := range PostOrder(root) {
		if err := n.check(); err != nil {
			return nil, err
		}
		if n.Kind == KindInterleave && n != root {
			return nil, &errors.MalformedTree{Message: "interleave must be the root operator"}
		}
	}

	if root.Kind == KindInterleave {
		return t.compileInterleave(root)
	}

	if err := t.Analyze(); err != nil {
		return nil, err
	}

	if len(t.ranges) > 0 {
		return t.compileRanges(root)
	}
	return t.compileNoRanges(root)
}

// compileInterleave builds the single-state automaton for "all" content
// models. Each child contributes one distinct symbol, optional when
// wrapped in "?".
func (t *Tree) compileInterleave(root *Node) (machine.Automaton, error) {
	m := machine.NewInterleave(t.Name)
	for _, child := range root.Children {
		symbol := child
		optional := false
		if child.Kind == KindOpt {
			symbol = child.Children[0]
			optional = true
		}
		if !m.Add(symbol.Value, optional) {
			return nil, &errors.AmbiguousContentModel{
				Symbol:  symbol.Value,
				Message: "duplicate symbol in interleave",
			}
		}
	}
	return m, nil
}

// finalPositions returns lastpos of the root, extended with the start
// state when the expression is nullable.
func (t *Tree) finalPositions(root *Node) *posset.Set {
	finals := root.last.Clone()
	if root.nullable {
		finals.Add(machine.Start)
	}
	return finals
}

func (t *Tree) compileNoRanges(root *Node) (machine.Automaton, error) {
	m := machine.NewNoRanges(t.Name, t.states())

	add := func(from int, targets *posset.Set) error {
		for to := range targets.All() {
			symbol := t.alphabet[to].Value
			if !m.AddTransition(symbol, from, to) {
				return &errors.AmbiguousContentModel{
					Symbol:  symbol,
					Message: "two transitions from one state on the same symbol",
				}
			}
		}
		return nil
	}

	if err := add(machine.Start, root.first); err != nil {
		return nil, err
	}
	for from := 1; from < t.states(); from++ {
		if err := add(from, t.follow[from]); err != nil {
			return nil, err
		}
	}

	m.SetFinalStates(t.finalPositions(root))
	return m, nil
}

func (t *Tree) compileRanges(root *Node) (machine.Automaton, error) {
	bounds := make([]limits.Limits, len(t.ranges))
	for i, r := range t.ranges {
		bounds[i] = r.Bounds
	}
	m := machine.NewRanges(t.Name, t.states(), bounds)

	add := func(from int, targets *posset.Set) error {
		for to := range targets.All() {
			if err := t.addRangeTransition(m, from, to); err != nil {
				return err
			}
		}
		return nil
	}

	if err := add(machine.Start, root.first); err != nil {
		return nil, err
	}
	for from := 1; from < t.states(); from++ {
		if err := add(from, t.follow[from]); err != nil {
			return nil, err
		}
	}

	finals := make(map[int][]int)
	for p := range t.finalPositions(root).All() {
		if p == machine.Start {
			// the start state is final only through nullability; no edge
			// enters it, so no range can end there
			finals[p] = nil
			continue
		}
		finals[p] = t.endRanges[p].Values()
	}
	m.SetFinalStates(finals)
	return m, nil
}

// addRangeTransition classifies the edge from -> to by the range
// boundaries it crosses and records the matching transition kind.
func (t *Tree) addRangeTransition(m *machine.Ranges, from, to int) error {
	symbol := t.alphabet[to].Value

	startRanges := t.startRanges[to]
	endRanges := posset.New()
	if from != machine.Start {
		// no range ends on the start state
		endRanges = t.endRanges[from]
	}

	var ok bool
	switch {
	case startRanges.Empty() && endRanges.Empty():
		ok = m.AddValid(symbol, from, to)

	case !startRanges.Empty() && endRanges.Empty():
		inits := t.relevantRanges(startRanges, from, -1)
		if len(inits) == 0 {
			ok = m.AddValid(symbol, from, to)
		} else {
			ok = m.AddToStart(symbol, from, to, inits)
		}

	case startRanges.Empty() && !endRanges.Empty():
		checks := t.relevantRanges(endRanges, to, -1)
		if len(checks) == 0 {
			ok = m.AddValid(symbol, from, to)
		} else {
			ok = m.AddFromEnd(symbol, from, to, checks)
		}

	default:
		if r, looped := t.pairs[[2]int{from, to}]; looped {
			// the edge closes and reopens r: increment its counter and
			// leave it out of the check and init lists
			inits := t.relevantRanges(startRanges, from, r.Index)
			checks := t.relevantRanges(endRanges, to, r.Index)
			ok = m.AddFromEndToStartInc(symbol, from, to, checks, inits, r.Index)
			break
		}
		inits := t.relevantRanges(startRanges, from, -1)
		checks := t.relevantRanges(endRanges, to, -1)
		switch {
		case len(inits) == 0 && len(checks) == 0:
			ok = m.AddValid(symbol, from, to)
		case len(inits) != 0 && len(checks) == 0:
			ok = m.AddToStart(symbol, from, to, inits)
		case len(inits) == 0 && len(checks) != 0:
			ok = m.AddFromEnd(symbol, from, to, checks)
		default:
			ok = m.AddFromEndToStart(symbol, from, to, checks, inits)
		}
	}

	if !ok {
		return &errors.AmbiguousContentModel{
			Symbol:  symbol,
			Message: "two transitions from one state on the same symbol",
		}
	}
	return nil
}

// relevantRanges filters candidate range indexes down to those whose
// boundary the edge actually crosses: a range the endpoint is internal to
// does not open or close on this edge. skip names a range excluded
// outright (the incrementing range of a loop edge); -1 skips none.
func (t *Tree) relevantRanges(candidates *posset.Set, endpoint int, skip int) []int {
	var out []int
	for i := range candidates.All() {
		if i == skip {
			continue
		}
		if t.ranges[i].internal.Contains(endpoint) {
			continue
		}
		out = append(out, i)
	}
	return out
}
