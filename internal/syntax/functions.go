package syntax

import (
	"github.com/jacoelho/cmv/errors"
	"github.com/jacoelho/cmv/internal/posset"
)

// Analyze runs the single post-order pass computing nullable, firstpos,
// lastpos, and internalpos per node, followpos per position, and the range
// side tables. Range boundary pairs are recorded in the pair map as part of
// the same pass; a duplicate pair means two counted ranges cannot be told
// apart at runtime and fails compilation. The pair map is consumed later by
// the counted-range transition derivation.
func (t *Tree) Analyze() error {
	if t.analyzed || t.root == nil {
		t.analyzed = true
		return nil
	}

	states := t.states()
	t.follow = newSetTable(states)
	t.startRanges = newSetTable(states)
	t.endRanges = newSetTable(states)
	t.pairs = make(map[[2]int]*Node)

	for n := range PostOrder(t.root) {
		t.calculate(n)
		t.calculateFollow(n)
		if err := t.recordRange(n); err != nil {
			return err
		}
	}
	t.analyzed = true
	return nil
}

func newSetTable(n int) []*posset.Set {
	table := make([]*posset.Set, n)
	for i := range table {
		table[i] = posset.New()
	}
	return table
}

// calculate fills nullable, firstpos, lastpos, and internalpos. Children
// are already done when the post-order traversal reaches the node.
func (t *Tree) calculate(n *Node) {
	switch n.Kind {
	case KindSymbol:
		n.nullable = false
		n.first = posset.Of(n.Pos)
		n.last = posset.Of(n.Pos)
		n.internal = posset.Of(n.Pos)

	case KindEmpty:
		n.nullable = true
		n.first = posset.New()
		n.last = posset.New()
		n.internal = posset.New()

	case KindOpt, KindStar:
		child := n.Children[0]
		n.nullable = true
		n.first = child.first.Clone()
		n.last = child.last.Clone()
		n.internal = child.internal.Clone()

	case KindPlus, KindNeutral:
		child := n.Children[0]
		n.nullable = child.nullable
		n.first = child.first.Clone()
		n.last = child.last.Clone()
		n.internal = child.internal.Clone()

	case KindRange:
		child := n.Children[0]
		n.nullable = n.Bounds.Min == 0 || child.nullable
		n.first = child.first.Clone()
		n.last = child.last.Clone()
		n.internal = child.internal.Clone()
		for p := range n.first.All() {
			t.startRanges[p].Add(n.Index)
		}
		for p := range n.last.All() {
			t.endRanges[p].Add(n.Index)
		}

	case KindSeq:
		n.nullable = true
		n.internal = posset.New()
		for _, child := range n.Children {
			n.nullable = n.nullable && child.nullable
			n.internal.Union(child.internal)
		}
		// firstpos accumulates while every earlier child is nullable,
		// lastpos symmetrically from the right.
		n.first = n.Children[0].first.Clone()
		for i := 0; i < len(n.Children)-1 && n.Children[i].nullable; i++ {
			n.first.Union(n.Children[i+1].first)
		}
		last := len(n.Children) - 1
		n.last = n.Children[last].last.Clone()
		for i := last; i > 0 && n.Children[i].nullable; i-- {
			n.last.Union(n.Children[i-1].last)
		}

	case KindChoice:
		n.nullable = false
		n.first = posset.New()
		n.last = posset.New()
		n.internal = posset.New()
		for _, child := range n.Children {
			n.nullable = n.nullable || child.nullable
			n.first.Union(child.first)
			n.last.Union(child.last)
			n.internal.Union(child.internal)
		}

	case KindInterleave:
		// interleave models are validated without position functions
		n.first = posset.New()
		n.last = posset.New()
		n.internal = posset.New()
	}
}

// calculateFollow applies the followpos rules for the node.
func (t *Tree) calculateFollow(n *Node) {
	switch n.Kind {
	case KindStar, KindPlus, KindRange:
		// repetition loops back: every last position may be followed by
		// every first position
		for p := range n.last.All() {
			t.follow[p].Union(n.first)
		}

	case KindSeq:
		// every last position of the nullable-extended prefix may be
		// followed by the next child's first positions
		prefix := n.Children[0].last.Clone()
		for i := 1; i < len(n.Children); i++ {
			child := n.Children[i]
			for p := range prefix.All() {
				t.follow[p].Union(child.first)
			}
			if child.nullable {
				prefix.Union(child.last)
			} else {
				prefix = child.last.Clone()
			}
		}
	}
}

// recordRange registers every (last, first) boundary pair of a range node.
// A pair already claimed by any range makes the counters indistinguishable
// at runtime: range ambiguity.
func (t *Tree) recordRange(n *Node) error {
	if n.Kind != KindRange {
		return nil
	}
	for from := range n.last.All() {
		for to := range n.first.All() {
			key := [2]int{from, to}
			if _, taken := t.pairs[key]; taken {
				return &errors.AmbiguousContentModel{
					Symbol:  t.alphabet[from].Value,
					Message: "two counted ranges share a boundary pair",
				}
			}
			t.pairs[key] = n
		}
	}
	return nil
}
