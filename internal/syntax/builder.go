package syntax

import "github.com/jacoelho/cmv/internal/limits"

// Builder is the operation set shared by the two notation drivers. Every
// operation reports structural misuse as an error; the tree is retrieved
// with Tree once building is done.
type Builder interface {
	Symbol(value string) error
	Epsilon() error
	Opt() error
	Star() error
	Plus() error
	Neutral() error
	Range(min, max int) error
	And() error
	Or() error
	All() error
	Push() error
	Pop() error
	Tree() *Tree
}

type rangeTarget interface {
	Opt() error
	Star() error
	Plus() error
	addRange(min, max int) error
}

// applyRange reduces trivial occurrence ranges to their simpler operator
// before creating a true range node: [0,1] is ?, [0,*] is *, [1,*] is +,
// and [1,1] is the identity.
func applyRange(b rangeTarget, min, max int) error {
	switch {
	case min == 0 && max == 1:
		return b.Opt()
	case min == 0 && max == limits.Unbounded:
		return b.Star()
	case min == 1 && max == limits.Unbounded:
		return b.Plus()
	case min == 1 && max == 1:
		return nil
	default:
		return b.addRange(min, max)
	}
}

func replaceChild(parent, old, replacement *Node) {
	for i, child := range parent.Children {
		if child == old {
			parent.Children[i] = replacement
			return
		}
	}
}
