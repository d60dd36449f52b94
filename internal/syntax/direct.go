package syntax

import "github.com/jacoelho/cmv/errors"

// DirectBuilder assembles the tree from operations in expression order:
// operands arrive between their operators, Push/Pop delimit groups. This
// is the driver the surface parser feeds and the reference for operator
// semantics.
type DirectBuilder struct {
	tree  *Tree
	stack []directFrame
	cur   directFrame
}

// directFrame is one grouping level: the subtree built so far, the node
// operations currently apply to, and that node's parent. opSet records
// that the level's n-ary operator has been installed; later n-ary calls at
// the same level extend it implicitly.
type directFrame struct {
	root   *Node
	crt    *Node
	parent *Node
	opSet  bool
}

// NewDirect creates a direct-notation builder for a named expression.
func NewDirect(name string) *DirectBuilder {
	return &DirectBuilder{tree: NewTree(name)}
}

// Tree finalizes and returns the expression tree.
func (b *DirectBuilder) Tree() *Tree {
	b.tree.SetRoot(b.cur.root)
	return b.tree
}

func (b *DirectBuilder) addLeaf(n *Node) error {
	if b.cur.root == nil {
		b.cur.root, b.cur.crt, b.cur.parent = n, n, nil
		return nil
	}
	if b.cur.parent == nil {
		return &errors.MalformedTree{Message: "operand without a connecting operator"}
	}
	b.cur.parent.Children = append(b.cur.parent.Children, n)
	b.cur.crt = n
	return nil
}

// addUnary wraps the current node.
func (b *DirectBuilder) addUnary(op *Node) error {
	if b.cur.crt == nil {
		return &errors.MalformedTree{Message: "unary operator " + op.Kind.String() + " has no operand"}
	}
	if b.cur.crt.Kind == KindInterleave {
		return &errors.MalformedTree{Message: "interleave must be the root operator"}
	}
	op.Children = []*Node{b.cur.crt}
	if b.cur.parent == nil {
		b.cur.root = op
	} else {
		replaceChild(b.cur.parent, b.cur.crt, op)
	}
	b.cur.crt = op
	return nil
}

// addNary installs the level's n-ary operator above the current node. Once
// set, further operands join it as siblings and repeated operator calls at
// the level are no-ops.
func (b *DirectBuilder) addNary(op *Node) error {
	if b.cur.crt == nil {
		return &errors.MalformedTree{Message: "operator " + op.Kind.String() + " has no left operand"}
	}
	if b.cur.opSet {
		return nil
	}
	if b.cur.crt.Kind == KindInterleave {
		return &errors.MalformedTree{Message: "interleave must be the root operator"}
	}
	op.Children = []*Node{b.cur.crt}
	if b.cur.parent == nil {
		b.cur.root = op
	} else {
		replaceChild(b.cur.parent, b.cur.crt, op)
	}
	b.cur.parent = op
	b.cur.opSet = true
	return nil
}

// Symbol adds a symbol operand.
func (b *DirectBuilder) Symbol(value string) error {
	return b.addLeaf(b.tree.NewSymbol(value))
}

// Epsilon adds an empty-symbol operand.
func (b *DirectBuilder) Epsilon() error {
	return b.addLeaf(b.tree.NewEmpty())
}

// Opt wraps the current node in "?".
func (b *DirectBuilder) Opt() error { return b.addUnary(b.tree.NewOp(KindOpt)) }

// Star wraps the current node in "*".
func (b *DirectBuilder) Star() error { return b.addUnary(b.tree.NewOp(KindStar)) }

// Plus wraps the current node in "+".
func (b *DirectBuilder) Plus() error { return b.addUnary(b.tree.NewOp(KindPlus)) }

// Neutral wraps the current node in the identity operator.
func (b *DirectBuilder) Neutral() error { return b.addUnary(b.tree.NewOp(KindNeutral)) }

// Range applies an occurrence range to the current node, reduced to a
// simpler operator when possible.
func (b *DirectBuilder) Range(min, max int) error { return applyRange(b, min, max) }

func (b *DirectBuilder) addRange(min, max int) error {
	n, err := b.tree.NewRange(min, max)
	if err != nil {
		return err
	}
	return b.addUnary(n)
}

// And makes the current level a concatenation.
func (b *DirectBuilder) And() error { return b.addNary(b.tree.NewOp(KindSeq)) }

// Or makes the current level an alternation.
func (b *DirectBuilder) Or() error { return b.addNary(b.tree.NewOp(KindChoice)) }

// All makes the current level an interleave.
func (b *DirectBuilder) All() error { return b.addNary(b.tree.NewOp(KindInterleave)) }

// Push opens a group.
func (b *DirectBuilder) Push() error {
	b.stack = append(b.stack, b.cur)
	b.cur = directFrame{}
	return nil
}

// Pop closes the current group and grafts it into the enclosing level, as
// the level's first operand or as a sibling of the current node.
func (b *DirectBuilder) Pop() error {
	if len(b.stack) == 0 {
		return &errors.MalformedTree{Message: "group close without group open"}
	}
	finished := b.cur
	b.cur = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	if finished.root == nil {
		return &errors.MalformedTree{Message: "empty group"}
	}

	switch {
	case b.cur.root == nil:
		b.cur.root, b.cur.crt, b.cur.parent = finished.root, finished.root, nil
	case b.cur.crt == b.cur.root:
		if finished.root.Kind == KindInterleave {
			return &errors.MalformedTree{Message: "interleave must be the root operator"}
		}
		b.cur.crt.Children = append(b.cur.crt.Children, finished.root)
		b.cur.parent = b.cur.crt
		b.cur.crt = finished.root
	default:
		if finished.root.Kind == KindInterleave {
			return &errors.MalformedTree{Message: "interleave must be the root operator"}
		}
		b.cur.parent.Children = append(b.cur.parent.Children, finished.root)
		b.cur.crt = finished.root
	}
	return nil
}
