// Package syntax builds content model expression trees, computes the
// position functions over them, and compiles them into automata.
package syntax

import (
	"iter"
	"slices"
	"strings"

	"github.com/jacoelho/cmv/errors"
	"github.com/jacoelho/cmv/internal/limits"
	"github.com/jacoelho/cmv/internal/posset"
)

// Kind identifies a syntax tree node.
type Kind uint8

const (
	KindSymbol Kind = iota
	KindEmpty
	KindOpt
	KindStar
	KindPlus
	KindNeutral
	KindRange
	KindSeq
	KindChoice
	KindInterleave
)

func (k Kind) leaf() bool {
	return k == KindSymbol || k == KindEmpty
}

func (k Kind) unary() bool {
	switch k {
	case KindOpt, KindStar, KindPlus, KindNeutral, KindRange:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindEmpty:
		return "empty"
	case KindOpt:
		return "?"
	case KindStar:
		return "*"
	case KindPlus:
		return "+"
	case KindNeutral:
		return "neutral"
	case KindRange:
		return "range"
	case KindSeq:
		return ","
	case KindChoice:
		return "|"
	case KindInterleave:
		return "&"
	}
	return "?"
}

// Node is a syntax tree node. Children are owned; sibling and parent
// relationships exist only inside the builders while the tree is under
// construction.
type Node struct {
	Kind     Kind
	Children []*Node

	// Value and Pos are set for symbol leaves. The empty symbol has
	// Value == "" and Pos == 0.
	Value string
	Pos   int

	// Bounds and Index are set for range nodes.
	Bounds limits.Limits
	Index  int

	// computed by the function pass
	nullable bool
	first    *posset.Set
	last     *posset.Set
	internal *posset.Set
}

// check verifies the node's structural invariants.
func (n *Node) check() error {
	switch {
	case n.Kind.leaf():
		if len(n.Children) != 0 {
			return &errors.MalformedTree{Message: "symbol cannot have operands"}
		}
	case n.Kind.unary():
		if len(n.Children) != 1 {
			return &errors.MalformedTree{Message: "unary operator " + n.Kind.String() + " requires exactly one operand"}
		}
	default:
		if len(n.Children) < 2 {
			return &errors.MalformedTree{Message: "operator " + n.Kind.String() + " requires at least two operands"}
		}
	}
	if n.Kind == KindInterleave {
		for _, child := range n.Children {
			if child.Kind.leaf() {
				continue
			}
			if child.Kind == KindOpt && len(child.Children) == 1 && child.Children[0].Kind.leaf() {
				continue
			}
			return &errors.MalformedTree{Message: "interleave operands must be symbols or optional symbols"}
		}
	}
	return nil
}

// String renders the subtree back as expression text.
func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	switch n.Kind {
	case KindSymbol:
		sb.WriteString(n.Value)
	case KindEmpty:
		sb.WriteString("<E>")
	case KindOpt, KindStar, KindPlus:
		n.Children[0].render(sb)
		sb.WriteString(n.Kind.String())
	case KindNeutral:
		n.Children[0].render(sb)
	case KindRange:
		n.Children[0].render(sb)
		sb.WriteString(n.Bounds.String())
	default:
		sb.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(n.Kind.String())
			}
			child.render(sb)
		}
		sb.WriteByte(')')
	}
}

// PostOrder yields every node of the subtree in post-order, children
// before parents, using an explicit stack.
func PostOrder(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		type frame struct {
			node *Node
			next int
		}
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.node.Children) {
				child := top.node.Children[top.next]
				top.next++
				stack = append(stack, frame{node: child})
				continue
			}
			if !yield(top.node) {
				return
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// Tree is an expression under construction: the node structure plus the
// position-indexed side tables shared by the builders and the compiler.
type Tree struct {
	Name string

	root *Node

	// alphabet maps positions to symbol leaves; index 0 is reserved for
	// the empty symbol and stays nil when the expression has none.
	alphabet []*Node
	unique   map[string]struct{}

	// ranges maps range indexes to range nodes, in creation order.
	ranges []*Node

	// filled by the function pass
	follow      []*posset.Set
	startRanges []*posset.Set
	endRanges   []*posset.Set
	pairs       map[[2]int]*Node

	analyzed bool
}

// NewTree creates an empty named expression tree.
func NewTree(name string) *Tree {
	return &Tree{
		Name:     name,
		alphabet: []*Node{nil},
		unique:   make(map[string]struct{}),
	}
}

// NewSymbol allocates the next position and returns a symbol leaf.
func (t *Tree) NewSymbol(value string) *Node {
	n := &Node{Kind: KindSymbol, Value: value, Pos: len(t.alphabet)}
	t.alphabet = append(t.alphabet, n)
	t.unique[value] = struct{}{}
	return n
}

// NewEmpty returns an empty-symbol leaf at the reserved position 0.
func (t *Tree) NewEmpty() *Node {
	n := &Node{Kind: KindEmpty, Pos: 0}
	if t.alphabet[0] == nil {
		t.alphabet[0] = n
	}
	return n
}

// NewRange validates the bounds and returns a range node with the next
// range index.
func (t *Tree) NewRange(min, max int) (*Node, error) {
	bounds, err := limits.New(min, max)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindRange, Bounds: bounds, Index: len(t.ranges)}
	t.ranges = append(t.ranges, n)
	return n, nil
}

// NewOp returns an operator node of the given kind.
func (t *Tree) NewOp(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Root returns the tree root, or nil for an empty expression.
func (t *Tree) Root() *Node {
	return t.root
}

// SetRoot installs the tree root.
func (t *Tree) SetRoot(root *Node) {
	t.root = root
}

// states is the automaton state count: one state per position, including
// the reserved position 0 which doubles as the start state.
func (t *Tree) states() int {
	return len(t.alphabet)
}

// Symbols returns the unique symbol strings of the expression, sorted.
func (t *Tree) Symbols() []string {
	out := make([]string, 0, len(t.unique))
	for s := range t.unique {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// String renders the whole expression.
func (t *Tree) String() string {
	if t.root == nil {
		return ""
	}
	return t.root.String()
}
