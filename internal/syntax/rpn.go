package syntax

import "github.com/jacoelho/cmv/errors"

// RPNBuilder assembles the tree in reverse Polish order: an operator is
// pushed before its operands, operands attach to the innermost open
// operator, and Pop closes it. (a,b)*|(c,d) is built as
// Or Star And a b Pop Pop And c d.
type RPNBuilder struct {
	tree  *Tree
	root  *Node
	crt   *Node
	stack []*Node
}

// NewRPN creates a reverse-Polish builder for a named expression.
func NewRPN(name string) *RPNBuilder {
	return &RPNBuilder{tree: NewTree(name)}
}

// Tree finalizes and returns the expression tree.
func (b *RPNBuilder) Tree() *Tree {
	b.tree.SetRoot(b.root)
	return b.tree
}

func (b *RPNBuilder) add(n *Node) error {
	if b.crt == nil {
		if b.root != nil {
			return &errors.MalformedTree{Message: "expression already has a root"}
		}
		b.root = n
		return nil
	}
	if b.crt.Kind.unary() && len(b.crt.Children) != 0 {
		return &errors.MalformedTree{Message: "unary operator " + b.crt.Kind.String() + " takes a single operand"}
	}
	b.crt.Children = append(b.crt.Children, n)
	return nil
}

func (b *RPNBuilder) pushOperator(op *Node) error {
	if op.Kind == KindInterleave && (b.crt != nil || b.root != nil) {
		return &errors.MalformedTree{Message: "interleave must be the root operator"}
	}
	if err := b.add(op); err != nil {
		return err
	}
	b.stack = append(b.stack, op)
	b.crt = op
	return nil
}

// Symbol adds a symbol operand to the open operator.
func (b *RPNBuilder) Symbol(value string) error {
	return b.add(b.tree.NewSymbol(value))
}

// Symbols adds several symbol operands in order.
func (b *RPNBuilder) Symbols(values ...string) error {
	for _, value := range values {
		if err := b.Symbol(value); err != nil {
			return err
		}
	}
	return nil
}

// Epsilon adds an empty-symbol operand.
func (b *RPNBuilder) Epsilon() error {
	return b.add(b.tree.NewEmpty())
}

// Opt opens a "?" operator.
func (b *RPNBuilder) Opt() error { return b.pushOperator(b.tree.NewOp(KindOpt)) }

// Star opens a "*" operator.
func (b *RPNBuilder) Star() error { return b.pushOperator(b.tree.NewOp(KindStar)) }

// Plus opens a "+" operator.
func (b *RPNBuilder) Plus() error { return b.pushOperator(b.tree.NewOp(KindPlus)) }

// Neutral opens an identity operator.
func (b *RPNBuilder) Neutral() error { return b.pushOperator(b.tree.NewOp(KindNeutral)) }

// Range opens an occurrence range, reduced to a simpler operator when
// possible.
func (b *RPNBuilder) Range(min, max int) error { return applyRange(b, min, max) }

func (b *RPNBuilder) addRange(min, max int) error {
	n, err := b.tree.NewRange(min, max)
	if err != nil {
		return err
	}
	return b.pushOperator(n)
}

// And opens a concatenation.
func (b *RPNBuilder) And() error { return b.pushOperator(b.tree.NewOp(KindSeq)) }

// Or opens an alternation.
func (b *RPNBuilder) Or() error { return b.pushOperator(b.tree.NewOp(KindChoice)) }

// All opens an interleave; it must be the first operator.
func (b *RPNBuilder) All() error { return b.pushOperator(b.tree.NewOp(KindInterleave)) }

// Push is a no-op in reverse Polish notation.
func (b *RPNBuilder) Push() error { return nil }

// Pop closes the innermost open operator.
func (b *RPNBuilder) Pop() error {
	if len(b.stack) == 0 {
		return &errors.MalformedTree{Message: "pop without an open operator"}
	}
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) > 0 {
		b.crt = b.stack[len(b.stack)-1]
	}
	return nil
}
