// Package cmv compiles content model expressions of the kind used by XML
// schema languages into deterministic finite automata and validates
// symbol sequences against them.
//
// Expressions combine symbols with concatenation, alternation, counted
// repetition, and interleave, and must be 1-unambiguous: at every point of
// the input, at most one transition may fire on a symbol without
// lookahead. Ambiguous expressions fail to compile.
package cmv

import (
	"iter"

	"github.com/jacoelho/cmv/internal/machine"
	"github.com/jacoelho/cmv/internal/syntax"
)

// Cursor tracks one validation run against a compiled model. A cursor is
// exclusively owned by its caller; after Step returns false the cursor is
// spent and must not be reused.
type Cursor interface {
	// Step consumes one symbol and reports whether the transition was
	// valid.
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

// Compiler builds one content model expression and compiles it. The zero
// value is not usable; create compilers with New or NewReversePolish. A
// compiler whose operation or Compile call returned an error is left in an
// unusable state and should be discarded.
type Compiler struct {
	name    string
	builder syntax.Builder
	model   *Model
}

// New returns a compiler fed in direct notation: operands arrive between
// their operators, the way the textual expression reads.
func New(name string) *Compiler {
	return &Compiler{name: name, builder: syntax.NewDirect(name)}
}

// NewReversePolish returns a compiler fed in reverse Polish notation:
// each operator is pushed before its operands and closed with Pop.
func NewReversePolish(name string) *Compiler {
	return &Compiler{name: name, builder: syntax.NewRPN(name)}
}

// Compile parses a textual expression and compiles it in one step.
func Compile(name, expression string) (*Model, error) {
	c := New(name)
	if err := c.Parse(expression); err != nil {
		return nil, err
	}
	return c.Compile()
}

// Parse feeds a textual expression through the surface grammar: "(" and
// ")" (or "^") group, "?", "*", "+" and "[m,n]" (n may be "*") are postfix
// operators, ",", "|" and "&" are concatenation, alternation and
// interleave, whitespace between tokens is ignored, and any other run of
// characters is a symbol.
func (c *Compiler) Parse(expression string) error {
	return syntax.Parse(c.builder, expression)
}

// Symbol adds a symbol operand.
func (c *Compiler) Symbol(value string) error { return c.builder.Symbol(value) }

// Symbols adds several symbol operands in order.
func (c *Compiler) Symbols(values ...string) error {
	for _, value := range values {
		if err := c.builder.Symbol(value); err != nil {
			return err
		}
	}
	return nil
}

// Epsilon adds an empty-symbol operand, matching the empty input.
func (c *Compiler) Epsilon() error { return c.builder.Epsilon() }

// Opt applies the "?" operator.
func (c *Compiler) Opt() error { return c.builder.Opt() }

// Star applies the "*" operator.
func (c *Compiler) Star() error { return c.builder.Star() }

// Plus applies the "+" operator.
func (c *Compiler) Plus() error { return c.builder.Plus() }

// Neutral applies the identity operator, preserving a named scope.
func (c *Compiler) Neutral() error { return c.builder.Neutral() }

// Range applies the counted repetition [min,max]; max -1 means unbounded.
// Trivial ranges reduce to ?, *, +, or nothing.
func (c *Compiler) Range(min, max int) error { return c.builder.Range(min, max) }

// And applies concatenation.
func (c *Compiler) And() error { return c.builder.And() }

// Or applies alternation.
func (c *Compiler) Or() error { return c.builder.Or() }

// All applies the interleave operator; it must be the root of the
// expression.
func (c *Compiler) All() error { return c.builder.All() }

// Push opens a group.
func (c *Compiler) Push() error { return c.builder.Push() }

// Pop closes the current group or operator.
func (c *Compiler) Pop() error { return c.builder.Pop() }

// PopN pops n times.
func (c *Compiler) PopN(n int) error {
	for ; n > 0; n-- {
		if err := c.builder.Pop(); err != nil {
			return err
		}
	}
	return nil
}

// Compile builds the automaton. The first call compiles; subsequent calls
// return the same model. Compilation fails with AmbiguousContentModel
// when the expression is not deterministic and MalformedTree when the
// operator structure is invalid.
func (c *Compiler) Compile() (*Model, error) {
	if c.model != nil {
		return c.model, nil
	}
	tree := c.builder.Tree()
	automaton, err := tree.Compile()
	if err != nil {
		return nil, err
	}
	c.model = &Model{name: c.name, tree: tree, automaton: automaton}
	return c.model, nil
}

var _ Cursor = machine.Cursor(nil)
