// Package errors defines the error types reported while building and
// compiling content models.
package errors

import (
	"errors"
	"fmt"
)

// RangeAmbiguityMarker is a marker value for the Symbol of an
// AmbiguousContentModel error when no single symbol can be blamed. The
// compiler does not produce it: a range ambiguity reports the symbol at the
// last position of the shared boundary pair.
const RangeAmbiguityMarker = "range ambiguity"

// BadLimits reports a malformed occurrence range: a negative minimum, or a
// bounded maximum below the minimum. Max == -1 denotes an unbounded maximum.
type BadLimits struct {
	Min int
	Max int
}

// Error formats the offending pair, rendering an unbounded maximum as "*".
func (e *BadLimits) Error() string {
	max := fmt.Sprintf("%d", e.Max)
	if e.Max == -1 {
		max = "*"
	}
	return fmt.Sprintf("bad limits [%d,%s]", e.Min, max)
}

// AmbiguousContentModel reports that the expression is not 1-unambiguous:
// two transitions compete for the same (symbol, state) slot, two counted
// ranges share a boundary pair, or an interleave lists a symbol twice.
type AmbiguousContentModel struct {
	// Symbol is the offending symbol; for two ranges sharing a boundary
	// pair, the symbol at the pair's last position.
	Symbol  string
	Message string
}

func (e *AmbiguousContentModel) Error() string {
	return fmt.Sprintf("ambiguous content model: %s (symbol %q)", e.Message, e.Symbol)
}

// MalformedTree reports a structural invariant violation in the syntax
// tree: a unary operator without exactly one child, an n-ary operator with
// fewer than two, or an interleave placed below the root.
type MalformedTree struct {
	Message string
}

func (e *MalformedTree) Error() string {
	return fmt.Sprintf("malformed expression tree: %s", e.Message)
}

// AsBadLimits extracts a BadLimits error if err wraps one.
func AsBadLimits(err error) (*BadLimits, bool) {
	var target *BadLimits
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsAmbiguous extracts an AmbiguousContentModel error if err wraps one.
func AsAmbiguous(err error) (*AmbiguousContentModel, bool) {
	var target *AmbiguousContentModel
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsMalformed extracts a MalformedTree error if err wraps one.
func AsMalformed(err error) (*MalformedTree, bool) {
	var target *MalformedTree
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
