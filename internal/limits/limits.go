// Package limits models occurrence bounds for counted ranges.
package limits

import (
	"strconv"

	"github.com/jacoelho/cmv/errors"
)

// Unbounded marks a range with no upper bound.
const Unbounded = -1

// Limits holds an occurrence range [Min, Max] where Max may be Unbounded.
type Limits struct {
	Min int
	Max int
}

// New validates and returns an occurrence range.
func New(min, max int) (Limits, error) {
	if min < 0 || max < Unbounded || (max >= 0 && min > max) {
		return Limits{}, &errors.BadLimits{Min: min, Max: max}
	}
	return Limits{Min: min, Max: max}, nil
}

// CheckMin reports whether count reaches the lower bound.
func (l Limits) CheckMin(count int) bool {
	return count >= l.Min
}

// CheckMax reports whether count is within the upper bound.
func (l Limits) CheckMax(count int) bool {
	return l.Max == Unbounded || count <= l.Max
}

// Check reports whether count satisfies both bounds.
func (l Limits) Check(count int) bool {
	return l.CheckMin(count) && l.CheckMax(count)
}

// String renders the range as [m,n], with * for an unbounded maximum.
func (l Limits) String() string {
	max := strconv.Itoa(l.Max)
	if l.Max == Unbounded {
		max = "*"
	}
	return "[" + strconv.Itoa(l.Min) + "," + max + "]"
}
