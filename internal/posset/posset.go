// Package posset implements compact sets of syntax tree positions.
package posset

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// Set is a growable word-packed set of small non-negative integers.
// The zero value is an empty set ready for use.
type Set struct {
	words []uint64
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// Of returns a set containing the given positions.
func Of(positions ...int) *Set {
	s := New()
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

func (s *Set) grow(words int) {
	if len(s.words) < words {
		s.words = append(s.words, make([]uint64, words-len(s.words))...)
	}
}

// Add inserts position i into the set.
func (s *Set) Add(i int) {
	s.grow(i/64 + 1)
	s.words[i/64] |= 1 << (i % 64)
}

// Contains reports whether position i is in the set.
func (s *Set) Contains(i int) bool {
	if i/64 >= len(s.words) {
		return false
	}
	return s.words[i/64]&(1<<(i%64)) != 0
}

// Union adds every element of other to the set and returns the receiver.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	s.grow(len(other.words))
	for i, w := range other.words {
		s.words[i] |= w
	}
	return s
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{words: make([]uint64, len(s.words))}
	copy(c.words, s.words)
	return c
}

// Empty reports whether the set has no elements.
func (s *Set) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// All yields the elements in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range s.words {
			for w != 0 {
				bit := bits.TrailingZeros64(w)
				if !yield(i*64 + bit) {
					return
				}
				w &^= 1 << bit
			}
		}
	}
}

// Values returns the elements as an ascending slice.
func (s *Set) Values() []int {
	out := make([]int, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// String renders the set as {1,2,3}.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for v := range s.All() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('}')
	return sb.String()
}
