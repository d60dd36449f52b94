package posset

import (
	"slices"
	"testing"
)

func TestSetBasics(t *testing.T) {
	s := New()
	if !s.Empty() {
		t.Error("new set is not empty")
	}

	s.Add(3)
	s.Add(70)
	s.Add(3)
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if !s.Contains(3) || !s.Contains(70) || s.Contains(4) || s.Contains(1000) {
		t.Error("Contains is wrong")
	}
	if got := s.Values(); !slices.Equal(got, []int{3, 70}) {
		t.Errorf("Values = %v, want [3 70]", got)
	}
}

func TestSetUnion(t *testing.T) {
	a := Of(1, 2)
	b := Of(2, 130)

	a.Union(b)
	if got := a.Values(); !slices.Equal(got, []int{1, 2, 130}) {
		t.Errorf("Values = %v, want [1 2 130]", got)
	}
	// the operand is untouched
	if got := b.Values(); !slices.Equal(got, []int{2, 130}) {
		t.Errorf("operand Values = %v, want [2 130]", got)
	}
	a.Union(nil)
	if a.Len() != 3 {
		t.Errorf("Len after nil union = %d, want 3", a.Len())
	}
}

func TestSetClone(t *testing.T) {
	a := Of(5)
	b := a.Clone()
	b.Add(6)
	if a.Contains(6) {
		t.Error("Clone shares storage with the original")
	}
}

func TestSetString(t *testing.T) {
	if got := Of(2, 0, 7).String(); got != "{0,2,7}" {
		t.Errorf("String = %q, want {0,2,7}", got)
	}
	if got := New().String(); got != "{}" {
		t.Errorf("String = %q, want {}", got)
	}
}
