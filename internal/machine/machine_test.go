package machine

import (
	"slices"
	"testing"

	"github.com/jacoelho/cmv/internal/limits"
	"github.com/jacoelho/cmv/internal/posset"
)

// a?,b by hand: positions a=1, b=2
func buildOptionalThen(t *testing.T) *NoRanges {
	t.Helper()
	m := NewNoRanges("a?,b", 3)
	for _, tr := range []struct {
		symbol   string
		from, to int
	}{
		{"a", 0, 1},
		{"b", 0, 2},
		{"b", 1, 2},
	} {
		if !m.AddTransition(tr.symbol, tr.from, tr.to) {
			t.Fatalf("AddTransition(%q,%d,%d) = false", tr.symbol, tr.from, tr.to)
		}
	}
	m.SetFinalStates(posset.Of(2))
	return m
}

func TestNoRangesStep(t *testing.T) {
	m := buildOptionalThen(t)

	tests := []struct {
		name  string
		input []string
		want  bool
	}{
		{"a b", []string{"a", "b"}, true},
		{"b", []string{"b"}, true},
		{"a", []string{"a"}, false},
		{"b b", []string{"b", "b"}, false},
		{"unknown", []string{"x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := m.InitialState()
			got := true
			for _, symbol := range tt.input {
				if !cursor.Step(symbol) {
					got = false
					break
				}
			}
			if got {
				got = cursor.Accepting()
			}
			if got != tt.want {
				t.Errorf("run %v = %t, want %t", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoRangesRejectsDuplicateSlot(t *testing.T) {
	m := NewNoRanges("dup", 3)
	if !m.AddTransition("a", 0, 1) {
		t.Fatal("first AddTransition = false")
	}
	if m.AddTransition("a", 0, 2) {
		t.Fatal("second AddTransition on the same slot = true")
	}
}

func TestNoRangesValidNextSymbols(t *testing.T) {
	m := buildOptionalThen(t)
	cursor := m.InitialState()
	if got := slices.Collect(cursor.ValidNextSymbols()); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("ValidNextSymbols = %v, want [a b]", got)
	}
	if !cursor.Step("a") {
		t.Fatal("Step(a) failed")
	}
	if got := slices.Collect(cursor.ValidNextSymbols()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("ValidNextSymbols = %v, want [b]", got)
	}
}

// a[2,3] by hand: position a=1, range 0
func buildCounted(t *testing.T) *Ranges {
	t.Helper()
	m := NewRanges("a[2,3]", 2, []limits.Limits{{Min: 2, Max: 3}})
	if !m.AddToStart("a", 0, 1, []int{0}) {
		t.Fatal("AddToStart = false")
	}
	if !m.AddFromEndToStartInc("a", 1, 1, nil, nil, 0) {
		t.Fatal("AddFromEndToStartInc = false")
	}
	m.SetFinalStates(map[int][]int{1: {0}})
	return m
}

func TestRangesCounters(t *testing.T) {
	m := buildCounted(t)

	tests := []struct {
		count int
		want  bool
	}{
		{1, false},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, tt := range tests {
		cursor := m.InitialState()
		ok := true
		for range tt.count {
			if !cursor.Step("a") {
				ok = false
				break
			}
		}
		if ok {
			ok = cursor.Accepting()
		}
		if ok != tt.want {
			t.Errorf("%d repetitions = %t, want %t", tt.count, ok, tt.want)
		}
	}
}

func TestRangesIncrementOverflowFailsStep(t *testing.T) {
	m := buildCounted(t)
	cursor := m.InitialState()
	for range 3 {
		if !cursor.Step("a") {
			t.Fatal("Step within bounds failed")
		}
	}
	if cursor.Step("a") {
		t.Error("Step beyond the maximum succeeded")
	}
}

func TestRangesFromEndCheck(t *testing.T) {
	// a[2,3],b: a=1, b=2
	m := NewRanges("a[2,3],b", 3, []limits.Limits{{Min: 2, Max: 3}})
	if !m.AddToStart("a", 0, 1, []int{0}) ||
		!m.AddFromEndToStartInc("a", 1, 1, nil, nil, 0) ||
		!m.AddFromEnd("b", 1, 2, []int{0}) {
		t.Fatal("building failed")
	}
	m.SetFinalStates(map[int][]int{2: nil})

	cursor := m.InitialState()
	if !cursor.Step("a") {
		t.Fatal("Step(a) failed")
	}
	if cursor.Valid("b") {
		t.Error("Valid(b) = true below the minimum count")
	}
	if !cursor.Step("a") {
		t.Fatal("Step(a) failed")
	}
	if !cursor.Step("b") {
		t.Fatal("Step(b) failed at count 2")
	}
	if !cursor.Accepting() {
		t.Error("Accepting = false after a,a,b")
	}
}

func TestRangesValidDoesNotMutateCounters(t *testing.T) {
	m := buildCounted(t)
	cursor := m.InitialState()
	if !cursor.Step("a") {
		t.Fatal("Step failed")
	}
	for range 5 {
		cursor.Valid("a")
	}
	// one real step brings the counter to 2, inside [2,3]
	if !cursor.Step("a") {
		t.Fatal("Step failed")
	}
	if !cursor.Accepting() {
		t.Error("Accepting = false; Valid leaked counter increments")
	}
}

func TestRangesRejectsDuplicateSlot(t *testing.T) {
	m := NewRanges("dup", 2, []limits.Limits{{Min: 1, Max: 2}})
	if !m.AddValid("a", 0, 1) {
		t.Fatal("AddValid = false")
	}
	if m.AddToStart("a", 0, 1, []int{0}) {
		t.Fatal("second transition on the same slot = true")
	}
}

func TestInterleaveMachine(t *testing.T) {
	m := NewInterleave("all")
	if !m.Add("a", false) || !m.Add("b", true) || !m.Add("c", false) {
		t.Fatal("Add = false")
	}
	if m.Add("a", false) {
		t.Fatal("duplicate Add = true")
	}

	cursor := m.InitialState()
	if cursor.Accepting() {
		t.Error("Accepting before required symbols")
	}
	if got := slices.Collect(cursor.ValidNextSymbols()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("ValidNextSymbols = %v", got)
	}
	if !cursor.Step("c") || !cursor.Step("a") {
		t.Fatal("Step failed")
	}
	if cursor.Step("a") {
		t.Error("second Step(a) succeeded")
	}
	cursor = m.InitialState()
	for _, symbol := range []string{"c", "a"} {
		if !cursor.Step(symbol) {
			t.Fatalf("Step(%s) failed", symbol)
		}
	}
	if !cursor.Accepting() {
		t.Error("Accepting = false with only the optional symbol missing")
	}
}

func TestDump(t *testing.T) {
	if buildOptionalThen(t).Dump() == "" {
		t.Error("NoRanges Dump is empty")
	}
	if buildCounted(t).Dump() == "" {
		t.Error("Ranges Dump is empty")
	}
	m := NewInterleave("all")
	m.Add("a", true)
	if m.Dump() == "" {
		t.Error("Interleave Dump is empty")
	}
}
