package limits

import (
	"testing"

	"github.com/jacoelho/cmv/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		min, max int
		ok       bool
	}{
		{0, 0, true},
		{2, 3, true},
		{2, 2, true},
		{0, Unbounded, true},
		{5, Unbounded, true},
		{-1, 2, false},
		{3, 2, false},
		{0, -2, false},
	}

	for _, tt := range tests {
		_, err := New(tt.min, tt.max)
		if tt.ok && err != nil {
			t.Errorf("New(%d,%d) = %v, want ok", tt.min, tt.max, err)
		}
		if !tt.ok {
			if _, isBad := errors.AsBadLimits(err); !isBad {
				t.Errorf("New(%d,%d) = %v, want BadLimits", tt.min, tt.max, err)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	bounded, err := New(2, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for count, want := range map[int]bool{1: false, 2: true, 3: true, 4: false} {
		if got := bounded.Check(count); got != want {
			t.Errorf("Check(%d) = %t, want %t", count, got, want)
		}
	}

	unbounded, err := New(1, Unbounded)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !unbounded.CheckMax(1 << 30) {
		t.Error("CheckMax on unbounded = false")
	}
	if unbounded.Check(0) {
		t.Error("Check(0) below minimum = true")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		limits Limits
		want   string
	}{
		{Limits{Min: 2, Max: 3}, "[2,3]"},
		{Limits{Min: 1, Max: Unbounded}, "[1,*]"},
	}
	for _, tt := range tests {
		if got := tt.limits.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}
