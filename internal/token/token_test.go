package token

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a b\tc", []string{"a", "b", "c"}},
		{"a, ,\n,b", []string{"a", "b"}},
		{",a,,b,", []string{"a", "b"}},
		{"", nil},
		{" \t\r\n", nil},
		{"tree,flower", []string{"tree", "flower"}},
	}

	for _, tt := range tests {
		if got := Split(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("Split(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := slices.Collect(Tokens("a b,c"))
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Tokens = %v, want [a b c]", got)
	}
}
