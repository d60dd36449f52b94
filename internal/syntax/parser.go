package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads the textual form of an expression and drives the builder:
// "(" and ")" (or its historical synonym "^") map to Push/Pop, operators
// to the same-named operations, "[m,n]" to Range with "*" for an unbounded
// maximum, and any other run of characters up to the next special
// character to Symbol. Whitespace between tokens is ignored.
func Parse(b Builder, input string) error {
	for i := 0; i < len(input); {
		var err error
		switch input[i] {
		case '(':
			err = b.Push()
			i++
		case ')', '^':
			err = b.Pop()
			i++
		case '*':
			err = b.Star()
			i++
		case '+':
			err = b.Plus()
			i++
		case '?':
			err = b.Opt()
			i++
		case ',':
			err = b.And()
			i++
		case '|':
			err = b.Or()
			i++
		case '&':
			err = b.All()
			i++
		case ' ', '\t', '\n', '\r':
			i++
		case '[':
			i, err = parseRange(b, input, i+1)
		default:
			i, err = parseSymbol(b, input, i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isSpecial(c byte) bool {
	switch c {
	case '(', ')', '^', '*', '+', '?', '[', ',', '|', '&', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func parseSymbol(b Builder, input string, start int) (int, error) {
	i := start
	for i < len(input) && !isSpecial(input[i]) {
		i++
	}
	return i, b.Symbol(input[start:i])
}

// parseRange scans "m,n]" starting just after the opening bracket. n may
// be "*" for an unbounded maximum.
func parseRange(b Builder, input string, start int) (int, error) {
	comma := strings.IndexByte(input[start:], ',')
	if comma < 0 {
		return start, fmt.Errorf("range at offset %d: missing %q", start-1, ",")
	}
	comma += start
	end := strings.IndexByte(input[comma:], ']')
	if end < 0 {
		return start, fmt.Errorf("range at offset %d: missing %q", start-1, "]")
	}
	end += comma

	min, err := strconv.Atoi(strings.TrimSpace(input[start:comma]))
	if err != nil {
		return start, fmt.Errorf("range at offset %d: bad minimum: %w", start-1, err)
	}
	maxText := strings.TrimSpace(input[comma+1 : end])
	max := -1
	if maxText != "*" {
		max, err = strconv.Atoi(maxText)
		if err != nil {
			return start, fmt.Errorf("range at offset %d: bad maximum: %w", start-1, err)
		}
	}
	return end + 1, b.Range(min, max)
}
