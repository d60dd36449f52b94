// Package token splits validation input into symbol tokens.
package token

import (
	"iter"
	"strings"
)

func isSeparator(r rune) bool {
	switch r {
	case ',', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Split breaks input on commas and ASCII whitespace. Runs of separators
// produce no empty tokens.
func Split(input string) []string {
	return strings.FieldsFunc(input, isSeparator)
}

// Tokens yields the tokens of input in order.
func Tokens(input string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tok := range Split(input) {
			if !yield(tok) {
				return
			}
		}
	}
}
