package utils

import (
	"strings"
	"unicode"
)

// IsSeparator checks if a rune is punctuation people type inside numbers
func IsSeparator(r rune) bool {
	switch r {
	case ' ', '-', '.', '/', '(', ')':
		return true
	}
	return false
}

// IsDialChar reports whether r may appear in a dial query: digits, the
// keypad symbols, letters spelled on the keypad, and separators.
func IsDialChar(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == '*' || r == '#':
		return true
	case unicode.IsLetter(r):
		return true
	}
	return IsSeparator(r)
}

// IsValidQuery checks if input should be processed as a dial query
// Returns false for empty input and for input with characters no keypad has
func IsValidQuery(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if !IsDialChar(r) {
			return false
		}
	}
	return true
}
