package smartdial

import "github.com/bastiangx/dialserve/pkg/dialpad"

// NameMatcher checks display names against one dial query.
//
// MatchPositions is only meaningful after a call to Matches that returned
// true. A NameMatcher is not safe for concurrent use.
type NameMatcher struct {
	query     string
	positions []MatchPosition
}

// NewNameMatcher creates a matcher for query, which must already be reduced
// to keypad digits.
func NewNameMatcher(query string) *NameMatcher {
	return &NameMatcher{query: query}
}

// Query returns the digits the matcher was created with.
func (m *NameMatcher) Query() string {
	return m.query
}

// Matches reports whether displayName matches the query starting at a token.
func (m *NameMatcher) Matches(displayName string) bool {
	m.positions = m.positions[:0]
	pos, ok := MatchCombination(displayName, m.query)
	if !ok {
		return false
	}
	m.positions = append(m.positions, pos)
	return true
}

// MatchPositions returns the ranges found by the last successful Matches.
func (m *NameMatcher) MatchPositions() []MatchPosition {
	out := make([]MatchPosition, len(m.positions))
	copy(out, m.positions)
	return out
}

// MatchCombination scans name left to right for the digit query, which must
// begin at the start of a token and may continue across separators into the
// following tokens. It returns the first satisfying range in rune offsets of
// name; later token starts are not tried once one succeeds.
func MatchCombination(name, query string) (MatchPosition, bool) {
	if query == "" {
		return MatchPosition{}, false
	}
	runes := []rune(name)
	if len(runes) < len(query) {
		return MatchPosition{}, false
	}

	nameIdx, queryIdx := 0, 0
	tokenStart, seps := 0, 0
	for nameIdx < len(runes) {
		d, isLetter := dialpad.DigitForLetter(dialpad.RemapAccentedChar(runes[nameIdx]))
		if !isLetter {
			if queryIdx == 0 {
				tokenStart = nameIdx + 1
			} else {
				seps++
			}
			nameIdx++
			continue
		}

		if d != query[queryIdx] {
			// a partial match broke on the first letter of a new token:
			// retry the query from this token instead of skipping it
			if queryIdx > 0 && nameIdx > 0 && !isNameLetter(runes[nameIdx-1]) {
				queryIdx, seps = 0, 0
				tokenStart = nameIdx
				continue
			}
			queryIdx, seps = 0, 0
			for nameIdx < len(runes) && isNameLetter(runes[nameIdx]) {
				nameIdx++
			}
			tokenStart = nameIdx
			continue
		}

		if queryIdx == len(query)-1 {
			return MatchPosition{Start: tokenStart, End: tokenStart + len(query) + seps}, true
		}
		queryIdx++
		nameIdx++
	}
	return MatchPosition{}, false
}

func isNameLetter(r rune) bool {
	_, ok := dialpad.DigitForLetter(dialpad.RemapAccentedChar(r))
	return ok
}

// MatchesNumber reports whether query matches the digits of number from its
// first digit, from just past an international calling code, or with nanp
// set from past the trunk prefix or area code. The returned range is in rune
// offsets of number and starts at the first digit matched, except for a match
// from the start of the number, which also covers leading punctuation.
func MatchesNumber(number, query string, nanp bool) (MatchPosition, bool) {
	if query == "" || number == "" {
		return MatchPosition{}, false
	}
	runes := []rune(number)

	if pos, ok := matchNumberAt(runes, query, 0); ok {
		return pos, true
	}
	if off, ok := dialpad.CountryCodeOffset(number); ok {
		if pos, ok := matchNumberAt(runes, query, off); ok {
			return pos, true
		}
	}
	if nanp {
		for _, off := range dialpad.NANPOffsets(number) {
			if pos, ok := matchNumberAt(runes, query, off); ok {
				return pos, true
			}
		}
	}
	return MatchPosition{}, false
}

func matchNumberAt(runes []rune, query string, offset int) (MatchPosition, bool) {
	start := offset
	if offset > 0 {
		for start < len(runes) && !dialpad.IsDigit(runes[start]) {
			start++
		}
	}

	i, q := start, 0
	for i < len(runes) && q < len(query) {
		if r := runes[i]; dialpad.IsDigit(r) {
			if byte(r) != query[q] {
				return MatchPosition{}, false
			}
			q++
		}
		i++
	}
	if q < len(query) {
		return MatchPosition{}, false
	}
	return MatchPosition{Start: start, End: i}, true
}
