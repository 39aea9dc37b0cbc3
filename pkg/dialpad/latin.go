package dialpad

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks after canonical decomposition and
// recomposes what is left, so "café" becomes "cafe". Letters without a
// canonical decomposition (ø, ł) are kept; RemapAccentedChar handles those.
func StripDiacritics(s string) string {
	if s == "" {
		return ""
	}
	// transform chains keep internal state, one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Latinize returns the spellings of name worth indexing on the keypad. The
// first element is always name itself. A Latin transliteration follows when
// it dials differently from name, which is the case for scripts with no
// keypad letters (Cyrillic, Greek, CJK, ...) and for letters the remap table
// does not cover.
func Latinize(name string) []string {
	variants := []string{name}
	if name == "" || isKeypadReady(name) {
		return variants
	}

	translit := strings.Join(strings.Fields(unidecode.Unidecode(StripDiacritics(name))), " ")
	if translit == "" {
		return variants
	}
	if NameDigits(translit) == NameDigits(name) {
		return variants
	}
	return append(variants, translit)
}

// isKeypadReady reports whether every letter of name already dials, either
// as ASCII or through the remap table.
func isKeypadReady(name string) bool {
	for _, r := range name {
		if unicode.IsLetter(r) && !IsKeypadLetter(r) {
			return false
		}
	}
	return true
}
