package dialpad

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestDigitForLetter(t *testing.T) {
	layout := map[byte]string{
		'2': "abc", '3': "def", '4': "ghi", '5': "jkl",
		'6': "mno", '7': "pqrs", '8': "tuv", '9': "wxyz",
	}
	counts := make(map[byte]int)
	for digit, letters := range layout {
		for _, r := range letters {
			d, ok := DigitForLetter(r)
			require.True(t, ok, "letter %q", r)
			assert.Equal(t, digit, d, "letter %q", r)

			upper, ok := DigitForLetter(unicode.ToUpper(r))
			require.True(t, ok)
			assert.Equal(t, d, upper, "case-insensitive for %q", r)
			counts[d]++
		}
	}
	for digit, n := range counts {
		assert.Contains(t, []int{3, 4}, n, "digit %c", digit)
	}
	assert.Len(t, counts, 8)
}

func TestDigitForLetterRejectsNonLetters(t *testing.T) {
	for _, r := range " -.,'0123456789@[`{" {
		_, ok := DigitForLetter(r)
		assert.False(t, ok, "rune %q", r)
	}
}

func TestRemapAccentedChar(t *testing.T) {
	cases := map[rune]rune{
		'é': 'e', 'Ü': 'U', 'ñ': 'n', 'ß': 's', 'Ø': 'O', 'ł': 'l',
		'Đ': 'D', 'ħ': 'h', 'ı': 'i', 'Œ': 'O', 'ƀ': 'b', 'ș': 's',
	}
	for in, want := range cases {
		assert.Equal(t, want, RemapAccentedChar(in), "rune %q", in)
	}
}

func TestRemapAccentedCharMatchesDecomposition(t *testing.T) {
	checked := 0
	for _, g := range accentGroups {
		for _, r := range g.from {
			base := []rune(norm.NFD.String(string(r)))[0]
			if base >= 0x80 || !unicode.IsLetter(base) {
				continue
			}
			checked++
			assert.True(t, strings.EqualFold(string(base), string(RemapAccentedChar(r))),
				"%q decomposes to %q but remaps to %q", r, base, RemapAccentedChar(r))
		}
	}
	assert.Greater(t, checked, 100)
}

func TestRemapAccentedCharPassThrough(t *testing.T) {
	for _, r := range "azAZ09 -Ωж中" {
		assert.Equal(t, r, RemapAccentedChar(r))
	}
	assert.Equal(t, "Fred Smith", RemapAccentedChars("Fred Smith"))
	assert.Equal(t, "Jose Muller", RemapAccentedChars("José Müller"))
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "cafe", StripDiacritics("café"))
	assert.Equal(t, "Francois", StripDiacritics("François"))
	assert.Equal(t, "", StripDiacritics(""))

	for _, s := range []string{"café", "Ångström", "Đặng Thị", "plain", "Øyvind"} {
		once := StripDiacritics(s)
		assert.Equal(t, once, StripDiacritics(once), "idempotent for %q", s)
	}
}

func TestLatinize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"ascii", "Fred Smith", []string{"Fred Smith"}},
		{"accented latin", "Zoë Ørsted", []string{"Zoë Ørsted"}},
		{"cyrillic", "Иван", []string{"Иван", "Ivan"}},
		{"empty", "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Latinize(tt.in))
		})
	}
}

func TestNameDigitsAndKeyIndexes(t *testing.T) {
	tests := []struct {
		name    string
		digits  string
		indexes []int8
	}{
		{"Fred Smith", "373376484", []int8{3, 7, 3, 3, NoDigit, 7, 6, 4, 8, 4}},
		{"---", "", []int8{NoDigit, NoDigit, NoDigit}},
		{"Jo é", "563", []int8{5, 6, NoDigit, 3}},
		{"Zoë-Ann", "963266", []int8{9, 6, 3, NoDigit, 2, 6, 6}},
		{"É.Ödön", "363666", []int8{3, NoDigit, 6, 3, 6, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.digits, NameDigits(tt.name))

			idx := KeyIndexes([]rune(tt.name))
			assert.Equal(t, tt.indexes, idx)

			// The per-rune indexes spell the same digits once separators drop out.
			var spelled strings.Builder
			for _, d := range idx {
				if d != NoDigit {
					spelled.WriteByte(byte('0' + d))
				}
			}
			assert.Equal(t, NameDigits(tt.name), spelled.String())
		})
	}
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "555234567", NormalizeNumber("(555) 123-4567"))
	assert.Equal(t, "5552345", NormalizeNumber("+1 555 123 45"))
	assert.Equal(t, "", NormalizeNumber("0110"))
	assert.Equal(t, "", NormalizeNumber(""))
}

func TestDialDigits(t *testing.T) {
	assert.Equal(t, "3733", DialDigits("fred"))
	assert.Equal(t, "1555222", DialDigits("+1 (555) abc"))
	assert.Equal(t, "0", DialDigits("0"))
	assert.Equal(t, "", DialDigits("#*"))
}

func TestCountryCodeOffset(t *testing.T) {
	tests := []struct {
		number string
		offset int
		ok     bool
	}{
		{"+44 20 7946 0000", 3, true},
		{"+1 650 555 1234", 2, true},
		{"+353 1 234 5678", 4, true},
		{"+7 495 123 4567", 2, true},
		{" +86 10 1234 5678", 4, true},
		{"+880 2 5566 7788", 4, true},
		{"+299 32 1234", 4, true},
		{"+41 44 668 1800", 3, true},
		{"+1-242-555-0100", 2, true},
		{"+999 123 4567", 0, false},
		{"650 555 1234", 0, false},
		{"+4", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			offset, ok := CountryCodeOffset(tt.number)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestNANPOffsets(t *testing.T) {
	tests := []struct {
		number  string
		offsets []int
	}{
		{"1-650-555-1234", []int{1, 5}},
		{"+1 650 555 1234", []int{2, 6}},
		{"650 555 1234", []int{3}},
		{"(650) 555-1234", []int{4}},
		{"0123456789", nil},
		{"555 1234", nil},
		{"+44 20 7946 0000", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.offsets, NANPOffsets(tt.number))
		})
	}
}
