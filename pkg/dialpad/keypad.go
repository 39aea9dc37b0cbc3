// Package dialpad maps names and numbers onto the telephone keypad.
//
// Names are reduced to the digits a caller would press to spell them
// (A,B,C on 2 through W,X,Y,Z on 9) after accents are folded away, and
// phone numbers are reduced to their dialable digits. Both forms feed the
// smartdial index and its matcher.
//
// All functions are safe for concurrent use.
package dialpad

// keypad holds the digit for each lowercase ASCII letter, 'a' at index 0.
var keypad = [26]byte{
	'2', '2', '2', // abc
	'3', '3', '3', // def
	'4', '4', '4', // ghi
	'5', '5', '5', // jkl
	'6', '6', '6', // mno
	'7', '7', '7', '7', // pqrs
	'8', '8', '8', // tuv
	'9', '9', '9', '9', // wxyz
}

// NoDigit marks a character that has no place on the keypad.
const NoDigit int8 = -1

// FoldASCII lowercases an ASCII letter with a single OR. The result is in
// 'a'..'z' only when r was an ASCII letter, so callers can test the range
// instead of branching on case first.
func FoldASCII(r rune) rune {
	return r | 0x20
}

// IsKeypadLetter reports whether r, once accents are remapped, is a latin
// letter with a keypad digit.
func IsKeypadLetter(r rune) bool {
	c := FoldASCII(RemapAccentedChar(r))
	return c >= 'a' && c <= 'z'
}

// DigitForLetter returns the keypad digit for an ASCII letter in either case.
// Anything else, separators included, has no digit.
func DigitForLetter(r rune) (byte, bool) {
	c := FoldASCII(r)
	if c < 'a' || c > 'z' {
		return 0, false
	}
	return keypad[c-'a'], true
}

// KeyIndexes converts name into one keypad index per rune: 0-9 for a letter
// after its accent is remapped, NoDigit for everything else. The slice is
// computed once per name so recursive indexing never remaps a rune twice.
func KeyIndexes(name []rune) []int8 {
	out := make([]int8, len(name))
	for i, r := range name {
		d, ok := DigitForLetter(RemapAccentedChar(r))
		if !ok {
			out[i] = NoDigit
			continue
		}
		out[i] = int8(d - '0')
	}
	return out
}

// NameDigits spells name on the keypad, dropping separators and any rune
// without a digit.
func NameDigits(name string) string {
	if name == "" {
		return ""
	}
	buf := make([]byte, 0, len(name))
	for _, r := range name {
		if d, ok := DigitForLetter(RemapAccentedChar(r)); ok {
			buf = append(buf, d)
		}
	}
	return string(buf)
}
