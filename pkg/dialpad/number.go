package dialpad

// NormalizeNumber reduces a numeric query to the digits that letters can
// produce on the keypad. Only '2' through '9' survive; 0, 1, punctuation and
// whitespace are dropped.
func NormalizeNumber(s string) string {
	if s == "" {
		return ""
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '2' && c <= '9' {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// DialDigits turns what a user typed on the dialpad into the digit string
// used for index lookups. Letters are spelled onto the keypad, accents
// remapped first, and every ASCII digit is kept, 0 and 1 included.
func DialDigits(query string) string {
	if query == "" {
		return ""
	}
	buf := make([]byte, 0, len(query))
	for _, r := range query {
		if r >= '0' && r <= '9' {
			buf = append(buf, byte(r))
			continue
		}
		if d, ok := DigitForLetter(RemapAccentedChar(r)); ok {
			buf = append(buf, d)
		}
	}
	return string(buf)
}

// PhoneDigits keeps the ASCII digits of a phone number in order.
func PhoneDigits(number string) string {
	if number == "" {
		return ""
	}
	buf := make([]byte, 0, len(number))
	for i := 0; i < len(number); i++ {
		if c := number[i]; c >= '0' && c <= '9' {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// digitPositions returns the rune index of every ASCII digit in number.
func digitPositions(number []rune) []int {
	pos := make([]int, 0, len(number))
	for i, r := range number {
		if IsDigit(r) {
			pos = append(pos, i)
		}
	}
	return pos
}
