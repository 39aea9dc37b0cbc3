package dialpad

// accentGroups lists accented latin letters (Latin-1 Supplement through
// Latin Extended-B) next to the unaccented letter they dial as. Letters that
// do not decompose canonically (Ø, Ł, Đ, Ħ, ß, ...) are listed as well.
var accentGroups = []struct {
	from string
	to   rune
}{
	// Latin-1 Supplement
	{"ÀÁÂÃÄÅÆ", 'A'}, {"àáâãäåæ", 'a'},
	{"Ç", 'C'}, {"ç", 'c'},
	{"ÈÉÊË", 'E'}, {"èéêë", 'e'},
	{"ÌÍÎÏ", 'I'}, {"ìíîï", 'i'},
	{"Ð", 'D'}, {"ð", 'd'},
	{"Ñ", 'N'}, {"ñ", 'n'},
	{"ÒÓÔÕÖØ", 'O'}, {"òóôõöø", 'o'},
	{"ÙÚÛÜ", 'U'}, {"ùúûü", 'u'},
	{"Ý", 'Y'}, {"ýÿ", 'y'},
	{"ß", 's'},

	// Latin Extended-A
	{"ĀĂĄ", 'A'}, {"āăą", 'a'},
	{"ĆĈĊČ", 'C'}, {"ćĉċč", 'c'},
	{"ĎĐ", 'D'}, {"ďđ", 'd'},
	{"ĒĔĖĘĚ", 'E'}, {"ēĕėęě", 'e'},
	{"ĜĞĠĢ", 'G'}, {"ĝğġģ", 'g'},
	{"ĤĦ", 'H'}, {"ĥħ", 'h'},
	{"ĨĪĬĮİĲ", 'I'}, {"ĩīĭįıĳ", 'i'},
	{"Ĵ", 'J'}, {"ĵ", 'j'},
	{"Ķ", 'K'}, {"ķĸ", 'k'},
	{"ĹĻĽĿŁ", 'L'}, {"ĺļľŀł", 'l'},
	{"ŃŅŇŊ", 'N'}, {"ńņňŉŋ", 'n'},
	{"ŌŎŐŒ", 'O'}, {"ōŏőœ", 'o'},
	{"ŔŖŘ", 'R'}, {"ŕŗř", 'r'},
	{"ŚŜŞŠ", 'S'}, {"śŝşšſ", 's'},
	{"ŢŤŦ", 'T'}, {"ţťŧ", 't'},
	{"ŨŪŬŮŰŲ", 'U'}, {"ũūŭůűų", 'u'},
	{"Ŵ", 'W'}, {"ŵ", 'w'},
	{"ŶŸ", 'Y'}, {"ŷ", 'y'},
	{"ŹŻŽ", 'Z'}, {"źżž", 'z'},

	// Latin Extended-B
	{"ƁƂǍǞǠǺȀȂȦȺ", 'A'}, {"ǎǟǡǻȁȃȧ", 'a'},
	{"ƀƃ", 'b'},
	{"ƇȻ", 'C'}, {"ƈȼ", 'c'},
	{"ƉƊƋ", 'D'}, {"ƌ", 'd'},
	{"ƎƐȄȆȨɆ", 'E'}, {"ȅȇȩɇ", 'e'},
	{"Ƒ", 'F'}, {"ƒ", 'f'},
	{"ƓǤǦǴ", 'G'}, {"ǥǧǵ", 'g'},
	{"Ȟ", 'H'}, {"ȟ", 'h'},
	{"ƗǏȈȊ", 'I'}, {"ǐȉȋ", 'i'},
	{"Ɉ", 'J'}, {"ǰɉ", 'j'},
	{"ƘǨ", 'K'}, {"ƙǩ", 'k'},
	{"Ƚ", 'L'}, {"ƚ", 'l'},
	{"ƝǸ", 'N'}, {"ƞǹ", 'n'},
	{"ƟƠǑǪǬǾȌȎȪȬȮȰ", 'O'}, {"ơǒǫǭǿȍȏȫȭȯȱ", 'o'},
	{"Ƥ", 'P'}, {"ƥ", 'p'},
	{"Ɋ", 'Q'}, {"ɋ", 'q'},
	{"ȐȒɌ", 'R'}, {"ȑȓɍ", 'r'},
	{"Ș", 'S'}, {"ș", 's'},
	{"ƬƮȚȾ", 'T'}, {"ƫƭț", 't'},
	{"ƯǓǕǗǙǛȔȖ", 'U'}, {"ưǔǖǘǚǜȕȗ", 'u'},
	{"Ʋ", 'V'},
	{"ƳȲɎ", 'Y'}, {"ƴȳɏ", 'y'},
	{"Ƶ", 'Z'}, {"ƶ", 'z'},
}

// remapTable is accentGroups flattened for lookup.
var remapTable = buildRemapTable()

func buildRemapTable() map[rune]rune {
	table := make(map[rune]rune, 512)
	for _, g := range accentGroups {
		for _, r := range g.from {
			table[r] = g.to
		}
	}
	return table
}

// RemapAccentedChar maps an accented latin letter to the plain letter it
// dials as. Runes outside the table are returned unchanged.
func RemapAccentedChar(r rune) rune {
	if r < 0x00C0 || r > 0x024F {
		return r
	}
	if base, ok := remapTable[r]; ok {
		return base
	}
	return r
}

// RemapAccentedChars applies RemapAccentedChar to every rune of s.
func RemapAccentedChars(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = RemapAccentedChar(r)
	}
	return string(out)
}
