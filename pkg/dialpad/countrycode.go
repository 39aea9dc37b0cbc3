package dialpad

import (
	"strconv"

	"github.com/nyaruka/phonenumbers"
)

// nanpRegion is the default region used to read numbers written without a
// country code as North American.
const nanpRegion = "US"

// CountryCodeOffset returns the rune offset in number just past its country
// calling code. Only numbers written in international form with a leading
// '+' carry a code; ok is false for anything else or when the number does
// not parse with a known calling code.
func CountryCodeOffset(number string) (offset int, ok bool) {
	runes := []rune(number)
	i := 0
	for i < len(runes) && runes[i] == ' ' {
		i++
	}
	if i >= len(runes) || runes[i] != '+' {
		return 0, false
	}

	num, err := phonenumbers.Parse(number, phonenumbers.UNKNOWN_REGION)
	if err != nil || num.GetCountryCode() == 0 {
		return 0, false
	}
	n := len(strconv.Itoa(int(num.GetCountryCode())))

	for i++; i < len(runes); i++ {
		if !IsDigit(runes[i]) {
			continue
		}
		if n--; n == 0 {
			return i + 1, true
		}
	}
	return 0, false
}

// NANPOffsets returns the rune offsets at which a North American number can
// also be dialed: past the trunk prefix and past the area code for
// 1-NXX-NXX-XXXX, and past the area code for NXX-NXX-XXXX. Other numbers
// yield nil.
func NANPOffsets(number string) []int {
	num, err := phonenumbers.Parse(number, nanpRegion)
	if err != nil {
		return nil
	}
	region := phonenumbers.GetRegionCodeForCountryCode(int(num.GetCountryCode()))
	if !phonenumbers.IsNANPACountry(region) {
		return nil
	}
	nsn := phonenumbers.GetNationalSignificantNumber(num)
	if len(nsn) != 10 || nsn[0] < '2' {
		return nil
	}

	runes := []rune(number)
	pos := digitPositions(runes)
	switch {
	case len(pos) == 11 && runes[pos[0]] == '1':
		return []int{pos[0] + 1, pos[3] + 1}
	case len(pos) == 10:
		return []int{pos[2] + 1}
	}
	return nil
}
