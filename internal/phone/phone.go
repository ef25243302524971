package phone

import "strings"

// Normalize reduces a phone number to international digits without a plus
// sign, the form WhatsApp JIDs use. With a default country code, a national
// number with a trunk "0" gets the code in its place (05XXXXXXXX -> 9725XXXXXXXX
// for code 972), and a stray trunk zero after the code is dropped
// (9720... -> 972...). A "00" international prefix is stripped.
func Normalize(number, defaultCountryCode string) string {
	digits := strings.Map(func(r rune) rune {
		// WhatsApp JIDs only take ASCII digits
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if strings.HasPrefix(digits, "00") {
		return digits[2:]
	}

	cc := strings.TrimLeft(defaultCountryCode, "+")
	if cc == "" {
		return digits
	}
	if strings.HasPrefix(digits, "0") {
		return cc + digits[1:]
	}
	if strings.HasPrefix(digits, cc+"0") {
		return cc + digits[len(cc)+1:]
	}
	return digits
}

// Same reports whether a and b normalize to the same number.
func Same(a, b, defaultCountryCode string) bool {
	na := Normalize(a, defaultCountryCode)
	return na != "" && na == Normalize(b, defaultCountryCode)
}
