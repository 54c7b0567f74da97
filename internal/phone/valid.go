package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// region is the ISO code matching CountryPrefix.
const region = "CM"

// Valid reports whether raw, once unescaped, is a dialable number of the
// supported numbering plan. It is a reporting aid only; normalization never
// depends on it.
func Valid(raw string) bool {
	s := Unescape(raw)
	if s == "" || !strings.HasPrefix(s, CountryPrefix) {
		return false
	}
	num, err := phonenumbers.Parse("+"+s, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumberForRegion(num, region)
}
