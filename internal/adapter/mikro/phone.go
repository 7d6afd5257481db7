package mikro

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// defaultRegion is used for numbers stored without a country prefix.
const defaultRegion = "TR"

// NormalizePhone formats an ERP phone number as E.164. Numbers that cannot
// be parsed or are not valid are returned trimmed but otherwise unchanged.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := libphonenumber.Parse(raw, defaultRegion)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return raw
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}

// joinPhone combines the area code and subscriber number columns.
func joinPhone(area, number string) string {
	area, number = strings.TrimSpace(area), strings.TrimSpace(number)
	if area == "" || strings.HasPrefix(number, "0") || strings.HasPrefix(number, "+") {
		return number
	}
	return area + number
}
