package utils

import (
	"regexp"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits so spoken numbers like
// "(555) 123-4567" key the same record as "5551234567"
func NormalizePhone(phone string) string {
	return nonDigitRe.ReplaceAllString(strings.TrimSpace(phone), "")
}

// FormatPhone renders a 10-digit number as XXX-XXX-XXXX for readback;
// anything else is returned untouched
func FormatPhone(phone string) string {
	if len(phone) == 10 {
		return phone[:3] + "-" + phone[3:6] + "-" + phone[6:]
	}
	return phone
}
