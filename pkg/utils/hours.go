package utils

import (
	"regexp"
	"strings"
)

// Clock tokens look like "5:00 PM". The knowledge source answers with one
// line per day-group carrying exactly two of them (open, close).
var hourTokenRe = regexp.MustCompile(`(\d{1,2}:\d{2}\s*[AP]M)`)

// ExtractHourTokens pulls the open and close tokens out of a business-hours
// line. The contract is exact: the line must contain exactly two clock
// tokens, anything else reports not ok and the caller treats the hours as
// unverifiable.
func ExtractHourTokens(line string) (open string, close string, ok bool) {
	matches := hourTokenRe.FindAllString(line, -1)
	if len(matches) != 2 {
		return "", "", false
	}
	return matches[0], matches[1], true
}

// FindDayGroupLine returns the first line of the answer mentioning the
// day-group label
func FindDayGroupLine(answer, dayGroup string) (string, bool) {
	for _, line := range strings.Split(answer, "\n") {
		if strings.Contains(line, dayGroup) {
			return line, true
		}
	}
	return "", false
}
