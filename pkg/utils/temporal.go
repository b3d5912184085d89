package utils

import (
	"regexp"
	"strings"
	"time"

	"tabletalk-service/internal/domain/entity"
)

// The resolver turns free-form date and time expressions into canonical
// values. It is a pure function of the input text and the reference instant,
// so a fixed "now" always yields the same output.

var ordinalRe = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)\b`)
var spacesRe = regexp.MustCompile(`\s+`)

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Absolute date layouts carrying a year
var datedLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Year-less layouts are resolved to the next occurrence on or after the
// reference date
var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
	"01/02",
	"1/2",
}

var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// ResolveDate resolves a natural-language date expression against a
// reference instant. Relative forms ("tomorrow", "next Friday") move forward
// from the reference day; a bare weekday name means the next occurrence,
// counting today. Returns entity.ErrUnparseable when nothing matches.
func ResolveDate(text string, now time.Time) (time.Time, error) {
	s := normalizeExpr(text)
	if s == "" {
		return time.Time{}, entity.ErrUnparseable
	}
	s = strings.TrimPrefix(s, "on ")

	switch s {
	case "today", "tonight", "this evening":
		return midnight(now), nil
	case "tomorrow", "tomorrow night", "tomorrow evening":
		return midnight(now).AddDate(0, 0, 1), nil
	case "day after tomorrow", "the day after tomorrow":
		return midnight(now).AddDate(0, 0, 2), nil
	}

	rest := s
	next := false
	if strings.HasPrefix(rest, "next ") {
		next = true
		rest = strings.TrimPrefix(rest, "next ")
	} else if strings.HasPrefix(rest, "this ") {
		rest = strings.TrimPrefix(rest, "this ")
	}
	if wd, ok := weekdayByName[rest]; ok {
		delta := (int(wd) - int(now.Weekday()) + 7) % 7
		// "next Monday" said on a Monday means a week out
		if delta == 0 && next {
			delta = 7
		}
		return midnight(now).AddDate(0, 0, delta), nil
	}

	cleaned := spacesRe.ReplaceAllString(ordinalRe.ReplaceAllString(s, "$1"), " ")
	cleaned = titleCase(cleaned)

	for _, layout := range datedLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, now.Location()); err == nil {
			return midnight(t), nil
		}
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, now.Location()); err == nil {
			resolved := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
			if resolved.Before(midnight(now)) {
				resolved = resolved.AddDate(1, 0, 0)
			}
			return resolved, nil
		}
	}

	return time.Time{}, entity.ErrUnparseable
}

// ResolveClock resolves a clock expression ("6:00 PM", "noon", "18:30") to a
// moment on the reference day. Returns entity.ErrUnparseable when nothing
// matches.
func ResolveClock(text string, now time.Time) (time.Time, error) {
	s := strings.ToUpper(normalizeExpr(text))
	if s == "" {
		return time.Time{}, entity.ErrUnparseable
	}
	s = strings.TrimPrefix(s, "AT ")

	switch s {
	case "NOON", "12 NOON", "MIDDAY":
		return anchorClock(now, 12, 0), nil
	case "MIDNIGHT":
		return anchorClock(now, 0, 0), nil
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return anchorClock(now, t.Hour(), t.Minute()), nil
		}
	}

	return time.Time{}, entity.ErrUnparseable
}

// CanonicalDate formats a resolved date in the stored YYYY-MM-DD form
func CanonicalDate(t time.Time) string {
	return t.Format(DATE_LAYOUT)
}

// CanonicalClock formats a resolved clock value in the spoken form
func CanonicalClock(t time.Time) string {
	return t.Format(CLOCK_LAYOUT)
}

// WeekdayName returns the weekday name for a resolved date
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// normalizeExpr lowercases, trims and collapses whitespace, and strips the
// periods out of "p.m." style suffixes
func normalizeExpr(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "a.m.", "am")
	s = strings.ReplaceAll(s, "p.m.", "pm")
	return spacesRe.ReplaceAllString(s, " ")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func anchorClock(ref time.Time, hour, minute int) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
