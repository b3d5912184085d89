package utils

import (
	"errors"
	"testing"
	"time"

	"tabletalk-service/internal/domain/entity"
)

// Wednesday, July 16th 2025, 10:00 local
var refNow = time.Date(2025, time.July, 16, 10, 0, 0, 0, time.UTC)

func TestResolveDate_Relative(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"today", "2025-07-16"},
		{"tonight", "2025-07-16"},
		{"tomorrow", "2025-07-17"},
		{"day after tomorrow", "2025-07-18"},
		{"Friday", "2025-07-18"},
		{"this friday", "2025-07-18"},
		{"next Friday", "2025-07-18"},
		{"next Monday", "2025-07-21"},
		{"on saturday", "2025-07-19"},
		// Saying "next Wednesday" on a Wednesday means a week out
		{"next Wednesday", "2025-07-23"},
		// A bare weekday matching today means today
		{"wednesday", "2025-07-16"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveDate(tt.input, refNow)
			if err != nil {
				t.Fatalf("ResolveDate(%q) returned error: %v", tt.input, err)
			}
			if got.Format(DATE_LAYOUT) != tt.want {
				t.Errorf("ResolveDate(%q) = %s, want %s", tt.input, got.Format(DATE_LAYOUT), tt.want)
			}
		})
	}
}

func TestResolveDate_Absolute(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-07-25", "2025-07-25"},
		{"07/25/2025", "2025-07-25"},
		{"July 25, 2025", "2025-07-25"},
		{"25 July 2025", "2025-07-25"},
		{"July 25th", "2025-07-25"},
		{"july 25", "2025-07-25"},
		// A passed year-less date rolls into next year
		{"March 3rd", "2026-03-03"},
		{"January 1", "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveDate(tt.input, refNow)
			if err != nil {
				t.Fatalf("ResolveDate(%q) returned error: %v", tt.input, err)
			}
			if got.Format(DATE_LAYOUT) != tt.want {
				t.Errorf("ResolveDate(%q) = %s, want %s", tt.input, got.Format(DATE_LAYOUT), tt.want)
			}
		})
	}
}

func TestResolveDate_Unparseable(t *testing.T) {
	for _, input := range []string{"", "blargh", "the restaurant", "25:99"} {
		if _, err := ResolveDate(input, refNow); !errors.Is(err, entity.ErrUnparseable) {
			t.Errorf("ResolveDate(%q) error = %v, want ErrUnparseable", input, err)
		}
	}
}

func TestResolveDate_Deterministic(t *testing.T) {
	first, err := ResolveDate("next friday", refNow)
	if err != nil {
		t.Fatalf("ResolveDate returned error: %v", err)
	}
	second, err := ResolveDate("next friday", refNow)
	if err != nil {
		t.Fatalf("ResolveDate returned error: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("same input and reference produced %v then %v", first, second)
	}
}

func TestResolveClock(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"6:00 PM", "6:00 PM"},
		{"6:00PM", "6:00 PM"},
		{"6 pm", "6:00 PM"},
		{"6 p.m.", "6:00 PM"},
		{"18:30", "6:30 PM"},
		{"at 7:15 pm", "7:15 PM"},
		{"noon", "12:00 PM"},
		{"midnight", "12:00 AM"},
		{"10:00 AM", "10:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveClock(tt.input, refNow)
			if err != nil {
				t.Fatalf("ResolveClock(%q) returned error: %v", tt.input, err)
			}
			if CanonicalClock(got) != tt.want {
				t.Errorf("ResolveClock(%q) = %s, want %s", tt.input, CanonicalClock(got), tt.want)
			}
			if got.Year() != refNow.Year() || got.Month() != refNow.Month() || got.Day() != refNow.Day() {
				t.Errorf("ResolveClock(%q) not anchored to the reference day: %v", tt.input, got)
			}
		})
	}
}

func TestResolveClock_Unparseable(t *testing.T) {
	for _, input := range []string{"", "blargh", "soonish"} {
		if _, err := ResolveClock(input, refNow); !errors.Is(err, entity.ErrUnparseable) {
			t.Errorf("ResolveClock(%q) error = %v, want ErrUnparseable", input, err)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	date, err := ResolveDate("next Monday", refNow)
	if err != nil {
		t.Fatalf("ResolveDate returned error: %v", err)
	}
	if WeekdayName(date) != "Monday" {
		t.Errorf("WeekdayName = %s, want Monday", WeekdayName(date))
	}
}
