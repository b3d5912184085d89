package usecase

import (
	"context"
	"errors"
	"testing"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/pkg/logger"
)

func newTestChecker(kb *fakeKnowledge) *AvailabilityChecker {
	log := logger.NewNop()
	return NewAvailabilityChecker(NewHoursOracle(kb, log), log)
}

func TestCheck_UnparseableDate(t *testing.T) {
	checker := newTestChecker(&fakeKnowledge{answer: hoursAnswer})

	verdict := checker.Check(context.Background(), "blargh", "6:00 PM", testNow)
	if verdict.Kind != entity.VerdictUnparseable {
		t.Fatalf("verdict = %s, want UNPARSEABLE", verdict.Kind)
	}
	if verdict.BadField != "date" {
		t.Errorf("bad field = %s, want date", verdict.BadField)
	}
}

func TestCheck_UnparseableTime(t *testing.T) {
	checker := newTestChecker(&fakeKnowledge{answer: hoursAnswer})

	verdict := checker.Check(context.Background(), "next Monday", "whenever", testNow)
	if verdict.Kind != entity.VerdictUnparseable {
		t.Fatalf("verdict = %s, want UNPARSEABLE", verdict.Kind)
	}
	if verdict.BadField != "time" {
		t.Errorf("bad field = %s, want time", verdict.BadField)
	}
}

func TestCheck_ClosedSlot(t *testing.T) {
	checker := newTestChecker(&fakeKnowledge{answer: hoursAnswer})

	verdict := checker.Check(context.Background(), "next Monday", "4:30 PM", testNow)
	if verdict.Kind != entity.VerdictClosed {
		t.Fatalf("verdict = %s, want CLOSED", verdict.Kind)
	}
	if verdict.Weekday != "Monday" {
		t.Errorf("weekday = %s, want Monday", verdict.Weekday)
	}
	if verdict.Hours == nil || verdict.Hours.OpenText != "5:00 PM" || verdict.Hours.CloseText != "10:00 PM" {
		t.Errorf("verdict must cite the 5:00 PM - 10:00 PM interval, got %+v", verdict.Hours)
	}
}

func TestCheck_Boundaries(t *testing.T) {
	checker := newTestChecker(&fakeKnowledge{answer: hoursAnswer})

	tests := []struct {
		time string
		want string
	}{
		{"4:59 PM", entity.VerdictClosed},
		{"5:00 PM", entity.VerdictOpen}, // opening time counts as open
		{"6:00 PM", entity.VerdictOpen},
		{"10:00 PM", entity.VerdictOpen}, // closing time counts as open
		{"10:01 PM", entity.VerdictClosed},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			verdict := checker.Check(context.Background(), "next Monday", tt.time, testNow)
			if verdict.Kind != tt.want {
				t.Errorf("Check(next Monday, %s) = %s, want %s", tt.time, verdict.Kind, tt.want)
			}
		})
	}
}

func TestCheck_WeekendHours(t *testing.T) {
	checker := newTestChecker(&fakeKnowledge{answer: hoursAnswer})

	// 10:30 PM is past Monday's close but inside Saturday's hours
	verdict := checker.Check(context.Background(), "next Saturday", "10:30 PM", testNow)
	if verdict.Kind != entity.VerdictOpen {
		t.Errorf("Saturday 10:30 PM = %s, want OPEN", verdict.Kind)
	}

	verdict = checker.Check(context.Background(), "next Monday", "10:30 PM", testNow)
	if verdict.Kind != entity.VerdictClosed {
		t.Errorf("Monday 10:30 PM = %s, want CLOSED", verdict.Kind)
	}
}

func TestCheck_Unverifiable(t *testing.T) {
	checker := newTestChecker(&fakeKnowledge{err: errors.New("kb down")})

	verdict := checker.Check(context.Background(), "next Monday", "6:00 PM", testNow)
	if verdict.Kind != entity.VerdictUnverifiable {
		t.Fatalf("verdict = %s, want UNVERIFIABLE", verdict.Kind)
	}
	if verdict.Weekday != "Monday" {
		t.Errorf("weekday = %s, want Monday", verdict.Weekday)
	}
}
