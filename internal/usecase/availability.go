package usecase

import (
	"context"
	"time"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/pkg/logger"
	"tabletalk-service/pkg/utils"
)

// AvailabilityChecker decides whether a requested date and time fall inside
// the restaurant's open interval for that day
type AvailabilityChecker struct {
	oracle *HoursOracle
	logger logger.Logger
}

// NewAvailabilityChecker creates a new availability checker
func NewAvailabilityChecker(oracle *HoursOracle, logger logger.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		oracle: oracle,
		logger: logger,
	}
}

// Check resolves the date and time text against the reference instant and
// judges the slot against the day's hours. It always returns a verdict;
// every failure mode maps onto a verdict kind rather than an error.
func (c *AvailabilityChecker) Check(ctx context.Context, dateText, timeText string, now time.Time) *entity.Verdict {
	date, err := utils.ResolveDate(dateText, now)
	if err != nil {
		return &entity.Verdict{
			Kind:     entity.VerdictUnparseable,
			DateText: dateText,
			TimeText: timeText,
			BadField: "date",
		}
	}

	requested, err := utils.ResolveClock(timeText, now)
	if err != nil {
		return &entity.Verdict{
			Kind:     entity.VerdictUnparseable,
			DateText: dateText,
			TimeText: timeText,
			BadField: "time",
		}
	}

	weekday := utils.WeekdayName(date)
	verdict := &entity.Verdict{
		Weekday:  weekday,
		DateText: dateText,
		TimeText: timeText,
	}

	hours, err := c.oracle.HoursForDay(ctx, weekday, now)
	if err != nil {
		verdict.Kind = entity.VerdictUnverifiable
		return verdict
	}
	verdict.Hours = hours

	// Boundary times count as open
	if requested.Before(hours.Open) || requested.After(hours.Close) {
		verdict.Kind = entity.VerdictClosed
	} else {
		verdict.Kind = entity.VerdictOpen
	}

	c.logger.Info("Availability check",
		"date", dateText, "time", timeText, "weekday", weekday, "verdict", verdict.Kind)
	return verdict
}
