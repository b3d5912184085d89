package usecase

import (
	"context"
	"fmt"
	"time"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"
	"tabletalk-service/pkg/utils"
)

// dayGroups maps each weekday to the day-group label the knowledge base
// publishes hours under
var dayGroups = map[string]string{
	"Monday":    "Monday to Thursday",
	"Tuesday":   "Monday to Thursday",
	"Wednesday": "Monday to Thursday",
	"Thursday":  "Monday to Thursday",
	"Friday":    "Friday – Saturday",
	"Saturday":  "Friday – Saturday",
	"Sunday":    "Sunday",
}

// HoursOracle answers what hours the restaurant keeps on a given weekday by
// querying the knowledge source and extracting the open/close tokens
type HoursOracle struct {
	knowledgeRepo repository.KnowledgeRepository
	logger        logger.Logger
}

// NewHoursOracle creates a new hours oracle
func NewHoursOracle(knowledgeRepo repository.KnowledgeRepository, logger logger.Logger) *HoursOracle {
	return &HoursOracle{
		knowledgeRepo: knowledgeRepo,
		logger:        logger,
	}
}

// HoursForDay returns the open/close interval for a weekday name. Every
// failure mode, from a down knowledge source to a malformed hours line, comes
// back as entity.ErrUnverifiable.
func (o *HoursOracle) HoursForDay(ctx context.Context, weekday string, ref time.Time) (*entity.BusinessHours, error) {
	dayGroup, ok := dayGroups[weekday]
	if !ok {
		o.logger.Warn("Unknown weekday name", "weekday", weekday)
		return nil, entity.ErrUnverifiable
	}

	question := fmt.Sprintf("What are the restaurant's hours on %ss?", weekday)
	answer, err := o.knowledgeRepo.Ask(ctx, question)
	if err != nil {
		o.logger.Error("Knowledge source query failed", "weekday", weekday, "error", err)
		return nil, entity.ErrUnverifiable
	}

	line, found := utils.FindDayGroupLine(answer, dayGroup)
	if !found {
		o.logger.Warn("No hours line for day group", "dayGroup", dayGroup)
		return nil, entity.ErrUnverifiable
	}

	openText, closeText, ok := utils.ExtractHourTokens(line)
	if !ok {
		o.logger.Warn("Hours line did not contain exactly two clock tokens", "line", line)
		return nil, entity.ErrUnverifiable
	}

	open, err := utils.ResolveClock(openText, ref)
	if err != nil {
		return nil, entity.ErrUnverifiable
	}
	close, err := utils.ResolveClock(closeText, ref)
	if err != nil {
		return nil, entity.ErrUnverifiable
	}

	// Same-day hours only; an inverted interval is malformed data
	if !open.Before(close) {
		o.logger.Warn("Knowledge base returned inverted hours", "open", openText, "close", closeText)
		return nil, entity.ErrUnverifiable
	}

	return &entity.BusinessHours{
		DayGroup:  dayGroup,
		Open:      open,
		Close:     close,
		OpenText:  openText,
		CloseText: closeText,
	}, nil
}
