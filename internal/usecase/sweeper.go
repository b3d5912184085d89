package usecase

import (
	"context"
	"time"

	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"
	"tabletalk-service/pkg/utils"
)

// Sweeper removes reservations whose date has passed. Records whose date
// never parsed are kept; only canonical YYYY-MM-DD dates are judged.
type Sweeper struct {
	store  repository.ReservationRepository
	logger logger.Logger
}

// NewSweeper creates a new sweeper
func NewSweeper(store repository.ReservationRepository, logger logger.Logger) *Sweeper {
	return &Sweeper{
		store:  store,
		logger: logger,
	}
}

// PurgeExpired deletes reservations dated strictly before today
func (s *Sweeper) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Format(utils.DATE_LAYOUT)
	purged, err := s.store.PurgeBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Reservation purge failed", "cutoff", cutoff, "error", err)
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("Purged expired reservations", "count", purged, "cutoff", cutoff)
	}
	return purged, nil
}
