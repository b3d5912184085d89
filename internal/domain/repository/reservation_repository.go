package repository

import (
	"context"

	"tabletalk-service/internal/domain/entity"
)

// ReservationRepository defines the interface for reservation storage.
// Create inserts unconditionally; duplicate handling is a caller policy.
// FindByPhone and DeleteByPhone are exact-match on the phone key and return
// entity.ErrNotFound when nothing matches.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByPhone(ctx context.Context, phone string) (*entity.Reservation, error)
	DeleteByPhone(ctx context.Context, phone string) error
	// PurgeBefore removes reservations whose canonical date is before the
	// cutoff (YYYY-MM-DD). Records with unparsed date text are left alone.
	PurgeBefore(ctx context.Context, cutoff string) (int64, error)
}
