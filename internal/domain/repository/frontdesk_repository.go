package repository

import (
	"context"

	"tabletalk-service/internal/domain/entity"
)

// FrontdeskRepository defines the interface for notifying restaurant staff
// about reservation changes. Notifications are best-effort; failures must
// never block the guest-facing turn.
type FrontdeskRepository interface {
	NotifyCreated(ctx context.Context, reservation *entity.Reservation) error
	NotifyCancelled(ctx context.Context, phone string) error
}
