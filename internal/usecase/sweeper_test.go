package usecase

import (
	"context"
	"testing"
	"time"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/pkg/logger"
)

func TestPurgeExpired(t *testing.T) {
	store := &fakeStore{records: []*entity.Reservation{
		{Phone: "5550000001", Date: "2025-07-10"},
		{Phone: "5550000002", Date: "2025-07-15"},
		{Phone: "5550000003", Date: "2025-07-16"}, // today stays
		{Phone: "5550000004", Date: "2025-07-20"},
		{Phone: "5550000005", Date: "next friday"}, // never canonicalized, kept
	}}
	sweeper := NewSweeper(store, logger.NewNop())

	purged, err := sweeper.PurgeExpired(context.Background(), testNow)
	if err != nil {
		t.Fatalf("PurgeExpired returned error: %v", err)
	}
	if purged != 2 {
		t.Errorf("purged %d records, want 2", purged)
	}
	if store.count() != 3 {
		t.Errorf("store holds %d records, want 3", store.count())
	}
	for _, phone := range []string{"5550000003", "5550000004", "5550000005"} {
		if _, err := store.FindByPhone(context.Background(), phone); err != nil {
			t.Errorf("record %s should have survived the purge: %v", phone, err)
		}
	}
}

func TestPurgeExpired_StoreFailure(t *testing.T) {
	sweeper := NewSweeper(&fakeStore{failing: true}, logger.NewNop())

	if _, err := sweeper.PurgeExpired(context.Background(), time.Now()); err == nil {
		t.Error("expected the store error to surface")
	}
}
