package reaper

import (
	"context"
	"log/slog"
	"time"
)

// ExpiryStore is any store that can bulk-delete records past their deadline.
type ExpiryStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Service sweeps expired challenge records. Safe to run concurrently with
// the issuer and verifier: a record consumed between scan and delete
// yields a no-op delete.
type Service struct {
	stores map[string]ExpiryStore
	now    func() time.Time
}

// NewService takes the stores to sweep, keyed by a name used in logs.
func NewService(stores map[string]ExpiryStore) *Service {
	return &Service{stores: stores, now: time.Now}
}

// Sweep deletes expired records across all stores and returns the total
// removed. Per-store failures are logged and skipped; the next scheduled
// run retries implicitly.
func (s *Service) Sweep(ctx context.Context) int {
	now := s.now()
	total := 0
	for name, store := range s.stores {
		removed, err := store.DeleteExpired(ctx, now)
		if err != nil {
			slog.Error("expiry sweep failed", "store", name, "err", err)
			continue
		}
		total += removed
	}
	slog.Info("expiry sweep done", "removed", total)
	return total
}
