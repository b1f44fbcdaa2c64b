package slotlocks

import (
	"bookwell-service/internal/app/contracts"
	"context"
	"time"

	"go.uber.org/zap"
)

// Reaper sweeps expired slot_locks rows on a fixed interval. Expiry filtering
// at read time is what keeps stale holds from blocking; the reaper only keeps
// the table from growing without bound.
type Reaper struct {
	SlotLockRepository contracts.SlotLockRepository
	Interval           time.Duration
	Log                *zap.Logger
}

func NewReaper(slotLockRepository contracts.SlotLockRepository, interval time.Duration, logger *zap.Logger) *Reaper {
	return &Reaper{
		SlotLockRepository: slotLockRepository,
		Interval:           interval,
		Log:                logger,
	}
}

// Run blocks until ctx is cancelled; callers start it on its own goroutine.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := r.SlotLockRepository.DeleteExpired(ctx)
			if err != nil {
				r.Log.Error("slotLockReaper sweep failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				r.Log.Info("slotLockReaper swept expired locks", zap.Int64("deleted", deleted))
			}
		}
	}
}
