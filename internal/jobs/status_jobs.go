package jobs

import (
	"context"
	"time"

	"parkslot-backend/internal/logger"
)

// ExpireLapsedRentals flips active vehicles whose period end has passed to
// inactive. This is the only automated writer of inactive status; it has no
// other side effect, so a vehicle can read active for at most one sweep
// interval past its true period end.
func (jr *JobRunner) ExpireLapsedRentals() {
	jr.runWithRecovery("ExpireLapsedRentals", func() {
		ctx := context.Background()

		count, err := jr.services.Vehicle.SweepExpireStatuses(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire lapsed rentals", "error", err)
			return
		}

		logger.Info("Lapsed rentals expired", "count", count)
	})
}
