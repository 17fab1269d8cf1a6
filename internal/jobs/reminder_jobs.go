package jobs

import (
	"context"
	"fmt"
	"time"

	"parkslot-backend/internal/billing"
	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/logger"
)

// SendArrearsReminders renders a dues message for every lapsed vehicle and
// hands it to the notifier gateway. Sends are fire-and-forget; a failed send
// is logged and retried on the next nightly run.
func (jr *JobRunner) SendArrearsReminders() {
	jr.runWithRecovery("SendArrearsReminders", func() {
		ctx := context.Background()
		now := time.Now()

		lapsed, err := jr.services.Vehicle.List(ctx, domain.VehicleFilter{Status: domain.VehicleStatusInactive})
		if err != nil {
			logger.Error("Failed to list lapsed vehicles", "error", err)
			return
		}

		count := 0
		for i := range lapsed {
			v := &lapsed[i]
			out := billing.ComputeOutstanding(v, now)
			if out.DaysOverdue == 0 {
				continue
			}

			message := fmt.Sprintf(`Dear %s,

Your parking rental for vehicle %s expired on %s and is overdue by %d day(s). The outstanding amount is Rs. %d.

Please renew at the facility office to keep your slot.

Thank you`,
				v.OwnerName, v.VehicleNumber, v.EndDate.Format("02 Jan 2006"), out.DaysOverdue, out.DueAmount)

			if err := jr.services.Notifier.Send(ctx, v.ContactNumber, message); err != nil {
				logger.Error("Failed to send arrears reminder",
					"vehicle_id", v.ID,
					"vehicle_number", v.VehicleNumber,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent arrears reminder",
				"vehicle_id", v.ID,
				"vehicle_number", v.VehicleNumber,
				"days_overdue", out.DaysOverdue)
		}

		logger.Info("Arrears reminders sent", "count", count)
	})
}
