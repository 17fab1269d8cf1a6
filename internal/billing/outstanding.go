package billing

import (
	"time"

	"parkslot-backend/internal/domain"
)

// Outstanding is the arrears position of a single vehicle.
type Outstanding struct {
	DaysOverdue int32 `json:"days_overdue"`
	DueAmount   int64 `json:"due_amount"`
}

// ComputeOutstanding prices the arrears of a lapsed vehicle as of today.
// Arrears begin the day after the period end, and that first day counts as
// day 1, mirroring the period calculator's day-counting. Monthly vehicles owe
// a flat month of rent no matter how long the lapse; daily vehicles accrue
// rent for every overdue day. The vehicle record is never mutated and the
// result is never cached.
func ComputeOutstanding(v *domain.Vehicle, today time.Time) Outstanding {
	if v.EndDate.IsZero() || !v.EndDate.Before(today) {
		return Outstanding{}
	}

	arrearsStart := v.EndDate.AddDate(0, 0, 1)
	days := DaysBetween(arrearsStart, today) + 1
	if days < 1 {
		return Outstanding{}
	}

	out := Outstanding{DaysOverdue: int32(days)}
	switch v.RentalType {
	case domain.RentalTypeDaily:
		out.DueAmount = v.RentPrice * int64(days)
	default:
		out.DueAmount = v.RentPrice
	}
	return out
}
