// Package billing holds the pure date and money rules of the rental engine:
// period boundary computation and arrears pricing. Everything here works on
// calendar days, never elapsed 24h spans, so month boundaries and DST shifts
// cannot drift the math.
package billing

import (
	"fmt"
	"time"

	"parkslot-backend/internal/domain"
)

// EndOfDay returns t's calendar day at its final instant, 23:59:59.999.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// MonthlyPeriodEnd returns the last calendar day of start's month at
// end-of-day. Monthly billing always runs through the end of the calendar
// month, so a rental started on the 28th gets a short first period.
func MonthlyPeriodEnd(start time.Time) time.Time {
	firstOfNext := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, start.Location())
	return EndOfDay(firstOfNext.AddDate(0, 0, -1))
}

// DailyPeriodEnd returns start + (numberOfDays - 1) days at end-of-day.
// The start date counts as day 1, so a 1-day rental ends the day it begins.
func DailyPeriodEnd(start time.Time, numberOfDays int32) (time.Time, error) {
	if numberOfDays < 1 {
		return time.Time{}, fmt.Errorf("%w: number of days must be at least 1, got %d", domain.ErrInvalidInput, numberOfDays)
	}
	return EndOfDay(start.AddDate(0, 0, int(numberOfDays-1))), nil
}

// ComputePeriodEnd dispatches on rental type. numberOfDays is ignored for
// monthly rentals.
func ComputePeriodEnd(rentalType domain.RentalType, start time.Time, numberOfDays int32) (time.Time, error) {
	switch rentalType {
	case domain.RentalTypeMonthly:
		return MonthlyPeriodEnd(start), nil
	case domain.RentalTypeDaily:
		return DailyPeriodEnd(start, numberOfDays)
	default:
		return time.Time{}, fmt.Errorf("%w: unknown rental type %q", domain.ErrInvalidInput, rentalType)
	}
}

// NextMonthPeriodEnd returns the last day of the month after now's month at
// end-of-day. This is the reactivation rule: a lapsed monthly renter who pays
// again is billed through the end of the upcoming month, skipping the month
// the payment lands in.
func NextMonthPeriodEnd(now time.Time) time.Time {
	return MonthlyPeriodEnd(time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()))
}

// DaysBetween returns the whole calendar days from a's day to b's day.
// Negative when b is before a. Clock times are discarded before subtracting
// so the count never shifts across DST transitions.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
