package service

import (
	"context"
	"time"

	"parkslot-backend/internal/billing"
	"parkslot-backend/internal/domain"
)

// IntakeInput creates a new rental record. StartDate defaults to now;
// AdvanceAmount defaults to the configured deposit for monthly rentals.
type IntakeInput struct {
	VehicleNumber   string                 `json:"vehicle_number" validate:"required"`
	OwnerName       string                 `json:"owner_name" validate:"required"`
	ContactNumber   string                 `json:"contact_number" validate:"required"`
	ParkingType     domain.ParkingType     `json:"parking_type" validate:"required,oneof=private open"`
	RentalType      domain.RentalType      `json:"rental_type" validate:"required,oneof=monthly daily"`
	LotNumber       string                 `json:"lot_number"`
	RentPrice       int64                  `json:"rent_price" validate:"required,gt=0"`
	NumberOfDays    int32                  `json:"number_of_days"`
	AdvanceAmount   *int64                 `json:"advance_amount,omitempty"`
	StartDate       *time.Time             `json:"start_date,omitempty"`
	TransactionMode domain.TransactionMode `json:"transaction_mode" validate:"omitempty,oneof=Cash UPI"`
	ReceivedBy      string                 `json:"received_by"`
}

// RenewalInput carries the payment details of a reactivation or extension.
type RenewalInput struct {
	RentPrice       *int64                 `json:"rent_price,omitempty"`
	TransactionMode domain.TransactionMode `json:"transaction_mode" validate:"required,oneof=Cash UPI"`
	ReceivedBy      string                 `json:"received_by" validate:"required"`
}

// EditInput is a partial update of descriptive and billing fields. It carries
// no period fields on purpose: an edit must never disturb the computed
// period, so start and end dates are structurally impossible to submit here.
type EditInput struct {
	VehicleNumber *string             `json:"vehicle_number,omitempty"`
	OwnerName     *string             `json:"owner_name,omitempty"`
	ContactNumber *string             `json:"contact_number,omitempty"`
	ParkingType   *domain.ParkingType `json:"parking_type,omitempty"`
	LotNumber     *string             `json:"lot_number,omitempty"`
	RentPrice     *int64              `json:"rent_price,omitempty"`
	AdvanceAmount *int64              `json:"advance_amount,omitempty"`
}

type VehicleService interface {
	Intake(ctx context.Context, input IntakeInput) (*domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	Reactivate(ctx context.Context, id string, input RenewalInput) (*domain.Vehicle, error)
	Extend(ctx context.Context, id string, additionalDays int32, input RenewalInput) (*domain.Vehicle, error)
	Edit(ctx context.Context, id string, input EditInput) (*domain.Vehicle, error)
	Remove(ctx context.Context, id string) error
	Outstanding(ctx context.Context, id string) (*billing.Outstanding, error)
	OccupiedLots(ctx context.Context) ([]string, error)
	SweepExpireStatuses(ctx context.Context, now time.Time) (int64, error)
}

type LedgerService interface {
	RecordAdvance(ctx context.Context, vehicleNumber string, amount int64, mode domain.TransactionMode, receivedBy string) (*domain.LedgerEntry, error)
	RecordRefund(ctx context.Context, vehicleNumber string, amount int64, refundDate time.Time) (*domain.LedgerEntry, error)
	Entries(ctx context.Context, vehicleNumber string) ([]domain.LedgerEntry, error)
	AdvanceTotals(ctx context.Context, year int, month time.Month) (*domain.AdvanceTotals, error)
	ReconstructArchivedView(ctx context.Context, vehicleNumber string) (*domain.VehicleSummary, error)
}

type ReportService interface {
	Dashboard(ctx context.Context) (*domain.DashboardReport, error)
}

// Notifier pushes a pre-rendered message to a vehicle owner's contact
// number. Sends are fire-and-forget; no delivery state comes back.
type Notifier interface {
	Send(ctx context.Context, contactNumber, message string) error
}
