package repository

import (
	"context"
	"time"

	"parkslot-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// UpdatePeriod writes period, status and billing state with a version
	// check; it returns domain.ErrConflict when the stored version no longer
	// matches v.Version.
	UpdatePeriod(ctx context.Context, v *domain.Vehicle) error
	// UpdateDetails writes descriptive and billing fields only. It must
	// never touch start_date or end_date.
	UpdateDetails(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	// ExpireLapsed flips active records whose end_date has passed to
	// inactive and returns how many changed. It never flips the other way.
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context) (active, inactive int32, err error)
	CountByRentalType(ctx context.Context) (monthly, daily int32, err error)
	ListOccupiedLots(ctx context.Context) ([]string, error)
}

type LedgerRepository interface {
	// Append inserts a new entry. The ledger has no update or delete path.
	Append(ctx context.Context, e *domain.LedgerEntry) error
	ListByVehicleNumber(ctx context.Context, vehicleNumber string) ([]domain.LedgerEntry, error)
	// MonthlyNet returns deposits minus refunds windowed to the given month.
	MonthlyNet(ctx context.Context, year int, month time.Month) (int64, error)
	// TotalNet returns the running deposits-minus-refunds sum through asOf.
	TotalNet(ctx context.Context, asOf time.Time) (int64, error)
}
