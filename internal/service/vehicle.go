package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"parkslot-backend/internal/billing"
	"parkslot-backend/internal/config"
	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/logger"
	"parkslot-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	ledgerRepo  repository.LedgerRepository
	cfg         *config.Config
	validate    *validator.Validate
	now         func() time.Time
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	ledgerRepo repository.LedgerRepository,
	cfg *config.Config,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		ledgerRepo:  ledgerRepo,
		cfg:         cfg,
		validate:    validator.New(),
		now:         time.Now,
	}
}

func (s *vehicleService) Intake(ctx context.Context, input IntakeInput) (*domain.Vehicle, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.RentalType == domain.RentalTypeDaily && input.NumberOfDays < 1 {
		return nil, fmt.Errorf("%w: daily rental requires number_of_days of at least 1", domain.ErrInvalidInput)
	}
	if input.ReceivedBy != "" && !s.cfg.IsStaff(input.ReceivedBy) {
		return nil, fmt.Errorf("%w: %q is not on the staff roster", domain.ErrInvalidInput, input.ReceivedBy)
	}
	if input.AdvanceAmount != nil && *input.AdvanceAmount < 0 {
		return nil, fmt.Errorf("%w: advance amount cannot be negative, got %d", domain.ErrInvalidInput, *input.AdvanceAmount)
	}

	start := s.now()
	if input.StartDate != nil {
		start = *input.StartDate
	}

	endDate, err := billing.ComputePeriodEnd(input.RentalType, start, input.NumberOfDays)
	if err != nil {
		return nil, err
	}

	// Deposits only exist for monthly rentals.
	var advance int64
	if input.RentalType == domain.RentalTypeMonthly {
		advance = s.cfg.Billing.DefaultAdvanceAmount
		if input.AdvanceAmount != nil {
			advance = *input.AdvanceAmount
		}
	}
	// A paid advance becomes a ledger entry, and ledger entries carry a
	// transaction mode. Reject before any write.
	if advance > 0 && input.TransactionMode == "" {
		return nil, fmt.Errorf("%w: transaction mode is required when an advance is paid", domain.ErrInvalidInput)
	}

	v := &domain.Vehicle{
		ID:            uuid.New().String(),
		VehicleNumber: normalizeVehicleNumber(input.VehicleNumber),
		OwnerName:     input.OwnerName,
		ContactNumber: input.ContactNumber,
		ParkingType:   input.ParkingType,
		RentalType:    input.RentalType,
		LotNumber:     input.LotNumber,
		RentPrice:     input.RentPrice,
		NumberOfDays:  input.NumberOfDays,
		AdvanceAmount: advance,
		StartDate:     start,
		EndDate:       endDate,
		Status:        domain.VehicleStatusActive,
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	if advance > 0 {
		entry := &domain.LedgerEntry{
			VehicleNumber:   v.VehicleNumber,
			Type:            domain.EntryTypeDeposit,
			Amount:          advance,
			TransactionDate: start,
			TransactionMode: input.TransactionMode,
			ReceivedBy:      input.ReceivedBy,
		}
		if err := s.ledgerRepo.Append(ctx, entry); err != nil {
			// The vehicle row is already committed. Do not retry the intake;
			// record the deposit separately through the advance endpoint.
			return nil, fmt.Errorf("vehicle %s created but the advance entry failed, record the deposit separately: %w", v.ID, err)
		}
	}

	logger.Info("Vehicle intake completed",
		"vehicle_id", v.ID,
		"vehicle_number", v.VehicleNumber,
		"rental_type", v.RentalType,
		"end_date", v.EndDate)
	return v, nil
}

func (s *vehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx, filter)
}

// Reactivate renews a lapsed monthly rental. The new period runs through the
// end of the month after the one the payment lands in. Replaying the same
// request is a no-op once the stored period already reaches that boundary.
func (s *vehicleService) Reactivate(ctx context.Context, id string, input RenewalInput) (*domain.Vehicle, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.RentalType != domain.RentalTypeMonthly {
		return nil, fmt.Errorf("%w: reactivation applies to monthly rentals only", domain.ErrInvalidInput)
	}
	return s.renewMonthly(ctx, v, input)
}

// Extend adds billed days to a daily rental, catching it up to active even
// from a lapsed state. For a monthly rental it is the same operation as
// Reactivate, just invoked from the active-vehicle side.
func (s *vehicleService) Extend(ctx context.Context, id string, additionalDays int32, input RenewalInput) (*domain.Vehicle, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v.RentalType == domain.RentalTypeMonthly {
		return s.renewMonthly(ctx, v, input)
	}

	if additionalDays <= 0 {
		return nil, fmt.Errorf("%w: additional days must be positive, got %d", domain.ErrInvalidInput, additionalDays)
	}
	if v.EndDate.IsZero() {
		return nil, fmt.Errorf("vehicle %s has no period end to extend: %w", v.ID, domain.ErrInvalidInput)
	}
	if !s.cfg.IsStaff(input.ReceivedBy) {
		return nil, fmt.Errorf("%w: %q is not on the staff roster", domain.ErrInvalidInput, input.ReceivedBy)
	}

	v.EndDate = billing.EndOfDay(v.EndDate.AddDate(0, 0, int(additionalDays)))
	v.NumberOfDays += additionalDays
	v.AdditionalDays += additionalDays
	v.Status = domain.VehicleStatusActive

	if err := s.vehicleRepo.UpdatePeriod(ctx, v); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		VehicleNumber:   v.VehicleNumber,
		Type:            domain.EntryTypeRent,
		Amount:          v.RentPrice * int64(additionalDays),
		TransactionDate: s.now(),
		TransactionMode: input.TransactionMode,
		ReceivedBy:      input.ReceivedBy,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		logger.Error("Extension applied but rent entry failed",
			"vehicle_id", v.ID, "error", err)
	}

	logger.Info("Daily rental extended",
		"vehicle_id", v.ID,
		"additional_days", additionalDays,
		"end_date", v.EndDate)
	return v, nil
}

// renewMonthly is the shared date rule behind Reactivate and the monthly
// branch of Extend. It always re-fetched state before this call, so a renewal
// that lands after a sweep wins over the sweep's inactive flip.
func (s *vehicleService) renewMonthly(ctx context.Context, v *domain.Vehicle, input RenewalInput) (*domain.Vehicle, error) {
	if !s.cfg.IsStaff(input.ReceivedBy) {
		return nil, fmt.Errorf("%w: %q is not on the staff roster", domain.ErrInvalidInput, input.ReceivedBy)
	}

	now := s.now()
	newEnd := billing.NextMonthPeriodEnd(now)
	if !v.EndDate.Before(newEnd) {
		// Period already covers the computed boundary; a replayed request
		// must not advance it again.
		return v, nil
	}

	if input.RentPrice != nil {
		if *input.RentPrice <= 0 {
			return nil, fmt.Errorf("%w: rent price must be positive", domain.ErrInvalidInput)
		}
		v.RentPrice = *input.RentPrice
	}
	v.AdditionalDays += int32(billing.DaysBetween(now, newEnd) + 1)
	v.EndDate = newEnd
	v.Status = domain.VehicleStatusActive

	if err := s.vehicleRepo.UpdatePeriod(ctx, v); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		VehicleNumber:   v.VehicleNumber,
		Type:            domain.EntryTypeRent,
		Amount:          v.RentPrice,
		TransactionDate: now,
		TransactionMode: input.TransactionMode,
		ReceivedBy:      input.ReceivedBy,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		logger.Error("Renewal applied but rent entry failed",
			"vehicle_id", v.ID, "error", err)
	}

	logger.Info("Monthly rental renewed",
		"vehicle_id", v.ID,
		"vehicle_number", v.VehicleNumber,
		"end_date", v.EndDate)
	return v, nil
}

// Edit applies a partial update of descriptive fields. EditInput cannot
// express period fields and the repository's detail update never writes
// them, so a stray start_date or end_date in a caller's payload is dropped
// before it reaches storage.
func (s *vehicleService) Edit(ctx context.Context, id string, input EditInput) (*domain.Vehicle, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VehicleNumber != nil {
		if strings.TrimSpace(*input.VehicleNumber) == "" {
			return nil, fmt.Errorf("%w: vehicle number cannot be blank", domain.ErrInvalidInput)
		}
		v.VehicleNumber = normalizeVehicleNumber(*input.VehicleNumber)
	}
	if input.OwnerName != nil {
		v.OwnerName = *input.OwnerName
	}
	if input.ContactNumber != nil {
		v.ContactNumber = *input.ContactNumber
	}
	if input.ParkingType != nil {
		if *input.ParkingType != domain.ParkingTypePrivate && *input.ParkingType != domain.ParkingTypeOpen {
			return nil, fmt.Errorf("%w: unknown parking type %q", domain.ErrInvalidInput, *input.ParkingType)
		}
		v.ParkingType = *input.ParkingType
	}
	if input.LotNumber != nil {
		v.LotNumber = *input.LotNumber
	}
	if input.RentPrice != nil {
		if *input.RentPrice <= 0 {
			return nil, fmt.Errorf("%w: rent price must be positive", domain.ErrInvalidInput)
		}
		v.RentPrice = *input.RentPrice
	}
	if input.AdvanceAmount != nil {
		v.AdvanceAmount = *input.AdvanceAmount
	}

	if err := s.vehicleRepo.UpdateDetails(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vehicleService) Remove(ctx context.Context, id string) error {
	err := s.vehicleRepo.Delete(ctx, id)
	if err == nil {
		logger.Info("Vehicle removed", "vehicle_id", id)
	}
	return err
}

func (s *vehicleService) Outstanding(ctx context.Context, id string) (*billing.Outstanding, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := billing.ComputeOutstanding(v, s.now())
	return &out, nil
}

func (s *vehicleService) OccupiedLots(ctx context.Context) ([]string, error) {
	return s.vehicleRepo.ListOccupiedLots(ctx)
}

func (s *vehicleService) SweepExpireStatuses(ctx context.Context, now time.Time) (int64, error) {
	return s.vehicleRepo.ExpireLapsed(ctx, now)
}

func normalizeVehicleNumber(n string) string {
	return strings.ToUpper(strings.TrimSpace(n))
}
