package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"parkslot-backend/internal/config"
	"parkslot-backend/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Billing: config.BillingConfig{
			DefaultAdvanceAmount: 5000,
			Staff:                []string{"Ramesh", "Suresh"},
		},
	}
}

func newTestVehicleService(vehicleRepo *MockVehicleRepo, ledgerRepo *MockLedgerRepo, now time.Time) *vehicleService {
	svc := NewVehicleService(vehicleRepo, ledgerRepo, testConfig()).(*vehicleService)
	svc.now = func() time.Time { return now }
	return svc
}

func localDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func localEndOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 999_000_000, time.Local)
}

func TestVehicleService_Intake(t *testing.T) {
	ctx := context.Background()

	t.Run("Monthly intake with default advance", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.June, 15))

		vehicleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil)

		v, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber:   "ka01ab1234",
			OwnerName:       "Farhan",
			ContactNumber:   "9900112233",
			ParkingType:     domain.ParkingTypePrivate,
			RentalType:      domain.RentalTypeMonthly,
			LotNumber:       "A12",
			RentPrice:       3000,
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, "KA01AB1234", v.VehicleNumber, "vehicle number is case-normalized")
		assert.Equal(t, domain.VehicleStatusActive, v.Status)
		assert.Equal(t, int64(5000), v.AdvanceAmount)
		assert.Equal(t, localEndOfDay(2024, time.June, 30), v.EndDate)

		entry := ledgerRepo.Calls[0].Arguments.Get(1).(*domain.LedgerEntry)
		assert.Equal(t, domain.EntryTypeDeposit, entry.Type)
		assert.Equal(t, int64(5000), entry.Amount)
		assert.Equal(t, "KA01AB1234", entry.VehicleNumber)
	})

	t.Run("Daily intake has no deposit", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.June, 15))

		vehicleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)

		v, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber: "KA05XY9",
			OwnerName:     "Meera",
			ContactNumber: "9900112244",
			ParkingType:   domain.ParkingTypeOpen,
			RentalType:    domain.RentalTypeDaily,
			RentPrice:     100,
			NumberOfDays:  10,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), v.AdvanceAmount)
		assert.Equal(t, localEndOfDay(2024, time.June, 24), v.EndDate, "start day counts as day 1")
		ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Daily intake without day count rejected", func(t *testing.T) {
		svc := newTestVehicleService(new(MockVehicleRepo), new(MockLedgerRepo), localDate(2024, time.June, 15))

		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber: "KA05XY9",
			OwnerName:     "Meera",
			ContactNumber: "9900112244",
			ParkingType:   domain.ParkingTypeOpen,
			RentalType:    domain.RentalTypeDaily,
			RentPrice:     100,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Missing required fields rejected before any write", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.June, 15))

		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber: "KA05XY9",
			RentalType:    domain.RentalTypeMonthly,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown transaction mode rejected before any write", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.June, 15))

		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber:   "KA01AB1234",
			OwnerName:       "Farhan",
			ContactNumber:   "9900112233",
			ParkingType:     domain.ParkingTypePrivate,
			RentalType:      domain.RentalTypeMonthly,
			RentPrice:       3000,
			TransactionMode: "Cheque",
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Paid advance without a mode rejected", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.June, 15))

		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber: "KA01AB1234",
			OwnerName:     "Farhan",
			ContactNumber: "9900112233",
			ParkingType:   domain.ParkingTypePrivate,
			RentalType:    domain.RentalTypeMonthly,
			RentPrice:     3000,
			ReceivedBy:    "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Negative advance rejected", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.June, 15))

		negative := int64(-100)
		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber:   "KA01AB1234",
			OwnerName:       "Farhan",
			ContactNumber:   "9900112233",
			ParkingType:     domain.ParkingTypePrivate,
			RentalType:      domain.RentalTypeMonthly,
			RentPrice:       3000,
			AdvanceAmount:   &negative,
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed deposit entry reports the committed vehicle", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.June, 15))

		vehicleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(assert.AnError)

		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber:   "KA01AB1234",
			OwnerName:       "Farhan",
			ContactNumber:   "9900112233",
			ParkingType:     domain.ParkingTypePrivate,
			RentalType:      domain.RentalTypeMonthly,
			RentPrice:       3000,
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorContains(t, err, "record the deposit separately")
		vehicleRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*domain.Vehicle"))
	})

	t.Run("Unknown receiver rejected", func(t *testing.T) {
		svc := newTestVehicleService(new(MockVehicleRepo), new(MockLedgerRepo), localDate(2024, time.June, 15))

		_, err := svc.Intake(ctx, IntakeInput{
			VehicleNumber: "KA05XY9",
			OwnerName:     "Meera",
			ContactNumber: "9900112244",
			ParkingType:   domain.ParkingTypePrivate,
			RentalType:    domain.RentalTypeMonthly,
			RentPrice:     3000,
			ReceivedBy:    "Stranger",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestVehicleService_Reactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("Date jumps to end of next month", func(t *testing.T) {
		// Lapsed since Jan 31; paying on Feb 15 covers through end of March.
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		now := localDate(2024, time.February, 15)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, now)

		v := &domain.Vehicle{
			ID:            "veh-1",
			VehicleNumber: "KA01AB1234",
			RentalType:    domain.RentalTypeMonthly,
			RentPrice:     3000,
			EndDate:       localEndOfDay(2024, time.January, 31),
			Status:        domain.VehicleStatusInactive,
			Version:       3,
		}
		vehicleRepo.On("GetByID", ctx, "veh-1").Return(v, nil)
		vehicleRepo.On("UpdatePeriod", ctx, v).Return(nil)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil)

		updated, err := svc.Reactivate(ctx, "veh-1", RenewalInput{
			TransactionMode: domain.TransactionModeUPI,
			ReceivedBy:      "Ramesh",
		})
		assert.NoError(t, err)
		assert.Equal(t, localEndOfDay(2024, time.March, 31), updated.EndDate)
		assert.Equal(t, domain.VehicleStatusActive, updated.Status)

		entry := ledgerRepo.Calls[0].Arguments.Get(1).(*domain.LedgerEntry)
		assert.Equal(t, domain.EntryTypeRent, entry.Type)
		assert.Equal(t, int64(3000), entry.Amount)
	})

	t.Run("Replay is a no-op", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		now := localDate(2024, time.February, 15)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, now)

		// Already renewed through end of March; a retried request must not
		// advance the period again.
		v := &domain.Vehicle{
			ID:         "veh-1",
			RentalType: domain.RentalTypeMonthly,
			RentPrice:  3000,
			EndDate:    localEndOfDay(2024, time.March, 31),
			Status:     domain.VehicleStatusActive,
		}
		vehicleRepo.On("GetByID", ctx, "veh-1").Return(v, nil)

		updated, err := svc.Reactivate(ctx, "veh-1", RenewalInput{
			TransactionMode: domain.TransactionModeUPI,
			ReceivedBy:      "Ramesh",
		})
		assert.NoError(t, err)
		assert.Equal(t, localEndOfDay(2024, time.March, 31), updated.EndDate)
		vehicleRepo.AssertNotCalled(t, "UpdatePeriod", mock.Anything, mock.Anything)
		ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Rent price override applies to this cycle", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.February, 15))

		v := &domain.Vehicle{
			ID:         "veh-1",
			RentalType: domain.RentalTypeMonthly,
			RentPrice:  3000,
			EndDate:    localEndOfDay(2024, time.January, 31),
			Status:     domain.VehicleStatusInactive,
		}
		vehicleRepo.On("GetByID", ctx, "veh-1").Return(v, nil)
		vehicleRepo.On("UpdatePeriod", ctx, v).Return(nil)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil)

		newPrice := int64(3500)
		updated, err := svc.Reactivate(ctx, "veh-1", RenewalInput{
			RentPrice:       &newPrice,
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Suresh",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(3500), updated.RentPrice)
	})

	t.Run("Daily rentals cannot reactivate", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.February, 15))

		v := &domain.Vehicle{ID: "veh-2", RentalType: domain.RentalTypeDaily}
		vehicleRepo.On("GetByID", ctx, "veh-2").Return(v, nil)

		_, err := svc.Reactivate(ctx, "veh-2", RenewalInput{
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Missing vehicle surfaces not found", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.February, 15))

		vehicleRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		_, err := svc.Reactivate(ctx, "missing", RenewalInput{
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Version conflict passes through", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.February, 15))

		v := &domain.Vehicle{
			ID:         "veh-1",
			RentalType: domain.RentalTypeMonthly,
			RentPrice:  3000,
			EndDate:    localEndOfDay(2024, time.January, 31),
			Status:     domain.VehicleStatusInactive,
		}
		vehicleRepo.On("GetByID", ctx, "veh-1").Return(v, nil)
		vehicleRepo.On("UpdatePeriod", ctx, v).Return(domain.ErrConflict)

		_, err := svc.Reactivate(ctx, "veh-1", RenewalInput{
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
		ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestVehicleService_Extend(t *testing.T) {
	ctx := context.Background()

	t.Run("Daily extension while expired catches up", func(t *testing.T) {
		// End date was day 10, numberOfDays 10; extending by 5 on day 12
		// gives end day 15, numberOfDays 15, active again.
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.April, 12))

		v := &domain.Vehicle{
			ID:            "veh-3",
			VehicleNumber: "KA05XY9",
			RentalType:    domain.RentalTypeDaily,
			RentPrice:     100,
			NumberOfDays:  10,
			EndDate:       localEndOfDay(2024, time.April, 10),
			Status:        domain.VehicleStatusInactive,
		}
		vehicleRepo.On("GetByID", ctx, "veh-3").Return(v, nil)
		vehicleRepo.On("UpdatePeriod", ctx, v).Return(nil)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil)

		updated, err := svc.Extend(ctx, "veh-3", 5, RenewalInput{
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.NoError(t, err)
		assert.Equal(t, localEndOfDay(2024, time.April, 15), updated.EndDate)
		assert.Equal(t, int32(15), updated.NumberOfDays)
		assert.Equal(t, int32(5), updated.AdditionalDays)
		assert.Equal(t, domain.VehicleStatusActive, updated.Status)

		entry := ledgerRepo.Calls[0].Arguments.Get(1).(*domain.LedgerEntry)
		assert.Equal(t, int64(500), entry.Amount)
	})

	t.Run("Non-positive additional days rejected", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.April, 12))

		v := &domain.Vehicle{ID: "veh-3", RentalType: domain.RentalTypeDaily, EndDate: localEndOfDay(2024, time.April, 10)}
		vehicleRepo.On("GetByID", ctx, "veh-3").Return(v, nil)

		_, err := svc.Extend(ctx, "veh-3", 0, RenewalInput{
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		vehicleRepo.AssertNotCalled(t, "UpdatePeriod", mock.Anything, mock.Anything)
	})

	t.Run("Zero end date fails loudly", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.April, 12))

		v := &domain.Vehicle{ID: "veh-4", RentalType: domain.RentalTypeDaily}
		vehicleRepo.On("GetByID", ctx, "veh-4").Return(v, nil)

		_, err := svc.Extend(ctx, "veh-4", 5, RenewalInput{
			TransactionMode: domain.TransactionModeCash,
			ReceivedBy:      "Ramesh",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Monthly extension follows the reactivation rule", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newTestVehicleService(vehicleRepo, ledgerRepo, localDate(2024, time.February, 15))

		v := &domain.Vehicle{
			ID:         "veh-5",
			RentalType: domain.RentalTypeMonthly,
			RentPrice:  3000,
			EndDate:    localEndOfDay(2024, time.February, 29),
			Status:     domain.VehicleStatusActive,
		}
		vehicleRepo.On("GetByID", ctx, "veh-5").Return(v, nil)
		vehicleRepo.On("UpdatePeriod", ctx, v).Return(nil)
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil)

		updated, err := svc.Extend(ctx, "veh-5", 0, RenewalInput{
			TransactionMode: domain.TransactionModeUPI,
			ReceivedBy:      "Suresh",
		})
		assert.NoError(t, err)
		assert.Equal(t, localEndOfDay(2024, time.March, 31), updated.EndDate)
	})
}

func TestVehicleService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("Edits never touch the period", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.June, 15))

		startDate := localDate(2024, time.June, 1)
		endDate := localEndOfDay(2024, time.June, 30)
		v := &domain.Vehicle{
			ID:            "veh-1",
			VehicleNumber: "KA01AB1234",
			OwnerName:     "Farhan",
			RentalType:    domain.RentalTypeMonthly,
			RentPrice:     3000,
			StartDate:     startDate,
			EndDate:       endDate,
			Status:        domain.VehicleStatusActive,
		}
		vehicleRepo.On("GetByID", ctx, "veh-1").Return(v, nil)
		vehicleRepo.On("UpdateDetails", ctx, v).Return(nil)

		owner := "Farhan Ali"
		price := int64(3200)
		updated, err := svc.Edit(ctx, "veh-1", EditInput{OwnerName: &owner, RentPrice: &price})
		assert.NoError(t, err)
		assert.Equal(t, "Farhan Ali", updated.OwnerName)
		assert.Equal(t, int64(3200), updated.RentPrice)
		assert.Equal(t, startDate, updated.StartDate)
		assert.Equal(t, endDate, updated.EndDate)
		vehicleRepo.AssertNotCalled(t, "UpdatePeriod", mock.Anything, mock.Anything)
	})

	t.Run("Blank vehicle number rejected", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.June, 15))

		v := &domain.Vehicle{ID: "veh-1", VehicleNumber: "KA01AB1234"}
		vehicleRepo.On("GetByID", ctx, "veh-1").Return(v, nil)

		blank := "  "
		_, err := svc.Edit(ctx, "veh-1", EditInput{VehicleNumber: &blank})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestVehicleService_SweepExpireStatuses(t *testing.T) {
	ctx := context.Background()
	vehicleRepo := new(MockVehicleRepo)
	svc := newTestVehicleService(vehicleRepo, new(MockLedgerRepo), localDate(2024, time.June, 15))

	now := localDate(2024, time.June, 15)
	vehicleRepo.On("ExpireLapsed", ctx, now).Return(int64(3), nil)

	count, err := svc.SweepExpireStatuses(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
