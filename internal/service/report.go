package service

import (
	"context"
	"time"

	"parkslot-backend/internal/billing"
	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/repository"
)

// reportService is a read-only composition over the vehicle and ledger
// repositories. It holds no state and mutates nothing.
type reportService struct {
	vehicleRepo repository.VehicleRepository
	ledgerRepo  repository.LedgerRepository
	now         func() time.Time
}

func NewReportService(vehicleRepo repository.VehicleRepository, ledgerRepo repository.LedgerRepository) ReportService {
	return &reportService{
		vehicleRepo: vehicleRepo,
		ledgerRepo:  ledgerRepo,
		now:         time.Now,
	}
}

func (s *reportService) Dashboard(ctx context.Context) (*domain.DashboardReport, error) {
	report := &domain.DashboardReport{}
	now := s.now()

	active, inactive, err := s.vehicleRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	report.ActiveVehicles = active
	report.InactiveVehicles = inactive

	monthly, daily, err := s.vehicleRepo.CountByRentalType(ctx)
	if err != nil {
		return nil, err
	}
	report.MonthlyVehicles = monthly
	report.DailyVehicles = daily

	actives, err := s.vehicleRepo.List(ctx, domain.VehicleFilter{Status: domain.VehicleStatusActive})
	if err != nil {
		return nil, err
	}
	for _, v := range actives {
		switch v.RentalType {
		case domain.RentalTypeMonthly:
			report.ExpectedMonthlyRent += v.RentPrice
		case domain.RentalTypeDaily:
			report.ExpectedMonthlyRent += v.RentPrice * int64(v.NumberOfDays)
		}
	}

	lapsed, err := s.vehicleRepo.List(ctx, domain.VehicleFilter{Status: domain.VehicleStatusInactive})
	if err != nil {
		return nil, err
	}
	for i := range lapsed {
		out := billing.ComputeOutstanding(&lapsed[i], now)
		if out.DaysOverdue == 0 {
			continue
		}
		switch lapsed[i].RentalType {
		case domain.RentalTypeMonthly:
			report.OutstandingMonthly.VehicleCount++
			report.OutstandingMonthly.TotalDue += out.DueAmount
		case domain.RentalTypeDaily:
			report.OutstandingDaily.VehicleCount++
			report.OutstandingDaily.TotalDue += out.DueAmount
		}
	}

	monthlyNet, err := s.ledgerRepo.MonthlyNet(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}
	report.AdvanceMonthlyNet = monthlyNet

	totalToDate, err := s.ledgerRepo.TotalNet(ctx, now)
	if err != nil {
		return nil, err
	}
	report.AdvanceTotalToDate = totalToDate

	return report, nil
}
