package service

import (
	"context"
	"fmt"
	"time"

	"parkslot-backend/internal/config"
	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/logger"
	"parkslot-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	cfg        *config.Config
	now        func() time.Time
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, cfg *config.Config) LedgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		cfg:        cfg,
		now:        time.Now,
	}
}

// RecordAdvance appends a deposit entry. Paying an advance on a vehicle that
// had none is this operation, never an edit of the vehicle record, so the
// who/when/how-received trail is preserved.
func (s *ledgerService) RecordAdvance(ctx context.Context, vehicleNumber string, amount int64, mode domain.TransactionMode, receivedBy string) (*domain.LedgerEntry, error) {
	if vehicleNumber == "" {
		return nil, fmt.Errorf("%w: vehicle number is required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: advance amount must be positive, got %d", domain.ErrInvalidInput, amount)
	}
	if mode != domain.TransactionModeCash && mode != domain.TransactionModeUPI {
		return nil, fmt.Errorf("%w: unknown transaction mode %q", domain.ErrInvalidInput, mode)
	}
	if !s.cfg.IsStaff(receivedBy) {
		return nil, fmt.Errorf("%w: %q is not on the staff roster", domain.ErrInvalidInput, receivedBy)
	}

	entry := &domain.LedgerEntry{
		VehicleNumber:   normalizeVehicleNumber(vehicleNumber),
		Type:            domain.EntryTypeDeposit,
		Amount:          amount,
		TransactionDate: s.now(),
		TransactionMode: mode,
		ReceivedBy:      receivedBy,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("Advance recorded",
		"vehicle_number", entry.VehicleNumber,
		"amount", amount,
		"mode", mode,
		"received_by", receivedBy)
	return entry, nil
}

// RecordRefund appends a refund entry, typically at vacating. A zero
// refundDate means the refund happened now.
func (s *ledgerService) RecordRefund(ctx context.Context, vehicleNumber string, amount int64, refundDate time.Time) (*domain.LedgerEntry, error) {
	if vehicleNumber == "" {
		return nil, fmt.Errorf("%w: vehicle number is required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: refund amount must be positive, got %d", domain.ErrInvalidInput, amount)
	}
	if refundDate.IsZero() {
		refundDate = s.now()
	}

	entry := &domain.LedgerEntry{
		VehicleNumber:   normalizeVehicleNumber(vehicleNumber),
		Type:            domain.EntryTypeRefund,
		Amount:          amount,
		TransactionDate: refundDate,
		RefundDate:      &refundDate,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("Refund recorded",
		"vehicle_number", entry.VehicleNumber,
		"amount", amount,
		"refund_date", refundDate)
	return entry, nil
}

func (s *ledgerService) Entries(ctx context.Context, vehicleNumber string) ([]domain.LedgerEntry, error) {
	return s.ledgerRepo.ListByVehicleNumber(ctx, normalizeVehicleNumber(vehicleNumber))
}

// AdvanceTotals reports the month-windowed net next to the running total
// through that month's end. The two answer different questions: what moved
// this month versus what is held overall.
func (s *ledgerService) AdvanceTotals(ctx context.Context, year int, month time.Month) (*domain.AdvanceTotals, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", domain.ErrInvalidInput, month)
	}

	monthlyNet, err := s.ledgerRepo.MonthlyNet(ctx, year, month)
	if err != nil {
		return nil, err
	}

	endOfMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)
	totalToDate, err := s.ledgerRepo.TotalNet(ctx, endOfMonth)
	if err != nil {
		return nil, err
	}

	return &domain.AdvanceTotals{
		MonthlyNet:  monthlyNet,
		TotalToDate: totalToDate,
	}, nil
}

// ReconstructArchivedView rebuilds a removed vehicle's financial summary
// purely from its ledger trail. It is a projection, never a stored entity;
// while a live record exists that record is the source of truth.
func (s *ledgerService) ReconstructArchivedView(ctx context.Context, vehicleNumber string) (*domain.VehicleSummary, error) {
	vn := normalizeVehicleNumber(vehicleNumber)
	entries, err := s.ledgerRepo.ListByVehicleNumber(ctx, vn)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no ledger history for vehicle %s: %w", vn, domain.ErrNotFound)
	}

	summary := &domain.VehicleSummary{
		VehicleNumber: vn,
		FirstSeen:     entries[0].TransactionDate,
		EntryCount:    int32(len(entries)),
	}
	for _, e := range entries {
		if e.TransactionDate.Before(summary.FirstSeen) {
			summary.FirstSeen = e.TransactionDate
		}
		if e.TransactionDate.After(summary.LastActivity) {
			summary.LastActivity = e.TransactionDate
		}
		switch e.Type {
		case domain.EntryTypeDeposit:
			summary.TotalDeposits += e.Amount
		case domain.EntryTypeRefund:
			summary.TotalRefunds += e.Amount
			summary.RefundedOn = e.RefundDate
		case domain.EntryTypeRent:
			summary.TotalRent += e.Amount
		}
	}
	summary.NetAdvance = summary.TotalDeposits - summary.TotalRefunds
	return summary, nil
}
