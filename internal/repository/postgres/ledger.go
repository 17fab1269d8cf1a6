package postgres

import (
	"context"
	"database/sql"
	"time"

	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/repository"
)

// ledgerRepository is append-only: there is intentionally no UPDATE or
// DELETE statement against ledger_entries anywhere in this package.
type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (vehicle_number, type, amount, transaction_date, refund_date, transaction_mode, received_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	e.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query,
		e.VehicleNumber, e.Type, e.Amount, e.TransactionDate, e.RefundDate, e.TransactionMode, e.ReceivedBy, e.CreatedOn).
		Scan(&e.ID)
}

func (r *ledgerRepository) ListByVehicleNumber(ctx context.Context, vehicleNumber string) ([]domain.LedgerEntry, error) {
	query := `SELECT id, vehicle_number, type, amount, transaction_date, refund_date, COALESCE(transaction_mode, ''), COALESCE(received_by, ''), created_on
	          FROM ledger_entries WHERE vehicle_number = $1 ORDER BY created_on ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, vehicleNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.VehicleNumber, &e.Type, &e.Amount, &e.TransactionDate, &e.RefundDate, &e.TransactionMode, &e.ReceivedBy, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MonthlyNet windows deposits on transaction_date and refunds on refund_date,
// so a refund recorded against a deposit from an earlier month lands in the
// month the money actually went back out.
func (r *ledgerRepository) MonthlyNet(ctx context.Context, year int, month time.Month) (int64, error) {
	var net int64
	query := `SELECT
	            COALESCE(SUM(CASE WHEN type = 'DEPOSIT'
	                              AND EXTRACT(YEAR FROM transaction_date) = $1
	                              AND EXTRACT(MONTH FROM transaction_date) = $2
	                              THEN amount ELSE 0 END), 0)
	          - COALESCE(SUM(CASE WHEN type = 'REFUND'
	                              AND EXTRACT(YEAR FROM refund_date) = $1
	                              AND EXTRACT(MONTH FROM refund_date) = $2
	                              THEN amount ELSE 0 END), 0)
	          FROM ledger_entries`
	err := r.db.QueryRowContext(ctx, query, year, int(month)).Scan(&net)
	return net, err
}

func (r *ledgerRepository) TotalNet(ctx context.Context, asOf time.Time) (int64, error) {
	var net int64
	query := `SELECT
	            COALESCE(SUM(CASE WHEN type = 'DEPOSIT' AND transaction_date <= $1 THEN amount ELSE 0 END), 0)
	          - COALESCE(SUM(CASE WHEN type = 'REFUND' AND refund_date <= $1 THEN amount ELSE 0 END), 0)
	          FROM ledger_entries`
	err := r.db.QueryRowContext(ctx, query, asOf).Scan(&net)
	return net, err
}
