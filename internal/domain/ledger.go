package domain

import "time"

type EntryType string

const (
	EntryTypeDeposit EntryType = "DEPOSIT"
	EntryTypeRefund  EntryType = "REFUND"
	EntryTypeRent    EntryType = "RENT"
)

type TransactionMode string

const (
	TransactionModeCash TransactionMode = "Cash"
	TransactionModeUPI  TransactionMode = "UPI"
)

// LedgerEntry is one row of the append-only money trail. Entries are never
// edited or deleted; a correction appends a new entry. DEPOSIT and REFUND
// rows feed advance accounting, RENT rows record renewal payments for audit.
type LedgerEntry struct {
	ID              int64           `json:"id"`
	VehicleNumber   string          `json:"vehicle_number"`
	Type            EntryType       `json:"type"`
	Amount          int64           `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	RefundDate      *time.Time      `json:"refund_date,omitempty"`
	TransactionMode TransactionMode `json:"transaction_mode,omitempty"`
	ReceivedBy      string          `json:"received_by,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
}

// AdvanceTotals reports the deposit position for a calendar month.
// MonthlyNet is windowed to that month; TotalToDate is the running net
// through the end of it.
type AdvanceTotals struct {
	MonthlyNet  int64 `json:"monthly_net"`
	TotalToDate int64 `json:"total_to_date"`
}

// VehicleSummary is the read-only projection of a removed vehicle,
// reconstructed from its ledger trail. It is never stored.
type VehicleSummary struct {
	VehicleNumber string     `json:"vehicle_number"`
	FirstSeen     time.Time  `json:"first_seen"`
	LastActivity  time.Time  `json:"last_activity"`
	TotalDeposits int64      `json:"total_deposits"`
	TotalRefunds  int64      `json:"total_refunds"`
	TotalRent     int64      `json:"total_rent"`
	NetAdvance    int64      `json:"net_advance"`
	RefundedOn    *time.Time `json:"refunded_on,omitempty"`
	EntryCount    int32      `json:"entry_count"`
}
