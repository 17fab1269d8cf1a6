package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/service"
)

// LedgerHandler serves the advance ledger endpoints
type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type recordAdvanceRequest struct {
	VehicleNumber   string                 `json:"vehicle_number"`
	Amount          int64                  `json:"amount"`
	TransactionMode domain.TransactionMode `json:"transaction_mode"`
	ReceivedBy      string                 `json:"received_by"`
}

func (h *LedgerHandler) HandleRecordAdvance(w http.ResponseWriter, r *http.Request) {
	var req recordAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	entry, err := h.ledger.RecordAdvance(r.Context(), req.VehicleNumber, req.Amount, req.TransactionMode, req.ReceivedBy)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

type recordRefundRequest struct {
	VehicleNumber string     `json:"vehicle_number"`
	Amount        int64      `json:"amount"`
	RefundDate    *time.Time `json:"refund_date,omitempty"`
}

func (h *LedgerHandler) HandleRecordRefund(w http.ResponseWriter, r *http.Request) {
	var req recordRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	refundDate := time.Time{}
	if req.RefundDate != nil {
		refundDate = *req.RefundDate
	}

	entry, err := h.ledger.RecordRefund(r.Context(), req.VehicleNumber, req.Amount, refundDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) HandleAdvanceTotals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: year query parameter is required", domain.ErrInvalidInput))
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: month query parameter is required", domain.ErrInvalidInput))
		return
	}

	totals, err := h.ledger.AdvanceTotals(r.Context(), year, time.Month(month))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

func (h *LedgerHandler) HandleArchivedView(w http.ResponseWriter, r *http.Request) {
	vehicleNumber := mux.Vars(r)["vehicleNumber"]
	summary, err := h.ledger.ReconstructArchivedView(r.Context(), vehicleNumber)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *LedgerHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	vehicleNumber := mux.Vars(r)["vehicleNumber"]
	entries, err := h.ledger.Entries(r.Context(), vehicleNumber)
	if err != nil {
		respondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}
