package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/logger"
	"parkslot-backend/internal/service"
)

// NewRouter wires every API endpoint onto a mux router.
func NewRouter(vehicleSvc service.VehicleService, ledgerSvc service.LedgerService, reportSvc service.ReportService) *mux.Router {
	router := mux.NewRouter()

	vh := NewVehicleHandler(vehicleSvc)
	lh := NewLedgerHandler(ledgerSvc)
	rh := NewReportHandler(reportSvc)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/vehicles", vh.HandleIntake).Methods("POST")
	api.HandleFunc("/vehicles", vh.HandleList).Methods("GET")
	api.HandleFunc("/vehicles/{id}", vh.HandleGet).Methods("GET")
	api.HandleFunc("/vehicles/{id}", vh.HandleEdit).Methods("PATCH")
	api.HandleFunc("/vehicles/{id}", vh.HandleRemove).Methods("DELETE")
	api.HandleFunc("/vehicles/{id}/reactivate", vh.HandleReactivate).Methods("POST")
	api.HandleFunc("/vehicles/{id}/extend", vh.HandleExtend).Methods("POST")
	api.HandleFunc("/vehicles/{id}/outstanding", vh.HandleOutstanding).Methods("GET")
	api.HandleFunc("/lots/occupied", vh.HandleOccupiedLots).Methods("GET")

	api.HandleFunc("/advances", lh.HandleRecordAdvance).Methods("POST")
	api.HandleFunc("/refunds", lh.HandleRecordRefund).Methods("POST")
	api.HandleFunc("/advances/totals", lh.HandleAdvanceTotals).Methods("GET")
	api.HandleFunc("/archive/{vehicleNumber}", lh.HandleArchivedView).Methods("GET")
	api.HandleFunc("/ledger/{vehicleNumber}", lh.HandleEntries).Methods("GET")

	api.HandleFunc("/reports/dashboard", rh.HandleDashboard).Methods("GET")

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps domain sentinel errors onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}
