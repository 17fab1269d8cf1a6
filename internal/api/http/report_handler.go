package http

import (
	"net/http"

	"parkslot-backend/internal/service"
)

// ReportHandler serves the dashboard aggregate
type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Dashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
