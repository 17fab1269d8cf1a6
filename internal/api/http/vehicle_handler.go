package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/service"
)

// VehicleHandler serves the rental lifecycle endpoints
type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

func (h *VehicleHandler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	var input service.IntakeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	v, err := h.vehicles.Intake(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.VehicleFilter{
		Status:      domain.VehicleStatus(q.Get("status")),
		RentalType:  domain.RentalType(q.Get("rentalType")),
		ParkingType: domain.ParkingType(q.Get("parkingType")),
		Search:      q.Get("q"),
	}

	vehicles, err := h.vehicles.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	v, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// HandleEdit accepts a partial field set. EditInput has no period fields, so
// startDate/endDate keys in the payload are discarded during decoding and the
// stored period survives any edit untouched.
func (h *VehicleHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input service.EditInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	v, err := h.vehicles.Edit(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.vehicles.Remove(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *VehicleHandler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input service.RenewalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	v, err := h.vehicles.Reactivate(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

type extendRequest struct {
	AdditionalDays int32 `json:"additional_days"`
	service.RenewalInput
}

func (h *VehicleHandler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req extendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	v, err := h.vehicles.Extend(r.Context(), id, req.AdditionalDays, req.RenewalInput)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) HandleOutstanding(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	out, err := h.vehicles.Outstanding(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *VehicleHandler) HandleOccupiedLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.vehicles.OccupiedLots(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if lots == nil {
		lots = []string{}
	}
	respondJSON(w, http.StatusOK, lots)
}
