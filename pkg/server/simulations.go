package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/tables"
	"github.com/raterudder/solarcheck/pkg/types"
)

const (
	defaultListRange = 7 * 24 * time.Hour
	maxListRange     = 366 * 24 * time.Hour
	maxRequestBytes  = 1 << 20
)

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	var req types.SimulationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to decode simulation request", slog.Any("error", err))
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sim, err := s.simulator.Run(ctx, req)
	if err != nil {
		writeSimulationError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/simulations/"+sim.ID)
	writeJSON(w, http.StatusCreated, sim)
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	sim, err := s.storage.GetSimulation(ctx, id)
	if err != nil {
		writeSimulationError(w, r, err)
		return
	}
	// simulations are immutable
	w.Header().Set("Cache-Control", "private, max-age=86400")
	writeJSON(w, http.StatusOK, sim)
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, err := parseTimeRange(r, time.Now())
	if err != nil {
		writeJSONError(w, "invalid time range: "+err.Error(), http.StatusBadRequest)
		return
	}

	sims, err := s.storage.ListSimulations(ctx, start, end)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list simulations", slog.Time("start", start), slog.Time("end", end), slog.Any("error", err))
		writeJSONError(w, "failed to list simulations", http.StatusInternalServerError)
		return
	}
	if sims == nil {
		sims = []types.Simulation{}
	}
	writeJSON(w, http.StatusOK, sims)
}

type optionsResponse struct {
	BuildingCategories []types.BuildingCategory `json:"buildingCategories"`
	ClimateZones       []types.ClimateZone      `json:"climateZones"`
	OperatingHours     []types.OperatingHours   `json:"operatingHours"`
	Tariffs            []types.Tariff           `json:"tariffs"`
	Economics          types.EconomicParameters `json:"economics"`
}

func (s *Server) handleListOptions(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{
		BuildingCategories: tables.Categories(),
		ClimateZones:       tables.Zones(),
		OperatingHours:     tables.OperatingHoursProfiles(),
		Economics:          s.defaults.Parameters(),
	}
	for _, segment := range tables.Segments() {
		tariff, err := tables.Tariff(segment)
		if err != nil {
			writeSimulationError(w, r, err)
			return
		}
		resp.Tariffs = append(resp.Tariffs, tariff)
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeSimulationError maps the error kinds onto status codes.
func writeSimulationError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, types.ErrValidation):
		log.Ctx(ctx).InfoContext(ctx, "rejected simulation request", slog.Any("error", err))
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, types.ErrConfiguration), errors.Is(err, types.ErrNoViableSizing):
		log.Ctx(ctx).WarnContext(ctx, "simulation could not be sized", slog.Any("error", err))
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, types.ErrSimulationNotFound):
		writeJSONError(w, "simulation not found", http.StatusNotFound)
	default:
		log.Ctx(ctx).ErrorContext(ctx, "simulation failed", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// parseTimeRange reads start and end as RFC3339, defaulting to the week
// before now.
func parseTimeRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" && endStr == "" {
		return now.Add(-defaultListRange), now, nil
	}
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("both start and end are required")
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("start time must be before end time")
	}

	if end.Sub(start) > maxListRange {
		return time.Time{}, time.Time{}, fmt.Errorf("time range cannot exceed 366 days")
	}

	return start, end, nil
}
