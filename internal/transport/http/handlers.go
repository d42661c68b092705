package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/internal/service"
)

type UnitHandler struct {
	arena  service.ArenaService
	logger hclog.Logger
}

func NewUnitHandler(arena service.ArenaService, log hclog.Logger) *UnitHandler {
	return &UnitHandler{
		arena:  arena,
		logger: log,
	}
}

// ListUnits handles GET /units
//
// swagger:route GET /units units listUnits
//
// Returns every unit in the arena.
//
// Responses:
//
//	200: unitsResponse
//	500: errorResponse
func (h *UnitHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.arena.List(r.Context())
	if err != nil {
		h.logger.Error("Error listing units", "error", err)
		writeError(w, http.StatusInternalServerError, "Error listing units")
		return
	}

	writeJSON(w, http.StatusOK, units)
}

// GetUnit handles GET /units/{id}
//
// swagger:route GET /units/{id} units getUnit
//
// Returns a unit by ID.
//
// Responses:
//
//	200: unitResponse
//	400: errorResponse
//	404: errorResponse
func (h *UnitHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	unit, err := h.arena.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, "Error getting unit", err)
		return
	}

	writeJSON(w, http.StatusOK, unit)
}

// SpawnUnit handles POST /units
//
// swagger:route POST /units units spawnUnit
//
// Spawns a new unit at the start line.
//
// Responses:
//
//	201: unitResponse
//	400: errorResponse
//	422: validationErrorResponse
//	500: errorResponse
func (h *UnitHandler) SpawnUnit(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ContextKeySpawn).(*domain.SpawnRequest)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid unit data")
		return
	}

	unit, err := h.arena.Spawn(r.Context(), *req)
	if err != nil {
		h.serviceError(w, "Error spawning unit", err)
		return
	}

	w.Header().Set("Location", "/units/"+strconv.Itoa(unit.ID))
	writeJSON(w, http.StatusCreated, unit)
}

// RemoveUnit handles DELETE /units/{id}
//
// swagger:route DELETE /units/{id} units removeUnit
//
// Removes a unit from the arena. Watchers are disconnected.
//
// Responses:
//
//	204: noContentResponse
//	404: errorResponse
//	500: errorResponse
func (h *UnitHandler) RemoveUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	if err := h.arena.Remove(r.Context(), id); err != nil {
		h.serviceError(w, "Error removing unit", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// WalkUnit handles POST /units/{id}/walk
//
// swagger:route POST /units/{id}/walk units walkUnit
//
// Walks a unit forward. Walking stops early when the game is over.
//
// Responses:
//
//	200: unitResponse
//	404: errorResponse
//	409: errorResponse
//	422: validationErrorResponse
//	500: errorResponse
func (h *UnitHandler) WalkUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	req, ok := r.Context().Value(ContextKeyWalk).(*domain.WalkRequest)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid walk data")
		return
	}

	unit, err := h.arena.Walk(r.Context(), id, req.Steps)
	if err != nil {
		h.serviceError(w, "Error walking unit", err)
		return
	}

	writeJSON(w, http.StatusOK, unit)
}

// GetReplay handles GET /units/{id}/replay
//
// swagger:route GET /units/{id}/replay units getReplay
//
// Returns the replay recorded when the unit's game ended. The response is
// gzip compressed when the client accepts it.
//
// Responses:
//
//	200: replayResponse
//	404: errorResponse
//	500: errorResponse
func (h *UnitHandler) GetReplay(w http.ResponseWriter, r *http.Request) {
	id, ok := unitID(w, r)
	if !ok {
		return
	}

	f, err := h.arena.Replay(r.Context(), id)
	if err != nil {
		h.serviceError(w, "Error reading replay", err)
		return
	}
	defer f.Close()

	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Error("Error writing replay", "unit_id", id, "error", err)
	}
}

func (h *UnitHandler) serviceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnitNotFound):
		writeError(w, http.StatusNotFound, "Unit not found")
	case errors.Is(err, domain.ErrReplayNotFound):
		writeError(w, http.StatusNotFound, "Replay not found")
	case errors.Is(err, domain.ErrGameOver):
		writeError(w, http.StatusConflict, "Unit game is over")
	case errors.Is(err, domain.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func unitID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid unit ID")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Message: msg})
}
