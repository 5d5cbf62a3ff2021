package handler

import (
	"errors"
	"net/http"

	registrydomain "evac-app-go/internal/domain/registry"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) RecalculateOccupancy(w http.ResponseWriter, r *http.Request) {
	centerID := chi.URLParam(r, "id")

	count, err := h.Occupancy.Recalculate(r.Context(), centerID)
	if err != nil {
		if errors.Is(err, registrydomain.ErrCenterNotFound) {
			h.log.BusinessError("occupancy.recalculate: center not found", err, "center_id", centerID)
			writeError(w, http.StatusNotFound, "center_not_found", "center not found")
			return
		}
		h.log.InternalError("occupancy.recalculate: failed", err, "center_id", centerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"center_id": centerID, "count": count})
}

func (h *Handlers) RecalculateAllOccupancies(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Occupancy.RecalculateAll(r.Context())
	if err != nil {
		h.log.InternalError("occupancy.recalculate_all: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"centers": counts})
}
