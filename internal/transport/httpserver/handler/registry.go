package handler

import (
	"errors"
	"net/http"

	registrydomain "evac-app-go/internal/domain/registry"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.Registry.ListCenters(r.Context())
	if err != nil {
		h.log.InternalError("registry.list_centers: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"centers": centers})
}

func (h *Handlers) GetCenter(w http.ResponseWriter, r *http.Request) {
	centerID := chi.URLParam(r, "id")

	center, err := h.Registry.GetCenter(r.Context(), centerID)
	if err != nil {
		if errors.Is(err, registrydomain.ErrCenterNotFound) {
			h.log.BusinessError("registry.get_center: center not found", err, "center_id", centerID)
			writeError(w, http.StatusNotFound, "center_not_found", "center not found")
			return
		}
		h.log.InternalError("registry.get_center: failed", err, "center_id", centerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, center)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
