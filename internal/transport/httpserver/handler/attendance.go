package handler

import (
	"net/http"
	"strings"

	attendancedomain "evac-app-go/internal/domain/attendance"
	"evac-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type checkInRequest struct {
	IndividualID string `json:"individual_id"`
	CenterID     string `json:"center_id"`
	Notes        string `json:"notes,omitempty"`
}

type checkInBatchRequest struct {
	Items []checkInRequest `json:"items"`
}

type checkOutRequest struct {
	RecordID string `json:"record_id"`
	Notes    string `json:"notes,omitempty"`
}

type checkOutBatchRequest struct {
	Items []checkOutRequest `json:"items"`
}

type transferRequest struct {
	RecordID            string `json:"record_id"`
	DestinationCenterID string `json:"destination_center_id"`
	Notes               string `json:"notes,omitempty"`
	CopyNotes           bool   `json:"copy_notes,omitempty"`
}

type transferBatchRequest struct {
	Items []transferRequest `json:"items"`
}

func (h *Handlers) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req checkInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.IndividualID = strings.TrimSpace(req.IndividualID)
	req.CenterID = strings.TrimSpace(req.CenterID)
	if req.IndividualID == "" || req.CenterID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "individual_id and center_id are required")
		return
	}
	if actor.Role != middleware.RoleCoordinator && actor.CenterID != req.CenterID {
		writeError(w, http.StatusForbidden, "forbidden", "staff may only check in at their assigned center")
		return
	}

	record, err := h.Attendance.CheckIn(r.Context(), attendancedomain.CheckInInput{
		IndividualID: req.IndividualID,
		CenterID:     req.CenterID,
		Notes:        req.Notes,
		RecordedBy:   actor.ID,
	})
	if err != nil {
		h.logDomainError("attendance.check_in", err, "individual_id", req.IndividualID, "center_id", req.CenterID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) CheckInBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req checkInBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}

	items := make([]attendancedomain.CheckInInput, 0, len(req.Items))
	for _, item := range req.Items {
		individualID := strings.TrimSpace(item.IndividualID)
		centerID := strings.TrimSpace(item.CenterID)
		if individualID == "" || centerID == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "every item requires individual_id and center_id")
			return
		}
		items = append(items, attendancedomain.CheckInInput{
			IndividualID: individualID,
			CenterID:     centerID,
			Notes:        item.Notes,
			RecordedBy:   actor.ID,
		})
	}

	// All-or-nothing: the first invalid item fails the whole batch and nothing
	// is created.
	records, err := h.Attendance.CheckInBatch(r.Context(), items)
	if err != nil {
		h.logDomainError("attendance.check_in_batch", err, "items", len(items))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"records": records})
}

func (h *Handlers) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req checkOutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.RecordID = strings.TrimSpace(req.RecordID)
	if req.RecordID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "record_id is required")
		return
	}

	input := attendancedomain.CheckOutInput{
		RecordID:   req.RecordID,
		Notes:      req.Notes,
		RecordedBy: actor.ID,
	}
	// Staff act only on records at their assigned center.
	if actor.Role != middleware.RoleCoordinator {
		if actor.CenterID == "" {
			writeError(w, http.StatusForbidden, "forbidden", "staff actor has no assigned center")
			return
		}
		input.ActingCenterID = actor.CenterID
	}

	record, err := h.Attendance.CheckOut(r.Context(), input)
	if err != nil {
		h.logDomainError("attendance.check_out", err, "record_id", req.RecordID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) CheckOutBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req checkOutBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}

	items := make([]attendancedomain.CheckOutBatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, attendancedomain.CheckOutBatchItem{
			RecordID:   strings.TrimSpace(item.RecordID),
			Notes:      item.Notes,
			RecordedBy: actor.ID,
		})
	}

	result, err := h.Attendance.CheckOutBatch(r.Context(), items)
	if err != nil {
		h.logDomainError("attendance.check_out_batch", err, "items", len(items))
		writeDomainError(w, err)
		return
	}

	// Partial results are a 200: the caller must inspect per-item outcomes.
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.RecordID = strings.TrimSpace(req.RecordID)
	req.DestinationCenterID = strings.TrimSpace(req.DestinationCenterID)
	if req.RecordID == "" || req.DestinationCenterID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "record_id and destination_center_id are required")
		return
	}

	input := attendancedomain.TransferInput{
		RecordID:            req.RecordID,
		DestinationCenterID: req.DestinationCenterID,
		Notes:               req.Notes,
		CopyNotes:           req.CopyNotes,
		RecordedBy:          actor.ID,
	}
	// Staff transfer only records held at their assigned center.
	if actor.Role != middleware.RoleCoordinator {
		if actor.CenterID == "" {
			writeError(w, http.StatusForbidden, "forbidden", "staff actor has no assigned center")
			return
		}
		input.ActingCenterID = actor.CenterID
	}

	record, err := h.Attendance.Transfer(r.Context(), input)
	if err != nil {
		h.logDomainError("attendance.transfer", err, "record_id", req.RecordID, "destination_center_id", req.DestinationCenterID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) TransferBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req transferBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}

	items := make([]attendancedomain.TransferBatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, attendancedomain.TransferBatchItem{
			RecordID:            strings.TrimSpace(item.RecordID),
			DestinationCenterID: strings.TrimSpace(item.DestinationCenterID),
			Notes:               item.Notes,
			CopyNotes:           item.CopyNotes,
			RecordedBy:          actor.ID,
		})
	}

	result, err := h.Attendance.TransferBatch(r.Context(), items)
	if err != nil {
		h.logDomainError("attendance.transfer_batch", err, "items", len(items))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) IndividualStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	individualID := chi.URLParam(r, "id")
	status, err := h.Attendance.IndividualStatus(r.Context(), individualID, actor.CenterID)
	if err != nil {
		h.logDomainError("attendance.status", err, "individual_id", individualID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *Handlers) IndividualHistory(w http.ResponseWriter, r *http.Request) {
	individualID := chi.URLParam(r, "id")
	records, err := h.Attendance.IndividualHistory(r.Context(), individualID)
	if err != nil {
		h.logDomainError("attendance.history", err, "individual_id", individualID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

func (h *Handlers) CurrentAttendees(w http.ResponseWriter, r *http.Request) {
	centerID := chi.URLParam(r, "id")
	eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))

	records, err := h.Attendance.CurrentAttendees(r.Context(), centerID, eventID)
	if err != nil {
		h.logDomainError("attendance.attendees", err, "center_id", centerID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

func (h *Handlers) logDomainError(op string, err error, args ...any) {
	code, _ := attendancedomain.CodeForError(err)
	if code == attendancedomain.CodeInternalError {
		h.log.InternalError(op+": failed", err, args...)
		return
	}
	h.log.BusinessError(op+": rejected", err, args...)
}
