package handler

import (
	"encoding/json"
	"net/http"

	attendancedomain "evac-app-go/internal/domain/attendance"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps attendance/registry sentinel errors onto HTTP status
// codes: not-found → 404, state rejections and conflicts → 409, everything
// unknown → 500.
func writeDomainError(w http.ResponseWriter, err error) {
	code, retryable := attendancedomain.CodeForError(err)

	status := http.StatusInternalServerError
	message := "internal error"
	switch code {
	case attendancedomain.CodeRecordNotFound,
		attendancedomain.CodeCenterNotFound,
		attendancedomain.CodeIndividualNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case attendancedomain.CodeAlreadyCheckedIn,
		attendancedomain.CodeRecordNotOpen,
		attendancedomain.CodeCenterInactive,
		attendancedomain.CodeNoActiveEvent,
		attendancedomain.CodeSameCenterTransfer,
		attendancedomain.CodeRecordConflict:
		status = http.StatusConflict
		message = err.Error()
	case attendancedomain.CodeCenterMismatch:
		status = http.StatusForbidden
		message = err.Error()
	case attendancedomain.CodeBatchTooLarge:
		status = http.StatusBadRequest
		message = err.Error()
	}

	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:      string(code),
		Message:   message,
		Retryable: retryable,
	}})
}
