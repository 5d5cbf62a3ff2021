package attendance

import (
	"errors"

	"evac-app-go/internal/domain/registry"
)

var (
	ErrAlreadyCheckedIn   = errors.New("individual already has an open record")
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrRecordNotOpen      = errors.New("attendance record is not open")
	ErrCenterInactive     = errors.New("center is not active")
	ErrNoActiveEvent      = errors.New("center has no single active event")
	ErrSameCenterTransfer = errors.New("destination center equals source center")
	// ErrCenterMismatch means the acting user is scoped to a center the record
	// does not belong to.
	ErrCenterMismatch = errors.New("record belongs to a different center")
	// ErrRecordConflict means a concurrent mutation closed the record between
	// validation and mutation. Retryable by the caller, never auto-retried.
	ErrRecordConflict = errors.New("attendance record changed concurrently")
	ErrBatchTooLarge  = errors.New("batch exceeds the maximum item count")
)

type ErrorCode string

const (
	CodeAlreadyCheckedIn   ErrorCode = "already_checked_in"
	CodeRecordNotFound     ErrorCode = "record_not_found"
	CodeRecordNotOpen      ErrorCode = "record_not_open"
	CodeCenterInactive     ErrorCode = "center_inactive"
	CodeNoActiveEvent      ErrorCode = "no_active_event"
	CodeSameCenterTransfer ErrorCode = "same_center_transfer"
	CodeCenterMismatch     ErrorCode = "center_mismatch"
	CodeRecordConflict     ErrorCode = "record_conflict"
	CodeBatchTooLarge      ErrorCode = "batch_too_large"
	CodeCenterNotFound     ErrorCode = "center_not_found"
	CodeIndividualNotFound ErrorCode = "individual_not_found"
	CodeInternalError      ErrorCode = "internal_error"
)

// CodeForError maps a domain error to its wire code and retryability. Unknown
// errors are internal and retryable.
func CodeForError(err error) (ErrorCode, bool) {
	switch {
	case errors.Is(err, ErrAlreadyCheckedIn):
		return CodeAlreadyCheckedIn, false
	case errors.Is(err, ErrRecordNotFound):
		return CodeRecordNotFound, false
	case errors.Is(err, ErrRecordNotOpen):
		return CodeRecordNotOpen, false
	case errors.Is(err, ErrCenterInactive):
		return CodeCenterInactive, false
	case errors.Is(err, ErrNoActiveEvent):
		return CodeNoActiveEvent, false
	case errors.Is(err, ErrSameCenterTransfer):
		return CodeSameCenterTransfer, false
	case errors.Is(err, ErrCenterMismatch):
		return CodeCenterMismatch, false
	case errors.Is(err, ErrRecordConflict):
		return CodeRecordConflict, true
	case errors.Is(err, ErrBatchTooLarge):
		return CodeBatchTooLarge, false
	case errors.Is(err, registry.ErrCenterNotFound):
		return CodeCenterNotFound, false
	case errors.Is(err, registry.ErrIndividualNotFound), errors.Is(err, registry.ErrHouseholdNotFound):
		return CodeIndividualNotFound, false
	default:
		return CodeInternalError, true
	}
}
