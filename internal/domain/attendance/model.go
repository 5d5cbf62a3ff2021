package attendance

import "time"

// RecordStatus is the lifecycle state of an attendance record. checked_in is
// the only open state; checked_out and transferred are terminal.
type RecordStatus string

const (
	StatusCheckedIn   RecordStatus = "checked_in"
	StatusCheckedOut  RecordStatus = "checked_out"
	StatusTransferred RecordStatus = "transferred"
)

func (s RecordStatus) Open() bool { return s == StatusCheckedIn }

// Record is one stay of one individual at one center under one event.
type Record struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	IndividualID string       `gorm:"type:uuid;not null;index" json:"individual_id"`
	CenterID     string       `gorm:"type:uuid;not null;index" json:"center_id"`
	EventID      string       `gorm:"type:uuid;not null;index" json:"event_id"`
	Status       RecordStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	CheckInTime  time.Time    `gorm:"not null" json:"check_in_time"`
	CheckOutTime *time.Time   `json:"check_out_time,omitempty"`
	TransferTime *time.Time   `json:"transfer_time,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	RecordedBy   string       `gorm:"not null" json:"recorded_by"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Record) TableName() string { return "attendance_records" }

// ClosedAt is the instant the record left the open state, or the zero time
// while it is still open.
func (r Record) ClosedAt() time.Time {
	switch {
	case r.CheckOutTime != nil:
		return *r.CheckOutTime
	case r.TransferTime != nil:
		return *r.TransferTime
	default:
		return time.Time{}
	}
}

type CheckInInput struct {
	IndividualID string
	CenterID     string
	Notes        string
	RecordedBy   string
}

type CheckOutInput struct {
	RecordID   string
	Notes      string
	RecordedBy string
	// ActingCenterID restricts the operation to records at that center. Empty
	// means unrestricted.
	ActingCenterID string
}

type TransferInput struct {
	RecordID            string
	DestinationCenterID string
	Notes               string
	// CopyNotes carries the source record's notes onto the destination record.
	CopyNotes  bool
	RecordedBy string
	// ActingCenterID restricts the operation to source records at that center.
	// Empty means unrestricted.
	ActingCenterID string
}

type BatchStatus string

const (
	BatchStatusSuccess        BatchStatus = "success"
	BatchStatusPartialSuccess BatchStatus = "partial_success"
	BatchStatusFailed         BatchStatus = "failed"
)

type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BatchFailure pins a failed batch item to its position and record so the
// caller can report N-of-M outcomes instead of a single pass/fail flag.
type BatchFailure struct {
	Index     int       `json:"index"`
	RecordID  string    `json:"record_id,omitempty"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
}

type CheckOutBatchItem struct {
	RecordID   string
	Notes      string
	RecordedBy string
}

type CheckOutBatchResult struct {
	Status     BatchStatus    `json:"status"`
	Summary    BatchSummary   `json:"summary"`
	Successful []Record       `json:"successful"`
	Failed     []BatchFailure `json:"failed"`
}

type TransferBatchItem struct {
	RecordID            string
	DestinationCenterID string
	Notes               string
	CopyNotes           bool
	RecordedBy          string
}

type TransferBatchResult struct {
	Status     BatchStatus    `json:"status"`
	Summary    BatchSummary   `json:"summary"`
	Successful []Record       `json:"successful_transfers"`
	Failed     []BatchFailure `json:"failed_transfers"`
}

// CurrentStatus is the derived display status of an individual.
type CurrentStatus string

const (
	CurrentCheckedIn      CurrentStatus = "checked_in"
	CurrentCheckedOut     CurrentStatus = "checked_out"
	CurrentTransferred    CurrentStatus = "transferred"
	CurrentNeverCheckedIn CurrentStatus = "never_checked_in"
)

// IndividualStatus is what the dashboard needs to paint an individual's row:
// where they are and which actions the acting user may offer.
type IndividualStatus struct {
	IndividualID string        `json:"individual_id"`
	Status       CurrentStatus `json:"status"`
	CenterID     string        `json:"center_id,omitempty"`
	OpenRecordID string        `json:"open_record_id,omitempty"`
	CanCheckIn   bool          `json:"can_check_in"`
	CanCheckOut  bool          `json:"can_check_out"`
	CanTransfer  bool          `json:"can_transfer"`
}
