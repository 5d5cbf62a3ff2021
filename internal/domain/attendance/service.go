package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultMaxBatchSize = 100

// Service implements check-in, check-out and transfer as single-item and batch
// operations. Every single-item mutation is validate-then-mutate: the gate and
// the record are checked up front, then the mutation runs in one repository
// transaction that re-reads the record under a row lock and recounts occupancy
// for the touched centers.
type Service struct {
	repo     Repository
	gate     *Gate
	lookups  Lookups
	maxBatch int
}

func NewService(repo Repository, gate *Gate, lookups Lookups, maxBatch int) *Service {
	if maxBatch <= 0 {
		maxBatch = defaultMaxBatchSize
	}
	return &Service{
		repo:     repo,
		gate:     gate,
		lookups:  lookups,
		maxBatch: maxBatch,
	}
}

func (s *Service) CheckIn(ctx context.Context, input CheckInInput) (*Record, error) {
	if input.IndividualID == "" {
		return nil, fmt.Errorf("individual id is required")
	}
	if input.CenterID == "" {
		return nil, fmt.Errorf("center id is required")
	}

	// Surfaces individual-not-found before any gate noise.
	if _, err := s.lookups.HouseholdCenter(ctx, input.IndividualID); err != nil {
		return nil, err
	}

	event, err := s.gate.Clearance(ctx, input.CenterID)
	if err != nil {
		return nil, err
	}

	open, err := s.repo.GetOpenRecord(ctx, input.IndividualID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrAlreadyCheckedIn
	}

	record := &Record{
		ID:           uuid.NewString(),
		IndividualID: input.IndividualID,
		CenterID:     input.CenterID,
		EventID:      event.ID,
		Status:       StatusCheckedIn,
		CheckInTime:  time.Now().UTC(),
		Notes:        input.Notes,
		RecordedBy:   input.RecordedBy,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		// Re-check inside the transaction: a concurrent check-in for the same
		// individual must not produce a second open record.
		open, err := tx.GetOpenRecord(ctx, input.IndividualID)
		if err != nil {
			return err
		}
		if open != nil {
			return ErrAlreadyCheckedIn
		}
		if err := tx.CreateRecord(ctx, record); err != nil {
			return err
		}
		_, err = tx.RecalculateOccupancy(ctx, input.CenterID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *Service) CheckOut(ctx context.Context, input CheckOutInput) (*Record, error) {
	if input.RecordID == "" {
		return nil, fmt.Errorf("record id is required")
	}

	record, err := s.repo.GetRecord(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}
	if input.ActingCenterID != "" && record.CenterID != input.ActingCenterID {
		return nil, ErrCenterMismatch
	}
	if !record.Status.Open() {
		return nil, ErrRecordNotOpen
	}

	// An evacuee cannot be checked out of a center whose deployment has ended.
	if err := s.gate.Authorize(ctx, record.CenterID); err != nil {
		return nil, err
	}

	var closed *Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		locked, err := tx.GetRecordForUpdate(ctx, input.RecordID)
		if err != nil {
			return err
		}
		if !locked.Status.Open() {
			return ErrRecordConflict
		}

		now := time.Now().UTC()
		locked.Status = StatusCheckedOut
		locked.CheckOutTime = &now
		locked.Notes = mergeNotes(locked.Notes, input.Notes)
		if input.RecordedBy != "" {
			locked.RecordedBy = input.RecordedBy
		}
		if err := tx.UpdateRecord(ctx, locked); err != nil {
			return err
		}
		if _, err := tx.RecalculateOccupancy(ctx, locked.CenterID); err != nil {
			return err
		}
		closed = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// Transfer closes the source record and opens a destination record in one
// transaction. The destination record is stamped with a fresh lookup of the
// destination's active event.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (*Record, error) {
	if input.RecordID == "" {
		return nil, fmt.Errorf("record id is required")
	}
	if input.DestinationCenterID == "" {
		return nil, fmt.Errorf("destination center id is required")
	}

	record, err := s.repo.GetRecord(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}
	if input.ActingCenterID != "" && record.CenterID != input.ActingCenterID {
		return nil, ErrCenterMismatch
	}
	if !record.Status.Open() {
		return nil, ErrRecordNotOpen
	}
	if record.CenterID == input.DestinationCenterID {
		return nil, ErrSameCenterTransfer
	}

	// The source center must still permit exits, and the destination must be
	// able to receive.
	if err := s.gate.Authorize(ctx, record.CenterID); err != nil {
		return nil, err
	}
	destEvent, err := s.gate.Clearance(ctx, input.DestinationCenterID)
	if err != nil {
		return nil, err
	}

	var opened *Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		locked, err := tx.GetRecordForUpdate(ctx, input.RecordID)
		if err != nil {
			return err
		}
		if !locked.Status.Open() {
			return ErrRecordConflict
		}

		now := time.Now().UTC()
		locked.Status = StatusTransferred
		locked.TransferTime = &now
		locked.Notes = mergeNotes(locked.Notes, input.Notes)
		if err := tx.UpdateRecord(ctx, locked); err != nil {
			return err
		}

		notes := input.Notes
		if input.CopyNotes {
			notes = locked.Notes
		}

		destination := &Record{
			ID:           uuid.NewString(),
			IndividualID: locked.IndividualID,
			CenterID:     input.DestinationCenterID,
			EventID:      destEvent.ID,
			Status:       StatusCheckedIn,
			CheckInTime:  now,
			Notes:        notes,
			RecordedBy:   input.RecordedBy,
		}
		if err := tx.CreateRecord(ctx, destination); err != nil {
			return err
		}

		if _, err := tx.RecalculateOccupancy(ctx, locked.CenterID); err != nil {
			return err
		}
		if _, err := tx.RecalculateOccupancy(ctx, input.DestinationCenterID); err != nil {
			return err
		}

		opened = destination
		return nil
	})
	if err != nil {
		return nil, err
	}

	return opened, nil
}

// CheckInBatch is all-or-nothing: every item is validated, then all records
// are created in a single transaction. The first failure aborts the call with
// no records created.
func (s *Service) CheckInBatch(ctx context.Context, items []CheckInInput) ([]Record, error) {
	if err := s.checkBatchSize(len(items)); err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for i, item := range items {
		if item.IndividualID == "" || item.CenterID == "" {
			return nil, fmt.Errorf("item %d: individual id and center id are required", i)
		}
		if _, dup := seen[item.IndividualID]; dup {
			return nil, fmt.Errorf("item %d: %w", i, ErrAlreadyCheckedIn)
		}
		seen[item.IndividualID] = struct{}{}

		if _, err := s.lookups.HouseholdCenter(ctx, item.IndividualID); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		event, err := s.gate.Clearance(ctx, item.CenterID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		open, err := s.repo.GetOpenRecord(ctx, item.IndividualID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if open != nil {
			return nil, fmt.Errorf("item %d: %w", i, ErrAlreadyCheckedIn)
		}

		records = append(records, &Record{
			ID:           uuid.NewString(),
			IndividualID: item.IndividualID,
			CenterID:     item.CenterID,
			EventID:      event.ID,
			Status:       StatusCheckedIn,
			CheckInTime:  time.Now().UTC(),
			Notes:        item.Notes,
			RecordedBy:   item.RecordedBy,
		})
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		centers := make(map[string]struct{}, 1)
		for _, record := range records {
			open, err := tx.GetOpenRecord(ctx, record.IndividualID)
			if err != nil {
				return err
			}
			if open != nil {
				return ErrAlreadyCheckedIn
			}
			if err := tx.CreateRecord(ctx, record); err != nil {
				return err
			}
			centers[record.CenterID] = struct{}{}
		}
		for centerID := range centers {
			if _, err := tx.RecalculateOccupancy(ctx, centerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]Record, 0, len(records))
	for _, record := range records {
		created = append(created, *record)
	}
	return created, nil
}

// CheckOutBatch applies each item independently: a failed item neither stops
// later items nor rolls back earlier ones.
func (s *Service) CheckOutBatch(ctx context.Context, items []CheckOutBatchItem) (*CheckOutBatchResult, error) {
	if err := s.checkBatchSize(len(items)); err != nil {
		return nil, err
	}

	result := &CheckOutBatchResult{
		Summary:    BatchSummary{Total: len(items)},
		Successful: make([]Record, 0, len(items)),
		Failed:     make([]BatchFailure, 0),
	}

	for i, item := range items {
		record, err := s.CheckOut(ctx, CheckOutInput{
			RecordID:   item.RecordID,
			Notes:      item.Notes,
			RecordedBy: item.RecordedBy,
		})
		if err != nil {
			result.Failed = append(result.Failed, batchFailure(i, item.RecordID, err))
			result.Summary.Failed++
			continue
		}
		result.Successful = append(result.Successful, *record)
		result.Summary.Succeeded++
	}

	result.Status = deriveBatchStatus(result.Summary)
	return result, nil
}

// TransferBatch mirrors CheckOutBatch: each transfer is validated and applied
// independently against its own destination.
func (s *Service) TransferBatch(ctx context.Context, items []TransferBatchItem) (*TransferBatchResult, error) {
	if err := s.checkBatchSize(len(items)); err != nil {
		return nil, err
	}

	result := &TransferBatchResult{
		Summary:    BatchSummary{Total: len(items)},
		Successful: make([]Record, 0, len(items)),
		Failed:     make([]BatchFailure, 0),
	}

	for i, item := range items {
		record, err := s.Transfer(ctx, TransferInput{
			RecordID:            item.RecordID,
			DestinationCenterID: item.DestinationCenterID,
			Notes:               item.Notes,
			CopyNotes:           item.CopyNotes,
			RecordedBy:          item.RecordedBy,
		})
		if err != nil {
			result.Failed = append(result.Failed, batchFailure(i, item.RecordID, err))
			result.Summary.Failed++
			continue
		}
		result.Successful = append(result.Successful, *record)
		result.Summary.Succeeded++
	}

	result.Status = deriveBatchStatus(result.Summary)
	return result, nil
}

// IndividualHistory returns every record of the individual in check-in order.
func (s *Service) IndividualHistory(ctx context.Context, individualID string) ([]Record, error) {
	if individualID == "" {
		return nil, fmt.Errorf("individual id is required")
	}
	if _, err := s.lookups.HouseholdCenter(ctx, individualID); err != nil {
		return nil, err
	}
	return s.repo.ListByIndividual(ctx, individualID)
}

// CurrentAttendees lists the open records at a center, optionally scoped to an
// event.
func (s *Service) CurrentAttendees(ctx context.Context, centerID, eventID string) ([]Record, error) {
	if centerID == "" {
		return nil, fmt.Errorf("center id is required")
	}
	if _, err := s.lookups.CenterStatus(ctx, centerID); err != nil {
		return nil, err
	}
	return s.repo.ListOpenByCenter(ctx, centerID, eventID)
}

// IndividualStatus derives the display status and the permission predicates
// for the acting center.
func (s *Service) IndividualStatus(ctx context.Context, individualID, actingCenterID string) (*IndividualStatus, error) {
	if individualID == "" {
		return nil, fmt.Errorf("individual id is required")
	}

	householdCenter, err := s.lookups.HouseholdCenter(ctx, individualID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByIndividual(ctx, individualID)
	if err != nil {
		return nil, err
	}

	res := Resolve(records)
	enabled := s.gate.ActionsEnabled(ctx, actingCenterID)

	status := &IndividualStatus{
		IndividualID: individualID,
		Status:       res.Status,
		CenterID:     res.CenterID,
		CanCheckIn:   CanCheckIn(res, householdCenter, actingCenterID, enabled),
		CanCheckOut:  CanCheckOut(res, actingCenterID, enabled),
		CanTransfer:  CanTransfer(res, actingCenterID, enabled),
	}
	if res.OpenRecord != nil {
		status.OpenRecordID = res.OpenRecord.ID
	}
	return status, nil
}

func (s *Service) checkBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("items are required")
	}
	if n > s.maxBatch {
		return ErrBatchTooLarge
	}
	return nil
}

func batchFailure(index int, recordID string, err error) BatchFailure {
	code, retryable := CodeForError(err)
	return BatchFailure{
		Index:     index,
		RecordID:  recordID,
		Code:      code,
		Message:   err.Error(),
		Retryable: retryable,
	}
}

func deriveBatchStatus(summary BatchSummary) BatchStatus {
	if summary.Failed == 0 {
		return BatchStatusSuccess
	}
	if summary.Succeeded > 0 {
		return BatchStatusPartialSuccess
	}
	return BatchStatusFailed
}

func mergeNotes(existing, added string) string {
	if added == "" {
		return existing
	}
	if existing == "" {
		return added
	}
	return existing + "\n" + added
}
