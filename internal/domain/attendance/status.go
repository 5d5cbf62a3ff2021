package attendance

// Resolution is the derived view of one individual's record history.
type Resolution struct {
	Status     CurrentStatus
	CenterID   string
	OpenRecord *Record
	LastRecord *Record
}

// Resolve derives the individual's current status from their record history:
// the open record wins; otherwise the most recently closed terminal record;
// otherwise the individual has never checked in.
func Resolve(records []Record) Resolution {
	var open *Record
	var last *Record

	for i := range records {
		record := records[i]
		if record.Status.Open() {
			open = &records[i]
			continue
		}
		if last == nil || record.ClosedAt().After(last.ClosedAt()) {
			last = &records[i]
		}
	}

	if open != nil {
		return Resolution{
			Status:     CurrentCheckedIn,
			CenterID:   open.CenterID,
			OpenRecord: open,
			LastRecord: last,
		}
	}

	if last != nil {
		return Resolution{
			Status:     CurrentStatus(last.Status),
			LastRecord: last,
		}
	}

	return Resolution{Status: CurrentNeverCheckedIn}
}

// CanCheckIn: the individual's household is registered to the acting center
// and they are not already checked in anywhere.
func CanCheckIn(res Resolution, householdCenterID, actingCenterID string, actionsEnabled bool) bool {
	if !actionsEnabled || actingCenterID == "" {
		return false
	}
	return householdCenterID == actingCenterID && res.Status != CurrentCheckedIn
}

// CanCheckOut: the individual is checked in at the acting center.
func CanCheckOut(res Resolution, actingCenterID string, actionsEnabled bool) bool {
	if !actionsEnabled || actingCenterID == "" {
		return false
	}
	return res.Status == CurrentCheckedIn && res.CenterID == actingCenterID
}

// CanTransfer: same condition as check-out; the destination is validated at
// transfer time, not here.
func CanTransfer(res Resolution, actingCenterID string, actionsEnabled bool) bool {
	return CanCheckOut(res, actingCenterID, actionsEnabled)
}
