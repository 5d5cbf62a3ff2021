package attendance

import "context"

// Repository owns the attendance-record collection and the occupancy counter
// derived from it. GetOpenRecord returns (nil, nil) when the individual has no
// open record.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetRecord(ctx context.Context, recordID string) (*Record, error)
	// GetRecordForUpdate reads the record under a row lock. Only meaningful
	// inside a Transaction closure.
	GetRecordForUpdate(ctx context.Context, recordID string) (*Record, error)
	GetOpenRecord(ctx context.Context, individualID string) (*Record, error)
	CreateRecord(ctx context.Context, record *Record) error
	UpdateRecord(ctx context.Context, record *Record) error
	ListByIndividual(ctx context.Context, individualID string) ([]Record, error)
	ListOpenByCenter(ctx context.Context, centerID, eventID string) ([]Record, error)
	// RecalculateOccupancy overwrites the center's occupancy counter with the
	// live open-record count and returns the new value.
	RecalculateOccupancy(ctx context.Context, centerID string) (int, error)
}
