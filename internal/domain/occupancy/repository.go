package occupancy

import "context"

type Repository interface {
	ListCenterIDs(ctx context.Context) ([]string, error)
	// RecalculateOccupancy overwrites the center's counter with the live count
	// of open attendance records and returns the new value.
	RecalculateOccupancy(ctx context.Context, centerID string) (int, error)
}
