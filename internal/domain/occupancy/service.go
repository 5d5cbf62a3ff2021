package occupancy

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const defaultRecalcConcurrency = 4

type CenterCount struct {
	CenterID string `json:"center_id"`
	Count    int    `json:"count"`
}

// Service is the repair mechanism for occupancy drift. Recalculation is
// idempotent and never needs the prior counter value, so it is always safe to
// re-run.
type Service struct {
	repo        Repository
	concurrency int
}

func NewService(repo Repository, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = defaultRecalcConcurrency
	}
	return &Service{
		repo:        repo,
		concurrency: concurrency,
	}
}

func (s *Service) Recalculate(ctx context.Context, centerID string) (int, error) {
	if centerID == "" {
		return 0, fmt.Errorf("center id is required")
	}
	return s.repo.RecalculateOccupancy(ctx, centerID)
}

// RecalculateAll recounts every center. Each center is its own unit of work;
// cancellation stops the sweep without undoing counters already rewritten.
func (s *Service) RecalculateAll(ctx context.Context) ([]CenterCount, error) {
	centerIDs, err := s.repo.ListCenterIDs(ctx)
	if err != nil {
		return nil, err
	}

	counts := make([]CenterCount, len(centerIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for i, centerID := range centerIDs {
		i, centerID := i, centerID
		group.Go(func() error {
			count, err := s.repo.RecalculateOccupancy(groupCtx, centerID)
			if err != nil {
				return fmt.Errorf("recalculate center %s: %w", centerID, err)
			}
			counts[i] = CenterCount{CenterID: centerID, Count: count}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return counts, nil
}
