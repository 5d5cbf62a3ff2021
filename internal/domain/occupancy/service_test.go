package occupancy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
)

type fakeRepo struct {
	mu      sync.Mutex
	counts  map[string]int
	failFor map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		counts:  make(map[string]int),
		failFor: make(map[string]error),
	}
}

func (r *fakeRepo) ListCenterIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.counts))
	for id := range r.counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeRepo) RecalculateOccupancy(ctx context.Context, centerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failFor[centerID]; err != nil {
		return 0, err
	}
	count, ok := r.counts[centerID]
	if !ok {
		return 0, fmt.Errorf("center not found")
	}
	return count, nil
}

func TestRecalculate(t *testing.T) {
	repo := newFakeRepo()
	repo.counts["center-5"] = 12

	svc := NewService(repo, 0)

	count, err := svc.Recalculate(context.Background(), "center-5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 12 {
		t.Fatalf("expected 12, got %d", count)
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.counts["center-5"] = 3

	svc := NewService(repo, 0)

	first, err := svc.Recalculate(context.Background(), "center-5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Recalculate(context.Background(), "center-5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first != second {
		t.Fatalf("expected identical counts, got %d then %d", first, second)
	}
}

func TestRecalculateRequiresCenter(t *testing.T) {
	svc := NewService(newFakeRepo(), 0)

	if _, err := svc.Recalculate(context.Background(), ""); err == nil {
		t.Fatalf("expected an error for an empty center id")
	}
}

func TestRecalculateAll(t *testing.T) {
	repo := newFakeRepo()
	repo.counts["center-1"] = 4
	repo.counts["center-2"] = 0
	repo.counts["center-3"] = 9

	svc := NewService(repo, 2)

	counts, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 counts, got %d", len(counts))
	}
	byCenter := make(map[string]int)
	for _, c := range counts {
		byCenter[c.CenterID] = c.Count
	}
	if byCenter["center-1"] != 4 || byCenter["center-2"] != 0 || byCenter["center-3"] != 9 {
		t.Fatalf("unexpected counts: %+v", byCenter)
	}
}

func TestRecalculateAllPropagatesFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.counts["center-1"] = 4
	repo.counts["center-2"] = 2
	boom := errors.New("deadlock detected")
	repo.failFor["center-2"] = boom

	svc := NewService(repo, 1)

	if _, err := svc.RecalculateAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
