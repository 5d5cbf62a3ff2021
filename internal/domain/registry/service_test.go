package registry

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	centers     map[string]*EvacuationCenter
	events      map[string][]EventRef
	households  map[string]*Household
	individuals map[string]*Individual
	memberLists map[string][]Individual
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		centers:     make(map[string]*EvacuationCenter),
		events:      make(map[string][]EventRef),
		households:  make(map[string]*Household),
		individuals: make(map[string]*Individual),
		memberLists: make(map[string][]Individual),
	}
}

func (r *fakeRepo) GetCenter(ctx context.Context, centerID string) (*EvacuationCenter, error) {
	center, ok := r.centers[centerID]
	if !ok {
		return nil, ErrCenterNotFound
	}
	return center, nil
}

func (r *fakeRepo) ListCenters(ctx context.Context) ([]EvacuationCenter, error) {
	result := make([]EvacuationCenter, 0, len(r.centers))
	for _, center := range r.centers {
		result = append(result, *center)
	}
	return result, nil
}

func (r *fakeRepo) ListActiveEventsForCenter(ctx context.Context, centerID string) ([]EventRef, error) {
	return r.events[centerID], nil
}

func (r *fakeRepo) GetIndividual(ctx context.Context, individualID string) (*Individual, error) {
	individual, ok := r.individuals[individualID]
	if !ok {
		return nil, ErrIndividualNotFound
	}
	return individual, nil
}

func (r *fakeRepo) GetHousehold(ctx context.Context, householdID string) (*Household, error) {
	household, ok := r.households[householdID]
	if !ok {
		return nil, ErrHouseholdNotFound
	}
	return household, nil
}

func (r *fakeRepo) ListHouseholdMembers(ctx context.Context, householdID string) ([]Individual, error) {
	return r.memberLists[householdID], nil
}

func TestCenterStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.centers["center-5"] = &EvacuationCenter{ID: "center-5", Status: CenterStatusActive}

	svc := NewService(repo)

	status, err := svc.CenterStatus(context.Background(), "center-5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if status != string(CenterStatusActive) {
		t.Fatalf("expected active, got %q", status)
	}
}

func TestCenterStatusNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	if _, err := svc.CenterStatus(context.Background(), "ghost"); !errors.Is(err, ErrCenterNotFound) {
		t.Fatalf("expected ErrCenterNotFound, got %v", err)
	}
}

func TestActiveEventsForCenter(t *testing.T) {
	repo := newFakeRepo()
	repo.centers["center-5"] = &EvacuationCenter{ID: "center-5", Status: CenterStatusActive}
	repo.events["center-5"] = []EventRef{{ID: "event-1", Status: EventStatusActive}}

	svc := NewService(repo)

	events, err := svc.ActiveEventsForCenter(context.Background(), "center-5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 1 || events[0].ID != "event-1" {
		t.Fatalf("expected event-1, got %+v", events)
	}
}

func TestActiveEventsForCenterUnknown(t *testing.T) {
	svc := NewService(newFakeRepo())

	if _, err := svc.ActiveEventsForCenter(context.Background(), "ghost"); !errors.Is(err, ErrCenterNotFound) {
		t.Fatalf("expected ErrCenterNotFound, got %v", err)
	}
}

func TestHouseholdCenter(t *testing.T) {
	repo := newFakeRepo()
	repo.households["hh-1"] = &Household{ID: "hh-1", CenterID: "center-5"}
	repo.individuals["ind-a"] = &Individual{ID: "ind-a", HouseholdID: "hh-1"}

	svc := NewService(repo)

	centerID, err := svc.HouseholdCenter(context.Background(), "ind-a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if centerID != "center-5" {
		t.Fatalf("expected center-5, got %q", centerID)
	}
}

func TestHouseholdCenterUnknownIndividual(t *testing.T) {
	svc := NewService(newFakeRepo())

	if _, err := svc.HouseholdCenter(context.Background(), "ghost"); !errors.Is(err, ErrIndividualNotFound) {
		t.Fatalf("expected ErrIndividualNotFound, got %v", err)
	}
}

func TestListHouseholdMembers(t *testing.T) {
	repo := newFakeRepo()
	repo.households["hh-1"] = &Household{ID: "hh-1", CenterID: "center-5"}
	repo.memberLists["hh-1"] = []Individual{
		{ID: "ind-a", HouseholdID: "hh-1"},
		{ID: "ind-b", HouseholdID: "hh-1"},
	}

	svc := NewService(repo)

	members, err := svc.ListHouseholdMembers(context.Background(), "hh-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
}

func TestListHouseholdMembersUnknownHousehold(t *testing.T) {
	svc := NewService(newFakeRepo())

	if _, err := svc.ListHouseholdMembers(context.Background(), "ghost"); !errors.Is(err, ErrHouseholdNotFound) {
		t.Fatalf("expected ErrHouseholdNotFound, got %v", err)
	}
}
