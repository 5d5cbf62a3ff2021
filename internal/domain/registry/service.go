package registry

import "context"

// Service exposes the read-only reference data the attendance engine and its
// callers depend on. Centers, events, households and individuals are managed
// elsewhere; nothing here mutates them.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetCenter(ctx context.Context, centerID string) (*EvacuationCenter, error) {
	return s.repo.GetCenter(ctx, centerID)
}

func (s *Service) ListCenters(ctx context.Context) ([]EvacuationCenter, error) {
	return s.repo.ListCenters(ctx)
}

func (s *Service) CenterStatus(ctx context.Context, centerID string) (string, error) {
	center, err := s.repo.GetCenter(ctx, centerID)
	if err != nil {
		return "", err
	}
	return string(center.Status), nil
}

// ActiveEventsForCenter returns the events linked to the center whose status is
// active. There is exactly one lookup path; a center with no links simply
// yields an empty slice.
func (s *Service) ActiveEventsForCenter(ctx context.Context, centerID string) ([]EventRef, error) {
	if _, err := s.repo.GetCenter(ctx, centerID); err != nil {
		return nil, err
	}
	return s.repo.ListActiveEventsForCenter(ctx, centerID)
}

func (s *Service) GetIndividual(ctx context.Context, individualID string) (*Individual, error) {
	return s.repo.GetIndividual(ctx, individualID)
}

// HouseholdCenter resolves the home center of the individual's household.
func (s *Service) HouseholdCenter(ctx context.Context, individualID string) (string, error) {
	individual, err := s.repo.GetIndividual(ctx, individualID)
	if err != nil {
		return "", err
	}
	household, err := s.repo.GetHousehold(ctx, individual.HouseholdID)
	if err != nil {
		return "", err
	}
	return household.CenterID, nil
}

func (s *Service) ListHouseholdMembers(ctx context.Context, householdID string) ([]Individual, error) {
	if _, err := s.repo.GetHousehold(ctx, householdID); err != nil {
		return nil, err
	}
	return s.repo.ListHouseholdMembers(ctx, householdID)
}
