package registry

import "context"

type Repository interface {
	GetCenter(ctx context.Context, centerID string) (*EvacuationCenter, error)
	ListCenters(ctx context.Context) ([]EvacuationCenter, error)
	ListActiveEventsForCenter(ctx context.Context, centerID string) ([]EventRef, error)
	GetIndividual(ctx context.Context, individualID string) (*Individual, error)
	GetHousehold(ctx context.Context, householdID string) (*Household, error)
	ListHouseholdMembers(ctx context.Context, householdID string) ([]Individual, error)
}
