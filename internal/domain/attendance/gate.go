package attendance

import (
	"context"
	"time"

	"evac-app-go/internal/domain/registry"
)

// Lookups is the slice of reference data the engine needs. Implemented by the
// registry service.
type Lookups interface {
	CenterStatus(ctx context.Context, centerID string) (string, error)
	ActiveEventsForCenter(ctx context.Context, centerID string) ([]registry.EventRef, error)
	HouseholdCenter(ctx context.Context, individualID string) (string, error)
}

// GateCache memoizes authorization results per center for the status read
// path. Mutations never go through it.
type GateCache interface {
	Get(centerID string) (bool, bool)
	Set(centerID string, allowed bool, ttl time.Duration)
}

type noopGateCache struct{}

func (noopGateCache) Get(string) (bool, bool)         { return false, false }
func (noopGateCache) Set(string, bool, time.Duration) {}

// Gate decides whether attendance-changing actions may touch a center: the
// center must be active and covered by exactly one active event. It is
// side-effect-free.
type Gate struct {
	lookups  Lookups
	cache    GateCache
	cacheTTL time.Duration
}

func NewGate(lookups Lookups, cache GateCache, cacheTTL time.Duration) *Gate {
	if cache == nil {
		cache = noopGateCache{}
	}
	return &Gate{
		lookups:  lookups,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Clearance authorizes the center and returns its single active event.
func (g *Gate) Clearance(ctx context.Context, centerID string) (*registry.EventRef, error) {
	status, err := g.lookups.CenterStatus(ctx, centerID)
	if err != nil {
		return nil, err
	}
	if registry.CenterStatus(status) != registry.CenterStatusActive {
		return nil, ErrCenterInactive
	}

	events, err := g.lookups.ActiveEventsForCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}
	// Zero and multiple active events are both rejected: a record must be
	// attributable to exactly one event.
	if len(events) != 1 {
		return nil, ErrNoActiveEvent
	}

	event := events[0]
	return &event, nil
}

func (g *Gate) Authorize(ctx context.Context, centerID string) error {
	_, err := g.Clearance(ctx, centerID)
	return err
}

// ActionsEnabled is the cached read-path variant used to derive permission
// predicates. Lookup failures read as disabled.
func (g *Gate) ActionsEnabled(ctx context.Context, centerID string) bool {
	if centerID == "" {
		return false
	}
	if allowed, ok := g.cache.Get(centerID); ok {
		return allowed
	}

	allowed := g.Authorize(ctx, centerID) == nil
	g.cache.Set(centerID, allowed, g.cacheTTL)
	return allowed
}
