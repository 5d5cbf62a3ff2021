package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"evac-app-go/internal/domain/registry"
)

type countingLookups struct {
	*fakeLookups
	statusCalls int
}

func (l *countingLookups) CenterStatus(ctx context.Context, centerID string) (string, error) {
	l.statusCalls++
	return l.fakeLookups.CenterStatus(ctx, centerID)
}

type recordingCache struct {
	entries map[string]bool
}

func (c *recordingCache) Get(centerID string) (bool, bool) {
	allowed, ok := c.entries[centerID]
	return allowed, ok
}

func (c *recordingCache) Set(centerID string, allowed bool, _ time.Duration) {
	c.entries[centerID] = allowed
}

func TestClearanceSuccess(t *testing.T) {
	lookups := newFakeLookups()
	lookups.addActiveCenter("center-5", "event-1")

	gate := NewGate(lookups, nil, 0)

	event, err := gate.Clearance(context.Background(), "center-5")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.ID != "event-1" {
		t.Fatalf("expected event-1, got %q", event.ID)
	}
}

func TestClearanceCenterInactive(t *testing.T) {
	lookups := newFakeLookups()
	lookups.centerStatus["center-5"] = "closed"

	gate := NewGate(lookups, nil, 0)

	if _, err := gate.Clearance(context.Background(), "center-5"); !errors.Is(err, ErrCenterInactive) {
		t.Fatalf("expected ErrCenterInactive, got %v", err)
	}
}

func TestClearanceUnknownCenter(t *testing.T) {
	gate := NewGate(newFakeLookups(), nil, 0)

	if _, err := gate.Clearance(context.Background(), "ghost"); !errors.Is(err, registry.ErrCenterNotFound) {
		t.Fatalf("expected ErrCenterNotFound, got %v", err)
	}
}

func TestClearanceEventCount(t *testing.T) {
	lookups := newFakeLookups()
	lookups.centerStatus["center-5"] = "active"

	gate := NewGate(lookups, nil, 0)

	if _, err := gate.Clearance(context.Background(), "center-5"); !errors.Is(err, ErrNoActiveEvent) {
		t.Fatalf("expected ErrNoActiveEvent with zero events, got %v", err)
	}

	lookups.events["center-5"] = []registry.EventRef{
		{ID: "event-1", Status: registry.EventStatusActive},
		{ID: "event-2", Status: registry.EventStatusActive},
	}
	if _, err := gate.Clearance(context.Background(), "center-5"); !errors.Is(err, ErrNoActiveEvent) {
		t.Fatalf("expected ErrNoActiveEvent with two events, got %v", err)
	}
}

func TestActionsEnabledCaches(t *testing.T) {
	lookups := &countingLookups{fakeLookups: newFakeLookups()}
	lookups.addActiveCenter("center-5", "event-1")
	cache := &recordingCache{entries: make(map[string]bool)}

	gate := NewGate(lookups, cache, time.Minute)

	if !gate.ActionsEnabled(context.Background(), "center-5") {
		t.Fatalf("expected actions enabled")
	}
	if !gate.ActionsEnabled(context.Background(), "center-5") {
		t.Fatalf("expected actions enabled on cached read")
	}
	if lookups.statusCalls != 1 {
		t.Fatalf("expected a single lookup, got %d", lookups.statusCalls)
	}
}

func TestActionsEnabledEmptyCenter(t *testing.T) {
	gate := NewGate(newFakeLookups(), nil, 0)

	if gate.ActionsEnabled(context.Background(), "") {
		t.Fatalf("expected actions disabled without a center")
	}
}

func TestActionsEnabledLookupFailure(t *testing.T) {
	gate := NewGate(newFakeLookups(), nil, 0)

	if gate.ActionsEnabled(context.Background(), "ghost") {
		t.Fatalf("expected actions disabled when the center is unknown")
	}
}
