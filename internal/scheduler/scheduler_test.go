package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/business-hours/internal/business"
	"github.com/i474232898/business-hours/internal/hours"
	"github.com/i474232898/business-hours/internal/store"
)

type countingProvider struct {
	calls atomic.Int32
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Fetch(context.Context, business.Location) (business.Feed, error) {
	p.calls.Add(1)
	return business.Feed{
		LocationName: "Example Location",
		Hours:        []hours.RawInterval{{DayOfWeek: "MON", Start: "00:00:00", End: "24:00:00"}},
	}, nil
}

func TestFetchAllCoversEveryLocation(t *testing.T) {
	locs := []business.Location{
		{Key: "a", Path: "a.json"},
		{Key: "b", Path: "b.json"},
		{Key: "c", Path: "c.json"},
	}
	p := &countingProvider{}
	mem := store.NewMemoryStore(5, time.Hour)
	svc := business.NewService(mem, []business.Provider{p})

	s := New(locs, time.Minute, svc, nil)
	s.FetchAll()

	if got := p.calls.Load(); got != 3 {
		t.Fatalf("expected 3 fetches, got %d", got)
	}
	for _, loc := range locs {
		if _, err := mem.GetLatest(loc); err != nil {
			t.Fatalf("expected snapshot for %s: %v", loc.Key, err)
		}
	}

	// Runs against the stored snapshots without error.
	s.CheckTransitions()
}

func TestStartWithoutLocations(t *testing.T) {
	s := New(nil, time.Minute, business.NewService(store.NewMemoryStore(0, 0), nil), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
