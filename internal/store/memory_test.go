package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/business-hours/internal/business"
)

var testLoc = business.Location{Key: "default", Path: "location.json"}

func snapshotAt(ts time.Time) business.Snapshot {
	return business.Snapshot{ID: uuid.New(), Location: testLoc, FetchedAt: ts}
}

func TestMemoryStoreLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)

	if _, err := s.GetLatest(testLoc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Now().UTC()
	first := snapshotAt(now.Add(-time.Minute))
	second := snapshotAt(now)
	s.SaveSnapshot(testLoc, first)
	s.SaveSnapshot(testLoc, second)

	got, err := s.GetLatest(testLoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("expected latest snapshot %s, got %s", second.ID, got.ID)
	}
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.SaveSnapshot(testLoc, snapshotAt(now.Add(time.Duration(i)*time.Second)))
	}

	all, err := s.GetRange(testLoc, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(all))
	}
	if !all[1].FetchedAt.Equal(now.Add(4 * time.Second)) {
		t.Fatalf("expected newest snapshot to be kept, got %v", all[1].FetchedAt)
	}
}

func TestMemoryStoreTrimReleasesDroppedSnapshots(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.SaveSnapshot(testLoc, snapshotAt(now.Add(time.Duration(i)*time.Second)))

		kept := s.data[testLoc.Key].snapshots
		if len(kept) == 2 && i >= 2 && cap(kept) != len(kept) {
			t.Fatalf("save %d: trimmed history still holds a backing array of %d", i, cap(kept))
		}
	}
}

func TestMemoryStoreRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Now().UTC()

	// A stale snapshot alone is still served.
	s.SaveSnapshot(testLoc, snapshotAt(now.Add(-3*time.Hour)))
	if _, err := s.GetLatest(testLoc); err != nil {
		t.Fatalf("expected stale snapshot to be kept, got %v", err)
	}

	s.SaveSnapshot(testLoc, snapshotAt(now.Add(-2*time.Hour)))
	s.SaveSnapshot(testLoc, snapshotAt(now))

	all, err := s.GetRange(testLoc, now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected stale snapshots to be dropped, got %d", len(all))
	}
}

func TestMemoryStoreRange(t *testing.T) {
	s := NewMemoryStore(0, 0)
	base := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.SaveSnapshot(testLoc, snapshotAt(base.Add(time.Duration(i)*time.Hour)))
	}

	got, err := s.GetRange(testLoc, base.Add(time.Hour), base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots in range, got %d", len(got))
	}

	if _, err := s.GetRange(testLoc, base.Add(5*time.Hour), base.Add(6*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty range, got %v", err)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(5, 0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SaveSnapshot(testLoc, snapshotAt(time.Now().UTC()))
		}()
		go func() {
			defer wg.Done()
			_, _ = s.GetLatest(testLoc)
		}()
	}
	wg.Wait()

	if _, err := s.GetLatest(testLoc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
