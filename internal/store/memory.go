package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/i474232898/business-hours/internal/business"
)

var (
	// ErrNotFound is returned when no schedule has been loaded for a location.
	ErrNotFound = errors.New("no schedule for location")
)

// snapshotHistory holds the snapshots of one location, oldest first.
type snapshotHistory struct {
	snapshots []business.Snapshot
}

// MemoryStore is a concurrency-safe in-memory snapshot store. Snapshots are
// replaced wholesale; readers get a value and never see a partial update.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key
	data map[string]*snapshotHistory

	maxHistory int           // max number of snapshots per location
	maxAge     time.Duration // optional max age for snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*snapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveSnapshot appends a snapshot for a location and enforces retention. The
// newest snapshot is always kept, whatever its age.
func (s *MemoryStore) SaveSnapshot(loc business.Location, snapshot business.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[loc.Key]
	if !ok {
		history = &snapshotHistory{}
		s.data[loc.Key] = history
	}

	snaps := append(history.snapshots, snapshot)

	if s.maxHistory > 0 && len(snaps) > s.maxHistory {
		snaps = snaps[len(snaps)-s.maxHistory:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(snaps)-1; i++ {
			if !snaps[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		snaps = snaps[i:]
	}

	// Copy out of the old backing array so trimmed snapshots can be collected.
	if len(snaps) <= len(history.snapshots) {
		snaps = slices.Clip(slices.Clone(snaps))
	}
	history.snapshots = snaps
}

// GetLatest returns the most recent snapshot for a location.
func (s *MemoryStore) GetLatest(loc business.Location) (business.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[loc.Key]
	if !ok || len(history.snapshots) == 0 {
		return business.Snapshot{}, ErrNotFound
	}
	return history.snapshots[len(history.snapshots)-1], nil
}

// GetRange returns all snapshots for a location fetched between from and to (inclusive).
func (s *MemoryStore) GetRange(loc business.Location, from, to time.Time) ([]business.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[loc.Key]
	if !ok || len(history.snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []business.Snapshot
	for _, snap := range history.snapshots {
		if !snap.FetchedAt.Before(from) && !snap.FetchedAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
