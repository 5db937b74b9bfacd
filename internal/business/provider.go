package business

import (
	"context"
	"time"
)

// Provider abstracts a schedule source (the HTTP bucket, a local directory).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Feed, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot Snapshot)
	GetLatest(loc Location) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
}

// FeedCache keeps the last good raw feed so a restart can serve hours before
// the first fetch completes.
type FeedCache interface {
	SaveFeed(ctx context.Context, loc Location, feed Feed) error
	LoadFeed(ctx context.Context, loc Location) (Feed, error)
}

// Publisher announces status transitions to other services.
type Publisher interface {
	PublishStatusChange(ctx context.Context, change StatusChange) error
}
