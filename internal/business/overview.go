package business

import (
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/business-hours/internal/hours"
)

// BuildSnapshot normalizes a feed into a new snapshot. A feed with a bad day
// or time is rejected as a whole.
func BuildSnapshot(loc Location, source string, feed Feed, fetchedAt time.Time) (Snapshot, error) {
	tl, err := hours.Normalize(feed.Hours)
	if err != nil {
		return Snapshot{}, err
	}
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	return Snapshot{
		ID:           uuid.New(),
		Location:     loc,
		LocationName: feed.LocationName,
		FetchedAt:    fetchedAt.UTC(),
		Source:       source,
		Timeline:     tl,
	}, nil
}

// BuildOverview evaluates the snapshot at q and lays out the weekly rows.
func BuildOverview(snap Snapshot, q hours.QueryInstant) Overview {
	status := hours.FormatStatus(hours.Evaluate(snap.Timeline, q))
	return Overview{
		LocationName: snap.LocationName,
		At:           q,
		Status:       status,
		Color:        status.Class.Color(),
		Rows:         hours.HighlightDay(hours.Group(snap.Timeline), q.Day),
		FetchedAt:    snap.FetchedAt,
		SnapshotID:   snap.ID,
	}
}
