package business

import (
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/business-hours/internal/hours"
)

// Location is a business whose hours we track. Path is resolved against the
// feed base URL (or feed directory) to find its schedule document.
type Location struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

// Feed is the schedule document as published by the upstream bucket.
type Feed struct {
	LocationName string              `json:"location_name"`
	Hours        []hours.RawInterval `json:"hours"`
}

// Snapshot is one successfully normalized feed. Snapshots are never modified
// after they are stored; a refetch produces a new one.
type Snapshot struct {
	ID           uuid.UUID      `json:"id"`
	Location     Location       `json:"location"`
	LocationName string         `json:"locationName"`
	FetchedAt    time.Time      `json:"fetchedAt"` // always UTC
	Source       string         `json:"source"`
	Timeline     hours.Timeline `json:"-"`
}

// Overview is everything the schedule screen shows for one instant: the
// header line and the weekly rows with today highlighted.
type Overview struct {
	LocationName string             `json:"locationName"`
	At           hours.QueryInstant `json:"at"`
	Status       hours.Status       `json:"status"`
	Color        string             `json:"color"`
	Rows         []hours.Row        `json:"rows"`
	FetchedAt    time.Time          `json:"fetchedAt"`
	SnapshotID   uuid.UUID          `json:"snapshotId"`
}

// StatusChange is emitted when a location moves between open, closing soon
// and closed.
type StatusChange struct {
	ID           uuid.UUID         `json:"id"`
	Location     string            `json:"location"`
	LocationName string            `json:"locationName"`
	From         hours.StatusClass `json:"from"`
	To           hours.StatusClass `json:"to"`
	Text         string            `json:"text"`
	At           time.Time         `json:"at"`
}
