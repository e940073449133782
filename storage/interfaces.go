package storage

import "github.com/masarusaitou/fudousan/models"

// RowSource supplies the raw listing rows for a session. Loading happens
// once per session start; a failed load is fatal for the session.
type RowSource interface {
	Load() ([]models.RawRow, error)
	Close() error
}

// SnapshotWriter persists the canonical listing set after a load.
type SnapshotWriter interface {
	SaveSnapshot(listings []*models.Listing) error
	Close() error
}
