// internal/domain/repository/snapshot_repository.go
package repository

import (
	"context"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
)

// SnapshotRepository defines the interface for the daily snapshot store
type SnapshotRepository interface {
	// Load returns the current persisted series. A corrupted document is
	// recovered as an empty series; the corrupt flag reports that strict
	// callers may want to know about it.
	Load(ctx context.Context) (series entity.TimeSeries, corrupt bool, err error)

	// Write stores the snapshot under today's date and prunes entries
	// older than the retention window. Writing twice on the same calendar
	// date keeps only the last snapshot.
	Write(ctx context.Context, snapshot *entity.Snapshot) error

	// Latest returns the most recent entry and, when present, the entry
	// for the prior stored date. Returns nil when the series is empty.
	Latest(ctx context.Context) (*entity.LatestEntry, error)
}
