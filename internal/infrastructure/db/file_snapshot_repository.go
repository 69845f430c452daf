// internal/infrastructure/db/file_snapshot_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/damon-houk/superrich-rate-tracker/internal/domain/repository"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/logger"
)

// retentionDays is the trailing window of dates the store retains.
const retentionDays = 14

// CorruptionError indicates the persisted document could not be parsed.
// The store recovers by treating the series as empty; callers see a
// corruption flag, never this error.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("snapshot document %s is corrupted: %v", e.Path, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// FileSnapshotRepository implements the snapshot repository over a single
// JSON document keyed by calendar date. The write path holds an exclusive
// lock for the whole read-modify-prune-write sequence and persists via
// temp-file-plus-rename, so readers never observe a torn document.
type FileSnapshotRepository struct {
	path   string
	mu     sync.Mutex
	logger logger.Logger

	// now is swapped in tests to pin the calendar date
	now func() time.Time
}

// NewFileSnapshotRepository creates a snapshot repository backed by the
// given file path
func NewFileSnapshotRepository(path string, log logger.Logger) repository.SnapshotRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &FileSnapshotRepository{
		path:   path,
		logger: log,
		now:    time.Now,
	}
}

// Load returns the persisted series. A missing file is an empty series; a
// corrupted file is recovered as an empty series with the corrupt flag set,
// favoring availability over strict durability for what is a rolling cache.
func (r *FileSnapshotRepository) Load(ctx context.Context) (entity.TimeSeries, bool, error) {
	series, err := r.read()
	if err == nil {
		return series, false, nil
	}

	if corrErr, ok := err.(*CorruptionError); ok {
		r.logger.Warn("Snapshot document corrupted, starting with an empty series", map[string]interface{}{
			"path":  r.path,
			"error": corrErr.Error(),
		})
		return entity.TimeSeries{}, true, nil
	}

	return nil, false, err
}

// Write stores the snapshot under today's date, prunes entries older than
// the retention window and persists the result atomically.
func (r *FileSnapshotRepository) Write(ctx context.Context, snapshot *entity.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	series, err := r.read()
	if err != nil {
		if _, ok := err.(*CorruptionError); !ok {
			return fmt.Errorf("failed to load series before write: %w", err)
		}
		// Corruption self-heals on the next write
		r.logger.Warn("Overwriting corrupted snapshot document", map[string]interface{}{
			"path": r.path,
		})
		series = entity.TimeSeries{}
	}

	now := r.now()
	today := now.Format(entity.DateFormat)
	series[today] = *snapshot

	pruned := prune(series, now)

	if err := r.persist(series); err != nil {
		return err
	}

	r.logger.Info("Snapshot written", map[string]interface{}{
		"date":       today,
		"currencies": len(snapshot.Rates),
		"pruned":     pruned,
		"retained":   len(series),
	})

	return nil
}

// Latest returns the maximum-date entry and the entry for the prior stored
// date when one exists. An empty series yields nil.
func (r *FileSnapshotRepository) Latest(ctx context.Context) (*entity.LatestEntry, error) {
	series, _, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, nil
	}

	dates := series.Dates()
	entry := &entity.LatestEntry{
		Date:     dates[0],
		Snapshot: series[dates[0]],
	}

	if len(dates) > 1 {
		prev := series[dates[1]]
		entry.PreviousDate = dates[1]
		entry.Previous = &prev
	}

	return entry, nil
}

// read deserializes the current document. Missing file means empty series.
func (r *FileSnapshotRepository) read() (entity.TimeSeries, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return entity.TimeSeries{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot document: %w", err)
	}

	if len(data) == 0 {
		return entity.TimeSeries{}, nil
	}

	var series entity.TimeSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, &CorruptionError{Path: r.path, Err: err}
	}

	return series, nil
}

// persist serializes the series to a temp file in the same directory and
// renames it over the document. Rename is atomic on POSIX, so a concurrent
// reader sees either the old or the new document, never a partial one.
func (r *FileSnapshotRepository) persist(series entity.TimeSeries) error {
	data, err := json.MarshalIndent(series, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal series: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp document: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to flush temp document: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot document: %w", err)
	}

	return nil
}

// prune drops every key dated more than retentionDays before now and
// returns how many entries were removed. Unparseable keys are dropped too;
// they cannot be aged against the window.
func prune(series entity.TimeSeries, now time.Time) int {
	cutoff := now.AddDate(0, 0, -retentionDays).Format(entity.DateFormat)

	removed := 0
	for date := range series {
		if _, err := time.Parse(entity.DateFormat, date); err != nil {
			delete(series, date)
			removed++
			continue
		}
		if date < cutoff {
			delete(series, date)
			removed++
		}
	}

	return removed
}
