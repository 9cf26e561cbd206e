package repository

import (
	"context"

	"telegram-schedule-notifier/internal/domain/model"
)

// -----------------------------
// Schedule snapshots
// -----------------------------

// SnapshotRepository is an append-only log of rendered schedules.
type SnapshotRepository interface {
	Append(ctx context.Context, data string) error
	// Current returns the most recently appended snapshot or domain.ErrNotFound.
	Current(ctx context.Context) (*model.Snapshot, error)
}
