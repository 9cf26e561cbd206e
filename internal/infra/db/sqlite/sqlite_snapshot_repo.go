package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/domain/ports/repository"
)

var _ repository.SnapshotRepository = (*snapshotRepo)(nil)

type snapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) repository.SnapshotRepository {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) Append(ctx context.Context, data string) error {
	const q = `INSERT INTO schedule (data, created_at) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, data, time.Now().UnixMilli())
	return err
}

func (r *snapshotRepo) Current(ctx context.Context) (*model.Snapshot, error) {
	const q = `SELECT id, data, created_at FROM schedule ORDER BY id DESC LIMIT 1`

	var (
		s       model.Snapshot
		created int64
	)
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.ID, &s.Data, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.CreatedAt = time.UnixMilli(created)
	return &s, nil
}
