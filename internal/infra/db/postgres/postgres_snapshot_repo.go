package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/domain/ports/repository"
)

var _ repository.SnapshotRepository = (*snapshotRepo)(nil)

type snapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) repository.SnapshotRepository {
	return &snapshotRepo{pool: pool}
}

func (r *snapshotRepo) Append(ctx context.Context, data string) error {
	const q = `INSERT INTO schedule (data) VALUES ($1)`
	_, err := r.pool.Exec(ctx, q, data)
	return err
}

func (r *snapshotRepo) Current(ctx context.Context) (*model.Snapshot, error) {
	const q = `SELECT id, data, created_at FROM schedule ORDER BY id DESC LIMIT 1`

	var s model.Snapshot
	if err := r.pool.QueryRow(ctx, q).Scan(&s.ID, &s.Data, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
