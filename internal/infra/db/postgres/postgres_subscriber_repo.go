package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/metrics"
)

var _ repository.SubscriberRepository = (*subscriberRepo)(nil)

type subscriberRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepo(pool *pgxpool.Pool) repository.SubscriberRepository {
	return &subscriberRepo{pool: pool}
}

func (r *subscriberRepo) Add(ctx context.Context, chatID int64) error {
	const q = `
INSERT INTO subscribers (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, q, chatID)
	if err != nil {
		return err
	}
	if inserted(tag) {
		metrics.IncSubscribersRegistered()
	}
	return nil
}

func (r *subscriberRepo) Exists(ctx context.Context, chatID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM subscribers WHERE user_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, chatID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}

func (r *subscriberRepo) ListAll(ctx context.Context) ([]int64, error) {
	const q = `SELECT user_id FROM subscribers ORDER BY id`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// inserted reports whether an ON CONFLICT DO NOTHING insert actually wrote a row.
func inserted(tag pgconn.CommandTag) bool { return tag.RowsAffected() > 0 }
