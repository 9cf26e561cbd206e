package sqlite

import (
	"context"
	"database/sql"
	"time"

	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/metrics"
)

var _ repository.SubscriberRepository = (*subscriberRepo)(nil)

type subscriberRepo struct {
	db *sql.DB
}

func NewSubscriberRepo(db *sql.DB) repository.SubscriberRepository {
	return &subscriberRepo{db: db}
}

func (r *subscriberRepo) Add(ctx context.Context, chatID int64) error {
	const q = `INSERT OR IGNORE INTO subscribers (user_id, created_at) VALUES (?, ?)`

	res, err := r.db.ExecContext(ctx, q, chatID, time.Now().UnixMilli())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		metrics.IncSubscribersRegistered()
	}
	return nil
}

func (r *subscriberRepo) Exists(ctx context.Context, chatID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM subscribers WHERE user_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, chatID).Scan(&exists); err != nil {
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}

func (r *subscriberRepo) ListAll(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM subscribers ORDER BY id`)
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
