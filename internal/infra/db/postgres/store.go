package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/metrics"
)

var _ repository.Store = (*Store)(nil)

// Store bundles the Postgres repositories over a shared pool.
// Each repository call runs as its own autocommitted statement.
type Store struct {
	pool        *pgxpool.Pool
	subscribers *subscriberRepo
	snapshots   *snapshotRepo
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:        pool,
		subscribers: &subscriberRepo{pool: pool},
		snapshots:   &snapshotRepo{pool: pool},
	}
}

func (s *Store) Subscribers() repository.SubscriberRepository { return s.subscribers }
func (s *Store) Snapshots() repository.SnapshotRepository     { return s.snapshots }

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE subscribers, schedule RESTART IDENTITY`)
	return err
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// ReportPoolStats publishes the current pool state to Prometheus.
func (s *Store) ReportPoolStats() {
	st := s.pool.Stat()
	metrics.SetDBPoolStats("postgres", int(st.TotalConns()), int(st.IdleConns()), int(st.AcquiredConns()))
}
