package sqlite

import (
	"context"
	"database/sql"

	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/metrics"
)

var _ repository.Store = (*Store)(nil)

// Store bundles the sqlite repositories over one *sql.DB.
// Each repository call is a single autocommitted statement.
type Store struct {
	db          *sql.DB
	subscribers *subscriberRepo
	snapshots   *snapshotRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		subscribers: &subscriberRepo{db: db},
		snapshots:   &snapshotRepo{db: db},
	}
}

func (s *Store) Subscribers() repository.SubscriberRepository { return s.subscribers }
func (s *Store) Snapshots() repository.SnapshotRepository     { return s.snapshots }

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	for _, q := range []string{`DELETE FROM subscribers`, `DELETE FROM schedule`} {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// ReportPoolStats publishes the current database/sql pool state to Prometheus.
func (s *Store) ReportPoolStats() {
	st := s.db.Stats()
	metrics.SetDBPoolStats("sqlite", st.OpenConnections, st.Idle, st.InUse)
}
