package repository

import "context"

// Store is a storage backend exposing both repositories plus lifecycle hooks.
type Store interface {
	Subscribers() SubscriberRepository
	Snapshots() SnapshotRepository

	// EnsureSchema creates the tables if they are absent.
	EnsureSchema(ctx context.Context) error
	// Reset truncates both tables. Used by e2e setup only.
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
