package repository

import "context"

// -----------------------------
// Subscribers
// -----------------------------

// SubscriberRepository stores the set of chats that receive change notifications.
// Every method is a single self-contained statement; no transaction spans calls.
type SubscriberRepository interface {
	// Add inserts chatID; a duplicate is a no-op, not an error.
	Add(ctx context.Context, chatID int64) error
	Exists(ctx context.Context, chatID int64) (bool, error)
	// ListAll returns every subscriber in subscription order.
	ListAll(ctx context.Context) ([]int64, error)
}
