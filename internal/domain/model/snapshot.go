package model

import "time"

// Snapshot is one captured rendering of the full schedule text.
// Snapshots are append-only; the current one is the row with the highest ID.
type Snapshot struct {
	ID        int64     `json:"id"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether text is byte-for-byte equal to the snapshot data.
// A nil snapshot (no history yet) never matches.
func (s *Snapshot) Matches(text string) bool {
	return s != nil && s.Data == text
}
