package adapter

import "context"

// ScheduleFetcher retrieves the current schedule rendered as opaque text.
// Any error means "no update available this cycle".
type ScheduleFetcher interface {
	Fetch(ctx context.Context) (string, error)
}
