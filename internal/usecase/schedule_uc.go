package usecase

import (
	"context"
	"errors"
	"fmt"

	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/ports/adapter"
	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ScheduleUseCase = (*scheduleUC)(nil)

// CheckOutcome is the result of one change-detection tick.
type CheckOutcome string

const (
	OutcomeUnchanged   CheckOutcome = "unchanged"
	OutcomeChanged     CheckOutcome = "changed"
	OutcomeFetchFailed CheckOutcome = "fetch_failed"
)

type ScheduleUseCase interface {
	// GetSchedule fetches the schedule on demand. The snapshot store is not touched.
	GetSchedule(ctx context.Context) (string, error)
	// CheckForUpdates runs one fetch/compare/broadcast/append cycle.
	// A fetch failure is not an error: it yields OutcomeFetchFailed with no side effects.
	CheckForUpdates(ctx context.Context) (CheckOutcome, error)
}

type scheduleUC struct {
	fetcher      adapter.ScheduleFetcher
	snapshots    repository.SnapshotRepository
	subscribers  repository.SubscriberRepository
	notifier     NotificationUseCase
	updatePrefix string
	log          *zerolog.Logger
}

// NewScheduleUseCase wires the change-detection job. updatePrefix is prepended to
// every broadcast.
func NewScheduleUseCase(
	fetcher adapter.ScheduleFetcher,
	snapshots repository.SnapshotRepository,
	subscribers repository.SubscriberRepository,
	notifier NotificationUseCase,
	updatePrefix string,
	logger *zerolog.Logger,
) ScheduleUseCase {
	return &scheduleUC{
		fetcher:      fetcher,
		snapshots:    snapshots,
		subscribers:  subscribers,
		notifier:     notifier,
		updatePrefix: updatePrefix,
		log:          logger,
	}
}

func (u *scheduleUC) GetSchedule(ctx context.Context) (string, error) {
	defer logging.TraceDuration(u.log, "ScheduleUC.GetSchedule")()
	return u.fetcher.Fetch(ctx)
}

func (u *scheduleUC) CheckForUpdates(ctx context.Context) (CheckOutcome, error) {
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "ScheduleUC.CheckForUpdates")()

	text, err := u.fetcher.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not fetch schedule during check")
		return OutcomeFetchFailed, nil
	}
	if text == "" {
		log.Info().Msg("upstream returned an empty schedule")
	}

	current, err := u.snapshots.Current(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}
	if current.Matches(text) {
		log.Debug().Int64("snapshot_id", current.ID).Msg("schedule unchanged")
		return OutcomeUnchanged, nil
	}

	recipients, err := u.subscribers.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("list subscribers: %w", err)
	}
	u.notifier.Broadcast(ctx, u.updatePrefix+text, recipients)

	// Persisted after the broadcast: a crash in between re-broadcasts on the next tick.
	if err := u.snapshots.Append(ctx, text); err != nil {
		return "", fmt.Errorf("append snapshot: %w", err)
	}
	log.Info().Int("recipients", len(recipients)).Msg("schedule changed; subscribers notified")
	return OutcomeChanged, nil
}
