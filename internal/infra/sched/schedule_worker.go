package sched

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/infra/metrics"
	"telegram-schedule-notifier/internal/usecase"
)

// Checker runs one change-detection tick; satisfied by usecase.ScheduleUseCase.
type Checker interface {
	CheckForUpdates(ctx context.Context) (usecase.CheckOutcome, error)
}

// ScheduleWorker polls the schedule API on a fixed interval and broadcasts changes.
type ScheduleWorker struct {
	interval time.Duration
	checker  Checker
	log      *zerolog.Logger
}

func NewScheduleWorker(interval time.Duration, checker Checker, logger *zerolog.Logger) *ScheduleWorker {
	compLog := logger.With().Str("component", "ScheduleWorker").Logger()
	return &ScheduleWorker{
		interval: interval,
		checker:  checker,
		log:      &compLog,
	}
}

func (w *ScheduleWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting schedule worker")
	// Run once on startup, then on every tick
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping schedule worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *ScheduleWorker) runCheck(ctx context.Context) {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	outcome, err := w.checker.CheckForUpdates(ctx)
	if err != nil {
		metrics.IncScheduleCheck("error")
		logging.With(ctx, w.log).Error().Err(err).Msg("schedule check failed")
		return
	}
	metrics.IncScheduleCheck(string(outcome))
}
