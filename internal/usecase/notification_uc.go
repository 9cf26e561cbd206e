package usecase

import (
	"context"

	"telegram-schedule-notifier/internal/domain/ports/adapter"
	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ NotificationUseCase = (*notificationUC)(nil)

type NotificationUseCase interface {
	// Broadcast attempts one delivery of text to every recipient, in order.
	// A failed delivery is logged and skipped; nothing is reported back.
	Broadcast(ctx context.Context, text string, recipients []int64)
}

type notificationUC struct {
	bot adapter.TelegramBotAdapter
	log *zerolog.Logger
}

func NewNotificationUseCase(bot adapter.TelegramBotAdapter, logger *zerolog.Logger) NotificationUseCase {
	return &notificationUC{bot: bot, log: logger}
}

func (n *notificationUC) Broadcast(ctx context.Context, text string, recipients []int64) {
	log := logging.With(ctx, n.log)
	failed := 0
	for _, tgID := range recipients {
		if err := n.bot.SendMessage(ctx, tgID, text); err != nil {
			failed++
			metrics.IncNotification("failed")
			log.Warn().Err(err).Int64("tg_id", tgID).Msg("failed to deliver schedule update")
			continue
		}
		metrics.IncNotification("delivered")
	}
	log.Info().Int("recipients", len(recipients)).Int("failed", failed).Msg("broadcast finished")
}
