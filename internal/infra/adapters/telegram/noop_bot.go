package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-schedule-notifier/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev runs.
// It logs messages instead of sending real Telegram messages.
type NoopBotAdapter struct {
	log   *zerolog.Logger
	delay time.Duration
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger, delay: 100 * time.Millisecond}
}

// SendMessage logs the message after a short simulated delay.
func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.log.Info().Int64("tg_id", chatID).Str("text", text).Msg("noop-telegram send")
	return nil
}

func (b *NoopBotAdapter) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.log.Info().Int64("tg_id", chatID).Str("text", text).Interface("keyboard", rows).Msg("noop-telegram send")
	return nil
}

func (b *NoopBotAdapter) wait(ctx context.Context) error {
	select {
	case <-time.After(b.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
