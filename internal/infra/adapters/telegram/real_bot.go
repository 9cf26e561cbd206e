package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-schedule-notifier/internal/application"
	"telegram-schedule-notifier/internal/config"
	"telegram-schedule-notifier/internal/domain/ports/adapter"
	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/infra/metrics"
	red "telegram-schedule-notifier/internal/infra/redis"
)

const (
	commandLimit  = 20
	commandWindow = time.Minute
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// botAPI is the subset of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RateLimiter is satisfied by *redis.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot         botAPI
	facade      *application.BotFacade
	translator  application.Translator
	rateLimiter RateLimiter
	log         *zerolog.Logger

	updateWorkers int
	mu            sync.Mutex
	cancelPolling context.CancelFunc
}

// NewRealTelegramBotAdapter authenticates against the Bot API. rateLimiter may be nil.
// The facade is supplied to StartPolling, so the adapter can be handed to
// usecases before the facade exists.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, tr application.Translator, rateLimiter RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")
	return newAdapter(bot, nil, tr, rateLimiter, cfg.Workers, logger), nil
}

func newAdapter(bot botAPI, facade *application.BotFacade, tr application.Translator, rateLimiter RateLimiter, workers int, logger *zerolog.Logger) *RealTelegramBotAdapter {
	if workers <= 0 {
		workers = 5
	}
	return &RealTelegramBotAdapter{
		bot:           bot,
		facade:        facade,
		translator:    tr,
		rateLimiter:   rateLimiter,
		log:           logger,
		updateWorkers: workers,
	}
}

// StartPolling routes updates to facade and blocks until ctx is cancelled or
// StopPolling is called.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context, facade *application.BotFacade) error {
	if facade == nil {
		return errors.New("bot facade is nil")
	}
	r.facade = facade

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)
	defer r.bot.StopReceivingUpdates()

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancelPolling = cancel
	r.mu.Unlock()
	defer cancel()

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for up := range updateChan {
				if err := r.handleUpdate(ctx, up); err != nil {
					r.log.Error().Err(err).Int("worker", id).Msg("telegram update failed")
				}
			}
		}(i)
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case up, ok := <-updates:
			if !ok {
				break loop
			}
			select {
			case updateChan <- up:
			case <-ctx.Done():
				break loop
			}
		}
	}
	close(updateChan)
	wg.Wait()
	return ctx.Err()
}

func (r *RealTelegramBotAdapter) StopPolling() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}
	cmd := r.facade.CommandFor(msg.Text)
	if cmd == "" {
		return nil
	}
	chatID := msg.Chat.ID
	ctx = logging.WithTgID(ctx, chatID)
	metrics.IncTelegramCommand(cmd)

	if r.rateLimiter != nil {
		allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(chatID, cmd), commandLimit, commandWindow)
		if err != nil {
			// fail open
			logging.With(ctx, r.log).Warn().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			metrics.IncRateLimitTriggered()
			return r.SendMessage(ctx, chatID, r.translator.T("error_rate_limited"))
		}
	}

	reply, ok := r.facade.Handle(ctx, cmd, chatID)
	if !ok {
		return nil
	}
	if reply.Keyboard != nil {
		return r.SendKeyboard(ctx, chatID, reply.Text, reply.Keyboard)
	}
	return r.SendMessage(ctx, chatID, reply.Text)
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendKeyboard attaches a persistent, resized reply keyboard.
func (r *RealTelegramBotAdapter) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kb := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			btns = append(btns, tgbotapi.NewKeyboardButton(label))
		}
		kb = append(kb, btns)
	}
	markup := tgbotapi.NewReplyKeyboard(kb...)
	markup.ResizeKeyboard = true
	markup.OneTimeKeyboard = false

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, err := r.bot.Send(msg)
	return err
}
