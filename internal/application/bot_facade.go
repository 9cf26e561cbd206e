package application

import (
	"context"
	"strings"

	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/usecase"

	"github.com/rs/zerolog"
)

// Command names, used for routing, rate-limit keys and metrics.
const (
	CmdStart       = "start"
	CmdGetSchedule = "get_schedule"
	CmdSubscribe   = "subscribe"
)

// Reply is what the transport sends back. Keyboard is nil for plain messages.
type Reply struct {
	Text     string
	Keyboard [][]string
}

// BotFacade composes usecases into high-level bot commands.
// Methods return ready-to-send replies so the Telegram adapter just forwards them.
type BotFacade struct {
	ScheduleUC ScheduleUseCaseIface
	SubUC      SubscriptionUseCaseIface

	tr  Translator
	log *zerolog.Logger
}

func NewBotFacade(scheduleUC ScheduleUseCaseIface, subUC SubscriptionUseCaseIface, tr Translator, logger *zerolog.Logger) *BotFacade {
	return &BotFacade{
		ScheduleUC: scheduleUC,
		SubUC:      subUC,
		tr:         tr,
		log:        logger,
	}
}

// CommandFor maps inbound text to a command. Button labels must match exactly;
// anything unrecognized yields "".
func (b *BotFacade) CommandFor(text string) string {
	if text == "/start" || strings.HasPrefix(text, "/start ") || strings.HasPrefix(text, "/start@") {
		return CmdStart
	}
	switch text {
	case b.tr.T("button_get_schedule"):
		return CmdGetSchedule
	case b.tr.T("button_subscribe"):
		return CmdSubscribe
	}
	return ""
}

// Handle executes cmd for chatID. ok is false for unknown commands.
func (b *BotFacade) Handle(ctx context.Context, cmd string, chatID int64) (reply Reply, ok bool) {
	switch cmd {
	case CmdStart:
		return b.HandleStart(ctx), true
	case CmdGetSchedule:
		return Reply{Text: b.HandleGetSchedule(ctx, chatID)}, true
	case CmdSubscribe:
		return Reply{Text: b.HandleSubscribe(ctx, chatID)}, true
	}
	return Reply{}, false
}

// HandleStart returns the welcome text with the persistent two-button keyboard.
func (b *BotFacade) HandleStart(ctx context.Context) Reply {
	return Reply{
		Text: b.tr.T("welcome_message"),
		Keyboard: [][]string{
			{b.tr.T("button_get_schedule")},
			{b.tr.T("button_subscribe")},
		},
	}
}

// HandleGetSchedule fetches the schedule live. Telegram refuses empty messages,
// so an empty schedule gets the failure text as well.
func (b *BotFacade) HandleGetSchedule(ctx context.Context, chatID int64) string {
	text, err := b.ScheduleUC.GetSchedule(ctx)
	if err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Int64("tg_id", chatID).Msg("on-demand schedule fetch failed")
		return b.tr.T("error_schedule_unavailable")
	}
	if text == "" {
		return b.tr.T("error_schedule_unavailable")
	}
	return text
}

func (b *BotFacade) HandleSubscribe(ctx context.Context, chatID int64) string {
	res, err := b.SubUC.Subscribe(ctx, chatID)
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Int64("tg_id", chatID).Msg("subscribe failed")
		return b.tr.T("error_generic")
	}
	if res == usecase.AlreadySubscribed {
		return b.tr.T("subscribe_already")
	}
	return b.tr.T("subscribe_success")
}
