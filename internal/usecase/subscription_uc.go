package usecase

import (
	"context"

	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscribeResult tells the caller which reply to show.
type SubscribeResult int

const (
	Subscribed SubscribeResult = iota + 1
	AlreadySubscribed
)

type SubscriptionUseCase interface {
	Subscribe(ctx context.Context, chatID int64) (SubscribeResult, error)
}

type subscriptionUC struct {
	subs repository.SubscriberRepository
	log  *zerolog.Logger
}

func NewSubscriptionUseCase(subs repository.SubscriberRepository, logger *zerolog.Logger) SubscriptionUseCase {
	return &subscriptionUC{subs: subs, log: logger}
}

// Subscribe registers chatID once. Add is idempotent, so a race between the
// existence check and the insert still leaves a single row.
func (u *subscriptionUC) Subscribe(ctx context.Context, chatID int64) (SubscribeResult, error) {
	defer logging.TraceDuration(u.log, "SubscriptionUC.Subscribe")()

	sub, err := model.NewSubscriber(chatID)
	if err != nil {
		return 0, err
	}
	exists, err := u.subs.Exists(ctx, sub.ChatID)
	if err != nil {
		return 0, err
	}
	if exists {
		return AlreadySubscribed, nil
	}
	if err := u.subs.Add(ctx, sub.ChatID); err != nil {
		return 0, err
	}
	logging.With(ctx, u.log).Info().Int64("tg_id", chatID).Msg("new subscriber registered")
	return Subscribed, nil
}
