package application

import (
	"context"

	"telegram-schedule-notifier/internal/usecase"
)

// ---- small interfaces to decouple the facade from concrete usecase structs ----
// Using interfaces lets tests pass in light-weight mocks.

type ScheduleUseCaseIface interface {
	GetSchedule(ctx context.Context) (string, error)
}

type SubscriptionUseCaseIface interface {
	Subscribe(ctx context.Context, chatID int64) (usecase.SubscribeResult, error)
}

// Translator resolves message keys; satisfied by *i18n.Translator.
type Translator interface {
	T(key string, args ...interface{}) string
}
