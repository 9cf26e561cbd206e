package model

import (
	"time"

	"telegram-schedule-notifier/internal/domain"
)

// Subscriber is a chat registered for schedule change notifications.
// Subscribers are never removed.
type Subscriber struct {
	ChatID       int64
	SubscribedAt time.Time
}

func NewSubscriber(chatID int64) (*Subscriber, error) {
	if chatID == 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscriber{ChatID: chatID, SubscribedAt: time.Now()}, nil
}
