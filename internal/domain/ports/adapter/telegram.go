// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	// SendKeyboard sends text with a persistent reply keyboard; each row is a list of button labels.
	SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error
}
