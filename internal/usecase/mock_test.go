//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"telegram-schedule-notifier/internal/domain"
	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/domain/ports/adapter"
	"telegram-schedule-notifier/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// callLog records the order of side effects across mocks.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(s string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, s)
}

// ---- Mock TelegramBotAdapter ----

type sentMessage struct {
	ChatID int64
	Text   string
}

type MockTelegramBot struct {
	mu   sync.Mutex
	Sent []sentMessage
	log  *callLog

	SendMessageFunc func(ctx context.Context, chatID int64, text string) error
}

var _ adapter.TelegramBotAdapter = (*MockTelegramBot)(nil)

func (m *MockTelegramBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.log.add("send")
	if m.SendMessageFunc != nil {
		if err := m.SendMessageFunc(ctx, chatID, text); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *MockTelegramBot) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	return m.SendMessage(ctx, chatID, text)
}

// ---- Mock ScheduleFetcher ----

type MockFetcher struct {
	Text  string
	Err   error
	Calls int
}

var _ adapter.ScheduleFetcher = (*MockFetcher)(nil)

func (m *MockFetcher) Fetch(ctx context.Context) (string, error) {
	m.Calls++
	return m.Text, m.Err
}

// ---- Mock SubscriberRepository ----

type MockSubscriberRepo struct {
	mu  sync.Mutex
	ids []int64

	AddFunc     func(ctx context.Context, chatID int64) error
	ExistsFunc  func(ctx context.Context, chatID int64) (bool, error)
	ListAllFunc func(ctx context.Context) ([]int64, error)
}

var _ repository.SubscriberRepository = (*MockSubscriberRepo)(nil)

func NewMockSubscriberRepo(ids ...int64) *MockSubscriberRepo {
	return &MockSubscriberRepo{ids: append([]int64(nil), ids...)}
}

func (m *MockSubscriberRepo) Add(ctx context.Context, chatID int64) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, chatID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.ids {
		if id == chatID {
			return nil
		}
	}
	m.ids = append(m.ids, chatID)
	return nil
}

func (m *MockSubscriberRepo) Exists(ctx context.Context, chatID int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, chatID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.ids {
		if id == chatID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSubscriberRepo) ListAll(ctx context.Context) ([]int64, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.ids...), nil
}

// ---- Mock SnapshotRepository ----

type MockSnapshotRepo struct {
	mu   sync.Mutex
	rows []model.Snapshot
	log  *callLog

	AppendFunc  func(ctx context.Context, data string) error
	CurrentFunc func(ctx context.Context) (*model.Snapshot, error)
}

var _ repository.SnapshotRepository = (*MockSnapshotRepo)(nil)

func (m *MockSnapshotRepo) Append(ctx context.Context, data string) error {
	m.log.add("append")
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, model.Snapshot{ID: int64(len(m.rows) + 1), Data: data})
	return nil
}

func (m *MockSnapshotRepo) Current(ctx context.Context) (*model.Snapshot, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, domain.ErrNotFound
	}
	s := m.rows[len(m.rows)-1]
	return &s, nil
}

func (m *MockSnapshotRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
