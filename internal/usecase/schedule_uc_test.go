//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/usecase"
)

const prefix = "Обновление расписания:\n\n"

func newScheduleUC(f *MockFetcher, snaps *MockSnapshotRepo, subs *MockSubscriberRepo, bot *MockTelegramBot) usecase.ScheduleUseCase {
	logger := newTestLogger()
	notifier := usecase.NewNotificationUseCase(bot, logger)
	return usecase.NewScheduleUseCase(f, snaps, subs, notifier, prefix, logger)
}

func TestScheduleUseCase_CheckForUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("first run broadcasts and stores the snapshot", func(t *testing.T) {
		order := &callLog{}
		bot := &MockTelegramBot{log: order}
		snaps := &MockSnapshotRepo{log: order}
		subs := NewMockSubscriberRepo(1, 2)
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, subs, bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeChanged, outcome)
		require.Len(t, bot.Sent, 2)
		assert.Equal(t, int64(1), bot.Sent[0].ChatID)
		assert.Equal(t, int64(2), bot.Sent[1].ChatID)
		assert.Equal(t, prefix+"T1", bot.Sent[0].Text)
		assert.Equal(t, 1, snaps.count())
		assert.Equal(t, []string{"send", "send", "append"}, order.calls)
	})

	t.Run("unchanged text has no side effects", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{}
		require.NoError(t, snaps.Append(ctx, "T1"))
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, NewMockSubscriberRepo(1), bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeUnchanged, outcome)
		assert.Empty(t, bot.Sent)
		assert.Equal(t, 1, snaps.count())
	})

	t.Run("changed text is compared against the latest row only", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{}
		require.NoError(t, snaps.Append(ctx, "T1"))
		require.NoError(t, snaps.Append(ctx, "T2"))
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, NewMockSubscriberRepo(7), bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeChanged, outcome)
		require.Len(t, bot.Sent, 1)
		assert.Equal(t, 3, snaps.count())

		cur, err := snaps.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "T1", cur.Data)
	})

	t.Run("failed delivery does not stop the broadcast", func(t *testing.T) {
		bot := &MockTelegramBot{SendMessageFunc: func(ctx context.Context, chatID int64, text string) error {
			if chatID == 2 {
				return errors.New("bot was blocked by the user")
			}
			return nil
		}}
		snaps := &MockSnapshotRepo{}
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, NewMockSubscriberRepo(1, 2, 3), bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeChanged, outcome)
		require.Len(t, bot.Sent, 2)
		assert.Equal(t, int64(1), bot.Sent[0].ChatID)
		assert.Equal(t, int64(3), bot.Sent[1].ChatID)
		assert.Equal(t, 1, snaps.count())
	})

	t.Run("fetch failure is skipped", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{}
		require.NoError(t, snaps.Append(ctx, "T1"))
		uc := newScheduleUC(&MockFetcher{Err: errors.New("connection refused")}, snaps, NewMockSubscriberRepo(1), bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeFetchFailed, outcome)
		assert.Empty(t, bot.Sent)
		assert.Equal(t, 1, snaps.count())
	})

	t.Run("empty text is a valid snapshot", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{}
		require.NoError(t, snaps.Append(ctx, "T1"))
		uc := newScheduleUC(&MockFetcher{Text: ""}, snaps, NewMockSubscriberRepo(1), bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeChanged, outcome)
		require.Len(t, bot.Sent, 1)
		assert.Equal(t, prefix, bot.Sent[0].Text)

		outcome, err = uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeUnchanged, outcome)
	})

	t.Run("no subscribers still records the snapshot", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{}
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, NewMockSubscriberRepo(), bot)

		outcome, err := uc.CheckForUpdates(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeChanged, outcome)
		assert.Empty(t, bot.Sent)
		assert.Equal(t, 1, snaps.count())
	})

	t.Run("store errors abort the tick", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{CurrentFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return nil, errors.New("disk I/O error")
		}}
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, NewMockSubscriberRepo(1), bot)

		_, err := uc.CheckForUpdates(ctx)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "read current snapshot"))
		assert.Empty(t, bot.Sent)
	})

	t.Run("append failure is reported after delivery", func(t *testing.T) {
		bot := &MockTelegramBot{}
		snaps := &MockSnapshotRepo{AppendFunc: func(ctx context.Context, data string) error {
			return errors.New("database is locked")
		}}
		uc := newScheduleUC(&MockFetcher{Text: "T1"}, snaps, NewMockSubscriberRepo(1), bot)

		_, err := uc.CheckForUpdates(ctx)
		require.Error(t, err)
		assert.Len(t, bot.Sent, 1)
	})
}

func TestScheduleUseCase_GetSchedule(t *testing.T) {
	ctx := context.Background()
	snaps := &MockSnapshotRepo{}
	f := &MockFetcher{Text: "Понедельник:\nМатематика (Кабинет: 101)"}
	uc := newScheduleUC(f, snaps, NewMockSubscriberRepo(), &MockTelegramBot{})

	text, err := uc.GetSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.Text, text)
	assert.Equal(t, 1, f.Calls)
	assert.Equal(t, 0, snaps.count(), "on-demand fetch must not touch the snapshot store")

	f.Err = errors.New("timeout")
	_, err = uc.GetSchedule(ctx)
	assert.Error(t, err)
}
