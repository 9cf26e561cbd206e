//go:build !integration

package sched

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/usecase"
)

type mockChecker struct {
	mu       sync.Mutex
	calls    int
	traceIDs []string
	err      error
}

func (m *mockChecker) CheckForUpdates(ctx context.Context) (usecase.CheckOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.traceIDs = append(m.traceIDs, logging.TraceIDFrom(ctx))
	if m.err != nil {
		return "", m.err
	}
	return usecase.OutcomeUnchanged, nil
}

func (m *mockChecker) snapshot() (int, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, append([]string(nil), m.traceIDs...)
}

func newWorker(interval time.Duration, c Checker) *ScheduleWorker {
	logger := zerolog.New(io.Discard)
	return NewScheduleWorker(interval, c, &logger)
}

func TestScheduleWorker_RunsImmediately(t *testing.T) {
	c := &mockChecker{}
	w := newWorker(time.Hour, c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if n, _ := c.snapshot(); n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first check did not run before the first tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestScheduleWorker_TicksWithFreshTraceIDs(t *testing.T) {
	c := &mockChecker{err: errors.New("store unavailable")}
	w := newWorker(10*time.Millisecond, c)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for {
		if n, _ := c.snapshot(); n >= 3 {
			break
		}
		select {
		case <-ctx.Done():
			t.Fatal("worker did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	_, ids := c.snapshot()
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" {
			t.Fatal("tick ran without a trace id")
		}
		if seen[id] {
			t.Fatalf("trace id %s reused across ticks", id)
		}
		seen[id] = true
	}
}
