//go:build !integration

package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"telegram-schedule-notifier/internal/domain/model"
)

// mockRedisClient is an in-memory RedisClient; any *Func field overrides the default behavior.
type mockRedisClient struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration

	GetFunc  func(ctx context.Context, key string) (string, error)
	SetFunc  func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc  func(ctx context.Context, keys ...string) error
	IncrFunc func(ctx context.Context, key string) (int64, error)
}

var _ RedisClient = (*mockRedisClient)(nil)

func newMockRedisClient() *mockRedisClient {
	return &mockRedisClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", Nil
	}
	return v, nil
}

func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return nil
}

func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = expiration
	return nil
}

func (m *mockRedisClient) Ping(ctx context.Context) error    { return nil }
func (m *mockRedisClient) FlushDB(ctx context.Context) error { return nil }
func (m *mockRedisClient) Close() error                      { return nil }

// mockInnerSnapshotRepo mocks the storage repository that the cache decorator wraps.
type mockInnerSnapshotRepo struct {
	AppendFunc  func(ctx context.Context, data string) error
	CurrentFunc func(ctx context.Context) (*model.Snapshot, error)
	calls       int
}

func (m *mockInnerSnapshotRepo) Append(ctx context.Context, data string) error {
	return m.AppendFunc(ctx, data)
}

func (m *mockInnerSnapshotRepo) Current(ctx context.Context) (*model.Snapshot, error) {
	m.calls++
	return m.CurrentFunc(ctx)
}
