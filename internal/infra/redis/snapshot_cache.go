package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"telegram-schedule-notifier/internal/domain/model"
	"telegram-schedule-notifier/internal/domain/ports/repository"
	"telegram-schedule-notifier/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const currentSnapshotKey = "schedule:current"

var _ repository.SnapshotRepository = (*snapshotRepoCacheDecorator)(nil)

// snapshotRepoCacheDecorator caches Current and invalidates on Append.
// Cache failures fall through to inner, so results match the undecorated repository.
type snapshotRepoCacheDecorator struct {
	inner repository.SnapshotRepository
	cache RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewSnapshotRepoCacheDecorator(inner repository.SnapshotRepository, cache RedisClient, ttl time.Duration, logger *zerolog.Logger) repository.SnapshotRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &snapshotRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl, log: logger}
}

func (d *snapshotRepoCacheDecorator) Current(ctx context.Context) (*model.Snapshot, error) {
	val, err := d.cache.Get(ctx, currentSnapshotKey)
	if err == nil {
		var s model.Snapshot
		if json.Unmarshal([]byte(val), &s) == nil {
			metrics.IncCacheRequest("snapshot", "hit")
			return &s, nil
		}
	} else if !errors.Is(err, Nil) {
		d.log.Warn().Err(err).Msg("snapshot cache read failed")
	}

	metrics.IncCacheRequest("snapshot", "miss")
	s, err := d.inner.Current(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(s); err == nil {
		if err := d.cache.Set(ctx, currentSnapshotKey, b, d.ttl); err != nil {
			d.log.Warn().Err(err).Msg("snapshot cache write failed")
		}
	}
	return s, nil
}

// Append invalidates the cached row before and after writing.
func (d *snapshotRepoCacheDecorator) Append(ctx context.Context, data string) error {
	if err := d.cache.Del(ctx, currentSnapshotKey); err != nil {
		d.log.Warn().Err(err).Msg("snapshot cache invalidation failed")
	}
	if err := d.inner.Append(ctx, data); err != nil {
		return err
	}
	if err := d.cache.Del(ctx, currentSnapshotKey); err != nil {
		d.log.Warn().Err(err).Msg("snapshot cache invalidation failed")
	}
	return nil
}
