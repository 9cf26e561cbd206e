package main

import (
	"context"
	"flag"
	"strconv"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"telegram-schedule-notifier/internal/config"
	"telegram-schedule-notifier/internal/infra/db"
	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/infra/redis"
)

// subscriberList collects repeated -subscriber flags (comma separated values allowed).
type subscriberList []int64

func (s *subscriberList) String() string {
	parts := make([]string, len(*s))
	for i, id := range *s {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func (s *subscriberList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return err
		}
		*s = append(*s, id)
	}
	return nil
}

// This script is for setting up a clean, predictable database state
// for manual end-to-end testing. The next worker tick after it runs
// always broadcasts, since no snapshot is left behind.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	var subs subscriberList
	flag.Var(&subs, "subscriber", "chat id to subscribe after the wipe (repeatable)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load")
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("store connection failed")
	}
	defer store.Close()

	logger.Info().Msg("--- Starting E2E Environment Setup ---")

	// 1. Clean the Redis cache to remove any stale snapshot.
	if cfg.Redis.Enabled() {
		logger.Info().Msg("[1/3] Wiping Redis cache...")
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()
		if err := redisClient.FlushDB(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to flush redis")
		}
	} else {
		logger.Info().Msg("[1/3] Redis not configured, skipping")
	}

	// 2. Clean the database completely.
	logger.Info().Msg("[2/3] Wiping subscribers and schedule snapshots...")
	if err := store.Reset(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to reset store")
	}

	// 3. Seed subscribers given on the command line.
	logger.Info().Int("count", len(subs)).Msg("[3/3] Seeding subscribers...")
	for _, id := range subs {
		if err := store.Subscribers().Add(ctx, id); err != nil {
			logger.Error().Err(err).Int64("tg_id", id).Msg("failed to add subscriber")
		}
	}

	logger.Info().Msg("--- E2E Environment Setup Complete ---")
}
