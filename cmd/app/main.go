// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"telegram-schedule-notifier/internal/application"
	"telegram-schedule-notifier/internal/config"
	"telegram-schedule-notifier/internal/domain/ports/adapter"
	"telegram-schedule-notifier/internal/infra/adapters/schedule"
	tele "telegram-schedule-notifier/internal/infra/adapters/telegram"
	"telegram-schedule-notifier/internal/infra/db"
	httpapi "telegram-schedule-notifier/internal/infra/http"
	"telegram-schedule-notifier/internal/infra/i18n"
	"telegram-schedule-notifier/internal/infra/logging"
	"telegram-schedule-notifier/internal/infra/metrics"
	red "telegram-schedule-notifier/internal/infra/redis"
	"telegram-schedule-notifier/internal/infra/sched"
	"telegram-schedule-notifier/internal/usecase"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted urls)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		zlog.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Store ----
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("store")
	}
	defer store.Close()
	logger.Info().Str("driver", cfg.Database.Driver).Msg("store ready")

	// ---- Redis (optional) ----
	snapshots := store.Snapshots()
	var limiter tele.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		snapshots = red.NewSnapshotRepoCacheDecorator(snapshots, redisClient, cfg.Redis.TTL, logging.Component(logger, "SnapshotCache"))
		limiter = red.NewRateLimiter(redisClient)
		logger.Info().Dur("ttl", cfg.Redis.TTL).Msg("redis cache and rate limiter enabled")
	}

	// ---- Adapters ----
	tr, err := i18n.NewTranslator(i18n.LocalesFS, i18n.DefaultLang)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}
	fetcher, err := schedule.NewClient(cfg.Schedule, cfg.Runtime.Dev, logging.Component(logger, "ScheduleClient"))
	if err != nil {
		logger.Fatal().Err(err).Msg("schedule client")
	}

	var bot adapter.TelegramBotAdapter
	var poller *tele.RealTelegramBotAdapter
	switch strings.ToLower(cfg.Bot.Mode) {
	case "noop":
		bot = tele.NewNoopBotAdapter(logging.Component(logger, "NoopTelegram"))
		logger.Warn().Msg("bot.mode=noop: messages are logged, updates are not polled")
	default:
		if cfg.Bot.Mode != "polling" {
			logger.Warn().Str("mode", cfg.Bot.Mode).Msg("unknown bot.mode; falling back to polling")
		}
		poller, err = tele.NewRealTelegramBotAdapter(&cfg.Bot, tr, limiter, logging.Component(logger, "Telegram"))
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		bot = poller
	}

	// ---- Use cases ----
	notifUC := usecase.NewNotificationUseCase(bot, logging.Component(logger, "NotificationUC"))
	scheduleUC := usecase.NewScheduleUseCase(fetcher, snapshots, store.Subscribers(), notifUC, tr.T("schedule_update_prefix"), logging.Component(logger, "ScheduleUC"))
	subUC := usecase.NewSubscriptionUseCase(store.Subscribers(), logging.Component(logger, "SubscriptionUC"))

	// ---- Facade ----
	facade := application.NewBotFacade(scheduleUC, subUC, tr, logging.Component(logger, "BotFacade"))

	// ---- Telegram polling ----
	if poller != nil {
		go func() {
			if err := poller.StartPolling(ctx, facade); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- Ops HTTP server ----
	var server *httpapi.Server
	if cfg.Admin.Port > 0 {
		server = httpapi.NewServer(cfg.Admin.Port, store, nil, logger, store.ReportPoolStats)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error().Err(err).Msg("http server error")
			}
		}()
	}

	// ---- Schedule worker ----
	worker := sched.NewScheduleWorker(cfg.Schedule.Interval, scheduleUC, logger)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		_ = worker.Run(ctx)
	}()

	// ---- Graceful shutdown ----
	<-ctx.Done()
	logger.Info().Msg("shutdown requested")
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
	}
	<-workerDone
}
