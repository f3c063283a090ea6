package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"

	"github.com/Proton-105/giftpanel-bot/internal/access"
	"github.com/Proton-105/giftpanel-bot/internal/bot"
	"github.com/Proton-105/giftpanel-bot/internal/database"
	"github.com/Proton-105/giftpanel-bot/internal/health"
	"github.com/Proton-105/giftpanel-bot/internal/idempotency"
	"github.com/Proton-105/giftpanel-bot/internal/jobs"
	jobhandlers "github.com/Proton-105/giftpanel-bot/internal/jobs/handlers"
	"github.com/Proton-105/giftpanel-bot/internal/middleware"
	"github.com/Proton-105/giftpanel-bot/internal/ratelimit"
	"github.com/Proton-105/giftpanel-bot/internal/settings"
	"github.com/Proton-105/giftpanel-bot/pkg/config"
	"github.com/Proton-105/giftpanel-bot/pkg/graceful"
	"github.com/Proton-105/giftpanel-bot/pkg/logger"
	pkgredis "github.com/Proton-105/giftpanel-bot/pkg/redis"

	_ "github.com/lib/pq"
)

const settingsCacheTTL = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(*cfg)
	slog.SetDefault(log)

	log.Info("starting gift panel bot",
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode),
		slog.Int("allowed_users", len(cfg.Access.AllowedUserIDs)))

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Error("sentry init failed", slog.Any("error", err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("error closing database", slog.Any("error", cerr))
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", slog.Any("error", err))
		os.Exit(1)
	}

	migrationsDir := cfg.Database.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.NewMigrator(db, log).ApplyDir(ctx, migrationsDir); err != nil {
		log.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(ctx, pkgredis.Config{
		Addr:            cfg.Redis.Addr,
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
		IdleTimeout:     cfg.Redis.IdleTimeout,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
	})
	if err != nil {
		log.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			log.Error("error closing redis", slog.Any("error", cerr))
		}
	}()

	cache := pkgredis.NewMetricsClient(redisClient)

	store := settings.NewCachedStore(
		settings.NewPostgresStore(db, log),
		cache,
		settingsCacheTTL,
		log,
	)

	policy := access.NewStaticAllowList(cfg.Access.AllowedUserIDs)

	// Edits to the config file swap the allow-list without a restart.
	config.Watch(v, log, func(fresh config.Config) {
		policy.Replace(fresh.Access.AllowedUserIDs)
		log.Info("allow-list reloaded", slog.Int("allowed_users", len(fresh.Access.AllowedUserIDs)))
	})

	deduper := idempotency.NewRedisDeduper(redisClient.Client, log)

	var rateLimitMw *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		var limiter ratelimit.Limiter
		if cfg.RateLimit.Backend == "redis" {
			limiter = ratelimit.NewRedisLimiter(redisClient.Client, log)
		} else {
			limiter = ratelimit.NewMemoryLimiter()
		}
		rateLimitMw = middleware.NewRateLimitMiddleware(limiter, ratelimit.NewRules(cfg.RateLimit), log)
	}

	b, err := bot.New(*cfg, log, policy, store, cache, deduper, rateLimitMw)
	if err != nil {
		log.Error("failed to build bot", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	scheduler := jobs.NewScheduler(redisOpt, log)
	if err := scheduler.RegisterTasks(cfg.Catalog.RefreshCron); err != nil {
		log.Error("failed to register scheduled tasks", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Run()
	defer scheduler.Shutdown()

	worker := jobs.NewWorker(redisOpt, map[string]int{jobs.QueueDefault: 2, jobs.QueueLow: 1}, log)
	worker.RegisterHandler(jobs.TaskTypeCatalogRefresh, jobhandlers.NewCatalogRefreshHandler(b.CatalogLoader(), log))
	go func() {
		if err := worker.Run(); err != nil {
			log.Error("jobs worker stopped", slog.Any("error", err))
		}
	}()
	defer worker.Shutdown()

	checker := health.NewChecker(log)
	checker.AddCheck("database", health.NewDBChecker(db))
	checker.AddCheck("redis", health.NewRedisChecker(redisClient.Client))
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))

	opsServer := graceful.NewOpsServer(log, cfg.Server.Port, checker.Check, cfg.Server.ShutdownTimeout)
	go func() {
		if err := opsServer.Run(ctx); err != nil {
			log.Error("ops server stopped", slog.Any("error", err))
		}
	}()

	go b.Start()
	defer b.Stop()

	<-ctx.Done()

	log.Info("gift panel bot shutting down")
}
