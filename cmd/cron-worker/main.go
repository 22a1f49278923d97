package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/assignments"
	"github.com/promopace/promopace-backend/internal/cron"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/promos"
	"github.com/promopace/promopace-backend/internal/quarters"
	"github.com/promopace/promopace-backend/internal/reps"
	"github.com/promopace/promopace-backend/internal/standings"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/config"
	"github.com/promopace/promopace-backend/pkg/db"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/mailer"
	"github.com/promopace/promopace-backend/pkg/metrics"
	"github.com/promopace/promopace-backend/pkg/migrate"
	"github.com/promopace/promopace-backend/pkg/redis"
)

const lockKeyFormat = "pp:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mailClient, err := mailer.NewClient(context.Background(), cfg.Mailer, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail client", err)
		os.Exit(1)
	}

	gdb := dbClient.DB()
	repsRepo := reps.NewRepository(gdb)
	promosRepo := promos.NewRepository(gdb)
	dispatchRepo := dispatch.NewRepository(gdb)

	standingsSvc, err := standings.NewService(
		accounts.NewRepository(gdb),
		assignments.NewRepository(gdb),
		transactions.NewRepository(gdb),
		quarters.NewRepository(gdb),
		cfg.Pace.FallbackElapsedPct,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create standings service", err)
		os.Exit(1)
	}

	dispatcher, err := dispatch.NewService(mailClient, dispatchRepo, repsRepo, promosRepo, standingsSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create dispatch service", err)
		os.Exit(1)
	}

	summaryJob, err := cron.NewWeeklySummaryJob(cron.WeeklySummaryJobParams{
		Logger:     logg,
		Dispatcher: dispatcher,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create weekly summary job", err)
		os.Exit(1)
	}

	cleanupJob, err := cron.NewNotificationLogCleanupJob(cron.NotificationLogCleanupJobParams{
		Logger:     logg,
		Repository: dispatchRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification log cleanup job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(summaryJob, cleanupJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
