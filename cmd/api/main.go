package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/promopace/promopace-backend/api/controllers"
	"github.com/promopace/promopace-backend/api/routes"
	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/activity"
	"github.com/promopace/promopace-backend/internal/assignments"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/promos"
	"github.com/promopace/promopace-backend/internal/quarters"
	"github.com/promopace/promopace-backend/internal/reps"
	"github.com/promopace/promopace-backend/internal/rollover"
	"github.com/promopace/promopace-backend/internal/standings"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/config"
	"github.com/promopace/promopace-backend/pkg/db"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/mailer"
	"github.com/promopace/promopace-backend/pkg/migrate"
	"github.com/promopace/promopace-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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
	accountsRepo := accounts.NewRepository(gdb)
	repsRepo := reps.NewRepository(gdb)
	promosRepo := promos.NewRepository(gdb)
	quartersRepo := quarters.NewRepository(gdb)
	assignRepo := assignments.NewRepository(gdb)
	txnRepo := transactions.NewRepository(gdb)
	activityRepo := activity.NewRepository(gdb)
	dispatchRepo := dispatch.NewRepository(gdb)
	rolloverRepo := rollover.NewRepository(gdb)

	activitySvc, err := activity.NewService(activityRepo, logg)
	requireService(logg, "activity service", err)

	accountsSvc, err := accounts.NewService(accountsRepo, activitySvc, logg)
	requireService(logg, "accounts service", err)

	repsSvc, err := reps.NewService(repsRepo)
	requireService(logg, "reps service", err)

	promosSvc, err := promos.NewService(promosRepo)
	requireService(logg, "promos service", err)

	quartersSvc, err := quarters.NewService(quartersRepo)
	requireService(logg, "quarters service", err)

	standingsSvc, err := standings.NewService(accountsRepo, assignRepo, txnRepo, quartersRepo, cfg.Pace.FallbackElapsedPct)
	requireService(logg, "standings service", err)

	dispatcher, err := dispatch.NewService(mailClient, dispatchRepo, repsRepo, promosRepo, standingsSvc, logg)
	requireService(logg, "dispatch service", err)

	txnSvc, err := transactions.NewService(txnRepo, assignRepo, activitySvc)
	requireService(logg, "transactions service", err)

	assignSvc, err := assignments.NewService(dbClient, assignRepo, promosRepo, accountsRepo, txnRepo, activitySvc, dispatcher, logg)
	requireService(logg, "assignments service", err)

	rolloverCtl, err := rollover.NewController(rolloverRepo, quartersRepo, cfg.Rollover.ConfirmPhrase, logg)
	requireService(logg, "rollover controller", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,
			Pingers: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
			Accounts:     accountsSvc,
			Reps:         repsSvc,
			RepsRepo:     repsRepo,
			Promos:       promosSvc,
			PromosRepo:   promosRepo,
			Quarters:     quartersSvc,
			Assignments:  assignSvc,
			AssignRepo:   assignRepo,
			AccountsRepo: accountsRepo,
			Transactions: txnSvc,
			Activity:     activitySvc,
			Standings:    standingsSvc,
			Dispatcher:   dispatcher,
			DispatchRepo: dispatchRepo,
			Rollover:     rolloverCtl,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("failed to create %s", name), err)
	os.Exit(1)
}
