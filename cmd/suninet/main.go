package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suninet/suninet/internal/app"
	"github.com/suninet/suninet/internal/billing"
	"github.com/suninet/suninet/internal/importer"
	"github.com/suninet/suninet/internal/migration"
	"github.com/suninet/suninet/internal/observability"
	"github.com/suninet/suninet/internal/platform/cache"
	"github.com/suninet/suninet/internal/platform/db"
	"github.com/suninet/suninet/internal/pricing"
	"github.com/suninet/suninet/internal/reports"
	"github.com/suninet/suninet/internal/seed"
	"github.com/suninet/suninet/internal/subscribers"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := migration.Run(ctx, dbpool); err != nil {
		logger.Error("apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	if err := seed.Customers(ctx, dbpool); err != nil {
		logger.Error("seed customers", slog.Any("error", err))
		os.Exit(1)
	}

	var statsCache *billing.Cache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, stats served uncached", slog.Any("error", err))
	} else {
		statsCache = billing.NewCache(redisClient, cfg.StatsCacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	table := pricing.Default()
	now := time.Now
	metrics := observability.NewMetrics()

	subscriberRepo := subscribers.NewRepository(dbpool)
	subscriberService := subscribers.NewService(subscriberRepo, statsCache)
	subscriberHandler := subscribers.NewHandler(logger, subscriberService, now)

	billingRepo := billing.NewRepository(dbpool)
	billingService := billing.NewService(billingRepo, table, statsCache)
	billingHandler := billing.NewHandler(logger, billingService, now)

	reportRepo := reports.NewRepository(dbpool)
	reportService := reports.NewService(reportRepo, table)
	reportHandler := reports.NewHandler(logger, reportService, now)

	importRepo := importer.NewRepository(dbpool)
	importService := importer.NewService(logger, importRepo, statsCache)
	importHandler := importer.NewHandler(logger, importService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SubscribersHandler: subscriberHandler,
		BillingHandler:     billingHandler,
		ReportsHandler:     reportHandler,
		ImporterHandler:    importHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
