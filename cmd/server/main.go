package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salespulse/internal/delivery"
	"salespulse/internal/infrastructure"
	"salespulse/internal/usecase"
	"salespulse/pkg/config"
	"salespulse/pkg/logger"
	"salespulse/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting server")

	m := metrics.New()

	store := infrastructure.NewSnapshotStore()
	client := infrastructure.NewSheetClient(
		cfg.Feed.SheetCSVURL,
		cfg.Feed.RequestTimeout,
		cfg.Feed.RateLimitPerSecond,
		log,
		m,
	)

	normalizer := usecase.NewNormalizer(log, m)
	ingestService := usecase.NewIngestService(client, store, normalizer, log, m, cfg.Feed.RefreshInterval)
	analyticsService := usecase.NewAnalyticsService(store, log, cfg.Goals.TeamMonthlyGoal)

	handlers := delivery.NewHTTPHandlers(ingestService, analyticsService, log)
	router := delivery.NewHTTPRouter(handlers, log, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go ingestService.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.SetupRoutes(),
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Shutdown failed")
	}
}
