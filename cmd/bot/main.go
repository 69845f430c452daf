package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/application/service"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/api"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/cache"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/config"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/db"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/handler"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/middleware"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/telegram"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting Superrich rate tracker", map[string]interface{}{
		"data_file":   cfg.DataFile,
		"scrape_cron": cfg.ScrapeSpec,
		"notify_cron": cfg.NotifySpec,
	})

	// Setup BadgerDB for the subscriber registry
	if err := os.MkdirAll(cfg.BadgerDir, 0755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{
			"dir":   cfg.BadgerDir,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.BadgerDir)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// Initialize repositories
	snapshotRepo := db.NewFileSnapshotRepository(cfg.DataFile, log)
	subscriberRepo := db.NewBadgerSubscriberRepository(badgerDB)

	// Initialize upstream clients
	extractor := api.NewAuthExtractor(cfg.ScriptURL, httpClient)
	rateClient := api.NewSuperrichClient(cfg.APIURL, httpClient)
	sender := telegram.NewClient(cfg.TelegramToken, cfg.TelegramBaseURL, httpClient)

	// Initialize services
	latestCache := cache.NewLatestEntryCache()
	scrapeService := service.NewScrapeService(extractor, rateClient, snapshotRepo, latestCache, log)
	ratesService := service.NewRatesService(snapshotRepo, latestCache, log)
	notifyService := service.NewNotificationService(subscriberRepo, ratesService, sender, cfg.DefaultCurrencies, log)

	// Schedule the scrape run and the daily delivery
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ScrapeSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := scrapeService.RunScrapeOnce(ctx); err != nil {
			log.Error("Scheduled scrape failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}); err != nil {
		log.Fatal("Invalid scrape cron spec", map[string]interface{}{
			"spec":  cfg.ScrapeSpec,
			"error": err.Error(),
		})
	}
	if _, err := scheduler.AddFunc(cfg.NotifySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := notifyService.SendDailyRates(ctx); err != nil {
			log.Error("Daily delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}); err != nil {
		log.Fatal("Invalid notify cron spec", map[string]interface{}{
			"spec":  cfg.NotifySpec,
			"error": err.Error(),
		})
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	ratesHandler := handler.NewRatesHandler(ratesService, log)
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	ratesHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": cfg.HTTPAddr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
