package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/application/service"
	"github.com/damon-houk/treasury-yield-service/internal/domain/repository"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/api"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/config"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/db"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/handler"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/middleware"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
)

func main() {
	configPath := flag.String("config", "", "config file path (optional)")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	appLogger := logger.New(os.Stdout, logger.Level(cfg.Log.Level))
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting treasury yield service", map[string]interface{}{
		"port":    cfg.Server.Port,
		"backend": cfg.Store.Backend,
	})

	// Snapshot store: in-memory by default, badger when the parsed feed
	// should survive restarts
	var store repository.SnapshotStore
	if cfg.Store.Backend == "badger" {
		if err := os.MkdirAll(cfg.Store.Path, 0755); err != nil {
			appLogger.Fatal("Failed to create database directory", map[string]interface{}{
				"path":  cfg.Store.Path,
				"error": err.Error(),
			})
		}

		badgerOpts := badger.DefaultOptions(cfg.Store.Path)
		badgerOpts.Logger = nil // Disable Badger's default logger

		badgerDB, err := badger.Open(badgerOpts)
		if err != nil {
			appLogger.Fatal("Failed to open database", map[string]interface{}{
				"path":  cfg.Store.Path,
				"error": err.Error(),
			})
		}
		defer func() {
			if err := badgerDB.Close(); err != nil {
				appLogger.Error("Error closing BadgerDB", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()

		store = db.NewBadgerSnapshotStore(badgerDB)
	} else {
		store = db.NewMemorySnapshotStore()
	}

	// Feed client and services
	feedClient := api.NewTreasuryFeedClient(cfg.Feed.URLTemplate, &http.Client{Timeout: cfg.Feed.Timeout}, appLogger)
	ingestService := service.NewCurveIngestService(feedClient, store, appLogger)
	ratesService := service.NewRatesService(store, appLogger)

	// Load the configured year's feed up front so the first request does
	// not pay the fetch; a failure is not fatal since POST /rates/refresh
	// can retry later
	year := cfg.Rates.Year
	if year == 0 {
		year = time.Now().Year()
	}
	loadCtx, cancel := context.WithTimeout(context.Background(), 2*cfg.Feed.Timeout)
	if _, _, err := ingestService.LoadYear(loadCtx, year); err != nil {
		appLogger.Warn("Initial feed load failed", map[string]interface{}{
			"year":  year,
			"error": err.Error(),
		})
	}
	cancel()

	// Handlers and router
	ratesHandler := handler.NewRatesHandler(ratesService, ingestService,
		cfg.Rates.NearTermDays, cfg.Rates.NextTermDays, appLogger)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(appLogger))
	ratesHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("Server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down", nil)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
