package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/grachmannico95/momo-ledger/internal/auth"
	"github.com/grachmannico95/momo-ledger/internal/config"
	"github.com/grachmannico95/momo-ledger/internal/eventbus"
	"github.com/grachmannico95/momo-ledger/internal/handler"
	"github.com/grachmannico95/momo-ledger/internal/metrics"
	"github.com/grachmannico95/momo-ledger/internal/server"
	"github.com/grachmannico95/momo-ledger/internal/service"
	"github.com/grachmannico95/momo-ledger/internal/storage"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting application")

	ledger := storage.NewLedgerStore()
	imports := storage.NewImportStore()
	log.Info(ctx, "Stores initialized")

	m, err := metrics.New(cfg.Metrics.Namespace)
	if err != nil {
		log.Fatal(ctx, "Failed to register metrics",
			"error", err,
		)
	}

	eventBusCfg := &eventbus.Config{
		ChannelBuffer:  cfg.EventBus.ChannelBufferSize,
		MaxRetries:     cfg.Worker.MaxRetries,
		RetryBaseDelay: cfg.Worker.RetryBaseDelay,
	}
	bus := eventbus.New(log, eventBusCfg)

	importConsumer := eventbus.NewImportConsumer(imports, log, cfg.Worker.PoolSize)
	if err := bus.Subscribe(eventbus.EventTypeImportCompleted, importConsumer); err != nil {
		log.Fatal(ctx, "Failed to subscribe consumer",
			"error", err,
		)
	}

	if err := bus.Start(ctx); err != nil {
		log.Fatal(ctx, "Failed to start event bus",
			"error", err,
		)
	}
	log.Info(ctx, "Event bus started",
		"worker_count", cfg.Worker.PoolSize,
	)

	issuer := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)

	xmlProcessor := service.NewXMLProcessor(bus, ledger, imports, m, log)
	importService := service.NewImportService(imports, xmlProcessor, log)
	transactionService := service.NewTransactionService(ledger, m, log)
	authService := service.NewAuthService(ledger, imports, issuer, log)
	log.Info(ctx, "Services initialized")

	seed(ctx, log, importService, cfg.Import.SeedFile)

	handlers := server.Handlers{
		Health:      handler.NewHealthHandler(),
		Auth:        handler.NewAuthHandler(authService, log),
		Transaction: handler.NewTransactionHandler(transactionService, log),
		Import:      handler.NewImportHandler(importService, log),
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = m.Handler()
	}

	srv := server.New(cfg, log, authService, handlers)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	// HTTP first so no new imports arrive while the bus drains.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Event bus shutdown error",
			"error", err,
		)
	}

	log.Info(ctx, "Application stopped gracefully")
}

// seed loads the SMS backup at path, when present, before serving requests.
func seed(ctx context.Context, log *logger.Logger, importService service.ImportService, path string) {
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info(ctx, "No seed file found",
			"path", path,
		)
		return
	}
	if err != nil {
		log.Error(ctx, "Failed to open seed file",
			"path", path,
			"error", err,
		)
		return
	}
	defer f.Close()

	importID, stats, err := importService.ImportSync(ctx, f)
	if err != nil {
		log.Error(logger.WithImportID(ctx, importID), "Seed import failed",
			"path", path,
			"error", err,
		)
		return
	}

	log.Info(logger.WithImportID(ctx, importID), "Loaded seed transactions",
		"path", path,
		"stored", stats.Stored,
	)
}
