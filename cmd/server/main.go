package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/kitchen"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/pkg/logger"
	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	// A local .env file fills in variables that are not already set
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	slog.SetDefault(log)

	log.Info("starting restaurant front desk server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.Log.Level,
		"tax_rate", cfg.Order.TaxRate.String(),
	)

	catalog, err := loadCatalog(cfg.Catalog, log)
	if err != nil {
		log.Error("failed to load catalog", "file", cfg.Catalog.File, "error", err)
		os.Exit(1)
	}

	// Kitchen board, publishing ticket events when a broker is configured
	var boardOpts []kitchen.BoardOption
	if cfg.Kitchen.AMQPURL != "" {
		publisher, err := kitchen.NewAMQPPublisher(cfg.Kitchen.AMQPURL, cfg.Kitchen.Exchange, log)
		if err != nil {
			log.Error("failed to connect kitchen publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		boardOpts = append(boardOpts, kitchen.WithNotifier(publisher))
		log.Info("kitchen events enabled", "exchange", cfg.Kitchen.Exchange)
	}
	board := kitchen.NewBoard(log, boardOpts...)

	// Initialize services
	menuService := service.NewMenuService(catalog)
	sessionService := service.NewSessionService(catalog, board, cfg.Order.TaxRate, log)

	// Initialize handlers and router
	router := handlers.NewRouter(handlers.Handlers{
		Health:        handlers.NewHealthHandler(version, log),
		Menu:          handlers.NewMenuHandler(menuService, log),
		Orders:        handlers.NewOrderHandler(sessionService, log),
		Customization: handlers.NewCustomizationHandler(sessionService, log),
		Kitchen:       handlers.NewKitchenHandler(board, log),
	}, handlers.RouterOptions{
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("server failed to start", "error", err)
		return
	}

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server stopped gracefully")
}

// loadCatalog reads the YAML menu when one is configured, otherwise the built-in menu
func loadCatalog(cfg config.CatalogConfig, log *slog.Logger) (repository.CatalogRepository, error) {
	if cfg.File == "" {
		log.Info("using built-in catalog")
		return repository.NewInMemoryCatalogRepository(), nil
	}

	repo, err := repository.LoadCatalogFile(cfg.File)
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", "file", cfg.File, "items", len(repo.ListItems("")))
	return repo, nil
}
