package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-availability/config"
	"hotel-availability/internal/api"
	"hotel-availability/internal/availability"
	"hotel-availability/internal/console"
	"hotel-availability/internal/ingest"
	"hotel-availability/internal/mw"
	"hotel-availability/internal/obs"
	"hotel-availability/internal/store"
)

const usage = "Usage: availabilityd --hotels [path_to_hotels_json_file] --bookings [path_to_bookings_json_file]"

func main() {
	hotels := flag.String("hotels", "", "hotels JSON file, http(s) URL or s3://bucket/key")
	bookings := flag.String("bookings", "", "bookings JSON file, http(s) URL or s3://bucket/key")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of reading commands from stdin")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	// Load configuration
	configPath, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.LoadOrDefault(configPath, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}
	if *hotels != "" {
		cfg.Data.Hotels = *hotels
	}
	if *bookings != "" {
		cfg.Data.Bookings = *bookings
	}

	if cfg.Data.Hotels == "" || cfg.Data.Bookings == "" {
		fmt.Println(usage)
		os.Exit(1)
	}
	for _, location := range []string{cfg.Data.Hotels, cfg.Data.Bookings} {
		if !ingest.Exists(location) {
			fmt.Printf("Cannot load '%s' as it does not exist\n", location)
			os.Exit(1)
		}
	}

	logger := obs.NewLogger(cfg.Log.Env, cfg.Log.Level, os.Stderr)
	slog.SetDefault(logger)

	if err := run(cfg, *serve || cfg.Server.Enabled, logger); err != nil {
		logger.Error("availabilityd stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, serve bool, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	subtraction, err := availability.ParseSubtraction(cfg.Search.Subtraction)
	if err != nil {
		return err
	}

	// Initialize the store
	st, closeStore, err := store.Open(ctx, &cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()
	logger.Info("data store initialized", "driver", cfg.Store.Driver)

	inventory := store.NewCachedInventory(st, cfg.Store.InventoryCacheTTL())
	engine := availability.NewService(inventory, st,
		availability.WithLogger(logger),
		availability.WithSubtraction(subtraction),
	)

	ingestSvc := ingest.NewService(&cfg.Data, st, logger)
	ingestSvc.OnRefresh(inventory.Flush)
	if err := ingestSvc.SyncOnce(ctx); err != nil {
		return fmt.Errorf("initial data load: %w", err)
	}

	if !serve {
		return console.New(engine, time.Now, logger).Run(ctx, os.Stdin, os.Stdout)
	}

	responses := mw.NewResponseCache(cfg.Server.CacheTTL())
	ingestSvc.OnRefresh(responses.Flush)
	go ingestSvc.Run(ctx)

	if cfg.Log.Env != "dev" && cfg.Log.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(engine, st.Ping, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(&cfg.Server, handler, responses, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	logger.Info("server gracefully stopped")
	return <-errCh
}
