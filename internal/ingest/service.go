package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hotel-availability/config"
	"hotel-availability/internal/store"
)

// Service loads the hotel and booking sources into a store and keeps them fresh.
type Service struct {
	cfg     *config.DataConfig
	store   store.Store
	fetcher *Fetcher
	logger  *slog.Logger
	hooks   []func()
}

// NewService creates a new ingestion service.
func NewService(cfg *config.DataConfig, st store.Store, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		store:   st,
		fetcher: NewFetcher(*cfg),
		logger:  logger,
	}
}

// OnRefresh registers fn to run after every successful load.
func (s *Service) OnRefresh(fn func()) {
	s.hooks = append(s.hooks, fn)
}

// SyncOnce loads both sources and replaces the store content. On any failure the
// store keeps its previous content.
func (s *Service) SyncOnce(ctx context.Context) error {
	start := time.Now()

	hotelsFile, err := s.fetcher.Open(ctx, s.cfg.Hotels)
	if err != nil {
		return fmt.Errorf("hotels: %w", err)
	}
	defer hotelsFile.Close()
	hotels, err := DecodeHotels(hotelsFile)
	if err != nil {
		return fmt.Errorf("error loading file %s: %w", s.cfg.Hotels, err)
	}

	bookingsFile, err := s.fetcher.Open(ctx, s.cfg.Bookings)
	if err != nil {
		return fmt.Errorf("bookings: %w", err)
	}
	defer bookingsFile.Close()
	bookings, err := DecodeBookings(bookingsFile)
	if err != nil {
		return fmt.Errorf("error loading file %s: %w", s.cfg.Bookings, err)
	}

	if err := s.store.Replace(ctx, store.Dataset{Hotels: hotels, Bookings: bookings}); err != nil {
		return fmt.Errorf("failed to replace store content: %w", err)
	}

	for _, hook := range s.hooks {
		hook()
	}

	s.logger.Info("data loaded",
		"hotels", len(hotels),
		"bookings", len(bookings),
		"took", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// Run reloads the sources every refresh interval until ctx is done. Failed reloads are
// logged and retried on the next tick.
func (s *Service) Run(ctx context.Context) {
	interval := s.cfg.RefreshInterval
	if interval <= 0 {
		s.logger.Info("data refresh is disabled")
		return
	}
	s.logger.Info("starting data refresh", "interval", interval)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("data refresh shutting down")
			return
		case <-timer.C:
			if err := s.SyncOnce(ctx); err != nil {
				s.logger.Error("data refresh failed", "error", err)
			}
			timer.Reset(interval)
		}
	}
}
