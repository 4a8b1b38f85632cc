package api

import (
	"context"
	"log/slog"
	"time"

	"hotel-availability/internal/availability"
)

// Engine answers availability and search queries.
type Engine interface {
	Availability(ctx context.Context, commands []availability.Command) ([]availability.Result, error)
	Search(ctx context.Context, req availability.SearchRequest) ([]availability.Result, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine Engine
	ready  func(ctx context.Context) error
	now    func() time.Time
	logger *slog.Logger
}

// NewHandler creates a new API handler. ready backs the readiness probe and may be nil.
func NewHandler(engine Engine, ready func(ctx context.Context) error, logger *slog.Logger) *Handler {
	return &Handler{
		engine: engine,
		ready:  ready,
		now:    time.Now,
		logger: logger,
	}
}

// resultResponse is one entry of an availability or search response.
type resultResponse struct {
	Range string `json:"range"`
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

func toResponse(results []availability.Result) []resultResponse {
	out := make([]resultResponse, len(results))
	for i, r := range results {
		out[i] = resultResponse{
			Range: r.Range.String(),
			From:  r.Range.Start.Format(availability.DateLayout),
			To:    r.Range.End.Format(availability.DateLayout),
			Count: r.Count,
		}
	}
	return out
}
