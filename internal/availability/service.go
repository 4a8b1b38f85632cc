package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service answers availability and search queries over the data exposed by its lookups.
// It keeps no state between calls.
type Service struct {
	inventory   InventoryLookup
	bookings    BookingLookup
	subtraction Subtraction
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report unknown hotels.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithSubtraction selects how bookings are removed from free windows during a search.
func WithSubtraction(mode Subtraction) Option {
	return func(s *Service) { s.subtraction = mode }
}

// NewService creates a Service reading from the given lookups.
func NewService(inventory InventoryLookup, bookings BookingLookup, opts ...Option) *Service {
	s := &Service{
		inventory:   inventory,
		bookings:    bookings,
		subtraction: SubtractFaithful,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Availability resolves each command to a free-room count. Commands with no rooms left are
// dropped unless overbooking applies, in which case OverbookingSentinel is reported.
// An unknown hotel anywhere in the batch yields an empty result for the whole batch.
func (s *Service) Availability(ctx context.Context, commands []Command) ([]Result, error) {
	inventories := make(map[string]Inventory)
	results := make([]Result, 0, len(commands))

	for _, cmd := range commands {
		inv, ok := inventories[cmd.HotelID]
		if !ok {
			var err error
			inv, err = s.inventory.Inventory(ctx, cmd.HotelID)
			if errors.Is(err, ErrHotelNotFound) {
				s.logger.Warn("hotel not found, dropping availability batch", "hotel_id", cmd.HotelID, "commands", len(commands))
				return []Result{}, nil
			}
			if err != nil {
				return nil, fmt.Errorf("inventory for hotel %q: %w", cmd.HotelID, err)
			}
			inventories[cmd.HotelID] = inv
		}

		count, ok, err := s.resolve(ctx, inv, cmd)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, Result{Range: cmd.Range, Count: count})
		}
	}
	return results, nil
}

// resolve computes the reported count of one command; ok is false when the command is dropped.
func (s *Service) resolve(ctx context.Context, inv Inventory, cmd Command) (count int, ok bool, err error) {
	candidates, err := s.bookings.Bookings(ctx, BookingQuery{
		HotelID:  cmd.HotelID,
		RoomType: cmd.RoomType,
		Start:    cmd.Range.Start,
		End:      cmd.Range.End,
	})
	if err != nil {
		return 0, false, fmt.Errorf("bookings for %s/%s: %w", cmd.HotelID, cmd.RoomType, err)
	}

	booked := 0
	for _, b := range candidates {
		b = b.normalized()
		if b.HotelID == cmd.HotelID && b.RoomType == cmd.RoomType && cmd.Range.occupies(b) {
			booked++
		}
	}

	free := inv.RoomCount(cmd.RoomType) - booked
	switch {
	case free > 0:
		return free, true, nil
	case inv.AllowsOverbooking(cmd.RoomType) && cmd.AllowOverbooking:
		return OverbookingSentinel, true, nil
	default:
		return 0, false, nil
	}
}

// Search returns the distinct free date ranges of a room type over the request horizon,
// each annotated with the number of rooms free for exactly that range. An unknown hotel
// yields an empty result.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]Result, error) {
	if req.DaysAhead < 0 {
		return []Result{}, nil
	}

	inv, err := s.inventory.Inventory(ctx, req.HotelID)
	if errors.Is(err, ErrHotelNotFound) {
		s.logger.Warn("hotel not found, empty search", "hotel_id", req.HotelID)
		return []Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inventory for hotel %q: %w", req.HotelID, err)
	}

	horizon := req.Horizon()
	query := BookingQuery{
		HotelID:  req.HotelID,
		RoomType: req.RoomType,
		Start:    horizon.Start,
		End:      horizon.End,
	}
	candidates, err := s.bookings.Bookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bookings for %s/%s: %w", req.HotelID, req.RoomType, err)
	}

	bookings := make([]Booking, 0, len(candidates))
	for _, b := range candidates {
		b = b.normalized()
		if query.Matches(b) {
			bookings = append(bookings, b)
		}
	}

	rooms := newRoomWindows(inv.Rooms[req.RoomType], horizon)
	s.subtraction.apply(rooms, bookings, horizon)

	return aggregate(rooms), nil
}
