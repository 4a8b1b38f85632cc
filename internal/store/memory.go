package store

import (
	"context"
	"sync"

	"hotel-availability/internal/availability"
)

type bookingKey struct {
	hotelID  string
	roomType string
}

// memoryStore keeps the whole dataset in process memory.
type memoryStore struct {
	mu       sync.RWMutex
	hotels   map[string]availability.Inventory
	bookings map[bookingKey][]availability.Booking
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{
		hotels:   make(map[string]availability.Inventory),
		bookings: make(map[bookingKey][]availability.Booking),
	}
}

func (s *memoryStore) Replace(_ context.Context, ds Dataset) error {
	hotels := make(map[string]availability.Inventory, len(ds.Hotels))
	for _, h := range ds.Hotels {
		if _, dup := hotels[h.ID]; dup {
			continue
		}
		hotels[h.ID] = inventoryOf(withSeq(h))
	}

	bookings := make(map[bookingKey][]availability.Booking)
	for _, b := range ds.Bookings {
		key := bookingKey{hotelID: b.HotelID, roomType: b.RoomType}
		bookings[key] = append(bookings[key], bookingOf(b))
	}

	s.mu.Lock()
	s.hotels = hotels
	s.bookings = bookings
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Inventory(_ context.Context, hotelID string) (availability.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.hotels[hotelID]
	if !ok {
		return availability.Inventory{}, availability.ErrHotelNotFound
	}
	return inv, nil
}

func (s *memoryStore) Bookings(_ context.Context, q availability.BookingQuery) ([]availability.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []availability.Booking
	for _, b := range s.bookings[bookingKey{hotelID: q.HotelID, roomType: q.RoomType}] {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memoryStore) Ping(context.Context) error {
	return nil
}
