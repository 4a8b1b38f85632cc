package store

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"hotel-availability/internal/availability"
	"hotel-availability/internal/model"
)

var ErrUnsupportedDriver = errors.New("store: unsupported driver")

// Store defines the read and bulk-load operations over hotels and bookings.
type Store interface {
	availability.InventoryLookup
	availability.BookingLookup

	// Replace swaps the whole content of the store for the given dataset.
	Replace(ctx context.Context, ds Dataset) error
	Ping(ctx context.Context) error
}

// Dataset is a complete snapshot of hotels and bookings. Rooms and bookings are kept
// in the order they appear.
type Dataset struct {
	Hotels   []model.Hotel
	Bookings []model.Booking
}

// inventoryOf converts a stored hotel to the engine's view of its rooms.
func inventoryOf(h model.Hotel) availability.Inventory {
	rooms := slices.Clone(h.Rooms)
	slices.SortStableFunc(rooms, func(a, b model.Room) int { return cmp.Compare(a.Seq, b.Seq) })

	inv := availability.Inventory{
		HotelID:     h.ID,
		Rooms:       make(map[string][]string),
		Overbooking: make(map[string]bool, len(h.RoomTypes)),
	}
	for _, rt := range h.RoomTypes {
		inv.Overbooking[rt.Code] = rt.Overbooking
	}
	for _, r := range rooms {
		inv.Rooms[r.RoomType] = append(inv.Rooms[r.RoomType], r.RoomID)
	}
	return inv
}

func bookingOf(b model.Booking) availability.Booking {
	return availability.Booking{
		HotelID:   b.HotelID,
		RoomType:  b.RoomType,
		Arrival:   availability.Day(b.Arrival),
		Departure: availability.Day(b.Departure),
	}
}

// withSeq returns a copy of the hotel whose rooms carry their position as Seq.
func withSeq(h model.Hotel) model.Hotel {
	h.Rooms = slices.Clone(h.Rooms)
	for i := range h.Rooms {
		h.Rooms[i].HotelID = h.ID
		h.Rooms[i].Seq = i
	}
	h.RoomTypes = slices.Clone(h.RoomTypes)
	for i := range h.RoomTypes {
		h.RoomTypes[i].HotelID = h.ID
	}
	return h
}
