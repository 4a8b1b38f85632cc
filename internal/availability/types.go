package availability

import (
	"context"
	"errors"
	"time"
)

// OverbookingSentinel is reported instead of a count when no rooms are left but the
// room type accepts overbooking and the caller asked for it.
const OverbookingSentinel = -1

// ErrHotelNotFound is returned by an InventoryLookup for an unknown hotel id.
var ErrHotelNotFound = errors.New("availability: hotel not found")

// Booking is a stay of one room of a given type.
type Booking struct {
	HotelID   string
	RoomType  string
	Arrival   time.Time
	Departure time.Time
}

func (b Booking) normalized() Booking {
	b.Arrival = Day(b.Arrival)
	b.Departure = Day(b.Departure)
	return b
}

// Inventory is the read-only room snapshot of a single hotel.
type Inventory struct {
	HotelID string
	// Rooms maps a room type code to its physical room ids in enumeration order.
	Rooms map[string][]string
	// Overbooking maps a room type code to whether it may be booked beyond capacity.
	Overbooking map[string]bool
}

// RoomCount returns the number of physical rooms of the given type.
func (inv Inventory) RoomCount(roomType string) int {
	return len(inv.Rooms[roomType])
}

// RoomCounts returns the room count per room type.
func (inv Inventory) RoomCounts() map[string]int {
	counts := make(map[string]int, len(inv.Rooms))
	for code, rooms := range inv.Rooms {
		counts[code] = len(rooms)
	}
	return counts
}

// AllowsOverbooking reports the overbooking flag of a room type.
func (inv Inventory) AllowsOverbooking(roomType string) bool {
	return inv.Overbooking[roomType]
}

// InventoryLookup resolves the room inventory of a hotel.
type InventoryLookup interface {
	Inventory(ctx context.Context, hotelID string) (Inventory, error)
}

// BookingQuery selects bookings of one room type whose stay touches [Start, End]:
// arrival <= End and departure > Start.
type BookingQuery struct {
	HotelID  string
	RoomType string
	Start    time.Time
	End      time.Time
}

// Matches reports whether b satisfies the query.
func (q BookingQuery) Matches(b Booking) bool {
	return b.HotelID == q.HotelID &&
		b.RoomType == q.RoomType &&
		!b.Arrival.After(q.End) &&
		b.Departure.After(q.Start)
}

// BookingLookup returns the bookings matching a query, in a stable order.
type BookingLookup interface {
	Bookings(ctx context.Context, q BookingQuery) ([]Booking, error)
}

// Command asks for the free-room count of one room type over one date range.
type Command struct {
	HotelID          string
	RoomType         string
	Range            DateRange
	AllowOverbooking bool
}

// Result is a date range annotated with a room count.
type Result struct {
	Range DateRange
	Count int
}

// SearchRequest asks for the free sub-ranges of a room type over a forward horizon.
type SearchRequest struct {
	HotelID   string
	RoomType  string
	DaysAhead int
	// Today is the first day of the horizon.
	Today time.Time
}

// Horizon returns the span [Today, Today+DaysAhead].
func (r SearchRequest) Horizon() DateRange {
	today := Day(r.Today)
	return DateRange{Start: today, End: today.AddDate(0, 0, r.DaysAhead)}
}
