package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Subtraction selects how a search removes bookings from the free windows of rooms.
type Subtraction string

const (
	// SubtractInterval assigns each booking to the first room free for its whole stay
	// (else the first room it touches) and removes the stay as a generic interval difference.
	SubtractInterval Subtraction = "interval"
	// SubtractFaithful applies each booking to the first room with a window matching one of
	// three shapes: exact match, left-aligned trim or interior split. Other bookings are ignored.
	SubtractFaithful Subtraction = "faithful"
)

var ErrUnknownSubtraction = errors.New("availability: unknown subtraction mode")

// ParseSubtraction parses a configured subtraction mode. Empty selects SubtractFaithful.
func ParseSubtraction(s string) (Subtraction, error) {
	switch Subtraction(strings.ToLower(strings.TrimSpace(s))) {
	case "", SubtractFaithful:
		return SubtractFaithful, nil
	case SubtractInterval:
		return SubtractInterval, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSubtraction, s)
	}
}

// window is a span during which one room is free, from its first free day up to the
// day it must be vacated.
type window struct {
	from time.Time
	to   time.Time
}

func (w window) empty() bool {
	return !w.from.Before(w.to)
}

func (w window) contains(o window) bool {
	return !o.from.Before(w.from) && !o.to.After(w.to)
}

func (w window) overlaps(o window) bool {
	return w.from.Before(o.to) && o.from.Before(w.to)
}

func compareWindows(a, b window) int {
	if c := a.from.Compare(b.from); c != 0 {
		return c
	}
	return a.to.Compare(b.to)
}

// roomWindows is the transient free-window set of one physical room.
type roomWindows struct {
	roomID  string
	windows []window
}

func newRoomWindows(roomIDs []string, horizon DateRange) []*roomWindows {
	rooms := make([]*roomWindows, 0, len(roomIDs))
	for _, id := range roomIDs {
		rooms = append(rooms, &roomWindows{
			roomID:  id,
			windows: []window{{from: horizon.Start, to: horizon.End}},
		})
	}
	return rooms
}

func (r *roomWindows) find(match func(window) bool) int {
	for i, w := range r.windows {
		if match(w) {
			return i
		}
	}
	return -1
}

// replace drops the window at i and appends the replacements after the remaining ones.
func (r *roomWindows) replace(i int, with ...window) {
	r.windows = append(r.windows[:i], r.windows[i+1:]...)
	r.windows = append(r.windows, with...)
}

// subtract removes stay from every window it overlaps, keeping the list sorted.
func (r *roomWindows) subtract(stay window) {
	out := make([]window, 0, len(r.windows)+1)
	for _, w := range r.windows {
		if !w.overlaps(stay) {
			out = append(out, w)
			continue
		}
		if left := (window{from: w.from, to: stay.from}); !left.empty() {
			out = append(out, left)
		}
		if right := (window{from: stay.to, to: w.to}); !right.empty() {
			out = append(out, right)
		}
	}
	r.windows = out
}

func (m Subtraction) apply(rooms []*roomWindows, bookings []Booking, horizon DateRange) {
	if m == SubtractFaithful {
		for _, b := range bookings {
			applyFirstMatch(rooms, b)
		}
		return
	}

	for _, room := range rooms {
		kept := room.windows[:0]
		for _, w := range room.windows {
			if !w.empty() {
				kept = append(kept, w)
			}
		}
		room.windows = kept
	}
	for _, b := range bookings {
		subtractStay(rooms, b, horizon)
	}
}

// applyFirstMatch consumes b against the first room holding a window of a supported shape.
func applyFirstMatch(rooms []*roomWindows, b Booking) bool {
	for _, room := range rooms {
		if i := room.find(func(w window) bool {
			return b.Arrival.Equal(w.from) && b.Departure.Equal(w.to)
		}); i >= 0 {
			room.replace(i)
			return true
		}

		if i := room.find(func(w window) bool {
			return b.Arrival.Equal(w.from) && b.Departure.Before(w.to)
		}); i >= 0 {
			w := room.windows[i]
			room.replace(i, window{from: b.Departure, to: w.to})
			return true
		}

		if i := room.find(func(w window) bool {
			return b.Arrival.After(w.from) && b.Departure.Before(w.to)
		}); i >= 0 {
			w := room.windows[i]
			room.replace(i, window{from: w.from, to: b.Arrival}, window{from: b.Departure, to: w.to})
			return true
		}
	}
	return false
}

// subtractStay removes the part of b inside the horizon from one room.
func subtractStay(rooms []*roomWindows, b Booking, horizon DateRange) bool {
	stay := window{from: b.Arrival, to: b.Departure}
	if stay.from.Before(horizon.Start) {
		stay.from = horizon.Start
	}
	if stay.to.After(horizon.End) {
		stay.to = horizon.End
	}
	if stay.empty() {
		return false
	}

	for _, room := range rooms {
		if room.find(func(w window) bool { return w.contains(stay) }) >= 0 {
			room.subtract(stay)
			return true
		}
	}
	for _, room := range rooms {
		if room.find(func(w window) bool { return w.overlaps(stay) }) >= 0 {
			room.subtract(stay)
			return true
		}
	}
	return false
}
