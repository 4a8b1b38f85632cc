package parse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotel-availability/internal/availability"
)

var (
	ErrInvalidFormat = errors.New("invalid command format")
	ErrInvalidDate   = errors.New("invalid date format")
	ErrInvalidDays   = errors.New("invalid number of days")
)

const (
	availabilityPrefix = "Availability"
	searchPrefix       = "Search"
	overbookingFlag    = "ovb"
	commandSeparator   = "  "
)

var tokenRe = regexp.MustCompile(`[(,)]`)

// LineKind classifies an input line.
type LineKind int

const (
	KindUnknown LineKind = iota
	KindAvailability
	KindSearch
)

// SearchCommand is a parsed Search(...) line. Today is left to the caller.
type SearchCommand struct {
	HotelID   string
	DaysAhead int
	RoomType  string
}

// Kind classifies a line by its command prefix.
func Kind(line string) LineKind {
	switch {
	case strings.HasPrefix(line, availabilityPrefix):
		return KindAvailability
	case strings.HasPrefix(line, searchPrefix):
		return KindSearch
	default:
		return KindUnknown
	}
}

// Date parses a yyyyMMdd string into a UTC calendar day.
func Date(s string) (time.Time, error) {
	t, err := time.Parse(availability.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// AvailabilityLine parses one or more Availability(...) commands separated by two spaces.
// A single bad command rejects the whole line.
func AvailabilityLine(line string) ([]availability.Command, error) {
	var commands []availability.Command
	for _, raw := range splitNonEmpty(line, commandSeparator) {
		parts := tokens(raw)
		if len(parts) < 4 || len(parts) > 5 {
			return nil, ErrInvalidFormat
		}

		dates := []string{parts[2], parts[2]}
		if strings.Contains(parts[2], "-") {
			dates = strings.Split(parts[2], "-")
		}
		start, err := Date(dates[0])
		if err != nil {
			return nil, err
		}
		end, err := Date(dates[1])
		if err != nil {
			return nil, err
		}

		commands = append(commands, availability.Command{
			HotelID:          strings.TrimSpace(parts[1]),
			RoomType:         strings.TrimSpace(parts[3]),
			Range:            availability.DateRange{Start: start, End: end},
			AllowOverbooking: len(parts) == 5 && strings.EqualFold(strings.TrimSpace(parts[4]), overbookingFlag),
		})
	}
	return commands, nil
}

// SearchLine parses a Search(<hotel>, <daysAhead>, <roomType>) line.
func SearchLine(line string) (SearchCommand, error) {
	parts := tokens(line)
	if len(parts) != 4 {
		return SearchCommand{}, ErrInvalidFormat
	}

	days, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return SearchCommand{}, ErrInvalidDays
	}

	return SearchCommand{
		HotelID:   strings.TrimSpace(parts[1]),
		DaysAhead: days,
		RoomType:  strings.TrimSpace(parts[3]),
	}, nil
}

func tokens(s string) []string {
	return dropEmpty(tokenRe.Split(s, -1))
}

func splitNonEmpty(s, sep string) []string {
	return dropEmpty(strings.Split(s, sep))
}

func dropEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
