package availability

import "time"

// DateLayout is the textual calendar-day format used by the data files and the console.
const DateLayout = "20060102"

// DateRange is a span of calendar days. A single-day range has Start == End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange returns the range between the calendar days of start and end.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// SingleDay reports whether the range covers exactly one requested day.
func (r DateRange) SingleDay() bool {
	return r.Start.Equal(r.End)
}

// stayEnd is the exclusive end used for booking overlap. A single day D is the night [D, D+1).
func (r DateRange) stayEnd() time.Time {
	if r.SingleDay() {
		return r.End.AddDate(0, 0, 1)
	}
	return r.End
}

// occupies reports whether a booking holds a room during the requested range.
func (r DateRange) occupies(b Booking) bool {
	return b.Arrival.Before(r.stayEnd()) && b.Departure.After(r.Start)
}

func (r DateRange) String() string {
	if r.SingleDay() {
		return r.Start.Format(DateLayout)
	}
	return r.Start.Format(DateLayout) + "-" + r.End.Format(DateLayout)
}
