package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRange(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	r := NewDateRange(time.Date(2024, 9, 1, 23, 30, 0, 0, loc), time.Date(2024, 9, 3, 1, 0, 0, 0, time.UTC))

	assert.Equal(t, day("20240901"), r.Start)
	assert.Equal(t, day("20240903"), r.End)
	assert.False(t, r.SingleDay())
	assert.Equal(t, "20240901-20240903", r.String())

	single := DateRange{Start: day("20240901"), End: day("20240901")}
	assert.True(t, single.SingleDay())
	assert.Equal(t, "20240901", single.String())
	assert.Equal(t, day("20240902"), single.stayEnd())
}

func TestBookingQuery_Matches(t *testing.T) {
	q := BookingQuery{HotelID: "H1", RoomType: "SGL", Start: day("20240901"), End: day("20240905")}

	testCases := []struct {
		name     string
		booking  Booking
		expected bool
	}{
		{"Inside", booking("SGL", "20240902", "20240903"), true},
		{"Arrives on the last day", booking("SGL", "20240905", "20240906"), true},
		{"Departs on the first day", booking("SGL", "20240830", "20240901"), false},
		{"Departs the day after start", booking("SGL", "20240830", "20240902"), true},
		{"After the range", booking("SGL", "20240906", "20240907"), false},
		{"Other room type", booking("DBL", "20240902", "20240903"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, q.Matches(tc.booking))
		})
	}
}

func TestInventory_Counts(t *testing.T) {
	inv := newHotel()

	assert.Equal(t, 2, inv.RoomCount("SGL"))
	assert.Equal(t, 0, inv.RoomCount("TRP"))
	assert.Equal(t, map[string]int{"SGL": 2, "DBL": 2}, inv.RoomCounts())
	assert.True(t, inv.AllowsOverbooking("DBL"))
	assert.False(t, inv.AllowsOverbooking("TRP"))
}
