package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-availability/internal/model"
)

const hotelsJSON = `[
  {
    "id": "H1",
    "name": "Hotel California",
    "roomTypes": [
      {"code": "SGL", "description": "Single Room", "amenities": ["WiFi", "TV"], "features": ["Non-smoking"]},
      {"code": "DBL", "description": "Double Room", "overbooking": true, "amenities": ["WiFi", "TV", "Minibar"], "features": ["Non-smoking", "Sea View"]}
    ],
    "rooms": [
      {"roomType": "SGL", "roomId": "101"},
      {"roomType": "SGL", "roomId": "102"},
      {"roomType": "DBL", "roomId": "201"},
      {"roomType": "DBL", "roomId": "202"}
    ]
  }
]`

const bookingsJSON = `[
  {"hotelId": "H1", "arrival": "20240901", "departure": "20240903", "roomType": "DBL", "roomRate": "Prepaid"},
  {"hotelId": "H1", "arrival": "20240902", "departure": "20240905", "roomType": "SGL", "roomRate": "Standard"}
]`

func TestDecodeHotels(t *testing.T) {
	hotels, err := DecodeHotels(strings.NewReader(hotelsJSON))
	require.NoError(t, err)
	require.Len(t, hotels, 1)

	h := hotels[0]
	assert.Equal(t, "H1", h.ID)
	assert.Equal(t, "Hotel California", h.Name)
	assert.Equal(t, model.RoomType{
		HotelID:     "H1",
		Code:        "DBL",
		Description: "Double Room",
		Overbooking: true,
		Amenities:   []string{"WiFi", "TV", "Minibar"},
		Features:    []string{"Non-smoking", "Sea View"},
	}, h.RoomTypes[1])
	assert.False(t, h.RoomTypes[0].Overbooking)
	assert.Equal(t, model.Room{HotelID: "H1", RoomID: "201", RoomType: "DBL", Seq: 2}, h.Rooms[2])
}

func TestDecodeBookings(t *testing.T) {
	bookings, err := DecodeBookings(strings.NewReader(bookingsJSON))
	require.NoError(t, err)

	assert.Equal(t, []model.Booking{
		{
			HotelID:   "H1",
			RoomType:  "DBL",
			Arrival:   time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			Departure: time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
			RoomRate:  "Prepaid",
		},
		{
			HotelID:   "H1",
			RoomType:  "SGL",
			Arrival:   time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
			Departure: time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
			RoomRate:  "Standard",
		},
	}, bookings)
}

func TestDecodeBookings_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"Bad date", `[{"hotelId":"H1","arrival":"2024-09-01","departure":"20240903","roomType":"SGL"}]`, `unable to convert "2024-09-01"`},
		{"Date not a string", `[{"hotelId":"H1","arrival":20240901,"departure":"20240903","roomType":"SGL"}]`, "failed to decode bookings"},
		{"Not an array", `{"hotelId":"H1"}`, "failed to decode bookings"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBookings(strings.NewReader(tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	hotels, err := DecodeHotels(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, hotels)

	bookings, err := DecodeBookings(strings.NewReader(`[{"hotelId":"H1","arrival":null,"departure":null,"roomType":"SGL"}]`))
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].Arrival.IsZero())
}
