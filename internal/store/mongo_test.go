package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"hotel-availability/config"
	"hotel-availability/internal/availability"
)

func TestHotelDocument_RoundTripKeepsRoomOrder(t *testing.T) {
	h := testDataset().Hotels[0]

	doc := newHotelDocument(h)
	assert.Equal(t, "H1", doc.ID)
	assert.Equal(t, []roomDocument{
		{RoomID: "102", RoomType: "SGL"},
		{RoomID: "101", RoomType: "SGL"},
		{RoomID: "201", RoomType: "DBL"},
	}, doc.Rooms)

	assert.Equal(t, availability.Inventory{
		HotelID:     "H1",
		Rooms:       map[string][]string{"SGL": {"102", "101"}, "DBL": {"201"}},
		Overbooking: map[string]bool{"SGL": false, "DBL": true},
	}, inventoryOf(doc.toModel()))
}

func TestBookingDocument(t *testing.T) {
	b := testBooking("H1", "DBL", "20240901", "20240903")

	doc := newBookingDocument(7, b)
	assert.Equal(t, int64(7), doc.Seq)
	assert.Equal(t, b.Arrival.UnixMilli(), doc.Arrival)

	back := doc.toModel()
	assert.True(t, back.Arrival.Equal(b.Arrival))
	assert.True(t, back.Departure.Equal(b.Departure))
	assert.Equal(t, "Prepaid", back.RoomRate)
}

func TestBookingFilter(t *testing.T) {
	q := availability.BookingQuery{HotelID: "H1", RoomType: "SGL", Start: day("20240901"), End: day("20240905")}

	assert.Equal(t, bson.M{
		"hotel_id":  "H1",
		"room_type": "SGL",
		"arrival":   bson.M{"$lte": day("20240905").UnixMilli()},
		"departure": bson.M{"$gt": day("20240901").UnixMilli()},
	}, bookingFilter(q))
}

func TestOpen(t *testing.T) {
	s, closeFn, err := Open(context.Background(), &config.StoreConfig{Driver: "memory"})
	assert.NoError(t, err)
	assert.NotNil(t, s)
	assert.NoError(t, closeFn())

	_, _, err = Open(context.Background(), &config.StoreConfig{Driver: "redis"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
