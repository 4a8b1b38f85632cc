package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"hotel-availability/internal/availability"
	"hotel-availability/internal/model"
)

// compactDate is a calendar day encoded as "yyyyMMdd".
type compactDate time.Time

func (d *compactDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = compactDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(availability.DateLayout, s)
	if err != nil {
		return fmt.Errorf("unable to convert %q to a date using the format %q", s, "yyyyMMdd")
	}
	*d = compactDate(t)
	return nil
}

// bookingRecord mirrors one entry of the bookings file.
type bookingRecord struct {
	HotelID   string      `json:"hotelId"`
	Arrival   compactDate `json:"arrival"`
	Departure compactDate `json:"departure"`
	RoomType  string      `json:"roomType"`
	RoomRate  string      `json:"roomRate"`
}

// DecodeHotels reads a JSON array of hotels.
func DecodeHotels(r io.Reader) ([]model.Hotel, error) {
	var hotels []model.Hotel
	if err := json.NewDecoder(r).Decode(&hotels); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	for i := range hotels {
		for j := range hotels[i].RoomTypes {
			hotels[i].RoomTypes[j].HotelID = hotels[i].ID
		}
		for j := range hotels[i].Rooms {
			hotels[i].Rooms[j].HotelID = hotels[i].ID
			hotels[i].Rooms[j].Seq = j
		}
	}
	return hotels, nil
}

// DecodeBookings reads a JSON array of bookings with yyyyMMdd dates.
func DecodeBookings(r io.Reader) ([]model.Booking, error) {
	var records []bookingRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]model.Booking, len(records))
	for i, rec := range records {
		bookings[i] = model.Booking{
			HotelID:   rec.HotelID,
			RoomType:  rec.RoomType,
			Arrival:   time.Time(rec.Arrival),
			Departure: time.Time(rec.Departure),
			RoomRate:  rec.RoomRate,
		}
	}
	return bookings, nil
}
