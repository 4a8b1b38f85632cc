package model

import "time"

// Booking is a stay of one room of a given type. Dates are calendar days in UTC.
type Booking struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	HotelID   string    `gorm:"size:64;not null;index:idx_booking_lookup,priority:1"`
	RoomType  string    `gorm:"size:32;not null;index:idx_booking_lookup,priority:2"`
	Arrival   time.Time `gorm:"not null;index:idx_booking_lookup,priority:3"`
	Departure time.Time `gorm:"not null"`
	RoomRate  string    `gorm:"size:32"`
}
