package model

import "time"

// Hotel represents a hotel and its room inventory.
type Hotel struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	RoomTypes []RoomType `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"roomTypes"`
	Rooms     []Room     `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"rooms"`
}

// RoomType describes a category of rooms within a hotel.
type RoomType struct {
	HotelID     string   `gorm:"primaryKey;size:64" json:"-"`
	Code        string   `gorm:"primaryKey;size:32" json:"code"`
	Description string   `gorm:"size:512" json:"description"`
	Overbooking bool     `gorm:"not null;default:false" json:"overbooking"`
	Amenities   []string `gorm:"serializer:json;type:text" json:"amenities"`
	Features    []string `gorm:"serializer:json;type:text" json:"features"`
}

// Room is a single physical room.
type Room struct {
	HotelID  string `gorm:"primaryKey;size:64" json:"-"`
	RoomID   string `gorm:"primaryKey;size:32" json:"roomId"`
	RoomType string `gorm:"index;size:32;not null" json:"roomType"`
	Seq      int    `gorm:"not null" json:"-"` // Position in the source file
}
