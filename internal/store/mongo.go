package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel-availability/internal/availability"
	"hotel-availability/internal/model"
)

type mongoStore struct {
	db       *mongo.Database
	hotels   *mongo.Collection
	bookings *mongo.Collection
}

// NewMongoStore creates a store over the hotels and bookings collections of db.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{
		db:       db,
		hotels:   db.Collection("hotels"),
		bookings: db.Collection("bookings"),
	}
}

// EnsureIndexes creates the booking lookup index.
func (s *mongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "hotel_id", Value: 1}, {Key: "room_type", Value: 1}, {Key: "arrival", Value: 1}},
	})
	return err
}

// Replace clears both collections and inserts the dataset. Readers may observe a partially
// loaded dataset while it runs.
func (s *mongoStore) Replace(ctx context.Context, ds Dataset) error {
	hotelDocs := make([]any, 0, len(ds.Hotels))
	seen := make(map[string]bool, len(ds.Hotels))
	for _, h := range ds.Hotels {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		hotelDocs = append(hotelDocs, newHotelDocument(h))
	}
	bookingDocs := make([]any, len(ds.Bookings))
	for i, b := range ds.Bookings {
		bookingDocs[i] = newBookingDocument(int64(i), b)
	}

	if _, err := s.hotels.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo: clear hotels: %w", err)
	}
	if _, err := s.bookings.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo: clear bookings: %w", err)
	}
	if len(hotelDocs) > 0 {
		if _, err := s.hotels.InsertMany(ctx, hotelDocs); err != nil {
			return fmt.Errorf("mongo: insert hotels: %w", err)
		}
	}
	if len(bookingDocs) > 0 {
		if _, err := s.bookings.InsertMany(ctx, bookingDocs, options.InsertMany().SetOrdered(false)); err != nil {
			return fmt.Errorf("mongo: insert bookings: %w", err)
		}
	}
	return nil
}

func (s *mongoStore) Inventory(ctx context.Context, hotelID string) (availability.Inventory, error) {
	var doc hotelDocument
	err := s.hotels.FindOne(ctx, bson.M{"_id": hotelID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return availability.Inventory{}, availability.ErrHotelNotFound
	}
	if err != nil {
		return availability.Inventory{}, fmt.Errorf("mongo: find hotel %q: %w", hotelID, err)
	}
	return inventoryOf(doc.toModel()), nil
}

func (s *mongoStore) Bookings(ctx context.Context, q availability.BookingQuery) ([]availability.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := s.bookings.Find(ctx, bookingFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find bookings: %w", err)
	}
	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode bookings: %w", err)
	}

	out := make([]availability.Booking, len(docs))
	for i, d := range docs {
		out[i] = bookingOf(d.toModel())
	}
	return out, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func bookingFilter(q availability.BookingQuery) bson.M {
	return bson.M{
		"hotel_id":  q.HotelID,
		"room_type": q.RoomType,
		"arrival":   bson.M{"$lte": q.End.UnixMilli()},
		"departure": bson.M{"$gt": q.Start.UnixMilli()},
	}
}

type hotelDocument struct {
	ID        string             `bson:"_id"`
	Name      string             `bson:"name"`
	RoomTypes []roomTypeDocument `bson:"room_types"`
	Rooms     []roomDocument     `bson:"rooms"`
}

type roomTypeDocument struct {
	Code        string   `bson:"code"`
	Description string   `bson:"description"`
	Overbooking bool     `bson:"overbooking"`
	Amenities   []string `bson:"amenities,omitempty"`
	Features    []string `bson:"features,omitempty"`
}

type roomDocument struct {
	RoomID   string `bson:"room_id"`
	RoomType string `bson:"room_type"`
}

func newHotelDocument(h model.Hotel) hotelDocument {
	doc := hotelDocument{
		ID:        h.ID,
		Name:      h.Name,
		RoomTypes: make([]roomTypeDocument, len(h.RoomTypes)),
		Rooms:     make([]roomDocument, len(h.Rooms)),
	}
	for i, rt := range h.RoomTypes {
		doc.RoomTypes[i] = roomTypeDocument{
			Code:        rt.Code,
			Description: rt.Description,
			Overbooking: rt.Overbooking,
			Amenities:   rt.Amenities,
			Features:    rt.Features,
		}
	}
	for i, r := range h.Rooms {
		doc.Rooms[i] = roomDocument{RoomID: r.RoomID, RoomType: r.RoomType}
	}
	return doc
}

// toModel rebuilds the hotel with rooms numbered in stored order.
func (d hotelDocument) toModel() model.Hotel {
	h := model.Hotel{
		ID:        d.ID,
		Name:      d.Name,
		RoomTypes: make([]model.RoomType, len(d.RoomTypes)),
		Rooms:     make([]model.Room, len(d.Rooms)),
	}
	for i, rt := range d.RoomTypes {
		h.RoomTypes[i] = model.RoomType{
			HotelID:     d.ID,
			Code:        rt.Code,
			Description: rt.Description,
			Overbooking: rt.Overbooking,
			Amenities:   rt.Amenities,
			Features:    rt.Features,
		}
	}
	for i, r := range d.Rooms {
		h.Rooms[i] = model.Room{HotelID: d.ID, RoomID: r.RoomID, RoomType: r.RoomType, Seq: i}
	}
	return h
}

type bookingDocument struct {
	Seq       int64  `bson:"seq"`
	HotelID   string `bson:"hotel_id"`
	RoomType  string `bson:"room_type"`
	Arrival   int64  `bson:"arrival"`
	Departure int64  `bson:"departure"`
	RoomRate  string `bson:"room_rate,omitempty"`
}

func newBookingDocument(seq int64, b model.Booking) bookingDocument {
	return bookingDocument{
		Seq:       seq,
		HotelID:   b.HotelID,
		RoomType:  b.RoomType,
		Arrival:   b.Arrival.UnixMilli(),
		Departure: b.Departure.UnixMilli(),
		RoomRate:  b.RoomRate,
	}
}

func (d bookingDocument) toModel() model.Booking {
	return model.Booking{
		ID:        d.Seq,
		HotelID:   d.HotelID,
		RoomType:  d.RoomType,
		Arrival:   timestampToTime(d.Arrival),
		Departure: timestampToTime(d.Departure),
		RoomRate:  d.RoomRate,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
