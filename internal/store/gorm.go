package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-availability/internal/availability"
	"hotel-availability/internal/model"
)

const bookingBatchSize = 500

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store. The schema must already be migrated.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Replace rewrites hotels, rooms and bookings in a single transaction.
func (s *gormStore) Replace(ctx context.Context, ds Dataset) error {
	hotels := make([]model.Hotel, 0, len(ds.Hotels))
	var roomTypes []model.RoomType
	var rooms []model.Room
	ids := make([]string, 0, len(ds.Hotels))
	for _, h := range ds.Hotels {
		if slices.Contains(ids, h.ID) {
			continue
		}
		h = withSeq(h)
		ids = append(ids, h.ID)
		roomTypes = append(roomTypes, h.RoomTypes...)
		rooms = append(rooms, h.Rooms...)
		h.RoomTypes, h.Rooms = nil, nil
		hotels = append(hotels, h)
	}

	bookings := slices.Clone(ds.Bookings)
	for i := range bookings {
		bookings[i].ID = 0
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{&model.Room{}, &model.RoomType{}, &model.Booking{}} {
			if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", table, err)
			}
		}

		if len(hotels) > 0 {
			slog.Debug("batch upserting hotels", "count", len(hotels))
			if err := batchUpsertHotels(tx, hotels); err != nil {
				return err
			}
			if err := tx.Where("id NOT IN ?", ids).Delete(&model.Hotel{}).Error; err != nil {
				return fmt.Errorf("failed to delete stale hotels: %w", err)
			}
		} else if err := tx.Where("1 = 1").Delete(&model.Hotel{}).Error; err != nil {
			return fmt.Errorf("failed to delete hotels: %w", err)
		}

		if len(roomTypes) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&roomTypes).Error; err != nil {
				return fmt.Errorf("batch insert room types failed: %w", err)
			}
		}
		if len(rooms) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rooms).Error; err != nil {
				return fmt.Errorf("batch insert rooms failed: %w", err)
			}
		}
		if len(bookings) > 0 {
			slog.Debug("batch inserting bookings", "count", len(bookings))
			if err := tx.CreateInBatches(&bookings, bookingBatchSize).Error; err != nil {
				return fmt.Errorf("batch insert bookings failed: %w", err)
			}
		}
		return nil
	})
}

func batchUpsertHotels(tx *gorm.DB, hotels []model.Hotel) error {
	err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&hotels).Error
	if err != nil {
		return fmt.Errorf("batch upsert hotels failed: %w", err)
	}
	return nil
}

func (s *gormStore) Inventory(ctx context.Context, hotelID string) (availability.Inventory, error) {
	var hotel model.Hotel
	err := s.db.WithContext(ctx).
		Preload("RoomTypes").
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("id = ?", hotelID).
		First(&hotel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return availability.Inventory{}, availability.ErrHotelNotFound
	}
	if err != nil {
		return availability.Inventory{}, fmt.Errorf("failed to load hotel %q: %w", hotelID, err)
	}
	return inventoryOf(hotel), nil
}

func (s *gormStore) Bookings(ctx context.Context, q availability.BookingQuery) ([]availability.Booking, error) {
	var rows []model.Booking
	err := s.db.WithContext(ctx).
		Where("hotel_id = ? AND room_type = ? AND arrival <= ? AND departure > ?", q.HotelID, q.RoomType, q.End, q.Start).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	out := make([]availability.Booking, len(rows))
	for i, b := range rows {
		out[i] = bookingOf(b)
	}
	return out, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
