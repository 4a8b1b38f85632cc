package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-availability/config"
	"hotel-availability/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	cfg := &config.StoreConfig{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}

	gormDB, err := Init(cfg)
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, table := range []any{&model.Hotel{}, &model.RoomType{}, &model.Room{}, &model.Booking{}} {
		assert.True(t, gormDB.Migrator().HasTable(table))
	}
	assert.True(t, gormDB.Migrator().HasIndex(&model.Booking{}, "idx_booking_lookup"))
}

func TestInit_RejectsNonRelationalDriver(t *testing.T) {
	_, err := Init(&config.StoreConfig{Driver: "mongo"})
	assert.Error(t, err)
}
