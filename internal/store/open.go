package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel-availability/config"
	"hotel-availability/internal/db"
)

const mongoConnectTimeout = 10 * time.Second

// Open creates the store selected by cfg.Driver. The returned close function releases
// the underlying connections.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, func() error, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), func() error { return nil }, nil

	case "postgres", "sqlite":
		gormDB, err := db.Init(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewGormStore(gormDB), sqlDB.Close, nil

	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DSN).SetRetryWrites(true))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo: connect: %w", err)
		}
		closeFn := func() error { return client.Disconnect(context.Background()) }

		s := NewMongoStore(client.Database(cfg.MongoDatabase)).(*mongoStore)
		if err := s.EnsureIndexes(connectCtx); err != nil {
			_ = closeFn()
			return nil, nil, fmt.Errorf("mongo: ensure indexes: %w", err)
		}
		return s, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}
