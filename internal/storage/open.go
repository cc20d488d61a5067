package storage

import (
	"context"

	"tombola/internal/config"
	"tombola/internal/tombola"

	"github.com/google/logger"
	"gorm.io/gorm"
)

// OpenStore returns the tombola.Store selected by cfg.StorageDriver. db is
// nil for the memory driver.
func OpenStore(cfg config.Config) (store tombola.Store, db *gorm.DB, err error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warning("Using in-memory storage: data is lost on restart")
		return NewMemoryStore(), nil, nil
	}
	db, err = ConnectDatabase(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, nil, err
	}
	return NewGormStore(db), db, nil
}

// Pinger returns a health check for db, or nil when db is nil.
func Pinger(db *gorm.DB) func(ctx context.Context) error {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
