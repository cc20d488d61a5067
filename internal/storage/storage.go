package storage

import (
	"context"
	"fmt"
	"os"

	"tombola/internal/config"
	"tombola/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the Postgres connection described by cfg. Unique and
// foreign-key violations are translated to gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
func ConnectDatabase(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Infof("Connected to database %s on %s:%s", cfg.Name, cfg.Host, cfg.Port)
	return db, nil
}

// Migrate creates or updates the raffle tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.QRCode{}, &models.Participant{}, &models.Prize{}, &models.Winner{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ConnectTestingDatabase connects to the database named by the TEST_DB_*
// variables. ok is false when TEST_DB_HOST is unset.
func ConnectTestingDatabase() (db *gorm.DB, ok bool, err error) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return nil, false, nil
	}
	cfg := config.DBConfig{
		Host:     host,
		Port:     os.Getenv("TEST_DB_PORT"),
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		Name:     os.Getenv("TEST_DB_NAME"),
		SSLMode:  "disable",
	}
	db, err = ConnectDatabase(cfg)
	return db, true, err
}

// InitRedis connects to Redis and checks the connection.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	logger.Infof("Connected to redis on %s", cfg.Addr)
	return client, nil
}
