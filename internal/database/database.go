package database

import (
	"errors"
	"fmt"

	"btc-tracker-go/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase creates a new database connection, performs auto-migration and
// seeds the singleton config row if it is missing.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema and ensures a config row exists.
// Snapshots and orders are an append-only ledger, so existing tables are
// never dropped.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Config{}, &models.Snapshot{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Seed the singleton config (id=1) with unset thresholds. The engine
	// refuses to trade until an operator fills them in.
	var cfg models.Config
	if err := db.First(&cfg, 1).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read config row: %w", err)
		}
		cfg = models.Config{}
		cfg.ID = 1
		if err := db.Create(&cfg).Error; err != nil {
			return fmt.Errorf("failed to seed config row: %w", err)
		}
	}

	return nil
}
