package storage

import (
	"errors"
	"fmt"
	"time"

	"btc-tracker-go/internal/models"
	"gorm.io/gorm"
)

// ErrConfigNotFound is returned when the singleton config row is absent.
var ErrConfigNotFound = errors.New("config row not found")

// Repository wraps all database access for the engine.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Config

// GetConfig reads the singleton config row (id=1). The engine calls this
// fresh on every cycle so operator edits apply on the next tick.
func (r *Repository) GetConfig() (*models.Config, error) {
	var cfg models.Config
	if err := r.db.First(&cfg, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}

// Snapshots

func (r *Repository) CreateSnapshot(snapshot *models.Snapshot) error {
	return r.db.Create(snapshot).Error
}

// LatestSnapshotBefore returns the most recent snapshot created at or before
// the cutoff, or nil when none exists. Newer snapshots between the cutoff
// and now are ignored.
func (r *Repository) LatestSnapshotBefore(cutoff time.Time) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.db.Where("created_at <= ?", cutoff).
		Order("created_at DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *Repository) LatestSnapshot() (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.db.Order("created_at DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *Repository) RecentSnapshots(limit int) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := r.db.Order("created_at DESC").Limit(limit).Find(&snapshots).Error
	return snapshots, err
}

// Orders

func (r *Repository) CreateOrder(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *Repository) RecentOrders(limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

// OrdersForSnapshot returns the orders referencing a snapshot. The engine
// itself only ever stores the scalar snapshot id; this read-through exists
// for operator reconciliation.
func (r *Repository) OrdersForSnapshot(snapshotID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("snapshot_id = ?", snapshotID).Find(&orders).Error
	return orders, err
}
