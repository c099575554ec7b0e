package models

import "gorm.io/gorm"

// Snapshot is one durable price observation plus its trend deltas.
// Rows are append-only and never mutated after creation.
type Snapshot struct {
	gorm.Model
	Price float64 `json:"price" gorm:"not null"`
	// Delta is the percent change over the preceding 24h, as reported by the feed.
	Delta float64 `json:"delta"`
	// Delta48h is the percent change versus the most recent snapshot at least
	// 48 hours old, rounded to 2 decimals. Nil when no such snapshot exists.
	Delta48h *float64 `json:"delta_48h"`
}
