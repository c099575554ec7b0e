package models

import "gorm.io/gorm"

// Config holds the operator-editable trading thresholds.
// By convention exactly one row exists, with ID 1. The engine re-reads it
// every cycle so threshold edits take effect on the next tick.
type Config struct {
	gorm.Model
	// DeltaBuy and DeltaSell are nullable so a freshly seeded config is
	// distinguishable from one deliberately set to zero.
	DeltaBuy   *float64 `json:"delta_buy"`
	DeltaSell  *float64 `json:"delta_sell"`
	AmountBuy  float64  `json:"amount_buy"`  // quote-currency notional per buy
	AmountSell float64  `json:"amount_sell"` // quote-currency notional per sell
}
