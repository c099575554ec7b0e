package tracker

import (
	"fmt"
	"time"

	"btc-tracker-go/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// lookback48h is the cutoff for the long trend window.
const lookback48h = 48 * time.Hour

// RecordSnapshot computes the 48h delta against the snapshot history and
// persists a new snapshot. The write must succeed before the snapshot is
// returned; a failed write means no snapshot exists for this cycle.
func (e *Engine) RecordSnapshot(price, delta24 float64) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{
		Price:    price,
		Delta:    delta24,
		Delta48h: e.calculateDelta48h(price),
	}

	if err := e.repo.CreateSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("%w: failed to create snapshot: %v", ErrStorage, err)
	}

	e.logger.Info("Snapshot recorded",
		zap.Uint("snapshot_id", snapshot.ID),
		zap.Float64("price", price),
		zap.Float64("delta_24h", delta24),
		zap.Any("delta_48h", snapshot.Delta48h),
	)
	return snapshot, nil
}

// calculateDelta48h returns the percent change versus the most recent
// snapshot at least 48 hours old, rounded to 2 decimals, or nil when no such
// snapshot exists. Lookup failures and a zero historical price are logged
// and treated as "no history" rather than failing the cycle.
func (e *Engine) calculateDelta48h(price float64) *float64 {
	cutoff := time.Now().Add(-lookback48h)

	old, err := e.repo.LatestSnapshotBefore(cutoff)
	if err != nil {
		e.logger.Error("Failed to look up 48h-old snapshot", zap.Error(err))
		return nil
	}
	if old == nil {
		e.logger.Info("No snapshot older than 48h, skipping delta_48h")
		return nil
	}
	if old.Price == 0 {
		// A zero historical price is never economically meaningful.
		e.logger.Error("Historical snapshot has zero price, skipping delta_48h",
			zap.Uint("snapshot_id", old.ID))
		return nil
	}

	delta := percentChange(old.Price, price)
	e.logger.Debug("Calculated delta_48h",
		zap.Float64("old_price", old.Price),
		zap.Float64("price", price),
		zap.Float64("delta_48h", delta),
	)
	return &delta
}

// percentChange returns (new-old)/old*100 rounded to 2 decimal places.
func percentChange(oldPrice, newPrice float64) float64 {
	o := decimal.NewFromFloat(oldPrice)
	n := decimal.NewFromFloat(newPrice)
	result, _ := n.Sub(o).Div(o).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return result
}
