package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"btc-tracker-go/internal/binance"
	"btc-tracker-go/internal/models"
	"btc-tracker-go/internal/notify"
	"btc-tracker-go/internal/pricefeed"
	"btc-tracker-go/internal/storage"
	"go.uber.org/zap"
)

// Engine turns one scheduler tick into a classified, recorded action: fetch
// the price, persist a snapshot with trend deltas, evaluate the thresholds
// and execute the resulting decision.
type Engine struct {
	logger   *zap.Logger
	repo     *storage.Repository
	feed     pricefeed.ClientInterface
	venue    binance.RestClientInterface
	notifier notify.Notifier

	StartTime time.Time
	running   atomic.Bool
}

// NewEngine creates a new decision engine.
func NewEngine(logger *zap.Logger, repo *storage.Repository, feed pricefeed.ClientInterface, venue binance.RestClientInterface, notifier notify.Notifier) *Engine {
	return &Engine{
		logger:    logger,
		repo:      repo,
		feed:      feed,
		venue:     venue,
		notifier:  notifier,
		StartTime: time.Now(),
	}
}

// RunCycle processes exactly one sampling tick: at most one snapshot and at
// most one order. If the previous cycle is still running the tick is skipped
// with a warning rather than queued.
//
// Stage errors short-circuit later stages; notification errors never do.
func (e *Engine) RunCycle(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		e.logger.Warn("Previous cycle still running, skipping this tick")
		return nil
	}
	defer e.running.Store(false)

	e.logger.Info("Starting sampling cycle")

	// Config is read fresh every cycle so operator threshold edits apply on
	// the very next tick.
	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}

	quote, err := e.feed.CurrentPrice(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPriceSource, err)
	}

	snapshot, err := e.RecordSnapshot(quote.Price, quote.Change24h)
	if err != nil {
		return err
	}

	e.emit(ctx, notify.Event{
		Kind:       notify.KindDailyReport,
		Price:      snapshot.Price,
		Delta:      snapshot.Delta,
		Delta48h:   snapshot.Delta48h,
		At:         snapshot.CreatedAt,
		SnapshotID: snapshot.ID,
	})

	decision := Evaluate(snapshot, cfg)
	e.logger.Info("Cycle evaluated",
		zap.String("decision", decision.String()),
		zap.Float64("price", snapshot.Price),
		zap.Float64("delta_24h", snapshot.Delta),
		zap.Any("delta_48h", snapshot.Delta48h),
	)

	return e.Act(ctx, decision, snapshot, cfg)
}

// loadConfig reads the singleton config and validates that both thresholds
// are set.
func (e *Engine) loadConfig() (*models.Config, error) {
	cfg, err := e.repo.GetConfig()
	if err != nil {
		if errors.Is(err, storage.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrConfigMissing, err)
		}
		return nil, fmt.Errorf("%w: failed to read config: %v", ErrStorage, err)
	}
	if cfg.DeltaBuy == nil || cfg.DeltaSell == nil {
		return nil, fmt.Errorf("%w: delta_buy and delta_sell must both be set", ErrConfigMissing)
	}
	return cfg, nil
}

// emit delivers a notification best-effort. A missed alert must never roll
// back or block a completed trade or write, so failures are only logged.
func (e *Engine) emit(ctx context.Context, event notify.Event) {
	if err := e.notifier.Notify(ctx, event); err != nil {
		e.logger.Warn("Notification delivery failed",
			zap.String("kind", string(event.Kind)),
			zap.Error(err),
		)
	}
}
