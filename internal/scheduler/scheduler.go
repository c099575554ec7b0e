package scheduler

import (
	"context"
	"fmt"
	"time"

	"btc-tracker-go/internal/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CycleFunc runs one sampling cycle.
type CycleFunc func(ctx context.Context) error

// Scheduler triggers the engine cycle on a cron cadence in a configured
// timezone. Cycle errors are logged and swallowed; a failed cycle simply
// waits for the next tick.
type Scheduler struct {
	cron    *cron.Cron
	cycle   CycleFunc
	logger  *zap.Logger
	baseCtx context.Context
	runNow  bool
	spec    string
}

// New builds a scheduler for the given cycle function. The cron spec uses
// the seconds-aware format.
func New(cfg *config.Scheduler, cycle CycleFunc, logger *zap.Logger, baseCtx context.Context) (*Scheduler, error) {
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		cycle:   cycle,
		logger:  logger,
		baseCtx: baseCtx,
		runNow:  cfg.RunAtStartup,
		spec:    cfg.CronSpec,
	}

	if _, err := s.cron.AddFunc(cfg.CronSpec, s.runCycle); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cfg.CronSpec, err)
	}
	return s, nil
}

// Start begins scheduling. When configured, one cycle runs immediately so a
// fresh deploy does not wait a full period for its first sample.
func (s *Scheduler) Start() {
	if s.runNow {
		s.runCycle()
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("cron_spec", s.spec))
}

// Stop halts scheduling and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runCycle() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic in sampling cycle", zap.Any("panic", r))
		}
	}()

	if err := s.cycle(s.baseCtx); err != nil {
		s.logger.Error("Sampling cycle failed", zap.Error(err))
	}
}
