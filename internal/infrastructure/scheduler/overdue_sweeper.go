package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OverdueSweepFunc marks past-due invoices overdue and reports how many
// were swept.
type OverdueSweepFunc func(ctx context.Context, now time.Time) (int, error)

// OverdueSweeper periodically runs the overdue sweep so invoices past
// their due date get flagged even when nobody reads them.
type OverdueSweeper struct {
	interval time.Duration
	sweep    OverdueSweepFunc
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(interval time.Duration, sweep OverdueSweepFunc, logger *zap.Logger) *OverdueSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &OverdueSweeper{
		interval: interval,
		sweep:    sweep,
		logger:   logger,
	}
}

// Start starts the sweep loop. An immediate sweep runs before the first
// tick so a restart doesn't delay overdue detection by a full interval.
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Overdue sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// Stop stops the sweep loop, waiting for an in-flight sweep to finish
func (s *OverdueSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OverdueSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *OverdueSweeper) runSweep(ctx context.Context) {
	swept, err := s.sweep(ctx, time.Now())
	if err != nil {
		s.logger.Error("Overdue sweep failed", zap.Error(err))
		return
	}
	if swept > 0 {
		s.logger.Info("Overdue sweep completed", zap.Int("invoices_swept", swept))
	}
}
