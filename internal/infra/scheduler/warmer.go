package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// WarmFunc refreshes cached data and reports how many entries it touched.
type WarmFunc func(ctx context.Context) (int, error)

// Warmer runs a WarmFunc on a cron schedule.
type Warmer struct {
	cron    *cron.Cron
	warm    WarmFunc
	timeout time.Duration
	logger  *slog.Logger
	enabled bool
}

// NewWarmer parses the schedule; an empty schedule yields a disabled warmer.
func NewWarmer(schedule string, timeout time.Duration, warm WarmFunc, logger *slog.Logger) (*Warmer, error) {
	w := &Warmer{
		warm:    warm,
		timeout: timeout,
		logger:  logger.With("component", "scheduler.warmer"),
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return w, nil
	}
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(schedule, w.RunOnce); err != nil {
		return nil, err
	}
	w.enabled = true
	return w, nil
}

// Enabled reports whether a schedule was configured.
func (w *Warmer) Enabled() bool {
	return w.enabled
}

// Start launches the scheduler in its own goroutine.
func (w *Warmer) Start() {
	if !w.enabled {
		return
	}
	w.logger.Info("cache warmer started")
	w.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (w *Warmer) Stop() {
	if !w.enabled {
		return
	}
	<-w.cron.Stop().Done()
	w.logger.Info("cache warmer stopped")
}

// RunOnce executes the warm-up under the configured timeout.
func (w *Warmer) RunOnce() {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	start := time.Now()
	count, err := w.warm(ctx)
	if err != nil {
		w.logger.Error("cache warm-up failed", "warmed", count, "error", err)
		return
	}
	w.logger.Info("cache warm-up finished", "warmed", count, "latency_ms", time.Since(start).Milliseconds())
}
