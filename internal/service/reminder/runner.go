package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner drives the evaluator on a fixed cadence. One Runner per process;
// passes run serially on a single goroutine, so ticks never overlap. A tick
// that arrives while a slow pass is still running is simply delayed.
type Runner struct {
	evaluator *Evaluator
	interval  time.Duration
	logger    *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunner(evaluator *Evaluator, interval time.Duration, logger *zap.Logger) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{
		evaluator: evaluator,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the evaluation loop. The first pass runs immediately.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		if err := r.evaluator.RunPass(ctx); err != nil {
			r.logger.Error("Reminder pass failed", zap.Error(err))
		}

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Reminder runner stopped")
				return
			case <-ticker.C:
				if err := r.evaluator.RunPass(ctx); err != nil {
					r.logger.Error("Reminder pass failed", zap.Error(err))
				}
			}
		}
	}()

	r.logger.Info("Reminder runner started",
		zap.Duration("interval", r.interval),
	)
}

// Stop cancels the loop and waits for an in-flight pass to finish.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
