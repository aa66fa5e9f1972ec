package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Periodic runs a task on a fixed wall-clock interval in its own goroutine.
// Task errors are logged and never stop the schedule. The runner communicates
// with shared state only through the task closure, and a run racing with a
// concurrent reader is acceptable (eventual consistency).
type Periodic struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error

	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPeriodic creates a periodic task runner. It does not start until Start
// is called.
func NewPeriodic(name string, interval time.Duration, task func(ctx context.Context) error) *Periodic {
	return &Periodic{
		name:     name,
		interval: interval,
		task:     task,
		done:     make(chan struct{}),
	}
}

// Start launches the ticker loop. The loop exits when ctx is cancelled or
// Stop is called; an in-flight run finishes before the loop exits.
func (p *Periodic) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		slog.Info("Periodic task started", "name", p.name, "interval", p.interval)
		for {
			select {
			case <-ctx.Done():
				slog.Info("Periodic task stopped", "name", p.name)
				return
			case <-ticker.C:
				if err := p.task(ctx); err != nil {
					slog.Error("Periodic task run failed", "name", p.name, "err", err)
					continue
				}
				slog.Debug("Periodic task run done", "name", p.name)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight run to drain
func (p *Periodic) Stop() {
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
		<-p.done
	})
}
