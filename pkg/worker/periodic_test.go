package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicRunsTask(t *testing.T) {
	var runs atomic.Int32
	p := NewPeriodic("test", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestPeriodicStopDrains(t *testing.T) {
	var runs atomic.Int32
	p := NewPeriodic("test", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	p.Start(context.Background())
	assert.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, time.Second, time.Millisecond)

	p.Stop()
	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop returns")

	// Stop is safe to call twice
	p.Stop()
}

func TestPeriodicSurvivesTaskError(t *testing.T) {
	var runs atomic.Int32
	p := NewPeriodic("test", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return context.DeadlineExceeded
	})

	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, time.Millisecond, "errors must not stop the schedule")
}

func TestPeriodicStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPeriodic("test", 5*time.Millisecond, func(ctx context.Context) error {
		return nil
	})

	p.Start(ctx)
	cancel()
	p.Stop()
}
