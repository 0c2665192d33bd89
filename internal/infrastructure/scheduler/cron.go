package scheduler

import (
	"context"
	"sync"
	"time"

	"CatalogLens/internal/ports"
)

// IntervalScheduler runs a job immediately and then on every tick.
type IntervalScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler; non-positive intervals fall
// back to one minute.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &IntervalScheduler{interval: interval}
}

// Start begins ticking. Calling Start on a running scheduler is a no-op.
func (c *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine and waits for the running job to return.
func (c *IntervalScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
