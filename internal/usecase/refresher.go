package usecase

import (
	"context"
	"time"

	"CatalogLens/internal/ports"
)

// Refresher wires the scheduler driver with the dashboard overview.
type Refresher struct {
	driver    ports.Scheduler
	dashboard *Dashboard
	publish   func(time.Time, Overview, error)
}

// NewRefresher returns a helper that recomputes the overview on every tick
// and hands the result to publish.
func NewRefresher(driver ports.Scheduler, dashboard *Dashboard, publish func(time.Time, Overview, error)) *Refresher {
	return &Refresher{driver: driver, dashboard: dashboard, publish: publish}
}

// Start registers the overview job with the provided scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if r.driver == nil || r.dashboard == nil || r.publish == nil {
		return nil
	}

	job := func(trigger time.Time) {
		overview, err := r.dashboard.Overview(ctx)
		r.publish(trigger, overview, err)
	}

	return r.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}

	return r.driver.Stop(ctx)
}
