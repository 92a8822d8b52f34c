package scheduler

import (
	"context"
	"time"

	"NoticeScanner/internal/ports"
)

// IntervalScheduler triggers the pipeline on a fixed cadence. The pipeline
// is a batch job, so a plain ticker is the whole driver.
type IntervalScheduler struct {
	interval time.Duration
	stop     chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler with the given period; values
// below one minute are raised to it to keep upstream systems happy.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &IntervalScheduler{interval: interval}
}

// Start fires the job immediately and then on every tick until the context
// is cancelled or Stop is called.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
