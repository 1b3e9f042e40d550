// Package forecast implements the Forecast Runner (C13): deep-clone
// the live simulator on the caller's thread, run it to a bounded
// horizon on a background goroutine, and atomically publish the
// result. At most one forecast runs at a time; a new Trigger cancels
// whatever is in flight.
package forecast

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dennisdiepolder/workforcesim/internal/metrics"
	"github.com/dennisdiepolder/workforcesim/internal/sim"
)

// Result is the published outcome of one forecast run.
type Result struct {
	ComputedAt time.Time
	Horizon    time.Duration
	Segments   []sim.TimelineSegment
}

// Runner owns the "latest forecast" slot (§5: a single-writer atomic
// reference; the live tick loop never reads or writes it).
type Runner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	latest *Result
	log    zerolog.Logger
}

// New returns an idle Runner.
func New(log zerolog.Logger) *Runner {
	return &Runner{log: log}
}

// Trigger clones live (on the calling goroutine — the live tick
// thread, per §4.12) and starts a background run to horizon. Any
// forecast already in flight is cancelled first.
func (r *Runner) Trigger(live *sim.Simulator, horizon time.Duration) {
	clone := live.Clone()

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	go r.run(ctx, clone, horizon)
}

func (r *Runner) run(ctx context.Context, clone *sim.Simulator, horizon time.Duration) {
	g, ctx := errgroup.WithContext(ctx)

	var segments []sim.TimelineSegment
	g.Go(func() error {
		var err error
		segments, err = clone.RunForecast(ctx, horizon)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.Get().RecordForecastFailure()
		r.log.Warn().Err(err).Msg("forecast failed, keeping previous result")
		return
	}
	metrics.Get().RecordForecastRun()

	result := &Result{
		ComputedAt: clone.Now(),
		Horizon:    horizon,
		Segments:   segments,
	}

	r.mu.Lock()
	r.latest = result
	r.mu.Unlock()
}

// Latest returns the most recently published result, or nil if none
// has completed yet.
func (r *Runner) Latest() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Cancel stops any in-flight forecast without publishing its result.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}
