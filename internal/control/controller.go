// Package control is the HTTP control surface for the running
// simulator: start/pause/resume/reset/speed, snapshot, and forecast.
package control

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/workforcesim/internal/ingest"
	"github.com/dennisdiepolder/workforcesim/internal/sim"
	"github.com/dennisdiepolder/workforcesim/internal/sim/forecast"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// Controller owns the live Simulator and the Forecast Runner, and
// serializes the control operations the HTTP handlers expose against
// concurrent access from the running tick loop's goroutine.
type Controller struct {
	mu   sync.RWMutex
	live *sim.Simulator
	runs *forecast.Runner

	cfg    sim.Config
	roster ingest.RosterSource
	waves  ingest.TaskWaveSource

	cancel context.CancelFunc
	log    zerolog.Logger
}

// New builds a Controller with a freshly loaded live Simulator, ready
// to run once Start is called.
func New(cfg sim.Config, roster ingest.RosterSource, waves ingest.TaskWaveSource, log zerolog.Logger) (*Controller, error) {
	c := &Controller{
		cfg:    cfg,
		roster: roster,
		waves:  waves,
		runs:   forecast.New(log),
		log:    log,
	}
	if err := c.buildLive(time.Now()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) buildLive(start time.Time) error {
	agents, queues, err := c.roster.Roster(context.Background())
	if err != nil {
		return err
	}
	initial := simstate.New()
	for _, a := range agents {
		initial.Agents[a.ID] = a
	}
	for _, q := range queues {
		initial.Queues[q.ID] = q
	}

	rawWaves, err := c.waves.Waves(context.Background())
	if err != nil {
		return err
	}
	waves := sim.WavesFromIngest(rawWaves)

	c.live = sim.New(c.cfg, start, initial, waves, c.log)
	return nil
}

// Start begins the live tick loop in the background, if it is not
// already running.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	live := c.live
	c.mu.Unlock()

	go func() {
		if err := live.RunLive(ctx); err != nil && ctx.Err() == nil {
			c.log.Error().Err(err).Msg("live simulation halted")
		}
	}()

	go c.forecastLoop(ctx)
}

// forecastLoop refreshes the published forecast on the same cadence as
// the decision engine.
func (c *Controller) forecastLoop(ctx context.Context) {
	interval := c.cfg.DecisionInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.TriggerForecast()
	for {
		select {
		case <-ctx.Done():
			c.runs.Cancel()
			return
		case <-ticker.C:
			c.TriggerForecast()
		}
	}
}

// Stop cancels the live tick loop, if running.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Pause halts tick advancement without cancelling the loop.
func (c *Controller) Pause() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.live.Pause()
}

// Resume clears a prior Pause.
func (c *Controller) Resume() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.live.Resume()
}

// Reset stops the loop and rebuilds the live Simulator from the
// roster and wave sources at the given start time.
func (c *Controller) Reset(start time.Time) error {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildLive(start)
}

// SetSpeed changes the live loop's real-time pacing multiplier.
func (c *Controller) SetSpeed(multiplier float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.live.SetSpeed(multiplier)
}

// Snapshot returns the live Simulator's current observability
// snapshot.
func (c *Controller) Snapshot() sim.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live.Snapshot()
}

// TriggerForecast clones the live Simulator and starts a background
// forecast run to the controller's configured forecast horizon.
func (c *Controller) TriggerForecast() {
	c.mu.RLock()
	live := c.live
	horizon := c.cfg.ForecastHorizon
	c.mu.RUnlock()
	c.runs.Trigger(live, horizon)
}

// LatestForecast returns the most recently published forecast result,
// or nil if none has completed yet.
func (c *Controller) LatestForecast() *forecast.Result {
	return c.runs.Latest()
}
