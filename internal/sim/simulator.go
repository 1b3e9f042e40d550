// Package sim implements the Simulator Engine (C12): the tick loop
// that advances the clock, drains event batches atomically, and runs
// the observer, plus the Start/Pause/Resume/Reset/SetSpeed control
// surface.
package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/dennisdiepolder/workforcesim/internal/apperr"
	"github.com/dennisdiepolder/workforcesim/internal/decision"
	"github.com/dennisdiepolder/workforcesim/internal/engine/clock"
	"github.com/dennisdiepolder/workforcesim/internal/engine/eventqueue"
	"github.com/dennisdiepolder/workforcesim/internal/ingest"
	"github.com/dennisdiepolder/workforcesim/internal/metrics"
	"github.com/dennisdiepolder/workforcesim/internal/sim/observer"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// TaskWave is a scheduled batch of tasks to append to a queue at a
// simulated instant.
type TaskWave struct {
	At      time.Time
	QueueID string
	Tasks   []*simstate.Task
}

// WavesFromIngest converts an ingest.TaskWaveSource's output into the
// simulator's own task representation.
func WavesFromIngest(waves []ingest.TaskWave) []TaskWave {
	out := make([]TaskWave, len(waves))
	for i, w := range waves {
		tasks := make([]*simstate.Task, len(w.Tasks))
		for j, t := range w.Tasks {
			priority := t.Priority
			if priority == 0 {
				priority = 1
			}
			tasks[j] = &simstate.Task{
				ID:          t.ID,
				QueueID:     w.QueueID,
				CreatedAt:   t.CreatedAt,
				SLADeadline: t.SLADeadline,
				Priority:    priority,
			}
		}
		out[i] = TaskWave{At: w.At, QueueID: w.QueueID, Tasks: tasks}
	}
	return out
}

// Config configures a Simulator's tunable options.
type Config struct {
	Step             time.Duration
	DecisionInterval time.Duration
	DecisionHorizon  time.Duration
	ForecastHorizon  time.Duration
	SpeedMultiplier  float64
	Bias             float64
}

// Simulator owns the clock, event queue, state, and observer for one
// timeline — either the live digital twin or a forecast clone.
type Simulator struct {
	cfg      Config
	clock    *clock.Clock
	events   *eventqueue.Queue
	state    *simstate.State
	worker   *observer.Worker
	waves    []TaskWave
	waveHead int

	start    time.Time
	paused   bool
	finished bool
	lastErr  error
	eventLog []string

	log zerolog.Logger
}

// New constructs a live Simulator over the given initial state and
// scheduled task waves. Waves must be sorted by At ascending; New does
// not sort them, since the caller (ingest) already produces them in
// order.
func New(cfg Config, start time.Time, initial *simstate.State, waves []TaskWave, log zerolog.Logger) *Simulator {
	engine := decision.New(cfg.Bias)
	return &Simulator{
		cfg:    cfg,
		clock:  clock.New(start),
		events: eventqueue.New(),
		state:  initial,
		worker: observer.New(engine, cfg.DecisionInterval, cfg.DecisionHorizon, log),
		waves:  waves,
		start:  start,
		log:    log,
	}
}

// Now returns the simulator's current simulated time.
func (s *Simulator) Now() time.Time {
	return s.clock.Now()
}

// State exposes the live mutable state store. Callers outside this
// package should treat it as read-only except through Simulator's own
// methods; the control surface uses this only for snapshotting.
func (s *Simulator) State() *simstate.State {
	return s.state
}

// Clone deep-clones the clock, event queue, and state into a new,
// independent Simulator for forecast use (§4.12). It also carries the
// live wave cursor so the clone can keep injecting the same scheduled
// waves.
func (s *Simulator) Clone() *Simulator {
	engine := decision.New(s.cfg.Bias)
	clone := &Simulator{
		cfg:      s.cfg,
		clock:    s.clock.Clone(),
		events:   s.events.Clone(),
		state:    s.state.DeepClone(),
		worker:   observer.New(engine, s.cfg.DecisionInterval, s.cfg.DecisionHorizon, s.log),
		waves:    s.waves,
		waveHead: s.waveHead,
		start:    s.clock.Now(),
		log:      s.log,
	}
	return clone
}

// Pause stops the live loop from advancing further ticks until
// Resume is called. It has no effect on a forecast run.
func (s *Simulator) Pause() {
	s.paused = true
}

// Resume clears a prior Pause.
func (s *Simulator) Resume() {
	s.paused = false
}

// Reset returns the simulator to the given start time and initial
// state, clearing all scheduled events and the finished/error flags.
func (s *Simulator) Reset(start time.Time, initial *simstate.State, waves []TaskWave) {
	s.clock = clock.New(start)
	s.events.Clear()
	s.state = initial
	s.waves = waves
	s.waveHead = 0
	s.start = start
	s.paused = false
	s.finished = false
	s.lastErr = nil
	s.eventLog = nil
}

// SetSpeed changes the real-time pacing multiplier. multiplier must be
// >= 0 (the control surface's speed handler rejects negative values);
// 0 means run as fast as possible. A running RunLive loop picks up the
// new value before its next pacing wait.
func (s *Simulator) SetSpeed(multiplier float64) {
	s.cfg.SpeedMultiplier = multiplier
}

// Finished reports whether the live loop has halted, and the error (if
// any) that caused it.
func (s *Simulator) Finished() (bool, error) {
	return s.finished, s.lastErr
}

// injectDueWaves appends any scheduled task wave whose timestamp has
// arrived to its queue's pending list.
func (s *Simulator) injectDueWaves(now time.Time) {
	for s.waveHead < len(s.waves) && !s.waves[s.waveHead].At.After(now) {
		wave := s.waves[s.waveHead]
		if q, ok := s.state.Queues[wave.QueueID]; ok {
			q.Pending = append(q.Pending, wave.Tasks...)
		}
		s.waveHead++
	}
}

// Tick runs one iteration: advance the clock, drain every event batch
// at or before the new now in non-decreasing timestamp order, then run
// the observer exactly once (§5 ordering guarantees).
func (s *Simulator) Tick() error {
	tickStart := time.Now()
	now := s.clock.Advance(s.cfg.Step)
	s.injectDueWaves(now)

	var applied int
	var lastBatchTime time.Time
	first := true
	for {
		ts, ok := s.events.NextTimestamp()
		if !ok || ts.After(now) {
			break
		}
		if !first && ts.Before(lastBatchTime) {
			metrics.Get().RecordTickError()
			return fmt.Errorf("%w: batch at %s after batch at %s", apperr.ErrEventOrderingViolation, ts, lastBatchTime)
		}
		batch, err := s.events.PopBatch()
		if err != nil {
			metrics.Get().RecordTickError()
			return err
		}
		for _, e := range batch {
			if err := e.Apply(s.state, s.events); err != nil {
				metrics.Get().RecordTickError()
				return err
			}
			applied++
		}
		lastBatchTime = ts
		first = false
	}

	err := s.worker.Observe(s.state, s.events, now)
	metrics.Get().RecordTick(time.Since(tickStart), applied)
	if err != nil {
		metrics.Get().RecordTickError()
	}
	return err
}

// liveDrained reports the live-mode termination condition: no more
// events, no more scheduled waves, and every queue's pending list is
// empty.
func (s *Simulator) liveDrained() bool {
	if s.events.Len() > 0 {
		return false
	}
	if s.waveHead < len(s.waves) {
		return false
	}
	for _, q := range s.state.Queues {
		if len(q.Pending) > 0 {
			return false
		}
	}
	return true
}

// RunLive runs the tick loop in real time, paced by SpeedMultiplier,
// until the live-drained condition holds, ctx is cancelled, or a tick
// fails.
func (s *Simulator) RunLive(ctx context.Context) error {
	var limiter *rate.Limiter
	limiterSpeed := -1.0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.paused {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.Step):
			}
			continue
		}

		if err := s.Tick(); err != nil {
			s.finished = true
			s.lastErr = err
			s.eventLog = append(s.eventLog, fmt.Sprintf("tick failed at %s: %v", s.clock.Now(), err))
			s.log.Error().Err(err).Msg("tick failed, halting live loop")
			return err
		}

		if s.liveDrained() {
			s.finished = true
			s.eventLog = append(s.eventLog, fmt.Sprintf("drained at %s", s.clock.Now()))
			return nil
		}

		if s.cfg.SpeedMultiplier != limiterSpeed {
			limiterSpeed = s.cfg.SpeedMultiplier
			limiter = nil
			if limiterSpeed > 0 {
				ticksPerSecond := limiterSpeed / s.cfg.Step.Seconds()
				limiter = rate.NewLimiter(rate.Limit(ticksPerSecond), 1)
			}
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
	}
}

// RunForecast runs the tick loop as fast as possible against this
// simulator's own state (intended to be called on a Clone), stopping
// at the forecast-mode termination: horizon elapsed, queues drained,
// or cancellation. It returns the per-agent timeline built by diffing
// phases across ticks.
func (s *Simulator) RunForecast(ctx context.Context, horizon time.Duration) ([]TimelineSegment, error) {
	deadline := s.clock.Now().Add(horizon)
	diff := newPhaseDiffer(s.state, s.clock.Now())

	for {
		select {
		case <-ctx.Done():
			return diff.flush(s.clock.Now()), apperr.ErrForecastFailure
		default:
		}

		if s.clock.Now().Add(s.cfg.Step).After(deadline) {
			return diff.flush(s.clock.Now()), nil
		}

		if err := s.Tick(); err != nil {
			return diff.flush(s.clock.Now()), err
		}
		diff.observe(s.state, s.clock.Now())

		if s.liveDrained() {
			return diff.flush(s.clock.Now()), nil
		}
	}
}

// Snapshot is the external observability payload, built on demand by
// Simulator.Snapshot.
type Snapshot struct {
	Clock    time.Time
	Agents   []AgentSnapshot
	Queues   []QueueSnapshot
	Metrics  DerivedMetrics
	EventLog []string
	Finished bool
	Error    string
}

// AgentSnapshot is one agent's externally visible state.
type AgentSnapshot struct {
	ID               string
	Name             string
	Phase            string
	CurrentQueue     string
	CurrentUser      string
	ItemsCompleted   int
	AvgHandleSeconds float64
}

// QueueSnapshot is one queue's externally visible counts.
type QueueSnapshot struct {
	ID             string
	PendingCount   int
	CompletedCount int
}

// DerivedMetrics are fleet-wide numbers computed on demand from
// finished-task history rather than stored incrementally: derive on
// snapshot, don't store.
type DerivedMetrics struct {
	CompletedPerHour float64
	UtilizationPct   float64
}

// Snapshot builds a fresh observability snapshot of the current state.
func (s *Simulator) Snapshot() Snapshot {
	agentIDs := make([]string, 0, len(s.state.Agents))
	for id := range s.state.Agents {
		agentIDs = append(agentIDs, id)
	}
	sort.Strings(agentIDs)

	elapsedHours := s.clock.Now().Sub(s.start).Hours()

	agentSnapshots := make([]AgentSnapshot, 0, len(agentIDs))
	var totalCompleted int
	var totalWorkingSeconds float64

	for _, id := range agentIDs {
		a := s.state.Agents[id]
		completed, handleSeconds := agentStats(s.state, id)
		totalCompleted += completed
		totalWorkingSeconds += handleSeconds

		avgHandle := 0.0
		if completed > 0 {
			avgHandle = handleSeconds / float64(completed)
		}

		agentSnapshots = append(agentSnapshots, AgentSnapshot{
			ID:               a.ID,
			Name:             a.Name,
			Phase:            a.Phase.String(),
			CurrentQueue:     a.CurrentQueue,
			CurrentUser:      a.CurrentUser,
			ItemsCompleted:   completed,
			AvgHandleSeconds: avgHandle,
		})
	}

	queueIDs := make([]string, 0, len(s.state.Queues))
	for id := range s.state.Queues {
		queueIDs = append(queueIDs, id)
	}
	sort.Strings(queueIDs)

	queueSnapshots := make([]QueueSnapshot, 0, len(queueIDs))
	for _, id := range queueIDs {
		q := s.state.Queues[id]
		queueSnapshots = append(queueSnapshots, QueueSnapshot{
			ID:             q.ID,
			PendingCount:   len(q.Pending),
			CompletedCount: len(q.Finished),
		})
	}

	var completedPerHour float64
	if elapsedHours > 0 {
		completedPerHour = float64(totalCompleted) / elapsedHours
	}
	var utilizationPct float64
	if len(agentIDs) > 0 && elapsedHours > 0 {
		utilizationPct = 100 * (totalWorkingSeconds / 3600) / (elapsedHours * float64(len(agentIDs)))
	}

	errMsg := ""
	if s.lastErr != nil {
		errMsg = s.lastErr.Error()
	}

	return Snapshot{
		Clock:    s.clock.Now(),
		Agents:   agentSnapshots,
		Queues:   queueSnapshots,
		Metrics:  DerivedMetrics{CompletedPerHour: completedPerHour, UtilizationPct: utilizationPct},
		EventLog: append([]string(nil), s.eventLog...),
		Finished: s.finished,
		Error:    errMsg,
	}
}

func agentStats(s *simstate.State, agentID string) (completed int, handleSeconds float64) {
	for _, q := range s.Queues {
		for _, f := range q.Finished {
			if f.AgentID != agentID {
				continue
			}
			completed++
			handleSeconds += f.Duration.Seconds()
		}
	}
	return
}
