package sim

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/workforcesim/internal/ingest"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

func newTestSimulator(start time.Time) *Simulator {
	initial := simstate.New()
	initial.Agents["agent-1"] = &simstate.Agent{ID: "agent-1", Phase: simstate.PhaseLoggedOut, AvgLogin: time.Second, AvgLogout: time.Second}
	initial.Queues["queue-1"] = &simstate.Queue{ID: "queue-1", OwnerUserID: "svc-1", AvgSetup: time.Second, Criticality: 1, MaxResources: 1}

	cfg := Config{
		Step:             time.Second,
		DecisionInterval: 10 * time.Second,
		DecisionHorizon:  time.Minute,
		ForecastHorizon:  time.Hour,
		SpeedMultiplier:  0,
		Bias:             0.5,
	}
	return New(cfg, start, initial, nil, zerolog.Nop())
}

func TestTickAdvancesClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSimulator(start)

	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !s.Now().Equal(start.Add(time.Second)) {
		t.Errorf("expected clock to advance by one step, got %v", s.Now())
	}
}

func TestLiveDrainedWithNoWorkIsTrue(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSimulator(start)

	if !s.liveDrained() {
		t.Error("expected an empty simulator with no waves to be immediately drained")
	}
}

func TestLiveDrainedFalseWithPendingWave(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	initial := simstate.New()
	initial.Queues["queue-1"] = &simstate.Queue{ID: "queue-1"}
	cfg := Config{Step: time.Second, DecisionInterval: time.Minute, DecisionHorizon: time.Minute, ForecastHorizon: time.Hour, Bias: 0.5}
	waves := []TaskWave{{At: start.Add(time.Hour), QueueID: "queue-1", Tasks: []*simstate.Task{{ID: "t1"}}}}
	s := New(cfg, start, initial, waves, zerolog.Nop())

	if s.liveDrained() {
		t.Error("expected a simulator with a not-yet-injected future wave to not be drained")
	}
}

func TestRunLiveStopsWhenDrained(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSimulator(start)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.RunLive(ctx); err != nil {
		t.Fatalf("RunLive: %v", err)
	}
	finished, runErr := s.Finished()
	if !finished || runErr != nil {
		t.Errorf("expected the loop to finish cleanly once drained, got finished=%v err=%v", finished, runErr)
	}
}

func TestCloneIsIndependentOfLive(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSimulator(start)
	clone := s.Clone()

	s.state.Agents["agent-1"].CurrentUser = "mutated"
	if clone.state.Agents["agent-1"].CurrentUser == "mutated" {
		t.Error("expected clone's state to be independent of the live simulator")
	}
}

func TestSnapshotReflectsPendingAndFinishedCounts(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSimulator(start)
	s.state.Queues["queue-1"].Pending = []*simstate.Task{{ID: "t1"}}
	s.state.Queues["queue-1"].Finished = []simstate.FinishedTask{{ID: "t0", AgentID: "agent-1", Duration: time.Minute}}

	snap := s.Snapshot()
	if len(snap.Queues) != 1 || snap.Queues[0].PendingCount != 1 || snap.Queues[0].CompletedCount != 1 {
		t.Errorf("unexpected queue snapshot: %+v", snap.Queues)
	}
}

func TestWavesFromIngestDefaultsPriority(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	waves := []ingest.TaskWave{
		{At: start, QueueID: "queue-1", Tasks: []ingest.TaskSpec{{ID: "t1"}}},
	}

	converted := WavesFromIngest(waves)
	if len(converted) != 1 {
		t.Fatalf("expected one wave, got %d", len(converted))
	}
	if converted[0].Tasks[0].Priority != 1 {
		t.Errorf("expected zero priority to default to 1, got %d", converted[0].Tasks[0].Priority)
	}
}
