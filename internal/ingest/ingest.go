// Package ingest declares the shapes of the out-of-scope external
// collaborators this build doesn't implement: the CSV/log connectors that
// produce initial roster state and scheduled task waves. Only the
// interfaces are specified here — no real connector ships — so
// cmd/workforcesim can be wired against a trivial fixture-backed
// implementation for local runs and tests.
package ingest

import (
	"context"
	"time"

	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// TaskSpec describes one task to inject, before it is assigned to a
// live queue.
type TaskSpec struct {
	ID          string
	CreatedAt   time.Time
	SLADeadline time.Time
	Priority    int
}

// TaskWave is one scheduled injection of tasks into a queue at a
// simulated instant.
type TaskWave struct {
	At      time.Time
	QueueID string
	Tasks   []TaskSpec
}

// TaskWaveSource produces the ordered list of scheduled task waves for
// a simulation run.
type TaskWaveSource interface {
	Waves(ctx context.Context) ([]TaskWave, error)
}

// RosterSource produces the initial agent roster and queue set.
type RosterSource interface {
	Roster(ctx context.Context) ([]*simstate.Agent, []*simstate.Queue, error)
}
