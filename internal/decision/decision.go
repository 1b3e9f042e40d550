// Package decision implements the Decision Engine (C10): the pure
// function that orchestrates Populate → Redistribute → Select and
// emits, per selected assignment, the agent and the abstract command
// sequence to reach its target queue.
package decision

import (
	"time"

	"github.com/dennisdiepolder/workforcesim/internal/decision/populate"
	selectpkg "github.com/dennisdiepolder/workforcesim/internal/decision/select"
	"github.com/dennisdiepolder/workforcesim/internal/engine/state"
)

// Assignment is one selected (agent, queue) pair translated into the
// abstract commands the agent's current resource state needs to reach
// the queue.
type Assignment struct {
	Agent    *state.Agent
	Queue    *state.Queue
	Commands []state.Command
}

// Engine is the pure decision engine. Bias weights SLA-failure
// fraction in queue_weight.
type Engine struct {
	Bias float64
}

// New returns an Engine with the given bias.
func New(bias float64) *Engine {
	return &Engine{Bias: bias}
}

// Decide is a pure function of its inputs: no engine state survives
// between calls. Empty agents or empty queues yield empty output (B1).
func (e *Engine) Decide(agents []*state.Agent, queues []*state.Queue, horizon time.Duration, now time.Time) []Assignment {
	if len(agents) == 0 || len(queues) == 0 {
		return nil
	}

	candidates := populate.Populate(agents, queues, horizon, now)
	if len(candidates) == 0 {
		return nil
	}

	selected := selectpkg.Select(candidates, e.Bias)

	assignments := make([]Assignment, 0, len(selected))
	for _, c := range selected {
		ctx := state.OverheadContext{Agent: c.Agent, Target: c.Queue, Now: now}
		assignments = append(assignments, Assignment{
			Agent:    c.Agent,
			Queue:    c.Queue,
			Commands: c.Agent.State.Commands(ctx),
		})
	}
	return assignments
}
