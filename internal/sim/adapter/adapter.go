// Package adapter implements the State Adapter (C14): it maps the
// simulator's richer agent phases and id-referenced queues onto the
// decision engine's three-variant ResourceState and pointer-linked
// queue/task graph, conservatively collapsing transient phases into
// their nearest stable engine variant.
package adapter

import (
	enginestate "github.com/dennisdiepolder/workforcesim/internal/engine/state"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// ToEngineState builds a fresh engine-side State from the simulator's
// live state. Engine queues are built first since Working variants
// reference them; each queue's tasks are constructed against it in the
// two-phase sequence engine/state.NewQueue performs.
func ToEngineState(s *simstate.State) *enginestate.State {
	engineQueues := make(map[string]*enginestate.Queue, len(s.Queues))
	for id, q := range s.Queues {
		engineQueues[id] = toEngineQueue(q)
	}

	engineAgents := make(map[string]*enginestate.Agent, len(s.Agents))
	for id, a := range s.Agents {
		engineAgents[id] = toEngineAgent(a, engineQueues)
	}

	return &enginestate.State{Agents: engineAgents, Queues: engineQueues}
}

func toEngineQueue(q *simstate.Queue) *enginestate.Queue {
	specs := make([]enginestate.TaskSpec, len(q.Pending))
	for i, t := range q.Pending {
		specs[i] = enginestate.TaskSpec{
			ID:          t.ID,
			CreatedAt:   t.CreatedAt,
			SLADeadline: t.SLADeadline,
			Priority:    t.Priority,
		}
	}
	finished := make([]enginestate.FinishedTask, len(q.Finished))
	for i, f := range q.Finished {
		finished[i] = enginestate.FinishedTask{
			ID:          f.ID,
			QueueID:     f.QueueID,
			AgentID:     f.AgentID,
			CompletedAt: f.CompletedAt,
			Duration:    f.Duration,
			Loaded:      f.Loaded,
		}
	}
	return enginestate.NewQueue(q.ID, q.Name, q.OwnerUserID, q.AvgSetup, q.SLA, q.Criticality, q.MinResources, q.MaxResources, q.ForceMax, q.MustRun, specs, finished)
}

func toEngineAgent(a *simstate.Agent, engineQueues map[string]*enginestate.Queue) *enginestate.Agent {
	return &enginestate.Agent{
		ID:            a.ID,
		Name:          a.Name,
		State:         toResourceState(a, engineQueues),
		AvgLogin:      a.AvgLogin,
		AvgLogout:     a.AvgLogout,
		LastItemStart: a.LastItemStart,
	}
}

// toResourceState is the conservative collapse table: transient
// phases map to the stable variant that best
// describes what the agent can still be asked to do.
func toResourceState(a *simstate.Agent, engineQueues map[string]*enginestate.Queue) enginestate.ResourceState {
	switch a.Phase {
	case simstate.PhaseLoggedOut, simstate.PhaseLoggingIn:
		return enginestate.LoggedOut{}
	case simstate.PhaseIdle, simstate.PhaseLoggingOut, simstate.PhaseSettingUpQueue:
		return enginestate.Idle{User: a.CurrentUser}
	case simstate.PhaseWorking:
		return enginestate.Working{Queue: engineQueues[a.CurrentQueue]}
	default:
		return enginestate.LoggedOut{}
	}
}
