// Package populate implements the Populator (C7): the cross-product of
// agents, queues, and per-queue task priorities into candidate
// assignments with a cached real-capacity.
package populate

import (
	"time"

	"github.com/dennisdiepolder/workforcesim/internal/engine/state"
)

// Candidate is a populated (agent, queue, priority) triple. TaskCount
// is mutable: the redistributor and selector both adjust it in place
// as the decision loop runs.
type Candidate struct {
	Agent        *state.Agent
	Queue        *state.Queue
	Priority     int
	TaskCount    int
	RealCapacity int
}

// RelativeCapacity is min(real_capacity / task_count, 1). A candidate
// with zero tasks left to account for is trivially satisfied.
func (c *Candidate) RelativeCapacity() float64 {
	if c.TaskCount <= 0 {
		return 1
	}
	rc := float64(c.RealCapacity) / float64(c.TaskCount)
	if rc > 1 {
		return 1
	}
	return rc
}

// RealCapacity is floor((decisionHorizon - overhead) / avgItemDuration),
// or 0 if the horizon doesn't even cover the setup overhead.
func RealCapacity(horizon, overhead, avgItemDuration time.Duration) int {
	if horizon <= overhead {
		return 0
	}
	if avgItemDuration <= 0 {
		return 0
	}
	return int((horizon - overhead) / avgItemDuration)
}

// Populate enumerates one candidate per (agent, queue, priority)
// triple. Compatibility is always true in the baseline: user-switching
// cost is already priced into the resource-state overhead, not
// filtered out here.
func Populate(agents []*state.Agent, queues []*state.Queue, horizon time.Duration, now time.Time) []*Candidate {
	var candidates []*Candidate
	for _, agent := range agents {
		for _, queue := range queues {
			ctx := state.OverheadContext{Agent: agent, Target: queue, Now: now}
			overhead := agent.State.Overhead(ctx)
			capacity := RealCapacity(horizon, overhead, queue.AvgItemDuration())

			for priority, count := range queue.Priorities() {
				candidates = append(candidates, &Candidate{
					Agent:        agent,
					Queue:        queue,
					Priority:     priority,
					TaskCount:    count,
					RealCapacity: capacity,
				})
			}
		}
	}
	return candidates
}
