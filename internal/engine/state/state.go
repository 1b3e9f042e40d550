// Package state holds the decision engine's view of agents and queues
// (C4 State Store) and the resource-state variants each agent can be
// in (C5). This is a snapshot model: the adapter (internal/sim/adapter)
// builds a fresh graph of these types from simulator state on every
// decision-engine invocation, so nothing here is mutated by the
// simulator directly.
package state

import "time"

// Task is a single pending unit of work inside a queue. It holds a
// reference back to its owning Queue rather than just an id, so the
// engine-side graph is pointer-linked in both directions. The Working
// variant and the populator take their queue attributes from the Queue
// itself, not through this field.
//
// Queue and Task are mutually referential (a Queue holds its Tasks, a
// Task points back at its Queue), so construction is two-phase: build
// the Queue with an empty Pending slice, build the Tasks pointing at
// it, then populate the slice. NewQueue below does this.
type Task struct {
	ID          string
	Queue       *Queue
	CreatedAt   time.Time
	SLADeadline time.Time
	Priority    int
}

// FinishedTask is an append-only history record of a completed item.
type FinishedTask struct {
	ID          string
	QueueID     string
	AgentID     string
	CompletedAt time.Time
	Duration    time.Duration
	Loaded      time.Time
}

// TaskSpec describes one pending task for NewQueue, before the Queue
// pointer it will carry exists.
type TaskSpec struct {
	ID          string
	CreatedAt   time.Time
	SLADeadline time.Time
	Priority    int
}

// Queue is a named bucket of pending work owned by a user credential.
type Queue struct {
	ID           string
	Name         string
	OwnerUserID  string
	Pending      []*Task
	Finished     []FinishedTask
	AvgSetup     time.Duration
	SLA          time.Duration
	Criticality  int
	MinResources int
	MaxResources int
	ForceMax     bool
	MustRun      bool
}

// NewQueue builds a Queue and its pending Tasks, resolving the
// queue/task cycle with the two-phase construction DESIGN NOTES calls
// for: the queue exists (with a nil Pending) before any task that
// points at it is built.
func NewQueue(id, name, ownerUserID string, avgSetup, sla time.Duration, criticality, minResources, maxResources int, forceMax, mustRun bool, taskSpecs []TaskSpec, finished []FinishedTask) *Queue {
	q := &Queue{
		ID:           id,
		Name:         name,
		OwnerUserID:  ownerUserID,
		AvgSetup:     avgSetup,
		SLA:          sla,
		Criticality:  criticality,
		MinResources: minResources,
		MaxResources: maxResources,
		ForceMax:     forceMax,
		MustRun:      mustRun,
		Finished:     finished,
	}
	tasks := make([]*Task, len(taskSpecs))
	for i, spec := range taskSpecs {
		priority := spec.Priority
		if priority == 0 {
			priority = 1
		}
		tasks[i] = &Task{
			ID:          spec.ID,
			Queue:       q,
			CreatedAt:   spec.CreatedAt,
			SLADeadline: spec.SLADeadline,
			Priority:    priority,
		}
	}
	q.Pending = tasks
	return q
}

// AvgItemDuration is the mean duration across finished tasks, or a
// three-minute fallback when the queue has no history yet.
func (q *Queue) AvgItemDuration() time.Duration {
	if len(q.Finished) == 0 {
		return 3 * time.Minute
	}
	var total time.Duration
	for _, f := range q.Finished {
		total += f.Duration
	}
	return total / time.Duration(len(q.Finished))
}

// FailureFraction is the share of finished tasks whose total time from
// load to finish exceeded the queue's SLA.
func (q *Queue) FailureFraction() float64 {
	if len(q.Finished) == 0 {
		return 0
	}
	var failed int
	for _, f := range q.Finished {
		if f.CompletedAt.Sub(f.Loaded) > q.SLA {
			failed++
		}
	}
	return float64(failed) / float64(len(q.Finished))
}

// Priorities returns the distinct task priorities present in Pending,
// each paired with how many tasks hold it.
func (q *Queue) Priorities() map[int]int {
	counts := make(map[int]int)
	for _, t := range q.Pending {
		counts[t.Priority]++
	}
	return counts
}

// Agent is an entity that performs work: an RPA bot, a human operator,
// or an AI worker.
type Agent struct {
	ID            string
	Name          string
	State         ResourceState
	AvgLogin      time.Duration
	AvgLogout     time.Duration
	LastItemStart *time.Time
}

// State is the engine-side snapshot of every agent and queue by id, as
// the adapter builds it for one decision call.
type State struct {
	Agents map[string]*Agent
	Queues map[string]*Queue
}
