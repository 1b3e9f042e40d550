// Package state holds the simulator's live, mutable view of agents and
// queues (C4 State Store, simulator side). Unlike internal/engine/state,
// which is a fresh snapshot graph built per decision call, this state
// is the one long-lived object the tick loop mutates in place, and the
// one the forecast runner deep-clones (I7) before cloning off a
// background run.
//
// Queues and Tasks here reference each other by id, not by pointer —
// the DESIGN NOTES' "arena + indices" alternative to two-phase
// pointer construction, chosen here because this state is also the
// thing that gets deep-cloned and snapshotted every tick, and id
// references make both of those mechanical instead of graph-walking.
package state

import "time"

// Task is a single pending unit of work inside a queue.
type Task struct {
	ID          string
	QueueID     string
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

// RemovePending removes and returns the task with the given id, or nil
// if it is not in Pending.
func (q *Queue) RemovePending(taskID string) *Task {
	for i, t := range q.Pending {
		if t.ID == taskID {
			q.Pending = append(q.Pending[:i], q.Pending[i+1:]...)
			return t
		}
	}
	return nil
}

// Phase is the simulator's richer resource-state: it has three
// transient phases (LoggingIn, LoggingOut, SettingUpQueue) that the
// decision engine never sees directly — the adapter collapses them
// into one of the engine's three stable variants (see
// internal/sim/adapter).
type Phase int

const (
	PhaseLoggedOut Phase = iota
	PhaseLoggingIn
	PhaseIdle
	PhaseLoggingOut
	PhaseSettingUpQueue
	PhaseWorking
)

func (p Phase) String() string {
	switch p {
	case PhaseLoggedOut:
		return "LoggedOut"
	case PhaseLoggingIn:
		return "LoggingIn"
	case PhaseIdle:
		return "Idle"
	case PhaseLoggingOut:
		return "LoggingOut"
	case PhaseSettingUpQueue:
		return "SettingUpQueue"
	case PhaseWorking:
		return "Working"
	default:
		return "Unknown"
	}
}

// Stable reports whether the phase is one the Worker may hand a new
// pending command to (invariant I6). The transient phases are the ones
// a command dispatch itself enters; they clear on the matching *Done
// event.
func (p Phase) Stable() bool {
	return p == PhaseLoggedOut || p == PhaseIdle
}

// Agent is an entity that performs work: an RPA bot, a human operator,
// or an AI worker.
type Agent struct {
	ID              string
	Name            string
	Phase           Phase
	AvgLogin        time.Duration
	AvgLogout       time.Duration
	CurrentUser     string
	CurrentQueue    string
	CurrentItem     string
	LastItemStart   *time.Time
	ProcessEnabled  bool
	StopRequestedAt *time.Time
	PendingCommands []Command
}

// State is the simulator's full mutable store: every agent and queue
// by id.
type State struct {
	Agents map[string]*Agent
	Queues map[string]*Queue
}

// New returns an empty State.
func New() *State {
	return &State{
		Agents: make(map[string]*Agent),
		Queues: make(map[string]*Queue),
	}
}

// ClaimedItems returns the set of item ids currently held by some
// agent's CurrentItem (invariant I3/I4 support: the claim-and-schedule
// protocol consults this before handing out the next pending item).
func (s *State) ClaimedItems() map[string]struct{} {
	claimed := make(map[string]struct{})
	for _, a := range s.Agents {
		if a.CurrentItem != "" {
			claimed[a.CurrentItem] = struct{}{}
		}
	}
	return claimed
}

// DeepClone returns an independent copy of the state: every agent,
// queue, task, and finished-task record is copied, and mutating the
// clone is never observable in the original (I7).
func (s *State) DeepClone() *State {
	out := New()
	for id, a := range s.Agents {
		clone := *a
		if a.LastItemStart != nil {
			t := *a.LastItemStart
			clone.LastItemStart = &t
		}
		if a.StopRequestedAt != nil {
			t := *a.StopRequestedAt
			clone.StopRequestedAt = &t
		}
		clone.PendingCommands = append([]Command(nil), a.PendingCommands...)
		out.Agents[id] = &clone
	}
	for id, q := range s.Queues {
		clone := *q
		clone.Pending = make([]*Task, len(q.Pending))
		for i, t := range q.Pending {
			taskCopy := *t
			clone.Pending[i] = &taskCopy
		}
		clone.Finished = append([]FinishedTask(nil), q.Finished...)
		out.Queues[id] = &clone
	}
	return out
}
