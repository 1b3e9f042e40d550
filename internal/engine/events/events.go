// Package events implements the simulator's event variants (C3) and
// the claim-and-schedule protocol (§4.3) that lets working agents
// self-schedule their next item without consulting the decision
// engine.
package events

import (
	"fmt"
	"time"

	"github.com/dennisdiepolder/workforcesim/internal/apperr"
	"github.com/dennisdiepolder/workforcesim/internal/engine/eventqueue"
	"github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

func lookupAgent(s *state.State, id string) (*state.Agent, error) {
	a, ok := s.Agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: agent %q", apperr.ErrReferenceMissing, id)
	}
	return a, nil
}

func lookupQueue(s *state.State, id string) (*state.Queue, error) {
	q, ok := s.Queues[id]
	if !ok {
		return nil, fmt.Errorf("%w: queue %q", apperr.ErrReferenceMissing, id)
	}
	return q, nil
}

// LoginDone fires when an agent finishes logging in as User.
type LoginDone struct {
	AgentID string
	User    string
	At      time.Time
}

func (e LoginDone) When() time.Time { return e.At }
func (e LoginDone) Clone() eventqueue.Event { return e }

func (e LoginDone) Apply(s *state.State, q *eventqueue.Queue) error {
	a, err := lookupAgent(s, e.AgentID)
	if err != nil {
		return err
	}
	a.Phase = state.PhaseIdle
	a.CurrentUser = e.User
	return nil
}

// LogoutDone fires when an agent finishes logging out.
type LogoutDone struct {
	AgentID string
	At      time.Time
}

func (e LogoutDone) When() time.Time { return e.At }
func (e LogoutDone) Clone() eventqueue.Event { return e }

func (e LogoutDone) Apply(s *state.State, q *eventqueue.Queue) error {
	a, err := lookupAgent(s, e.AgentID)
	if err != nil {
		return err
	}
	a.Phase = state.PhaseLoggedOut
	a.CurrentUser = ""
	return nil
}

// SetupDone fires when an agent finishes setting up QueueID and is
// ready to process items. It immediately runs claim-and-schedule so
// the agent either claims the first unclaimed pending item or goes
// idle with no work available.
type SetupDone struct {
	AgentID string
	QueueID string
	At      time.Time
}

func (e SetupDone) When() time.Time { return e.At }
func (e SetupDone) Clone() eventqueue.Event { return e }

func (e SetupDone) Apply(s *state.State, q *eventqueue.Queue) error {
	a, err := lookupAgent(s, e.AgentID)
	if err != nil {
		return err
	}
	if _, err := lookupQueue(s, e.QueueID); err != nil {
		return err
	}
	a.Phase = state.PhaseWorking
	a.ProcessEnabled = true
	a.CurrentQueue = e.QueueID
	return claimAndSchedule(s, q, a, e.QueueID, e.At)
}

// ItemDone fires when an agent finishes an item it claimed. It appends
// a finished-task record, clears the claim, and either claims the next
// available item (if still enabled and work remains) or goes idle.
type ItemDone struct {
	AgentID string
	ItemID  string
	QueueID string
	At      time.Time
}

func (e ItemDone) When() time.Time { return e.At }
func (e ItemDone) Clone() eventqueue.Event { return e }

func (e ItemDone) Apply(s *state.State, q *eventqueue.Queue) error {
	a, err := lookupAgent(s, e.AgentID)
	if err != nil {
		return err
	}
	qu, err := lookupQueue(s, e.QueueID)
	if err != nil {
		return err
	}

	var duration time.Duration
	if a.LastItemStart != nil {
		duration = e.At.Sub(*a.LastItemStart)
	}
	qu.Finished = append(qu.Finished, state.FinishedTask{
		ID:          e.ItemID,
		QueueID:     e.QueueID,
		AgentID:     e.AgentID,
		CompletedAt: e.At,
		Duration:    duration,
		Loaded:      e.At.Add(-duration),
	})

	a.CurrentItem = ""
	a.LastItemStart = nil
	qu.RemovePending(e.ItemID)

	if a.ProcessEnabled && len(qu.Pending) > 0 {
		return claimAndSchedule(s, q, a, e.QueueID, e.At)
	}
	a.Phase = state.PhaseIdle
	a.ProcessEnabled = false
	return nil
}

// claimAndSchedule implements §4.3: compute the globally claimed item
// ids, hand the agent the first unclaimed pending item in queueID, and
// schedule its completion. This is what prevents two agents whose
// SetupDone lands in the same batch from claiming the same item.
func claimAndSchedule(s *state.State, q *eventqueue.Queue, a *state.Agent, queueID string, now time.Time) error {
	qu, err := lookupQueue(s, queueID)
	if err != nil {
		return err
	}
	claimed := s.ClaimedItems()

	var chosen *state.Task
	for _, t := range qu.Pending {
		if _, taken := claimed[t.ID]; !taken {
			chosen = t
			break
		}
	}
	if chosen == nil {
		a.Phase = state.PhaseIdle
		a.ProcessEnabled = false
		return nil
	}

	a.CurrentItem = chosen.ID
	start := now
	a.LastItemStart = &start

	completion := now.Add(qu.AvgItemDuration())
	if completion.Before(now) {
		return fmt.Errorf("%w: scheduled %s before now %s", apperr.ErrEventOrderingViolation, completion, now)
	}
	q.Schedule(ItemDone{AgentID: a.ID, ItemID: chosen.ID, QueueID: queueID, At: completion})
	return nil
}
