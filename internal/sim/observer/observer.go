// Package observer implements the Worker/Observer (C11): trigger
// detection, the decision-engine call, command translation, and
// one-command-per-tick dispatch to agents in a stable phase.
package observer

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/workforcesim/internal/decision"
	"github.com/dennisdiepolder/workforcesim/internal/engine/events"
	"github.com/dennisdiepolder/workforcesim/internal/engine/eventqueue"
	enginestate "github.com/dennisdiepolder/workforcesim/internal/engine/state"
	"github.com/dennisdiepolder/workforcesim/internal/metrics"
	"github.com/dennisdiepolder/workforcesim/internal/sim/adapter"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
	"github.com/dennisdiepolder/workforcesim/internal/sim/translate"
)

// Worker tracks the last decision-engine invocation and owns the
// engine it calls into.
type Worker struct {
	Engine           *decision.Engine
	DecisionInterval time.Duration
	DecisionHorizon  time.Duration
	lastCall         time.Time
	log              zerolog.Logger
}

// New returns a Worker bound to engine. lastCall starts at the zero
// time, which behaves as negative infinity for the timer trigger
// check on the very first observe.
func New(engine *decision.Engine, decisionInterval, decisionHorizon time.Duration, log zerolog.Logger) *Worker {
	return &Worker{
		Engine:           engine,
		DecisionInterval: decisionInterval,
		DecisionHorizon:  decisionHorizon,
		log:              log,
	}
}

// Observe runs once per tick, after the event batch drain.
func (w *Worker) Observe(s *simstate.State, q *eventqueue.Queue, now time.Time) error {
	if w.shouldDecide(s, now) {
		w.invokeEngine(s, now)
		w.lastCall = now
	}
	return w.dispatch(s, q, now)
}

func (w *Worker) shouldDecide(s *simstate.State, now time.Time) bool {
	if now.Sub(w.lastCall) >= w.DecisionInterval {
		return true
	}
	return anyIdleWithoutPending(s)
}

func anyIdleWithoutPending(s *simstate.State) bool {
	for _, a := range s.Agents {
		if a.Phase == simstate.PhaseIdle && len(a.PendingCommands) == 0 {
			return true
		}
	}
	return false
}

func (w *Worker) invokeEngine(s *simstate.State, now time.Time) {
	engineState := adapter.ToEngineState(s)

	agentIDs := make([]string, 0, len(engineState.Agents))
	for id := range engineState.Agents {
		agentIDs = append(agentIDs, id)
	}
	sort.Strings(agentIDs)
	agents := make([]*enginestate.Agent, 0, len(agentIDs))
	for _, id := range agentIDs {
		agents = append(agents, engineState.Agents[id])
	}

	queueIDs := make([]string, 0, len(engineState.Queues))
	for id := range engineState.Queues {
		queueIDs = append(queueIDs, id)
	}
	sort.Strings(queueIDs)
	queues := make([]*enginestate.Queue, 0, len(queueIDs))
	for _, id := range queueIDs {
		queues = append(queues, engineState.Queues[id])
	}

	assignments := w.Engine.Decide(agents, queues, w.DecisionHorizon, now)
	metrics.Get().RecordDecision(len(agents) * len(queues))

	for _, asg := range assignments {
		a, ok := s.Agents[asg.Agent.ID]
		if !ok {
			continue
		}
		a.PendingCommands = translate.ToSimCommands(asg.Commands, asg.Queue)
	}

	w.log.Debug().
		Int("assignments", len(assignments)).
		Time("now", now).
		Msg("decision engine invoked")
}

func (w *Worker) dispatch(s *simstate.State, q *eventqueue.Queue, now time.Time) error {
	ids := make([]string, 0, len(s.Agents))
	for id := range s.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		a := s.Agents[id]
		if !a.Phase.Stable() {
			continue
		}
		if len(a.PendingCommands) == 0 {
			continue
		}
		cmd := a.PendingCommands[0]
		a.PendingCommands = a.PendingCommands[1:]

		switch c := cmd.(type) {
		case simstate.LoginCommand:
			a.Phase = simstate.PhaseLoggingIn
			q.Schedule(events.LoginDone{AgentID: a.ID, User: c.User, At: now.Add(a.AvgLogin)})
		case simstate.LogoutCommand:
			a.Phase = simstate.PhaseLoggingOut
			q.Schedule(events.LogoutDone{AgentID: a.ID, At: now.Add(a.AvgLogout)})
		case simstate.StartProcessCommand:
			queue, ok := s.Queues[c.QueueID]
			if !ok {
				continue
			}
			a.Phase = simstate.PhaseSettingUpQueue
			a.CurrentQueue = c.QueueID
			q.Schedule(events.SetupDone{AgentID: a.ID, QueueID: c.QueueID, At: now.Add(queue.AvgSetup)})
		case simstate.StopProcessCommand:
			stoppedAt := now
			a.StopRequestedAt = &stoppedAt
			a.ProcessEnabled = false
		}
	}
	return nil
}
