package state

import (
	"testing"
	"time"
)

func newTestState() *State {
	s := New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Agents["agent-1"] = &Agent{
		ID:            "agent-1",
		Phase:         PhaseWorking,
		CurrentItem:   "task-1",
		LastItemStart: &start,
		PendingCommands: []Command{
			LoginCommand{User: "svc-1"},
		},
	}
	s.Queues["queue-1"] = &Queue{
		ID: "queue-1",
		Pending: []*Task{
			{ID: "task-2", Priority: 1},
		},
		Finished: []FinishedTask{
			{ID: "task-1", AgentID: "agent-1", Duration: time.Minute},
		},
	}
	return s
}

func TestDeepCloneIsIndependent(t *testing.T) {
	s := newTestState()
	clone := s.DeepClone()

	clone.Agents["agent-1"].CurrentItem = "mutated"
	clone.Agents["agent-1"].PendingCommands[0] = LogoutCommand{}
	clone.Queues["queue-1"].Pending[0].Priority = 99
	clone.Queues["queue-1"].Finished[0].AgentID = "mutated"
	*clone.Agents["agent-1"].LastItemStart = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	if s.Agents["agent-1"].CurrentItem != "task-1" {
		t.Error("mutating the clone's agent leaked into the original")
	}
	if _, ok := s.Agents["agent-1"].PendingCommands[0].(LoginCommand); !ok {
		t.Error("mutating the clone's pending commands leaked into the original")
	}
	if s.Queues["queue-1"].Pending[0].Priority != 1 {
		t.Error("mutating the clone's pending task leaked into the original")
	}
	if s.Queues["queue-1"].Finished[0].AgentID != "agent-1" {
		t.Error("mutating the clone's finished history leaked into the original")
	}
	if s.Agents["agent-1"].LastItemStart.Year() == 2030 {
		t.Error("mutating the clone's pointer field leaked into the original")
	}
}

func TestClaimedItems(t *testing.T) {
	s := newTestState()
	s.Agents["agent-2"] = &Agent{ID: "agent-2"}

	claimed := s.ClaimedItems()
	if _, ok := claimed["task-1"]; !ok {
		t.Error("expected task-1 to be reported as claimed")
	}
	if len(claimed) != 1 {
		t.Errorf("expected exactly one claimed item, got %d", len(claimed))
	}
}

func TestQueueAvgItemDurationFallsBackWithNoHistory(t *testing.T) {
	q := &Queue{}
	if got := q.AvgItemDuration(); got != 3*time.Minute {
		t.Errorf("expected 3m fallback with no finished history, got %v", got)
	}
}

func TestQueueAvgItemDurationAveragesHistory(t *testing.T) {
	q := &Queue{Finished: []FinishedTask{
		{Duration: 2 * time.Minute},
		{Duration: 4 * time.Minute},
	}}
	if got := q.AvgItemDuration(); got != 3*time.Minute {
		t.Errorf("expected average of 3m, got %v", got)
	}
}

func TestRemovePending(t *testing.T) {
	q := &Queue{Pending: []*Task{{ID: "a"}, {ID: "b"}}}

	removed := q.RemovePending("a")
	if removed == nil || removed.ID != "a" {
		t.Fatalf("expected to remove task a, got %v", removed)
	}
	if len(q.Pending) != 1 || q.Pending[0].ID != "b" {
		t.Errorf("expected only task b left pending, got %v", q.Pending)
	}

	if got := q.RemovePending("missing"); got != nil {
		t.Errorf("expected nil removing a task not in Pending, got %v", got)
	}
}

func TestPhaseStable(t *testing.T) {
	stable := []Phase{PhaseLoggedOut, PhaseIdle}
	for _, p := range stable {
		if !p.Stable() {
			t.Errorf("expected %v to be stable", p)
		}
	}
	unstable := []Phase{PhaseLoggingIn, PhaseLoggingOut, PhaseSettingUpQueue, PhaseWorking}
	for _, p := range unstable {
		if p.Stable() {
			t.Errorf("expected %v to be unstable", p)
		}
	}
}
