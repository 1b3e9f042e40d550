package populate

import (
	"testing"
	"time"

	"github.com/dennisdiepolder/workforcesim/internal/engine/state"
)

func TestRealCapacity(t *testing.T) {
	tests := []struct {
		name                            string
		horizon, overhead, itemDuration time.Duration
		want                            int
	}{
		{"plenty of horizon", time.Hour, 10 * time.Minute, 10 * time.Minute, 5},
		{"horizon shorter than overhead", time.Minute, time.Hour, time.Minute, 0},
		{"zero item duration", time.Hour, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RealCapacity(tt.horizon, tt.overhead, tt.itemDuration); got != tt.want {
				t.Errorf("RealCapacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCandidateRelativeCapacity(t *testing.T) {
	tests := []struct {
		name         string
		taskCount    int
		realCapacity int
		want         float64
	}{
		{"zero tasks is trivially satisfied", 0, 0, 1},
		{"capacity exceeds demand", 2, 10, 1},
		{"capacity under demand", 10, 2, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Candidate{TaskCount: tt.taskCount, RealCapacity: tt.realCapacity}
			if got := c.RelativeCapacity(); got != tt.want {
				t.Errorf("RelativeCapacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPopulateCrossProduct(t *testing.T) {
	agent := &state.Agent{ID: "agent-1", State: state.LoggedOut{}}
	queue := &state.Queue{
		ID:       "queue-1",
		AvgSetup: time.Minute,
		Pending: []*state.Task{
			{ID: "t1", Priority: 1},
			{ID: "t2", Priority: 1},
			{ID: "t3", Priority: 2},
		},
	}

	candidates := Populate([]*state.Agent{agent}, []*state.Queue{queue}, time.Hour, time.Now())

	if len(candidates) != 2 {
		t.Fatalf("expected one candidate per distinct priority (2), got %d", len(candidates))
	}
	byPriority := make(map[int]*Candidate)
	for _, c := range candidates {
		byPriority[c.Priority] = c
	}
	if byPriority[1].TaskCount != 2 {
		t.Errorf("expected 2 tasks at priority 1, got %d", byPriority[1].TaskCount)
	}
	if byPriority[2].TaskCount != 1 {
		t.Errorf("expected 1 task at priority 2, got %d", byPriority[2].TaskCount)
	}
}

func TestPopulateEmptyInputsYieldNoCandidates(t *testing.T) {
	if got := Populate(nil, nil, time.Hour, time.Now()); got != nil {
		t.Errorf("expected nil candidates for empty agents and queues, got %v", got)
	}
}
