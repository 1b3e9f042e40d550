package redistribute

import (
	"testing"

	"github.com/dennisdiepolder/workforcesim/internal/decision/populate"
	"github.com/dennisdiepolder/workforcesim/internal/engine/state"
)

func TestRedistributeShedsExcessFromOversubscribedCandidate(t *testing.T) {
	queueA := &state.Queue{ID: "a"}
	queueB := &state.Queue{ID: "b"}

	over := &populate.Candidate{Queue: queueA, Priority: 1, TaskCount: 10, RealCapacity: 3}
	under := &populate.Candidate{Queue: queueB, Priority: 1, TaskCount: 2, RealCapacity: 5}

	Redistribute([]*populate.Candidate{over, under})

	if over.TaskCount != over.RealCapacity {
		t.Errorf("expected the over-subscribed candidate to shed its excess down to its real capacity, got TaskCount %d", over.TaskCount)
	}
	if under.TaskCount <= 2 {
		t.Errorf("expected the neighboring candidate to absorb the shed tasks, got TaskCount %d", under.TaskCount)
	}
}

func TestRedistributeLeavesAlreadySatisfiedCandidatesUntouched(t *testing.T) {
	queue := &state.Queue{ID: "a"}
	c := &populate.Candidate{Queue: queue, Priority: 1, TaskCount: 2, RealCapacity: 5}

	Redistribute([]*populate.Candidate{c})

	if c.TaskCount != 2 {
		t.Errorf("expected an already-satisfied candidate to be untouched, got TaskCount %d", c.TaskCount)
	}
}

func TestRedistributeHandlesSingleCandidate(t *testing.T) {
	queue := &state.Queue{ID: "a"}
	c := &populate.Candidate{Queue: queue, Priority: 1, TaskCount: 10, RealCapacity: 2}

	Redistribute([]*populate.Candidate{c})

	if c.TaskCount != 10 {
		t.Errorf("expected a lone over-subscribed candidate to be left as-is with nothing to borrow from, got %d", c.TaskCount)
	}
}
