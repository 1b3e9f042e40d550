package eventqueue

import (
	"testing"
	"time"

	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

type stubEvent struct {
	at  time.Time
	tag string
}

func (e stubEvent) When() time.Time                        { return e.at }
func (e stubEvent) Apply(s *simstate.State, q *Queue) error { return nil }
func (e stubEvent) Clone() Event                            { return stubEvent{at: e.at, tag: e.tag} }

func TestPopBatchOrdersByEarliestTimestamp(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := New()
	q.Schedule(stubEvent{at: base.Add(2 * time.Second), tag: "later"})
	q.Schedule(stubEvent{at: base.Add(1 * time.Second), tag: "earlier"})

	batch, err := q.PopBatch()
	if err != nil {
		t.Fatalf("PopBatch: %v", err)
	}
	if len(batch) != 1 || batch[0].(stubEvent).tag != "earlier" {
		t.Errorf("expected the earliest-scheduled event first, got %v", batch)
	}

	batch, err = q.PopBatch()
	if err != nil {
		t.Fatalf("PopBatch: %v", err)
	}
	if len(batch) != 1 || batch[0].(stubEvent).tag != "later" {
		t.Errorf("expected the later event second, got %v", batch)
	}
}

func TestPopBatchGroupsSameTimestamp(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := New()
	q.Schedule(stubEvent{at: base, tag: "a"})
	q.Schedule(stubEvent{at: base, tag: "b"})

	batch, err := q.PopBatch()
	if err != nil {
		t.Fatalf("PopBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Errorf("expected both events scheduled at the same instant in one batch, got %d", len(batch))
	}
}

func TestPopBatchEmptyQueueErrors(t *testing.T) {
	q := New()
	if _, err := q.PopBatch(); err == nil {
		t.Error("expected an error popping from an empty queue")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := New()
	q.Schedule(stubEvent{at: base, tag: "original"})

	clone := q.Clone()
	q.Schedule(stubEvent{at: base.Add(time.Second), tag: "added-after-clone"})

	if clone.Len() != 1 {
		t.Errorf("expected clone to be unaffected by schedules on the original, got len %d", clone.Len())
	}
}

func TestNextTimestampReflectsEarliestPending(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := New()
	q.Schedule(stubEvent{at: base.Add(5 * time.Second)})
	q.Schedule(stubEvent{at: base.Add(1 * time.Second)})

	ts, ok := q.NextTimestamp()
	if !ok {
		t.Fatal("expected a next timestamp")
	}
	if !ts.Equal(base.Add(1 * time.Second)) {
		t.Errorf("expected earliest timestamp, got %v", ts)
	}
}
