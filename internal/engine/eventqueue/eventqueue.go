// Package eventqueue implements the simulator's time-ordered event
// multimap (C2): schedule by timestamp, retrieve the earliest batch
// atomically, preserving insertion order within a batch.
package eventqueue

import (
	"container/heap"
	"time"

	"github.com/dennisdiepolder/workforcesim/internal/apperr"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// Event is anything that can be scheduled on the queue. Apply is the
// sole mutator of simulator state; it may schedule successor events on
// the same queue (e.g. ItemDone scheduling the next ItemDone via
// claim-and-schedule).
type Event interface {
	When() time.Time
	Apply(s *simstate.State, q *Queue) error
	Clone() Event
}

// Queue is a multimap from timestamp to the ordered events scheduled
// at that instant. It is not safe for concurrent use: the live tick
// loop is single-threaded, and a forecast operates on its own cloned
// Queue.
type Queue struct {
	byTime map[time.Time][]Event
	times  timeHeap
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{byTime: make(map[time.Time][]Event)}
}

// Schedule adds event at its own When() timestamp.
func (q *Queue) Schedule(e Event) {
	t := e.When()
	if _, ok := q.byTime[t]; !ok {
		heap.Push(&q.times, t)
	}
	q.byTime[t] = append(q.byTime[t], e)
}

// NextTimestamp returns the earliest scheduled timestamp, if any.
func (q *Queue) NextTimestamp() (time.Time, bool) {
	if len(q.times) == 0 {
		return time.Time{}, false
	}
	return q.times[0], true
}

// PopBatch removes and returns every event scheduled at the earliest
// timestamp. It fails if the queue is empty; callers check
// NextTimestamp first.
func (q *Queue) PopBatch() ([]Event, error) {
	if len(q.times) == 0 {
		return nil, apperr.ErrBatchMissing
	}
	t := heap.Pop(&q.times).(time.Time)
	batch := q.byTime[t]
	delete(q.byTime, t)
	return batch, nil
}

// Clear removes every scheduled event.
func (q *Queue) Clear() {
	q.byTime = make(map[time.Time][]Event)
	q.times = nil
}

// Len reports the number of distinct scheduled timestamps.
func (q *Queue) Len() int {
	return len(q.times)
}

// Clone returns an independent copy: every event is cloned, and the
// timestamp heap is rebuilt rather than shared.
func (q *Queue) Clone() *Queue {
	out := New()
	for t, events := range q.byTime {
		cloned := make([]Event, len(events))
		for i, e := range events {
			cloned[i] = e.Clone()
		}
		out.byTime[t] = cloned
		heap.Push(&out.times, t)
	}
	return out
}

type timeHeap []time.Time

func (h timeHeap) Len() int            { return len(h) }
func (h timeHeap) Less(i, j int) bool  { return h[i].Before(h[j]) }
func (h timeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timeHeap) Push(x interface{}) { *h = append(*h, x.(time.Time)) }
func (h *timeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
