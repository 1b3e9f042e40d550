// Package redistribute implements the Redistributor (C8): it
// equalizes task counts across same-priority candidates so an
// over-subscribed candidate sheds its excess onto a neighboring one
// before selection runs, avoiding overallocation (P8: relative
// capacity never exceeds 1 after this runs).
package redistribute

import (
	"sort"

	"github.com/dennisdiepolder/workforcesim/internal/decision/populate"
)

// Redistribute packs candidates into a stack ordered by priority
// ascending (lower number = higher priority, popped first). For each
// over-subscribed candidate (RelativeCapacity < 1) it pairs with the
// next candidate on the stack and moves the signed difference between
// real capacity and task count: negative, since the candidate is
// over-subscribed, so this sheds its excess onto the neighbor (clamped
// so a neighbor never gives up more than it has) until no more
// progress can be made. It mutates TaskCount on the candidates in
// place; the slice itself is not reordered for the caller.
func Redistribute(candidates []*populate.Candidate) {
	stack := make([]*populate.Candidate, len(candidates))
	copy(stack, candidates)
	sort.SliceStable(stack, func(i, j int) bool {
		return stack[i].Priority < stack[j].Priority
	})
	// Reverse so popping from the end yields ascending-priority order.
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}

	pop := func() *populate.Candidate {
		if len(stack) == 0 {
			return nil
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return c
	}
	push := func(c *populate.Candidate) {
		stack = append(stack, c)
	}

	for len(stack) >= 1 {
		a := pop()
		if a.RelativeCapacity() >= 1 {
			continue
		}
		b := pop()
		if b == nil {
			break
		}
		moved := a.RealCapacity - a.TaskCount
		if moved > 0 && b.TaskCount < moved {
			moved = b.TaskCount
		}
		a.TaskCount += moved
		b.TaskCount -= moved
		if b.TaskCount > 0 {
			push(b)
		}
		if a.RelativeCapacity() < 1 {
			push(a)
		}
	}
}
