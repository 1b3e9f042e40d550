// Package select implements the Greedy Selector (C9): iterated arg-max
// over benefit-then-tiebreak, with sibling decrement and removal. The
// outer loop always terminates because every iteration removes exactly
// one candidate (P4).
package selectpkg

import (
	"github.com/dennisdiepolder/workforcesim/internal/decision/benefit"
	"github.com/dennisdiepolder/workforcesim/internal/decision/populate"
	"github.com/dennisdiepolder/workforcesim/internal/decision/redistribute"
)

// Select runs the greedy loop to completion and returns the selected
// candidates in pick order.
func Select(candidates []*populate.Candidate, bias float64) []*populate.Candidate {
	remaining := make([]*populate.Candidate, len(candidates))
	copy(remaining, candidates)

	assignedCount := make(map[string]int)
	var selected []*populate.Candidate

	for len(remaining) > 0 {
		redistribute.Redistribute(remaining)

		bestIdx := argMax(remaining, bias, assignedCount)
		best := remaining[bestIdx]
		selected = append(selected, best)
		assignedCount[best.Queue.ID]++

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		for _, c := range remaining {
			if c.Priority == best.Priority && c.Queue.ID == best.Queue.ID {
				c.TaskCount -= best.TaskCount
			}
		}
	}
	return selected
}

func argMax(candidates []*populate.Candidate, bias float64, assignedCount map[string]int) int {
	best := 0
	bestBenefit := candidateBenefit(candidates[0], bias, assignedCount)
	for i := 1; i < len(candidates); i++ {
		b := candidateBenefit(candidates[i], bias, assignedCount)
		switch b.Compare(bestBenefit) {
		case 1:
			best, bestBenefit = i, b
		case 0:
			if tieBreakBeats(candidates[i], candidates[best]) {
				best, bestBenefit = i, b
			}
		}
	}
	return best
}

func candidateBenefit(c *populate.Candidate, bias float64, assignedCount map[string]int) benefit.Benefit {
	weight := benefit.QueueWeight(c.Queue, bias)
	priority := c.Priority
	if priority < 1 {
		priority = 1
	}
	base := benefit.Finite(float64(c.RealCapacity) * weight / float64(priority))
	return benefit.ApplyOverrides(base, c.Queue, c.Priority, assignedCount[c.Queue.ID])
}

// tieBreakBeats reports whether a should be preferred over b when
// their benefits compare equal: must_run wins, then higher
// criticality, then shorter SLA (B4).
func tieBreakBeats(a, b *populate.Candidate) bool {
	if a.Queue.MustRun != b.Queue.MustRun {
		return a.Queue.MustRun
	}
	if a.Queue.Criticality != b.Queue.Criticality {
		return a.Queue.Criticality > b.Queue.Criticality
	}
	return a.Queue.SLA < b.Queue.SLA
}
