// Package benefit implements the decision engine's benefit model (C6):
// a scalar benefit with ordinal overrides and a total order where
// Infinite beats every Finite value regardless of its float.
package benefit

import "github.com/dennisdiepolder/workforcesim/internal/engine/state"

// Benefit is a sum type, Finite(float) or Infinite. It is never
// represented as a sentinel float: Infinite is its own case, so
// ordering and equality never depend on how large a "very large
// number" happens to be.
type Benefit struct {
	infinite bool
	value    float64
}

// Finite returns a finite benefit of v.
func Finite(v float64) Benefit {
	return Benefit{value: v}
}

// Infinite returns the top element of the order.
func Infinite() Benefit {
	return Benefit{infinite: true}
}

// IsInfinite reports whether b is the Infinite case.
func (b Benefit) IsInfinite() bool {
	return b.infinite
}

// Value returns the finite value. Calling it on Infinite is a misuse;
// it returns 0 rather than panicking since callers that care check
// IsInfinite first.
func (b Benefit) Value() float64 {
	if b.infinite {
		return 0
	}
	return b.value
}

// Compare returns -1, 0, or 1 as b is less than, equal to, or greater
// than other. Infinite > every Finite; two Infinites are equal (P5).
func (b Benefit) Compare(other Benefit) int {
	switch {
	case b.infinite && other.infinite:
		return 0
	case b.infinite:
		return 1
	case other.infinite:
		return -1
	case b.value > other.value:
		return 1
	case b.value < other.value:
		return -1
	default:
		return 0
	}
}

// QueueWeight is criticality plus bias times the queue's SLA-failure
// fraction.
func QueueWeight(q *state.Queue, bias float64) float64 {
	return float64(q.Criticality) + bias*q.FailureFraction()
}

// ApplyOverrides applies the three ordinal rule overrides in spec
// order — MustRun, then max-resources, then min-resources — each
// allowed to overwrite whatever the previous rule produced.
func ApplyOverrides(base Benefit, q *state.Queue, priority, alreadyAssigned int) Benefit {
	b := base
	if q.MustRun && priority == 1 {
		b = Infinite()
	}
	if q.MaxResources > 0 && alreadyAssigned >= q.MaxResources {
		b = Finite(0)
	}
	if q.MinResources > 0 && alreadyAssigned < q.MinResources {
		b = Infinite()
	}
	return b
}
