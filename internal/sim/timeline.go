package sim

import (
	"sort"
	"time"

	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// SegmentKind is the kind of activity a timeline segment represents.
type SegmentKind int

const (
	SegmentLogin SegmentKind = iota
	SegmentLogout
	SegmentSetup
	SegmentWorking
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLogin:
		return "login"
	case SegmentLogout:
		return "logout"
	case SegmentSetup:
		return "setup"
	case SegmentWorking:
		return "working"
	default:
		return "unknown"
	}
}

// TimelineSegment is one span of an agent's activity produced by a
// forecast run (§4.12): start, end, kind, and the queue it concerns
// (empty for login/logout).
type TimelineSegment struct {
	AgentID string
	Start   time.Time
	End     time.Time
	Kind    SegmentKind
	QueueID string
}

// phaseDiffer tracks each agent's open segment across ticks and closes
// it whenever the agent's phase changes, producing the forecast's
// timeline by diffing successive snapshots rather than recording every
// tick.
type phaseDiffer struct {
	open map[string]*TimelineSegment
	done []TimelineSegment
}

func newPhaseDiffer(s *simstate.State, now time.Time) *phaseDiffer {
	d := &phaseDiffer{open: make(map[string]*TimelineSegment)}
	d.observe(s, now)
	return d
}

func segmentKindFor(p simstate.Phase) (SegmentKind, bool) {
	switch p {
	case simstate.PhaseLoggingIn:
		return SegmentLogin, true
	case simstate.PhaseLoggingOut:
		return SegmentLogout, true
	case simstate.PhaseSettingUpQueue:
		return SegmentSetup, true
	case simstate.PhaseWorking:
		return SegmentWorking, true
	default:
		return 0, false
	}
}

func (d *phaseDiffer) observe(s *simstate.State, now time.Time) {
	ids := make([]string, 0, len(s.Agents))
	for id := range s.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
		a := s.Agents[id]
		kind, active := segmentKindFor(a.Phase)
		queueID := a.CurrentQueue
		if kind == SegmentLogin || kind == SegmentLogout {
			queueID = ""
		}

		open, hasOpen := d.open[id]
		switch {
		case active && hasOpen && open.Kind == kind && open.QueueID == queueID:
			// same segment continues
		case active:
			if hasOpen {
				open.End = now
				d.done = append(d.done, *open)
			}
			d.open[id] = &TimelineSegment{AgentID: id, Start: now, Kind: kind, QueueID: queueID}
		case hasOpen:
			open.End = now
			d.done = append(d.done, *open)
			delete(d.open, id)
		}
	}
}

// flush closes every still-open segment at endTime and returns the
// complete, chronologically stable timeline.
func (d *phaseDiffer) flush(endTime time.Time) []TimelineSegment {
	ids := make([]string, 0, len(d.open))
	for id := range d.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		seg := d.open[id]
		seg.End = endTime
		d.done = append(d.done, *seg)
	}
	d.open = make(map[string]*TimelineSegment)
	return d.done
}
