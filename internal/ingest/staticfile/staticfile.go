// Package staticfile is a trivial real implementation of ingest's
// TaskWaveSource and RosterSource — not a mock — that reads a JSON
// fixture file, for local runs and tests where no real CSV/log
// connector is wired.
package staticfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dennisdiepolder/workforcesim/internal/ingest"
	simstate "github.com/dennisdiepolder/workforcesim/internal/sim/state"
)

// Fixture is the on-disk shape of a local run's roster and waves.
type Fixture struct {
	Agents []AgentFixture `json:"agents"`
	Queues []QueueFixture `json:"queues"`
	Waves  []WaveFixture  `json:"waves"`
}

type AgentFixture struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AvgLoginMS int64  `json:"avg_login_ms"`
	AvgLogoutMS int64 `json:"avg_logout_ms"`
}

type QueueFixture struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerUserID  string `json:"owner_user_id"`
	AvgSetupMS   int64  `json:"avg_setup_ms"`
	SLAMinutes   int64  `json:"sla_minutes"`
	Criticality  int    `json:"criticality"`
	MinResources int    `json:"min_resources"`
	MaxResources int    `json:"max_resources"`
	ForceMax     bool   `json:"force_max"`
	MustRun      bool   `json:"must_run"`
}

type WaveFixture struct {
	AtOffsetSeconds int64        `json:"at_offset_seconds"`
	QueueID         string       `json:"queue_id"`
	Tasks           []TaskFixture `json:"tasks"`
}

type TaskFixture struct {
	ID           string `json:"id"`
	Priority     int    `json:"priority"`
	SLAMinutes   int64  `json:"sla_minutes"`
}

// Source reads a Fixture from a JSON file, anchoring wave offsets to
// Start.
type Source struct {
	Path  string
	Start time.Time
}

// New returns a Source reading path, with wave offsets relative to
// start.
func New(path string, start time.Time) *Source {
	return &Source{Path: path, Start: start}
}

func (s *Source) load() (*Fixture, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", s.Path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", s.Path, err)
	}
	return &f, nil
}

// Roster implements ingest.RosterSource.
func (s *Source) Roster(ctx context.Context) ([]*simstate.Agent, []*simstate.Queue, error) {
	f, err := s.load()
	if err != nil {
		return nil, nil, err
	}

	agents := make([]*simstate.Agent, len(f.Agents))
	for i, a := range f.Agents {
		agents[i] = &simstate.Agent{
			ID:        a.ID,
			Name:      a.Name,
			Phase:     simstate.PhaseLoggedOut,
			AvgLogin:  time.Duration(a.AvgLoginMS) * time.Millisecond,
			AvgLogout: time.Duration(a.AvgLogoutMS) * time.Millisecond,
		}
	}

	queues := make([]*simstate.Queue, len(f.Queues))
	for i, q := range f.Queues {
		queues[i] = &simstate.Queue{
			ID:           q.ID,
			Name:         q.Name,
			OwnerUserID:  q.OwnerUserID,
			AvgSetup:     time.Duration(q.AvgSetupMS) * time.Millisecond,
			SLA:          time.Duration(q.SLAMinutes) * time.Minute,
			Criticality:  q.Criticality,
			MinResources: q.MinResources,
			MaxResources: q.MaxResources,
			ForceMax:     q.ForceMax,
			MustRun:      q.MustRun,
		}
	}
	return agents, queues, nil
}

// Waves implements ingest.TaskWaveSource.
func (s *Source) Waves(ctx context.Context) ([]ingest.TaskWave, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}

	waves := make([]ingest.TaskWave, len(f.Waves))
	for i, w := range f.Waves {
		at := s.Start.Add(time.Duration(w.AtOffsetSeconds) * time.Second)
		tasks := make([]ingest.TaskSpec, len(w.Tasks))
		for j, t := range w.Tasks {
			tasks[j] = ingest.TaskSpec{
				ID:          t.ID,
				CreatedAt:   at,
				SLADeadline: at.Add(time.Duration(t.SLAMinutes) * time.Minute),
				Priority:    t.Priority,
			}
		}
		waves[i] = ingest.TaskWave{At: at, QueueID: w.QueueID, Tasks: tasks}
	}
	return waves, nil
}
