// Package metrics is a manual Prometheus-text exporter for the
// simulator, built as a singleton-via-sync.Once.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds the counters and gauges the control surface exposes at
// /metrics.
type Metrics struct {
	mu sync.RWMutex

	TicksTotal               int64
	EventsAppliedTotal       int64
	TickErrorsTotal          int64
	DecisionCallsTotal       int64
	CandidatesEvaluatedTotal int64
	ForecastRunsTotal        int64
	ForecastFailuresTotal    int64
	lastTickDuration         time.Duration

	startTime time.Time
}

var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{startTime: time.Now()}
	})
	return instance
}

// RecordTick records one tick's duration and event count.
func (m *Metrics) RecordTick(duration time.Duration, eventsApplied int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TicksTotal++
	m.EventsAppliedTotal += int64(eventsApplied)
	m.lastTickDuration = duration
}

// RecordTickError increments the tick error counter.
func (m *Metrics) RecordTickError() {
	m.mu.Lock()
	m.TickErrorsTotal++
	m.mu.Unlock()
}

// RecordDecision records one decision-engine invocation.
func (m *Metrics) RecordDecision(candidatesEvaluated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecisionCallsTotal++
	m.CandidatesEvaluatedTotal += int64(candidatesEvaluated)
}

// RecordForecastRun records a completed forecast run.
func (m *Metrics) RecordForecastRun() {
	m.mu.Lock()
	m.ForecastRunsTotal++
	m.mu.Unlock()
}

// RecordForecastFailure records a swallowed forecast failure.
func (m *Metrics) RecordForecastFailure() {
	m.mu.Lock()
	m.ForecastFailuresTotal++
	m.mu.Unlock()
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		write := func(name string, value interface{}) {
			switch v := value.(type) {
			case int64:
				w.Write([]byte(name + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		write("workforcesim_uptime_seconds", time.Since(m.startTime).Seconds())
		write("workforcesim_ticks_total", m.TicksTotal)
		write("workforcesim_events_applied_total", m.EventsAppliedTotal)
		write("workforcesim_tick_errors_total", m.TickErrorsTotal)
		write("workforcesim_decision_calls_total", m.DecisionCallsTotal)
		write("workforcesim_candidates_evaluated_total", m.CandidatesEvaluatedTotal)
		write("workforcesim_forecast_runs_total", m.ForecastRunsTotal)
		write("workforcesim_forecast_failures_total", m.ForecastFailuresTotal)
		write("workforcesim_last_tick_duration_seconds", m.lastTickDuration.Seconds())
	}
}
