package control

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Handler exposes the Controller over HTTP with plain JSON request and
// response shapes.
type Handler struct {
	ctrl *Controller
	log  zerolog.Logger
}

// NewHandler returns a Handler bound to ctrl.
func NewHandler(ctrl *Controller, log zerolog.Logger) *Handler {
	return &Handler{ctrl: ctrl, log: log}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Start handles POST /sim/start.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Start()
	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// Pause handles POST /sim/pause.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Pause()
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

// Resume handles POST /sim/resume.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Resume()
	writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

// Reset handles POST /sim/reset. An optional JSON body may carry a
// start_time override; without one, the reset start time is now.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime *time.Time `json:"start_time,omitempty"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	start := time.Now()
	if req.StartTime != nil {
		start = *req.StartTime
	}

	if err := h.ctrl.Reset(start); err != nil {
		h.log.Error().Err(err).Msg("reset failed")
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Speed handles POST /sim/speed {"multiplier": float}.
func (h *Handler) Speed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Multiplier float64 `json:"multiplier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Multiplier < 0 {
		writeError(w, http.StatusBadRequest, "multiplier must be >= 0")
		return
	}
	h.ctrl.SetSpeed(req.Multiplier)
	writeJSON(w, http.StatusOK, map[string]float64{"multiplier": req.Multiplier})
}

// Snapshot handles GET /sim/snapshot.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

// Forecast handles GET /sim/forecast, returning the most recently
// published forecast result. The forecast itself is refreshed
// automatically by the running live loop, not by this request.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	latest := h.ctrl.LatestForecast()
	if latest == nil {
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "computing"})
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "workforcesim"})
}
