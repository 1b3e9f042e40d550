// Package config loads and validates the simulator's runtime
// configuration: godotenv.Load() (ignored if absent) plus a getEnv
// helper, failing fast on invalid values rather than panicking later.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dennisdiepolder/workforcesim/internal/apperr"
)

// Config holds the simulator's tunable options, plus the ambient
// ones the control surface and logger need.
type Config struct {
	Port             string
	AllowedOrigins   []string
	LogLevel         string
	FixturePath      string

	Step             time.Duration
	DecisionInterval time.Duration
	DecisionHorizon  time.Duration
	ForecastHorizon  time.Duration
	SpeedMultiplier  float64
	Bias             float64
}

// Load reads environment variables (optionally from a .env file) and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FixturePath: getEnv("FIXTURE_PATH", "fixtures/default.json"),
	}
	cfg.AllowedOrigins = splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))

	var err error
	if cfg.Step, err = getDuration("STEP_SECONDS", 1*time.Second); err != nil {
		return nil, err
	}
	if cfg.DecisionInterval, err = getDuration("DECISION_INTERVAL_SECONDS", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DecisionHorizon, err = getDuration("DECISION_HORIZON_SECONDS", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ForecastHorizon, err = getDuration("FORECAST_HORIZON_SECONDS", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SpeedMultiplier, err = getFloat("SPEED_MULTIPLIER", 1.0); err != nil {
		return nil, err
	}
	if cfg.Bias, err = getFloat("BIAS", 0.5); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	durations := map[string]time.Duration{
		"step":              c.Step,
		"decision_interval": c.DecisionInterval,
		"decision_horizon":  c.DecisionHorizon,
		"forecast_horizon":  c.ForecastHorizon,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %s", apperr.ErrConfigurationInvalid, name, d)
		}
	}
	if c.SpeedMultiplier < 0 {
		return fmt.Errorf("%w: speed_multiplier must be >= 0, got %f", apperr.ErrConfigurationInvalid, c.SpeedMultiplier)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", apperr.ErrConfigurationInvalid, key, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", apperr.ErrConfigurationInvalid, key, err)
	}
	return v, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
