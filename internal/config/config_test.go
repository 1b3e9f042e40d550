package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default values",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("expected port 8080, got %s", cfg.Port)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("expected log level info, got %s", cfg.LogLevel)
				}
				if cfg.Step != 1*time.Second {
					t.Errorf("expected step 1s, got %v", cfg.Step)
				}
				if cfg.DecisionInterval != 10*time.Minute {
					t.Errorf("expected decision interval 10m, got %v", cfg.DecisionInterval)
				}
				if cfg.DecisionHorizon != 10*time.Minute {
					t.Errorf("expected decision horizon 10m, got %v", cfg.DecisionHorizon)
				}
				if cfg.ForecastHorizon != 8*time.Hour {
					t.Errorf("expected forecast horizon 8h, got %v", cfg.ForecastHorizon)
				}
				if cfg.SpeedMultiplier != 1.0 {
					t.Errorf("expected speed multiplier 1.0, got %v", cfg.SpeedMultiplier)
				}
				if cfg.Bias != 0.5 {
					t.Errorf("expected bias 0.5, got %v", cfg.Bias)
				}
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PORT":             "9000",
				"LOG_LEVEL":        "debug",
				"STEP_SECONDS":     "2",
				"SPEED_MULTIPLIER": "0",
				"BIAS":             "0.75",
				"ALLOWED_ORIGINS":  "http://example.com,http://test.com",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("expected port 9000, got %s", cfg.Port)
				}
				if cfg.Step != 2*time.Second {
					t.Errorf("expected step 2s, got %v", cfg.Step)
				}
				if cfg.SpeedMultiplier != 0 {
					t.Errorf("expected speed multiplier 0, got %v", cfg.SpeedMultiplier)
				}
				if cfg.Bias != 0.75 {
					t.Errorf("expected bias 0.75, got %v", cfg.Bias)
				}
				if len(cfg.AllowedOrigins) != 2 {
					t.Errorf("expected 2 allowed origins, got %d", len(cfg.AllowedOrigins))
				}
			},
		},
		{
			name:    "invalid step",
			env:     map[string]string{"STEP_SECONDS": "not-a-number"},
			wantErr: true,
		},
		{
			name:    "negative step rejected",
			env:     map[string]string{"STEP_SECONDS": "-1"},
			wantErr: true,
		},
		{
			name:    "negative speed multiplier rejected",
			env:     map[string]string{"SPEED_MULTIPLIER": "-0.5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadZeroSpeedMultiplierAllowed(t *testing.T) {
	os.Clearenv()
	os.Setenv("SPEED_MULTIPLIER", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SpeedMultiplier != 0 {
		t.Errorf("expected speed multiplier 0, got %v", cfg.SpeedMultiplier)
	}
}
