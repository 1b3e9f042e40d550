package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dennisdiepolder/workforcesim/internal/config"
	"github.com/dennisdiepolder/workforcesim/internal/control"
	"github.com/dennisdiepolder/workforcesim/internal/ingest/staticfile"
	"github.com/dennisdiepolder/workforcesim/internal/obslog"
	"github.com/dennisdiepolder/workforcesim/internal/sim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := obslog.New(cfg.LogLevel)
	log.Logger = logger

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Str("fixture_path", cfg.FixturePath).
		Msg("starting workforcesim")

	start := time.Now()
	source := staticfile.New(cfg.FixturePath, start)

	simCfg := sim.Config{
		Step:             cfg.Step,
		DecisionInterval: cfg.DecisionInterval,
		DecisionHorizon:  cfg.DecisionHorizon,
		ForecastHorizon:  cfg.ForecastHorizon,
		SpeedMultiplier:  cfg.SpeedMultiplier,
		Bias:             cfg.Bias,
	}

	ctrl, err := control.New(simCfg, source, source, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build simulator from fixture")
	}
	ctrl.Start()

	r := control.NewRouter(ctrl, cfg.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down workforcesim...")
	ctrl.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("workforcesim stopped")
}
