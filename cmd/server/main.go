package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tatianab/connections/internal/config"
	"github.com/tatianab/connections/internal/engine"
	"github.com/tatianab/connections/internal/httpserver"
	"github.com/tatianab/connections/internal/models"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())
	logger := cfg.Logger(zerolog.ConsoleWriter{Out: os.Stderr})

	puzzle, err := models.ResolvePuzzle(cfg.PuzzleDir, cfg.PuzzlePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load puzzle")
	}

	engineOpts := []engine.Option{
		engine.WithAttemptLimit(cfg.AttemptLimit),
		engine.WithOneAway(cfg.OneAway),
		engine.WithLogger(logger),
	}
	eng, err := engine.NewEngine(*puzzle, engineOpts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create engine")
	}

	srv := httpserver.New(eng, httpserver.Options{
		PuzzleDir:      cfg.PuzzleDir,
		MessageTimeout: cfg.MessageTimeout,
		EngineOptions:  engineOpts,
	}, logger)

	logger.Info().Str("addr", cfg.Addr).Str("puzzle", puzzle.Title).Msg("starting server")
	if err := srv.Start(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
