package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/connections/internal/config"
	"github.com/tatianab/connections/internal/engine"
	"github.com/tatianab/connections/internal/models"
)

const maxTurns = 10

// Script is a list of guesses to replay, e.g.
//
//	guesses:
//	  - [Another, Bee, Cards, Eager]
//	  - [Another, Bee, Cards, Digging]
type Script struct {
	Guesses [][]string `yaml:"guesses"`
}

// Usage: simulate_game [script.yaml]
//
// Without a script a naive player guesses the first four remaining words,
// swapping in the next unused word after every miss.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger := cfg.Logger(zerolog.ConsoleWriter{Out: os.Stderr})

	puzzle, err := models.ResolvePuzzle(cfg.PuzzleDir, cfg.PuzzlePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load puzzle")
	}

	eng, err := engine.NewEngine(*puzzle,
		engine.WithAttemptLimit(cfg.AttemptLimit),
		engine.WithOneAway(cfg.OneAway),
		engine.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}

	var next func(turn int, snap engine.Snapshot) []string
	if len(os.Args) > 1 {
		script, err := loadScript(os.Args[1])
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load script")
		}
		next = func(turn int, _ engine.Snapshot) []string {
			if turn > len(script.Guesses) {
				return nil
			}
			return script.Guesses[turn-1]
		}
	} else {
		next = naivePlayer()
	}

	fmt.Printf("Puzzle: %s\n\n", puzzle.Title)
	for turn := 1; turn <= maxTurns; turn++ {
		snap := eng.Snapshot()
		words := next(turn, snap)
		if words == nil {
			fmt.Println("Script finished.")
			break
		}

		fmt.Printf("--- Turn %d ---\n", turn)
		fmt.Printf("Guess: %v\n", words)
		eng.DeselectAll()
		for _, w := range words {
			if err := eng.ToggleSelect(w); err != nil {
				fmt.Printf("Skipping: %v\n", err)
			}
		}

		outcome := eng.Submit()
		snap = eng.Snapshot()
		fmt.Printf("Outcome: %s\n", outcome)
		if snap.Message != "" {
			fmt.Printf("Message: %s\n", snap.Message)
		}
		fmt.Printf("Found: %d, Attempts remaining: %d\n\n", len(snap.Found), snap.AttemptsRemaining)

		if snap.Status == engine.StatusWin {
			fmt.Println("Game Ended: Player Won!")
			break
		}
		if snap.Status == engine.StatusLoss {
			fmt.Println("Game Ended: Player Lost!")
			break
		}
	}
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}
	return &s, nil
}

// naivePlayer returns a strategy that keeps three words of its last guess and
// cycles the fourth through the rest of the board.
func naivePlayer() func(int, engine.Snapshot) []string {
	swap := 0
	return func(_ int, snap engine.Snapshot) []string {
		words := snap.Remaining
		if len(words) < models.GroupSize {
			return nil
		}
		if len(snap.Selected) == 0 {
			swap = 0
		}
		guess := append([]string{}, words[:models.GroupSize-1]...)
		idx := models.GroupSize - 1 + swap%(len(words)-models.GroupSize+1)
		swap++
		return append(guess, words[idx])
	}
}
