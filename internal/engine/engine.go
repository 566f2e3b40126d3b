package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tatianab/connections/internal/models"
)

const (
	// DefaultAttemptLimit is the number of failed guesses before the game is lost.
	DefaultAttemptLimit = 4

	MessageDuplicate = "Already guessed!"
	MessageOneAway   = "One away..."
	MessageLoss      = "Uh oh.. maybe I made it too hard but you can reset and try again!"
	MessageWin       = "Go team!"
	MessageReset     = "Resetting board"

	signatureSep = ", "
)

// ErrUnknownWord is returned when toggling a word that is not on the board.
var ErrUnknownWord = errors.New("word is not on the board")

// Status is the overall game outcome.
type Status string

const (
	StatusInProgress Status = "inprogress"
	StatusWin        Status = "win"
	StatusLoss       Status = "loss"
)

// Outcome describes what a call to Submit did.
type Outcome string

const (
	OutcomeIncomplete Outcome = "incomplete" // fewer than four words selected
	OutcomeGameOver   Outcome = "gameover"
	OutcomeDuplicate  Outcome = "duplicate"
	OutcomeMiss       Outcome = "miss"
	OutcomeOneAway    Outcome = "oneaway"
	OutcomeFound      Outcome = "found"
)

// Option configures an Engine.
type Option func(*Engine)

// WithAttemptLimit sets how many failed guesses end the game.
func WithAttemptLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.attemptLimit = n
		}
	}
}

// WithOneAway toggles the "one away" hint on near misses.
func WithOneAway(enabled bool) Option {
	return func(e *Engine) { e.oneAway = enabled }
}

// WithLogger sets the logger used for guess tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine holds the state of a single board. It is not safe for concurrent use.
type Engine struct {
	puzzle       models.Puzzle
	bySignature  map[string]int // attempt signature -> category index
	categoryOf   map[string]int // word -> category index
	attemptLimit int
	oneAway      bool
	log          zerolog.Logger

	remaining []string
	found     []int
	selected  []string
	attempts  []string
	message   string
	messageID uint64
	status    Status
}

// NewEngine validates the puzzle and starts a fresh game on it.
func NewEngine(p models.Puzzle, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		puzzle:       clonePuzzle(p),
		bySignature:  make(map[string]int, len(p.Categories)),
		categoryOf:   make(map[string]int, len(p.Categories)*models.GroupSize),
		attemptLimit: DefaultAttemptLimit,
		oneAway:      true,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for i, c := range e.puzzle.Categories {
		e.bySignature[Signature(c.Words)] = i
		for _, w := range c.Words {
			e.categoryOf[w] = i
		}
	}

	e.restart()
	return e, nil
}

// Signature returns the canonical, order-independent form of a word set.
func Signature(words []string) string {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	return strings.Join(sorted, signatureSep)
}

func clonePuzzle(p models.Puzzle) models.Puzzle {
	out := models.Puzzle{Title: p.Title, Categories: make([]models.Category, len(p.Categories))}
	for i, c := range p.Categories {
		out.Categories[i] = models.Category{Name: c.Name, Colour: c.Colour, Words: slices.Clone(c.Words)}
	}
	return out
}

func (e *Engine) restart() {
	e.remaining = e.puzzle.Words()
	e.found = nil
	e.selected = nil
	e.attempts = nil
	e.status = StatusInProgress
}

// Puzzle returns the board definition.
func (e *Engine) Puzzle() models.Puzzle {
	return clonePuzzle(e.puzzle)
}

// Status reports the current game outcome.
func (e *Engine) Status() Status {
	return e.status
}

// ToggleSelect adds word to the selection, or removes it if already selected.
// A fifth word is ignored. Nothing changes once the game is over.
func (e *Engine) ToggleSelect(word string) error {
	if !slices.Contains(e.remaining, word) {
		return fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	if e.status != StatusInProgress {
		return nil
	}

	if i := slices.Index(e.selected, word); i >= 0 {
		e.selected = slices.Delete(e.selected, i, i+1)
		return nil
	}
	if len(e.selected) < models.GroupSize {
		e.selected = append(e.selected, word)
	}
	return nil
}

// DeselectAll clears the selection.
func (e *Engine) DeselectAll() {
	e.selected = nil
}

// Submit evaluates the current selection as a guess.
func (e *Engine) Submit() Outcome {
	if e.status != StatusInProgress {
		return OutcomeGameOver
	}
	if len(e.selected) != models.GroupSize {
		return OutcomeIncomplete
	}

	attempt := Signature(e.selected)
	logger := e.log.With().Str("attempt", attempt).Logger()

	if slices.Contains(e.attempts, attempt) {
		e.setMessage(MessageDuplicate)
		logger.Debug().Msg("duplicate guess")
		return OutcomeDuplicate
	}

	idx, ok := e.bySignature[attempt]
	if !ok {
		e.attempts = append(e.attempts, attempt)
		outcome := OutcomeMiss
		if e.oneAway && e.isOneAway() {
			outcome = OutcomeOneAway
			e.setMessage(MessageOneAway)
		}
		logger.Debug().Int("attempts", len(e.attempts)).Str("outcome", string(outcome)).Msg("wrong guess")
		e.updateStatus()
		return outcome
	}

	words := e.puzzle.Categories[idx].Words
	e.remaining = slices.DeleteFunc(e.remaining, func(w string) bool {
		return slices.Contains(words, w)
	})
	e.found = append(e.found, idx)
	e.selected = nil
	logger.Debug().Str("category", e.puzzle.Categories[idx].Name).Msg("category found")
	e.updateStatus()
	return OutcomeFound
}

// isOneAway reports whether some category shares all but one word with the selection.
func (e *Engine) isOneAway() bool {
	counts := make(map[int]int, len(e.puzzle.Categories))
	for _, w := range e.selected {
		counts[e.categoryOf[w]]++
	}
	for _, n := range counts {
		if n == models.GroupSize-1 {
			return true
		}
	}
	return false
}

func (e *Engine) updateStatus() {
	switch {
	case len(e.attempts) >= e.attemptLimit:
		e.status = StatusLoss
		e.setMessage(MessageLoss)
		e.log.Info().Int("found", len(e.found)).Msg("game lost")
	case len(e.found) == len(e.puzzle.Categories):
		e.status = StatusWin
		e.setMessage(MessageWin)
		e.log.Info().Int("attempts", len(e.attempts)).Msg("game won")
	}
}

// Reset starts the board over.
func (e *Engine) Reset() {
	e.restart()
	e.setMessage(MessageReset)
	e.log.Debug().Msg("board reset")
}

func (e *Engine) setMessage(msg string) {
	e.messageID++
	e.message = msg
}

// MessageID identifies the message currently shown. It changes every time a
// message is set, even to the same text.
func (e *Engine) MessageID() uint64 {
	return e.messageID
}

// ClearMessage removes the message if id is still the current one. The loss
// message is never cleared.
func (e *Engine) ClearMessage(id uint64) bool {
	if id != e.messageID || e.message == "" || e.status == StatusLoss {
		return false
	}
	e.message = ""
	return true
}
