package engine

import (
	"slices"

	"github.com/tatianab/connections/internal/models"
)

// FoundCategory is a solved category as shown to the player.
type FoundCategory struct {
	Name   string        `json:"name"`
	Colour models.Colour `json:"colour"`
	Words  []string      `json:"words"` // sorted, as in the attempt signature
}

// Snapshot is a read-only copy of the observable game state.
type Snapshot struct {
	Title             string          `json:"title"`
	Remaining         []string        `json:"remaining"`
	Found             []FoundCategory `json:"found"`
	Selected          []string        `json:"selected"`
	AttemptsUsed      int             `json:"attempts_used"`
	AttemptsRemaining int             `json:"attempts_remaining"`
	Message           string          `json:"message,omitempty"`
	MessageID         uint64          `json:"message_id"`
	MessageSticky     bool            `json:"message_sticky"`
	Status            Status          `json:"status"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	found := make([]FoundCategory, 0, len(e.found))
	for _, idx := range e.found {
		c := e.puzzle.Categories[idx]
		words := slices.Clone(c.Words)
		slices.Sort(words)
		found = append(found, FoundCategory{Name: c.Name, Colour: c.Colour, Words: words})
	}

	return Snapshot{
		Title:             e.puzzle.Title,
		Remaining:         append([]string{}, e.remaining...),
		Found:             found,
		Selected:          append([]string{}, e.selected...),
		AttemptsUsed:      len(e.attempts),
		AttemptsRemaining: e.attemptLimit - len(e.attempts),
		Message:           e.message,
		MessageID:         e.messageID,
		MessageSticky:     e.status == StatusLoss,
		Status:            e.status,
	}
}

// IsSelected reports whether word is part of the current selection.
func (s Snapshot) IsSelected(word string) bool {
	return slices.Contains(s.Selected, word)
}

// CanSubmit reports whether a full selection is ready on a live board.
func (s Snapshot) CanSubmit() bool {
	return s.Status == StatusInProgress && len(s.Selected) == models.GroupSize
}
