package engine

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/tatianab/connections/internal/models"
)

// numberPuzzle builds the board A:[1..4] B:[5..8] C:[9..12] D:[13..16].
func numberPuzzle() models.Puzzle {
	colours := []models.Colour{models.Yellow, models.Green, models.Blue, models.Purple}
	p := models.Puzzle{Title: "Numbers"}
	for i, name := range []string{"A", "B", "C", "D"} {
		c := models.Category{Name: name, Colour: colours[i]}
		for j := 1; j <= 4; j++ {
			c.Words = append(c.Words, strconv.Itoa(i*4+j))
		}
		p.Categories = append(p.Categories, c)
	}
	return p
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(numberPuzzle(), opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func selectWords(t *testing.T, e *Engine, words ...string) {
	t.Helper()
	for _, w := range words {
		if err := e.ToggleSelect(w); err != nil {
			t.Fatalf("ToggleSelect(%q): %v", w, err)
		}
	}
}

func guess(t *testing.T, e *Engine, words ...string) Outcome {
	t.Helper()
	e.DeselectAll()
	selectWords(t, e, words...)
	return e.Submit()
}

func TestNewEngineRejectsInvalidPuzzle(t *testing.T) {
	p := numberPuzzle()
	p.Categories[0].Words = p.Categories[0].Words[:3]
	if _, err := NewEngine(p); !errors.Is(err, models.ErrInvalidPuzzle) {
		t.Fatalf("Expected ErrInvalidPuzzle, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	s := newTestEngine(t).Snapshot()
	if len(s.Remaining) != 16 || s.Remaining[0] != "1" || s.Remaining[15] != "16" {
		t.Errorf("Unexpected remaining words: %v", s.Remaining)
	}
	if len(s.Selected) != 0 || len(s.Found) != 0 || s.AttemptsUsed != 0 {
		t.Errorf("Expected empty selection, found and attempts: %+v", s)
	}
	if s.AttemptsRemaining != DefaultAttemptLimit {
		t.Errorf("Expected %d attempts remaining, got %d", DefaultAttemptLimit, s.AttemptsRemaining)
	}
	if s.Status != StatusInProgress {
		t.Errorf("Expected in-progress, got %s", s.Status)
	}
}

func TestToggleIsSelfInverse(t *testing.T) {
	e := newTestEngine(t)
	selectWords(t, e, "2", "9")
	for _, w := range numberPuzzle().Words() {
		before := e.Snapshot().Selected
		selectWords(t, e, w, w)
		after := e.Snapshot().Selected
		slices.Sort(before)
		slices.Sort(after)
		if !slices.Equal(before, after) {
			t.Errorf("Toggling %q twice changed selection from %v to %v", w, before, after)
		}
	}
}

func TestToggleRemovesSelectedWord(t *testing.T) {
	e := newTestEngine(t)
	selectWords(t, e, "1", "2", "3")
	selectWords(t, e, "2")
	if got := e.Snapshot().Selected; !slices.Equal(got, []string{"1", "3"}) {
		t.Errorf("Expected [1 3], got %v", got)
	}
}

func TestFifthWordIgnored(t *testing.T) {
	e := newTestEngine(t)
	selectWords(t, e, "1", "2", "3", "4")
	selectWords(t, e, "5")
	if got := e.Snapshot().Selected; !slices.Equal(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("Expected selection unchanged, got %v", got)
	}
	if e.Snapshot().Message != "" {
		t.Errorf("Expected no message, got %q", e.Snapshot().Message)
	}
}

func TestToggleUnknownWord(t *testing.T) {
	e := newTestEngine(t)
	if err := e.ToggleSelect("17"); !errors.Is(err, ErrUnknownWord) {
		t.Errorf("Expected ErrUnknownWord, got %v", err)
	}

	guess(t, e, "4", "3", "2", "1")
	if err := e.ToggleSelect("1"); !errors.Is(err, ErrUnknownWord) {
		t.Errorf("Expected solved word to be rejected, got %v", err)
	}
}

func TestDeselectAll(t *testing.T) {
	e := newTestEngine(t)
	e.DeselectAll()
	selectWords(t, e, "1", "7")
	e.DeselectAll()
	if got := e.Snapshot().Selected; len(got) != 0 {
		t.Errorf("Expected empty selection, got %v", got)
	}
}

func TestSubmitIncomplete(t *testing.T) {
	e := newTestEngine(t)
	selectWords(t, e, "1", "2", "3")
	if got := e.Submit(); got != OutcomeIncomplete {
		t.Errorf("Expected %s, got %s", OutcomeIncomplete, got)
	}
	if e.Snapshot().AttemptsUsed != 0 {
		t.Error("Incomplete submit consumed an attempt")
	}
}

func TestSubmitFindsCategory(t *testing.T) {
	e := newTestEngine(t)
	if got := guess(t, e, "3", "1", "4", "2"); got != OutcomeFound {
		t.Fatalf("Expected %s, got %s", OutcomeFound, got)
	}

	s := e.Snapshot()
	if len(s.Found) != 1 || s.Found[0].Name != "A" || s.Found[0].Colour != models.Yellow {
		t.Fatalf("Expected category A found, got %+v", s.Found)
	}
	if !slices.Equal(s.Found[0].Words, []string{"1", "2", "3", "4"}) {
		t.Errorf("Expected revealed words sorted, got %v", s.Found[0].Words)
	}
	if len(s.Remaining) != 12 || slices.Contains(s.Remaining, "1") {
		t.Errorf("Expected 12 remaining words without category A, got %v", s.Remaining)
	}
	if len(s.Selected) != 0 {
		t.Errorf("Expected selection cleared, got %v", s.Selected)
	}
	if s.AttemptsUsed != 0 {
		t.Errorf("Expected no attempt consumed, got %d", s.AttemptsUsed)
	}
}

func TestSubmitMissOneAway(t *testing.T) {
	e := newTestEngine(t)
	if got := guess(t, e, "1", "2", "3", "5"); got != OutcomeOneAway {
		t.Fatalf("Expected %s, got %s", OutcomeOneAway, got)
	}

	s := e.Snapshot()
	if s.AttemptsUsed != 1 {
		t.Errorf("Expected 1 attempt, got %d", s.AttemptsUsed)
	}
	if s.Message != MessageOneAway {
		t.Errorf("Expected one-away message, got %q", s.Message)
	}
	if len(s.Found) != 0 || len(s.Remaining) != 16 {
		t.Errorf("Expected board unchanged, got %+v", s)
	}
	if !slices.Equal(s.Selected, []string{"1", "2", "3", "5"}) {
		t.Errorf("Expected selection kept after miss, got %v", s.Selected)
	}
}

func TestSubmitMissWithoutHint(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		words   []string
		outcome Outcome
	}{
		{"two and two", nil, []string{"1", "2", "5", "6"}, OutcomeMiss},
		{"one away disabled", []Option{WithOneAway(false)}, []string{"1", "2", "3", "5"}, OutcomeMiss},
		{"spread", nil, []string{"1", "5", "9", "13"}, OutcomeMiss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.opts...)
			if got := guess(t, e, tt.words...); got != tt.outcome {
				t.Errorf("Expected %s, got %s", tt.outcome, got)
			}
			s := e.Snapshot()
			if s.AttemptsUsed != 1 {
				t.Errorf("Expected 1 attempt, got %d", s.AttemptsUsed)
			}
			if s.Message != "" {
				t.Errorf("Expected no message, got %q", s.Message)
			}
		})
	}
}

func TestDuplicateGuess(t *testing.T) {
	e := newTestEngine(t)
	guess(t, e, "1", "2", "5", "6")
	if got := guess(t, e, "6", "5", "2", "1"); got != OutcomeDuplicate {
		t.Fatalf("Expected %s, got %s", OutcomeDuplicate, got)
	}
	s := e.Snapshot()
	if s.AttemptsUsed != 1 {
		t.Errorf("Duplicate consumed an attempt: %d", s.AttemptsUsed)
	}
	if s.Message != MessageDuplicate {
		t.Errorf("Expected duplicate message, got %q", s.Message)
	}
	if len(s.Selected) != 4 {
		t.Errorf("Expected selection kept, got %v", s.Selected)
	}
}

func TestLossIsTerminal(t *testing.T) {
	e := newTestEngine(t)
	guess(t, e, "1", "2", "3", "4")
	misses := [][]string{
		{"5", "6", "9", "10"},
		{"5", "6", "9", "11"},
		{"5", "6", "9", "12"},
	}
	for _, m := range misses {
		guess(t, e, m...)
		if e.Status() != StatusInProgress {
			t.Fatalf("Lost too early after %v", m)
		}
	}
	guess(t, e, "5", "6", "9", "13")

	s := e.Snapshot()
	if s.Status != StatusLoss {
		t.Fatalf("Expected loss, got %s", s.Status)
	}
	if s.AttemptsRemaining != 0 || s.Message != MessageLoss || !s.MessageSticky {
		t.Errorf("Unexpected loss snapshot: %+v", s)
	}

	if got := guess(t, e, "5", "6", "7", "8"); got != OutcomeGameOver {
		t.Errorf("Expected %s after loss, got %s", OutcomeGameOver, got)
	}
	e.DeselectAll()
	if e.Status() != StatusLoss || len(e.Snapshot().Found) != 1 {
		t.Errorf("Loss state changed: %+v", e.Snapshot())
	}
}

func TestWinIsTerminal(t *testing.T) {
	e := newTestEngine(t)
	guess(t, e, "1", "2", "3", "5")
	for _, c := range numberPuzzle().Categories {
		if got := guess(t, e, c.Words...); got != OutcomeFound {
			t.Fatalf("Expected %s for %s, got %s", OutcomeFound, c.Name, got)
		}
	}

	s := e.Snapshot()
	if s.Status != StatusWin || s.Message != MessageWin {
		t.Fatalf("Expected win, got %+v", s)
	}
	if len(s.Remaining) != 0 || s.AttemptsRemaining != 3 {
		t.Errorf("Unexpected win snapshot: %+v", s)
	}
	if got := e.Submit(); got != OutcomeGameOver {
		t.Errorf("Expected %s after win, got %s", OutcomeGameOver, got)
	}
	gotNames := []string{}
	for _, f := range s.Found {
		gotNames = append(gotNames, f.Name)
	}
	if !slices.Equal(gotNames, []string{"A", "B", "C", "D"}) {
		t.Errorf("Expected solve order, got %v", gotNames)
	}
}

func TestAttemptLimitOption(t *testing.T) {
	e := newTestEngine(t, WithAttemptLimit(1))
	guess(t, e, "1", "2", "5", "6")
	if e.Status() != StatusLoss {
		t.Errorf("Expected loss after one miss, got %s", e.Status())
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t)
	guess(t, e, "1", "2", "3", "4")
	for i := 0; i < 4; i++ {
		guess(t, e, "5", "6", "9", strconv.Itoa(13+i))
	}
	if e.Status() != StatusLoss {
		t.Fatalf("Expected loss before reset, got %s", e.Status())
	}

	e.Reset()
	s := e.Snapshot()
	if !slices.Equal(s.Remaining, numberPuzzle().Words()) {
		t.Errorf("Expected full board, got %v", s.Remaining)
	}
	if len(s.Selected) != 0 || len(s.Found) != 0 || s.AttemptsUsed != 0 {
		t.Errorf("Expected cleared state, got %+v", s)
	}
	if s.Status != StatusInProgress || s.Message != MessageReset {
		t.Errorf("Expected in-progress with reset message, got %+v", s)
	}
}

func TestClearMessage(t *testing.T) {
	e := newTestEngine(t)
	guess(t, e, "1", "2", "3", "5")
	stale := e.MessageID()
	guess(t, e, "1", "2", "3", "5")
	fresh := e.MessageID()

	if stale == fresh {
		t.Fatal("Expected a new message id for a new message")
	}
	if e.ClearMessage(stale) {
		t.Error("Stale id cleared a newer message")
	}
	if e.Snapshot().Message != MessageDuplicate {
		t.Errorf("Expected duplicate message to survive, got %q", e.Snapshot().Message)
	}
	if !e.ClearMessage(fresh) {
		t.Error("Expected current id to clear the message")
	}
	if e.Snapshot().Message != "" {
		t.Errorf("Expected message cleared, got %q", e.Snapshot().Message)
	}
}

func TestLossMessageNotCleared(t *testing.T) {
	e := newTestEngine(t, WithAttemptLimit(1))
	guess(t, e, "1", "2", "5", "6")
	if e.ClearMessage(e.MessageID()) {
		t.Error("Loss message was cleared")
	}
	if e.Snapshot().Message != MessageLoss {
		t.Errorf("Expected loss message, got %q", e.Snapshot().Message)
	}
}

func TestSignatureIsOrderIndependent(t *testing.T) {
	a := Signature([]string{"Oven", "Me", "November", "Pied Piper i guess"})
	b := Signature([]string{"Pied Piper i guess", "November", "Oven", "Me"})
	if a != b || a != "Me, November, Oven, Pied Piper i guess" {
		t.Errorf("Unexpected signatures %q and %q", a, b)
	}
	words := []string{"b", "a"}
	Signature(words)
	if words[0] != "b" {
		t.Error("Signature mutated its input")
	}
}
