package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// GroupSize is the number of words in every category.
	GroupSize = 4
	// CategoryCount is the number of categories on a board.
	CategoryCount = 4
)

// ErrInvalidPuzzle is returned when a puzzle definition breaks the board rules.
var ErrInvalidPuzzle = errors.New("invalid puzzle")

// Colour is the display colour of a solved category.
type Colour string

const (
	Yellow Colour = "yellow"
	Green  Colour = "green"
	Blue   Colour = "blue"
	Purple Colour = "purple"
)

func (c Colour) valid() bool {
	switch c {
	case Yellow, Green, Blue, Purple:
		return true
	}
	return false
}

// Category is one hidden group of the board.
type Category struct {
	Name   string   `yaml:"name"`
	Colour Colour   `yaml:"colour"`
	Words  []string `yaml:"words"`
}

// Puzzle represents the static board definition.
type Puzzle struct {
	Title      string     `yaml:"title"`
	Categories []Category `yaml:"categories"`
}

// Words returns every word of the puzzle in definition order.
func (p Puzzle) Words() []string {
	words := make([]string, 0, len(p.Categories)*GroupSize)
	for _, c := range p.Categories {
		words = append(words, c.Words...)
	}
	return words
}

// Validate checks the board shape: four uniquely named categories of four
// unique, non-empty words, each with a known colour.
func (p Puzzle) Validate() error {
	if len(p.Categories) != CategoryCount {
		return fmt.Errorf("%w: want %d categories, got %d", ErrInvalidPuzzle, CategoryCount, len(p.Categories))
	}

	names := make(map[string]bool, len(p.Categories))
	seen := make(map[string]string, CategoryCount*GroupSize)
	for _, c := range p.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category with empty name", ErrInvalidPuzzle)
		}
		if names[c.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidPuzzle, c.Name)
		}
		names[c.Name] = true

		if !c.Colour.valid() {
			return fmt.Errorf("%w: category %q has unknown colour %q", ErrInvalidPuzzle, c.Name, c.Colour)
		}
		if len(c.Words) != GroupSize {
			return fmt.Errorf("%w: category %q has %d words, want %d", ErrInvalidPuzzle, c.Name, len(c.Words), GroupSize)
		}
		for _, w := range c.Words {
			if strings.TrimSpace(w) == "" {
				return fmt.Errorf("%w: category %q has an empty word", ErrInvalidPuzzle, c.Name)
			}
			if other, ok := seen[w]; ok {
				return fmt.Errorf("%w: word %q appears in %q and %q", ErrInvalidPuzzle, w, other, c.Name)
			}
			seen[w] = c.Name
		}
	}
	return nil
}
