package models

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed puzzles/default.yaml
var defaultPuzzle []byte

// DefaultPuzzle returns the built-in board.
func DefaultPuzzle() (*Puzzle, error) {
	return ParsePuzzle(defaultPuzzle)
}

// ParsePuzzle decodes and validates a YAML puzzle definition.
func ParsePuzzle(data []byte) (*Puzzle, error) {
	var p Puzzle
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPuzzle reads a puzzle from path. An empty path yields the default puzzle.
func LoadPuzzle(path string) (*Puzzle, error) {
	if path == "" {
		return DefaultPuzzle()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParsePuzzle(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ListPuzzles returns the names of the puzzle files in dir, without their
// extension. A missing directory is not an error.
func ListPuzzles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	puzzles := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			puzzles = append(puzzles, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	return puzzles, nil
}

// PuzzlePath resolves a puzzle name from ListPuzzles back to its file in dir.
func PuzzlePath(dir, name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("puzzle %q not found in %s", name, dir)
}

// ResolvePuzzle loads ref as a file path, falling back to a puzzle name in
// dir. An empty ref yields the default puzzle.
func ResolvePuzzle(dir, ref string) (*Puzzle, error) {
	if ref == "" {
		return DefaultPuzzle()
	}
	if _, err := os.Stat(ref); err == nil {
		return LoadPuzzle(ref)
	}
	path, err := PuzzlePath(dir, ref)
	if err != nil {
		return nil, err
	}
	return LoadPuzzle(path)
}
