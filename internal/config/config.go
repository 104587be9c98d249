// Package config provides YAML-based puzzle configuration, difficulty presets
// and environment-driven settings for the scoring service.
package config

import (
	"errors"
	"fmt"
)

// JigsawConfig contains all configuration for a jigsaw session.
// Lengths are in plane units; the render section maps them to terminal cells.
type JigsawConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Board   BoardConfig   `yaml:"board"`
	Snap    SnapConfig    `yaml:"snap"`
	Scatter ScatterConfig `yaml:"scatter"`
	Render  RenderConfig  `yaml:"render"`
	Picture string        `yaml:"picture"` // Built-in picture name or path to a picture file
}

// GridConfig is the number of pieces along each axis.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// BoardConfig places the board and sizes its pieces.
type BoardConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	PieceWidth  float64 `yaml:"piece_width"`
	PieceHeight float64 `yaml:"piece_height"`
}

// SnapConfig holds the two snapping tolerances.
type SnapConfig struct {
	Slot  float64 `yaml:"slot"`  // Max distance to the home slot for a board snap
	Piece float64 `yaml:"piece"` // Per-axis alignment needed for a peer merge
}

// ScatterConfig controls where loose pieces start.
type ScatterConfig struct {
	Margin  float64 `yaml:"margin"`  // Gap between the board's right edge and the scatter area
	Top     float64 `yaml:"top"`     // Top of the scatter area
	Lattice bool    `yaml:"lattice"` // Snap scatter positions to whole cells
}

// RenderConfig maps plane units to terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

var (
	ErrBadGrid   = errors.New("config: grid rows and cols must be positive")
	ErrBadPiece  = errors.New("config: piece size must be positive")
	ErrBadSnap   = errors.New("config: snap tolerances must be positive")
	ErrBadRender = errors.New("config: cell size must be positive")
	ErrBadCells  = errors.New("config: piece size must be a whole number of cells")
)

// Validate checks that the config describes a playable puzzle.
func (c JigsawConfig) Validate() error {
	switch {
	case c.Grid.Rows <= 0 || c.Grid.Cols <= 0:
		return ErrBadGrid
	case c.Board.PieceWidth <= 0 || c.Board.PieceHeight <= 0:
		return ErrBadPiece
	case c.Snap.Slot <= 0 || c.Snap.Piece <= 0:
		return ErrBadSnap
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return ErrBadRender
	}
	if !whole(c.Board.PieceWidth/c.Render.CellWidth) || !whole(c.Board.PieceHeight/c.Render.CellHeight) {
		return fmt.Errorf("%w: %vx%v with cells %vx%v", ErrBadCells,
			c.Board.PieceWidth, c.Board.PieceHeight, c.Render.CellWidth, c.Render.CellHeight)
	}
	return nil
}

// PieceCells returns the size of one piece in terminal cells.
func (c JigsawConfig) PieceCells() (w, h int) {
	return int(c.Board.PieceWidth / c.Render.CellWidth), int(c.Board.PieceHeight / c.Render.CellHeight)
}

func whole(f float64) bool {
	return f >= 1 && f == float64(int(f))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. An empty name means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}
