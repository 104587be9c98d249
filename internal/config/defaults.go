package config

import (
	_ "embed"
)

//go:embed defaults/jigsaw.yaml
var defaultJigsawYAML []byte

// DefaultJigsawConfig returns the built-in configuration: an 8x6 grid of
// 100x100 pieces, snap tolerances 30 and 12, rendered at 20x50 units per cell.
func DefaultJigsawConfig() JigsawConfig {
	return JigsawConfig{
		Grid: GridConfig{Rows: 6, Cols: 8},
		Board: BoardConfig{
			X:           20,
			Y:           100,
			PieceWidth:  100,
			PieceHeight: 100,
		},
		Snap: SnapConfig{Slot: 30, Piece: 12},
		Scatter: ScatterConfig{
			Margin:  60,
			Top:     100,
			Lattice: true,
		},
		Render:  RenderConfig{CellWidth: 20, CellHeight: 50},
		Picture: "sunset",
	}
}

// MiniJigsawConfig returns a 3x2 puzzle for quick rounds.
func MiniJigsawConfig() JigsawConfig {
	cfg := DefaultJigsawConfig()
	cfg.Grid = GridConfig{Rows: 2, Cols: 3}
	cfg.Picture = "heart"
	return cfg
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultJigsawYAML
}
