package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "jigsaw.yaml"

// LoadJigsaw loads the puzzle configuration.
// Search order: customPath -> ~/.jigsaw/configs/jigsaw.yaml -> ./configs/jigsaw.yaml -> embedded default
func LoadJigsaw(customPath string) (JigsawConfig, error) {
	// Fields missing from a file keep their defaults.
	cfg := DefaultJigsawConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	if err := yaml.Unmarshal(defaultJigsawYAML, &cfg); err != nil {
		return DefaultJigsawConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads a config file; unreadable or invalid files are skipped.
func tryLoad(path string) (JigsawConfig, bool) {
	cfg := DefaultJigsawConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jigsaw", "configs", filename)
}

// ApplyJigsawPreset resizes the grid for a difficulty preset.
// Hard puzzles use narrower pieces so the board still fits an 80-column terminal.
func ApplyJigsawPreset(cfg *JigsawConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Grid = GridConfig{Rows: 3, Cols: 4}
	case DifficultyNormal:
		cfg.Grid = GridConfig{Rows: 6, Cols: 8}
	case DifficultyHard:
		cfg.Grid = GridConfig{Rows: 8, Cols: 10}
		cfg.Board.PieceWidth = 4 * cfg.Render.CellWidth
		cfg.Board.PieceHeight = 2 * cfg.Render.CellHeight
	}
}
