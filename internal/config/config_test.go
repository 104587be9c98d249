package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg JigsawConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultJigsawConfig() {
		t.Errorf("embedded = %+v\nhardcoded = %+v", cfg, DefaultJigsawConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if w, h := cfg.PieceCells(); w != 5 || h != 2 {
		t.Errorf("PieceCells() = %dx%d, want 5x2", w, h)
	}
}

func TestLoadJigsawCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "grid:\n  rows: 2\n  cols: 2\nsnap:\n  slot: 40\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadJigsaw(path)
	if err != nil {
		t.Fatalf("LoadJigsaw() failed: %v", err)
	}
	if cfg.Grid.Rows != 2 || cfg.Grid.Cols != 2 {
		t.Errorf("grid = %+v, want 2x2", cfg.Grid)
	}
	if cfg.Snap.Slot != 40 || cfg.Snap.Piece != 12 {
		t.Errorf("snap = %+v, want slot 40 and default piece 12", cfg.Snap)
	}
}

func TestLoadJigsawErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadJigsaw(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("render:\n  cell_width: 30\n"), 0o600) //nolint:errcheck
	_, err := LoadJigsaw(bad)
	if !errors.Is(err, ErrBadCells) {
		t.Errorf("LoadJigsaw() error = %v, want ErrBadCells", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*JigsawConfig)
		want   error
	}{
		{"zero cols", func(c *JigsawConfig) { c.Grid.Cols = 0 }, ErrBadGrid},
		{"negative piece", func(c *JigsawConfig) { c.Board.PieceHeight = -1 }, ErrBadPiece},
		{"zero snap", func(c *JigsawConfig) { c.Snap.Piece = 0 }, ErrBadSnap},
		{"zero cell", func(c *JigsawConfig) { c.Render.CellHeight = 0 }, ErrBadRender},
		{"piece smaller than a cell", func(c *JigsawConfig) { c.Board.PieceWidth = 10 }, ErrBadCells},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultJigsawConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestApplyJigsawPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		rows, cols int
		cellsW     int
	}{
		{DifficultyEasy, 3, 4, 5},
		{DifficultyNormal, 6, 8, 5},
		{DifficultyHard, 8, 10, 4},
	}
	for _, tc := range tests {
		cfg := DefaultJigsawConfig()
		ApplyJigsawPreset(&cfg, tc.preset)
		if cfg.Grid.Rows != tc.rows || cfg.Grid.Cols != tc.cols {
			t.Errorf("%s: grid = %+v", tc.preset, cfg.Grid)
		}
		if w, _ := cfg.PieceCells(); w != tc.cellsW {
			t.Errorf("%s: piece width = %d cells, want %d", tc.preset, w, tc.cellsW)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", tc.preset, err)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParseDifficulty(\"\") = %q, %v", p, err)
	}
	if p, err := ParseDifficulty("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("fixed"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadScoreServerDefaults(t *testing.T) {
	cfg, err := LoadScoreServer()
	if err != nil {
		t.Fatalf("LoadScoreServer() failed: %v", err)
	}
	if cfg.Addr != ":8888" || cfg.App != "irys-jigsaw" || cfg.AcceptZero {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeout)
	}
}

func TestLoadScoreServerOverrides(t *testing.T) {
	t.Setenv("SCORE_ADDR", "127.0.0.1:9000")
	t.Setenv("SCORE_ACCEPT_ZERO", "true")
	t.Setenv("SCORE_WRITE_TIMEOUT", "2s")

	cfg, err := LoadScoreServer()
	if err != nil {
		t.Fatalf("LoadScoreServer() failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || !cfg.AcceptZero || cfg.WriteTimeout != 2*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("JIGSAW_SCORE_TIMEOUT", "soon")

	_, err := LoadClient()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
