package artwork

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
)

const checker = `
id: checker
palette:
  r: red
  b: blue
rows:
  - "rb"
  - "b."
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(checker))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if p.Width != 2 || p.Height != 2 || p.Title != "checker" {
		t.Errorf("picture = %+v", p)
	}
	if px := p.At(0, 0); px.Color != core.ColorRed || px.Glyph != GlyphFill {
		t.Errorf("At(0,0) = %+v", px)
	}
	if px := p.At(1, 1); px != Background {
		t.Errorf("unknown palette char should be background, got %+v", px)
	}
	if px := p.At(5, 5); px != Background {
		t.Errorf("out of range should be background, got %+v", px)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no rows", "id: x\n", ErrEmptyPicture},
		{"ragged", "palette: {a: red}\nrows: [\"aa\", \"a\"]\n", ErrRaggedRows},
		{"long key", "palette: {ab: red}\nrows: [\"a\"]\n", ErrBadPalette},
		{"bad color", "palette: {a: teal}\nrows: [\"a\"]\n", ErrBadPalette},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); !errors.Is(err, tc.want) {
				t.Errorf("Parse() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	ids := BuiltinIDs()
	if len(ids) < 3 {
		t.Fatalf("BuiltinIDs() = %v", ids)
	}
	for _, id := range ids {
		p, err := Builtin(id)
		if err != nil {
			t.Errorf("Builtin(%q) failed: %v", id, err)
			continue
		}
		if p.ID != id {
			t.Errorf("Builtin(%q).ID = %q", id, p.ID)
		}
	}
	if _, err := Builtin("nope"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Builtin(nope) error = %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	if err := os.WriteFile(path, []byte("palette: {g: green}\nrows: [\"gg\"]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if p.ID != "tiny" || p.At(1, 0).Color != core.ColorGreen {
		t.Errorf("picture = %+v", p)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrUnknown) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestSampleNearestNeighbor(t *testing.T) {
	p, _ := Parse([]byte(checker))
	s := p.Sample(4, 4)

	// Each source pixel becomes a 2x2 block.
	if s[0][0].Color != core.ColorRed || s[1][1].Color != core.ColorRed {
		t.Error("top-left quadrant should be red")
	}
	if s[0][2].Color != core.ColorBlue || s[3][0].Color != core.ColorBlue {
		t.Error("off-diagonal quadrants should be blue")
	}
	if s[3][3] != Background {
		t.Error("bottom-right quadrant should be background")
	}
}

func TestSlice(t *testing.T) {
	p, _ := Parse([]byte(checker))
	blocks := Slice(p, 2, 2, 3, 1)

	if len(blocks) != 4 {
		t.Fatalf("len(blocks) = %d, want 4", len(blocks))
	}
	for i, b := range blocks {
		if len(b) != 1 || len(b[0]) != 3 {
			t.Fatalf("block %d is %dx%d, want 3x1", i, len(b[0]), len(b))
		}
	}
	// Row-major: piece 1 is top-right (blue), piece 3 bottom-right (background).
	if blocks[0][0][0].Color != core.ColorRed || blocks[1][0][2].Color != core.ColorBlue {
		t.Error("blocks not in row-major order")
	}
	if blocks[3][0][1] != Background {
		t.Error("piece 3 should be background")
	}
}
