// Package artwork loads the pixel-art pictures that puzzles are cut from.
//
// A picture file is YAML:
//
//	id: sunset
//	title: Sunset
//	palette:
//	  o: orange
//	  b: blue
//	rows:
//	  - "oooobbbb"
//	  - "oobbbbbb"
//
// Each row character is looked up in the palette; unknown characters and
// spaces are drawn as background.
package artwork

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
)

//go:embed pictures/*.yaml
var builtinFS embed.FS

// Glyphs used when drawing pixels.
const (
	GlyphFill       = '█'
	GlyphBackground = '░'
)

// Pixel is one cell of a picture.
type Pixel struct {
	Glyph rune
	Color core.Color
}

// Background is drawn where the picture has no color.
var Background = Pixel{Glyph: GlyphBackground, Color: core.ColorGray}

// Picture is a parsed pixel-art image.
type Picture struct {
	ID     string
	Title  string
	Width  int
	Height int
	pixels []Pixel
}

// yamlPicture is the on-disk format.
type yamlPicture struct {
	ID      string            `yaml:"id"`
	Title   string            `yaml:"title"`
	Palette map[string]string `yaml:"palette"`
	Rows    []string          `yaml:"rows"`
}

var (
	ErrEmptyPicture = errors.New("artwork: picture has no pixels")
	ErrRaggedRows   = errors.New("artwork: rows have different widths")
	ErrBadPalette   = errors.New("artwork: bad palette entry")
	ErrUnknown      = errors.New("artwork: unknown picture")
)

// Parse decodes a YAML picture.
func Parse(data []byte) (*Picture, error) {
	var yp yamlPicture
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return nil, fmt.Errorf("artwork: yaml unmarshal: %w", err)
	}
	if len(yp.Rows) == 0 || yp.Rows[0] == "" {
		return nil, ErrEmptyPicture
	}

	palette := make(map[rune]core.Color, len(yp.Palette))
	for key, name := range yp.Palette {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: key %q must be one character", ErrBadPalette, key)
		}
		c, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown color %q", ErrBadPalette, name)
		}
		r, _ := utf8.DecodeRuneInString(key)
		palette[r] = c
	}

	width := utf8.RuneCountInString(yp.Rows[0])
	p := &Picture{
		ID:     yp.ID,
		Title:  yp.Title,
		Width:  width,
		Height: len(yp.Rows),
		pixels: make([]Pixel, 0, width*len(yp.Rows)),
	}
	for i, row := range yp.Rows {
		if utf8.RuneCountInString(row) != width {
			return nil, fmt.Errorf("%w: row %d", ErrRaggedRows, i)
		}
		for _, r := range row {
			c, ok := palette[r]
			if !ok || c == core.ColorDefault {
				p.pixels = append(p.pixels, Background)
				continue
			}
			p.pixels = append(p.pixels, Pixel{Glyph: GlyphFill, Color: c})
		}
	}
	if p.Title == "" {
		p.Title = p.ID
	}
	return p, nil
}

// LoadFile reads and parses a picture file.
func LoadFile(filePath string) (*Picture, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("artwork: reading file %s: %w", filePath, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("artwork: parsing file %s: %w", filePath, err)
	}
	if p.ID == "" {
		p.ID = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	}
	return p, nil
}

// Builtin returns an embedded picture by id.
func Builtin(id string) (*Picture, error) {
	data, err := builtinFS.ReadFile("pictures/" + id + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return Parse(data)
}

// BuiltinIDs lists the embedded pictures in sorted order.
func BuiltinIDs() []string {
	entries, err := builtinFS.ReadDir("pictures")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// Load resolves a built-in id first, then a file path.
func Load(ref string) (*Picture, error) {
	if p, err := Builtin(ref); err == nil {
		return p, nil
	}
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, ref)
	}
	return LoadFile(ref)
}

// At returns the pixel at (x, y), or Background when out of range.
func (p *Picture) At(x, y int) Pixel {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return Background
	}
	return p.pixels[y*p.Width+x]
}

// Sample scales the picture to w x h cells by nearest neighbor.
func (p *Picture) Sample(w, h int) [][]Pixel {
	out := make([][]Pixel, h)
	for y := range out {
		out[y] = make([]Pixel, w)
		sy := y * p.Height / h
		for x := range out[y] {
			out[y][x] = p.At(x*p.Width/w, sy)
		}
	}
	return out
}

// Block is the image of one piece, indexed [row][col] in cells.
type Block [][]Pixel

// Slice scales the picture to a rows x cols grid of cellW x cellH pieces and
// returns one block per piece in row-major order.
func Slice(p *Picture, rows, cols, cellW, cellH int) []Block {
	full := p.Sample(cols*cellW, rows*cellH)
	blocks := make([]Block, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b := make(Block, cellH)
			for y := range b {
				src := full[r*cellH+y]
				b[y] = append([]Pixel(nil), src[c*cellW:(c+1)*cellW]...)
			}
			blocks = append(blocks, b)
		}
	}
	return blocks
}
