// Package jigsaw is the playable puzzle: it owns a puzzle.State, maps terminal
// cells onto the board plane and turns pointer and key input into drags and
// drops.
package jigsaw

import (
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/tui-jigsaw/internal/artwork"
	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/registry"
)

// Rows reserved outside the play area.
const (
	hudRow     = 0 // Nickname, time and moves
	footerRows = 1 // Key help on the last row
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// pictureRef overrides the configured picture when set
var pictureRef string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetPicture selects a built-in picture id or a picture file path.
func SetPicture(ref string) {
	pictureRef = ref
}

func init() {
	registry.Register("jigsaw", func() registry.Game { return New() })
	registry.Register("jigsaw_mini", func() registry.Game { return NewMini() })
}

// Game implements registry.Game for the jigsaw puzzle.
type Game struct {
	mini bool

	runtime core.RuntimeConfig
	cfg     config.JigsawConfig
	picture *artwork.Picture
	blocks  []artwork.Block
	state   *puzzle.State

	// Piece size in cells
	pieceW, pieceH int

	// Selection and drag
	selected  puzzle.PieceID
	hasSel    bool
	dragging  bool
	grab      puzzle.Vec // Piece center minus pointer, kept for the whole drag
	showHint  bool
	tickCount int

	completion *puzzle.Completion
	status     string // Footer note built from the last puzzle events
	held       int    // Size of the group last picked up or moved

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
	loadErr        error
}

// New creates the full-size puzzle.
func New() *Game {
	return &Game{}
}

// NewMini creates the quick 3x2 puzzle.
func NewMini() *Game {
	return &Game{mini: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mini {
		return "jigsaw_mini"
	}
	return "jigsaw"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mini {
		return "Jigsaw (Mini)"
	}
	return "Jigsaw"
}

// Reset loads the config and picture and scatters a fresh puzzle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.loadErr = nil

	cfg, err := config.LoadJigsaw(configPath)
	if err != nil {
		g.loadErr = err
		cfg = config.DefaultJigsawConfig()
	}
	if g.mini {
		mini := config.MiniJigsawConfig()
		cfg.Grid = mini.Grid
		cfg.Picture = mini.Picture
	} else if difficultyPreset != "" {
		config.ApplyJigsawPreset(&cfg, difficultyPreset)
	}
	if pictureRef != "" {
		cfg.Picture = pictureRef
	}
	g.cfg = cfg
	g.pieceW, g.pieceH = cfg.PieceCells()

	pic, err := artwork.Load(cfg.Picture)
	if err != nil {
		g.loadErr = err
		pic, _ = artwork.Builtin(config.DefaultJigsawConfig().Picture)
	}
	g.picture = pic
	g.blocks = artwork.Slice(pic, cfg.Grid.Rows, cfg.Grid.Cols, g.pieceW, g.pieceH)

	g.state = nil
	g.hasSel = false
	g.dragging = false
	g.showHint = false
	g.tickCount = 0
	g.completion = nil
	g.status = ""
	g.held = 0

	g.computeMinSize()
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
	if !g.screenTooSmall {
		g.newPuzzle()
	}
}

// Resize updates the screen size without reshuffling a puzzle in progress.
// A puzzle that could not start on a small screen starts once it fits.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
	if !g.screenTooSmall && g.state == nil {
		g.newPuzzle()
	}
}

func (g *Game) newPuzzle() {
	st, err := puzzle.New(g.options())
	if err != nil {
		g.screenTooSmall = true
		return
	}
	g.state = st
	g.selectNext(1)
}

// layout converts the config into the plane layout.
func (g *Game) layout() puzzle.Layout {
	return puzzle.Layout{
		Rows:   g.cfg.Grid.Rows,
		Cols:   g.cfg.Grid.Cols,
		PieceW: g.cfg.Board.PieceWidth,
		PieceH: g.cfg.Board.PieceHeight,
		Origin: puzzle.Vec{X: g.cfg.Board.X, Y: g.cfg.Board.Y},
	}
}

// options builds the puzzle options: the scatter area runs from the board's
// right edge plus the margin to the screen edge, above the footer.
func (g *Game) options() puzzle.Options {
	l := g.layout()
	board := l.BoardRect()
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight

	x := board.Right() + g.cfg.Scatter.Margin + l.PieceW/2
	y := g.cfg.Scatter.Top + l.PieceH/2
	right := float64(g.runtime.ScreenW)*cw - l.PieceW/2
	bottom := float64(g.runtime.ScreenH-footerRows)*ch - l.PieceH/2

	opts := puzzle.Options{
		Layout:    l,
		Tolerance: puzzle.Tolerance{Slot: g.cfg.Snap.Slot, Piece: g.cfg.Snap.Piece},
		Scatter:   puzzle.Rect{X: x, Y: y, W: right - x, H: bottom - y},
		Seed:      g.runtime.Seed,
		Nickname:  g.runtime.Nickname,
	}
	if g.cfg.Scatter.Lattice {
		opts.ScatterStep = puzzle.Vec{X: cw, Y: ch}
	}
	return opts
}

// computeMinSize finds the smallest screen that holds the board, the HUD,
// the footer and one column of scattered pieces.
func (g *Game) computeMinSize() {
	l := g.layout()
	board := l.BoardRect()
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight

	scatterRight := board.Right() + g.cfg.Scatter.Margin + l.PieceW
	g.minScreenW = int(math.Ceil(scatterRight / cw))

	bottom := math.Max(board.Bottom(), g.cfg.Scatter.Top+l.PieceH)
	g.minScreenH = int(math.Ceil(bottom/ch)) + footerRows
}

// toPlane maps a screen cell to the plane point at its center.
func (g *Game) toPlane(cx, cy int) puzzle.Vec {
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight
	return puzzle.Vec{X: float64(cx)*cw + cw/2, Y: float64(cy)*ch + ch/2}
}

// toCell maps a plane point to the cell containing it.
func (g *Game) toCell(p puzzle.Vec) (int, int) {
	return int(math.Floor(p.X / g.cfg.Render.CellWidth)), int(math.Floor(p.Y / g.cfg.Render.CellHeight))
}

// pieceOrigin returns the top-left cell of a piece.
func (g *Game) pieceOrigin(p puzzle.Piece) (int, int) {
	l := g.state.Layout()
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight
	x := math.Round((p.Pos.X - l.PieceW/2) / cw)
	y := math.Round((p.Pos.Y - l.PieceH/2) / ch)
	return int(x), int(y)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.state == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.state.Complete() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionHint) {
		g.showHint = !g.showHint
	}

	if !g.state.Complete() {
		for _, p := range in.Pointers {
			g.handlePointer(p)
		}
		g.handleKeys(in)
	}

	g.tickCount++
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	if g.tickCount%rate == 0 {
		g.state.Tick()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handlePointer(p core.Pointer) {
	pt := g.toPlane(p.X, p.Y)
	switch p.Kind {
	case core.PointerPress:
		id, ok := g.state.PieceAt(pt)
		if !ok {
			return
		}
		piece, _ := g.state.Piece(id)
		g.observe(g.state.StartDrag(id))
		g.selected, g.hasSel = id, true
		g.dragging = true
		g.grab = piece.Pos.Sub(pt)

	case core.PointerMotion:
		if !g.dragging {
			return
		}
		target := pt.Add(g.grab)
		g.observe(g.state.DragMove(g.selected, target.X, target.Y))

	case core.PointerRelease:
		if !g.dragging {
			return
		}
		target := pt.Add(g.grab)
		g.observe(g.state.DragMove(g.selected, target.X, target.Y))
		g.dragging = false
		g.drop()
	}
}

func (g *Game) handleKeys(in core.InputFrame) {
	if g.dragging {
		return
	}
	if in.Has(core.ActionNext) {
		g.selectNext(1)
	}
	if in.Has(core.ActionPrev) {
		g.selectNext(-1)
	}
	if !g.hasSel {
		return
	}

	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight
	var d puzzle.Vec
	if in.Has(core.ActionLeft) {
		d.X -= cw
	}
	if in.Has(core.ActionRight) {
		d.X += cw
	}
	if in.Has(core.ActionUp) {
		d.Y -= ch
	}
	if in.Has(core.ActionDown) {
		d.Y += ch
	}
	if d != (puzzle.Vec{}) {
		g.observe(g.state.StartDrag(g.selected))
		g.observe(g.state.DragBy(g.selected, d))
	}

	if in.Has(core.ActionDrop) || in.Has(core.ActionConfirm) {
		g.drop()
	}
}

// drop releases the selected group and moves the selection on if the group
// was placed.
func (g *Game) drop() {
	res := g.state.Drop(g.selected)
	if res.Ignored {
		return
	}
	g.observe(res.Events)
	if c, ok := res.Completion(); ok {
		g.completion = &c
	}
	if res.Outcome == puzzle.DropPlaced {
		g.hasSel = false
		g.selectNext(1)
	}
}

// selectNext cycles the selection through the unplaced groups, ordered by
// their lowest piece id.
func (g *Game) selectNext(dir int) {
	groups := g.state.Groups()
	if len(groups) == 0 {
		g.hasSel = false
		return
	}

	cur := -1
	if g.hasSel {
		for i, members := range groups {
			if slices.Contains(members, g.selected) {
				cur = i
				break
			}
		}
	}

	next := 0
	if cur >= 0 {
		next = (cur + dir + len(groups)) % len(groups)
	} else if dir < 0 {
		next = len(groups) - 1
	}
	g.selected = groups[next][0]
	g.hasSel = true
	g.observe(g.state.StartDrag(g.selected))
}

// observe folds puzzle events into the footer status.
func (g *Game) observe(events []puzzle.Event) {
	joined := 0
	for _, ev := range events {
		switch e := ev.(type) {
		case puzzle.RaisedEvent:
			g.held = len(e.IDs)
		case puzzle.MovedEvent:
			g.held = len(e.IDs)
			g.status = ""
		case puzzle.MergedEvent:
			joined += len(e.IDs)
		case puzzle.PlacedEvent:
			g.held = 0
			g.status = "Placed " + pieces(len(e.IDs))
		case puzzle.CompletedEvent:
			g.status = ""
		}
	}
	if joined > 0 {
		if gid, ok := g.state.GroupOf(g.selected); ok {
			g.held = len(g.state.Members(gid))
		}
		g.status = "Joined " + pieces(joined)
	}
}

func pieces(n int) string {
	if n == 1 {
		return "1 piece"
	}
	return fmt.Sprintf("%d pieces", n)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{Paused: g.screenTooSmall}
	}
	st := g.state.Stats()
	return core.GameState{
		Score:    st.Placed,
		Moves:    st.Moves,
		Elapsed:  st.Elapsed,
		GameOver: g.state.Complete(),
		Paused:   g.screenTooSmall,
	}
}

// Completion returns the finished run, if any.
func (g *Game) Completion() (puzzle.Completion, bool) {
	if g.completion == nil {
		return puzzle.Completion{}, false
	}
	return *g.completion, true
}

// Puzzle exposes the underlying state; nil until the screen is large enough.
func (g *Game) Puzzle() *puzzle.State {
	return g.state
}

// LoadError reports a config or picture problem that forced a fallback.
func (g *Game) LoadError() error {
	return g.loadErr
}
