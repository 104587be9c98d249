package jigsaw

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-jigsaw/internal/artwork"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Visual characters for rendering
const (
	SlotChar       = '·'
	HintChar       = '░'
	SelectedFill   = '▓'
	SelectedBlank  = '▒'
	HUDSeparator   = "  ·  "
	FooterHelp     = "drag/tab select · arrows move · space drop · h hint · q quit"
	FooterHelpDone = "r play again · b menu · q quit"
)

// FormatClock renders seconds as mm:ss.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Render draws the board, the pieces in draw order, the HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall || g.state == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorDefault)
		return
	}

	g.renderBoard(dst)
	g.renderPieces(dst)
	g.renderHUD(dst)
	g.renderFooter(dst)

	if g.state.Complete() {
		g.renderWin(dst)
	}
}

// boardCells returns the board area in screen cells.
func (g *Game) boardCells() core.Rect {
	l := g.state.Layout()
	x, y := g.toCell(l.Origin)
	return core.NewRect(x, y, l.Cols*g.pieceW, l.Rows*g.pieceH)
}

// renderBoard draws the frame, slot markers and the optional ghost picture.
func (g *Game) renderBoard(dst *core.Screen) {
	board := g.boardCells()
	dst.DrawBox(core.NewRect(board.X-1, board.Y-1, board.W+2, board.H+2), core.ColorGray)

	if g.showHint {
		full := g.picture.Sample(board.W, board.H)
		for y, row := range full {
			for x, px := range row {
				if px == artwork.Background {
					continue
				}
				dst.SetColored(board.X+x, board.Y+y, HintChar, px.Color)
			}
		}
		return
	}

	for y := board.Y; y < board.Bottom(); y += g.pieceH {
		for x := board.X; x < board.Right(); x += g.pieceW {
			dst.SetColored(x, y, SlotChar, core.ColorGray)
		}
	}
}

// renderPieces draws every piece bottom to top. The selected group is drawn
// with a shaded glyph so it stands out from the loose pieces.
func (g *Game) renderPieces(dst *core.Screen) {
	var selected []puzzle.PieceID
	if g.hasSel {
		if gid, ok := g.state.GroupOf(g.selected); ok {
			selected = g.state.Members(gid)
		}
	}

	for _, id := range g.state.DrawOrder() {
		p, _ := g.state.Piece(id)
		ox, oy := g.pieceOrigin(p)
		mark := slices.Contains(selected, id)

		for y, row := range g.blocks[id] {
			for x, px := range row {
				glyph := px.Glyph
				if mark {
					if px == artwork.Background {
						glyph = SelectedBlank
					} else {
						glyph = SelectedFill
					}
				}
				dst.SetColored(ox+x, oy+y, glyph, px.Color)
			}
		}
	}
}

// renderHUD draws "nick • Time mm:ss  ·  Moves n" and the group and placed counters.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.state.Stats()

	hud := fmt.Sprintf("Time %s%sMoves %d", FormatClock(st.Elapsed), HUDSeparator, st.Moves)
	if nick := g.state.Nickname(); nick != "" {
		hud = nick + " • " + hud
	}
	dst.DrawTextColored(1, hudRow, hud, core.ColorBrightWhite)

	right := fmt.Sprintf("%s  %d/%d", g.picture.Title, st.Placed, st.Total)
	if groups := g.state.GroupCount(); groups > 0 {
		right = fmt.Sprintf("%s  Groups %d  %d/%d", g.picture.Title, groups, st.Placed, st.Total)
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, hudRow, right, core.ColorCyan)
}

func (g *Game) renderFooter(dst *core.Screen) {
	help := FooterHelp
	if g.state.Complete() {
		help = FooterHelpDone
	}
	y := dst.Height() - footerRows
	dst.DrawTextColored(1, y, help, core.ColorGray)

	status := g.status
	if status == "" && g.hasSel && g.held > 1 {
		status = "Holding " + pieces(g.held)
	}
	if status != "" && !g.state.Complete() {
		dst.DrawTextColored(dst.Width()-len(status)-1, y, status, core.ColorBrightGreen)
	}
}

// renderWin draws the completion panel over the board.
func (g *Game) renderWin(dst *core.Screen) {
	st := g.state.Stats()
	nick := g.state.Nickname()
	if nick == "" {
		nick = "Puzzle complete"
	}
	lines := []string{
		nick,
		fmt.Sprintf("%s • %d moves", FormatClock(st.Elapsed), st.Moves),
		"",
		"R to play again",
	}

	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	w += 6
	h := len(lines) + 2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightYellow)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		x := box.X + (w-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, c)
	}
}
