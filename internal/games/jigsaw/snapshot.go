package jigsaw

import "github.com/vovakirdan/tui-jigsaw/internal/puzzle"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateComplete    GameStateType = "complete"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     int
	Rows     int
	Cols     int
	Picture  string
	Selected int // -1 when nothing is selected
	Hint     bool
	State    GameStateType
	Puzzle   puzzle.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.screenTooSmall || g.state == nil:
		state = StatePausedSmall
	case g.state.Complete():
		state = StateComplete
	}

	sel := -1
	if g.hasSel {
		sel = int(g.selected)
	}

	snap := Snapshot{
		Tick:     g.tickCount,
		Rows:     g.cfg.Grid.Rows,
		Cols:     g.cfg.Grid.Cols,
		Selected: sel,
		Hint:     g.showHint,
		State:    state,
	}
	if g.picture != nil {
		snap.Picture = g.picture.ID
	}
	if g.state != nil {
		snap.Puzzle = g.state.Snapshot()
	}
	return snap
}
