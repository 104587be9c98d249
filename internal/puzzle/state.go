package puzzle

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// PieceID identifies a piece; ids are row-major over the grid.
type PieceID int

// GroupID identifies a group of pieces moving together.
type GroupID int

// noGroup marks a placed piece in the reverse index.
const noGroup GroupID = -1

// Piece is a single puzzle piece.
type Piece struct {
	ID     PieceID
	Row    int // Home row
	Col    int // Home column
	Pos    Vec // Current center in the board plane
	Locked bool
}

// Options configures a puzzle session.
type Options struct {
	Layout    Layout
	Tolerance Tolerance // Zero value means DefaultTolerance

	// Scatter is the region piece centers are scattered in.
	// It must not overlap the board.
	Scatter Rect

	// ScatterStep quantizes scatter positions to a lattice anchored at
	// slot(0,0), so pieces moved in whole steps can land exactly on a slot.
	// A zero component leaves that axis continuous.
	ScatterStep Vec

	Seed     int64
	Nickname string // Attached to the completion record

	// Clock returns the current time; defaults to time.Now.
	Clock func() time.Time
}

// State owns the pieces, the group partition and the session stats.
// It is not safe for concurrent use; callers deliver events one at a time.
type State struct {
	layout   Layout
	tol      Tolerance
	scatter  Rect
	step     Vec
	nickname string
	clock    func() time.Time
	rng      *rand.Rand

	pieces  []Piece
	groups  map[GroupID][]PieceID // Members kept sorted by id
	groupOf []GroupID             // Reverse index, noGroup once placed
	order   []PieceID             // Draw order, bottom to top

	stats     Stats
	startedAt time.Time
	running   bool
	completed bool
}

// New creates a puzzle and scatters its pieces.
func New(opts Options) (*State, error) {
	s := &State{}
	if err := s.Initialize(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize (re)starts the session: every piece is scattered outside the
// board, every group is a singleton and all stats are zero.
func (s *State) Initialize(opts Options) error {
	if err := opts.Layout.Validate(); err != nil {
		return err
	}
	if opts.Scatter.Empty() {
		return ErrEmptyScatter
	}
	if opts.Scatter.Intersects(opts.Layout.BoardRect()) {
		return fmt.Errorf("%w: scatter %+v, board %+v", ErrScatterOverlap, opts.Scatter, opts.Layout.BoardRect())
	}

	tol := opts.Tolerance
	if tol == (Tolerance{}) {
		tol = DefaultTolerance()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	anchor := opts.Layout.Slot(0, 0)
	xs, okX := latticeRange(opts.Scatter.X, opts.Scatter.Right(), anchor.X, opts.ScatterStep.X)
	ys, okY := latticeRange(opts.Scatter.Y, opts.Scatter.Bottom(), anchor.Y, opts.ScatterStep.Y)
	if !okX || !okY {
		return ErrEmptyScatter
	}

	*s = State{
		layout:   opts.Layout,
		tol:      tol,
		scatter:  opts.Scatter,
		step:     opts.ScatterStep,
		nickname: opts.Nickname,
		clock:    clock,
		rng:      rand.New(rand.NewSource(opts.Seed)),
	}

	n := opts.Layout.Size()
	s.pieces = make([]Piece, n)
	s.groups = make(map[GroupID][]PieceID, n)
	s.groupOf = make([]GroupID, n)
	s.order = make([]PieceID, n)

	for i := 0; i < n; i++ {
		id := PieceID(i)
		row, col := opts.Layout.Cell(id)
		s.pieces[i] = Piece{
			ID:  id,
			Row: row,
			Col: col,
			Pos: Vec{X: xs.pick(s.rng), Y: ys.pick(s.rng)},
		}
		s.groups[GroupID(i)] = []PieceID{id}
		s.groupOf[i] = GroupID(i)
		s.order[i] = id
	}

	s.stats = Stats{Total: n}
	return nil
}

// axisRange is the set of allowed scatter coordinates on one axis.
type axisRange struct {
	lo, hi float64
	anchor float64
	step   float64
	kMin   int
	kMax   int
}

// latticeRange computes the scatter choices for one axis.
// Returns false if no coordinate is available.
func latticeRange(lo, hi, anchor, step float64) (axisRange, bool) {
	r := axisRange{lo: lo, hi: hi, anchor: anchor, step: step}
	if step <= 0 {
		return r, hi >= lo
	}
	r.kMin = int(math.Ceil((lo - anchor) / step))
	r.kMax = int(math.Floor((hi - anchor) / step))
	return r, r.kMin <= r.kMax
}

func (r axisRange) pick(rng *rand.Rand) float64 {
	if r.step <= 0 {
		return r.lo + rng.Float64()*(r.hi-r.lo)
	}
	k := r.kMin + rng.Intn(r.kMax-r.kMin+1)
	return r.anchor + float64(k)*r.step
}

// Layout returns the grid layout of this session.
func (s *State) Layout() Layout {
	return s.layout
}

// Nickname returns the nickname attached to this session.
func (s *State) Nickname() string {
	return s.nickname
}

// Len returns the number of pieces.
func (s *State) Len() int {
	return len(s.pieces)
}

// Valid reports whether id names a piece of this puzzle.
func (s *State) Valid(id PieceID) bool {
	return id >= 0 && int(id) < len(s.pieces)
}

// Piece returns a copy of the piece with the given id.
func (s *State) Piece(id PieceID) (Piece, bool) {
	if !s.Valid(id) {
		return Piece{}, false
	}
	return s.pieces[id], true
}

// Pieces returns a copy of every piece, indexed by id.
func (s *State) Pieces() []Piece {
	out := make([]Piece, len(s.pieces))
	copy(out, s.pieces)
	return out
}

// DrawOrder returns piece ids from bottom to top.
func (s *State) DrawOrder() []PieceID {
	out := make([]PieceID, len(s.order))
	copy(out, s.order)
	return out
}

// Complete reports whether every piece has been placed.
func (s *State) Complete() bool {
	return s.completed
}

// PieceAt returns the top-most unlocked piece whose rectangle contains p.
// Used by the input layer for hit testing.
func (s *State) PieceAt(p Vec) (PieceID, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		pc := s.pieces[s.order[i]]
		if pc.Locked {
			continue
		}
		r := Rect{
			X: pc.Pos.X - s.layout.PieceW/2,
			Y: pc.Pos.Y - s.layout.PieceH/2,
			W: s.layout.PieceW,
			H: s.layout.PieceH,
		}
		if r.Contains(p) {
			return pc.ID, true
		}
	}
	return 0, false
}

// homeSlot returns the target slot for a piece.
func (s *State) homeSlot(id PieceID) Vec {
	p := s.pieces[id]
	return s.layout.Slot(p.Row, p.Col)
}

// active reports whether id is a known, unplaced piece.
func (s *State) active(id PieceID) bool {
	return s.Valid(id) && !s.pieces[id].Locked
}
