// Package puzzle implements the jigsaw board: pieces, the group partition,
// rigid group dragging, board snapping and peer merging.
//
// It contains no rendering, timing loop or I/O. The platform feeds it drag
// and drop events and reads back positions, groups and draw order.
package puzzle

import (
	"errors"
	"fmt"
	"math"
)

// Default snapping tolerances in board-plane units.
const (
	DefaultSlotTolerance  = 30.0 // distance to the home slot that locks a group
	DefaultPieceTolerance = 12.0 // per-axis error that merges two neighbors
)

// Validation errors returned by New and Initialize.
var (
	ErrInvalidGrid    = errors.New("puzzle: rows and cols must be positive")
	ErrInvalidPiece   = errors.New("puzzle: piece size must be positive")
	ErrEmptyScatter   = errors.New("puzzle: scatter region is empty")
	ErrScatterOverlap = errors.New("puzzle: scatter region overlaps the board")
)

// Vec is a point or displacement in the continuous board plane.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle in the board plane.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Empty reports whether the rectangle has a negative extent.
// A zero-width or zero-height rectangle is a valid line or point region.
func (r Rect) Empty() bool {
	return r.W < 0 || r.H < 0
}

// Intersects reports whether the two rectangles share any interior area
// or edge point.
func (r Rect) Intersects(o Rect) bool {
	if r.X > o.Right() || o.X > r.Right() {
		return false
	}
	if r.Y > o.Bottom() || o.Y > r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Layout describes the grid and the board it is assembled on.
type Layout struct {
	Rows   int
	Cols   int
	PieceW float64
	PieceH float64
	Origin Vec // Top-left corner of the board
}

// Validate checks that the layout describes a usable grid.
func (l Layout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrInvalidGrid, l.Rows, l.Cols)
	}
	if l.PieceW <= 0 || l.PieceH <= 0 {
		return fmt.Errorf("%w (got %gx%g)", ErrInvalidPiece, l.PieceW, l.PieceH)
	}
	return nil
}

// Size returns the number of pieces in the grid.
func (l Layout) Size() int {
	return l.Rows * l.Cols
}

// Slot returns the board position of the center of cell (row, col).
func (l Layout) Slot(row, col int) Vec {
	return Vec{
		X: l.Origin.X + float64(col)*l.PieceW + l.PieceW/2,
		Y: l.Origin.Y + float64(row)*l.PieceH + l.PieceH/2,
	}
}

// BoardRect returns the rectangle covered by the assembled puzzle.
func (l Layout) BoardRect() Rect {
	return Rect{
		X: l.Origin.X,
		Y: l.Origin.Y,
		W: float64(l.Cols) * l.PieceW,
		H: float64(l.Rows) * l.PieceH,
	}
}

// ID returns the row-major piece id of (row, col).
func (l Layout) ID(row, col int) PieceID {
	return PieceID(row*l.Cols + col)
}

// Cell returns the home (row, col) of a piece id.
func (l Layout) Cell(id PieceID) (row, col int) {
	return int(id) / l.Cols, int(id) % l.Cols
}

// InBounds reports whether (row, col) is a cell of the grid.
func (l Layout) InBounds(row, col int) bool {
	return row >= 0 && row < l.Rows && col >= 0 && col < l.Cols
}

// Tolerance holds the two independent snapping thresholds.
type Tolerance struct {
	Slot  float64 // Max distance from a piece to its home slot for a board snap
	Piece float64 // Max per-axis offset error for a peer merge (exclusive)
}

// DefaultTolerance returns the tolerances used by the reference game.
func DefaultTolerance() Tolerance {
	return Tolerance{Slot: DefaultSlotTolerance, Piece: DefaultPieceTolerance}
}
