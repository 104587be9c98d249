package puzzle

// Event describes a state change the renderer or HUD should reflect.
type Event interface {
	puzzleEvent()
}

// RaisedEvent is emitted when a group is brought to the top of the draw order.
type RaisedEvent struct {
	IDs []PieceID
}

func (RaisedEvent) puzzleEvent() {}

// MovedEvent is emitted when a group is translated by a drag.
type MovedEvent struct {
	IDs   []PieceID
	Delta Vec
}

func (MovedEvent) puzzleEvent() {}

// MergedEvent is emitted when group From is shifted by Shift and absorbed
// into group Into. IDs lists the pieces that changed group.
type MergedEvent struct {
	Into  GroupID
	From  GroupID
	Shift Vec
	IDs   []PieceID
}

func (MergedEvent) puzzleEvent() {}

// PlacedEvent is emitted when a group locks onto its home slots.
type PlacedEvent struct {
	IDs []PieceID
}

func (PlacedEvent) puzzleEvent() {}

// CompletedEvent is emitted exactly once, when the last piece is placed.
type CompletedEvent struct {
	Completion Completion
}

func (CompletedEvent) puzzleEvent() {}

// Completion is the record of a finished puzzle.
type Completion struct {
	Nickname       string
	Moves          int
	ElapsedSeconds int
}

// DropOutcome classifies what a drop did.
type DropOutcome int

const (
	DropNone   DropOutcome = iota // Neither snapped nor merged
	DropPlaced                    // The group locked onto the board
	DropMerged                    // At least one neighbor group merged in
)

// String returns a human-readable name for the outcome.
func (o DropOutcome) String() string {
	switch o {
	case DropNone:
		return "none"
	case DropPlaced:
		return "placed"
	case DropMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// DropResult reports the effect of a single drop event.
type DropResult struct {
	Outcome DropOutcome
	Events  []Event

	// Ignored is set when the id was unknown or already locked.
	// Ignored drops do not count as moves.
	Ignored bool
}

// Completion returns the completion record if this drop finished the puzzle.
func (r DropResult) Completion() (Completion, bool) {
	for _, ev := range r.Events {
		if c, ok := ev.(CompletedEvent); ok {
			return c.Completion, true
		}
	}
	return Completion{}, false
}
