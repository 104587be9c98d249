package puzzle

// Snapshot captures the full puzzle state for determinism tests and replays.
type Snapshot struct {
	Pieces    []Piece
	Groups    [][]PieceID
	DrawOrder []PieceID
	Stats     Stats
	Complete  bool
}

// Snapshot returns a deep copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Pieces:    s.Pieces(),
		Groups:    s.Groups(),
		DrawOrder: s.DrawOrder(),
		Stats:     s.Stats(),
		Complete:  s.completed,
	}
}

// CheckPartition verifies that every unplaced piece belongs to exactly one
// group, that groups are disjoint and non-empty, and that placed pieces are
// in none. Returns the offending piece id and false on the first violation.
func (s *State) CheckPartition() (PieceID, bool) {
	seen := make(map[PieceID]GroupID, len(s.pieces))
	for g, members := range s.groups {
		if len(members) == 0 {
			return PieceID(g), false
		}
		for _, id := range members {
			if _, dup := seen[id]; dup {
				return id, false
			}
			seen[id] = g
			if s.groupOf[id] != g || s.pieces[id].Locked {
				return id, false
			}
		}
	}
	for _, p := range s.pieces {
		_, grouped := seen[p.ID]
		if grouped == p.Locked {
			return p.ID, false
		}
	}
	return 0, true
}
