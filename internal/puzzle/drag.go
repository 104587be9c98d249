package puzzle

// StartDrag raises the piece's whole group to the top of the draw order.
// Nothing else changes. Locked or unknown pieces are ignored.
func (s *State) StartDrag(id PieceID) []Event {
	_, members, ok := s.groupMembers(id)
	if !ok {
		return nil
	}
	s.raise(members)
	return []Event{RaisedEvent{IDs: copyIDs(members)}}
}

// DragMove moves the lead piece to (x, y) and applies the same delta to every
// other member of its group. There is no snapping during a drag.
func (s *State) DragMove(id PieceID, x, y float64) []Event {
	_, members, ok := s.groupMembers(id)
	if !ok {
		return nil
	}
	delta := Vec{X: x, Y: y}.Sub(s.pieces[id].Pos)
	if delta == (Vec{}) {
		return nil
	}
	s.translate(members, delta)
	return []Event{MovedEvent{IDs: copyIDs(members), Delta: delta}}
}

// DragBy translates the piece's group by d. Keyboard play uses it to move a
// group one cell at a time.
func (s *State) DragBy(id PieceID, d Vec) []Event {
	if !s.active(id) {
		return nil
	}
	p := s.pieces[id].Pos.Add(d)
	return s.DragMove(id, p.X, p.Y)
}

func copyIDs(ids []PieceID) []PieceID {
	out := make([]PieceID, len(ids))
	copy(out, ids)
	return out
}
