package puzzle

import "math"

// neighbor is a grid direction checked during a peer merge.
type neighbor struct {
	dr, dc int
}

// Scan order for neighbors: left, right, up, down.
var neighborOrder = [4]neighbor{
	{dr: 0, dc: -1},
	{dr: 0, dc: 1},
	{dr: -1, dc: 0},
	{dr: 1, dc: 0},
}

// Drop ends a drag of the piece's group. It counts a move and starts the
// clock, then tries a board snap and, failing that, peer merges.
func (s *State) Drop(id PieceID) DropResult {
	g, members, ok := s.groupMembers(id)
	if !ok {
		return DropResult{Ignored: true}
	}

	s.stats.Moves++
	s.startClock()

	if s.fitsBoard(members) {
		return DropResult{Outcome: DropPlaced, Events: s.place(g)}
	}

	events := s.mergeNeighbors(g)
	if len(events) == 0 {
		return DropResult{Outcome: DropNone}
	}
	return DropResult{Outcome: DropMerged, Events: events}
}

// fitsBoard reports whether every member is within the slot tolerance of its
// home slot. One member out of range blocks the whole group.
func (s *State) fitsBoard(members []PieceID) bool {
	for _, id := range members {
		if s.pieces[id].Pos.Sub(s.homeSlot(id)).Len() > s.tol.Slot {
			return false
		}
	}
	return true
}

// place locks every member of g onto its slot and retires the group.
func (s *State) place(g GroupID) []Event {
	members := copyIDs(s.groups[g])
	for _, id := range members {
		s.pieces[id].Pos = s.homeSlot(id)
		s.pieces[id].Locked = true
	}
	s.stats.Placed += len(members)
	s.retire(g)
	s.lower(members)

	events := []Event{PlacedEvent{IDs: members}}
	if s.stats.Placed == s.stats.Total && !s.completed {
		events = append(events, CompletedEvent{Completion: s.complete()})
	}
	return events
}

// mergeNeighbors scans the members g had when the drop began, in id order.
// Pieces absorbed along the way are not scanned themselves, but a later
// starting member may still merge with another neighbor.
func (s *State) mergeNeighbors(g GroupID) []Event {
	var events []Event
	members := copyIDs(s.groups[g])

	for _, aID := range members {
		a := s.pieces[aID]
		for _, n := range neighborOrder {
			row, col := a.Row+n.dr, a.Col+n.dc
			if !s.layout.InBounds(row, col) {
				continue
			}
			bID := s.layout.ID(row, col)
			bg, ok := s.GroupOf(bID)
			if !ok || bg == g {
				continue
			}

			want := Vec{X: float64(n.dc) * s.layout.PieceW, Y: float64(n.dr) * s.layout.PieceH}
			got := s.pieces[bID].Pos.Sub(a.Pos)
			if math.Abs(got.X-want.X) >= s.tol.Piece || math.Abs(got.Y-want.Y) >= s.tol.Piece {
				continue
			}

			shift := want.Sub(got)
			s.translate(s.groups[bg], shift)
			moved := copyIDs(s.union(g, bg))
			s.raise(s.groups[g])
			events = append(events, MergedEvent{Into: g, From: bg, Shift: shift, IDs: moved})
		}
	}
	return events
}
