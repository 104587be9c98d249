package puzzle

import "sort"

// GroupOf returns the group of an unplaced piece.
// Returns false for placed or unknown pieces.
func (s *State) GroupOf(id PieceID) (GroupID, bool) {
	if !s.Valid(id) {
		return 0, false
	}
	g := s.groupOf[id]
	if g == noGroup {
		return 0, false
	}
	return g, true
}

// Members returns the piece ids of a group in id order.
func (s *State) Members(g GroupID) []PieceID {
	m, ok := s.groups[g]
	if !ok {
		return nil
	}
	out := make([]PieceID, len(m))
	copy(out, m)
	return out
}

// Groups returns every active group's members, ordered by smallest member id.
func (s *State) Groups() [][]PieceID {
	out := make([][]PieceID, 0, len(s.groups))
	for _, m := range s.groups {
		cp := make([]PieceID, len(m))
		copy(cp, m)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// GroupCount returns the number of active groups.
func (s *State) GroupCount() int {
	return len(s.groups)
}

// groupMembers returns the live member slice of id's group without copying.
func (s *State) groupMembers(id PieceID) (GroupID, []PieceID, bool) {
	g, ok := s.GroupOf(id)
	if !ok {
		return 0, nil, false
	}
	return g, s.groups[g], true
}

// union moves every member of from into into. The reverse index and the
// group map are updated together.
func (s *State) union(into, from GroupID) []PieceID {
	moved := s.groups[from]
	for _, id := range moved {
		s.groupOf[id] = into
	}
	merged := append(s.groups[into], moved...)
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	s.groups[into] = merged
	delete(s.groups, from)
	return moved
}

// retire removes a group from the pool after its pieces were placed.
func (s *State) retire(g GroupID) {
	for _, id := range s.groups[g] {
		s.groupOf[id] = noGroup
	}
	delete(s.groups, g)
}

// translate shifts every listed piece by d.
func (s *State) translate(ids []PieceID, d Vec) {
	for _, id := range ids {
		s.pieces[id].Pos = s.pieces[id].Pos.Add(d)
	}
}

// raise moves ids to the top of the draw order, keeping their relative order.
func (s *State) raise(ids []PieceID) {
	s.reorder(ids, true)
}

// lower moves ids to the bottom of the draw order, keeping their relative order.
func (s *State) lower(ids []PieceID) {
	s.reorder(ids, false)
}

func (s *State) reorder(ids []PieceID, top bool) {
	set := make(map[PieceID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	picked := make([]PieceID, 0, len(ids))
	rest := make([]PieceID, 0, len(s.order))
	for _, id := range s.order {
		if set[id] {
			picked = append(picked, id)
		} else {
			rest = append(rest, id)
		}
	}
	if top {
		s.order = append(rest, picked...)
	} else {
		s.order = append(picked, rest...)
	}
}
