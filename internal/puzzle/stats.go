package puzzle

import "time"

// Stats holds the session counters shown on the HUD.
type Stats struct {
	Moves   int  // Drops so far
	Elapsed int  // Whole seconds since the first drop
	Placed  int  // Pieces locked onto the board
	Total   int  // rows*cols
	Running bool // Clock started and puzzle not complete
}

// Stats returns the current session counters.
func (s *State) Stats() Stats {
	st := s.stats
	st.Running = s.running
	return st
}

// Tick refreshes the elapsed time from the clock. It is meant to be called
// once per second by the platform timer and never touches pieces or groups.
// Returns the elapsed seconds.
func (s *State) Tick() int {
	if s.running {
		s.refreshElapsed()
	}
	return s.stats.Elapsed
}

func (s *State) startClock() {
	if s.running || s.completed {
		return
	}
	s.running = true
	s.startedAt = s.clock()
}

func (s *State) refreshElapsed() {
	s.stats.Elapsed = int(s.clock().Sub(s.startedAt) / time.Second)
}

// complete stops the clock and builds the completion record.
func (s *State) complete() Completion {
	s.refreshElapsed()
	s.running = false
	s.completed = true
	return Completion{
		Nickname:       s.nickname,
		Moves:          s.stats.Moves,
		ElapsedSeconds: s.stats.Elapsed,
	}
}
