package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 30)
	Seed     int64  // RNG seed for the scatter; 0 means time-based
	Nickname string // Session nickname shown on the HUD and in completions
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Pieces locked onto the board
	Moves    int  // Drops so far
	Elapsed  int  // Whole seconds since the first drop
	GameOver bool // Puzzle complete
	Paused   bool // Window too small to play
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
