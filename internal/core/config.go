package core

// RuntimeConfig is passed to games at initialization.
// ScreenW and ScreenH are world units, not terminal cells; frontends scale.
type RuntimeConfig struct {
	ScreenW  int   // World width
	ScreenH  int   // World height
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns the 400×600 world at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  400,
		ScreenH:  600,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what a game reports back to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score including the current session
	GameOver  bool // Whether the game has ended
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
	// Restarted is true when this tick processed a reset from GameOver.
	Restarted bool
	// Ended is true only on the tick that entered GameOver.
	Ended bool
}
