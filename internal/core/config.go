package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 lets the platform pick one

	StartLevel int    // Level to open on (1-based)
	ConfigPath string // Custom breakout.yaml, empty for the search chain
	Difficulty string // Difficulty preset name (easy, normal, hard, fixed)
	Profile    string // Progress profile name

	Progress LevelProgress // Unlock tracker, nil means everything is unlocked
}

// LevelProgress tracks the unlocked-level high-water mark of one game mode.
// Poll applies results of asynchronous loads between simulation steps.
type LevelProgress interface {
	Unlocked() int
	Complete(level int) int
	Poll()
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		StartLevel: 1,
		Profile:    "default",
	}
}

// TickDuration returns the wall-clock length of one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-based)
	Lives    int  // Remaining lives
	GameOver bool // Whether the run has ended
	Won      bool // Whether every level was cleared
	Paused   bool // Whether the game is paused
	Cleared  bool // Whether the current level is cleared and awaits advancing
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []Cue // Sound cues raised during the tick
}
