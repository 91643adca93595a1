package breakout

import "github.com/vovakirdan/arkanoid/internal/core"

// EventKind identifies something that happened during a world step.
type EventKind int

const (
	EventPaddleHit EventKind = iota
	EventWallHit             // Playfield edge or indestructible block
	EventBrickHit            // Breakable block damaged but not destroyed
	EventBrickDestroyed
	EventPowerUp     // Pickup collected
	EventBallShower  // Modern mode spawned extra balls
	EventLifeLost    // Last ball left the playfield
	EventLevelClear  // No breakable blocks remain
)

// Event is emitted by World.Step. Points is the score delta it carries.
type Event struct {
	Kind   EventKind
	Points int
	X, Y   float64
}

// Cue maps an event to the audio cue a sound sink should play.
func (e Event) Cue() (core.Cue, bool) {
	switch e.Kind {
	case EventPaddleHit:
		return core.CuePaddle, true
	case EventWallHit:
		return core.CueWall, true
	case EventBrickHit, EventBrickDestroyed:
		return core.CueBrick, true
	case EventPowerUp, EventBallShower:
		return core.CuePowerUp, true
	case EventLifeLost:
		return core.CueLifeLost, true
	case EventLevelClear:
		return core.CueLevelWon, true
	default:
		return 0, false
	}
}

// SummaryKind identifies a session transition shown by menus and overlays.
type SummaryKind int

const (
	SummaryLevelComplete SummaryKind = iota
	SummaryGameOver
	SummaryAllLevelsComplete
)

func (k SummaryKind) String() string {
	switch k {
	case SummaryLevelComplete:
		return "level_complete"
	case SummaryGameOver:
		return "game_over"
	case SummaryAllLevelsComplete:
		return "all_levels_complete"
	default:
		return "unknown"
	}
}

// Summary is raised by the session when a level ends.
type Summary struct {
	Kind  SummaryKind
	Level int
	Score int
}
