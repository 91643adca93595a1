package core

// Cue is a named audio event. Frontends map cues to sounds; the engine only raises them.
type Cue int

const (
	CuePaddle Cue = iota
	CueBrick
	CueWall
	CuePowerUp
	CueLifeLost
	CueLevelWon
)

func (c Cue) String() string {
	switch c {
	case CuePaddle:
		return "paddle"
	case CueBrick:
		return "brick"
	case CueWall:
		return "wall"
	case CuePowerUp:
		return "powerup"
	case CueLifeLost:
		return "life_lost"
	case CueLevelWon:
		return "level_won"
	default:
		return "unknown"
	}
}
