package breakout

import (
	"errors"

	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

// Session errors.
var (
	ErrInvalidLevel = errors.New("breakout: level out of range")
	ErrLevelLocked  = errors.New("breakout: level is locked")
	ErrNotRunning   = errors.New("breakout: no level in progress")
)

// State is the session lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateLevelComplete
	StateGameOver
	StateAllLevelsComplete
)

var stateNames = [...]string{
	StateNotStarted:        "not_started",
	StateRunning:           "running",
	StatePaused:            "paused",
	StateLevelComplete:     "level_complete",
	StateGameOver:          "game_over",
	StateAllLevelsComplete: "all_levels_complete",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Progress tracks the unlocked-level high-water mark of one mode.
type Progress = core.LevelProgress

// Frame is the outcome of one session step.
type Frame struct {
	Events  []Event
	Summary *Summary // Set when the step ended the level
}

// Cues returns the audio cues raised during the frame.
func (f Frame) Cues() []core.Cue {
	var cues []core.Cue
	for _, e := range f.Events {
		if c, ok := e.Cue(); ok {
			cues = append(cues, c)
		}
	}
	return cues
}

// Session owns the world of the current level and the score, lives and
// unlock bookkeeping around it.
type Session struct {
	mode       levelgen.Mode
	cfg        config.BreakoutConfig
	pending    *config.BreakoutConfig
	difficulty *config.DifficultyManager
	progress   Progress
	seed       int64

	state   State
	level   int
	score   int
	lives   int
	world   *World
	summary *Summary
}

// NewSession creates a session in the NotStarted state.
// A nil progress tracker leaves every level unlocked.
func NewSession(mode levelgen.Mode, cfg config.BreakoutConfig, progress Progress, seed int64) *Session {
	return &Session{
		mode:       mode,
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		progress:   progress,
		seed:       seed,
		level:      1,
	}
}

// Mode returns the session's game mode.
func (s *Session) Mode() levelgen.Mode { return s.mode }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Level returns the current level index.
func (s *Session) Level() int { return s.level }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// World returns the current level's world, nil before the first start.
func (s *Session) World() *World { return s.world }

// Summary returns the last level-ending summary, if any.
func (s *Session) Summary() *Summary { return s.summary }

// Unlocked returns the highest level that may be started.
func (s *Session) Unlocked() int {
	if s.progress == nil {
		return levelgen.MaxLevels
	}
	return s.progress.Unlocked()
}

// SetConfig replaces the configuration from the next level start on.
func (s *Session) SetConfig(cfg config.BreakoutConfig) {
	s.pending = &cfg
}

// StartLevel begins a level from the level select. Lives are refilled and
// the score is cleared only when starting from level 1.
func (s *Session) StartLevel(level int) error {
	if level < 1 || level > levelgen.MaxLevels {
		return ErrInvalidLevel
	}
	if level > s.Unlocked() {
		return ErrLevelLocked
	}
	s.applyPending()
	if level == 1 {
		s.score = 0
	}
	s.lives = s.cfg.Session.Lives
	return s.begin(level)
}

// RetryLevel restarts the current level with full lives.
func (s *Session) RetryLevel() error {
	if s.state == StateNotStarted || s.state == StateAllLevelsComplete {
		return ErrNotRunning
	}
	s.applyPending()
	if s.level == 1 {
		s.score = 0
	}
	s.lives = s.cfg.Session.Lives
	return s.begin(s.level)
}

// AdvanceLevel moves from a completed level to the next one, keeping score and lives.
func (s *Session) AdvanceLevel() error {
	if s.state != StateLevelComplete {
		return ErrNotRunning
	}
	next := s.level + 1
	if next > levelgen.MaxLevels {
		s.finish(SummaryAllLevelsComplete, StateAllLevelsComplete)
		return nil
	}
	return s.begin(next)
}

// TogglePause switches between Running and Paused. Other states are unaffected.
func (s *Session) TogglePause() {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
	}
}

// applyPending swaps in a configuration queued by SetConfig.
func (s *Session) applyPending() {
	if s.pending == nil {
		return
	}
	s.cfg = *s.pending
	s.pending = nil
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	s.lives = min(s.lives, s.cfg.Session.Lives)
}

func (s *Session) begin(level int) error {
	s.applyPending()
	spec, err := levelgen.Generate(s.mode, level)
	if err != nil {
		return errors.Join(ErrInvalidLevel, err)
	}
	s.level = level
	s.world = NewWorld(spec, s.cfg, s.difficulty.BallSpeedScale(level), s.seed+int64(level))
	s.summary = nil
	s.state = StateRunning
	return nil
}

// Step advances the running level by ts units of scaled time.
// Outside the Running state nothing moves and the frame is empty.
func (s *Session) Step(in Input, ts float64) Frame {
	if s.progress != nil {
		s.progress.Poll()
	}
	if s.state != StateRunning || s.world == nil {
		return Frame{}
	}

	f := Frame{Events: s.world.Step(in, ts)}
	for _, e := range f.Events {
		s.score += e.Points
		switch e.Kind {
		case EventLifeLost:
			s.loseLife()
		case EventLevelClear:
			if s.state == StateRunning {
				s.completeLevel()
			}
		}
	}
	f.Summary = s.summary
	if s.state == StateRunning {
		f.Summary = nil
	}
	return f
}

func (s *Session) loseLife() {
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.finish(SummaryGameOver, StateGameOver)
		return
	}
	s.world.Respawn()
}

func (s *Session) completeLevel() {
	if s.progress != nil {
		s.progress.Complete(s.level)
	}
	if s.level >= levelgen.MaxLevels {
		s.finish(SummaryAllLevelsComplete, StateAllLevelsComplete)
		return
	}
	s.finish(SummaryLevelComplete, StateLevelComplete)
}

func (s *Session) finish(kind SummaryKind, state State) {
	s.state = state
	s.summary = &Summary{Kind: kind, Level: s.level, Score: s.score}
}
