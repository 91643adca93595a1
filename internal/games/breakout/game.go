package breakout

import (
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
	"github.com/vovakirdan/arkanoid/internal/registry"
)

// Game adapts a Session to the registry.Game interface used by the frontends.
type Game struct {
	mode    levelgen.Mode
	session *Session
	runtime core.RuntimeConfig
	cfgErr  error
}

// New creates a game for the given mode. Reset must be called before Step.
func New(mode levelgen.Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.String()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == levelgen.Modern {
		return "Arkanoid Modern"
	}
	return "Arkanoid Classic"
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// ConfigError returns the error hit while loading the configuration, if the
// game fell back to the built-in defaults.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

func (g *Game) loadConfig() config.BreakoutConfig {
	cfg, err := config.LoadBreakout(g.runtime.ConfigPath)
	g.cfgErr = err
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	if preset := config.ParseDifficultyPreset(g.runtime.Difficulty); preset != "" {
		config.ApplyBreakoutPreset(&cfg, preset)
	}
	return cfg
}

// Reset creates a fresh session and starts runtime.StartLevel, falling back
// to the highest unlocked level when the requested one is locked.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.session = NewSession(g.mode, g.loadConfig(), runtime.Progress, runtime.Seed)

	level := core.Clamp(runtime.StartLevel, 1, levelgen.MaxLevels)
	if err := g.session.StartLevel(level); err != nil {
		_ = g.session.StartLevel(core.Clamp(g.session.Unlocked(), 1, level))
	}
}

// ReloadConfig re-reads the configuration; it takes effect on the next level start.
func (g *Game) ReloadConfig() error {
	cfg := g.loadConfig()
	if g.cfgErr != nil {
		return g.cfgErr
	}
	if g.session != nil {
		g.session.SetConfig(cfg)
	}
	return nil
}

// InputFrom converts a frontend input frame to engine input.
func InputFrom(in core.InputFrame, vp Viewport) Input {
	out := Input{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	}
	if in.HasPointer {
		out.HasPointer = true
		out.PointerX = core.ClampF(in.PointerX, 0, 1) * vp.Width
	}
	return out
}

// Step handles lifecycle actions, then advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}
	s := g.session

	switch {
	case in.Has(core.ActionPause):
		s.TogglePause()
	case in.Has(core.ActionRestart):
		g.restart()
	case in.Has(core.ActionNext), in.Has(core.ActionConfirm):
		if s.State() == StateLevelComplete {
			_ = s.AdvanceLevel()
		}
	}

	dt := in.Elapsed
	if dt <= 0 {
		dt = g.runtime.TickDuration()
	}
	ts := TimeScale(dt, s.cfg.Physics.MaxTimeScale)
	frame := s.Step(InputFrom(in, DefaultViewport), ts)

	return core.StepResult{
		State: g.State(),
		Cues:  frame.Cues(),
	}
}

func (g *Game) restart() {
	s := g.session
	switch s.State() {
	case StateAllLevelsComplete:
		_ = s.StartLevel(1)
	case StateGameOver, StateLevelComplete, StatePaused:
		_ = s.RetryLevel()
	}
}

// Render draws the current session into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.Clear()
		return
	}
	RenderSession(dst, g.session)
}

// State reports the session state to the platform.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Level:    s.Level(),
		Lives:    s.Lives(),
		GameOver: s.State() == StateGameOver || s.State() == StateAllLevelsComplete,
		Won:      s.State() == StateAllLevelsComplete,
		Paused:   s.State() == StatePaused,
		Cleared:  s.State() == StateLevelComplete,
	}
}

func init() {
	registry.Register(levelgen.Classic.String(), func() registry.Game {
		return New(levelgen.Classic)
	})
	registry.Register(levelgen.Modern.String(), func() registry.Game {
		return New(levelgen.Modern)
	})
}
