// Package window is the desktop frontend. It draws the playfield with ebiten
// vector shapes and feeds keyboard and mouse input to the simulation.
package window

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/arkanoid/internal/audio"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

// Logical layout: a HUD strip above the 800x600 playfield.
const (
	hudHeight   = 24
	fieldWidth  = 800
	fieldHeight = 600
)

// Options holds the collaborators of the desktop frontend.
type Options struct {
	Store   *storage.Store // May be nil
	Audio   audio.Sink     // Nil means silent
	Watcher *config.Watcher
	Logger  *log.Logger
	Scale   float64 // Window size multiplier, 1 when zero
}

// Frontend implements ebiten.Game around a breakout game.
type Frontend struct {
	game   *breakout.Game
	cfg    core.RuntimeConfig
	opts   Options
	logger *log.Logger

	input      core.InputFrame
	lastCursor [2]int
	pointer    bool
	state      core.GameState
	scoreSaved bool
	notice     string
	noticeLeft int
}

// New creates the frontend and starts the configured level.
func New(game *breakout.Game, cfg core.RuntimeConfig, opts Options) *Frontend {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	game.Reset(cfg)
	return &Frontend{
		game:   game,
		cfg:    cfg,
		opts:   opts,
		logger: logger.WithPrefix("window"),
		input:  core.NewInputFrame(),
	}
}

// Update reads input and advances the simulation by one tick.
func (f *Frontend) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	f.readInput()
	f.pollConfig()

	result := f.game.Step(f.input)
	f.state = result.State
	for _, cue := range result.Cues {
		f.opts.Audio.Play(cue)
	}
	f.saveScore()
	if f.noticeLeft > 0 {
		f.noticeLeft--
	}
	f.input.Clear()
	return nil
}

func (f *Frontend) readInput() {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	if left {
		f.input.Set(core.ActionLeft)
	}
	if right {
		f.input.Set(core.ActionRight)
	}

	// The pointer steers until a movement key is used, and again once it moves.
	x, y := ebiten.CursorPosition()
	if moved := [2]int{x, y} != f.lastCursor; moved {
		f.lastCursor = [2]int{x, y}
		f.pointer = true
	}
	if left || right {
		f.pointer = false
	}
	if f.pointer {
		f.input.SetPointer(pointerFraction(x))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		f.input.Set(core.ActionPause)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		f.input.Set(core.ActionRestart)
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && f.state.Cleared:
		f.input.Set(core.ActionNext)
	}
}

// pollConfig applies a pending config change without blocking the frame.
func (f *Frontend) pollConfig() {
	w := f.opts.Watcher
	if w == nil {
		return
	}
	select {
	case <-w.Events:
		if err := f.game.ReloadConfig(); err != nil {
			f.logger.Warn("config reload failed", "err", err)
			f.setNotice("config error, keeping previous settings")
			return
		}
		f.setNotice("config reloaded, applies from next level")
	case err := <-w.Errors:
		f.logger.Warn("config watcher error", "err", err)
	default:
	}
}

func (f *Frontend) setNotice(s string) {
	f.notice = s
	f.noticeLeft = 180
}

func (f *Frontend) saveScore() {
	if !f.state.GameOver {
		f.scoreSaved = false
		return
	}
	if f.scoreSaved {
		return
	}
	f.scoreSaved = true
	if f.opts.Store == nil || f.state.Score <= 0 {
		return
	}
	if _, err := f.opts.Store.SaveScore(f.game.ID(), f.cfg.Profile, f.state.Score, f.state.Level); err != nil {
		f.logger.Warn("cannot save score", "err", err)
	}
}

// Layout keeps a fixed logical resolution; ebiten scales it to the window.
func (f *Frontend) Layout(int, int) (int, int) {
	return fieldWidth, fieldHeight + hudHeight
}

// Run opens the window and blocks until it is closed.
func Run(game *breakout.Game, cfg core.RuntimeConfig, opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(fieldWidth*scale), int((fieldHeight+hudHeight)*scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	err := ebiten.RunGame(New(game, cfg, opts))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
