package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/games/breakout"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
	"github.com/vovakirdan/arkanoid/internal/platform/tui"
	"github.com/vovakirdan/arkanoid/internal/platform/window"
	"github.com/vovakirdan/arkanoid/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagMute       bool
	flagScale      float64
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode in the terminal",
	Long: `Pick a level of the given mode and play it in the terminal.

With --level the picker is skipped. Levels above your unlock mark start at the highest unlocked level.

Controls:
  Left/Right/A/D  - Move paddle (the mouse works too)
  P/Space         - Pause
  R               - Retry level
  N/Enter         - Next level after a clear
  ?               - Toggle help
  Q/Ctrl+C        - Quit

Difficulty options:
  easy, normal, hard, fixed

Examples:
  arkanoid play classic              # pick a level first
  arkanoid play modern --level 20
  arkanoid play classic --difficulty hard
  arkanoid play classic --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var windowCmd = &cobra.Command{
	Use:   "window <mode>",
	Short: "Play a mode in a desktop window",
	Long: `Open a desktop window and play the given mode.

Controls are the same as in the terminal; Esc or Q closes the window.

Examples:
  arkanoid window modern
  arkanoid window classic --scale 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, windowCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().IntVar(&flagLevel, "level", 0, "Level to start at")
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	}
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
}

// checkMode validates a mode argument against the registry.
func checkMode(id string) (levelgen.Mode, error) {
	if !registry.Exists(id) {
		return 0, fmt.Errorf("unknown mode %q, run 'arkanoid list' to see the modes", id)
	}
	return levelgen.ParseMode(id)
}

func runPlay(_ *cobra.Command, args []string) error {
	mode, err := checkMode(args[0])
	if err != nil {
		return err
	}
	game, err := registry.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	e := openEnv(flagConfig, flagMute)
	defer e.Close()

	tracker := tui.NewTracker(e.opts, game.ID())
	defer tracker.Wait()
	cfg := runtimeConfig(flagConfig, flagDifficulty)
	cfg.Progress = tracker
	cfg.StartLevel = flagLevel
	if cfg.StartLevel <= 0 {
		level, err := tui.RunLevelSelect(mode, game.Title(), tracker, cfg)
		if err != nil {
			return fmt.Errorf("level select: %w", err)
		}
		if level == 0 {
			return nil
		}
		cfg.StartLevel = level
	}

	if err := tui.Run(game, cfg, e.opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func runWindow(_ *cobra.Command, args []string) error {
	mode, err := checkMode(args[0])
	if err != nil {
		return err
	}
	game := breakout.New(mode)

	e := openEnv(flagConfig, flagMute)
	defer e.Close()

	tracker := tui.NewTracker(e.opts, game.ID())
	defer tracker.Wait()
	cfg := runtimeConfig(flagConfig, flagDifficulty)
	cfg.Progress = tracker
	cfg.StartLevel = startLevel(tracker.Unlocked())
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return window.Run(game, cfg, window.Options{
		Store:   e.opts.Store,
		Audio:   e.opts.Audio,
		Watcher: e.opts.Watcher,
		Logger:  logger,
		Scale:   flagScale,
	})
}

// startLevel picks --level when given, else the unlock mark.
func startLevel(unlocked int) int {
	if flagLevel > 0 {
		return flagLevel
	}
	return max(unlocked, 1)
}
