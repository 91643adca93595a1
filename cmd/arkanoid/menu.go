package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and level interactively",
	Long: `Start the interactive menu.

Pick a mode, then a level from the unlocked ones. Esc in a game returns
to the menu; Tab in the menu shows the scoreboard.

Controls:
  Up/Down/j/k   - Navigate
  Arrows        - Move in the level grid
  Enter/Space   - Select
  Tab           - Scoreboard
  Esc/B         - Back
  Q             - Quit

Examples:
  arkanoid menu
  arkanoid menu --profile alice
  arkanoid menu --fps 30`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runMenu(_ *cobra.Command, _ []string) error {
	e := openEnv(flagConfig, flagMute)
	defer e.Close()

	return tui.RunSession(runtimeConfig(flagConfig, flagDifficulty), e.opts)
}
