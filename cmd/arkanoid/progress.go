package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
	"github.com/vovakirdan/arkanoid/internal/platform/tui"
	"github.com/vovakirdan/arkanoid/internal/registry"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress [mode]",
	Short: "Show or reset unlocked levels",
	Long: `Show the highest unlocked level of each mode for the profile.

With --reset the given mode (or every mode) goes back to level 1, in the
local database and in the sync database when one is configured.

Examples:
  arkanoid progress
  arkanoid progress --profile alice
  arkanoid progress classic --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset unlocked levels to 1")
}

func runProgress(_ *cobra.Command, args []string) error {
	var modes []string
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown mode %q, run 'arkanoid list' to see the modes", args[0])
		}
		modes = []string{args[0]}
	} else {
		for _, g := range registry.List() {
			modes = append(modes, g.ID)
		}
	}

	e := openEnv("", true)
	defer e.Close()
	if e.opts.Store == nil {
		return fmt.Errorf("no database at %s", flagDBPath)
	}

	fmt.Printf("Progress - %s\n", e.opts.Profile)
	fmt.Println()
	for _, mode := range modes {
		// Settle the sync database load first so it cannot undo a reset.
		tracker := tui.NewTracker(e.opts, mode)
		tracker.Wait()
		if flagReset {
			if err := tracker.Reset(); err != nil {
				return fmt.Errorf("resetting %s: %w", mode, err)
			}
			tracker.Wait()
		}
		fmt.Printf("  %-8s  unlocked %3d / %d\n", mode, tracker.Unlocked(), levelgen.MaxLevels)
	}
	return nil
}
