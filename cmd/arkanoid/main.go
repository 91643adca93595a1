// arkanoid is a brick-breaker with a classic and a modern mode, playable in
// the terminal, in a desktop window and over SSH.
//
// Usage:
//
//	arkanoid list              - List the game modes
//	arkanoid play <mode>       - Play a mode in the terminal
//	arkanoid window <mode>     - Play a mode in a desktop window
//	arkanoid menu              - Pick a mode and level interactively
//	arkanoid serve             - Start the SSH server
//	arkanoid scores [mode]     - Show high scores
//	arkanoid levels <mode>     - Print generated level layouts
//	arkanoid progress          - Show or reset unlocked levels
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.arkanoid/arkanoid.db)
//	--sync-db <path>  - Mirror unlock progress to a second database
//	--profile <name>  - Progress profile (default: $USER)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the game modes
	_ "github.com/vovakirdan/arkanoid/internal/games/breakout"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagSyncDBPath string
	flagProfile    string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arkanoid"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arkanoid",
	Short: "Arkanoid - break bricks in your terminal",
	Long: `Arkanoid is a brick-breaker with two modes of 200 generated levels each.

  classic  - grid levels with a twist every few stages
  modern   - dense layouts, more hits per brick, lots of power-ups

Available commands:
  list      - Show the game modes
  play      - Play a mode in the terminal
  window    - Play a mode in a desktop window
  menu      - Interactive mode and level picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  levels    - Print level layouts
  progress  - Show or reset unlocked levels

Examples:
  arkanoid play classic
  arkanoid play modern --level 12
  arkanoid window classic
  arkanoid menu
  arkanoid serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arkanoid/arkanoid.db", "Path to scores and progress database")
	rootCmd.PersistentFlags().StringVar(&flagSyncDBPath, "sync-db", "", "Optional second database that mirrors unlock progress")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Progress profile name (default: current user)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
}
