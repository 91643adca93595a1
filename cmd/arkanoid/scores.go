package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/registry"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores of a mode, or of every mode.

Examples:
  arkanoid scores
  arkanoid scores classic
  arkanoid scores modern --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the scores of the given mode")
}

func runScores(_ *cobra.Command, args []string) error {
	var ids []string
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown mode %q, run 'arkanoid list' to see the modes", args[0])
		}
		ids = []string{args[0]}
	} else {
		if flagClearScores {
			return fmt.Errorf("--clear needs a mode")
		}
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(ids[0]); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Scores of %s cleared.\n", ids[0])
		return nil
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, id); err != nil {
			return err
		}
	}
	return nil
}

func printScores(store *storage.Store, id string) error {
	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	scores, err := store.TopScores(id, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'arkanoid play %s' to set the first high score!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %s\n",
			i+1, e.Profile, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(id); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
