package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

var (
	flagFrom int
	flagTo   int
)

var levelsCmd = &cobra.Command{
	Use:   "levels <mode>",
	Short: "Print generated level layouts",
	Long: `Print the block layout of a range of levels.

Glyphs: '#' one-hit brick, digits are hit counts, 'X' wall, '@' bonus, '.' empty.

Examples:
  arkanoid levels classic --from 1 --to 5
  arkanoid levels modern --from 42 --to 42`,
	Args: cobra.ExactArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagFrom, "from", 1, "First level")
	levelsCmd.Flags().IntVar(&flagTo, "to", 1, "Last level")
}

func runLevels(_ *cobra.Command, args []string) error {
	mode, err := levelgen.ParseMode(args[0])
	if err != nil {
		return err
	}
	if flagTo < flagFrom {
		flagTo = flagFrom
	}

	for level := flagFrom; level <= flagTo; level++ {
		spec, err := levelgen.Generate(mode, level)
		if err != nil {
			return err
		}
		twist := "none"
		if spec.Modifier != levelgen.ModNone {
			twist = strings.ReplaceAll(spec.Modifier.String(), "_", " ")
		}
		fmt.Printf("Level %d  %s  %dx%d  twist: %s\n", level, spec.Pattern, spec.Cols, spec.Rows, twist)
		fmt.Println(spec.Occupancy())
		fmt.Println()
	}
	return nil
}
