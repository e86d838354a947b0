package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SFBdragon/sudoku-solver/internal/board"
)

var prettyPrint bool

func init() {
	checkCmd := &cobra.Command{
		Use:   "check [grid...]",
		Short: "Check grid strings without solving",
		Long: `Check whether each 81-character grid string is a complete solution, a
valid partial grid, or invalid. No solving is attempted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}

	checkCmd.Flags().BoolVar(&prettyPrint, "pretty", false, "Print each valid grid with box lines")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	invalid := 0
	for i, grid := range args {
		b, err := board.FromString(grid)
		fmt.Fprintf(cmd.OutOrStdout(), "grid %d: %s\n", i+1, describe(b, err))
		if err != nil {
			invalid++
			continue
		}
		if prettyPrint {
			fmt.Fprint(cmd.OutOrStdout(), b.Format())
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d grids invalid", invalid, len(args))
	}
	return nil
}

// describe classifies the outcome of constructing a grid.
func describe(b *board.Board, err error) string {
	switch {
	case errors.Is(err, board.ErrMalformedInput):
		return fmt.Sprintf("malformed (%v)", err)
	case errors.Is(err, board.ErrContradictoryInput):
		return fmt.Sprintf("contradictory (%v)", err)
	case err != nil:
		return err.Error()
	case b.IsSolved():
		return "solved"
	default:
		return fmt.Sprintf("valid, %d clues, %d empty", b.ClueCount(), b.EmptyCount())
	}
}
