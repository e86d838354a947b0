package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SFBdragon/sudoku-solver/internal/board"
	"github.com/SFBdragon/sudoku-solver/internal/solver"
)

var (
	inputFile    string
	engineName   string
	solveTimeout time.Duration
	showStats    bool
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve [grid...]",
		Short: "Solve Sudoku puzzles",
		Long: `Solve one or more Sudoku puzzles given as 81-character grid strings.

Grids are read from the arguments, or from a file with one grid per line
(blank lines and lines starting with '#' are skipped). Use "-" as the file
to read from standard input.

Examples:
  sudoku-solver solve 530070000600195000098000060800060003400803001700020006060000280000419005000080079
  sudoku-solver solve --file puzzles.txt --stats
  cat puzzles.txt | sudoku-solver solve --file -`,
		RunE: runSolve,
	}

	solveCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read grids from a file, one per line (\"-\" for stdin)")
	solveCmd.Flags().StringVar(&engineName, "engine", "backtrack", "Solving engine: backtrack or sat")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 10*time.Second, "Per-puzzle timeout")
	solveCmd.Flags().BoolVar(&showStats, "stats", false, "Report search nodes and duration per puzzle")

	rootCmd.AddCommand(solveCmd)
}

// newEngine selects the solving engine by name.
func newEngine(name string) (solver.Engine, error) {
	switch name {
	case "backtrack":
		return solver.New(), nil
	case "sat":
		return solver.NewSAT(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (use 'backtrack' or 'sat')", name)
	}
}

// readGrids collects grid strings from a file or stdin, one per line.
func readGrids(path string) ([]string, error) {
	var file *os.File
	if path == "-" {
		file = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open grid file: %w", err)
		}
		defer f.Close()
		file = f
	}

	var grids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		grids = append(grids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}
	return grids, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(engineName)
	if err != nil {
		return err
	}

	grids := args
	if inputFile != "" {
		fromFile, err := readGrids(inputFile)
		if err != nil {
			return err
		}
		grids = append(grids, fromFile...)
	}
	if len(grids) == 0 {
		return errors.New("no grids given: pass grid strings as arguments or use --file")
	}

	failed := 0
	for i, grid := range grids {
		if err := solveOne(cmd, engine, grid); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "grid %d: %v\n", i+1, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d grids failed", failed, len(grids))
	}
	return nil
}

// solveOne solves a single grid string and prints the solution. The three
// failure modes stay distinguishable: malformed and contradictory input are
// construction errors, "no solution" is a search result.
func solveOne(cmd *cobra.Command, engine solver.Engine, grid string) error {
	b, err := board.FromString(grid)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), solveTimeout)
	defer cancel()

	solved, stats, err := engine.Solve(ctx, b)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), solved.String())
	if showStats {
		fmt.Fprintf(cmd.ErrOrStderr(), "  nodes=%d duration=%v\n", stats.Nodes, stats.Duration)
	}
	return nil
}
