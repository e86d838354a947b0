package main

import (
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var cpuProfile bool

// profiler is non-nil while a CPU profile is being collected.
var profiler interface{ Stop() }

var rootCmd = &cobra.Command{
	Use:   "sudoku-solver",
	Short: "Solve and check 9x9 Sudoku puzzles",
	Long: `sudoku-solver solves standard 9x9 Sudoku puzzles given as 81-character
strings in row-major order, where '0' or '.' marks an empty cell and '1'-'9'
a given. Even the hardest known puzzles solve in microseconds.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cpuProfile {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cpuProfile, "profile", false, "Write a CPU profile to the current directory")
}
