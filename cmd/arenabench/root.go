package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "arenabench",
	Short: "Run allocation workloads against an arena and report its behavior",
	Long: `arenabench exercises the arenakit region allocator and its containers
with parameterized workloads, then prints how the arena's block chain and
demand estimate responded. Use it to inspect block growth, clear-cycle
self-tuning, and hash-table tombstone behavior under a workload shaped
like your own.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostics")
	cobra.OnInitialize(setupLogging)
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printStats prints one arena stats snapshot as an aligned table.
func printStats(s arena.Stats) {
	fmt.Printf("%-24s %d\n", "blocks:", s.Blocks)
	fmt.Printf("%-24s %d\n", "reserved bytes:", s.Reserved)
	fmt.Printf("%-24s %d\n", "used bytes:", s.Used)
	fmt.Printf("%-24s %d\n", "size estimate:", s.SizeEstimate)
	fmt.Printf("%-24s %d\n", "size estimate high:", s.SizeEstimateHigh)
}
