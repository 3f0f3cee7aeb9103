package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
)

var (
	allocCount  int
	allocSize   int
	allocAlign  int
	allocCycles int
)

var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Run raw allocation cycles and report block growth",
	Long: `alloc performs repeated fixed-size allocations, clearing the arena
between cycles. The first cycle shows the block doubling curve; later
cycles show the demand estimate sizing the first block to fit the whole
cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if allocCount <= 0 || allocSize <= 0 || allocCycles <= 0 {
			return fmt.Errorf("count, size, and cycles must be positive")
		}
		if allocAlign <= 0 || allocAlign&(allocAlign-1) != 0 {
			return fmt.Errorf("align must be a power of two")
		}
		var a arena.Arena
		for cycle := range allocCycles {
			for range allocCount {
				a.AllocUninit(uintptr(allocSize), uintptr(allocAlign))
			}
			s := a.Stats()
			slog.Debug("cycle done",
				"cycle", cycle,
				"blocks", s.Blocks,
				"reserved", s.Reserved,
				"used", s.Used)
			if cycle < allocCycles-1 {
				a.Clear()
			}
		}
		printStats(a.Stats())
		a.Release()
		return nil
	},
}

func init() {
	allocCmd.Flags().IntVarP(&allocCount, "count", "n", 100000, "Allocations per cycle")
	allocCmd.Flags().IntVarP(&allocSize, "size", "s", 48, "Size of each allocation in bytes")
	allocCmd.Flags().IntVar(&allocAlign, "align", 8, "Alignment of each allocation")
	allocCmd.Flags().IntVarP(&allocCycles, "cycles", "c", 3, "Number of clear cycles")
	rootCmd.AddCommand(allocCmd)
}
