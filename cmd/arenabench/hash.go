package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/ahash"
	"github.com/joshuapare/arenakit/arena"
)

var (
	hashItems  int
	hashChurns int
)

type benchEntry struct {
	Key string
	Val int
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Churn a hash table with delete/insert cycles and report tombstone behavior",
	Long: `hash fills a table with string-keyed entries, then repeatedly deletes
and reinserts half of them. A healthy run keeps the capacity bounded: the
probe table absorbs deletions as tombstones and reclaims them through
compaction instead of growing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if hashItems <= 0 || hashChurns < 0 {
			return fmt.Errorf("items must be positive and churns non-negative")
		}
		var a arena.Arena
		t := ahash.New(&a, 0, ahash.StringKey(func(e *benchEntry) *string { return &e.Key }))

		for i := range hashItems {
			t.Update(&benchEntry{Key: fmt.Sprintf("key-%d", i), Val: i})
		}
		peak := t.Cap()

		for churn := range hashChurns {
			for i := 0; i < hashItems; i += 2 {
				t.Delete(&benchEntry{Key: fmt.Sprintf("key-%d", i)})
			}
			for i := 0; i < hashItems; i += 2 {
				t.Update(&benchEntry{Key: fmt.Sprintf("key-%d", i), Val: i + churn})
			}
			if t.Cap() > peak {
				peak = t.Cap()
			}
			slog.Debug("churn done",
				"churn", churn,
				"len", t.Len(),
				"cap", t.Cap(),
				"tombstones", t.Tombstones())
		}

		fmt.Printf("%-24s %d\n", "table length:", t.Len())
		fmt.Printf("%-24s %d\n", "table capacity:", t.Cap())
		fmt.Printf("%-24s %d\n", "peak capacity:", peak)
		fmt.Printf("%-24s %d\n", "tombstones:", t.Tombstones())
		printStats(a.Stats())
		a.Release()
		return nil
	},
}

func init() {
	hashCmd.Flags().IntVarP(&hashItems, "items", "n", 10000, "Number of entries")
	hashCmd.Flags().IntVarP(&hashChurns, "churns", "c", 5, "Delete/reinsert cycles")
	rootCmd.AddCommand(hashCmd)
}
