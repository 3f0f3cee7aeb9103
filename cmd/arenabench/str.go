package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/astring"
)

var (
	strAppends int
	strChunk   int
)

var strCmd = &cobra.Command{
	Use:   "str",
	Short: "Grow an arena string by appending and report its capacity curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strAppends <= 0 || strChunk <= 0 {
			return fmt.Errorf("appends and chunk must be positive")
		}
		var a arena.Arena
		chunk := make([]byte, strChunk)
		for i := range chunk {
			chunk[i] = byte('a' + i%26)
		}

		s := astring.New(&a, 0)
		for i := range strAppends {
			s.Append(chunk)
			if i%1000 == 0 {
				s.Appendf("[%d]", i)
			}
		}
		fmt.Printf("%-24s %d\n", "string length:", s.Len())
		fmt.Printf("%-24s %d\n", "string capacity:", s.Cap())

		out := s.Compact()
		fmt.Printf("%-24s %d\n", "compacted bytes:", len(out))
		printStats(a.Stats())
		a.Release()
		return nil
	},
}

func init() {
	strCmd.Flags().IntVarP(&strAppends, "appends", "n", 10000, "Number of appends")
	strCmd.Flags().IntVarP(&strChunk, "chunk", "s", 32, "Bytes appended each time")
	rootCmd.AddCommand(strCmd)
}
