package cmd

import (
	"fmt"

	"github.com/jsphweid/scorepad/midi"
	"github.com/spf13/cobra"
)

var (
	fromTick  uint32
	noteLimit int
)

func init() {
	inspectCmd.Flags().Uint32Var(&fromTick, "from", 0, "skip notes starting before this tick")
	inspectCmd.Flags().IntVar(&noteLimit, "limit", 0, "show at most this many notes (0 for all)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints the timing and notes of a MIDI file, for checking exports.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := midi.ReadFile(path)
	cobra.CheckErr(err)
	if fromTick > 0 || noteLimit > 0 {
		s, err = midi.Excerpt(s, fromTick, noteLimit)
		cobra.CheckErr(err)
	}

	fmt.Printf("time format: %v\n", s.TimeFormat)
	fmt.Printf("tracks: %v\n", len(s.Tracks))
	for _, n := range midi.Notes(s) {
		fmt.Printf("key: %v start: %v (%v) duration: %v\n", n.Key, n.Start, n.Time, n.Duration)
	}
}
