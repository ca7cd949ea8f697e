package cmd

import (
	"fmt"

	"github.com/jsphweid/scorepad/notation"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format [notation...]",
	Short: "Rewrites notation in canonical form",
	Long:  `Parses notation and prints it back, dropping anything the parser ignored.`,
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readNotation(args)
		cobra.CheckErr(err)
		fmt.Println(notation.Stringify(notation.Parse(text)))
	},
}
