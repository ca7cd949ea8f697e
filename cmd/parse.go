package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/scorepad/notation"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [notation...]",
	Short: "Prints the parsed score as JSON",
	Long:  `Prints the parsed score as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readNotation(args)
		cobra.CheckErr(err)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		cobra.CheckErr(enc.Encode(notation.Parse(text)))
	},
}
