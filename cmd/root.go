package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scorepad",
	Short: "Text music notation tools",
	Long: `scorepad parses a compact text notation ("4/4 C4q D4q E4h | G4w"),
and turns it into MIDI, sheet music and sound. It can also serve all of that
over HTTP with live collaborative editing.`,
}

var notationFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&notationFile, "file", "f", "", "read notation from a file (- for stdin)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// readNotation takes notation from --file, or else joins the arguments.
func readNotation(args []string) (string, error) {
	switch notationFile {
	case "":
		return strings.Join(args, " "), nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), errors.Wrap(err, "could not read stdin")
	}
	data, err := os.ReadFile(notationFile)
	if err != nil {
		return "", errors.Wrapf(err, "could not read %v", notationFile)
	}
	return string(data), nil
}
