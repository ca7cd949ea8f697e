package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jsphweid/scorepad/layout"
	"github.com/jsphweid/scorepad/midi"
	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/notation"
	"github.com/jsphweid/scorepad/playback"
	"github.com/jsphweid/scorepad/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	outPath   string
	themeName string
	volume    float64
)

func init() {
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&themeName, "theme", "light", "light or dark, for svg and png")
	exportCmd.Flags().Float64Var(&volume, "volume", 0.5, "peak amplitude, for wav")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:       "export (midi|svg|png|wav) [notation...]",
	Short:     "Exports notation as MIDI, SVG, PNG or WAV",
	Long:      `Exports notation as MIDI, SVG, PNG or WAV`,
	ValidArgs: []string{"midi", "svg", "png", "wav"},
	Args:      cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readNotation(args[1:])
		cobra.CheckErr(err)

		data, err := exportScore(args[0], notation.Parse(text), render.ThemeByName(themeName))
		cobra.CheckErr(err)

		if outPath == "" {
			_, err = os.Stdout.Write(data)
			cobra.CheckErr(err)
			return
		}
		cobra.CheckErr(errors.Wrapf(os.WriteFile(outPath, data, 0644), "could not write %v", outPath))
		fmt.Fprintf(os.Stderr, "wrote %v bytes to %v\n", len(data), outPath)
	},
}

func exportScore(format string, score model.Score, theme render.Theme) ([]byte, error) {
	switch format {
	case "midi":
		return midi.Encode(score), nil
	case "svg":
		return []byte(render.SVG(layout.Layout(score), theme)), nil
	case "png":
		var buf bytes.Buffer
		if err := render.PNG(&buf, layout.Layout(score), theme); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "wav":
		samples := playback.Render(playback.Schedule(score), playback.DefaultSampleRate, volume)
		return playback.EncodeWAV(samples, playback.DefaultSampleRate, 1), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
