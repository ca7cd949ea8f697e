package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"

	"github.com/jsphweid/scorepad/constants"
	"github.com/jsphweid/scorepad/notation"
	"github.com/jsphweid/scorepad/playback"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	oscAddr    string
	instrument int32
	dryRun     bool
)

func init() {
	playCmd.Flags().StringVar(&oscAddr, "addr", "", "OSC host:port (default $OSC_ADDR or 127.0.0.1:8765)")
	playCmd.Flags().Int32Var(&instrument, "instrument", 0, "instrument number sent with every note")
	playCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log notes instead of sending them")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [notation...]",
	Short: "Plays notation over OSC",
	Long:  `Streams every note to an OSC listener as "/play <instrument> <note> <seconds>" when it becomes due.`,
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readNotation(args)
		cobra.CheckErr(err)

		sender, err := newSender()
		cobra.CheckErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		score := notation.Parse(text)
		fmt.Fprintf(os.Stderr, "playing %v at %v bpm\n", playback.Total(score), score.BPM())
		if err := playback.Play(ctx, playback.Schedule(score), sender); err != nil && err != context.Canceled {
			cobra.CheckErr(err)
		}
	},
}

func newSender() (playback.Sender, error) {
	if dryRun {
		return playback.LogSender{}, nil
	}
	if oscAddr == "" {
		oscAddr = constants.GetOSCAddr()
	}
	host, p, err := net.SplitHostPort(oscAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "bad OSC address %v", oscAddr)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, errors.Wrapf(err, "bad OSC port %v", p)
	}
	return playback.NewOSCSender(host, port, instrument), nil
}
