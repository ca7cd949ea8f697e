package playback

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"
)

// Sender receives events as they become due.
type Sender interface {
	Send(e Event) error
}

// Play streams events to the sender in real time. It returns early with
// the context's error when cancelled.
func Play(ctx context.Context, events []Event, sender Sender) error {
	begin := time.Now()
	for _, e := range events {
		wait := e.Start - time.Since(begin)
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := sender.Send(e); err != nil {
			return errors.Wrapf(err, "could not send %v", e.Name)
		}
	}
	return nil
}

type oscClient interface {
	Send(packet osc.Packet) error
}

// OSCSender sends "/play <instrument> <note> <seconds>" messages.
type OSCSender struct {
	Instrument int32
	client     oscClient
}

func NewOSCSender(host string, port int, instrument int32) *OSCSender {
	return &OSCSender{Instrument: instrument, client: osc.NewClient(host, port)}
}

func (s *OSCSender) Send(e Event) error {
	msg := osc.NewMessage("/play")
	msg.Append(s.Instrument)
	msg.Append(e.Name)
	msg.Append(float32(e.Length.Seconds()))
	return s.client.Send(msg)
}

// LogSender prints events instead of sending them anywhere.
type LogSender struct{}

func (LogSender) Send(e Event) error {
	log.Printf("%8v %-4s %7.2f Hz for %v", e.Start, e.Name, e.Frequency, e.Length)
	return nil
}

func (e Event) String() string {
	return fmt.Sprintf("%v@%v+%v", e.Name, e.Start, e.Length)
}
