package playback

import (
	"time"

	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/pitch"
	"github.com/jsphweid/scorepad/util"
)

// Event is one sounding note.
type Event struct {
	Name      string
	Midi      uint8
	Frequency float64
	Start     time.Duration
	Length    time.Duration
}

// wholeNoteLength is how long one whole-note fraction lasts. The player
// treats a duration of 1 as one beat.
func wholeNoteLength(tempo int) time.Duration {
	return time.Duration(float64(time.Minute) / float64(tempo))
}

func span(d float64, tempo int) time.Duration {
	return time.Duration(d * float64(wholeNoteLength(tempo)))
}

// Schedule lays out the pitched notes of a score in time. A tied note
// followed by the same pitch keeps sounding instead of retriggering.
func Schedule(s model.Score) []Event {
	tempo := s.BPM()
	var events []Event
	var now time.Duration
	var tiedFrom *model.Pitched

	for _, m := range s.Measures {
		for _, n := range m.Notes {
			length := span(n.Length().Value(), tempo)
			p, ok := n.(model.Pitched)
			if !ok {
				tiedFrom = nil
				now += length
				continue
			}

			if tiedFrom != nil && tiedFrom.SamePitch(p) {
				events[len(events)-1].Length += length
			} else {
				events = append(events, Event{
					Name:      p.Name(),
					Midi:      pitch.MidiNumber(p),
					Frequency: pitch.Frequency(p),
					Start:     now,
					Length:    length,
				})
			}

			tiedFrom = nil
			if p.Tied {
				tiedFrom = &p
			}
			now += length
		}
	}
	return events
}

// Total is the playing time of the whole score, rests included.
func Total(s model.Score) time.Duration {
	var lengths []float64
	for _, m := range s.Measures {
		for _, n := range m.Notes {
			lengths = append(lengths, n.Length().Value())
		}
	}
	return span(util.Sum(lengths), s.BPM())
}
