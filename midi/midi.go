package midi

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Read parses MIDI bytes back into an SMF.
func Read(data []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("error parsing midi: %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi")
	}
	return res, nil
}

func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return Read(dat)
}

type NoteEvent struct {
	Key      uint8
	Start    uint32
	Duration uint32
	// Time is Start converted with the file's tempo map.
	Time time.Duration
}

// Notes pairs note-on and note-off events of every track, in ticks.
func Notes(s *smf.SMF) []NoteEvent {
	var res []NoteEvent
	for _, track := range s.Tracks {
		var absTicks uint32
		open := make(map[uint8]int)
		for _, evt := range track {
			absTicks += evt.Delta
			var ch, key, vel uint8
			switch {
			case evt.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				open[key] = len(res)
				at := time.Duration(s.TimeAt(int64(absTicks))) * time.Microsecond
				res = append(res, NoteEvent{Key: key, Start: absTicks, Time: at})
			case evt.Message.GetNoteOff(&ch, &key, &vel):
				if i, ok := open[key]; ok {
					res[i].Duration = absTicks - res[i].Start
					delete(open, key)
				}
			}
		}
	}
	return res
}
