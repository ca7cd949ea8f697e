package midi

import (
	"bytes"

	"github.com/jsphweid/scorepad/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt cuts an SMF down to the notes starting at or after from, at most
// limit of them (0 means all). Everything else that happens before from is
// moved to the start so the tempo and program still apply, and all times are
// shifted so from becomes tick 0.
func Excerpt(s *smf.SMF, from uint32, limit int) (*smf.SMF, error) {
	var res smf.SMF
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		var newTrack smf.Track
		var absTicks, last uint32
		var started int
		open := make(map[uint8]bool)

		for _, evt := range track {
			absTicks += evt.Delta
			var ch, key, vel uint8
			switch {
			case bytes.Equal(evt.Message, endOfTrack):
				continue
			case evt.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				if absTicks < from || (limit > 0 && started >= limit) {
					continue
				}
				started++
				open[key] = true
			case evt.Message.GetNoteOff(&ch, &key, &vel):
				if !open[key] {
					continue
				}
				delete(open, key)
			}

			at := absTicks - util.Min(absTicks, from)
			evt.Delta = at - last
			last = at
			newTrack = append(newTrack, evt)
		}

		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}

	// written and read back so the tempo map is rebuilt
	var buf bytes.Buffer
	if _, err := res.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "could not write excerpt")
	}
	return Read(buf.Bytes())
}
