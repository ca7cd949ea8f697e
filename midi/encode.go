package midi

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/pitch"
	"github.com/jsphweid/scorepad/util"
	gomidi "gitlab.com/gomidi/midi/v2"
)

const (
	TicksPerQuarter = 480
	headerLength    = 6
	format          = 1
	numTracks       = 1

	channel         = 0
	piano           = 0
	noteOnVelocity  = 0x64
	noteOffVelocity = 0x40
)

var (
	headerChunkID = []byte("MThd")
	trackChunkID  = []byte("MTrk")
	endOfTrack    = []byte{0xFF, 0x2F, 0x00}
)

// Encode writes the score as a single-track Standard MIDI File.
//
// Note timing counts durations (fractions of a whole note) against 480
// ticks, so a quarter note lasts 120 ticks.
func Encode(s model.Score) []byte {
	events := new(bytes.Buffer)

	writeEvent(events, 0, tempoEvent(s.BPM()))
	writeEvent(events, 0, gomidi.ProgramChange(channel, piano))

	var now, lastEvent float64
	for _, m := range s.Measures {
		for _, n := range m.Notes {
			length := n.Length().Value()
			p, ok := n.(model.Pitched)
			if !ok {
				now += length
				continue
			}

			key := pitch.MidiNumber(p)
			writeEvent(events, ticks(now-lastEvent), gomidi.NoteOn(channel, key, noteOnVelocity))
			writeEvent(events, ticks(length), gomidi.NoteOffVelocity(channel, key, noteOffVelocity))
			now += length
			lastEvent = now
		}
	}

	writeEvent(events, 0, endOfTrack)

	out := new(bytes.Buffer)
	out.Write(headerChunkID)
	binary.Write(out, binary.BigEndian, uint32(headerLength))
	binary.Write(out, binary.BigEndian, uint16(format))
	binary.Write(out, binary.BigEndian, uint16(numTracks))
	binary.Write(out, binary.BigEndian, uint16(TicksPerQuarter))

	out.Write(trackChunkID)
	binary.Write(out, binary.BigEndian, uint32(events.Len()))
	out.Write(events.Bytes())
	return out.Bytes()
}

func ticks(d float64) uint32 {
	t := math.Round(d * TicksPerQuarter)
	if t < 0 {
		return 0
	}
	return uint32(t)
}

const maxTempoValue = 0xFFFFFF

// MicrosecondsPerQuarter is the set-tempo value for a tempo in BPM, capped
// at what the 3-byte field holds.
func MicrosecondsPerQuarter(bpm int) uint32 {
	return util.Min(uint32(60000000/bpm), maxTempoValue)
}

func tempoEvent(bpm int) []byte {
	us := MicrosecondsPerQuarter(bpm)
	return []byte{0xFF, 0x51, 0x03, byte(us >> 16), byte(us >> 8), byte(us)}
}

func writeEvent(buf *bytes.Buffer, delta uint32, msg []byte) {
	buf.Write(appendVarLen(nil, delta))
	buf.Write(msg)
}

// appendVarLen appends n as a MIDI variable-length quantity.
func appendVarLen(b []byte, n uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(n & 0x7F)
	for n >>= 7; n > 0; n >>= 7 {
		i--
		tmp[i] = byte(n&0x7F) | 0x80
	}
	return append(b, tmp[i:]...)
}
