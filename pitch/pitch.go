package pitch

import (
	"math"

	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/util"
)

const (
	ReferenceFrequency = 440.0
	// A4 counted in semitones from C0.
	referenceIndex = 9 + 4*12
)

// semitones above C for each natural letter
var diatonic = map[model.Letter]int{
	model.LetterC: 0,
	model.LetterD: 2,
	model.LetterE: 4,
	model.LetterF: 5,
	model.LetterG: 7,
	model.LetterA: 9,
	model.LetterB: 11,
}

func chromaticIndex(l model.Letter) int {
	if i, ok := diatonic[l]; ok {
		return i
	}
	return -1
}

// Frequency returns the equal-tempered frequency of a note, with A4 at
// 440 Hz. Rests are 0 Hz and unknown letters fall back to 440 Hz.
//
// The accidental wraps within the octave: Cb4 resolves to B4 and B#4 to C4.
func Frequency(n model.Note) float64 {
	p, ok := n.(model.Pitched)
	if !ok {
		return 0
	}

	index := chromaticIndex(p.Letter)
	if index == -1 {
		return ReferenceFrequency
	}
	index = (index + p.Accidental.Shift() + 12) % 12

	distance := index + p.Octave*12 - referenceIndex
	return ReferenceFrequency * math.Pow(2, float64(distance)/12)
}

// MidiNumber returns the MIDI key for a pitched note, C4 being 60. Values
// are clamped to the 0-127 range.
func MidiNumber(p model.Pitched) uint8 {
	n := diatonic[p.Letter] + p.Accidental.Shift() + (p.Octave+1)*12
	return uint8(util.Clamp(n, 0, 127))
}
