package model

import (
	"fmt"
)

type Letter byte

const (
	LetterC Letter = 'C'
	LetterD Letter = 'D'
	LetterE Letter = 'E'
	LetterF Letter = 'F'
	LetterG Letter = 'G'
	LetterA Letter = 'A'
	LetterB Letter = 'B'
)

func (l Letter) String() string {
	return string(l)
}

type Accidental byte

const (
	NoAccidental Accidental = 0
	Sharp        Accidental = '#'
	Flat         Accidental = 'b'
	Natural      Accidental = 'n'
)

func (a Accidental) String() string {
	if a == NoAccidental {
		return ""
	}
	return string(a)
}

// Shift is the chromatic offset the accidental applies (natural is 0).
func (a Accidental) Shift() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	}
	return 0
}

// Duration is a fraction of a whole note. Base is one of 1, 1/2, 1/4, 1/8
// or 1/16.
type Duration struct {
	Base   float64
	Dotted bool
}

func (d Duration) Value() float64 {
	if d.Dotted {
		return d.Base * 1.5
	}
	return d.Base
}

const (
	Whole     = 1.0
	Half      = 0.5
	Quarter   = 0.25
	Eighth    = 0.125
	Sixteenth = 0.0625
)

// Note is either a Rest or a Pitched note.
type Note interface {
	Length() Duration
	isNote()
}

type Rest struct {
	Duration Duration
}

func (r Rest) Length() Duration { return r.Duration }
func (Rest) isNote()            {}

type Pitched struct {
	Letter     Letter
	Accidental Accidental
	Octave     int
	Duration   Duration
	Tied       bool
}

func (p Pitched) Length() Duration { return p.Duration }
func (Pitched) isNote()            {}

// Name renders the pitch the way it is spelled in notation text, e.g. "D#5".
func (p Pitched) Name() string {
	return fmt.Sprintf("%v%v%d", p.Letter, p.Accidental, p.Octave)
}

// SamePitch reports whether two notes sound the same key, ignoring duration
// and tie.
func (p Pitched) SamePitch(o Pitched) bool {
	return p.Letter == o.Letter && p.Octave == o.Octave && p.Accidental.Shift() == o.Accidental.Shift()
}

type noteJSON struct {
	Type       string  `json:"type"`
	Letter     string  `json:"letter,omitempty"`
	Accidental string  `json:"accidental,omitempty"`
	Octave     int     `json:"octave,omitempty"`
	Base       float64 `json:"baseDuration"`
	Dotted     bool    `json:"dotted,omitempty"`
	Duration   float64 `json:"duration"`
	Tied       bool    `json:"tied,omitempty"`
}

const (
	noteTypeRest = "rest"
	noteTypeNote = "note"
)

func encodeNote(n Note) noteJSON {
	switch v := n.(type) {
	case Rest:
		return noteJSON{
			Type:     noteTypeRest,
			Base:     v.Duration.Base,
			Dotted:   v.Duration.Dotted,
			Duration: v.Duration.Value(),
		}
	case Pitched:
		return noteJSON{
			Type:       noteTypeNote,
			Letter:     v.Letter.String(),
			Accidental: v.Accidental.String(),
			Octave:     v.Octave,
			Base:       v.Duration.Base,
			Dotted:     v.Duration.Dotted,
			Duration:   v.Duration.Value(),
			Tied:       v.Tied,
		}
	}
	panic(fmt.Sprintf("unknown note variant %T", n))
}

func decodeNote(nj noteJSON) (Note, error) {
	d := Duration{Base: nj.Base, Dotted: nj.Dotted}
	switch nj.Type {
	case noteTypeRest:
		return Rest{Duration: d}, nil
	case noteTypeNote:
		if len(nj.Letter) != 1 || nj.Letter[0] < 'A' || nj.Letter[0] > 'G' {
			return nil, fmt.Errorf("invalid note letter %q", nj.Letter)
		}
		var acc Accidental
		switch nj.Accidental {
		case "":
		case "#", "b", "n":
			acc = Accidental(nj.Accidental[0])
		default:
			return nil, fmt.Errorf("invalid accidental %q", nj.Accidental)
		}
		return Pitched{
			Letter:     Letter(nj.Letter[0]),
			Accidental: acc,
			Octave:     nj.Octave,
			Duration:   d,
			Tied:       nj.Tied,
		}, nil
	}
	return nil, fmt.Errorf("invalid note type %q", nj.Type)
}
