package layout

import (
	"fmt"

	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/util"
)

type Options struct {
	StaffHeight float64
	StaffTop    float64
	// staff lines run from StaffInset to Width-StaffInset
	StaffInset float64
	LeftMargin float64

	NoteWidth          float64
	TimeSignatureWidth float64
	BarSpacing         float64
	AccidentalSpace    float64
	DotSpace           float64

	MinWidth float64
	Height   float64
}

func DefaultOptions() Options {
	return Options{
		StaffHeight:        40,
		StaffTop:           100,
		StaffInset:         20,
		LeftMargin:         60,
		NoteWidth:          30,
		TimeSignatureWidth: 20,
		BarSpacing:         20,
		AccidentalSpace:    5,
		DotSpace:           5,
		MinWidth:           800,
		Height:             200,
	}
}

const (
	noteheadRX = 8
	noteheadRY = 6
	stemOffset = 6
	stemLength = 30
)

// staff steps below the middle C line for each letter
var staffSteps = map[model.Letter]float64{
	model.LetterC: 0,
	model.LetterD: -1,
	model.LetterE: -2,
	model.LetterF: -3,
	model.LetterG: -4,
	model.LetterA: -5,
	model.LetterB: -6,
}

var accidentalGlyphs = map[model.Accidental]string{
	model.Sharp:   "♯",
	model.Flat:    "♭",
	model.Natural: "♮",
}

var restGlyphs = map[RestGlyph]string{
	WholeRest:   "𝄻",
	HalfRest:    "𝄼",
	QuarterRest: "𝄽",
	EighthRest:  "𝄾",
}

func (g RestGlyph) String() string {
	return restGlyphs[g]
}

// Layout places a score with the default options.
func Layout(s model.Score) Sheet {
	return DefaultOptions().Layout(s)
}

func (o Options) middleLine() float64 {
	return o.StaffTop + 2*(o.StaffHeight/4)
}

// NoteY is the vertical center of a pitched note's head.
func (o Options) NoteY(p model.Pitched) float64 {
	return o.middleLine() + staffSteps[p.Letter]*(o.StaffHeight/8) - float64(p.Octave-4)*(o.StaffHeight/2)
}

func restGlyph(d float64) RestGlyph {
	switch {
	case d >= model.Whole:
		return WholeRest
	case d >= model.Half:
		return HalfRest
	case d <= model.Eighth:
		return EighthRest
	}
	return QuarterRest
}

// Layout turns a score into drawing primitives, in drawing order.
func (o Options) Layout(s model.Score) Sheet {
	var body []Primitive
	x := o.LeftMargin

	for i, m := range s.Measures {
		if ts := m.TimeSignature; ts != nil {
			body = append(body,
				Primitive{Kind: TimeSignature, X: x, Y: o.StaffTop + 8, Text: fmt.Sprint(ts.Numerator)},
				Primitive{Kind: TimeSignature, X: x, Y: o.StaffTop + 24, Text: fmt.Sprint(ts.Denominator)},
			)
			x += o.TimeSignatureWidth
		}

		for _, n := range m.Notes {
			body = append(body, o.placeNote(n, x)...)
			x += o.NoteWidth
			if p, ok := n.(model.Pitched); ok && p.Accidental != model.NoAccidental {
				x += o.AccidentalSpace
			}
			if n.Length().Dotted {
				x += o.DotSpace
			}
		}

		if i < len(s.Measures)-1 {
			body = append(body, Primitive{Kind: BarLine, X: x, Y: o.StaffTop, X2: x, Y2: o.StaffTop + o.StaffHeight})
			x += o.BarSpacing
		}
	}

	width := util.Max(o.MinWidth, x+2*o.StaffInset)
	sheet := Sheet{Width: width, Height: o.Height}

	for i := 0; i < 5; i++ {
		y := o.StaffTop + float64(i)*(o.StaffHeight/4)
		sheet.Primitives = append(sheet.Primitives, Primitive{Kind: StaffLine, X: o.StaffInset, Y: y, X2: width - o.StaffInset, Y2: y})
	}
	sheet.Primitives = append(sheet.Primitives,
		Primitive{Kind: Clef, X: 30, Y: o.StaffTop + 16, Text: "𝄞"},
		Primitive{Kind: TempoLabel, X: 25, Y: o.StaffTop - 20, Text: fmt.Sprintf("♩ = %d", s.BPM())},
	)
	if s.Key != "" {
		sheet.Primitives = append(sheet.Primitives, Primitive{Kind: KeyLabel, X: 100, Y: o.StaffTop - 20, Text: "Key: " + s.Key})
	}
	sheet.Primitives = append(sheet.Primitives, body...)

	return sheet
}

func (o Options) placeNote(n model.Note, x float64) []Primitive {
	d := n.Length().Value()

	p, ok := n.(model.Pitched)
	if !ok {
		g := restGlyph(d)
		return []Primitive{{Kind: Rest, X: x, Y: o.StaffTop + 16, Rest: g, Text: g.String()}}
	}

	y := o.NoteY(p)
	res := []Primitive{{Kind: Notehead, X: x, Y: y, RX: noteheadRX, RY: noteheadRY, Filled: d < model.Half}}

	stemX := x + stemOffset
	if d < model.Whole {
		res = append(res, Primitive{Kind: Stem, X: stemX, Y: y, X2: stemX, Y2: y - stemLength})
	}
	if d <= model.Eighth {
		res = append(res, Primitive{Kind: Flag, X: stemX, Y: y - stemLength, Curve: [4]Point{
			{stemX, y - stemLength},
			{stemX, y - stemLength},
			{x + 20, y - 25},
			{x + 20, y - 15},
		}})
	}
	if p.Duration.Dotted {
		res = append(res, Primitive{Kind: Dot, X: x + 14, Y: y, RX: 2, RY: 2, Filled: true})
	}
	if p.Tied {
		res = append(res, Primitive{Kind: Tie, X: x + 10, Y: y - 10, Curve: [4]Point{
			{x + 10, y - 10},
			{x + 20, y - 20},
			{x + 30, y - 20},
			{x + 40, y - 10},
		}})
	}
	if p.Accidental != model.NoAccidental {
		res = append(res, Primitive{Kind: Accidental, X: x - 15, Y: y + 5, Text: accidentalGlyphs[p.Accidental]})
	}
	return res
}
