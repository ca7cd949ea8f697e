package layout

import (
	"testing"

	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/notation"
	"github.com/stretchr/testify/assert"
)

func ofKind(sheet Sheet, k Kind) []Primitive {
	var res []Primitive
	for _, p := range sheet.Primitives {
		if p.Kind == k {
			res = append(res, p)
		}
	}
	return res
}

func TestOctaveApartDiffersByHalfStaff(t *testing.T) {
	opts := DefaultOptions()
	heads := ofKind(opts.Layout(notation.Parse("C4q C5q")), Notehead)

	assert := assert.New(t)
	assert.Len(heads, 2)
	assert.Equal(opts.StaffHeight/2, heads[0].Y-heads[1].Y)
}

func TestNoteY(t *testing.T) {
	opts := DefaultOptions()
	c4 := model.Pitched{Letter: model.LetterC, Octave: 4}
	b4 := model.Pitched{Letter: model.LetterB, Octave: 4}

	assert := assert.New(t)
	assert.Equal(120.0, opts.NoteY(c4))
	assert.Equal(90.0, opts.NoteY(b4))
}

func TestHorizontalSpacing(t *testing.T) {
	sheet := Layout(notation.Parse("4/4 C4q D#4q E4q. F4q | G4q"))
	heads := ofKind(sheet, Notehead)

	xs := make([]float64, 0, len(heads))
	for _, h := range heads {
		xs = append(xs, h.X)
	}
	// 60 + 20 for the time signature, +5 for the sharp, +5 for the dot,
	// +20 after the bar line
	assert.Equal(t, []float64{80, 110, 145, 180, 230}, xs)

	bars := ofKind(sheet, BarLine)
	if assert.Len(t, bars, 1) {
		assert.Equal(t, 210.0, bars[0].X)
		assert.Equal(t, 100.0, bars[0].Y)
		assert.Equal(t, 140.0, bars[0].Y2)
	}
}

func TestNoteheadShapesAndDecorations(t *testing.T) {
	cases := []struct {
		token  string
		filled bool
		stem   bool
		flag   bool
		dot    bool
	}{
		{"C4w", false, false, false, false},
		{"C4h", false, true, false, false},
		{"C4h.", false, true, false, true},
		{"C4q", true, true, false, false},
		{"C4q.", true, true, false, true},
		{"C4e", true, true, true, false},
		{"C4s", true, true, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			sheet := Layout(notation.Parse(tc.token))

			assert := assert.New(t)
			heads := ofKind(sheet, Notehead)
			if assert.Len(heads, 1) {
				assert.Equal(tc.filled, heads[0].Filled)
			}
			assert.Equal(tc.stem, len(ofKind(sheet, Stem)) == 1)
			assert.Equal(tc.flag, len(ofKind(sheet, Flag)) == 1)
			assert.Equal(tc.dot, len(ofKind(sheet, Dot)) == 1)
		})
	}
}

func TestTieAndAccidental(t *testing.T) {
	sheet := Layout(notation.Parse("Bb4q~ Bb4q"))

	assert := assert.New(t)
	ties := ofKind(sheet, Tie)
	if assert.Len(ties, 1) {
		assert.Equal(Point{70, 80}, ties[0].Curve[0])
		assert.Equal(Point{100, 80}, ties[0].Curve[3])
	}
	accs := ofKind(sheet, Accidental)
	if assert.Len(accs, 2) {
		assert.Equal("♭", accs[0].Text)
		assert.Equal(45.0, accs[0].X)
		assert.Equal(95.0, accs[0].Y)
	}
}

func TestRestGlyphs(t *testing.T) {
	sheet := Layout(notation.Parse("Rw Rh Rq Re Rs Rq."))

	var glyphs []RestGlyph
	for _, r := range ofKind(sheet, Rest) {
		glyphs = append(glyphs, r.Rest)
	}
	assert.Equal(t, []RestGlyph{WholeRest, HalfRest, QuarterRest, EighthRest, EighthRest, QuarterRest}, glyphs)
	assert.Empty(t, ofKind(sheet, Notehead))
}

func TestHeaderPrimitives(t *testing.T) {
	assert := assert.New(t)

	sheet := Layout(notation.Parse("tempo=90 key=D C4q"))
	assert.Len(ofKind(sheet, StaffLine), 5)
	assert.Len(ofKind(sheet, Clef), 1)
	assert.Equal("♩ = 90", ofKind(sheet, TempoLabel)[0].Text)
	assert.Equal("Key: D", ofKind(sheet, KeyLabel)[0].Text)

	assert.Empty(ofKind(Layout(notation.Parse("C4q")), KeyLabel))
}

func TestWidthGrowsWithContent(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(800.0, Layout(notation.Parse("C4q")).Width)

	long := Layout(notation.Parse("C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q C4q"))
	assert.Equal(60+25*30+40.0, long.Width)
	lines := ofKind(long, StaffLine)
	assert.Equal(long.Width-20, lines[0].X2)
}

func TestLayoutIsDeterministic(t *testing.T) {
	score := notation.Parse("4/4 C#4q~ C#4q | Rh. E5e")
	assert.Equal(t, Layout(score), Layout(score))
}
