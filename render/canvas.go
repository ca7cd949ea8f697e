package render

import (
	"io"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/scorepad/layout"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// the bundled Go font has no music symbols
var asciiGlyphs = strings.NewReplacer(
	"♯", "#",
	"♭", "b",
	"♮", "n",
	"♩", "q",
	"𝄞", "G",
)

var (
	faceOnce sync.Once
	faceErr  error
	regular  *truetype.Font
)

func loadFace(size float64) (font.Face, error) {
	faceOnce.Do(func() {
		regular, faceErr = truetype.Parse(goregular.TTF)
	})
	if faceErr != nil {
		return nil, errors.Wrap(faceErr, "could not parse font")
	}
	return truetype.NewFace(regular, &truetype.Options{Size: size}), nil
}

type canvas struct {
	dc    *gg.Context
	theme Theme
	faces map[float64]font.Face
}

// Canvas rasterizes a sheet at one pixel per layout unit.
func Canvas(sheet layout.Sheet, theme Theme) (*gg.Context, error) {
	c := &canvas{
		dc:    gg.NewContext(int(math.Ceil(sheet.Width)), int(math.Ceil(sheet.Height))),
		theme: theme,
		faces: make(map[float64]font.Face),
	}
	c.dc.SetHexColor(theme.Background)
	c.dc.Clear()
	c.dc.SetLineWidth(1)

	for _, p := range sheet.Primitives {
		if err := c.draw(p); err != nil {
			return nil, err
		}
	}
	return c.dc, nil
}

// PNG writes the rasterized sheet as a PNG image.
func PNG(w io.Writer, sheet layout.Sheet, theme Theme) error {
	dc, err := Canvas(sheet, theme)
	if err != nil {
		return err
	}
	return errors.Wrap(dc.EncodePNG(w), "could not encode png")
}

func (c *canvas) text(p layout.Primitive, color string, size float64) error {
	face, ok := c.faces[size]
	if !ok {
		var err error
		if face, err = loadFace(size); err != nil {
			return err
		}
		c.faces[size] = face
	}
	c.dc.SetFontFace(face)
	c.dc.SetHexColor(color)
	c.dc.DrawString(asciiGlyphs.Replace(p.Text), p.X, p.Y)
	return nil
}

func (c *canvas) draw(p layout.Primitive) error {
	dc := c.dc
	switch p.Kind {
	case layout.StaffLine, layout.Stem, layout.BarLine:
		dc.SetHexColor(c.theme.Line)
		dc.DrawLine(p.X, p.Y, p.X2, p.Y2)
		dc.Stroke()
	case layout.Clef:
		return c.text(p, c.theme.Note, 40)
	case layout.TempoLabel, layout.KeyLabel:
		return c.text(p, c.theme.Text, 12)
	case layout.TimeSignature:
		return c.text(p, c.theme.Note, 16)
	case layout.Accidental:
		return c.text(p, c.theme.Note, 16)
	case layout.Notehead:
		dc.SetHexColor(c.theme.Note)
		dc.DrawEllipse(p.X, p.Y, p.RX, p.RY)
		if p.Filled {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	case layout.Dot:
		dc.SetHexColor(c.theme.Note)
		dc.DrawCircle(p.X, p.Y, p.RX)
		dc.Fill()
	case layout.Flag, layout.Tie:
		dc.SetHexColor(c.theme.Line)
		dc.NewSubPath()
		dc.MoveTo(p.Curve[0].X, p.Curve[0].Y)
		dc.CubicTo(p.Curve[1].X, p.Curve[1].Y, p.Curve[2].X, p.Curve[2].Y, p.Curve[3].X, p.Curve[3].Y)
		dc.Stroke()
	case layout.Rest:
		c.rest(p)
	}
	return nil
}

// rest draws rest shapes anchored where the SVG places the rest glyph.
func (c *canvas) rest(p layout.Primitive) {
	dc := c.dc
	dc.SetHexColor(c.theme.Note)
	x, y := p.X, p.Y
	switch p.Rest {
	case layout.WholeRest:
		dc.DrawRectangle(x, y-6, 10, 4)
		dc.Fill()
	case layout.HalfRest:
		dc.DrawRectangle(x, y-4, 10, 4)
		dc.Fill()
	case layout.EighthRest:
		dc.DrawCircle(x+3, y-8, 2)
		dc.Fill()
		dc.DrawLine(x+3, y-8, x+9, y-10)
		dc.DrawLine(x+9, y-10, x+4, y+6)
		dc.Stroke()
	default:
		dc.MoveTo(x+2, y-14)
		dc.LineTo(x+8, y-7)
		dc.LineTo(x+3, y-2)
		dc.LineTo(x+8, y+4)
		dc.Stroke()
	}
}
