package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/jsphweid/scorepad/layout"
	"github.com/jsphweid/scorepad/notation"
	"github.com/stretchr/testify/assert"
)

func TestSVGContainsPrimitives(t *testing.T) {
	svg := SVG(layout.Layout(notation.Parse("4/4 tempo=100 key=F C4h D#4q~ | Re")), Light)

	assert := assert.New(t)
	assert.True(strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="200" viewBox="0 0 800 200">`))
	assert.True(strings.HasSuffix(svg, "</svg>"))
	assert.Equal(5, strings.Count(svg, `<line class="staff-line" x1="20"`))
	assert.Contains(svg, `<ellipse class="note-stroke" cx="80" cy="120" rx="8" ry="6" />`)
	assert.Contains(svg, `<ellipse class="note" cx="110" cy="115" rx="8" ry="6" />`)
	assert.Contains(svg, `<text class="accidental" x="95" y="120">♯</text>`)
	assert.Contains(svg, `<path class="curve" d="M 120 105 C 130 95, 140 95, 150 105" />`)
	assert.Contains(svg, `<text class="tempo" x="25" y="80">♩ = 100</text>`)
	assert.Contains(svg, `<text class="tempo" x="100" y="80">Key: F</text>`)
	assert.Contains(svg, `<line class="bar-line" x1="145" y1="100" x2="145" y2="140" />`)
	assert.Contains(svg, `<text class="note" x="165" y="116">𝄾</text>`)
}

func TestSVGEscapesKey(t *testing.T) {
	svg := SVG(layout.Layout(notation.Parse("key=<b> C4q")), Dark)
	assert.Contains(t, svg, "Key: &lt;b&gt;")
	assert.Contains(t, svg, `fill="#1a1a1a"`)
}

func TestSVGIsStable(t *testing.T) {
	sheet := layout.Layout(notation.Parse("C4q. E4e G4h~ G4h"))
	assert.Equal(t, SVG(sheet, Light), SVG(sheet, Light))
}

func TestPNGMatchesSheetSize(t *testing.T) {
	sheet := layout.Layout(notation.Parse("4/4 C4q D4e. Rq Bb5w | Rh Rw Rq"))

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.Nil(PNG(&buf, sheet, Light))

	img, err := png.Decode(&buf)
	assert.Nil(err)
	assert.Equal(800, img.Bounds().Dx())
	assert.Equal(200, img.Bounds().Dy())
}

func TestCanvasDrawsNotehead(t *testing.T) {
	dc, err := Canvas(layout.Layout(notation.Parse("C4q")), Light)

	assert := assert.New(t)
	assert.Nil(err)
	r, g, b, _ := dc.Image().At(60, 120).RGBA()
	// filled with #333 at the notehead center
	assert.Equal(uint32(0x3333), r)
	assert.Equal(uint32(0x3333), g)
	assert.Equal(uint32(0x3333), b)
}

func TestThemeByName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Dark, ThemeByName(" Dark "))
	assert.Equal(Light, ThemeByName(""))
}
