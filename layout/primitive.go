package layout

type Kind int

const (
	StaffLine Kind = iota
	Clef
	TempoLabel
	KeyLabel
	TimeSignature
	Notehead
	Stem
	Flag
	Dot
	Tie
	Accidental
	Rest
	BarLine
)

var kindNames = map[Kind]string{
	StaffLine:     "staff-line",
	Clef:          "clef",
	TempoLabel:    "tempo",
	KeyLabel:      "key",
	TimeSignature: "time-signature",
	Notehead:      "notehead",
	Stem:          "stem",
	Flag:          "flag",
	Dot:           "dot",
	Tie:           "tie",
	Accidental:    "accidental",
	Rest:          "rest",
	BarLine:       "bar-line",
}

func (k Kind) String() string {
	return kindNames[k]
}

type RestGlyph int

const (
	QuarterRest RestGlyph = iota
	WholeRest
	HalfRest
	EighthRest
)

type Point struct {
	X, Y float64
}

// Primitive is one drawing instruction. X and Y anchor the shape: the
// center for noteheads and dots, the start for lines, the text baseline for
// glyphs. Lines end at X2/Y2, curves are cubic Béziers through Curve.
type Primitive struct {
	Kind Kind
	X, Y float64

	X2, Y2 float64
	Curve  [4]Point

	RX, RY float64
	Filled bool

	Text string
	Rest RestGlyph
}

// Sheet is a laid out score.
type Sheet struct {
	Width, Height float64
	Primitives    []Primitive
}
