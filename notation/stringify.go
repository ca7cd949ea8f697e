package notation

import (
	"fmt"
	"strings"

	"github.com/jsphweid/scorepad/model"
)

// durationLetter maps a base duration back to its letter. Unknown values
// are written as quarter notes.
func durationLetter(base float64) string {
	for c, d := range durationLetters {
		if d == base {
			return string(c)
		}
	}
	return "q"
}

// Stringify writes a Score back to notation text. Default tempo and an
// absent key are omitted, so the output is not byte-identical to whatever
// was parsed. When the first measure has a time signature the header is
// written as its own measure ("tempo=90 | 4/4 C4q") so it parses back.
func Stringify(score model.Score) string {
	measures := make([]string, 0, len(score.Measures))
	for _, m := range score.Measures {
		measures = append(measures, stringifyMeasure(m))
	}

	var header strings.Builder
	if tempo := score.BPM(); tempo != model.DefaultTempo {
		fmt.Fprintf(&header, "%s%d ", tempoPrefix, tempo)
	}
	if score.Key != "" {
		fmt.Fprintf(&header, "%s%s ", keyPrefix, score.Key)
	}

	// A time signature is only recognised at the start of a measure, so the
	// header gets its own (note-less) measure when the first one has one.
	if header.Len() > 0 && len(score.Measures) > 0 && score.Measures[0].TimeSignature != nil {
		header.WriteString("| ")
	}

	return header.String() + strings.Join(measures, " | ")
}

func stringifyMeasure(m model.Measure) string {
	var b strings.Builder
	if ts := m.TimeSignature; ts != nil {
		fmt.Fprintf(&b, "%d/%d ", ts.Numerator, ts.Denominator)
	}
	tokens := make([]string, 0, len(m.Notes))
	for _, n := range m.Notes {
		tokens = append(tokens, stringifyNote(n))
	}
	b.WriteString(strings.Join(tokens, " "))
	return b.String()
}

func stringifyNote(n model.Note) string {
	switch v := n.(type) {
	case model.Rest:
		s := "R" + durationLetter(v.Duration.Base)
		if v.Duration.Dotted {
			s += "."
		}
		return s
	case model.Pitched:
		s := v.Name() + durationLetter(v.Duration.Base)
		if v.Duration.Dotted {
			s += "."
		} else if v.Tied {
			s += "~"
		}
		return s
	}
	return ""
}
