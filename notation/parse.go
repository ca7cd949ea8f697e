package notation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/scorepad/model"
)

const (
	tempoPrefix   = "tempo="
	keyPrefix     = "key="
	defaultOctave = 4
)

var (
	timeSignatureRegex = regexp.MustCompile(`^\s*(\d+)/(\d+)\s*`)
	richNoteRegex      = regexp.MustCompile(`([A-Ga-g][#bn]?|R)(\d)?([whqesWHQES])(\.|~)?`)
	legacyNoteRegex    = regexp.MustCompile(`([A-Ga-g][#b]?)(\d)`)
	leadingIntRegex    = regexp.MustCompile(`^\s*[+-]?\d+`)
)

var durationLetters = map[byte]float64{
	'w': model.Whole,
	'h': model.Half,
	'q': model.Quarter,
	'e': model.Eighth,
	's': model.Sixteenth,
}

// matcher turns a single token into a note. Matchers are tried in order and
// the first one that accepts the token wins.
type matcher func(token string) (model.Note, bool)

var matchers = []matcher{matchRichNote, matchLegacyNote}

// Parse converts notation text into a Score. It never fails: tokens that
// match no grammar are dropped.
func Parse(text string) model.Score {
	score := model.NewScore()

	for _, raw := range strings.Split(text, "|") {
		var measure model.Measure

		if m := timeSignatureRegex.FindStringSubmatch(raw); m != nil {
			num, errNum := strconv.Atoi(m[1])
			den, errDen := strconv.Atoi(m[2])
			if errNum == nil && errDen == nil && num > 0 && den > 0 {
				measure.TimeSignature = &model.TimeSignature{Numerator: num, Denominator: den}
			}
			raw = raw[len(m[0]):]
		}

		for _, token := range strings.Fields(raw) {
			if applyDirective(&score, token) {
				continue
			}
			if note, ok := matchNote(token); ok {
				measure.Notes = append(measure.Notes, note)
			}
		}

		if len(measure.Notes) > 0 {
			score.Measures = append(score.Measures, measure)
		}
	}

	return score
}

// applyDirective handles tempo= and key= tokens. The last occurrence in the
// text wins.
func applyDirective(score *model.Score, token string) bool {
	switch {
	case strings.HasPrefix(token, tempoPrefix):
		if tempo, ok := leadingInt(token[len(tempoPrefix):]); ok && tempo > 0 {
			score.Tempo = tempo
		}
		return true
	case strings.HasPrefix(token, keyPrefix):
		score.Key = token[len(keyPrefix):]
		return true
	}
	return false
}

func leadingInt(s string) (int, bool) {
	digits := leadingIntRegex.FindString(s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return 0, false
	}
	return n, true
}

func matchNote(token string) (model.Note, bool) {
	for _, m := range matchers {
		if note, ok := m(token); ok {
			return note, true
		}
	}
	return nil, false
}

func matchRichNote(token string) (model.Note, bool) {
	m := richNoteRegex.FindStringSubmatch(token)
	if m == nil {
		return nil, false
	}
	name, octaveStr, durationStr, modifier := m[1], m[2], m[3], m[4]

	d := model.Duration{
		Base:   baseDuration(durationStr[0]),
		Dotted: modifier == ".",
	}
	if name == "R" {
		return model.Rest{Duration: d}, true
	}

	octave := defaultOctave
	if octaveStr != "" {
		octave = int(octaveStr[0] - '0')
	}
	return model.Pitched{
		Letter:     toLetter(name[0]),
		Accidental: toAccidental(name),
		Octave:     octave,
		Duration:   d,
		Tied:       modifier == "~",
	}, true
}

func matchLegacyNote(token string) (model.Note, bool) {
	m := legacyNoteRegex.FindStringSubmatch(token)
	if m == nil {
		return nil, false
	}
	return model.Pitched{
		Letter:     toLetter(m[1][0]),
		Accidental: toAccidental(m[1]),
		Octave:     int(m[2][0] - '0'),
		Duration:   model.Duration{Base: model.Quarter},
	}, true
}

// baseDuration maps a duration letter to a fraction of a whole note,
// falling back to a quarter note.
func baseDuration(c byte) float64 {
	if d, ok := durationLetters[lower(c)]; ok {
		return d
	}
	return model.Quarter
}

func toLetter(c byte) model.Letter {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return model.Letter(c)
}

func toAccidental(name string) model.Accidental {
	if len(name) < 2 {
		return model.NoAccidental
	}
	return model.Accidental(name[1])
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
