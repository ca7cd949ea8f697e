package model

import "encoding/json"

const DefaultTempo = 120

type TimeSignature struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

type Measure struct {
	Notes         []Note
	TimeSignature *TimeSignature
}

// Score is the parsed form of a notation string. Key == "" means no key was
// given.
type Score struct {
	Measures []Measure
	Tempo    int
	Key      string
}

func NewScore() Score {
	return Score{Measures: []Measure{}, Tempo: DefaultTempo}
}

// BPM returns the tempo, falling back to DefaultTempo for a zero value.
func (s Score) BPM() int {
	if s.Tempo <= 0 {
		return DefaultTempo
	}
	return s.Tempo
}

type measureJSON struct {
	Notes         []noteJSON     `json:"notes"`
	TimeSignature *TimeSignature `json:"timeSignature,omitempty"`
}

func (m Measure) MarshalJSON() ([]byte, error) {
	mj := measureJSON{Notes: make([]noteJSON, 0, len(m.Notes)), TimeSignature: m.TimeSignature}
	for _, n := range m.Notes {
		mj.Notes = append(mj.Notes, encodeNote(n))
	}
	return json.Marshal(mj)
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	var mj measureJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return err
	}
	notes := make([]Note, 0, len(mj.Notes))
	for _, nj := range mj.Notes {
		n, err := decodeNote(nj)
		if err != nil {
			return err
		}
		notes = append(notes, n)
	}
	m.Notes = notes
	m.TimeSignature = mj.TimeSignature
	return nil
}

type scoreJSON struct {
	Measures []Measure `json:"measures"`
	Tempo    int       `json:"tempo"`
	Key      string    `json:"key,omitempty"`
}

func (s Score) MarshalJSON() ([]byte, error) {
	measures := s.Measures
	if measures == nil {
		measures = []Measure{}
	}
	return json.Marshal(scoreJSON{Measures: measures, Tempo: s.BPM(), Key: s.Key})
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var sj scoreJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	s.Measures = sj.Measures
	if s.Measures == nil {
		s.Measures = []Measure{}
	}
	s.Tempo = sj.Tempo
	if s.Tempo <= 0 {
		s.Tempo = DefaultTempo
	}
	s.Key = sj.Key
	return nil
}
