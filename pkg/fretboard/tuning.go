// Package fretboard resolves (string, fret) coordinates to pitches and scale
// membership. Nothing here keeps per-cell state: a renderer ranges over
// Positions or Cells once per pass and draws each value as it arrives.
package fretboard

import (
	"sort"
	"strings"

	"github.com/chase3718/fretdash/pkg/theory"
)

// Tuning lists the open-string notes, index 0 being the lowest-pitched string.
type Tuning []theory.Note

// StandardTuning is E2 A2 D3 G3 B3 E4.
func StandardTuning() Tuning {
	return Tuning{
		{Key: theory.E, Octave: 2},
		{Key: theory.A, Octave: 2},
		{Key: theory.D, Octave: 3},
		{Key: theory.G, Octave: 3},
		{Key: theory.B, Octave: 3},
		{Key: theory.E, Octave: 4},
	}
}

var namedTunings = map[string]string{
	"standard":   "E2 A2 D3 G3 B3 E4",
	"drop-d":     "D2 A2 D3 G3 B3 E4",
	"half-step":  "D#2 G#2 C#3 F#3 A#3 D#4",
	"open-g":     "D2 G2 D3 G3 B3 D4",
	"open-d":     "D2 A2 D3 F#3 A3 D4",
	"dadgad":     "D2 A2 D3 G3 A3 D4",
	"bass":       "E1 A1 D2 G2",
	"bass-5":     "B0 E1 A1 D2 G2",
	"seven":      "B1 E2 A2 D3 G3 B3 E4",
	"ukulele":    "G4 C4 E4 A4",
	"mandolin":   "G3 D4 A4 E5",
	"baritone-b": "B1 E2 A2 D3 F#3 B3",
}

// TuningNames lists the names LookupTuning understands, sorted.
func TuningNames() []string {
	names := make([]string, 0, len(namedTunings))
	for name := range namedTunings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTuning returns a named tuning such as "drop-d". If name is not a known
// tuning it is parsed as a note list instead.
func LookupTuning(name string) (Tuning, error) {
	if spec, ok := namedTunings[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ParseTuning(spec)
	}
	return ParseTuning(name)
}

// ParseTuning reads open-string notes separated by spaces or commas, lowest
// string first, e.g. "E2 A2 D3 G3 B3 E4".
func ParseTuning(s string) (Tuning, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, &theory.ParseError{Kind: "tuning", Input: s}
	}
	t := make(Tuning, len(fields))
	for i, f := range fields {
		n, err := theory.ParseNote(f)
		if err != nil {
			return nil, err
		}
		t[i] = n
	}
	return t, nil
}

func (t Tuning) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}

// Strings returns the number of strings.
func (t Tuning) Strings() int { return len(t) }

// Range returns the lowest and highest notes reachable with frets 0..fretCount.
// ok is false for an empty tuning or a negative fret count.
func (t Tuning) Range(fretCount int) (lo, hi theory.Note, ok bool) {
	if len(t) == 0 || fretCount < 0 {
		return theory.Note{}, theory.Note{}, false
	}
	lo, hi = t[0], t[0].Transpose(fretCount)
	for _, open := range t[1:] {
		if open.Semitone() < lo.Semitone() {
			lo = open
		}
		if top := open.Transpose(fretCount); top.Semitone() > hi.Semitone() {
			hi = top
		}
	}
	return lo, hi, true
}
