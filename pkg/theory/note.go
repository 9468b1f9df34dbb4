package theory

import (
	"math"
	"strconv"
	"strings"
)

// ReferencePitch is the frequency of A4 in Hz unless a Temperament says
// otherwise.
const ReferencePitch = 440.0

// ParseNote accepts octaves in [MinOctave, MaxOctave]. Every note in that
// range has a finite, non-zero frequency at reference pitches from 1 Hz to
// 1 MHz.
const (
	MinOctave = -1000
	MaxOctave = 1000
)

// a4 is the absolute semitone index of A4.
const a4 = 4*12 + int(A)

// Note is an absolute pitch: a key in a given octave. Octave numbering is
// scientific, so C4 is middle C and octaves may be negative.
type Note struct {
	Key    Key
	Octave int
}

func NewNote(k Key, octave int) Note {
	return Note{Key: KeyFromInt(int(k)), Octave: octave}
}

// NoteFromSemitone is the inverse of Note.Semitone.
func NoteFromSemitone(n int) Note {
	return Note{Key: KeyFromInt(n), Octave: floorDiv12(n)}
}

// NoteFromMIDI converts a MIDI note number (C4 = 60) to a Note.
func NoteFromMIDI(n int) Note { return NoteFromSemitone(n - 12) }

// Semitone returns the absolute semitone index, Octave*12 + pitch class.
func (n Note) Semitone() int { return n.Octave*12 + n.Key.Int() }

// MIDI returns the MIDI note number, so E2 is 40 and A4 is 69. Notes outside
// 0..127 still convert; range checks belong to whoever sends the message.
func (n Note) MIDI() int { return n.Semitone() + 12 }

// Transpose moves the note by n semitones, carrying into the octave.
func (n Note) Transpose(semitones int) Note {
	return NoteFromSemitone(n.Semitone() + semitones)
}

// Frequency returns the equal-tempered frequency with A4 = 440 Hz.
func (n Note) Frequency() float64 {
	return Temperament{}.Frequency(n)
}

func (n Note) String() string {
	return n.Key.Name() + strconv.Itoa(n.Octave)
}

// ParseNote reads a key name followed by an octave number, e.g. "E2", "Bb-1"
// or "C♯4". Octaves outside [MinOctave, MaxOctave] are rejected.
func ParseNote(s string) (Note, error) {
	letter, accidental, rest, ok := splitKeyName(s)
	if !ok {
		return Note{}, &ParseError{Kind: "note", Input: s}
	}
	oct, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || oct < MinOctave || oct > MaxOctave {
		return Note{}, &ParseError{Kind: "note", Input: s}
	}
	// The octave belongs to the written letter, so B#3 sounds as C4 and Cb4
	// as B3.
	return NoteFromSemitone(oct*12 + int(letter) + accidental), nil
}

// Temperament fixes the reference pitch for A4. The zero value uses 440 Hz.
type Temperament struct {
	A4 float64
}

// Frequency returns 2^(d/12) times the reference, where d is the distance in
// semitones from A4. Whole octaves are applied with math.Ldexp so that a
// one-octave step is an exact doubling.
func (t Temperament) Frequency(n Note) float64 {
	ref := t.A4
	if ref <= 0 {
		ref = ReferencePitch
	}
	d := n.Semitone() - a4
	q, r := floorDiv12(d), mod12(d)
	return math.Ldexp(ref*math.Pow(2, float64(r)/12), q)
}
