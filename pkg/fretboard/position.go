package fretboard

import (
	"fmt"
	"iter"

	"github.com/chase3718/fretdash/pkg/theory"
)

// Position is a (string, fret) coordinate. Fret 0 is the open string.
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
}

// Format renders p compactly for logs, e.g. "s0/f5".
func (p Position) Format() string { return fmt.Sprintf("s%d/f%d", p.String, p.Fret) }

// Pitch returns the open-string note of p.String raised by p.Fret semitones.
func (t Tuning) Pitch(p Position) (theory.Note, error) {
	if p.String < 0 || p.String >= len(t) {
		return theory.Note{}, &PositionError{Position: p, Strings: len(t), Err: ErrStringOutOfRange}
	}
	if p.Fret < 0 {
		return theory.Note{}, &PositionError{Position: p, Strings: len(t), Err: ErrNegativeFret}
	}
	return t[p.String].Transpose(p.Fret), nil
}

// InScale reports whether the pitch class at p belongs to s. The octave plays
// no part.
func (t Tuning) InScale(p Position, s theory.Scale) (bool, error) {
	n, err := t.Pitch(p)
	if err != nil {
		return false, err
	}
	return s.Contains(n.Key), nil
}

// Positions yields every position from fret 0 to fretCount inclusive, string
// by string, frets ascending. Each call to the returned sequence starts over
// and nothing is allocated per position. A negative fretCount yields nothing.
func (t Tuning) Positions(fretCount int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for s := range t {
			for f := 0; f <= fretCount; f++ {
				if !yield(Position{String: s, Fret: f}) {
					return
				}
			}
		}
	}
}

// Find yields every position within frets 0..fretCount that sounds n, lowest
// fret first and then by string.
func (t Tuning) Find(n theory.Note, fretCount int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		target := n.Semitone()
		for f := 0; f <= fretCount; f++ {
			for s, open := range t {
				if open.Semitone()+f != target {
					continue
				}
				if !yield(Position{String: s, Fret: f}) {
					return
				}
			}
		}
	}
}
