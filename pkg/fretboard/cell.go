package fretboard

import (
	"iter"

	"github.com/chase3718/fretdash/pkg/theory"
)

// Marker is the inlay drawn at a fret.
type Marker int

const (
	NoMarker Marker = iota
	SingleMarker
	DoubleMarker
)

// MarkerAt returns the inlay for a fret: single dots on 3, 5, 7 and 9 of each
// octave, a double dot on 12, 24 and so on.
func MarkerAt(fret int) Marker {
	if fret <= 0 {
		return NoMarker
	}
	switch fret % 12 {
	case 0:
		return DoubleMarker
	case 3, 5, 7, 9:
		return SingleMarker
	}
	return NoMarker
}

// Cell is everything a renderer needs to draw one position. Cells are derived
// as they are yielded and are not meant to be stored between passes.
type Cell struct {
	Position
	Note    theory.Note `json:"note"`
	InScale bool        `json:"in_scale"`
	Marker  Marker      `json:"marker"`
	Degree  int         `json:"degree"` // zero-based scale degree, -1 outside the scale
}

// IsRoot reports whether the cell sounds the scale's root.
func (c Cell) IsRoot() bool { return c.Degree == 0 }

// Cells yields the cell for every position of Positions(fretCount), judged
// against s.
func (t Tuning) Cells(fretCount int, s theory.Scale) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for p := range t.Positions(fretCount) {
			n := t[p.String].Transpose(p.Fret)
			deg, ok := s.Degree(n.Key)
			if !ok {
				deg = -1
			}
			c := Cell{Position: p, Note: n, InScale: ok, Marker: MarkerAt(p.Fret), Degree: deg}
			if !yield(c) {
				return
			}
		}
	}
}

// Board bundles the arguments a render pass needs. It is a plain value
// describing what to draw; the cells themselves are recomputed by every call
// to Cells.
type Board struct {
	Tuning Tuning
	Frets  int
	Scale  theory.Scale
}

func (b Board) Cells() iter.Seq[Cell] { return b.Tuning.Cells(b.Frets, b.Scale) }

func (b Board) Positions() iter.Seq[Position] { return b.Tuning.Positions(b.Frets) }
