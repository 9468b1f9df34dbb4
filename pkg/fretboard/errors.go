package fretboard

import (
	"errors"
	"fmt"
)

var (
	ErrStringOutOfRange = errors.New("fretboard: string index out of range")
	ErrNegativeFret     = errors.New("fretboard: negative fret")
)

// PositionError reports a position that does not exist on the tuning it was
// resolved against. Out-of-range strings are never wrapped or clamped.
type PositionError struct {
	Position Position
	Strings  int
	Err      error // ErrStringOutOfRange or ErrNegativeFret
}

func (e *PositionError) Error() string {
	if e.Err == ErrStringOutOfRange {
		return fmt.Sprintf("fretboard: string %d out of range [0, %d)", e.Position.String, e.Strings)
	}
	return fmt.Sprintf("fretboard: fret %d on string %d is negative", e.Position.Fret, e.Position.String)
}

func (e *PositionError) Unwrap() error { return e.Err }
