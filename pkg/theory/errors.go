package theory

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError via errors.Is.
var ErrParse = errors.New("theory: parse error")

// ParseError reports textual input that does not name a key, scale type,
// scale or note. Nothing in this package falls back to a default on bad input.
type ParseError struct {
	Kind  string // "key", "scale type", "scale", "note"
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("theory: invalid %s %q", e.Kind, e.Input)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
