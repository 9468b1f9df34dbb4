// Package theory maps pitch classes, scales and notes to each other and to
// equal-tempered frequencies. Every value in this package is immutable and
// safe to share between goroutines.
package theory

import "strings"

// Key is one of the twelve chromatic pitch classes, C = 0 through B = 11.
type Key int

const (
	C Key = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// Flat spellings of the black keys.
const (
	DFlat = CSharp
	EFlat = DSharp
	GFlat = FSharp
	AFlat = GSharp
	BFlat = ASharp
)

// Sharp-preferring names, indexed by pitch class.
var keyNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// naturals maps a letter to its pitch class.
var naturals = map[byte]Key{'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B}

// KeyFromInt reduces any integer, negative ones included, to a pitch class.
func KeyFromInt(n int) Key {
	return Key(mod12(n))
}

// Keys returns all twelve pitch classes in ascending order.
func Keys() []Key {
	out := make([]Key, 12)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// Int returns the pitch class as 0..11.
func (k Key) Int() int { return mod12(int(k)) }

// Name returns the canonical sharp-preferring spelling, e.g. "C#".
func (k Key) Name() string { return keyNames[k.Int()] }

func (k Key) String() string { return k.Name() }

// Transpose moves the key by n semitones, wrapping around the octave.
func (k Key) Transpose(n int) Key { return KeyFromInt(int(k) + n) }

// Interval returns the ascending distance in semitones from k up to other,
// always in [0, 12).
func (k Key) Interval(other Key) int { return mod12(int(other) - int(k)) }

// ParseKey reads a pitch-class name. The letter is case-insensitive and may be
// followed by any number of sharps ('#', '♯', 's') or flats ('b', '♭').
// Spellings that cross the B/C boundary (B#, Cb) wrap as expected.
func ParseKey(s string) (Key, error) {
	letter, accidental, rest, ok := splitKeyName(s)
	if !ok || rest != "" {
		return 0, &ParseError{Kind: "key", Input: s}
	}
	return letter.Transpose(accidental), nil
}

// splitKeyName consumes a key name from the front of s. It returns the
// natural letter, the net accidental in semitones and the unread remainder.
func splitKeyName(s string) (letter Key, accidental int, rest string, ok bool) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, 0, "", false
	}
	c := in[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	letter, ok = naturals[c]
	if !ok {
		return 0, 0, "", false
	}
	rest = in[1:]
	for rest != "" {
		switch {
		case rest[0] == '#' || rest[0] == 's':
			accidental++
			rest = rest[1:]
		case rest[0] == 'b':
			accidental--
			rest = rest[1:]
		case strings.HasPrefix(rest, "♯"):
			accidental++
			rest = rest[len("♯"):]
		case strings.HasPrefix(rest, "♭"):
			accidental--
			rest = rest[len("♭"):]
		default:
			return letter, accidental, rest, true
		}
	}
	return letter, accidental, "", true
}

func mod12(n int) int {
	r := n % 12
	if r < 0 {
		r += 12
	}
	return r
}

// floorDiv12 divides by twelve rounding toward negative infinity.
func floorDiv12(n int) int {
	q := n / 12
	if n%12 < 0 {
		q--
	}
	return q
}
