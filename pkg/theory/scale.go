package theory

import (
	"iter"
	"strconv"
	"strings"
)

// ScaleType is a named interval pattern. The numeric values start at 1 so
// that a zero ScaleType is recognisably unset.
type ScaleType int

const (
	Major ScaleType = iota + 1
	NaturalMinor
	MajorPentatonic
	MinorPentatonic
	MajorBlues
	MinorBlues
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Locrian
	HarmonicMinor
	MelodicMinor
)

type scaleInfo struct {
	name      string
	intervals []int
	aliases   []string
}

var scaleTable = map[ScaleType]scaleInfo{
	Major:           {"major", []int{0, 2, 4, 5, 7, 9, 11}, []string{"ionian", "maj"}},
	NaturalMinor:    {"natural minor", []int{0, 2, 3, 5, 7, 8, 10}, []string{"minor", "aeolian", "min"}},
	MajorPentatonic: {"major pentatonic", []int{0, 2, 4, 7, 9}, []string{"pentatonic"}},
	MinorPentatonic: {"minor pentatonic", []int{0, 3, 5, 7, 10}, nil},
	MajorBlues:      {"major blues", []int{0, 2, 3, 4, 7, 9}, nil},
	MinorBlues:      {"minor blues", []int{0, 3, 5, 6, 7, 10}, []string{"blues"}},
	Dorian:          {"dorian", []int{0, 2, 3, 5, 7, 9, 10}, nil},
	Phrygian:        {"phrygian", []int{0, 1, 3, 5, 7, 8, 10}, nil},
	Lydian:          {"lydian", []int{0, 2, 4, 6, 7, 9, 11}, nil},
	Mixolydian:      {"mixolydian", []int{0, 2, 4, 5, 7, 9, 10}, nil},
	Locrian:         {"locrian", []int{0, 1, 3, 5, 6, 8, 10}, nil},
	HarmonicMinor:   {"harmonic minor", []int{0, 2, 3, 5, 7, 8, 11}, nil},
	MelodicMinor:    {"melodic minor", []int{0, 2, 3, 5, 7, 9, 11}, []string{"jazz minor"}},
}

// ScaleTypes lists every defined scale type in declaration order.
func ScaleTypes() []ScaleType {
	out := make([]ScaleType, 0, len(scaleTable))
	for t := Major; t <= MelodicMinor; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is one of the declared scale types.
func (t ScaleType) Valid() bool {
	_, ok := scaleTable[t]
	return ok
}

// String returns the lower-case name, e.g. "natural minor".
func (t ScaleType) String() string {
	if info, ok := scaleTable[t]; ok {
		return info.name
	}
	return "ScaleType(" + strconv.Itoa(int(t)) + ")"
}

// Intervals returns the semitone offsets from the root, ascending, starting
// at 0 and below 12. The slice is a copy. An undeclared type has no offsets.
func (t ScaleType) Intervals() []int {
	info := scaleTable[t]
	out := make([]int, len(info.intervals))
	copy(out, info.intervals)
	return out
}

// Steps returns the distances between consecutive scale degrees, closing
// back to the octave, so the steps always sum to 12.
func (t ScaleType) Steps() []int {
	iv := scaleTable[t].intervals
	out := make([]int, len(iv))
	for i := range iv {
		next := 12
		if i+1 < len(iv) {
			next = iv[i+1]
		}
		out[i] = next - iv[i]
	}
	return out
}

// ScaleTypeFromInt validates a numeric tag such as one stored by a UI
// selector.
func ScaleTypeFromInt(n int) (ScaleType, error) {
	t := ScaleType(n)
	if !t.Valid() {
		return 0, &ParseError{Kind: "scale type", Input: strconv.Itoa(n)}
	}
	return t, nil
}

// ParseScaleType accepts a scale name or alias in any case, with spaces,
// dashes or underscores between words ("Natural Minor", "minor-pentatonic").
func ParseScaleType(s string) (ScaleType, error) {
	want := normalizeName(s)
	if want != "" {
		for t, info := range scaleTable {
			if normalizeName(info.name) == want {
				return t, nil
			}
			for _, a := range info.aliases {
				if normalizeName(a) == want {
					return t, nil
				}
			}
		}
	}
	return 0, &ParseError{Kind: "scale type", Input: s}
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Scale is a root key combined with a scale type.
type Scale struct {
	Root Key
	Type ScaleType
}

func NewScale(root Key, typ ScaleType) Scale {
	return Scale{Root: KeyFromInt(int(root)), Type: typ}
}

// ParseScale reads "<key> <scale type>", e.g. "A minor pentatonic" or "Eb".
// A bare key means the major scale.
func ParseScale(s string) (Scale, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Scale{}, &ParseError{Kind: "scale", Input: s}
	}
	root, err := ParseKey(fields[0])
	if err != nil {
		return Scale{}, &ParseError{Kind: "scale", Input: s}
	}
	if len(fields) == 1 {
		return NewScale(root, Major), nil
	}
	typ, err := ParseScaleType(strings.Join(fields[1:], " "))
	if err != nil {
		return Scale{}, &ParseError{Kind: "scale", Input: s}
	}
	return NewScale(root, typ), nil
}

func (s Scale) String() string {
	return s.Root.Name() + " " + s.Type.String()
}

// Contains reports whether k is one of the scale's pitch classes.
func (s Scale) Contains(k Key) bool {
	_, ok := s.Degree(k)
	return ok
}

// Degree returns the zero-based scale degree of k, or false if k is not in
// the scale.
func (s Scale) Degree(k Key) (int, bool) {
	d := s.Root.Interval(k)
	for i, iv := range scaleTable[s.Type].intervals {
		if iv == d {
			return i, true
		}
	}
	return 0, false
}

// PitchClasses returns the scale's keys in degree order starting at the root.
func (s Scale) PitchClasses() []Key {
	iv := scaleTable[s.Type].intervals
	out := make([]Key, len(iv))
	for i, off := range iv {
		out[i] = s.Root.Transpose(off)
	}
	return out
}

// Notes yields every note of the scale from lo to hi inclusive, ascending.
// The sequence is computed as it is consumed and may be ranged over again.
func (s Scale) Notes(lo, hi Note) iter.Seq[Note] {
	return func(yield func(Note) bool) {
		for n := lo.Semitone(); n <= hi.Semitone(); n++ {
			note := NoteFromSemitone(n)
			if !s.Contains(note.Key) {
				continue
			}
			if !yield(note) {
				return
			}
		}
	}
}
