package theory

import (
	"errors"
	"math"
	"testing"
)

func TestFrequencyAnchor(t *testing.T) {
	if got := NewNote(A, 4).Frequency(); got != 440.0 {
		t.Fatalf("A4 = %v Hz, want exactly 440", got)
	}
	if got := (Temperament{A4: 432}).Frequency(NewNote(A, 4)); got != 432.0 {
		t.Fatalf("A4 at 432 reference = %v", got)
	}
}

func TestFrequencyOctaveDoubling(t *testing.T) {
	for _, k := range Keys() {
		for o := -3; o <= 9; o++ {
			lo := NewNote(k, o).Frequency()
			hi := NewNote(k, o+1).Frequency()
			if rel := math.Abs(hi-2*lo) / (2 * lo); rel > 1e-9 {
				t.Errorf("%v%d -> %v%d: %v vs %v", k, o, k, o+1, lo, hi)
			}
		}
	}
}

func TestFrequencyMonotonic(t *testing.T) {
	prev := 0.0
	for n := -60; n <= 140; n++ {
		f := NoteFromSemitone(n).Frequency()
		if f <= prev {
			t.Fatalf("frequency not increasing at semitone %d: %v <= %v", n, f, prev)
		}
		prev = f
	}
}

func TestFrequencyKnownValues(t *testing.T) {
	tests := []struct {
		note string
		want float64
	}{
		{"E2", 82.40688922821749},
		{"C4", 261.6255653005986},
		{"A3", 220},
		{"A5", 880},
		{"A-1", 13.75},
	}
	for _, tt := range tests {
		n, err := ParseNote(tt.note)
		if err != nil {
			t.Fatalf("ParseNote(%q): %v", tt.note, err)
		}
		if got := n.Frequency(); math.Abs(got-tt.want)/tt.want > 1e-12 {
			t.Errorf("%s = %v Hz, want %v", tt.note, got, tt.want)
		}
	}
}

func TestFrequencyEnharmonic(t *testing.T) {
	sharp, err := ParseNote("C#4")
	if err != nil {
		t.Fatal(err)
	}
	flat, err := ParseNote("Db4")
	if err != nil {
		t.Fatal(err)
	}
	if sharp != flat || sharp.Frequency() != flat.Frequency() {
		t.Errorf("C#4 %v (%v Hz) != Db4 %v (%v Hz)", sharp, sharp.Frequency(), flat, flat.Frequency())
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want Note
	}{
		{"E2", Note{E, 2}},
		{"c#4", Note{CSharp, 4}},
		{"Bb-1", Note{ASharp, -1}},
		{"B#3", Note{C, 4}},
		{"Cb4", Note{B, 3}},
		{"G♭ 3", Note{FSharp, 3}},
	}
	for _, tt := range tests {
		got, err := ParseNote(tt.in)
		if err != nil {
			t.Errorf("ParseNote(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNote(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "E", "X4", "E2.5", "4", "C1001", "C-1001", "C768614336404564651"} {
		if _, err := ParseNote(in); !errors.Is(err, ErrParse) {
			t.Errorf("ParseNote(%q) err = %v, want ErrParse", in, err)
		}
	}
}

func TestParseNoteOctaveBounds(t *testing.T) {
	lo, err := ParseNote("C-1000")
	if err != nil {
		t.Fatal(err)
	}
	hi, err := ParseNote("B1000")
	if err != nil {
		t.Fatal(err)
	}
	for _, ref := range []float64{1, ReferencePitch, 1e6} {
		tm := Temperament{A4: ref}
		for _, n := range []Note{lo, hi} {
			f := tm.Frequency(n)
			if math.IsInf(f, 0) || math.IsNaN(f) || f == 0 {
				t.Errorf("Frequency(%v) at A4=%v = %v", n, ref, f)
			}
		}
	}
}

func TestNoteSemitoneRoundTrip(t *testing.T) {
	for n := -40; n <= 140; n++ {
		note := NoteFromSemitone(n)
		if note.Semitone() != n {
			t.Errorf("NoteFromSemitone(%d) = %v, back to %d", n, note, note.Semitone())
		}
	}
	if got := NoteFromSemitone(-1); got != (Note{B, -1}) {
		t.Errorf("NoteFromSemitone(-1) = %v, want B-1", got)
	}
}

func TestNoteMIDI(t *testing.T) {
	tests := []struct {
		note Note
		midi int
	}{
		{Note{E, 2}, 40},
		{Note{E, 4}, 64},
		{Note{C, 4}, 60},
		{Note{A, 4}, 69},
		{Note{C, -1}, 0},
	}
	for _, tt := range tests {
		if got := tt.note.MIDI(); got != tt.midi {
			t.Errorf("%v.MIDI() = %d, want %d", tt.note, got, tt.midi)
		}
		if got := NoteFromMIDI(tt.midi); got != tt.note {
			t.Errorf("NoteFromMIDI(%d) = %v, want %v", tt.midi, got, tt.note)
		}
	}
}

func TestNoteTransposeAndString(t *testing.T) {
	n := Note{B, 3}.Transpose(1)
	if n != (Note{C, 4}) {
		t.Errorf("B3+1 = %v", n)
	}
	if s := (Note{FSharp, -2}).String(); s != "F#-2" {
		t.Errorf("String() = %q", s)
	}
}
