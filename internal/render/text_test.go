package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

func TestTextLayout(t *testing.T) {
	b := fretboard.Board{
		Tuning: fretboard.StandardTuning(),
		Frets:  5,
		Scale:  theory.NewScale(theory.A, theory.MinorPentatonic),
	}
	var buf bytes.Buffer
	if err := Text(&buf, b, Options{ScaleOnly: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// title, six strings, fret numbers, inlay dots
	if len(lines) != 9 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "A Minor Pentatonic  [E2 A2 D3 G3 B3 E4]" {
		t.Errorf("title = %q", lines[0])
	}
	// Top row is the high E string: E F F# G G# A
	if want := "  E  ||-----|-----|  G  |-----|  A  |"; lines[1] != want {
		t.Errorf("high E row =\n%q\nwant\n%q", lines[1], want)
	}
	// Bottom row is the low E string.
	if lines[6] != lines[1] {
		t.Errorf("low and high E rows differ:\n%q\n%q", lines[6], lines[1])
	}
	if !strings.Contains(lines[8], "*") {
		t.Errorf("inlay row %q has no dot at fret 3 or 5", lines[8])
	}
}

func TestTextColorAndOctave(t *testing.T) {
	b := fretboard.Board{
		Tuning: fretboard.Tuning{theory.NewNote(theory.C, 4)},
		Frets:  2,
		Scale:  theory.NewScale(theory.C, theory.Major),
	}
	var buf bytes.Buffer
	if err := Text(&buf, b, Options{Color: true, ShowOctave: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, colorRoot+" C4  "+colorReset) {
		t.Errorf("root not highlighted:\n%q", out)
	}
	if !strings.Contains(out, colorDim+" C#4 "+colorReset) {
		t.Errorf("out-of-scale note not dimmed:\n%q", out)
	}
	if !strings.Contains(out, colorScale+" D4  "+colorReset) {
		t.Errorf("scale note not coloured:\n%q", out)
	}
}

func TestIsTerminalNonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if AutoOptions(&bytes.Buffer{}).Color {
		t.Error("colour enabled for a buffer")
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"E", "  E  "},
		{"C#", " C#  "},
		{"C#-1", "C#-1 "},
		{"toolong", "toolong"},
	}
	for _, tt := range tests {
		if got := center(tt.in, cellWidth); got != tt.want {
			t.Errorf("center(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
