// Package render draws a fretboard.Board on a terminal. Each pass assembles
// the rows from the cell sequence and writes them out; nothing is kept between
// passes.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

const (
	colorReset = "\033[0m"
	colorRoot  = "\033[1;31m"
	colorScale = "\033[36m"
	colorDim   = "\033[90m"
)

// cellWidth fits the longest note name with octave, e.g. "C#-1".
const cellWidth = 5

// Options controls the text output.
type Options struct {
	Color      bool // ANSI colours for root and scale notes
	ShowOctave bool // "E2" instead of "E"
	ScaleOnly  bool // blank out notes outside the scale
}

// AutoOptions enables colour when w is a terminal.
func AutoOptions(w io.Writer) Options {
	return Options{Color: IsTerminal(w), ScaleOnly: true}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var title = cases.Title(language.English)

// Title formats a scale for display, e.g. "A Minor Pentatonic".
func Title(s theory.Scale) string {
	return s.Root.Name() + " " + title.String(s.Type.String())
}

// Text writes the board highest string first, the way a player looks down at
// the neck, followed by a fret-number ruler with inlay dots.
func Text(w io.Writer, b fretboard.Board, opts Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s  [%s]\n", Title(b.Scale), b.Tuning)

	// Cells arrive lowest string first; rows are printed top-down.
	rows := make([]strings.Builder, b.Tuning.Strings())
	for c := range b.Cells() {
		row := &rows[c.String]
		row.WriteString(cellText(c, opts))
		row.WriteString(separator(c.Fret))
	}
	for s := len(rows) - 1; s >= 0; s-- {
		bw.WriteString(rows[s].String())
		bw.WriteByte('\n')
	}
	bw.WriteString(ruler(b.Frets))
	return bw.Flush()
}

func cellText(c fretboard.Cell, opts Options) string {
	label := c.Note.Key.Name()
	if opts.ShowOctave {
		label = c.Note.String()
	}
	if opts.ScaleOnly && !c.InScale {
		label = strings.Repeat("-", cellWidth)
	} else {
		label = center(label, cellWidth)
	}
	if !opts.Color {
		return label
	}
	switch {
	case c.IsRoot():
		return colorRoot + label + colorReset
	case c.InScale:
		return colorScale + label + colorReset
	}
	return colorDim + label + colorReset
}

func ruler(frets int) string {
	var nums, dots strings.Builder
	for f := 0; f <= frets; f++ {
		sep := separator(f)
		nums.WriteString(center(fmt.Sprint(f), cellWidth))
		nums.WriteString(strings.Repeat(" ", len(sep)))
		mark := ""
		switch fretboard.MarkerAt(f) {
		case fretboard.SingleMarker:
			mark = "*"
		case fretboard.DoubleMarker:
			mark = "**"
		}
		dots.WriteString(center(mark, cellWidth))
		dots.WriteString(strings.Repeat(" ", len(sep)))
	}
	return strings.TrimRight(nums.String(), " ") + "\n" + strings.TrimRight(dots.String(), " ") + "\n"
}

// separator follows each cell; the nut is drawn double.
func separator(fret int) string {
	if fret == 0 {
		return "||"
	}
	return "|"
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
