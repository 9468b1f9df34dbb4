package ledboard

import (
	"fmt"
	"log/slog"

	"github.com/chase3718/fretdash/pkg/fretboard"
)

// MaxFrets is the largest fret a frame can carry.
const MaxFrets = 255

// Sink accepts encoded frames. *Port is the serial implementation.
type Sink interface {
	SendFrame(f Frame) error
}

// Render sends one frame per string for b: scale notes lit, roots accented.
// Any position in played is accented as well, which is how held MIDI notes
// show up on the board. Frames are built from the cell sequence as it is
// consumed; the previous string's frame is sent before the next is started.
func Render(sink Sink, b fretboard.Board, played map[fretboard.Position]bool) error {
	if b.Frets < 0 || b.Frets > MaxFrets {
		return fmt.Errorf("ledboard: %d frets out of range [0, %d]", b.Frets, MaxFrets)
	}
	if b.Tuning.Strings() > 256 {
		return fmt.Errorf("ledboard: %d strings exceed the frame's string index", b.Tuning.Strings())
	}

	var cur Frame
	have := false
	for c := range b.Cells() {
		if !have || int(cur.String) != c.String {
			if have {
				if err := sink.SendFrame(cur); err != nil {
					return err
				}
			}
			cur = newStringFrame(c.String, b.Frets)
			have = true
		}
		if c.InScale {
			setBit(cur.Lit, c.Fret)
		}
		if c.IsRoot() || played[c.Position] {
			setBit(cur.Accent, c.Fret)
		}
	}
	if have {
		if err := sink.SendFrame(cur); err != nil {
			return err
		}
	}
	slog.Debug("ledboard: board rendered", "strings", b.Tuning.Strings(), "frets", b.Frets, "scale", b.Scale.String())
	return nil
}
