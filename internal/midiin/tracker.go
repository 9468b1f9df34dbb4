package midiin

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

// Tracker records which MIDI keys are held down.
type Tracker struct {
	mu   sync.Mutex
	held map[uint8]bool
}

func NewTracker() *Tracker {
	return &Tracker{held: make(map[uint8]bool)}
}

// Apply records a note start or end.
func (t *Tracker) Apply(on bool, key uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if on {
		t.held[key] = true
	} else {
		delete(t.held, key)
	}
}

// ClearAll releases every note (used on MIDI disconnect).
func (t *Tracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = make(map[uint8]bool)
}

// Held returns the held notes, lowest first.
func (t *Tracker) Held() []theory.Note {
	t.mu.Lock()
	keys := make([]int, 0, len(t.held))
	for k := range t.held {
		keys = append(keys, int(k))
	}
	t.mu.Unlock()

	sort.Ints(keys)
	out := make([]theory.Note, len(keys))
	for i, k := range keys {
		out[i] = theory.NoteFromMIDI(k)
	}
	return out
}

// Highlights maps every held note to all positions that sound it within
// frets 0..frets. Notes the tuning cannot reach are logged and skipped.
func (t *Tracker) Highlights(tuning fretboard.Tuning, frets int) map[fretboard.Position]bool {
	out := make(map[fretboard.Position]bool)
	for _, n := range t.Held() {
		found := false
		for p := range tuning.Find(n, frets) {
			out[p] = true
			found = true
			slog.Debug("midi: note mapped", "note", n.String(), "pos", p.Format())
		}
		if !found {
			slog.Warn("midi: note out of reach", "note", n.String(), "midi", n.MIDI())
		}
	}
	return out
}
