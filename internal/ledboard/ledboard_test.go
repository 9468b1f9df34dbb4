package ledboard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

type recordSink struct {
	frames []Frame
	failAt int
}

func (r *recordSink) SendFrame(f Frame) error {
	if r.failAt > 0 && len(r.frames)+1 == r.failAt {
		return errors.New("link down")
	}
	r.frames = append(r.frames, f)
	return nil
}

func TestEncodeSetString(t *testing.T) {
	f := Frame{Cmd: CmdSetString, String: 2, Frets: 7, Lit: []byte{0x95}, Accent: []byte{0x01}}
	got := f.Encode()
	payload := []byte{2, 7, 0x95, 0x01}
	length := byte(len(payload) + 1)
	cks := length ^ CmdSetString ^ 2 ^ 7 ^ 0x95 ^ 0x01
	want := append([]byte{SOF0, SOF1, length, CmdSetString}, payload...)
	want = append(want, cks)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeClear(t *testing.T) {
	f := ClearFrame()
	want := []byte{SOF0, SOF1, 1, CmdClear, 1 ^ CmdClear}
	if diff := cmp.Diff(want, f.Encode()); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCMajorOnLowE(t *testing.T) {
	b := fretboard.Board{
		Tuning: fretboard.Tuning{theory.NewNote(theory.E, 2)},
		Frets:  12,
		Scale:  theory.NewScale(theory.C, theory.Major),
	}
	sink := &recordSink{}
	played := map[fretboard.Position]bool{{String: 0, Fret: 3}: true}
	if err := Render(sink, b, played); err != nil {
		t.Fatal(err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("sent %d frames, want 1", len(sink.frames))
	}
	// E F G A B C D E on frets 0 1 3 5 7 8 10 12; C on fret 8 is the root.
	want := Frame{
		Cmd:    CmdSetString,
		String: 0,
		Frets:  12,
		Lit:    []byte{0b10101011, 0b00010101},
		Accent: []byte{0b00001000, 0b00000001},
	}
	if diff := cmp.Diff(want, sink.frames[0]); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOneFramePerString(t *testing.T) {
	b := fretboard.Board{Tuning: fretboard.StandardTuning(), Frets: 22, Scale: theory.NewScale(theory.G, theory.Major)}
	sink := &recordSink{}
	if err := Render(sink, b, nil); err != nil {
		t.Fatal(err)
	}
	if len(sink.frames) != 6 {
		t.Fatalf("sent %d frames, want 6", len(sink.frames))
	}
	for i, f := range sink.frames {
		if int(f.String) != i || len(f.Lit) != 3 || len(f.Accent) != 3 {
			t.Errorf("frame %d = %+v", i, f)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	b := fretboard.Board{Tuning: fretboard.StandardTuning(), Frets: 12, Scale: theory.NewScale(theory.C, theory.Major)}
	sink := &recordSink{failAt: 3}
	if err := Render(sink, b, nil); err == nil {
		t.Error("sink failure not reported")
	}
	if len(sink.frames) != 2 {
		t.Errorf("sent %d frames before failure, want 2", len(sink.frames))
	}
	b.Frets = 300
	if err := Render(&recordSink{}, b, nil); err == nil {
		t.Error("oversized fret count accepted")
	}
}
