package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fretdash.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	s, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fretboard.StandardTuning(), s.Board.Tuning); diff != "" {
		t.Errorf("tuning mismatch (-want +got):\n%s", diff)
	}
	if s.Board.Scale != theory.NewScale(theory.C, theory.Major) || s.Board.Frets != 12 {
		t.Errorf("board = %+v", s.Board)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
tuning: drop-d
frets: 22
key: F#
scale: minor pentatonic
reference_pitch: 432
serial:
  device: /dev/ttyUSB1
midi:
  preferred: [Keystation]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Serial.Device != "/dev/ttyUSB1" || cfg.Serial.Baud != 500000 {
		t.Errorf("serial = %+v", cfg.Serial)
	}
	if diff := cmp.Diff([]string{"Keystation"}, cfg.MIDI.Preferred); diff != "" {
		t.Errorf("preferred mismatch (-want +got):\n%s", diff)
	}
	s, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if s.Board.Tuning.String() != "D2 A2 D3 G3 B3 E4" {
		t.Errorf("tuning = %v", s.Board.Tuning)
	}
	if s.Board.Scale != theory.NewScale(theory.FSharp, theory.MinorPentatonic) || s.Board.Frets != 22 {
		t.Errorf("board = %+v", s.Board)
	}
	if got := s.Temperament.Frequency(theory.NewNote(theory.A, 4)); got != 432 {
		t.Errorf("A4 = %v", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvPath, writeConfig(t, "key: Bb\n"))
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Key != "Bb" {
		t.Errorf("key = %q", cfg.Key)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeConfig(t, "frets: [oops\n")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestResolveRejectsNonFiniteReference(t *testing.T) {
	for _, body := range []string{"reference_pitch: .inf\n", "reference_pitch: .nan\n", "reference_pitch: -1\n"} {
		cfg, err := Load(writeConfig(t, body))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := cfg.Resolve(); err == nil || !strings.Contains(err.Error(), "reference_pitch:") {
			t.Errorf("%q: err = %v", body, err)
		}
	}
}

func TestResolveReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Key = "H"
	cfg.Scale = "bebop"
	cfg.Tuning = "E2 Q3"
	cfg.Frets = -1
	_, err := cfg.Resolve()
	if !errors.Is(err, theory.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	for _, field := range []string{"key:", "scale:", "tuning:", "frets:"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

