// Package config loads the dashboard settings from YAML and resolves them into
// theory and fretboard values.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "FRETDASH_CONFIG"

// Config mirrors the YAML file. String fields hold user input; call Resolve
// to turn them into checked values.
type Config struct {
	Tuning         string  `yaml:"tuning"`          // tuning name or note list
	Frets          int     `yaml:"frets"`           // highest fret drawn
	Key            string  `yaml:"key"`             // scale root, e.g. "A"
	Scale          string  `yaml:"scale"`           // scale type, e.g. "minor pentatonic"
	ReferencePitch float64 `yaml:"reference_pitch"` // A4 in Hz

	Serial struct {
		Device string `yaml:"device"`
		Baud   int    `yaml:"baud"`
	} `yaml:"serial"`

	MIDI struct {
		Preferred []string `yaml:"preferred"` // device name fragments tried first
		Excluded  []string `yaml:"excluded"`  // device name fragments never opened
	} `yaml:"midi"`

	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	var c Config
	c.Tuning = "standard"
	c.Frets = 12
	c.Key = "C"
	c.Scale = "major"
	c.ReferencePitch = theory.ReferencePitch
	c.Serial.Device = "/dev/ttyACM0"
	c.Serial.Baud = 500000
	c.MIDI.Preferred = []string{"Launchkey", "Novation"}
	c.MIDI.Excluded = []string{"Midi Through", "Through Port", "Dummy"}
	c.HTTP.Addr = ":8080"
	return c
}

// Load reads path over the defaults. An empty path falls back to
// $FRETDASH_CONFIG; if that is unset too, the defaults are returned as is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Settings are the resolved values the core functions take as arguments.
type Settings struct {
	Board       fretboard.Board
	Temperament theory.Temperament
}

// Resolve validates every field and converts the musical ones.
func (c Config) Resolve() (Settings, error) {
	var errs []error
	tuning, err := fretboard.LookupTuning(c.Tuning)
	if err != nil {
		errs = append(errs, fmt.Errorf("tuning: %w", err))
	}
	root, err := theory.ParseKey(c.Key)
	if err != nil {
		errs = append(errs, fmt.Errorf("key: %w", err))
	}
	typ, err := theory.ParseScaleType(c.Scale)
	if err != nil {
		errs = append(errs, fmt.Errorf("scale: %w", err))
	}
	if c.Frets < 0 {
		errs = append(errs, fmt.Errorf("frets: %d is negative", c.Frets))
	}
	if c.ReferencePitch < 0 || math.IsNaN(c.ReferencePitch) || math.IsInf(c.ReferencePitch, 0) {
		errs = append(errs, fmt.Errorf("reference_pitch: %v is not a valid reference pitch", c.ReferencePitch))
	}
	if err := errors.Join(errs...); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	return Settings{
		Board: fretboard.Board{
			Tuning: tuning,
			Frets:  c.Frets,
			Scale:  theory.NewScale(root, typ),
		},
		Temperament: theory.Temperament{A4: c.ReferencePitch},
	}, nil
}
