package server

import (
	"encoding/json"
	"io"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

type keyDTO struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

type scaleTypeDTO struct {
	Value     int    `json:"value"`
	Name      string `json:"name"`
	Intervals []int  `json:"intervals"`
}

type noteDTO struct {
	Name      string  `json:"name"`
	MIDI      int     `json:"midi"`
	Frequency float64 `json:"frequency"`
}

// cellDTO is one fretboard cell as a web renderer draws it.
type cellDTO struct {
	String    int     `json:"string"`
	Fret      int     `json:"fret"`
	Note      string  `json:"note"`
	Frequency float64 `json:"frequency"`
	InScale   bool    `json:"in_scale"`
	Root      bool    `json:"root,omitempty"`
	Degree    int     `json:"degree"`
	Marker    int     `json:"marker,omitempty"`
}

func newCellDTO(c fretboard.Cell, t theory.Temperament) cellDTO {
	return cellDTO{
		String:    c.String,
		Fret:      c.Fret,
		Note:      c.Note.String(),
		Frequency: t.Frequency(c.Note),
		InScale:   c.InScale,
		Root:      c.IsRoot(),
		Degree:    c.Degree,
		Marker:    int(c.Marker),
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
