// Package server exposes the fretboard model as a JSON API for web renderers.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chase3718/fretdash/pkg/fretboard"
	"github.com/chase3718/fretdash/pkg/theory"
)

// MaxFrets caps the fret count a request may ask for.
const MaxFrets = 48

// Server answers requests against a default board; every query parameter
// overrides one part of it for that request only.
type Server struct {
	defaults    fretboard.Board
	temperament theory.Temperament
}

func New(defaults fretboard.Board, t theory.Temperament) *Server {
	return &Server{defaults: defaults, temperament: t}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", s.health)
	api := r.Group("/api")
	api.GET("/keys", s.keys)
	api.GET("/scales", s.scales)
	api.GET("/tunings", s.tunings)
	api.GET("/fretboard", s.fretboard)
	api.GET("/frequency", s.frequency)
	api.GET("/positions", s.positions)
	return r
}

// ListenAndServe runs the API until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("http: listening", "addr", addr)
	return srv.ListenAndServe()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http: request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

// errorBody is the shape of every 4xx response.
type errorBody struct {
	Error string `json:"error"`
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error()})
}

// board applies the request's tuning, frets, key and scale parameters over
// the defaults.
func (s *Server) board(c *gin.Context) (fretboard.Board, error) {
	b := s.defaults
	if v := c.Query("tuning"); v != "" {
		t, err := fretboard.LookupTuning(v)
		if err != nil {
			return b, err
		}
		b.Tuning = t
	}
	if v := c.Query("frets"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxFrets {
			return b, fmt.Errorf("frets must be an integer in [0, %d]", MaxFrets)
		}
		b.Frets = n
	}
	if v := c.Query("key"); v != "" {
		k, err := theory.ParseKey(v)
		if err != nil {
			return b, err
		}
		b.Scale.Root = k
	}
	if v := c.Query("scale"); v != "" {
		t, err := theory.ParseScaleType(v)
		if err != nil {
			return b, err
		}
		b.Scale.Type = t
	}
	if _, hi, ok := b.Tuning.Range(b.Frets); ok {
		if err := checkFinite(s.temperament, hi); err != nil {
			return b, err
		}
	}
	return b, nil
}

// checkFinite rejects notes whose frequency cannot be encoded as JSON. The
// cell stream commits to a 200 before the first cell is written, so this has
// to run first.
func checkFinite(t theory.Temperament, n theory.Note) error {
	if f := t.Frequency(n); math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("frequency of %s is out of range", n)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Format(time.RFC3339)})
}

func (s *Server) keys(c *gin.Context) {
	out := make([]keyDTO, 0, 12)
	for _, k := range theory.Keys() {
		out = append(out, keyDTO{Value: k.Int(), Name: k.Name()})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) scales(c *gin.Context) {
	out := make([]scaleTypeDTO, 0)
	for _, t := range theory.ScaleTypes() {
		out = append(out, scaleTypeDTO{Value: int(t), Name: t.String(), Intervals: t.Intervals()})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) tunings(c *gin.Context) {
	out := make(map[string]string)
	for _, name := range fretboard.TuningNames() {
		t, err := fretboard.LookupTuning(name)
		if err != nil {
			continue
		}
		out[name] = t.String()
	}
	c.JSON(http.StatusOK, out)
}

// fretboard streams the cells as a JSON array, encoding each one as the
// board yields it.
func (s *Server) fretboard(c *gin.Context) {
	b, err := s.board(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
	w := c.Writer
	w.WriteString(`{"tuning":`)
	writeJSON(w, b.Tuning.String())
	fmt.Fprintf(w, `,"frets":%d,"scale":`, b.Frets)
	writeJSON(w, b.Scale.String())
	w.WriteString(`,"cells":[`)
	first := true
	for cell := range b.Cells() {
		if !first {
			w.WriteString(",")
		}
		first = false
		if err := writeJSON(w, newCellDTO(cell, s.temperament)); err != nil {
			slog.Warn("http: write cell failed", "err", err)
			return
		}
	}
	w.WriteString("]}")
}

func (s *Server) frequency(c *gin.Context) {
	n, err := theory.ParseNote(c.Query("note"))
	if err != nil {
		badRequest(c, err)
		return
	}
	t := s.temperament
	if v := c.Query("a4"); v != "" {
		ref, err := strconv.ParseFloat(v, 64)
		if err != nil || !(ref > 0) || math.IsInf(ref, 0) {
			badRequest(c, errors.New("a4 must be a positive number"))
			return
		}
		t = theory.Temperament{A4: ref}
	}
	if err := checkFinite(t, n); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, noteDTO{Name: n.String(), MIDI: n.MIDI(), Frequency: t.Frequency(n)})
}

func (s *Server) positions(c *gin.Context) {
	n, err := theory.ParseNote(c.Query("note"))
	if err != nil {
		badRequest(c, err)
		return
	}
	b, err := s.board(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	out := make([]fretboard.Position, 0)
	for p := range b.Tuning.Find(n, b.Frets) {
		out = append(out, p)
	}
	c.JSON(http.StatusOK, gin.H{"note": n.String(), "positions": out})
}
