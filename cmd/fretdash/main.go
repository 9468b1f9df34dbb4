// Command fretdash draws scales on a guitar fretboard, in the terminal, over
// HTTP, or on an LED fretboard driven from a MIDI keyboard.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/chase3718/fretdash/internal/config"
	"github.com/chase3718/fretdash/internal/ledboard"
	"github.com/chase3718/fretdash/internal/logging"
	"github.com/chase3718/fretdash/internal/midiin"
	"github.com/chase3718/fretdash/internal/render"
	"github.com/chase3718/fretdash/internal/server"
	"github.com/chase3718/fretdash/pkg/theory"
)

const usage = `usage: fretdash [-config file] [-debug] <command> [flags] [args]

commands:
  show     draw the fretboard with a scale highlighted
  freq     print the frequency of one or more notes
  scale    list the pitch classes of a scale
  find     list the positions that sound a note
  serve    run the JSON API
  listen   light an LED fretboard from a MIDI keyboard
`

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	debug := flag.Bool("debug", logging.DebugFromEnv(), "enable debug logging (adds source location)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	logging.Init(os.Stderr, *debug)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "show":
		err = runShow(cfg, args)
	case "freq":
		err = runFreq(cfg, args)
	case "scale":
		err = runScale(cfg, args)
	case "find":
		err = runFind(cfg, args)
	case "serve":
		err = runServe(cfg, args)
	case "listen":
		err = runListen(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "fretdash: unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "fretdash %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

// boardFlags registers the flags that override the board part of cfg.
func boardFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Tuning, "tuning", cfg.Tuning, "tuning name or note list, e.g. drop-d or \"D2 A2 D3 G3 B3 E4\"")
	fs.IntVar(&cfg.Frets, "frets", cfg.Frets, "highest fret")
	fs.StringVar(&cfg.Key, "key", cfg.Key, "scale root")
	fs.StringVar(&cfg.Scale, "scale", cfg.Scale, "scale type")
	fs.Float64Var(&cfg.ReferencePitch, "a4", cfg.ReferencePitch, "reference pitch for A4 in Hz")
}

func runShow(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	boardFlags(fs, &cfg)
	scaleOnly := fs.Bool("scale-only", false, "hide notes outside the scale")
	noColor := fs.Bool("no-color", false, "disable ANSI colour")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := cfg.Resolve()
	if err != nil {
		return err
	}
	opts := render.AutoOptions(os.Stdout)
	opts.ScaleOnly = *scaleOnly
	if *noColor {
		opts.Color = false
	}
	return render.Text(os.Stdout, s.Board, opts)
}

func runFreq(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("freq", flag.ContinueOnError)
	fs.Float64Var(&cfg.ReferencePitch, "a4", cfg.ReferencePitch, "reference pitch for A4 in Hz")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no notes given")
	}
	s, err := cfg.Resolve()
	if err != nil {
		return err
	}
	for _, arg := range fs.Args() {
		n, err := theory.ParseNote(arg)
		if err != nil {
			return err
		}
		fmt.Printf("%-4s midi %3d  %10.4f Hz\n", n, n.MIDI(), s.Temperament.Frequency(n))
	}
	return nil
}

func runScale(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("scale", flag.ContinueOnError)
	list := fs.Bool("list", false, "list the known scale types")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *list {
		for _, t := range theory.ScaleTypes() {
			fmt.Printf("%-18s %v\n", t, t.Intervals())
		}
		return nil
	}
	text := cfg.Key + " " + cfg.Scale
	if fs.NArg() > 0 {
		text = strings.Join(fs.Args(), " ")
	}
	sc, err := theory.ParseScale(text)
	if err != nil {
		return err
	}
	names := make([]string, 0, 7)
	for _, k := range sc.PitchClasses() {
		names = append(names, k.Name())
	}
	fmt.Printf("%s: %s\n", render.Title(sc), strings.Join(names, " "))
	return nil
}

func runFind(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	boardFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("want exactly one note, e.g. E4")
	}
	n, err := theory.ParseNote(fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := cfg.Resolve()
	if err != nil {
		return err
	}
	found := 0
	for p := range s.Board.Tuning.Find(n, s.Board.Frets) {
		fmt.Printf("string %d (%s) fret %d\n", p.String+1, s.Board.Tuning[p.String], p.Fret)
		found++
	}
	if found == 0 {
		return fmt.Errorf("%s is not playable on %s within %d frets", n, s.Board.Tuning, s.Board.Frets)
	}
	return nil
}

func runServe(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	boardFlags(fs, &cfg)
	fs.StringVar(&cfg.HTTP.Addr, "addr", cfg.HTTP.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := cfg.Resolve()
	if err != nil {
		return err
	}
	return server.New(s.Board, s.Temperament).ListenAndServe(cfg.HTTP.Addr)
}

func runListen(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("listen", flag.ContinueOnError)
	boardFlags(fs, &cfg)
	fs.StringVar(&cfg.Serial.Device, "serial", cfg.Serial.Device, "serial port device")
	fs.IntVar(&cfg.Serial.Baud, "baud", cfg.Serial.Baud, "serial baud rate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := cfg.Resolve()
	if err != nil {
		return err
	}
	board := s.Board
	if board.Frets > ledboard.MaxFrets {
		return fmt.Errorf("frets: %d exceeds the LED board limit of %d", board.Frets, ledboard.MaxFrets)
	}

	slog.Info("fretdash listen starting",
		"serial", cfg.Serial.Device,
		"baud", cfg.Serial.Baud,
		"tuning", board.Tuning.String(),
		"scale", board.Scale.String(),
		"frets", board.Frets,
	)

	port, err := ledboard.Open(cfg.Serial.Device, cfg.Serial.Baud)
	if err != nil {
		if names, lerr := ledboard.Devices(); lerr == nil {
			slog.Info("serial: available ports", "ports", strings.Join(names, ", "))
		}
		return err
	}
	defer port.Close()

	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("midi: driver init: %w", err)
	}
	defer drv.Close()

	tracker := midiin.NewTracker()
	var mu sync.Mutex
	redraw := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := ledboard.Render(port, board, tracker.Highlights(board.Tuning, board.Frets)); err != nil {
			slog.Error("ledboard: render failed", "err", err)
		}
	}

	// onNote runs on the MIDI listener goroutine.
	onNote := func(on bool, key uint8) {
		tracker.Apply(on, key)
		redraw()
	}
	onDisconnect := func() {
		slog.Warn("midi: disconnect, releasing held notes")
		tracker.ClearAll()
		redraw()
	}

	watcher := midiin.NewWatcher(drv, cfg.MIDI.Preferred, cfg.MIDI.Excluded, onNote, onDisconnect)
	defer watcher.Close()

	redraw()
	slog.Info("running, waiting for MIDI device")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastDevice := ""
	tick := func() {
		watcher.Tick()
		name, _ := watcher.Connected()
		if name != lastDevice {
			slog.Info("midi: active device changed", "from", lastDevice, "to", name)
			lastDevice = name
		}
	}

	tick()
	for {
		select {
		case <-ticker.C:
			tick()
		case got := <-sig:
			slog.Info("shutting down", "signal", got.String())
			return nil
		}
	}
}
