// Package midiin follows a MIDI keyboard and reports which pitches are held,
// so the dashboard can light the positions that sound them.
package midiin

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const rescanInterval = 1000 * time.Millisecond

// Watcher monitors available MIDI inputs and maintains a connection to the
// preferred device. It handles hot-plug (new device appears) and hot-unplug
// (device disappears) transparently.
//
// onNote is called for every NoteOn / NoteOff while a device is connected.
// onDisconnect is called (from a goroutine) when the active device is lost.
type Watcher struct {
	mu           sync.Mutex
	drv          drivers.Driver
	inPort       drivers.In
	stopFn       func()
	connected    bool
	selectedName string
	lastRescanAt time.Time

	preferred []string
	excluded  []string

	onNote       func(on bool, key uint8)
	onDisconnect func()
}

// NewWatcher wraps drv. Devices whose names contain a preferred fragment are
// picked first; devices matching an excluded fragment are never opened.
func NewWatcher(drv drivers.Driver, preferred, excluded []string, onNote func(on bool, key uint8), onDisconnect func()) *Watcher {
	return &Watcher{
		drv:          drv,
		preferred:    preferred,
		excluded:     excluded,
		onNote:       onNote,
		onDisconnect: onDisconnect,
	}
}

// Connected returns the name of the open device, if any.
func (m *Watcher) Connected() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedName, m.connected
}

// Close shuts down the active MIDI connection. The driver is left to the
// caller.
func (m *Watcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeConn()
}

// Tick should be called on a regular interval from the main loop. It scans
// for devices, auto-connects to a preferred one, and detects disappearances.
func (m *Watcher) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if !m.lastRescanAt.IsZero() && now.Sub(m.lastRescanAt) < rescanInterval {
		return
	}
	m.lastRescanAt = now

	inputs := m.listInputs()

	if m.connected {
		for _, n := range inputs {
			if n == m.selectedName {
				return
			}
		}
		slog.Warn("midi: device disappeared", "device", m.selectedName)
		m.closeConn()
		m.lastRescanAt = time.Time{}
		if m.onDisconnect != nil {
			go m.onDisconnect()
		}
		return
	}

	if len(inputs) == 0 {
		return
	}
	cand, ok := m.pickPreferred(inputs)
	if !ok {
		slog.Debug("midi: no preferred device", "available", strings.Join(inputs, ", "))
		return
	}
	if err := m.openByName(cand); err != nil {
		slog.Error("midi: connect failed", "device", cand, "err", err)
	}
}

func (m *Watcher) listInputs() []string {
	ins, err := m.drv.Ins()
	if err != nil {
		slog.Error("midi: list inputs failed", "err", err)
		return nil
	}
	var names []string
	for _, in := range ins {
		name := in.String()
		if matchesAny(name, m.excluded) {
			slog.Debug("midi: input excluded", "device", name)
			continue
		}
		names = append(names, name)
	}
	slog.Debug("midi: inputs found", "count", len(names), "devices", strings.Join(names, ", "))
	return names
}

func (m *Watcher) pickPreferred(inputs []string) (string, bool) {
	for _, pat := range m.preferred {
		for _, name := range inputs {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(inputs) == 1 {
		return inputs[0], true
	}
	return "", false
}

func (m *Watcher) closeConn() {
	if m.stopFn != nil {
		m.stopFn()
		m.stopFn = nil
	}
	if m.inPort != nil {
		_ = m.inPort.Close()
		m.inPort = nil
	}
	m.connected = false
	m.selectedName = ""
}

func (m *Watcher) openByName(name string) error {
	ins, err := m.drv.Ins()
	if err != nil {
		return err
	}
	var found drivers.In
	for _, in := range ins {
		if in.String() == name {
			found = in
			break
		}
	}
	if found == nil {
		return fmt.Errorf("input %q not found", name)
	}
	if err := found.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}

	stop, err := midi.ListenTo(found, func(msg midi.Message, _ int32) {
		on, key, ok := Decode(msg)
		if !ok {
			slog.Debug("midi: unhandled message", "msg", msg.String())
			return
		}
		slog.Debug("midi: note", "on", on, "key", key)
		m.onNote(on, key)
	}, midi.HandleError(func(listenErr error) {
		slog.Warn("midi: listener error", "device", name, "err", listenErr)
		// closeConn must not run on the listener goroutine.
		go func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.connected && m.selectedName == name {
				m.closeConn()
				m.lastRescanAt = time.Time{}
				if m.onDisconnect != nil {
					go m.onDisconnect()
				}
			}
		}()
	}))
	if err != nil {
		_ = found.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	m.inPort = found
	m.stopFn = stop
	m.connected = true
	m.selectedName = name
	slog.Info("midi: connected", "device", name)
	return nil
}

// Decode reports whether msg starts or ends a note, and which key. A NoteOn
// with zero velocity counts as an end.
func Decode(msg midi.Message) (on bool, key uint8, ok bool) {
	var ch, vel uint8
	if msg.GetNoteStart(&ch, &key, &vel) {
		return true, key, true
	}
	if msg.GetNoteEnd(&ch, &key) {
		return false, key, true
	}
	return false, 0, false
}

func matchesAny(name string, patterns []string) bool {
	for _, pat := range patterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
