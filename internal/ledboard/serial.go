package ledboard

import (
	"fmt"
	"log/slog"
	"sync"

	"go.bug.st/serial"
)

// Port wraps a go.bug.st/serial port with a frame-send helper. It is safe for
// use from several goroutines.
type Port struct {
	mu   sync.Mutex
	port serial.Port
	name string
}

// Open opens the named serial device at the given baud rate.
func Open(name string, baud int) (*Port, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", name, err)
	}
	slog.Info("serial: port opened", "device", name, "baud", baud)
	return &Port{port: p, name: name}, nil
}

// Devices lists the serial ports present on the system.
func Devices() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial: list ports: %w", err)
	}
	return ports, nil
}

// SendFrame encodes and writes a Frame to the serial port.
func (s *Port) SendFrame(f Frame) error {
	data := f.Encode()
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.port.Write(data)
	if err != nil {
		slog.Error("serial: write error", "device", s.name, "err", err)
		return fmt.Errorf("serial: write %s: %w", s.name, err)
	}
	slog.Debug("serial: frame sent", "bytes", n, "cmd", f.Cmd, "string", f.String)
	return nil
}

// Close clears the board and closes the underlying serial port.
func (s *Port) Close() error {
	slog.Info("serial: closing port", "device", s.name)
	if err := s.SendFrame(ClearFrame()); err != nil {
		slog.Warn("serial: clear before close failed", "err", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}
