// Package led pushes composed frames to addressable LED hardware.
package led

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/model"
)

var (
	ErrDriver            = errors.New("led driver failure")
	ErrInvalidBrightness = errors.New("brightness must be between 0 and 1")
)

// Driver sends a full strip of pixels to hardware in one update.
type Driver interface {
	Show(pixels []model.RGB) error
	Close() error
}

// Strip owns the pixel buffer of a physical strip. Every Render clears the
// buffer, sets all pixels and then calls Show once, so the hardware never
// sees a half-written frame.
type Strip struct {
	driver     Driver
	buffer     []model.RGB
	layout     Layout
	brightness float64
	lock       sync.Mutex
}

func NewStrip(driver Driver, numLEDs int, layout Layout) (*Strip, error) {
	if err := layout.Validate(numLEDs); err != nil {
		return nil, err
	}

	return &Strip{
		driver:     driver,
		buffer:     make([]model.RGB, numLEDs),
		layout:     layout,
		brightness: 1.0,
	}, nil
}

func (s *Strip) Layout() Layout {
	return s.layout
}

// Render writes frame into the buffer and shows it.
func (s *Strip) Render(frame compositor.Frame) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i := range s.buffer {
		s.buffer[i] = model.Off
	}

	for r := range frame.Rows() {
		for c := range frame.Cols() {
			idx := s.layout.Index(r, c)
			if idx < 0 {
				continue
			}

			s.buffer[idx] = frame.At(r, c)
		}
	}

	return s.show()
}

// SetBrightness scales every pushed pixel and re-shows the current buffer.
func (s *Strip) SetBrightness(brightness float64) error {
	if brightness < 0 || brightness > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidBrightness, brightness)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.brightness = brightness

	return s.show()
}

func (s *Strip) Brightness() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.brightness
}

// Pixels returns a copy of the buffer before brightness scaling.
func (s *Strip) Pixels() []model.RGB {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := make([]model.RGB, len(s.buffer))
	copy(result, s.buffer)

	return result
}

func (s *Strip) show() error {
	out := make([]model.RGB, len(s.buffer))
	for i, p := range s.buffer {
		out[i] = p.Scale(s.brightness)
	}

	if err := s.driver.Show(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDriver, err)
	}

	slog.Debug("Pushed frame to strip", "leds", len(out), "brightness", s.brightness)

	return nil
}

func (s *Strip) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.driver.Close(); err != nil {
		return fmt.Errorf("could not close led driver: %w", err)
	}

	return nil
}
