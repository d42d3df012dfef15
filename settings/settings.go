// Package settings keeps the global brightness in a small TOML file and
// follows edits made to that file while the server runs.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	DefaultBrightness = 1.0
	brightnessKey     = "brightness"
)

var ErrInvalidBrightness = errors.New("brightness must be within [0, 1]")

type Settings struct {
	path       string
	brightness float64
	lock       sync.RWMutex
}

func ValidateBrightness(b float64) error {
	if math.IsNaN(b) || b < 0 || b > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidBrightness, b)
	}

	return nil
}

func readFile(path string) (float64, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault(brightnessKey, DefaultBrightness)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultBrightness, nil
		}

		return 0, fmt.Errorf("could not read settings %s: %w", path, err)
	}

	b := v.GetFloat64(brightnessKey)
	if err := ValidateBrightness(b); err != nil {
		return 0, fmt.Errorf("settings %s: %w", path, err)
	}

	return b, nil
}

// Load reads path. A missing file means full brightness; it is created on the
// first SetBrightness.
func Load(path string) (*Settings, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded settings", "path", path, "brightness", b)

	return &Settings{path: path, brightness: b}, nil
}

func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) Brightness() float64 {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.brightness
}

// SetBrightness validates b, rewrites the settings file and only then updates
// the in-memory value.
func (s *Settings) SetBrightness(b float64) error {
	if err := ValidateBrightness(b); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.write(b); err != nil {
		return err
	}

	s.brightness = b

	return nil
}

// write replaces the file through a temporary sibling, so the watcher never
// sees a truncated file.
func (s *Settings) write(b float64) error {
	v := viper.New()
	v.SetConfigType("toml")
	v.Set(brightnessKey, b)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create settings directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary settings file in %s: %w", dir, err)
	}

	defer os.Remove(tmp.Name())

	if err := v.WriteConfigTo(tmp); err != nil {
		tmp.Close()

		return fmt.Errorf("could not write settings %s: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace settings %s: %w", s.path, err)
	}

	return nil
}

// Watch calls onChange whenever the file on disk holds a different valid
// brightness than the one in memory. It returns once the watcher is running
// and stops when ctx is done.
func (s *Settings) Watch(ctx context.Context, onChange func(float64)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create settings watcher: %w", err)
	}

	// Editors replace files, so watch the directory rather than the file.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()

		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}

				s.reload(onChange)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				slog.Warn("Settings watcher error", "error", err)
			}
		}
	}()

	return nil
}

// reload holds the lock while reading so it cannot interleave with
// SetBrightness and bring back a value that was just replaced.
func (s *Settings) reload(onChange func(float64)) {
	s.lock.Lock()

	if info, err := os.Stat(s.path); err == nil && info.Size() == 0 {
		s.lock.Unlock()
		slog.Debug("Ignoring empty settings file", "path", s.path)

		return
	}

	b, err := readFile(s.path)
	if err != nil {
		s.lock.Unlock()
		slog.Warn("Ignoring settings change", "path", s.path, "error", err)

		return
	}

	changed := b != s.brightness
	s.brightness = b
	s.lock.Unlock()

	if changed {
		slog.Info("Settings changed on disk", "brightness", b)
		onChange(b)
	}
}
