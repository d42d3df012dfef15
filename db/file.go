package db

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dasdy/holdlight/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// holdRows marshals to YAML with one flow sequence per grid row, which keeps
// the file readable as a picture of the wall.
type holdRows [][]int

func (h holdRows) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode}

	for _, row := range h {
		rowNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range row {
			rowNode.Content = append(rowNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
		}

		node.Content = append(node.Content, rowNode)
	}

	return node, nil
}

type fileBoulder struct {
	Difficulty string   `yaml:"difficulty" toml:"difficulty" json:"difficulty"`
	Holds      holdRows `yaml:"holds" toml:"holds" json:"holds"`
}

type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

var codecs = map[string]codec{
	".yml":  {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	".yaml": {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	".toml": {marshal: toml.Marshal, unmarshal: toml.Unmarshal},
	".json": {
		marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal: json.Unmarshal,
	},
}

// IsFilePath reports whether path has an extension the file store can write.
func IsFilePath(path string) bool {
	_, ok := codecs[strings.ToLower(filepath.Ext(path))]

	return ok
}

// FileStorage keeps every boulder in memory and rewrites the whole file after
// each change.
type FileStorage struct {
	boulders map[string]model.Boulder
	codec    codec
	path     string
	lock     sync.RWMutex
}

// NewFileStorage reads path once. A missing file is an empty store.
func NewFileStorage(path string) (*FileStorage, error) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported store file extension %q", filepath.Ext(path))
	}

	s := &FileStorage{
		boulders: make(map[string]model.Boulder),
		codec:    c,
		path:     path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Store file does not exist yet, starting empty", "path", path)

		return s, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: could not read %s: %w", ErrStorage, path, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	parsed := make(map[string]fileBoulder)
	if err := c.unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: could not parse %s: %w", ErrStorage, path, err)
	}

	for name, b := range parsed {
		s.boulders[name] = model.Boulder{Difficulty: b.Difficulty, Holds: model.CloneCells(b.Holds)}
	}

	slog.Info("Loaded boulders", "path", path, "count", len(s.boulders))

	return s, nil
}

func (s *FileStorage) Save(_ context.Context, name string, boulder model.Boulder) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	previous, existed := s.boulders[name]
	s.boulders[name] = boulder.Clone()

	if err := s.persist(); err != nil {
		if existed {
			s.boulders[name] = previous
		} else {
			delete(s.boulders, name)
		}

		return err
	}

	return nil
}

func (s *FileStorage) Load(_ context.Context, name string) (model.Boulder, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	b, ok := s.boulders[name]
	if !ok {
		return model.Boulder{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return b.Clone(), nil
}

func (s *FileStorage) Delete(_ context.Context, name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	previous, ok := s.boulders[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	delete(s.boulders, name)

	if err := s.persist(); err != nil {
		s.boulders[name] = previous

		return err
	}

	return nil
}

func (s *FileStorage) List(_ context.Context) ([]model.BoulderSummary, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]model.BoulderSummary, 0, len(s.boulders))
	for name, b := range s.boulders {
		result = append(result, model.BoulderSummary{Name: name, Difficulty: b.Difficulty})
	}

	slices.SortFunc(result, func(a, b model.BoulderSummary) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return result, nil
}

func (s *FileStorage) Close() error {
	return nil
}

// persist writes to a temporary file next to the target and renames it, so a
// failed write leaves the previous file in place.
func (s *FileStorage) persist() error {
	out := make(map[string]fileBoulder, len(s.boulders))
	for name, b := range s.boulders {
		out[name] = fileBoulder{Difficulty: b.Difficulty, Holds: b.Holds}
	}

	data, err := s.codec.marshal(out)
	if err != nil {
		return fmt.Errorf("%w: could not encode boulders: %w", ErrStorage, err)
	}

	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary file in %s: %w", ErrStorage, dir, err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("%w: could not write %s: %w", ErrStorage, tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: could not close %s: %w", ErrStorage, tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: could not replace %s: %w", ErrStorage, s.path, err)
	}

	slog.Debug("Wrote store file", "path", s.path, "count", len(out))

	return nil
}
