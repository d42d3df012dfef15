package led

import (
	"sync"

	"github.com/dasdy/holdlight/model"
)

// Memory is a driver without hardware. It remembers the last frame, which
// is what the preview command and the web LED view read.
type Memory struct {
	last  []model.RGB
	shows int
	// Err, when set, is returned from every Show.
	Err  error
	lock sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Show(pixels []model.RGB) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.last = make([]model.RGB, len(pixels))
	copy(m.last, pixels)
	m.shows++

	return nil
}

func (m *Memory) Last() []model.RGB {
	m.lock.Lock()
	defer m.lock.Unlock()

	result := make([]model.RGB, len(m.last))
	copy(result, m.last)

	return result
}

// Shows counts successful Show calls.
func (m *Memory) Shows() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.shows
}

func (m *Memory) Close() error {
	return nil
}
