package routes_test

import (
	"context"
	"io"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/model"
	"github.com/dasdy/holdlight/wall"
)

// MockComponent implements the templ.Component interface for testing.
type MockComponent struct {
	RenderFunc func(ctx context.Context, w io.Writer) error
}

func (m MockComponent) Render(ctx context.Context, w io.Writer) error {
	return m.RenderFunc(ctx, w)
}

// WallMock fails every fallible call with Err.
type WallMock struct {
	Err   error
	Calls int
}

func (m *WallMock) State() wall.State {
	return wall.State{Grid: [][]int{{0}}, States: model.ClassicStates, Rows: 1, Cols: 1, Brightness: 1}
}

func (m *WallMock) Toggle(_ context.Context, _, _ int) (int, string, error) {
	m.Calls++

	return 0, "", m.Err
}

func (m *WallMock) Clear(_ context.Context) [][]int {
	m.Calls++

	return [][]int{{0}}
}

func (m *WallMock) Save(_ context.Context, _, _ string) ([]model.BoulderSummary, error) {
	m.Calls++

	return nil, m.Err
}

func (m *WallMock) Load(_ context.Context, _ string) ([][]int, string, error) {
	m.Calls++

	return nil, "", m.Err
}

func (m *WallMock) Delete(_ context.Context, _ string) ([]model.BoulderSummary, error) {
	m.Calls++

	return nil, m.Err
}

func (m *WallMock) Boulders(_ context.Context) ([]model.BoulderSummary, error) {
	m.Calls++

	return nil, m.Err
}

func (m *WallMock) SetBrightness(_ context.Context, _ float64) error {
	m.Calls++

	return m.Err
}

func (m *WallMock) Refresh(_ context.Context) error {
	return m.Err
}

func (m *WallMock) Rainbow(_ context.Context) error {
	m.Calls++

	return m.Err
}

func (m *WallMock) Frame() compositor.Frame {
	return compositor.NewFrame(1, 2)
}
