package grid_test

import (
	"testing"

	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridIsOff(t *testing.T) {
	g := grid.New(12, 7, model.ClassicStates)

	assert.Equal(t, 12, g.Rows())
	assert.Equal(t, 7, g.Cols())
	assert.Empty(t, g.Marked())

	for _, row := range g.Snapshot() {
		assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, row)
	}
}

func TestToggle(t *testing.T) {
	t.Run("first toggle selects hand", func(t *testing.T) {
		g := grid.New(12, 7, model.ClassicStates)

		state, err := g.Toggle(0, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, state)
		assert.Equal(t, "hand", g.States().Name(state))
	})

	t.Run("cycles back after every state", func(t *testing.T) {
		for _, states := range []model.StateTable{model.ClassicStates, model.CompactStates} {
			g := grid.New(12, 7, states)

			for row := range g.Rows() {
				for col := range g.Cols() {
					for range len(states) {
						_, err := g.Toggle(row, col)
						require.NoError(t, err)
					}

					v, err := g.Get(row, col)
					require.NoError(t, err)
					assert.Equal(t, 0, v, "cell (%d, %d)", row, col)
				}
			}
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		g := grid.New(12, 7, model.ClassicStates)

		for _, rc := range []model.RowCol{{Row: -1, Col: 0}, {Row: 12, Col: 0}, {Row: 0, Col: 7}, {Row: 0, Col: -1}} {
			_, err := g.Toggle(rc.Row, rc.Col)
			require.ErrorIs(t, err, grid.ErrOutOfBounds)

			_, err = g.Get(rc.Row, rc.Col)
			require.ErrorIs(t, err, grid.ErrOutOfBounds)
		}

		assert.Empty(t, g.Marked())
	})
}

func TestClear(t *testing.T) {
	g := grid.New(4, 3, model.ClassicStates)

	for i := range 4 {
		for j := range 3 {
			for range i + j {
				_, err := g.Toggle(i, j)
				require.NoError(t, err)
			}
		}
	}

	require.NotEmpty(t, g.Marked())

	g.Clear()

	assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, g.Snapshot())
}

func TestSnapshotIsIndependent(t *testing.T) {
	g := grid.New(2, 2, model.ClassicStates)
	_, err := g.Toggle(1, 1)
	require.NoError(t, err)

	snap := g.Snapshot()
	snap[1][1] = 4

	v, err := g.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = g.Toggle(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, snap[0][0])
}

func TestReplace(t *testing.T) {
	t.Run("copies the given cells", func(t *testing.T) {
		g := grid.New(2, 3, model.CompactStates)
		cells := [][]int{{0, 1, 2}, {2, 1, 0}}

		require.NoError(t, g.Replace(cells))

		cells[0][1] = 0
		v, err := g.Get(0, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
		assert.Equal(t, [][]int{{0, 1, 2}, {2, 1, 0}}, g.Snapshot())
	})

	tests := []struct {
		name  string
		cells [][]int
		err   error
	}{
		{name: "too few rows", cells: [][]int{{0, 0, 0}}, err: grid.ErrDimensionMismatch},
		{name: "ragged row", cells: [][]int{{0, 0, 0}, {0, 0}}, err: grid.ErrDimensionMismatch},
		{name: "nil", cells: nil, err: grid.ErrDimensionMismatch},
		{name: "unknown state", cells: [][]int{{0, 0, 0}, {0, 3, 0}}, err: grid.ErrInvalidState},
		{name: "negative state", cells: [][]int{{0, -1, 0}, {0, 0, 0}}, err: grid.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New(2, 3, model.CompactStates)
			_, err := g.Toggle(1, 2)
			require.NoError(t, err)

			err = g.Replace(tt.cells)

			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 1}}, g.Snapshot(), "failed replace must not change the grid")
		})
	}
}
