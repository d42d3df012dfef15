package compositor_test

import (
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/model"
)

// gridSource is a compositor.Source backed by literal cells.
type gridSource struct {
	cells  [][]int
	states model.StateTable
}

func (s gridSource) Rows() int { return len(s.cells) }

func (s gridSource) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}

	return len(s.cells[0])
}

func (s gridSource) States() model.StateTable { return s.states }

func (s gridSource) Get(row, col int) (int, error) {
	if row < 0 || row >= s.Rows() || col < 0 || col >= s.Cols() {
		return 0, grid.ErrOutOfBounds
	}

	return s.cells[row][col], nil
}

func emptyCells(rows, cols int) [][]int {
	cells := make([][]int, rows)
	for i := range cells {
		cells[i] = make([]int, cols)
	}

	return cells
}
