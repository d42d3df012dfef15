// Package grid holds the live hold layout of the wall.
package grid

import (
	"errors"
	"fmt"

	"github.com/dasdy/holdlight/model"
)

var (
	ErrOutOfBounds       = errors.New("cell out of bounds")
	ErrDimensionMismatch = errors.New("grid dimensions do not match")
	ErrInvalidState      = errors.New("unknown hold state")
)

// Grid is a rows x cols array of hold state indices. It is not safe for
// concurrent use; callers serialize access.
type Grid struct {
	cells  [][]int
	states model.StateTable
	rows   int
	cols   int
}

// New creates a grid with every cell "off".
func New(rows, cols int, states model.StateTable) *Grid {
	return &Grid{
		cells:  emptyCells(rows, cols),
		states: states,
		rows:   rows,
		cols:   cols,
	}
}

func emptyCells(rows, cols int) [][]int {
	cells := make([][]int, rows)
	for i := range cells {
		cells[i] = make([]int, cols)
	}

	return cells
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) States() model.StateTable { return g.states }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) Get(row, col int) (int, error) {
	if !g.inBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}

	return g.cells[row][col], nil
}

// Toggle advances a cell to the next state and returns it.
func (g *Grid) Toggle(row, col int) (int, error) {
	if !g.inBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}

	g.cells[row][col] = g.states.Next(g.cells[row][col])

	return g.cells[row][col], nil
}

// Clear resets every cell to "off".
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for j := range row {
			row[j] = 0
		}
	}
}

// Snapshot returns a deep copy of the cells.
func (g *Grid) Snapshot() [][]int {
	return model.CloneCells(g.cells)
}

// Replace swaps in a copy of cells. The grid is left untouched when cells
// have the wrong shape or hold an unknown state.
func (g *Grid) Replace(cells [][]int) error {
	if err := g.Validate(cells); err != nil {
		return err
	}

	g.cells = model.CloneCells(cells)

	return nil
}

// Validate reports whether cells could replace the grid contents.
func (g *Grid) Validate(cells [][]int) error {
	if len(cells) != g.rows {
		return fmt.Errorf("%w: got %d rows, want %d", ErrDimensionMismatch, len(cells), g.rows)
	}

	for i, row := range cells {
		if len(row) != g.cols {
			return fmt.Errorf("%w: row %d has %d cols, want %d", ErrDimensionMismatch, i, len(row), g.cols)
		}

		for j, v := range row {
			if !g.states.Valid(v) {
				return fmt.Errorf("%w: %d at (%d, %d)", ErrInvalidState, v, i, j)
			}
		}
	}

	return nil
}

// Marked returns the positions of every cell that is not "off", row by row.
func (g *Grid) Marked() []model.RowCol {
	result := make([]model.RowCol, 0)

	for i, row := range g.cells {
		for j, v := range row {
			if v != 0 {
				result = append(result, model.RowCol{Row: i, Col: j})
			}
		}
	}

	return result
}
