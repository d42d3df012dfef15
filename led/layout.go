package led

import "fmt"

type Orientation string

const (
	// Vertical strips run along LED columns of one LED row before moving on
	// to the next row.
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Layout maps an LED grid position to an index on the physical strip.
type Layout struct {
	Orientation Orientation
	Rows        int
	Cols        int
	// Alternating strips snake: every odd run is wired backwards.
	Alternating bool
	// Offset is the index of the first LED of the grid on the strip.
	Offset int
	// ReverseRows and ReverseCols flip the LED grid before it is mapped onto
	// the strip, for strips that start in the bottom or right corner.
	ReverseRows bool
	ReverseCols bool
}

// Size is the number of strip LEDs the layout covers, Offset included.
func (l Layout) Size() int {
	return l.Offset + l.Rows*l.Cols
}

func (l Layout) Validate(numLEDs int) error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("layout must have positive dimensions, got %dx%d", l.Rows, l.Cols)
	}

	if l.Offset < 0 {
		return fmt.Errorf("layout offset must not be negative, got %d", l.Offset)
	}

	if l.Size() > numLEDs {
		return fmt.Errorf("layout of %dx%d LEDs at offset %d needs %d LEDs, strip has %d",
			l.Rows, l.Cols, l.Offset, l.Size(), numLEDs)
	}

	switch l.Orientation {
	case Vertical, Horizontal:
	default:
		return fmt.Errorf("unknown strip orientation %q", l.Orientation)
	}

	return nil
}

// Index returns the strip index of LED (row, col), or -1 outside the layout.
func (l Layout) Index(row, col int) int {
	if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
		return -1
	}

	if l.ReverseRows {
		row = l.Rows - 1 - row
	}

	if l.ReverseCols {
		col = l.Cols - 1 - col
	}

	var idx int

	switch l.Orientation {
	case Horizontal:
		if l.Alternating && col%2 == 1 {
			idx = col*l.Rows + (l.Rows - 1 - row)
		} else {
			idx = col*l.Rows + row
		}
	default:
		if l.Alternating && row%2 == 1 {
			idx = row*l.Cols + (l.Cols - 1 - col)
		} else {
			idx = row*l.Cols + col
		}
	}

	return l.Offset + idx
}
