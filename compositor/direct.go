package compositor

import "github.com/dasdy/holdlight/model"

// Transform describes how the hold grid is oriented relative to the LED grid.
type Transform struct {
	// SwapAxes maps hold (r, c) to LED (c, r). Applied before the reversals.
	SwapAxes    bool `json:"swap_axes"`
	ReverseRows bool `json:"reverse_rows"`
	ReverseCols bool `json:"reverse_cols"`
}

// Apply maps a hold position into a grid of ledRows x ledCols. The result may
// fall outside the LED grid; callers check.
func (t Transform) Apply(pos model.RowCol, ledRows, ledCols int) model.RowCol {
	if t.SwapAxes {
		pos.Row, pos.Col = pos.Col, pos.Row
	}

	if t.ReverseRows {
		pos.Row = ledRows - 1 - pos.Row
	}

	if t.ReverseCols {
		pos.Col = ledCols - 1 - pos.Col
	}

	return pos
}

// Direct lights the one LED that each hold maps to with the hold's colour.
type Direct struct {
	transform Transform
	ledRows   int
	ledCols   int
}

func NewDirect(ledRows, ledCols int, t Transform) *Direct {
	return &Direct{transform: t, ledRows: ledRows, ledCols: ledCols}
}

func (d *Direct) Name() string { return ModeDirect }

func (d *Direct) Compose(src Source) Frame {
	frame := NewFrame(d.ledRows, d.ledCols)
	states := src.States()

	for r := range src.Rows() {
		for c := range src.Cols() {
			led := d.transform.Apply(model.RowCol{Row: r, Col: c}, d.ledRows, d.ledCols)
			frame.Set(led.Row, led.Col, states.Color(stateAt(src, r, c)))
		}
	}

	return frame
}
