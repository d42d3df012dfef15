package components

import (
	"fmt"

	"github.com/a-h/templ"
	"github.com/dasdy/holdlight/model"
)

// Cell is one hold button on the page.
type Cell struct {
	Row   int
	Col   int
	State int
	Name  string
	Color string
}

type StateLegend struct {
	Index int
	Name  string
	Color string
}

type RenderContext struct {
	Rows       int
	Cols       int
	Cells      [][]Cell
	States     []StateLegend
	Boulders   []model.BoulderSummary
	Brightness float64
	Boulder    string
	Difficulty string
}

// NewRenderContext lays out cells for the hold grid. Rows of cells may be
// shorter than cols only if the grid is malformed; missing cells render off.
func NewRenderContext(cells [][]int, states model.StateTable, cols int) RenderContext {
	rc := RenderContext{
		Rows:   len(cells),
		Cols:   cols,
		Cells:  make([][]Cell, len(cells)),
		States: make([]StateLegend, len(states)),
	}

	for i, s := range states {
		rc.States[i] = StateLegend{Index: i, Name: s.Name, Color: s.Color.Hex()}
	}

	for r, row := range cells {
		rc.Cells[r] = make([]Cell, cols)

		for c := range cols {
			v := 0
			if c < len(row) {
				v = row[c]
			}

			rc.Cells[r][c] = Cell{Row: r, Col: c, State: v, Name: states.Name(v), Color: states.Color(v).Hex()}
		}
	}

	return rc
}

// Colors lists the state colours in state order, for the page script.
func (rc *RenderContext) Colors() []string {
	colors := make([]string, len(rc.States))
	for i, s := range rc.States {
		colors[i] = s.Color
	}

	return colors
}

// swatch fills a hold or legend entry. hex always comes from model.RGB.Hex.
func swatch(hex string) templ.SafeCSS {
	return templ.SafeCSS("background: " + hex + ";")
}

func wallColumns(cols int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("grid-template-columns: repeat(%d, 48px);", cols))
}
