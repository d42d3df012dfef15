package compositor_test

import (
	"testing"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rows    = 12
	cols    = 7
	ledRows = rows
	ledCols = cols + 1
)

func TestNew(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		c, err := compositor.New("direct", compositor.Options{LEDRows: ledRows, LEDCols: ledCols})
		require.NoError(t, err)
		assert.Equal(t, compositor.ModeDirect, c.Name())
	})

	t.Run("blend is the default", func(t *testing.T) {
		c, err := compositor.New("", compositor.Options{LEDRows: ledRows, LEDCols: ledCols})
		require.NoError(t, err)
		assert.Equal(t, compositor.ModeBlend, c.Name())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := compositor.New("sparkle", compositor.Options{})
		require.ErrorIs(t, err, compositor.ErrUnknownMode)
	})
}

func TestDirect(t *testing.T) {
	t.Run("reversed hold (0,0) lands on the last LED", func(t *testing.T) {
		g := grid.New(rows, cols, model.ClassicStates)
		state, err := g.Toggle(0, 0)
		require.NoError(t, err)
		require.Equal(t, 1, state)

		d := compositor.NewDirect(ledRows, ledCols, compositor.Transform{ReverseRows: true, ReverseCols: true})
		frame := d.Compose(g)

		assert.Equal(t, ledRows, frame.Rows())
		assert.Equal(t, ledCols, frame.Cols())
		assert.Equal(t, model.ClassicStates.Color(1), frame.At(11, 7))
		assert.Equal(t, 1, frame.Lit(), "every other LED stays off")
	})

	t.Run("identity transform", func(t *testing.T) {
		g := grid.New(rows, cols, model.ClassicStates)
		_, err := g.Toggle(3, 5)
		require.NoError(t, err)
		_, err = g.Toggle(3, 5)
		require.NoError(t, err)

		frame := compositor.NewDirect(ledRows, ledCols, compositor.Transform{}).Compose(g)

		assert.Equal(t, model.ClassicStates.Color(2), frame.At(3, 5))
		assert.Equal(t, 1, frame.Lit())

		for r := range ledRows {
			assert.True(t, frame.At(r, ledCols-1).IsOff(), "extra LED column has no hold")
		}
	})

	t.Run("swapped axes drop holds that do not fit", func(t *testing.T) {
		g := grid.New(rows, cols, model.ClassicStates)
		_, err := g.Toggle(1, 4)
		require.NoError(t, err)
		_, err = g.Toggle(10, 2)
		require.NoError(t, err)

		frame := compositor.NewDirect(ledRows, ledCols, compositor.Transform{SwapAxes: true}).Compose(g)

		assert.Equal(t, model.ClassicStates.Color(1), frame.At(4, 1))
		assert.Equal(t, 1, frame.Lit(), "hold (10, 2) maps to LED (2, 10) which does not exist")
	})
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		t    compositor.Transform
		in   model.RowCol
		want model.RowCol
	}{
		{name: "identity", in: model.RowCol{Row: 2, Col: 3}, want: model.RowCol{Row: 2, Col: 3}},
		{name: "reverse rows", t: compositor.Transform{ReverseRows: true}, in: model.RowCol{Row: 2, Col: 3}, want: model.RowCol{Row: 9, Col: 3}},
		{name: "reverse cols", t: compositor.Transform{ReverseCols: true}, in: model.RowCol{Row: 2, Col: 3}, want: model.RowCol{Row: 2, Col: 4}},
		{name: "swap then reverse", t: compositor.Transform{SwapAxes: true, ReverseRows: true}, in: model.RowCol{Row: 2, Col: 3}, want: model.RowCol{Row: 8, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.t.Apply(tt.in, ledRows, ledCols))
		})
	}
}

func TestBlendOffWithoutNeighbours(t *testing.T) {
	cells := emptyCells(rows, cols)
	cells[5][3] = 1
	src := gridSource{cells: cells, states: model.ClassicStates}

	frame := compositor.NewBlend(ledRows, ledCols, compositor.DefaultRowTints, compositor.DefaultColTints).Compose(src)

	// hold (5,3) influences LEDs (5,3), (5,4), (6,3) and (6,4) only.
	lit := map[model.RowCol]bool{{Row: 5, Col: 3}: true, {Row: 5, Col: 4}: true, {Row: 6, Col: 3}: true, {Row: 6, Col: 4}: true}

	for r := range ledRows {
		for c := range ledCols {
			if lit[model.RowCol{Row: r, Col: c}] {
				assert.False(t, frame.At(r, c).IsOff(), "LED (%d, %d) should be lit", r, c)
			} else {
				assert.Equal(t, model.Off, frame.At(r, c), "LED (%d, %d) should be off", r, c)
			}
		}
	}
}

func TestBlendEmptyGridIsDark(t *testing.T) {
	src := gridSource{cells: emptyCells(rows, cols), states: model.CompactStates}

	frame := compositor.NewBlend(ledRows, ledCols, compositor.DefaultRowTints, compositor.DefaultColTints).Compose(src)

	assert.Equal(t, 0, frame.Lit())
}

func TestBlendSingleNeighbour(t *testing.T) {
	cells := emptyCells(rows, cols)
	cells[2][3] = 2
	src := gridSource{cells: cells, states: model.CompactStates}

	rowTints := []compositor.Tint{{Offset: 0, Shift: [3]float64{-10, 5, 0}}, {Offset: -1, Shift: [3]float64{0, 0, 7}}}
	colTints := []compositor.Tint{{Offset: 0, Shift: [3]float64{0, 20, 3}}, {Offset: -1, Shift: [3]float64{4, 0, 0}}}
	frame := compositor.NewBlend(ledRows, ledCols, rowTints, colTints).Compose(src)

	// start_end is (255, 0, 0).
	tests := []struct {
		led  model.RowCol
		want model.RGB
	}{
		// row offset 0, col offset 0: 255-10+0, 0+5+20, 0+0+3
		{led: model.RowCol{Row: 2, Col: 3}, want: model.RGB{R: 245, G: 25, B: 3}},
		// row offset 0, col offset -1: 255-10+4 clamps to 249, 0+5+0, 0
		{led: model.RowCol{Row: 2, Col: 4}, want: model.RGB{R: 249, G: 5, B: 0}},
		// row offset -1, col offset 0: 255+0+0, 0+0+20, 0+7+3
		{led: model.RowCol{Row: 3, Col: 3}, want: model.RGB{R: 255, G: 20, B: 10}},
		// row offset -1, col offset -1: 255+0+4 clamps to 255, 0, 7
		{led: model.RowCol{Row: 3, Col: 4}, want: model.RGB{R: 255, G: 0, B: 7}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, frame.At(tt.led.Row, tt.led.Col), "LED %+v", tt.led)
	}
}

func TestBlendAveragesNeighbours(t *testing.T) {
	cells := emptyCells(rows, cols)
	cells[4][2] = 1 // hand, blue
	cells[4][3] = 3 // start, red
	src := gridSource{cells: cells, states: model.ClassicStates}

	noTint := []compositor.Tint{{Offset: 0}, {Offset: -1}}
	frame := compositor.NewBlend(ledRows, ledCols, noTint, noTint).Compose(src)

	// LED (4,3) sits between hold columns 2 and 3.
	assert.Equal(t, model.RGB{R: 127, G: 0, B: 127}, frame.At(4, 3))
	assert.Equal(t, model.RGB{R: 0, G: 0, B: 255}, frame.At(4, 2))
	assert.Equal(t, model.RGB{R: 255, G: 0, B: 0}, frame.At(4, 4))
}

func TestBlendClampsExtremes(t *testing.T) {
	white := model.StateTable{
		{Name: "off"},
		{Name: "white", Color: model.RGB{R: 255, G: 255, B: 255}},
		{Name: "black-ish", Color: model.RGB{R: 1, G: 0, B: 0}},
	}
	big := []compositor.Tint{{Offset: 0, Shift: [3]float64{400, -400, 90}}, {Offset: -1, Shift: [3]float64{-500, 500, -90}}}

	for _, fill := range []int{1, 2} {
		cells := emptyCells(rows, cols)
		for r := range cells {
			for c := range cells[r] {
				if (r+c)%2 == 0 {
					cells[r][c] = fill
				} else {
					cells[r][c] = 3 - fill
				}
			}
		}

		src := gridSource{cells: cells, states: white}
		frame := compositor.NewBlend(ledRows, ledCols, big, big).Compose(src)

		// every output channel is a uint8, so the check is that clamping
		// happened instead of wrapping: no LED next to a lit hold is dark.
		for r := range ledRows {
			for c := range ledCols {
				assert.False(t, frame.At(r, c).IsOff(), "LED (%d, %d) wrapped to black", r, c)
			}
		}
	}

	cells := emptyCells(rows, cols)
	cells[0][0] = 1
	src := gridSource{cells: cells, states: white}
	frame := compositor.NewBlend(ledRows, ledCols, big, big).Compose(src)

	// offsets (0,0): 255+800, 255-800, 255+180
	assert.Equal(t, model.RGB{R: 255, G: 0, B: 255}, frame.At(0, 0))
}

func TestRainbow(t *testing.T) {
	frame := compositor.Rainbow(ledRows, ledCols)

	assert.Equal(t, ledRows, frame.Rows())
	assert.Equal(t, ledCols, frame.Cols())
	assert.Equal(t, model.RGB{R: 255}, frame.At(0, 0), "hue 0 is red")
	assert.Equal(t, ledRows*ledCols, frame.Lit(), "full saturation and value light every LED")
	assert.NotEqual(t, frame.At(0, 0), frame.At(ledRows-1, ledCols-1))

	assert.Equal(t, 0, compositor.Rainbow(0, 0).Lit())
}

func TestFrame(t *testing.T) {
	f := compositor.NewFrame(2, 3)
	f.Set(1, 2, model.RGB{R: 1})
	f.Set(5, 5, model.RGB{R: 9})

	assert.Equal(t, model.RGB{R: 1}, f.At(1, 2))
	assert.Equal(t, model.Off, f.At(-1, 0))
	assert.Equal(t, [][]model.RGB{{{}, {}, {}}, {{}, {}, {R: 1}}}, f.Grid())

	clone := f.Clone()
	clone.Fill(model.RGB{G: 3})
	assert.Equal(t, 1, f.Lit())
	assert.Equal(t, 6, clone.Lit())
}
