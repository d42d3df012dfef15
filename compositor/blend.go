package compositor

import (
	"github.com/dasdy/holdlight/color"
	"github.com/dasdy/holdlight/model"
)

// Tint pairs a neighbour offset with the colour shift that neighbour adds.
type Tint struct {
	Offset int        `json:"offset" mapstructure:"offset"`
	Shift  [3]float64 `json:"shift" mapstructure:"shift"`
}

var (
	// DefaultRowTints push holds on the LED's own row towards red and holds on
	// the row above towards blue.
	DefaultRowTints = []Tint{
		{Offset: 0, Shift: [3]float64{24, 0, -24}},
		{Offset: -1, Shift: [3]float64{-24, 0, 24}},
	}

	// DefaultColTints do the same on the green axis for the column to the
	// right (offset 0) and to the left (offset -1) of the LED.
	DefaultColTints = []Tint{
		{Offset: 0, Shift: [3]float64{0, 24, -24}},
		{Offset: -1, Shift: [3]float64{0, -24, 24}},
	}
)

// Blend averages the lit holds around every LED.
type Blend struct {
	rowTints []Tint
	colTints []Tint
	ledRows  int
	ledCols  int
}

func NewBlend(ledRows, ledCols int, rowTints, colTints []Tint) *Blend {
	return &Blend{rowTints: rowTints, colTints: colTints, ledRows: ledRows, ledCols: ledCols}
}

func (b *Blend) Name() string { return ModeBlend }

func (b *Blend) Compose(src Source) Frame {
	frame := NewFrame(b.ledRows, b.ledCols)

	for r := range b.ledRows {
		for c := range b.ledCols {
			frame.Set(r, c, b.pixel(src, r, c))
		}
	}

	return frame
}

func (b *Blend) contributions(src Source, ledRow, ledCol int) [][3]float64 {
	states := src.States()
	result := make([][3]float64, 0, len(b.rowTints)*len(b.colTints))

	for _, rt := range b.rowTints {
		for _, ct := range b.colTints {
			holdRow, holdCol := ledRow+rt.Offset, ledCol+ct.Offset
			if holdRow < 0 || holdRow >= src.Rows() || holdCol < 0 || holdCol >= src.Cols() {
				continue
			}

			state := stateAt(src, holdRow, holdCol)
			if state == 0 {
				continue
			}

			base := states.Color(state).Vector()

			var v [3]float64
			for i := range v {
				v[i] = base[i] + rt.Shift[i] + ct.Shift[i]
			}

			result = append(result, v)
		}
	}

	return result
}

func (b *Blend) pixel(src Source, ledRow, ledCol int) model.RGB {
	contribs := b.contributions(src, ledRow, ledCol)
	if len(contribs) == 0 {
		return model.Off
	}

	var sum [3]float64

	for _, v := range contribs {
		for i := range sum {
			sum[i] += v[i]
		}
	}

	for i := range sum {
		sum[i] /= float64(len(contribs))
	}

	return color.FromVector(sum)
}
