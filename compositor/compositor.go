// Package compositor turns a hold grid into LED colours.
//
// Two strategies exist. Direct lights exactly one LED per hold after an
// orientation transform. Blend treats every LED as sitting between up to four
// holds and averages the colours of its lit neighbours, each shifted by a small
// directional tint so the viewer can tell on which side the lit hold is.
package compositor

import (
	"errors"
	"fmt"

	"github.com/dasdy/holdlight/model"
)

var ErrUnknownMode = errors.New("unknown compositor mode")

const (
	ModeDirect = "direct"
	ModeBlend  = "blend"
)

// Source is the read-only view of a hold grid the compositors need.
// *grid.Grid satisfies it.
type Source interface {
	Rows() int
	Cols() int
	Get(row, col int) (int, error)
	States() model.StateTable
}

// Compositor recomputes every LED colour from the hold grid.
type Compositor interface {
	Compose(src Source) Frame
	Name() string
}

// Options carries everything New needs for either mode.
type Options struct {
	LEDRows   int
	LEDCols   int
	Transform Transform
	RowTints  []Tint
	ColTints  []Tint
}

// New builds the compositor for a mode name from the config file.
func New(mode string, opts Options) (Compositor, error) {
	switch mode {
	case ModeDirect:
		return NewDirect(opts.LEDRows, opts.LEDCols, opts.Transform), nil
	case ModeBlend, "":
		rowTints, colTints := opts.RowTints, opts.ColTints
		if rowTints == nil {
			rowTints = DefaultRowTints
		}

		if colTints == nil {
			colTints = DefaultColTints
		}

		return NewBlend(opts.LEDRows, opts.LEDCols, rowTints, colTints), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func stateAt(src Source, row, col int) int {
	v, err := src.Get(row, col)
	if err != nil {
		return 0
	}

	return v
}
