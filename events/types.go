package events

import "github.com/dasdy/holdlight/model"

// Event type constants for kelindar/event.
const (
	TypeGridChanged uint32 = iota + 1
	TypeBouldersChanged
	TypeBrightnessChanged
	TypeDriverError
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// GridChangedEvent carries the whole hold grid after a toggle, load or clear.
type GridChangedEvent struct {
	Grid       [][]int `json:"grid" doc:"Hold state index per cell, row-major"`
	Cause      string  `json:"cause" example:"toggle" doc:"What changed the grid: toggle, load or clear"`
	Boulder    string  `json:"boulder,omitempty" example:"V3" doc:"Loaded boulder name"`
	Difficulty string  `json:"difficulty,omitempty" example:"6a" doc:"Loaded boulder difficulty"`
	Timestamp  string  `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

func (e GridChangedEvent) Type() uint32 { return TypeGridChanged }

// BouldersChangedEvent is sent after a boulder was saved or deleted.
type BouldersChangedEvent struct {
	Boulders  []model.BoulderSummary `json:"boulders" doc:"Every stored boulder sorted by name"`
	Timestamp string                 `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

func (e BouldersChangedEvent) Type() uint32 { return TypeBouldersChanged }

type BrightnessChangedEvent struct {
	Brightness float64 `json:"brightness" example:"0.5" doc:"Global brightness in [0, 1]"`
	Timestamp  string  `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

func (e BrightnessChangedEvent) Type() uint32 { return TypeBrightnessChanged }

// DriverErrorEvent reports a failed push to the LED hardware.
type DriverErrorEvent struct {
	Error     string `json:"error" example:"serial port closed" doc:"Driver error message"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

func (e DriverErrorEvent) Type() uint32 { return TypeDriverError }
