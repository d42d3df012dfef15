package model

import (
	"fmt"
	"slices"
)

// RGB is a single LED colour, one byte per channel.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Off is the colour of an unlit LED.
var Off = RGB{}

func (c RGB) IsOff() bool {
	return c == Off
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour in the #rrggbb form used by the web page.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Vector returns the colour as float channels for blending.
func (c RGB) Vector() [3]float64 {
	return [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}

// Scale multiplies every channel by factor, which is expected to be in [0, 1].
func (c RGB) Scale(factor float64) RGB {
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

type RowCol struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// HoldState is one named entry of a StateTable.
type HoldState struct {
	Name  string `json:"name"`
	Color RGB    `json:"color"`
}

// StateTable is the ordered list of hold states. Index 0 is always "off".
// The same order drives both cycling and colour lookup.
type StateTable []HoldState

// Next returns the state that follows idx, wrapping from the last back to "off".
func (t StateTable) Next(idx int) int {
	return (idx + 1) % len(t)
}

func (t StateTable) Valid(idx int) bool {
	return idx >= 0 && idx < len(t)
}

// Color returns the colour for a state index, or Off for an unknown index.
func (t StateTable) Color(idx int) RGB {
	if !t.Valid(idx) {
		return Off
	}

	return t[idx].Color
}

func (t StateTable) Name(idx int) string {
	if !t.Valid(idx) {
		return ""
	}

	return t[idx].Name
}

func (t StateTable) Names() []string {
	names := make([]string, len(t))
	for i, s := range t {
		names[i] = s.Name
	}

	return names
}

var (
	// ClassicStates is the five state table: hands, feet, start and end holds.
	ClassicStates = StateTable{
		{Name: "off", Color: RGB{0, 0, 0}},
		{Name: "hand", Color: RGB{0, 0, 255}},
		{Name: "foot", Color: RGB{0, 255, 0}},
		{Name: "start", Color: RGB{255, 0, 0}},
		{Name: "end", Color: RGB{255, 215, 0}},
	}

	// CompactStates merges start and end into one state and drops feet.
	CompactStates = StateTable{
		{Name: "off", Color: RGB{0, 0, 0}},
		{Name: "hand", Color: RGB{0, 0, 255}},
		{Name: "start_end", Color: RGB{255, 0, 0}},
	}
)

// StateTableByName resolves the table names accepted in the config file.
func StateTableByName(name string) (StateTable, error) {
	switch name {
	case "classic", "":
		return ClassicStates, nil
	case "compact":
		return CompactStates, nil
	default:
		return nil, fmt.Errorf("unknown state table %q, expected classic or compact", name)
	}
}

// Boulder is a saved hold layout.
type Boulder struct {
	Difficulty string  `json:"difficulty" yaml:"difficulty" toml:"difficulty"`
	Holds      [][]int `json:"holds" yaml:"holds" toml:"holds"`
}

// Clone returns a deep copy, so stored and live grids never share rows.
func (b Boulder) Clone() Boulder {
	return Boulder{Difficulty: b.Difficulty, Holds: CloneCells(b.Holds)}
}

// MarkedHolds counts cells that are not "off".
func (b Boulder) MarkedHolds() int {
	count := 0

	for _, row := range b.Holds {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}

	return count
}

type BoulderSummary struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
}

func CloneCells(cells [][]int) [][]int {
	if cells == nil {
		return nil
	}

	result := make([][]int, len(cells))
	for i, row := range cells {
		result[i] = slices.Clone(row)
	}

	return result
}
