// Package color converts between colour spaces used by the LED compositor.
package color

import (
	"math"

	"github.com/dasdy/holdlight/model"
	"github.com/lucasb-eyer/go-colorful"
)

// HSVToRGB converts hue, saturation and value, each in [0, 1], to RGB bytes.
// A hue of 1 is the same as a hue of 0.
func HSVToRGB(hue, saturation, value float64) model.RGB {
	hue = math.Mod(clampUnit(hue), 1.0)
	c := colorful.Hsv(hue*360.0, clampUnit(saturation), clampUnit(value))

	return model.RGB{
		R: UnitToByte(c.R),
		G: UnitToByte(c.G),
		B: UnitToByte(c.B),
	}
}

// UnitToByte scales a [0, 1] channel to [0, 255], truncating.
// 1.0 maps to 255, never 256.
func UnitToByte(x float64) uint8 {
	return Clamp(255.0 * x)
}

// Clamp truncates a channel value and clamps it to [0, 255].
func Clamp(x float64) uint8 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return uint8(x)
	}
}

// FromVector clamps each float channel independently.
func FromVector(v [3]float64) model.RGB {
	return model.RGB{R: Clamp(v[0]), G: Clamp(v[1]), B: Clamp(v[2])}
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
