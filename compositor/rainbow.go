package compositor

import "github.com/dasdy/holdlight/color"

// Rainbow colours the LED grid with a diagonal hue sweep. It is a boot-time
// self test and never looks at the hold grid.
func Rainbow(ledRows, ledCols int) Frame {
	frame := NewFrame(ledRows, ledCols)
	norm := float64(ledRows*ledRows + ledCols*ledCols)

	if norm == 0 {
		return frame
	}

	for r := range ledRows {
		for c := range ledCols {
			// inner product with the diagonal vector
			hue := float64(r*ledRows+c*ledCols) / norm
			frame.Set(r, c, color.HSVToRGB(hue, 1, 1))
		}
	}

	return frame
}
