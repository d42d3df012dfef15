package compositor

import "github.com/dasdy/holdlight/model"

// Frame is one colour per LED position, addressed by LED row and column.
type Frame struct {
	pixels []model.RGB
	rows   int
	cols   int
}

func NewFrame(rows, cols int) Frame {
	return Frame{pixels: make([]model.RGB, rows*cols), rows: rows, cols: cols}
}

func (f Frame) Rows() int { return f.rows }

func (f Frame) Cols() int { return f.cols }

func (f Frame) Contains(row, col int) bool {
	return row >= 0 && row < f.rows && col >= 0 && col < f.cols
}

// At returns Off for positions outside the frame.
func (f Frame) At(row, col int) model.RGB {
	if !f.Contains(row, col) {
		return model.Off
	}

	return f.pixels[row*f.cols+col]
}

// Set ignores positions outside the frame.
func (f Frame) Set(row, col int, c model.RGB) {
	if !f.Contains(row, col) {
		return
	}

	f.pixels[row*f.cols+col] = c
}

func (f Frame) Fill(c model.RGB) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// Lit counts positions that are not off.
func (f Frame) Lit() int {
	count := 0

	for _, p := range f.pixels {
		if !p.IsOff() {
			count++
		}
	}

	return count
}

// Grid returns the frame as nested rows, used for JSON output.
func (f Frame) Grid() [][]model.RGB {
	result := make([][]model.RGB, f.rows)
	for r := range result {
		result[r] = make([]model.RGB, f.cols)
		copy(result[r], f.pixels[r*f.cols:(r+1)*f.cols])
	}

	return result
}

func (f Frame) Clone() Frame {
	pixels := make([]model.RGB, len(f.pixels))
	copy(pixels, f.pixels)

	return Frame{pixels: pixels, rows: f.rows, cols: f.cols}
}
