package led

import (
	"fmt"
	"io"

	"github.com/dasdy/holdlight/model"
)

// Adalight writes frames using the Adalight serial protocol: the magic word
// "Ada", the LED count minus one as two bytes, a checksum, then RGB triples.
type Adalight struct {
	w   io.WriteCloser
	buf []byte
}

func NewAdalight(w io.WriteCloser) *Adalight {
	return &Adalight{w: w}
}

// OpenSerial opens path and speaks Adalight over it.
func OpenSerial(path string, baudRate int) (*Adalight, error) {
	port, err := OpenPort(path, baudRate)
	if err != nil {
		return nil, err
	}

	return NewAdalight(port), nil
}

// AdalightFrame encodes pixels into dst, growing it when needed.
func AdalightFrame(dst []byte, pixels []model.RGB) []byte {
	size := 6 + 3*len(pixels)
	if cap(dst) < size {
		dst = make([]byte, size)
	}

	dst = dst[:size]

	count := len(pixels) - 1
	hi, lo := byte(count>>8), byte(count)

	copy(dst, "Ada")
	dst[3] = hi
	dst[4] = lo
	dst[5] = hi ^ lo ^ 0x55

	for i, p := range pixels {
		dst[6+3*i] = p.R
		dst[7+3*i] = p.G
		dst[8+3*i] = p.B
	}

	return dst
}

func (a *Adalight) Show(pixels []model.RGB) error {
	if len(pixels) == 0 {
		return nil
	}

	a.buf = AdalightFrame(a.buf, pixels)

	if _, err := a.w.Write(a.buf); err != nil {
		return fmt.Errorf("could not write adalight frame: %w", err)
	}

	return nil
}

func (a *Adalight) Close() error {
	if err := a.w.Close(); err != nil {
		return fmt.Errorf("could not close serial port: %w", err)
	}

	return nil
}
