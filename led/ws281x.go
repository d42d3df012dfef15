//go:build ws281x

package led

import (
	"fmt"

	"github.com/dasdy/holdlight/model"
	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
)

// WS281x drives a strip wired straight to a Raspberry Pi GPIO pin.
type WS281x struct {
	dev *ws2811.WS2811
}

func openWS281x(pin, numLEDs int) (Driver, error) {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = pin
	opt.Channels[0].LedCount = numLEDs
	// brightness is applied by Strip
	opt.Channels[0].Brightness = 255

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("could not create ws281x device: %w", err)
	}

	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize ws281x device: %w", err)
	}

	return &WS281x{dev: dev}, nil
}

func (w *WS281x) Show(pixels []model.RGB) error {
	leds := w.dev.Leds(0)
	for i := range leds {
		if i >= len(pixels) {
			leds[i] = 0
			continue
		}

		p := pixels[i]
		leds[i] = uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
	}

	if err := w.dev.Render(); err != nil {
		return fmt.Errorf("could not render ws281x frame: %w", err)
	}

	return nil
}

func (w *WS281x) Close() error {
	w.dev.Fini()

	return nil
}
