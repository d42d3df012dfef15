package led

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"

	"go.bug.st/serial"
)

var controllerPattern = regexp.MustCompile(`^(tty\.usbmodem|tty\.usbserial|ttyUSB|ttyACM)\w*$`)

// LooksLikeController reports whether a device path could be a USB serial LED
// controller (an Arduino running an Adalight sketch, for example).
func LooksLikeController(devicePath string) bool {
	dir, name := filepath.Split(devicePath)
	if dir != "/dev/" {
		return false
	}

	return controllerPattern.MatchString(name)
}

// AvailablePorts lists serial ports, putting likely LED controllers first.
func AvailablePorts() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not get list of serial ports: %w", err)
	}

	slog.Debug("serial devices", "names", names)

	slices.SortStableFunc(names, func(a, b string) int {
		switch la, lb := LooksLikeController(a), LooksLikeController(b); {
		case la && !lb:
			return -1
		case lb && !la:
			return 1
		default:
			return 0
		}
	})

	return names, nil
}

// OpenPort opens a serial port for writing frames.
func OpenPort(path string, baudRate int) (io.WriteCloser, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baudRate,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s: %w", path, err)
	}

	return port, nil
}
