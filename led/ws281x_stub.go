//go:build !ws281x

package led

import "errors"

func openWS281x(_, _ int) (Driver, error) {
	return nil, errors.New("built without ws281x support, rebuild with -tags ws281x")
}
