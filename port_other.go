//go:build !linux

package rs485

import "errors"

// ErrUnsupportedPlatform is returned by Open on platforms without a
// transport implementation.
var ErrUnsupportedPlatform = errors.New("serial transport not implemented on this platform")

func baudRateConstant(rate int) (uint32, error) {
	switch rate {
	case 50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800,
		9600, 19200, 38400, 57600, 115200, 230400:
		return uint32(rate), nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

func openPort(device string, config Config) (Transport, error) {
	return nil, ErrUnsupportedPlatform
}
