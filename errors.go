package rs485

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")

	// Direction control errors
	ErrLineControlLost = errors.New("failed to restore receive level on control line")
	ErrInvalidMode     = errors.New("invalid RS-485 mode")
	ErrInvalidPin      = errors.New("invalid RS-485 control pin")

	// ErrSignalsNotSupported is returned when the transport cannot report
	// modem line states.
	ErrSignalsNotSupported = errors.New("modem signal readback not supported by transport")
)
