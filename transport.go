package rs485

import "time"

// Buffer identifies which port buffer a Discard call clears.
type Buffer int

const (
	BufferInput Buffer = iota
	BufferOutput
	BufferBoth
)

// Transport is the raw byte-stream endpoint a Controller drives. It is
// satisfied by the termios-backed port returned from openPort and by test
// doubles. All calls are synchronous and block up to the configured read
// timeout.
type Transport interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)

	// Drain blocks until all buffered output has been transmitted by the
	// hardware.
	Drain() error
	// Discard drops untransmitted output and/or unread input.
	Discard(which Buffer) error

	// SetRTS and SetDTR drive the modem control lines independently.
	SetRTS(level bool) error
	SetDTR(level bool) error

	// SetReadTimeout reconfigures the blocking-read timeout. Zero blocks
	// indefinitely.
	SetReadTimeout(timeout time.Duration) error
	// BytesAvailable reports the number of bytes waiting in the input
	// buffer.
	BytesAvailable() (int, error)

	// Fd exposes the underlying descriptor for platform control calls, or
	// a negative value when there is none.
	Fd() int

	Close() error
}

// ModemSignals represents modem control signal states
type ModemSignals struct {
	CTS bool // Clear To Send
	DSR bool // Data Set Ready
	RI  bool // Ring Indicator
	DCD bool // Data Carrier Detect
	RTS bool // Request To Send
	DTR bool // Data Terminal Ready
}

// SignalReader is implemented by transports that can report the state of
// all modem control lines at once.
type SignalReader interface {
	GetModemSignals() (ModemSignals, error)
}
