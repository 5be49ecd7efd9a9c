package rs485

import "time"

// Mode selects how transceiver direction is managed around writes.
type Mode int

const (
	// ModeDisabled performs no direction management; writes pass straight
	// through to the port.
	ModeDisabled Mode = iota
	// ModeAutomatic prefers kernel-level direction switching where the
	// platform and selected pin support it, silently falling back to
	// manual toggling otherwise.
	ModeAutomatic
	// ModeManual always toggles the control line in software, even on
	// platforms with kernel support.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeAutomatic:
		return "automatic"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Pin selects the hardware signal toggled in manual mode. Kernel
// delegation is only ever attempted for RTS; DTR-driven direction control
// is always manual.
type Pin int

const (
	PinRTS Pin = iota
	PinDTR
)

func (p Pin) String() string {
	switch p {
	case PinRTS:
		return "RTS"
	case PinDTR:
		return "DTR"
	default:
		return "unknown"
	}
}

// RS485Config holds the extended timing and polarity attributes of a
// direction controller. The attributes are stored regardless of the active
// mode so that a later mode switch reuses the same timing intent.
type RS485Config struct {
	// ActiveHigh means asserting the control pin signals "transmitting".
	ActiveHigh bool
	// RxDuringTx keeps the receiver enabled while transmitting.
	RxDuringTx bool
	// Termination enables bus termination where the hardware supports it.
	Termination bool
	// DelayBeforeSend is the hold time between asserting the line and the
	// first data bit. Sub-millisecond precision is lost when forwarded to
	// the kernel.
	DelayBeforeSend time.Duration
	// DelayAfterSend is the hold time between the last data bit and
	// releasing the line.
	DelayAfterSend time.Duration
}

// DefaultRS485Config returns the attribute set applied when none is given:
// active-high RTS, no receive-during-transmit, no termination, no delays.
func DefaultRS485Config() RS485Config {
	return RS485Config{ActiveHigh: true}
}
