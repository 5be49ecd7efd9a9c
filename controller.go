package rs485

import (
	"fmt"
	"time"
)

// kernelDriver abstracts in-kernel half-duplex direction switching. Two
// implementations exist: the Linux ioctl adapter and a stub reporting no
// support everywhere else. Enable must verify by readback that the driver
// really accepted the configuration; Disable is best-effort.
type kernelDriver interface {
	Supported() bool
	Enable(fd int, cfg RS485Config) bool
	Disable(fd int) bool
}

// Controller wraps a Transport with RS-485 direction control state and
// performs every write through a turnaround-safe path.
//
// A Controller exclusively owns its Transport for its lifetime and has no
// internal locking: concurrent calls to Write, SetMode or SetRS485Config
// on the same Controller must be serialized by the caller.
type Controller struct {
	transport Transport
	kernel    kernelDriver

	mode  Mode
	pin   Pin
	rs485 RS485Config

	// kernelActive is true only after a kernel enable call succeeded and
	// the readback confirmed the enabled bit.
	kernelActive bool
}

// Open opens a serial port and returns a direction controller wrapping it.
func Open(device string, opts ...Option) (*Controller, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	t, err := openPort(device, config)
	if err != nil {
		return nil, err
	}

	c, err := NewController(t, config)
	if err != nil {
		t.Close()
		return nil, err
	}
	return c, nil
}

// NewController wraps an already open Transport. The RS-485 attributes and
// mode from config are adopted immediately. The controller takes ownership
// of the transport; the caller must not use it directly afterward.
func NewController(t Transport, config Config) (*Controller, error) {
	c := &Controller{
		transport: t,
		kernel:    newKernelDriver(),
		rs485:     config.RS485,
	}
	if err := c.SetMode(config.Mode, config.ControlPin); err != nil {
		return nil, err
	}
	return c, nil
}

// SetMode adopts a direction control mode and pin.
//
// Any previously active kernel delegation is disabled first (best-effort).
// Kernel delegation is attempted only for ModeAutomatic with PinRTS; when
// the attempt fails the controller silently falls back to manual toggling,
// which is by design not an error.
func (c *Controller) SetMode(mode Mode, pin Pin) error {
	if mode < ModeDisabled || mode > ModeManual {
		return ErrInvalidMode
	}
	if pin < PinRTS || pin > PinDTR {
		return ErrInvalidPin
	}

	if c.kernelActive {
		c.kernel.Disable(c.transport.Fd())
		c.kernelActive = false
	}

	c.mode = mode
	c.pin = pin

	if mode == ModeAutomatic && pin == PinRTS {
		if c.kernel.Enable(c.transport.Fd(), c.rs485) {
			c.kernelActive = true
		}
	}
	return nil
}

// SetRS485Config stores the extended timing and polarity attributes, then
// re-runs mode adoption so they take effect immediately.
func (c *Controller) SetRS485Config(mode Mode, pin Pin, cfg RS485Config) error {
	if cfg.DelayBeforeSend < 0 || cfg.DelayAfterSend < 0 {
		return ErrInvalidConfig
	}
	c.rs485 = cfg
	return c.SetMode(mode, pin)
}

// SetDelays updates the stored turnaround delays. If kernel delegation is
// active the kernel descriptor is re-issued so the new delays apply.
func (c *Controller) SetDelays(before, after time.Duration) error {
	if before < 0 || after < 0 {
		return ErrInvalidConfig
	}
	c.rs485.DelayBeforeSend = before
	c.rs485.DelayAfterSend = after

	if c.kernelActive {
		c.kernel.Enable(c.transport.Fd(), c.rs485)
	}
	return nil
}

// Mode returns the adopted direction control mode.
func (c *Controller) Mode() Mode { return c.mode }

// ControlPin returns the selected control pin.
func (c *Controller) ControlPin() Pin { return c.pin }

// RS485Settings returns the stored extended attributes, independent of
// whether kernel delegation is active.
func (c *Controller) RS485Settings() RS485Config { return c.rs485 }

// KernelActive reports whether verified in-kernel direction switching is
// handling the line. False means writes toggle the pin in software (or not
// at all, in ModeDisabled).
func (c *Controller) KernelActive() bool { return c.kernelActive }

// setPin drives the selected control pin to the given level.
func (c *Controller) setPin(level bool) error {
	if c.pin == PinDTR {
		return c.transport.SetDTR(level)
	}
	return c.transport.SetRTS(level)
}

// Write sends data through the turnaround-safe path and returns the number
// of bytes accepted.
//
// In ModeDisabled the write passes straight through. With kernel
// delegation active, the write is followed by a drain: the kernel turns
// the line around once the UART empties, so data must have left the
// software buffer before Write returns. Otherwise the selected pin is
// driven to its transmit level, the data is written and drained, and the
// receive level is restored even when the write or drain failed. A failed
// restore is reported in preference to a failed write, as it means the bus
// is stuck in transmit.
//
// The stored turnaround delays are forwarded to the kernel descriptor but
// are not slept on in the manual path; there they describe timing intent
// only.
func (c *Controller) Write(data []byte) (int, error) {
	switch {
	case c.mode == ModeDisabled:
		return c.transport.Write(data)

	case c.mode == ModeAutomatic && c.kernelActive:
		n, err := c.transport.Write(data)
		if derr := c.transport.Drain(); err == nil {
			err = derr
		}
		return n, err

	default:
		// Manual toggling: transmit level is the polarity's active level.
		txLevel := c.rs485.ActiveHigh
		if err := c.setPin(txLevel); err != nil {
			return 0, err
		}

		n, err := c.transport.Write(data)
		if derr := c.transport.Drain(); err == nil {
			err = derr
		}

		// The receive level must be restored no matter what happened
		// above; losing line control outranks a failed write.
		if rerr := c.setPin(!txLevel); rerr != nil {
			return n, fmt.Errorf("%w: %v", ErrLineControlLost, rerr)
		}
		return n, err
	}
}

// Read reads from the owned transport.
func (c *Controller) Read(buf []byte) (int, error) {
	return c.transport.Read(buf)
}

// Drain blocks until buffered output has been transmitted.
func (c *Controller) Drain() error {
	return c.transport.Drain()
}

// Discard drops buffered data in the selected direction.
func (c *Controller) Discard(which Buffer) error {
	return c.transport.Discard(which)
}

// BytesAvailable reports bytes waiting in the input buffer.
func (c *Controller) BytesAvailable() (int, error) {
	return c.transport.BytesAvailable()
}

// SetRTS drives the RTS line directly, outside the write path.
func (c *Controller) SetRTS(level bool) error {
	return c.transport.SetRTS(level)
}

// SetDTR drives the DTR line directly, outside the write path.
func (c *Controller) SetDTR(level bool) error {
	return c.transport.SetDTR(level)
}

// SetReadTimeout reconfigures the transport's blocking-read timeout.
func (c *Controller) SetReadTimeout(timeout time.Duration) error {
	return c.transport.SetReadTimeout(timeout)
}

// ModemSignals reports the modem line states when the transport supports
// reading them.
func (c *Controller) ModemSignals() (ModemSignals, error) {
	sr, ok := c.transport.(SignalReader)
	if !ok {
		return ModemSignals{}, ErrSignalsNotSupported
	}
	return sr.GetModemSignals()
}

// Close releases the owned transport. The controller must not be used
// afterward.
func (c *Controller) Close() error {
	return c.transport.Close()
}
