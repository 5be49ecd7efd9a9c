package ffi

import (
	"time"

	"github.com/nemecec/rs485"
)

// Context carries the per-execution-context error slot. Create one per
// thread of the embedding runtime; see the package documentation.
type Context struct {
	lastErr *errorContext
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Small-integer encodings of the caller-facing contract.
const (
	ModeDisabled = 0
	ModeAuto     = 1
	ModeManual   = 2

	PinRTS = 0
	PinDTR = 1

	ParityNone = 0
	ParityOdd  = 1
	ParityEven = 2

	FlowNone     = 0
	FlowSoftware = 1
	FlowHardware = 2
)

func decodeMode(mode int) (rs485.Mode, bool) {
	switch mode {
	case ModeDisabled:
		return rs485.ModeDisabled, true
	case ModeAuto:
		return rs485.ModeAutomatic, true
	case ModeManual:
		return rs485.ModeManual, true
	}
	return 0, false
}

func decodePin(pin int) (rs485.Pin, bool) {
	switch pin {
	case PinRTS:
		return rs485.PinRTS, true
	case PinDTR:
		return rs485.PinDTR, true
	}
	return 0, false
}

func decodeParity(parity int) (rs485.Parity, bool) {
	switch parity {
	case ParityNone:
		return rs485.ParityNone, true
	case ParityOdd:
		return rs485.ParityOdd, true
	case ParityEven:
		return rs485.ParityEven, true
	}
	return 0, false
}

func decodeFlow(fc int) (rs485.FlowControl, bool) {
	switch fc {
	case FlowNone:
		return rs485.FlowControlNone, true
	case FlowSoftware:
		return rs485.FlowControlSoftware, true
	case FlowHardware:
		return rs485.FlowControlHardware, true
	}
	return 0, false
}

// get resolves a handle, recording a diagnostic when it is invalid.
func (c *Context) get(h Handle, op string) (*rs485.Controller, bool) {
	if h == 0 {
		c.recordf("%s failed: port handle is null", op)
		return nil, false
	}
	ctrl, ok := table.get(h)
	if !ok {
		c.recordf("%s failed: invalid port handle %d", op, h)
		return nil, false
	}
	return ctrl, true
}

// Open opens a serial port with RS-485 direction control and returns its
// handle, or 0 on failure.
func (c *Context) Open(portName string, baud, dataBits, stopBits, parity, timeoutMS, mode, pin int) Handle {
	return c.open(portName, baud, dataBits, stopBits, parity, FlowNone, true,
		timeoutMS, mode, pin, rs485.DefaultRS485Config())
}

// OpenExtended opens a serial port with the full extended configuration:
// flow control, DTR-on-open suppression, polarity, receive-during-transmit,
// bus termination and turnaround delays in microseconds. Returns the
// handle, or 0 on failure.
func (c *Context) OpenExtended(portName string, baud, dataBits, stopBits, parity, flowControl int,
	dtrOnOpen bool, timeoutMS, mode, pin int,
	activeHigh, rxDuringTx, termination bool, delayBeforeUS, delayAfterUS int) Handle {
	if delayBeforeUS < 0 || delayAfterUS < 0 {
		c.recordf("open failed: negative RS-485 delay")
		return 0
	}
	return c.open(portName, baud, dataBits, stopBits, parity, flowControl, dtrOnOpen,
		timeoutMS, mode, pin, rs485.RS485Config{
			ActiveHigh:      activeHigh,
			RxDuringTx:      rxDuringTx,
			Termination:     termination,
			DelayBeforeSend: time.Duration(delayBeforeUS) * time.Microsecond,
			DelayAfterSend:  time.Duration(delayAfterUS) * time.Microsecond,
		})
}

func (c *Context) open(portName string, baud, dataBits, stopBits, parity, flowControl int,
	dtrOnOpen bool, timeoutMS, mode, pin int, rsCfg rs485.RS485Config) Handle {
	if portName == "" {
		c.recordf("open failed: empty port name")
		return 0
	}
	m, ok := decodeMode(mode)
	if !ok {
		c.recordf("open failed: invalid RS-485 mode %d", mode)
		return 0
	}
	p, ok := decodePin(pin)
	if !ok {
		c.recordf("open failed: invalid RS-485 pin %d", pin)
		return 0
	}
	par, ok := decodeParity(parity)
	if !ok {
		c.recordf("open failed: invalid parity %d", parity)
		return 0
	}
	fc, ok := decodeFlow(flowControl)
	if !ok {
		c.recordf("open failed: invalid flow control %d", flowControl)
		return 0
	}
	if timeoutMS < 0 {
		c.recordf("open failed: negative timeout %d ms", timeoutMS)
		return 0
	}

	opts := []rs485.Option{
		rs485.WithBaudRate(baud),
		rs485.WithDataBits(dataBits),
		rs485.WithStopBits(stopBits),
		rs485.WithParity(par),
		rs485.WithFlowControl(fc),
		rs485.WithReadTimeout(time.Duration(timeoutMS) * time.Millisecond),
		rs485.WithMode(m, p),
		rs485.WithRS485Config(rsCfg),
	}
	if !dtrOnOpen {
		opts = append(opts, rs485.WithoutDTROnOpen())
	}

	ctrl, err := rs485.Open(portName, opts...)
	if err != nil {
		c.recordf("failed to open port: %v", err)
		return 0
	}
	return table.put(ctrl)
}

// Write sends length bytes of data starting at offset through the
// direction-controlled write path. Returns the byte count accepted, or -1
// on failure.
func (c *Context) Write(h Handle, data []byte, offset, length int) int {
	ctrl, ok := c.get(h, "write")
	if !ok {
		return -1
	}
	if offset < 0 || length < 0 || offset > len(data) || length > len(data)-offset {
		c.recordf("write failed: range [%d,+%d] outside buffer of %d bytes", offset, length, len(data))
		return -1
	}
	n, err := ctrl.Write(data[offset : offset+length])
	if err != nil {
		c.recordf("write failed: %v", err)
		return -1
	}
	return n
}

// Read reads up to length bytes into buffer at offset. Returns the byte
// count read (zero on timeout), or -1 on failure.
func (c *Context) Read(h Handle, buffer []byte, offset, length int) int {
	ctrl, ok := c.get(h, "read")
	if !ok {
		return -1
	}
	if offset < 0 || length < 0 || offset > len(buffer) || length > len(buffer)-offset {
		c.recordf("read failed: range [%d,+%d] outside buffer of %d bytes", offset, length, len(buffer))
		return -1
	}
	n, err := ctrl.Read(buffer[offset : offset+length])
	if err != nil {
		c.recordf("read failed: %v", err)
		return -1
	}
	return n
}

// BytesAvailable reports bytes waiting in the input buffer; 0 on failure.
func (c *Context) BytesAvailable(h Handle) int {
	ctrl, ok := c.get(h, "bytes available")
	if !ok {
		return 0
	}
	n, err := ctrl.BytesAvailable()
	if err != nil {
		c.recordf("failed to get bytes available: %v", err)
		return 0
	}
	return n
}

// Flush blocks until buffered output has been transmitted.
func (c *Context) Flush(h Handle) bool {
	ctrl, ok := c.get(h, "flush")
	if !ok {
		return false
	}
	if err := ctrl.Drain(); err != nil {
		c.recordf("flush failed: %v", err)
		return false
	}
	return true
}

// ClearInput discards unread input.
func (c *Context) ClearInput(h Handle) bool {
	return c.clear(h, rs485.BufferInput, "clear input")
}

// ClearOutput discards untransmitted output.
func (c *Context) ClearOutput(h Handle) bool {
	return c.clear(h, rs485.BufferOutput, "clear output")
}

// ClearAll discards both buffers.
func (c *Context) ClearAll(h Handle) bool {
	return c.clear(h, rs485.BufferBoth, "clear all")
}

func (c *Context) clear(h Handle, which rs485.Buffer, op string) bool {
	ctrl, ok := c.get(h, op)
	if !ok {
		return false
	}
	if err := ctrl.Discard(which); err != nil {
		c.recordf("%s failed: %v", op, err)
		return false
	}
	return true
}

// SetTimeout reconfigures the blocking-read timeout in milliseconds. Zero
// blocks indefinitely.
func (c *Context) SetTimeout(h Handle, timeoutMS int) bool {
	ctrl, ok := c.get(h, "set timeout")
	if !ok {
		return false
	}
	if timeoutMS < 0 {
		c.recordf("set timeout failed: negative timeout %d ms", timeoutMS)
		return false
	}
	if err := ctrl.SetReadTimeout(time.Duration(timeoutMS) * time.Millisecond); err != nil {
		c.recordf("set timeout failed: %v", err)
		return false
	}
	return true
}

// SetRTS drives the RTS line directly, for callers doing fully manual
// control outside the built-in write path.
func (c *Context) SetRTS(h Handle, level bool) bool {
	ctrl, ok := c.get(h, "set RTS")
	if !ok {
		return false
	}
	if err := ctrl.SetRTS(level); err != nil {
		c.recordf("set RTS failed: %v", err)
		return false
	}
	return true
}

// SetDTR drives the DTR line directly.
func (c *Context) SetDTR(h Handle, level bool) bool {
	ctrl, ok := c.get(h, "set DTR")
	if !ok {
		return false
	}
	if err := ctrl.SetDTR(level); err != nil {
		c.recordf("set DTR failed: %v", err)
		return false
	}
	return true
}

// SetRS485Config reconfigures direction control at runtime. An enabled
// configuration adopts automatic mode with the given pin; disabled drops
// direction management entirely. Delays are in microseconds.
func (c *Context) SetRS485Config(h Handle, enabled bool, pin int,
	activeHigh, rxDuringTx, termination bool, delayBeforeUS, delayAfterUS int) bool {
	ctrl, ok := c.get(h, "set RS-485 config")
	if !ok {
		return false
	}
	p, ok := decodePin(pin)
	if !ok {
		c.recordf("set RS-485 config failed: invalid pin %d", pin)
		return false
	}
	if delayBeforeUS < 0 || delayAfterUS < 0 {
		c.recordf("set RS-485 config failed: negative delay")
		return false
	}

	mode := rs485.ModeDisabled
	if enabled {
		mode = rs485.ModeAutomatic
	}

	err := ctrl.SetRS485Config(mode, p, rs485.RS485Config{
		ActiveHigh:      activeHigh,
		RxDuringTx:      rxDuringTx,
		Termination:     termination,
		DelayBeforeSend: time.Duration(delayBeforeUS) * time.Microsecond,
		DelayAfterSend:  time.Duration(delayAfterUS) * time.Microsecond,
	})
	if err != nil {
		c.recordf("failed to set RS-485 config: %v", err)
		return false
	}
	return true
}

// SetRS485Delays updates the turnaround delays in microseconds. On
// platforms without kernel delegation the new values are stored for later
// use and the call is a no-op success.
func (c *Context) SetRS485Delays(h Handle, delayBeforeUS, delayAfterUS int) bool {
	ctrl, ok := c.get(h, "set RS-485 delays")
	if !ok {
		return false
	}
	if delayBeforeUS < 0 || delayAfterUS < 0 {
		c.recordf("set RS-485 delays failed: negative delay")
		return false
	}
	if err := ctrl.SetDelays(
		time.Duration(delayBeforeUS)*time.Microsecond,
		time.Duration(delayAfterUS)*time.Microsecond,
	); err != nil {
		c.recordf("set RS-485 delays failed: %v", err)
		return false
	}
	return true
}

// IsKernelRS485Active reports whether verified in-kernel direction
// switching is handling the line.
func (c *Context) IsKernelRS485Active(h Handle) bool {
	ctrl, ok := table.get(h)
	if !ok {
		return false
	}
	return ctrl.KernelActive()
}

// ListPorts enumerates serial devices with their classification flags.
// Returns nil on failure.
func (c *Context) ListPorts() []rs485.PortInfo {
	ports, err := rs485.ListPorts()
	if err != nil {
		c.recordf("failed to list ports: %v", err)
		return nil
	}
	return ports
}

// Close releases the port behind the handle. Using the handle afterward
// fails validity checking.
func (c *Context) Close(h Handle) {
	if ctrl, ok := table.remove(h); ok {
		ctrl.Close()
	}
}
