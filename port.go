//go:build linux

package rs485

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// unixPort is the termios-backed Transport implementation
type unixPort struct {
	mu     sync.RWMutex
	fd     int
	config Config
	closed bool
}

// Ensure unixPort implements Transport at compile time
var _ Transport = (*unixPort)(nil)

// baudRateConstant converts an integer baud rate to the unix constant
func baudRateConstant(rate int) (uint32, error) {
	switch rate {
	case 50:
		return unix.B50, nil
	case 75:
		return unix.B75, nil
	case 110:
		return unix.B110, nil
	case 134:
		return unix.B134, nil
	case 150:
		return unix.B150, nil
	case 200:
		return unix.B200, nil
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 1800:
		return unix.B1800, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 500000:
		return unix.B500000, nil
	case 576000:
		return unix.B576000, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 1152000:
		return unix.B1152000, nil
	case 1500000:
		return unix.B1500000, nil
	case 2000000:
		return unix.B2000000, nil
	case 2500000:
		return unix.B2500000, nil
	case 3000000:
		return unix.B3000000, nil
	case 3500000:
		return unix.B3500000, nil
	case 4000000:
		return unix.B4000000, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// setModemLine raises or lowers a single TIOCM bit
func setModemLine(fd int, bit int, level bool) error {
	if level {
		return unix.IoctlSetInt(fd, unix.TIOCMBIS, bit)
	}
	return unix.IoctlSetInt(fd, unix.TIOCMBIC, bit)
}

// openPort opens the device and applies the termios configuration
func openPort(device string, config Config) (Transport, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		switch err {
		case unix.ENOENT, unix.ENXIO:
			return nil, ErrDeviceNotFound
		case unix.EACCES:
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("failed to open %s: %v", device, err)
	}

	if err := configurePort(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	// DTR is asserted by the driver on open; drop it again when the
	// caller asked to suppress it (avoids resetting DTR-wired boards).
	if !config.DTROnOpen {
		if err := setModemLine(fd, unix.TIOCM_DTR, false); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("failed to suppress DTR: %v", err)
		}
	}

	return &unixPort{fd: fd, config: config}, nil
}

// configurePort configures the serial port using clean unix package calls
func configurePort(fd int, config Config) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %v", err)
	}

	// Raw mode, receiver enabled, modem status lines ignored
	termios.Cflag = unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	// Data bits
	termios.Cflag &^= unix.CSIZE
	switch config.DataBits {
	case 5:
		termios.Cflag |= unix.CS5
	case 6:
		termios.Cflag |= unix.CS6
	case 7:
		termios.Cflag |= unix.CS7
	default:
		termios.Cflag |= unix.CS8
	}

	// Stop bits
	if config.StopBits == 2 {
		termios.Cflag |= unix.CSTOPB
	}

	// Parity
	switch config.Parity {
	case ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		termios.Cflag |= unix.PARENB
	}

	// Flow control
	switch config.FlowControl {
	case FlowControlSoftware:
		termios.Iflag |= unix.IXON | unix.IXOFF
	case FlowControlHardware:
		termios.Cflag |= unix.CRTSCTS
	}

	// Timeout: VMIN=0, VTIME in deciseconds from the normalized timeout
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = timeoutDeciseconds(config.ReadTimeout)

	baudRate, err := baudRateConstant(config.BaudRate)
	if err != nil {
		return err
	}
	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %v", err)
	}

	return nil
}

// timeoutDeciseconds converts a normalized timeout to a VTIME value.
// VTIME is an 8-bit decisecond counter, so anything beyond 25.5s saturates.
func timeoutDeciseconds(timeout time.Duration) uint8 {
	tenths := NormalizeTimeout(timeout).Milliseconds() / 100
	if tenths > 255 {
		tenths = 255
	}
	return uint8(tenths)
}

// Close closes the serial port
func (p *unixPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	err := unix.Close(p.fd)
	p.closed = true
	return err
}

// Read reads data from the serial port
func (p *unixPort) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Read(p.fd, buf)
}

// Write writes data to the serial port
func (p *unixPort) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Write(p.fd, data)
}

// Drain waits until all output written to the port has been transmitted
func (p *unixPort) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}

// Discard drops buffered data in the selected direction
func (p *unixPort) Discard(which Buffer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	arg := unix.TCIOFLUSH
	switch which {
	case BufferInput:
		arg = unix.TCIFLUSH
	case BufferOutput:
		arg = unix.TCOFLUSH
	}
	return unix.IoctlSetInt(p.fd, unix.TCFLSH, arg)
}

// SetRTS sets the RTS line level
func (p *unixPort) SetRTS(level bool) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return setModemLine(p.fd, unix.TIOCM_RTS, level)
}

// SetDTR sets the DTR line level
func (p *unixPort) SetDTR(level bool) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return setModemLine(p.fd, unix.TIOCM_DTR, level)
}

// SetReadTimeout reconfigures VTIME on the open descriptor
func (p *unixPort) SetReadTimeout(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	if timeout < 0 {
		return ErrInvalidConfig
	}

	termios, err := unix.IoctlGetTermios(p.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %v", err)
	}
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = timeoutDeciseconds(timeout)
	if err := unix.IoctlSetTermios(p.fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %v", err)
	}
	p.config.ReadTimeout = timeout
	return nil
}

// BytesAvailable reports how many bytes wait in the input buffer
func (p *unixPort) BytesAvailable() (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.IoctlGetInt(p.fd, unix.TIOCINQ)
}

// Fd exposes the raw descriptor for platform control calls
func (p *unixPort) Fd() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return -1
	}
	return p.fd
}

// GetModemSignals returns current state of all modem control signals
func (p *unixPort) GetModemSignals() (ModemSignals, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ModemSignals{}, ErrPortClosed
	}

	status, err := unix.IoctlGetInt(p.fd, unix.TIOCMGET)
	if err != nil {
		return ModemSignals{}, err
	}

	return ModemSignals{
		CTS: status&unix.TIOCM_CTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		RI:  status&unix.TIOCM_RI != 0,
		DCD: status&unix.TIOCM_CAR != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}, nil
}
