package rs485

import "time"

// FlowControl represents the flow control mode
type FlowControl int

const (
	FlowControlNone FlowControl = iota
	FlowControlSoftware
	FlowControlHardware
)

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// Config holds the configuration for a serial port
type Config struct {
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      Parity
	FlowControl FlowControl

	// ReadTimeout is the blocking-read timeout. Zero means block
	// indefinitely. The value is normalized to the platform timer
	// granularity on open, see NormalizeTimeout.
	ReadTimeout time.Duration

	// DTROnOpen asserts DTR when the port is opened. Disable to avoid
	// resetting DTR-wired boards such as Arduinos.
	DTROnOpen bool

	// Mode and ControlPin select the RS-485 direction control strategy.
	Mode       Mode
	ControlPin Pin

	// RS485 carries the extended timing and polarity attributes.
	RS485 RS485Config
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		DataBits:    8,
		StopBits:    1,
		Parity:      ParityNone,
		FlowControl: FlowControlNone,
		ReadTimeout: 2500 * time.Millisecond,
		DTROnOpen:   true,
		Mode:        ModeDisabled,
		ControlPin:  PinRTS,
		RS485:       DefaultRS485Config(),
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := baudRateConstant(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if bits < 5 || bits > 8 {
			return ErrInvalidConfig
		}
		c.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		if parity < ParityNone || parity > ParityEven {
			return ErrInvalidConfig
		}
		c.Parity = parity
		return nil
	}
}

// WithFlowControl sets the flow control mode
func WithFlowControl(fc FlowControl) Option {
	return func(c *Config) error {
		if fc < FlowControlNone || fc > FlowControlHardware {
			return ErrInvalidConfig
		}
		c.FlowControl = fc
		return nil
	}
}

// WithReadTimeout sets the blocking-read timeout. Zero blocks
// indefinitely. Values are rounded up to the platform timer granularity
// when the port is opened (see NormalizeTimeout); negative values are
// rejected.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return ErrInvalidConfig
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithoutDTROnOpen suppresses the DTR assertion normally performed when
// the port is opened
func WithoutDTROnOpen() Option {
	return func(c *Config) error {
		c.DTROnOpen = false
		return nil
	}
}

// WithMode selects the RS-485 direction control mode and pin
func WithMode(mode Mode, pin Pin) Option {
	return func(c *Config) error {
		if mode < ModeDisabled || mode > ModeManual {
			return ErrInvalidMode
		}
		if pin < PinRTS || pin > PinDTR {
			return ErrInvalidPin
		}
		c.Mode = mode
		c.ControlPin = pin
		return nil
	}
}

// WithRS485Config sets the extended timing and polarity attributes
func WithRS485Config(cfg RS485Config) Option {
	return func(c *Config) error {
		if cfg.DelayBeforeSend < 0 || cfg.DelayAfterSend < 0 {
			return ErrInvalidConfig
		}
		c.RS485 = cfg
		return nil
	}
}
