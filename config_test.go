package rs485

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaudRate != 115200 {
		t.Errorf("Expected BaudRate 115200, got %d", config.BaudRate)
	}

	if config.DataBits != 8 {
		t.Errorf("Expected DataBits 8, got %d", config.DataBits)
	}

	if config.StopBits != 1 {
		t.Errorf("Expected StopBits 1, got %d", config.StopBits)
	}

	if config.Parity != ParityNone {
		t.Errorf("Expected Parity None, got %v", config.Parity)
	}

	if config.FlowControl != FlowControlNone {
		t.Errorf("Expected FlowControl None, got %v", config.FlowControl)
	}

	if !config.DTROnOpen {
		t.Error("Expected DTR asserted on open by default")
	}

	if config.Mode != ModeDisabled {
		t.Errorf("Expected ModeDisabled, got %v", config.Mode)
	}

	if !config.RS485.ActiveHigh {
		t.Error("Expected active-high polarity by default")
	}
}

func TestFunctionalOptions(t *testing.T) {
	config := DefaultConfig()

	err := WithBaudRate(9600)(&config)
	if err != nil {
		t.Errorf("WithBaudRate failed: %v", err)
	}
	if config.BaudRate != 9600 {
		t.Errorf("Expected BaudRate 9600, got %d", config.BaudRate)
	}

	err = WithDataBits(7)(&config)
	if err != nil {
		t.Errorf("WithDataBits failed: %v", err)
	}
	if config.DataBits != 7 {
		t.Errorf("Expected DataBits 7, got %d", config.DataBits)
	}

	err = WithStopBits(2)(&config)
	if err != nil {
		t.Errorf("WithStopBits failed: %v", err)
	}
	if config.StopBits != 2 {
		t.Errorf("Expected StopBits 2, got %d", config.StopBits)
	}

	err = WithParity(ParityEven)(&config)
	if err != nil {
		t.Errorf("WithParity failed: %v", err)
	}
	if config.Parity != ParityEven {
		t.Errorf("Expected Parity Even, got %v", config.Parity)
	}

	err = WithFlowControl(FlowControlHardware)(&config)
	if err != nil {
		t.Errorf("WithFlowControl failed: %v", err)
	}
	if config.FlowControl != FlowControlHardware {
		t.Errorf("Expected FlowControl Hardware, got %v", config.FlowControl)
	}

	err = WithMode(ModeAutomatic, PinDTR)(&config)
	if err != nil {
		t.Errorf("WithMode failed: %v", err)
	}
	if config.Mode != ModeAutomatic || config.ControlPin != PinDTR {
		t.Errorf("Expected automatic/DTR, got %v/%v", config.Mode, config.ControlPin)
	}

	err = WithoutDTROnOpen()(&config)
	if err != nil {
		t.Errorf("WithoutDTROnOpen failed: %v", err)
	}
	if config.DTROnOpen {
		t.Error("Expected DTROnOpen false")
	}
}

func TestWithRS485Config(t *testing.T) {
	config := DefaultConfig()

	cfg := RS485Config{
		ActiveHigh:      false,
		RxDuringTx:      true,
		DelayBeforeSend: 100 * time.Microsecond,
		DelayAfterSend:  200 * time.Microsecond,
	}
	if err := WithRS485Config(cfg)(&config); err != nil {
		t.Errorf("WithRS485Config failed: %v", err)
	}
	if config.RS485 != cfg {
		t.Errorf("RS485 config = %+v, want %+v", config.RS485, cfg)
	}

	bad := RS485Config{DelayBeforeSend: -time.Millisecond}
	if err := WithRS485Config(bad)(&config); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig for negative delay, got %v", err)
	}
}

func TestInvalidBaudRate(t *testing.T) {
	config := DefaultConfig()
	err := WithBaudRate(123456)(&config)
	if err == nil {
		t.Error("Expected error for invalid baud rate")
	}
	if err != ErrInvalidBaudRate {
		t.Errorf("Expected ErrInvalidBaudRate, got %v", err)
	}
}

func TestInvalidDataBits(t *testing.T) {
	config := DefaultConfig()
	err := WithDataBits(9)(&config)
	if err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestInvalidStopBits(t *testing.T) {
	config := DefaultConfig()
	err := WithStopBits(3)(&config)
	if err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestInvalidModeAndPin(t *testing.T) {
	config := DefaultConfig()
	if err := WithMode(Mode(5), PinRTS)(&config); err != ErrInvalidMode {
		t.Errorf("Expected ErrInvalidMode, got %v", err)
	}
	if err := WithMode(ModeManual, Pin(5))(&config); err != ErrInvalidPin {
		t.Errorf("Expected ErrInvalidPin, got %v", err)
	}
}

func TestNegativeReadTimeout(t *testing.T) {
	config := DefaultConfig()
	if err := WithReadTimeout(-time.Second)(&config); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestModeAndPinStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ModeDisabled.String(), "disabled"},
		{ModeAutomatic.String(), "automatic"},
		{ModeManual.String(), "manual"},
		{PinRTS.String(), "RTS"},
		{PinDTR.String(), "DTR"},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("String() = %q, want %q", test.got, test.want)
		}
	}
}
