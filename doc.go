// Package rs485 provides timing-sensitive RS-485 half-duplex direction
// control layered over a termios-based serial transport.
//
// On an RS-485 bus only one device may drive the wire at a time, so the
// transmitting side has to control a direction line around every write.
// This package decides, per platform and per configuration, whether that
// switching is delegated to the operating system kernel or performed in
// software by toggling RTS or DTR, with silent fallback, extended timing
// parameters and verified kernel activation.
//
// # Basic Usage
//
// Open a port with automatic direction control (kernel delegation where
// available, manual RTS toggling otherwise):
//
//	ctrl, err := rs485.Open("/dev/ttyUSB0",
//	    rs485.WithBaudRate(9600),
//	    rs485.WithMode(rs485.ModeAutomatic, rs485.PinRTS),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctrl.Close()
//
//	// Every write runs through the turnaround-safe path.
//	n, err := ctrl.Write([]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x02, 0xc4, 0x0b})
//
// Whether the kernel took over can be checked at any point:
//
//	if ctrl.KernelActive() {
//	    // the tty driver switches the line, timed by hardware
//	}
//
// # Direction Control Modes
//
// Three modes are available:
//
//   - ModeDisabled: writes pass straight through, the control pins are
//     never touched.
//   - ModeAutomatic: kernel delegation is attempted for PinRTS; on
//     failure, or for PinDTR, the controller silently falls back to
//     manual toggling.
//   - ModeManual: the selected pin is always toggled in software, even
//     where the kernel could do it.
//
// In the manual path the pin is driven to its transmit level before the
// write, the output is drained, and the receive level is restored even
// when the write failed, so the bus is never left stuck in transmit.
//
// # Extended Timing Configuration
//
// Polarity, receive-during-transmit, bus termination and the turnaround
// delays are carried in RS485Config and survive mode switches:
//
//	err = ctrl.SetRS485Config(rs485.ModeAutomatic, rs485.PinRTS, rs485.RS485Config{
//	    ActiveHigh:      true,
//	    DelayBeforeSend: 100 * time.Microsecond,
//	    DelayAfterSend:  100 * time.Microsecond,
//	})
//
// The delays are forwarded to the kernel descriptor in millisecond units;
// sub-millisecond precision is truncated.
//
// # Read Timeouts
//
// Blocking reads time out per the configured read timeout. On Linux the
// underlying VTIME timer only counts deciseconds, so requested timeouts
// are rounded up to the next 100 ms; NormalizeTimeout exposes the rounding
// for callers budgeting protocol turnaround times. A zero timeout blocks
// indefinitely and is never rounded.
//
// # Port Discovery
//
// ListPorts enumerates serial devices and classifies each path, so
// callers can filter out pseudo-terminals, symlinked aliases and
// Bluetooth-backed ports:
//
//	ports, err := rs485.ListPorts()
//	for _, p := range ports {
//	    if p.IsPTY || p.IsBluetooth {
//	        continue
//	    }
//	    fmt.Println(p.Path)
//	}
//
// # Concurrency
//
// Every operation is synchronous and blocking; the package starts no
// goroutines. A Controller's state is mutable shared state without
// internal locking: callers needing concurrency must serialize access,
// one writer per controller.
//
// # Boundary API
//
// The ffi subpackage exposes the same operations through a handle-based,
// last-error style surface for embedding behind foreign function
// interfaces.
package rs485
