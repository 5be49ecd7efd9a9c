//go:build linux

package rs485

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// RS-485 ioctls and flags from linux/serial.h
const (
	tiocgRS485 = 0x542E
	tiocsRS485 = 0x542F

	serRS485Enabled      = 1 << 0
	serRS485RTSOnSend    = 1 << 1
	serRS485RTSAfterSend = 1 << 2
	serRS485RxDuringTx   = 1 << 4
	serRS485TerminateBus = 1 << 5
)

// rs485Descriptor holds the meaningful fields of struct serial_rs485. The
// kernel expresses the turnaround delays in whole milliseconds.
type rs485Descriptor struct {
	flags         uint32
	delayBeforeMS uint32
	delayAfterMS  uint32
}

// descriptorWords is the exact wire shape of struct serial_rs485: flags,
// the two delay words, then five padding words.
type descriptorWords [8]uint32

// encode lays the descriptor out as the kernel ABI expects it.
func (d rs485Descriptor) encode() descriptorWords {
	var w descriptorWords
	w[0] = d.flags
	w[1] = d.delayBeforeMS
	w[2] = d.delayAfterMS
	return w
}

// decodeDescriptor reads a descriptor back out of the ABI words.
func decodeDescriptor(w descriptorWords) rs485Descriptor {
	return rs485Descriptor{
		flags:         w[0],
		delayBeforeMS: w[1],
		delayAfterMS:  w[2],
	}
}

// descriptorFromConfig translates the stored attributes into the kernel
// descriptor. Polarity selects exactly one of RTS_ON_SEND and
// RTS_AFTER_SEND. Sub-millisecond delay precision is not representable and
// is truncated away, which is accepted precision loss rather than an
// error.
func descriptorFromConfig(cfg RS485Config) rs485Descriptor {
	flags := uint32(serRS485Enabled)
	if cfg.ActiveHigh {
		flags |= serRS485RTSOnSend
	} else {
		flags |= serRS485RTSAfterSend
	}
	if cfg.RxDuringTx {
		flags |= serRS485RxDuringTx
	}
	if cfg.Termination {
		flags |= serRS485TerminateBus
	}
	return rs485Descriptor{
		flags:         flags,
		delayBeforeMS: uint32(cfg.DelayBeforeSend / time.Millisecond),
		delayAfterMS:  uint32(cfg.DelayAfterSend / time.Millisecond),
	}
}

// ioctlRS485 issues a get or set call with the descriptor buffer. The
// pointer form is not covered by the unix package helpers.
func ioctlRS485(fd int, req uint, words *descriptorWords) error {
	_, _, e := unix.Syscall6(unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(req),
		uintptr(unsafe.Pointer(&words[0])),
		0, 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

// linuxKernelDriver delegates direction switching to the tty driver via
// the serial_rs485 ioctls.
type linuxKernelDriver struct{}

func newKernelDriver() kernelDriver { return linuxKernelDriver{} }

func (linuxKernelDriver) Supported() bool { return true }

// Enable issues the set call and verifies by readback that the enabled bit
// stuck. Some hardware/driver combinations accept the set call but
// silently refuse, so the readback is load-bearing.
func (linuxKernelDriver) Enable(fd int, cfg RS485Config) bool {
	if fd < 0 {
		return false
	}

	words := descriptorFromConfig(cfg).encode()
	if err := ioctlRS485(fd, tiocsRS485, &words); err != nil {
		return false
	}

	var back descriptorWords
	if err := ioctlRS485(fd, tiocgRS485, &back); err != nil {
		return false
	}
	return decodeDescriptor(back).flags&serRS485Enabled != 0
}

// Disable writes a zeroed descriptor. Best-effort: the result only matters
// to callers that care, mode switching ignores it.
func (linuxKernelDriver) Disable(fd int) bool {
	if fd < 0 {
		return false
	}
	var words descriptorWords
	return ioctlRS485(fd, tiocsRS485, &words) == nil
}
