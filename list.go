package rs485

import (
	"os"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes one enumerated serial device.
type PortInfo struct {
	Path string

	// Device-node classification, see Classify.
	IsSymlink   bool
	IsPTY       bool
	IsBluetooth bool

	// USB metadata as reported by the platform enumerator; empty for
	// non-USB devices.
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// PortClass describes what kind of device node a path points at.
type PortClass struct {
	IsSymlink   bool
	IsPTY       bool
	IsBluetooth bool
}

// Classify inspects a device path and tags it as symlink, pseudo-terminal
// and/or Bluetooth-backed. It has no failure mode: missing filesystem
// metadata degrades to false, never to an error.
func Classify(path string) PortClass {
	var c PortClass

	if fi, err := os.Lstat(path); err == nil {
		c.IsSymlink = fi.Mode()&os.ModeSymlink != 0
	}

	// Pseudo-terminals live under /dev/pts/ or the legacy /dev/pty*
	// nodes; a symlink counts if its target does.
	resolved := path
	if c.IsSymlink {
		if target, err := os.Readlink(path); err == nil {
			resolved = target
		}
	}
	c.IsPTY = containsPTYFragment(path) || containsPTYFragment(resolved)

	c.IsBluetooth = isBluetoothPath(path)

	return c
}

func containsPTYFragment(path string) bool {
	return strings.Contains(path, "/dev/pts/") || strings.Contains(path, "/dev/pt")
}

// isBluetoothPath matches macOS-style /dev/*Bluetooth* names
// case-insensitively and the Linux RFCOMM naming convention. The
// enumerator does not report a Bluetooth transport type, so
// classification relies on the path alone.
func isBluetoothPath(path string) bool {
	return strings.Contains(strings.ToLower(path), "bluetooth") ||
		strings.HasPrefix(path, "/dev/rfcomm")
}

// ListPorts enumerates serial devices and classifies each path. The result
// is sorted by path for consistent ordering.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		class := Classify(d.Name)
		ports = append(ports, PortInfo{
			Path:         d.Name,
			IsSymlink:    class.IsSymlink,
			IsPTY:        class.IsPTY,
			IsBluetooth:  class.IsBluetooth,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Path < ports[j].Path })
	return ports, nil
}
