//go:build !linux

package rs485

// stubKernelDriver is used where the OS exposes no in-kernel half-duplex
// switching. Every enable attempt fails, so ModeAutomatic always falls
// back to manual toggling.
type stubKernelDriver struct{}

func newKernelDriver() kernelDriver { return stubKernelDriver{} }

func (stubKernelDriver) Supported() bool              { return false }
func (stubKernelDriver) Enable(int, RS485Config) bool { return false }
func (stubKernelDriver) Disable(int) bool             { return false }
