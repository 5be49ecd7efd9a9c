package rs485

import "time"

// NormalizeTimeout rounds a requested read timeout to the minimum
// granularity the platform's blocking-read timer can represent.
//
// On Linux the termios VTIME counter only supports decisecond (100 ms)
// steps, so nonzero values are rounded up to the next multiple of 100 ms.
// Rounding down would time out earlier than the caller asked for; rounding
// up only ever waits longer. A zero timeout means "block indefinitely" and
// is never rounded into a nonzero value.
//
// On platforms with finer-grained timers the value passes through
// unchanged.
func NormalizeTimeout(timeout time.Duration) time.Duration {
	// Through a variable so the modulo below stays legal on platforms
	// where the granularity constant is zero.
	granularity := time.Duration(timerGranularity)
	if timeout == 0 || granularity == 0 {
		return timeout
	}
	if rem := timeout % granularity; rem != 0 {
		timeout += granularity - rem
	}
	return timeout
}
