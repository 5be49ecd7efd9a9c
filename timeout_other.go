//go:build !linux

package rs485

import "time"

// Zero disables rounding; the timeout is passed through unchanged.
const timerGranularity time.Duration = 0
