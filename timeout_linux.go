package rs485

import "time"

// VTIME counts in deciseconds.
const timerGranularity = 100 * time.Millisecond
