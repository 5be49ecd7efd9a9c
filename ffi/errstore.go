package ffi

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// errorContext is the last recorded diagnostic: a human-readable message
// and the source location where it was captured.
type errorContext struct {
	message  string
	location string
}

// recordf stores a new error context, unconditionally overwriting any
// previous one. The location is the caller's file and line.
func (c *Context) recordf(format string, args ...any) {
	location := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		location = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	c.lastErr = &errorContext{
		message:  fmt.Sprintf(format, args...),
		location: location,
	}
}

// LastError returns the current error context formatted as
// "<message> (at <location>)". The second return is false when no error
// has been recorded since the last clear.
//
// The slot is never cleared implicitly: a successful operation leaves a
// stale context from an earlier failure in place, so callers should only
// consult LastError after observing a sentinel failure value.
func (c *Context) LastError() (string, bool) {
	if c.lastErr == nil {
		return "", false
	}
	return fmt.Sprintf("%s (at %s)", c.lastErr.message, c.lastErr.location), true
}

// ClearLastError removes the current error context.
func (c *Context) ClearLastError() {
	c.lastErr = nil
}
