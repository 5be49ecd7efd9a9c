// Package ffi exposes the rs485 library through a flat, handle-based
// surface intended for embedding behind foreign function interfaces.
//
// Ports are referred to by opaque handles into a process-owned table;
// every use is validity-checked, so a stale or forged handle fails cleanly
// instead of dereferencing freed memory. Fallible operations return a
// sentinel value (zero handle, negative count or false) and record a
// descriptive message with its source location into the calling Context's
// error slot; the sentinel alone never carries the message.
//
// A Context holds one error slot. Create one Context per execution context
// of the embedding runtime (thread, task or equivalent) so diagnostic
// recording never races; nothing else in a Context is stateful.
package ffi
