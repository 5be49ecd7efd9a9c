package ffi

import (
	"sync"

	"github.com/nemecec/rs485"
)

// Handle identifies an open port in the process-owned table. The zero
// Handle is never issued and doubles as the open-failure sentinel.
type Handle int64

// portTable maps handles to controllers. One table per process: handles
// remain valid across Contexts, only error reporting is per-Context.
type portTable struct {
	mu   sync.Mutex
	next Handle
	m    map[Handle]*rs485.Controller
}

var table = portTable{m: make(map[Handle]*rs485.Controller)}

func (t *portTable) put(ctrl *rs485.Controller) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.m[t.next] = ctrl
	return t.next
}

func (t *portTable) get(h Handle) (*rs485.Controller, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctrl, ok := t.m[h]
	return ctrl, ok
}

func (t *portTable) remove(h Handle) (*rs485.Controller, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctrl, ok := t.m[h]
	if ok {
		delete(t.m, h)
	}
	return ctrl, ok
}
