package rs485

import "time"

// mockTransport implements Transport and records every pin and data
// operation in order, so tests can assert the exact turnaround sequence.
type mockTransport struct {
	ops     []string
	written []byte

	readData []byte

	writeErr error
	drainErr error
	readErr  error

	// per-level line errors, keyed by the requested level
	rtsErr map[bool]error
	dtrErr map[bool]error

	timeout   time.Duration
	available int
	fd        int
	closed    bool
}

var _ Transport = (*mockTransport)(nil)

func newMockTransport() *mockTransport {
	return &mockTransport{fd: -1}
}

func (m *mockTransport) record(op string) {
	m.ops = append(m.ops, op)
}

func (m *mockTransport) Read(buf []byte) (int, error) {
	m.record("read")
	if m.readErr != nil {
		return 0, m.readErr
	}
	n := copy(buf, m.readData)
	m.readData = m.readData[n:]
	return n, nil
}

func (m *mockTransport) Write(data []byte) (int, error) {
	m.record("write")
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.written = append(m.written, data...)
	return len(data), nil
}

func (m *mockTransport) Drain() error {
	m.record("drain")
	return m.drainErr
}

func (m *mockTransport) Discard(which Buffer) error {
	switch which {
	case BufferInput:
		m.record("discard:input")
	case BufferOutput:
		m.record("discard:output")
	default:
		m.record("discard:both")
	}
	return nil
}

func (m *mockTransport) SetRTS(level bool) error {
	m.record("RTS:" + levelString(level))
	return m.rtsErr[level]
}

func (m *mockTransport) SetDTR(level bool) error {
	m.record("DTR:" + levelString(level))
	return m.dtrErr[level]
}

func (m *mockTransport) SetReadTimeout(timeout time.Duration) error {
	m.timeout = timeout
	return nil
}

func (m *mockTransport) BytesAvailable() (int, error) {
	return m.available, nil
}

func (m *mockTransport) Fd() int { return m.fd }

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

func levelString(level bool) string {
	if level {
		return "high"
	}
	return "low"
}

// pinOps filters the recorded operations down to line-control events.
func (m *mockTransport) pinOps() []string {
	var ops []string
	for _, op := range m.ops {
		if len(op) >= 4 && (op[:4] == "RTS:" || op[:4] == "DTR:") {
			ops = append(ops, op)
		}
	}
	return ops
}

// fakeKernel is an injectable kernelDriver with scripted enable results.
type fakeKernel struct {
	supported bool
	enableOK  bool

	enables  int
	disables int
	lastCfg  RS485Config
}

var _ kernelDriver = (*fakeKernel)(nil)

func (k *fakeKernel) Supported() bool { return k.supported }

func (k *fakeKernel) Enable(fd int, cfg RS485Config) bool {
	k.enables++
	k.lastCfg = cfg
	return k.enableOK
}

func (k *fakeKernel) Disable(fd int) bool {
	k.disables++
	return true
}

// newTestController wires a controller to a mock transport and a fake
// kernel driver, bypassing the platform driver selection.
func newTestController(t *mockTransport, k kernelDriver) *Controller {
	return &Controller{
		transport: t,
		kernel:    k,
		rs485:     DefaultRS485Config(),
	}
}
