package rs485

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDisabledPassesThrough(t *testing.T) {
	mock := newMockTransport()
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetMode(ModeDisabled, PinRTS))

	n, err := c.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), mock.written)

	// The control pins are never touched in disabled mode.
	assert.Empty(t, mock.pinOps())
}

func TestManualWriteSequencesRTS(t *testing.T) {
	mock := newMockTransport()
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetMode(ModeManual, PinRTS))

	n, err := c.Write([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Assert strictly before the write, de-assert strictly after drain.
	assert.Equal(t, []string{"RTS:high", "write", "drain", "RTS:low"}, mock.ops)
}

func TestManualWriteDTRNeverTouchesRTS(t *testing.T) {
	mock := newMockTransport()
	c := newTestController(mock, &fakeKernel{supported: true, enableOK: true})
	require.NoError(t, c.SetRS485Config(ModeManual, PinDTR, RS485Config{ActiveHigh: true}))

	_, err := c.Write([]byte{0xff})
	require.NoError(t, err)

	assert.Equal(t, []string{"DTR:high", "DTR:low"}, mock.pinOps())
}

func TestManualWriteInvertedPolarity(t *testing.T) {
	mock := newMockTransport()
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetRS485Config(ModeManual, PinRTS, RS485Config{ActiveHigh: false}))

	_, err := c.Write([]byte{0xff})
	require.NoError(t, err)

	// Active-low polarity transmits with the pin de-asserted.
	assert.Equal(t, []string{"RTS:low", "write", "drain", "RTS:high"}, mock.ops)
}

func TestManualWriteRestoresPinOnWriteError(t *testing.T) {
	mock := newMockTransport()
	mock.writeErr = errors.New("bus fault")
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetMode(ModeManual, PinRTS))

	_, err := c.Write([]byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus fault")

	// The receive level is restored even though the write failed.
	assert.Equal(t, []string{"RTS:high", "write", "drain", "RTS:low"}, mock.ops)
}

func TestManualWriteReportsLostLineControl(t *testing.T) {
	mock := newMockTransport()
	mock.writeErr = errors.New("bus fault")
	mock.rtsErr = map[bool]error{false: errors.New("ioctl failed")}
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetMode(ModeManual, PinRTS))

	_, err := c.Write([]byte{0x01})
	require.Error(t, err)

	// Failing to release the bus outranks the failed write.
	assert.ErrorIs(t, err, ErrLineControlLost)
}

func TestManualWriteSurfacesDrainError(t *testing.T) {
	mock := newMockTransport()
	mock.drainErr = errors.New("drain failed")
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetMode(ModeManual, PinRTS))

	_, err := c.Write([]byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drain failed")
	assert.Equal(t, "RTS:low", mock.ops[len(mock.ops)-1])
}

func TestAutomaticAdoptsKernelDelegation(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{supported: true, enableOK: true}
	c := newTestController(mock, kernel)

	require.NoError(t, c.SetMode(ModeAutomatic, PinRTS))
	assert.True(t, c.KernelActive())
	assert.Equal(t, 1, kernel.enables)

	_, err := c.Write([]byte{0x01})
	require.NoError(t, err)

	// Kernel path: write then mandatory drain, no pin toggling.
	assert.Equal(t, []string{"write", "drain"}, mock.ops)
}

func TestAutomaticFallsBackSilently(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{supported: true, enableOK: false}
	c := newTestController(mock, kernel)

	// Enable failure is not an error, just a fallback.
	require.NoError(t, c.SetMode(ModeAutomatic, PinRTS))
	assert.False(t, c.KernelActive())
	assert.Equal(t, 1, kernel.enables)

	_, err := c.Write([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, []string{"RTS:high", "write", "drain", "RTS:low"}, mock.ops)
}

func TestAutomaticDTRNeverAttemptsKernel(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{supported: true, enableOK: true}
	c := newTestController(mock, kernel)

	require.NoError(t, c.SetMode(ModeAutomatic, PinDTR))
	assert.False(t, c.KernelActive())
	assert.Zero(t, kernel.enables)
}

func TestManualNeverAttemptsKernel(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{supported: true, enableOK: true}
	c := newTestController(mock, kernel)

	require.NoError(t, c.SetMode(ModeManual, PinRTS))
	assert.False(t, c.KernelActive())
	assert.Zero(t, kernel.enables)
}

func TestSwitchingToManualDisablesKernel(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{supported: true, enableOK: true}
	c := newTestController(mock, kernel)

	require.NoError(t, c.SetMode(ModeAutomatic, PinRTS))
	require.True(t, c.KernelActive())

	require.NoError(t, c.SetMode(ModeManual, PinRTS))
	assert.False(t, c.KernelActive())
	assert.Equal(t, 1, kernel.disables)
}

func TestSetRS485ConfigRoundTrip(t *testing.T) {
	for _, enableOK := range []bool{true, false} {
		mock := newMockTransport()
		kernel := &fakeKernel{supported: true, enableOK: enableOK}
		c := newTestController(mock, kernel)

		cfg := RS485Config{
			ActiveHigh:      false,
			RxDuringTx:      true,
			Termination:     true,
			DelayBeforeSend: 1500 * time.Microsecond,
			DelayAfterSend:  200 * time.Microsecond,
		}
		require.NoError(t, c.SetRS485Config(ModeAutomatic, PinRTS, cfg))

		// Stored attributes read back exactly, independent of whether
		// kernel activation succeeded.
		assert.Equal(t, cfg, c.RS485Settings())
		assert.Equal(t, enableOK, c.KernelActive())
	}
}

func TestSetDelaysReissuesKernelConfig(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{supported: true, enableOK: true}
	c := newTestController(mock, kernel)

	require.NoError(t, c.SetMode(ModeAutomatic, PinRTS))
	require.Equal(t, 1, kernel.enables)

	require.NoError(t, c.SetDelays(2*time.Millisecond, 3*time.Millisecond))
	assert.Equal(t, 2, kernel.enables)
	assert.Equal(t, 2*time.Millisecond, kernel.lastCfg.DelayBeforeSend)
	assert.Equal(t, 3*time.Millisecond, kernel.lastCfg.DelayAfterSend)

	got := c.RS485Settings()
	assert.Equal(t, 2*time.Millisecond, got.DelayBeforeSend)
	assert.Equal(t, 3*time.Millisecond, got.DelayAfterSend)
}

func TestSetDelaysWithoutKernelStoresOnly(t *testing.T) {
	mock := newMockTransport()
	kernel := &fakeKernel{}
	c := newTestController(mock, kernel)
	require.NoError(t, c.SetMode(ModeManual, PinRTS))

	require.NoError(t, c.SetDelays(time.Millisecond, time.Millisecond))
	assert.Zero(t, kernel.enables)
}

func TestSetModeValidation(t *testing.T) {
	c := newTestController(newMockTransport(), &fakeKernel{})

	assert.ErrorIs(t, c.SetMode(Mode(42), PinRTS), ErrInvalidMode)
	assert.ErrorIs(t, c.SetMode(ModeManual, Pin(7)), ErrInvalidPin)
	assert.ErrorIs(t, c.SetDelays(-time.Millisecond, 0), ErrInvalidConfig)
}

func TestControllerForwardsTransportOps(t *testing.T) {
	mock := newMockTransport()
	mock.readData = []byte("pong")
	mock.available = 4
	c := newTestController(mock, &fakeKernel{})
	require.NoError(t, c.SetMode(ModeDisabled, PinRTS))

	buf := make([]byte, 8)
	n, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("pong"), buf[:n])

	avail, err := c.BytesAvailable()
	require.NoError(t, err)
	assert.Equal(t, 4, avail)

	require.NoError(t, c.Discard(BufferBoth))
	require.NoError(t, c.SetRTS(true))
	require.NoError(t, c.SetDTR(false))
	require.NoError(t, c.SetReadTimeout(time.Second))
	assert.Equal(t, time.Second, mock.timeout)

	require.NoError(t, c.Close())
	assert.True(t, mock.closed)
}

func TestEndToEndManualFallbackScenario(t *testing.T) {
	// Automatic mode with RTS on a platform without kernel support:
	// delegation reports inactive, writes still succeed with correct
	// pin sequencing.
	mock := newMockTransport()
	c := newTestController(mock, &fakeKernel{supported: false})
	require.NoError(t, c.SetMode(ModeAutomatic, PinRTS))

	assert.False(t, c.KernelActive())

	n, err := c.Write([]byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"RTS:high", "write", "drain", "RTS:low"}, mock.ops)
}
