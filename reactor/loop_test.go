package reactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/unixgram/unixgram/api"
	"github.com/unixgram/unixgram/reactor"
)

// dgramPair returns a connected pair of UNIX datagram descriptors.
func dgramPair(t *testing.T) (int, int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func newLoop(t *testing.T) *reactor.Loop {
	t.Helper()
	l, err := reactor.NewLoop()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestArmDispatchesOnReadiness(t *testing.T) {
	l := newLoop(t)
	rd, wr := dgramPair(t)

	wakeups := 0
	require.NoError(t, l.Arm(rd, func() { wakeups++ }))
	// Arm alone must not deliver anything.
	require.Equal(t, 0, wakeups)

	_, err := unix.Write(wr, []byte("ping"))
	require.NoError(t, err)

	n, err := l.Poll(1000)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, wakeups)
}

func TestDisarmStopsDelivery(t *testing.T) {
	l := newLoop(t)
	rd, wr := dgramPair(t)

	wakeups := 0
	require.NoError(t, l.Arm(rd, func() { wakeups++ }))
	require.NoError(t, l.Disarm(rd))

	_, err := unix.Write(wr, []byte("ping"))
	require.NoError(t, err)

	n, err := l.Poll(50)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, wakeups)
}

func TestDoubleArmRejected(t *testing.T) {
	l := newLoop(t)
	rd, _ := dgramPair(t)

	require.NoError(t, l.Arm(rd, func() {}))
	assert.Error(t, l.Arm(rd, func() {}))
}

func TestDisarmUnknownDescriptor(t *testing.T) {
	l := newLoop(t)
	assert.ErrorIs(t, l.Disarm(12345), api.ErrNotArmed)
}

func TestInjectedWakeupsDispatchInOrder(t *testing.T) {
	l := newLoop(t)
	a, _ := dgramPair(t)
	b, _ := dgramPair(t)

	var order []int
	require.NoError(t, l.Arm(a, func() { order = append(order, a) }))
	require.NoError(t, l.Arm(b, func() { order = append(order, b) }))

	l.Inject(b)
	l.Inject(a)
	l.Inject(b)

	n, err := l.Poll(0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{b, a, b}, order)
}

func TestInjectedWakeupDoesNotBlockPoll(t *testing.T) {
	l := newLoop(t)
	rd, _ := dgramPair(t)

	fired := false
	require.NoError(t, l.Arm(rd, func() { fired = true }))
	l.Inject(rd)

	// Blocking poll must return after the injected dispatch instead of
	// parking on the OS wait.
	n, err := l.Poll(-1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, fired)
}

func TestInjectAfterDisarmDropped(t *testing.T) {
	l := newLoop(t)
	rd, _ := dgramPair(t)

	wakeups := 0
	require.NoError(t, l.Arm(rd, func() { wakeups++ }))
	l.Inject(rd)
	require.NoError(t, l.Disarm(rd))

	n, err := l.Poll(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, wakeups)
}

func TestDisarmAfterCloseOfDescriptor(t *testing.T) {
	l := newLoop(t)
	rd, wr := dgramPair(t)

	require.NoError(t, l.Arm(rd, func() {}))
	// Close the observed descriptor first; Disarm must still tear down.
	require.NoError(t, unix.Close(rd))
	require.NoError(t, unix.Close(wr))
	assert.NoError(t, l.Disarm(rd))
}

func TestArmAfterLoopClose(t *testing.T) {
	l, err := reactor.NewLoop()
	require.NoError(t, err)
	require.NoError(t, l.Close())

	rd, _ := dgramPair(t)
	assert.ErrorIs(t, l.Arm(rd, func() {}), api.ErrLoopClosed)
}

func TestLevelTriggeredRearm(t *testing.T) {
	l := newLoop(t)
	rd, wr := dgramPair(t)

	wakeups := 0
	require.NoError(t, l.Arm(rd, func() {
		wakeups++
		// Drain exactly one datagram per wake-up.
		buf := make([]byte, 16)
		unix.Read(rd, buf)
	}))

	_, err := unix.Write(wr, []byte("one"))
	require.NoError(t, err)
	_, err = unix.Write(wr, []byte("two"))
	require.NoError(t, err)

	n, err := l.Poll(1000)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 1)

	// The second datagram is still pending, so readiness reports again.
	_, err = l.Poll(1000)
	require.NoError(t, err)
	assert.Equal(t, 2, wakeups)
}
