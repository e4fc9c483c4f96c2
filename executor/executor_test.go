package executor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydeck/binding"
	"keydeck/device"
)

var kbInput = binding.Input{Kind: binding.Keyboard, Keys: []int{30}}

func TestExecutePressEmptyInput(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	assert.False(t, ex.ExecutePress(binding.Input{}))
	assert.False(t, ex.ExecutePressNoRepeat(binding.Input{}))
	assert.Empty(t, fake.Calls())
}

func TestExecutePressNoRepeatImmediate(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 100*time.Millisecond)

	require.True(t, ex.ExecutePressNoRepeat(kbInput))
	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, device.OpPress, calls[0].Op)
	assert.Zero(t, calls[0].Hold, "no-repeat press must not hold the binding down")
}

func TestExecutePressUsesConfiguredDuration(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 5*time.Millisecond)

	require.True(t, ex.ExecutePress(kbInput))
	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 5*time.Millisecond, calls[0].Hold)
}

func TestDownUpIdempotent(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	assert.True(t, ex.ExecuteDown(kbInput, "v_brake"))
	assert.True(t, ex.ExecuteDown(kbInput, "v_brake"), "second down is a no-op")
	assert.Equal(t, 1, fake.Count(device.OpDown))

	assert.True(t, ex.ExecuteUp(kbInput, "v_brake"))
	assert.True(t, ex.ExecuteUp(kbInput, "v_brake"), "second up is a no-op")
	assert.Equal(t, 1, fake.Count(device.OpUp))
}

func TestDownUpKeysCaseInsensitive(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	ex.ExecuteDown(kbInput, "V_Brake")
	ex.ExecuteDown(kbInput, "v_brake")
	assert.Equal(t, 1, fake.Count(device.OpDown))

	ex.ExecuteUp(kbInput, "V_BRAKE")
	assert.Equal(t, 1, fake.Count(device.OpUp))
}

func TestUpWithoutDownIsNoop(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	assert.True(t, ex.ExecuteUp(kbInput, "v_brake"))
	assert.Zero(t, fake.Count(device.OpUp))
}

func TestDelayedPressFires(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	ex.ScheduleDelayedPress(kbInput, "v_gear", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return fake.Count(device.OpPress) == 1
	}, time.Second, 2*time.Millisecond)

	// Fired timer removed itself: a later cancel has nothing to dispose.
	assert.False(t, ex.CancelDelayedPress("v_gear"))
}

func TestDelayedPressCanceledBeforeFire(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	ex.ScheduleDelayedPress(kbInput, "v_gear", 250*time.Millisecond)
	assert.True(t, ex.CancelDelayedPress("v_gear"))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, fake.Count(device.OpPress))
}

func TestScheduleReplacesPendingTimer(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	// The first, long timer must be displaced by the second, short one:
	// exactly one press fires.
	ex.ScheduleDelayedPress(kbInput, "v_gear", time.Hour)
	ex.ScheduleDelayedPress(kbInput, "v_gear", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return fake.Count(device.OpPress) == 1
	}, time.Second, 2*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, fake.Count(device.OpPress))
}

func TestDelayedHoldFiresDown(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	ex.ScheduleDelayedHold(kbInput, "v_boost", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return fake.Count(device.OpDown) == 1
	}, time.Second, 2*time.Millisecond)

	// The fired hold left the action held; Up releases it exactly once.
	ex.ExecuteUp(kbInput, "v_boost")
	assert.Equal(t, 1, fake.Count(device.OpUp))
}

func TestDelayedHoldCanceled(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	ex.ScheduleDelayedHold(kbInput, "v_boost", 250*time.Millisecond)
	assert.True(t, ex.CancelDelayedHold("v_boost"))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, fake.Count(device.OpDown))

	// Nothing was held, so Up is a no-op.
	ex.ExecuteUp(kbInput, "v_boost")
	assert.Zero(t, fake.Count(device.OpUp))
}

func TestCancelUnknownKey(t *testing.T) {
	ex := New(device.NewFake(), 0)
	assert.False(t, ex.CancelDelayedPress("nope"))
	assert.False(t, ex.CancelDelayedHold("nope"))
}

func TestBackendErrorReturnsFalse(t *testing.T) {
	fake := device.NewFake()
	fake.Err = assert.AnError
	ex := New(fake, 0)

	assert.False(t, ex.ExecutePress(kbInput))
	assert.False(t, ex.ExecutePressNoRepeat(kbInput))
	assert.False(t, ex.ExecuteDown(kbInput, "v_brake"))

	// The failed down must not leave the held flag set.
	fake.Err = nil
	assert.True(t, ex.ExecuteDown(kbInput, "v_brake"))
	assert.Equal(t, 1, fake.Count(device.OpDown))
}

func TestConcurrentScheduling(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ex.ScheduleDelayedPress(kbInput, "v_gear", 30*time.Millisecond)
			ex.ExecuteDown(kbInput, "v_gear")
			ex.ExecuteUp(kbInput, "v_gear")
		}()
	}
	wg.Wait()

	// Single-outstanding-timer invariant: at most one delayed press fires.
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, fake.Count(device.OpPress), 1)
}

func TestShutdownStopsTimers(t *testing.T) {
	fake := device.NewFake()
	ex := New(fake, 0)

	ex.ScheduleDelayedPress(kbInput, "a", 200*time.Millisecond)
	ex.ScheduleDelayedHold(kbInput, "b", 200*time.Millisecond)
	ex.Shutdown()

	time.Sleep(250 * time.Millisecond)
	assert.Empty(t, fake.Calls())
}
