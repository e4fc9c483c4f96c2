package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydeck/activation"
	"keydeck/catalog"
	"keydeck/device"
	"keydeck/executor"
)

func newDispatcher(cat catalog.Catalog) (*Dispatcher, *device.Fake) {
	fake := device.NewFake()
	ex := executor.New(fake, 0)
	return New(cat, activation.NewRegistry(), ex, 0), fake
}

func TestCatalogNotLoaded(t *testing.T) {
	d, fake := newDispatcher(&catalog.Fake{Loaded: false})
	assert.False(t, d.HandleKeyEvent("v_eject", true))
	d.Wait()
	assert.Empty(t, fake.Calls())
}

func TestUnknownAction(t *testing.T) {
	d, fake := newDispatcher(&catalog.Fake{Loaded: true})
	assert.False(t, d.HandleKeyEvent("v_eject", true))
	d.Wait()
	assert.Empty(t, fake.Calls())
}

func TestUnboundAction(t *testing.T) {
	cat := &catalog.Fake{
		Loaded:  true,
		Actions: []catalog.Action{{Name: "v_eject", Mode: activation.ModePress}},
	}
	d, fake := newDispatcher(cat)
	assert.False(t, d.HandleKeyEvent("v_eject", true))
	d.Wait()
	assert.Empty(t, fake.Calls())
}

func TestPressModeExecutes(t *testing.T) {
	cat := &catalog.Fake{
		Loaded:  true,
		Actions: []catalog.Action{{Name: "v_eject", Keyboard: "y", Mode: activation.ModePress}},
	}
	d, fake := newDispatcher(cat)

	require.True(t, d.HandleKeyEvent("v_eject", true))
	d.Wait()
	assert.Equal(t, 1, fake.Count(device.OpPress))
}

func TestMetadataOverrideFromCatalog(t *testing.T) {
	// The catalog marks "press" as release-triggered; the built-in default
	// (fire on press) must not apply.
	cat := &catalog.Fake{
		Loaded:  true,
		Actions: []catalog.Action{{Name: "v_eject", Keyboard: "y", Mode: activation.ModePress}},
		Modes:   map[string]activation.Metadata{"press": {OnRelease: true}},
	}
	d, fake := newDispatcher(cat)

	require.True(t, d.HandleKeyEvent("v_eject", true))
	d.Wait()
	assert.Zero(t, fake.Count(device.OpPress))

	require.True(t, d.HandleKeyEvent("v_eject", false))
	d.Wait()
	assert.Equal(t, 1, fake.Count(device.OpPress))
}

func TestHoldModeFullCycle(t *testing.T) {
	cat := &catalog.Fake{
		Loaded:  true,
		Actions: []catalog.Action{{Name: "v_brake", Keyboard: "x", Mode: activation.ModeHold}},
	}
	d, fake := newDispatcher(cat)

	require.True(t, d.HandleKeyEvent("v_brake", true))
	d.Wait()
	require.True(t, d.HandleKeyEvent("v_brake", false))
	d.Wait()

	assert.Equal(t, 1, fake.Count(device.OpDown))
	assert.Equal(t, 1, fake.Count(device.OpUp))
	assert.Zero(t, fake.Count(device.OpPress))
}

func TestDelayedFallbackReachesHandler(t *testing.T) {
	cat := &catalog.Fake{
		Loaded:  true,
		Actions: []catalog.Action{{Name: "v_eject", Keyboard: "y", Mode: activation.ModeDelayedPress}},
		Modes:   map[string]activation.Metadata{"delayed_press": {OnPress: true}},
	}
	fake := device.NewFake()
	ex := executor.New(fake, 0)
	d := New(cat, activation.NewRegistry(), ex, 30*time.Millisecond)

	require.True(t, d.HandleKeyEvent("v_eject", true))
	d.Wait()
	assert.Zero(t, fake.Count(device.OpDown), "nothing fires before the fallback delay")

	assert.Eventually(t, func() bool {
		return fake.Count(device.OpDown) == 1
	}, time.Second, 5*time.Millisecond)
}
