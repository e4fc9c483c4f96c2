package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, cfg.PressDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.DelayedPressFallback())
	assert.Equal(t, time.Second, cfg.ToggleHoldThreshold())
	assert.True(t, cfg.Catalog.Watch)
}

func TestLoadFile(t *testing.T) {
	doc := `
[timing]
press_duration_ms = 60
delayed_press_fallback_s = 0.4
toggle_hold_threshold_s = 2.0

[catalog]
path = "/tmp/actions.json"
watch = false

[[buttons]]
combo = "ctrl+shift+1"
action = "v_eject"

[toggle_button]
combo = "ctrl+shift+t"
action = "v_landing_gear"
`
	path := filepath.Join(t.TempDir(), "keydeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Millisecond, cfg.PressDuration())
	assert.Equal(t, 400*time.Millisecond, cfg.DelayedPressFallback())
	assert.Equal(t, 2*time.Second, cfg.ToggleHoldThreshold())
	assert.Equal(t, "/tmp/actions.json", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.Watch)
	require.Len(t, cfg.Buttons, 1)
	assert.Equal(t, "v_eject", cfg.Buttons[0].Action)
	assert.Equal(t, "ctrl+shift+t", cfg.ToggleButton.Combo)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KEYDECK_CATALOG_PATH", "/env/actions.json")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/actions.json", cfg.Catalog.Path)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Timing.ToggleHoldThresholdS = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Buttons = []ButtonConfig{{Combo: "ctrl+shift+1"}}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.ToggleButton.Combo = "ctrl+shift+t"
	assert.Error(t, cfg.Validate(), "toggle combo without action")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
