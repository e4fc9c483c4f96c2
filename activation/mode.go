// Package activation implements the activation-mode execution engine: the
// closed set of timing policies imported from the host application's input
// configuration, and the handlers that translate button events into input
// executor calls.
package activation

// Mode is an activation-mode family imported from the host configuration.
type Mode string

const (
	ModeTap                  Mode = "tap"
	ModeDoubleTap            Mode = "double_tap"
	ModeDoubleTapNonBlocking Mode = "double_tap_nonblocking"
	ModeTapQuicker           Mode = "tap_quicker"
	ModePress                Mode = "press"
	ModePressQuicker         Mode = "press_quicker"
	ModeDelayedPress         Mode = "delayed_press"
	ModeDelayedPressQuicker  Mode = "delayed_press_quicker"
	ModeDelayedPressMedium   Mode = "delayed_press_medium"
	ModeDelayedPressLong     Mode = "delayed_press_long"
	ModeHold                 Mode = "hold"
	ModeHoldNoRetrigger      Mode = "hold_no_retrigger"
	ModeAll                  Mode = "all"
	ModeDelayedHold          Mode = "delayed_hold"
	ModeDelayedHoldLong      Mode = "delayed_hold_long"
	ModeDelayedHoldNoRetrig  Mode = "delayed_hold_no_retrigger"
	ModeHoldToggle           Mode = "hold_toggle"
	ModeSmartToggle          Mode = "smart_toggle"
)

// Modes lists every known activation mode.
var Modes = []Mode{
	ModeTap, ModeDoubleTap, ModeDoubleTapNonBlocking, ModeTapQuicker,
	ModePress, ModePressQuicker,
	ModeDelayedPress, ModeDelayedPressQuicker, ModeDelayedPressMedium, ModeDelayedPressLong,
	ModeHold, ModeHoldNoRetrigger, ModeAll,
	ModeDelayedHold, ModeDelayedHoldLong, ModeDelayedHoldNoRetrig,
	ModeHoldToggle, ModeSmartToggle,
}

// Delayed reports whether the mode belongs to the delayed family: nothing may
// fire on the initial press; the action arms a one-shot timer instead.
func (m Mode) Delayed() bool {
	switch m {
	case ModeDelayedPress, ModeDelayedPressQuicker, ModeDelayedPressMedium,
		ModeDelayedPressLong, ModeDelayedHold, ModeDelayedHoldLong,
		ModeDelayedHoldNoRetrig:
		return true
	}
	return false
}

// PlainHold reports whether the mode is a plain hold variant, which presses
// the binding down for the whole physical hold even when the metadata is not
// marked retriggerable.
func (m Mode) PlainHold() bool {
	return m == ModeHold || m == ModeHoldNoRetrigger
}

// Metadata carries the per-mode numeric/boolean parameters derived once from
// the host configuration. Read-only during execution.
type Metadata struct {
	OnPress                 bool
	OnRelease               bool
	Retriggerable           bool
	MultiTapBlock           int
	PressTriggerThreshold   float64 // seconds; delay before a press-triggered action fires
	ReleaseTriggerThreshold float64 // seconds
	ReleaseTriggerDelay     float64 // seconds; outranks the threshold when nonzero
}

// defaultMetadata holds built-in parameters for catalogs that omit the
// activation-mode block. Catalog values override these per mode.
var defaultMetadata = map[Mode]Metadata{
	ModeTap:                  {OnPress: true, OnRelease: true, MultiTapBlock: 1},
	ModeDoubleTap:            {OnPress: true, MultiTapBlock: 1},
	ModeDoubleTapNonBlocking: {OnPress: true},
	ModeTapQuicker:           {OnPress: true, OnRelease: true, MultiTapBlock: 1},
	ModePress:                {OnPress: true},
	ModePressQuicker:         {OnPress: true},
	ModeDelayedPress:         {OnPress: true, PressTriggerThreshold: 0.25},
	ModeDelayedPressQuicker:  {OnPress: true, PressTriggerThreshold: 0.15},
	ModeDelayedPressMedium:   {OnPress: true, PressTriggerThreshold: 0.5},
	ModeDelayedPressLong:     {OnPress: true, PressTriggerThreshold: 0.75},
	ModeHold:                 {Retriggerable: true},
	ModeHoldNoRetrigger:      {},
	ModeAll:                  {OnPress: true, OnRelease: true, Retriggerable: true},
	ModeDelayedHold:          {Retriggerable: true, PressTriggerThreshold: 0.25},
	ModeDelayedHoldLong:      {Retriggerable: true, PressTriggerThreshold: 0.75},
	ModeDelayedHoldNoRetrig:  {PressTriggerThreshold: 0.25},
	ModeHoldToggle:           {OnPress: true},
	ModeSmartToggle:          {ReleaseTriggerDelay: 0.25},
}

// DefaultMetadata returns the built-in parameters for a mode. Unknown modes
// get the zero Metadata, which the press-family fallback treats as a plain
// no-op dispatch.
func DefaultMetadata(m Mode) Metadata {
	return defaultMetadata[m]
}
