package activation

import (
	"time"

	"keydeck/binding"
)

// DefaultDelayedFallback is the delay used by delayed-family modes whose
// press-trigger threshold is zero. Installations can override it through
// Context.DelayedFallback.
const DefaultDelayedFallback = 250 * time.Millisecond

// Executor is the capability handlers drive. Implementations own the
// per-action timer and held-state tables; calls never panic and report
// failure by returning false.
type Executor interface {
	ExecutePress(in binding.Input) bool
	ExecutePressNoRepeat(in binding.Input) bool
	ExecuteDown(in binding.Input, actionKey string) bool
	ExecuteUp(in binding.Input, actionKey string) bool
	ScheduleDelayedPress(in binding.Input, actionKey string, delay time.Duration)
	// CancelDelayedPress reports whether a pending timer was canceled before
	// firing; false means there was nothing pending (it already fired or was
	// never scheduled).
	CancelDelayedPress(actionKey string) bool
	ScheduleDelayedHold(in binding.Input, actionKey string, delay time.Duration)
	CancelDelayedHold(actionKey string) bool
}

// Context is one immutable record per button event.
type Context struct {
	ActionKey string
	Input     binding.Input
	KeyDown   bool
	Mode      Mode
	Meta      Metadata

	// DelayedFallback overrides DefaultDelayedFallback when nonzero.
	DelayedFallback time.Duration
}

func (c Context) delayedDelay() time.Duration {
	if c.Meta.PressTriggerThreshold > 0 {
		return seconds(c.Meta.PressTriggerThreshold)
	}
	if c.DelayedFallback > 0 {
		return c.DelayedFallback
	}
	return DefaultDelayedFallback
}

// Handler is one activation-mode family strategy. Handlers hold no mutable
// state; everything mutable lives in the Executor's tables. The returned bool
// is a dispatch-success indicator for async-task logging, not an error signal.
type Handler interface {
	Execute(ctx Context, ex Executor) bool
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
