// Package executor performs idempotent, timer-scheduled device actions on
// behalf of the activation-mode handlers. It owns the per-action timer and
// held-state tables.
package executor

import (
	"strings"
	"sync"
	"time"

	"keydeck/binding"
	"keydeck/device"
	"keydeck/log"
)

// DefaultPressDuration is how long ExecutePress keeps the binding down.
const DefaultPressDuration = 40 * time.Millisecond

// InputExecutor implements the activation.Executor capability over a device
// backend. Action keys are case-insensitive; per key there is at most one
// outstanding delayed-press timer and one outstanding delayed-hold timer, and
// Down/Up pairs are idempotent through the held table.
type InputExecutor struct {
	backend       device.Backend
	pressDuration time.Duration

	mu          sync.Mutex
	pressTimers map[string]*time.Timer
	holdTimers  map[string]*time.Timer
	held        map[string]bool
}

// New builds an executor over backend. pressDuration <= 0 selects
// DefaultPressDuration.
func New(backend device.Backend, pressDuration time.Duration) *InputExecutor {
	if pressDuration <= 0 {
		pressDuration = DefaultPressDuration
	}
	return &InputExecutor{
		backend:       backend,
		pressDuration: pressDuration,
		pressTimers:   make(map[string]*time.Timer),
		holdTimers:    make(map[string]*time.Timer),
		held:          make(map[string]bool),
	}
}

func actionKey(key string) string {
	return strings.ToLower(key)
}

// ExecutePress presses the binding for the configured duration; the OS may
// auto-repeat while it is down.
func (e *InputExecutor) ExecutePress(in binding.Input) bool {
	if in.Empty() {
		return false
	}
	if err := e.backend.Press(in, e.pressDuration); err != nil {
		log.Errorf("press failed: %v", err)
		return false
	}
	return true
}

// ExecutePressNoRepeat presses and releases immediately, regardless of any
// held state for the action.
func (e *InputExecutor) ExecutePressNoRepeat(in binding.Input) bool {
	if in.Empty() {
		return false
	}
	if err := e.backend.Press(in, 0); err != nil {
		log.Errorf("press (no repeat) failed: %v", err)
		return false
	}
	return true
}

// ExecuteDown presses the binding down. A second Down before the matching Up
// is a no-op.
func (e *InputExecutor) ExecuteDown(in binding.Input, key string) bool {
	if in.Empty() {
		return false
	}
	k := actionKey(key)

	e.mu.Lock()
	if e.held[k] {
		e.mu.Unlock()
		return true
	}
	e.held[k] = true
	e.mu.Unlock()

	if err := e.backend.Down(in); err != nil {
		log.Errorf("down failed for %s: %v", key, err)
		e.mu.Lock()
		delete(e.held, k)
		e.mu.Unlock()
		return false
	}
	return true
}

// ExecuteUp releases the binding. An Up without a pending Down is a no-op.
func (e *InputExecutor) ExecuteUp(in binding.Input, key string) bool {
	if in.Empty() {
		return false
	}
	k := actionKey(key)

	e.mu.Lock()
	if !e.held[k] {
		e.mu.Unlock()
		return true
	}
	delete(e.held, k)
	e.mu.Unlock()

	if err := e.backend.Up(in); err != nil {
		log.Errorf("up failed for %s: %v", key, err)
		return false
	}
	return true
}

// ScheduleDelayedPress arms a one-shot no-repeat press for the action,
// replacing any pending one.
func (e *InputExecutor) ScheduleDelayedPress(in binding.Input, key string, delay time.Duration) {
	e.schedule(e.pressTimers, key, delay, func() {
		e.ExecutePressNoRepeat(in)
	})
}

// CancelDelayedPress disposes the pending delayed press, if any. It reports
// whether a timer was canceled before firing.
func (e *InputExecutor) CancelDelayedPress(key string) bool {
	return e.cancel(e.pressTimers, key)
}

// ScheduleDelayedHold arms a one-shot Down for the action, replacing any
// pending one.
func (e *InputExecutor) ScheduleDelayedHold(in binding.Input, key string, delay time.Duration) {
	e.schedule(e.holdTimers, key, delay, func() {
		e.ExecuteDown(in, key)
	})
}

// CancelDelayedHold disposes the pending delayed hold, if any.
func (e *InputExecutor) CancelDelayedHold(key string) bool {
	return e.cancel(e.holdTimers, key)
}

// schedule replaces the key's timer with a fresh one-shot. The fire callback
// removes its own table entry first, so a cancel racing a firing-in-flight
// timer has no further effect on it, and it never panics past the timer
// goroutine.
func (e *InputExecutor) schedule(table map[string]*time.Timer, key string, delay time.Duration, fire func()) {
	k := actionKey(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	if prev, ok := table[k]; ok {
		prev.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("timer for %s panicked: %v", key, r)
			}
		}()

		e.mu.Lock()
		if table[k] == t {
			delete(table, k)
		}
		e.mu.Unlock()

		fire()
	})
	table[k] = t
}

func (e *InputExecutor) cancel(table map[string]*time.Timer, key string) bool {
	k := actionKey(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := table[k]
	if !ok {
		return false
	}
	delete(table, k)
	return t.Stop()
}

// Shutdown stops all outstanding timers. In-flight fires still complete.
func (e *InputExecutor) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, t := range e.pressTimers {
		t.Stop()
		delete(e.pressTimers, k)
	}
	for k, t := range e.holdTimers {
		t.Stop()
		delete(e.holdTimers, k)
	}
}
