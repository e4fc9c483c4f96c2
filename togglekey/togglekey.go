// Package togglekey is the decision engine for the dedicated two-state Toggle
// Key button. It performs no I/O: callers feed it press/release timestamps and
// timer-elapsed notifications, and apply the effects it returns.
package togglekey

import (
	"sync"
	"sync/atomic"
	"time"
)

// EffectKind identifies a side effect the caller must apply.
type EffectKind uint8

const (
	// EffectSetVisualState carries the new 0/1 state in Effect.State.
	EffectSetVisualState EffectKind = iota
	// EffectPlayClickSound requests click feedback.
	EffectPlayClickSound
)

// Effect is one side effect for the caller to apply.
type Effect struct {
	Kind  EffectKind
	State int
}

// Decision is the outcome of a key-up or threshold notification. When
// RunExecute is set the caller performs the asynchronous external action and
// reports back through OnExecutionCompleted.
type Decision struct {
	ExecuteID  uint64
	RunExecute bool
	Effects    []Effect
}

// press tracks one press lifecycle. The resolved flag is the single claim
// point for the key-up/timer race: whichever path swaps it first applies the
// flip, the loser is a no-op.
type press struct {
	downAt   time.Time
	resolved atomic.Bool
}

// Core is the per-button state machine. Visual state starts at 0 (off).
type Core struct {
	threshold time.Duration

	mu      sync.Mutex
	nextID  uint64
	visual  int
	presses map[uint64]*press
	pending map[uint64]struct{}
}

// New builds a core with the given press/hold classification threshold.
func New(threshold time.Duration) *Core {
	return &Core{
		threshold: threshold,
		presses:   make(map[uint64]*press),
		pending:   make(map[uint64]struct{}),
	}
}

// Threshold returns the configured hold-classification boundary.
func (c *Core) Threshold() time.Duration {
	return c.threshold
}

// VisualState returns the current 0/1 state.
func (c *Core) VisualState() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visual
}

// OnKeyDown allocates a press identifier and records the down timestamp. The
// caller arms the hold threshold externally and reports it through
// OnHoldThresholdElapsed.
func (c *Core) OnKeyDown(ts time.Time) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.presses[c.nextID] = &press{downAt: ts}
	return c.nextID
}

// OnKeyUp classifies the press. Short presses hand back an execute identifier
// for the caller's asynchronous action; long holds flip the state directly
// unless the threshold timer already did.
func (c *Core) OnKeyUp(ts time.Time, pressID uint64) Decision {
	c.mu.Lock()
	p := c.presses[pressID]
	delete(c.presses, pressID)
	c.mu.Unlock()

	if p == nil {
		return Decision{}
	}

	if ts.Sub(p.downAt) < c.threshold {
		if !p.resolved.CompareAndSwap(false, true) {
			return Decision{}
		}
		c.mu.Lock()
		c.pending[pressID] = struct{}{}
		c.mu.Unlock()
		return Decision{ExecuteID: pressID, RunExecute: true}
	}

	// Long hold: the flip belongs to whichever of us and the threshold timer
	// claims the press first.
	if !p.resolved.CompareAndSwap(false, true) {
		return Decision{}
	}
	return Decision{Effects: c.flip()}
}

// OnHoldThresholdElapsed reports that the externally armed hold timer fired.
// If the press is still unresolved the flip applies here and a late key-up is
// suppressed; otherwise this is a no-op.
func (c *Core) OnHoldThresholdElapsed(pressID uint64) Decision {
	c.mu.Lock()
	p := c.presses[pressID]
	c.mu.Unlock()

	if p == nil {
		return Decision{}
	}
	if !p.resolved.CompareAndSwap(false, true) {
		return Decision{}
	}
	return Decision{Effects: c.flip()}
}

// OnExecutionCompleted reports the outcome of a short-press execution. Success
// flips the state and requests click feedback; failure changes nothing. Stale
// or unknown identifiers are no-ops.
func (c *Core) OnExecutionCompleted(executeID uint64, success bool) []Effect {
	c.mu.Lock()
	_, ok := c.pending[executeID]
	delete(c.pending, executeID)
	c.mu.Unlock()

	if !ok || !success {
		return nil
	}
	return c.flip()
}

func (c *Core) flip() []Effect {
	c.mu.Lock()
	c.visual = 1 - c.visual
	v := c.visual
	c.mu.Unlock()
	return []Effect{
		{Kind: EffectSetVisualState, State: v},
		{Kind: EffectPlayClickSound},
	}
}
