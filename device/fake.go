package device

import (
	"sync"
	"time"

	"keydeck/binding"
)

// Op names a backend call recorded by the fake.
type Op string

const (
	OpPress Op = "press"
	OpDown  Op = "down"
	OpUp    Op = "up"
)

// Call is one recorded backend invocation.
type Call struct {
	Op    Op
	Input binding.Input
	Hold  time.Duration
}

// Fake records injections instead of performing them.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	// Err, when set, is returned from every call.
	Err error
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) Press(in binding.Input, hold time.Duration) error {
	return f.record(Call{Op: OpPress, Input: in, Hold: hold})
}

func (f *Fake) Down(in binding.Input) error {
	return f.record(Call{Op: OpDown, Input: in})
}

func (f *Fake) Up(in binding.Input) error {
	return f.record(Call{Op: OpUp, Input: in})
}

func (f *Fake) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.calls = append(f.calls, c)
	return nil
}

// Calls returns a snapshot of recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Count returns how many calls of op were recorded.
func (f *Fake) Count(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}
