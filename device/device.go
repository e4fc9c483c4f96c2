// Package device performs the actual input injection for normalized bindings.
package device

import (
	"time"

	"keydeck/binding"
)

// Backend injects device-level input. Press holds the binding down for the
// given duration before releasing; a zero duration is an immediate down-up
// that can never engage OS auto-repeat.
type Backend interface {
	Press(in binding.Input, hold time.Duration) error
	Down(in binding.Input) error
	Up(in binding.Input) error
}
