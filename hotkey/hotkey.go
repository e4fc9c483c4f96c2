// Package hotkey provides global deck-button sources with press/release
// events.
package hotkey

// Hotkey is one registered global button.
type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}
