// Package binding normalizes host binding tokens into device-ready inputs.
package binding

import (
	"fmt"
	"strings"
)

// Kind identifies the device a binding targets.
type Kind uint8

const (
	Keyboard Kind = iota
	MouseButton
	MouseWheel
)

// Modifiers is the decoded modifier-key set of a keyboard binding.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
}

// Input is a normalized, already-decoded device target. Never mutated after
// construction.
type Input struct {
	Kind Kind

	// Keyboard
	Mods Modifiers
	Keys []int // keybd_event VK codes

	// MouseButton
	Button string // robotgo button name: left, right, center

	// MouseWheel
	Wheel int // +1 up, -1 down
}

// Empty reports whether the input targets nothing.
func (in Input) Empty() bool {
	switch in.Kind {
	case Keyboard:
		return len(in.Keys) == 0
	case MouseButton:
		return in.Button == ""
	case MouseWheel:
		return in.Wheel == 0
	}
	return true
}

var mouseButtons = map[string]string{
	"mouse1": "left",
	"mouse2": "right",
	"mouse3": "center",
}

// Parse decodes an action's binding tokens. The keyboard token takes priority;
// the mouse token is used when no keyboard binding exists. Tokens are
// case-insensitive, keyboard combos are "+"-separated (e.g. "lctrl+f1").
func Parse(keyboard, mouse string) (Input, error) {
	keyboard = strings.ToLower(strings.TrimSpace(keyboard))
	mouse = strings.ToLower(strings.TrimSpace(mouse))

	if keyboard != "" {
		return parseKeyboard(keyboard)
	}
	if mouse != "" {
		return parseMouse(mouse)
	}
	return Input{}, fmt.Errorf("action has no executable binding")
}

func parseKeyboard(token string) (Input, error) {
	in := Input{Kind: Keyboard}
	for _, part := range strings.Split(token, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if applyModifier(&in.Mods, part) {
			continue
		}
		code, ok := keyCodes[part]
		if !ok {
			return Input{}, fmt.Errorf("unknown key token %q in %q", part, token)
		}
		in.Keys = append(in.Keys, code)
	}
	if len(in.Keys) == 0 {
		return Input{}, fmt.Errorf("keyboard binding %q has no non-modifier key", token)
	}
	return in, nil
}

func applyModifier(m *Modifiers, part string) bool {
	switch part {
	case "ctrl", "lctrl", "rctrl":
		m.Ctrl = true
	case "alt", "lalt", "ralt":
		m.Alt = true
	case "shift", "lshift", "rshift":
		m.Shift = true
	case "super", "lwin", "rwin", "cmd":
		m.Super = true
	default:
		return false
	}
	return true
}

func parseMouse(token string) (Input, error) {
	if btn, ok := mouseButtons[token]; ok {
		return Input{Kind: MouseButton, Button: btn}, nil
	}
	switch token {
	case "mwheel_up":
		return Input{Kind: MouseWheel, Wheel: 1}, nil
	case "mwheel_down":
		return Input{Kind: MouseWheel, Wheel: -1}, nil
	}
	return Input{}, fmt.Errorf("unknown mouse token %q", token)
}
