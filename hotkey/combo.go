package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Combo is a parsed global hotkey combination.
type Combo struct {
	Mods []hotkey.Modifier
	Key  hotkey.Key
}

// comboKeys maps combo key tokens to golang.design key codes. Only tokens
// available on every platform are listed.
var comboKeys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space": hotkey.KeySpace,
}

// ParseCombo decodes a "+"-separated combo like "ctrl+shift+1". Ctrl and
// shift are the modifiers every platform supports.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	haveKey := false
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
		case "ctrl":
			c.Mods = append(c.Mods, hotkey.ModCtrl)
		case "shift":
			c.Mods = append(c.Mods, hotkey.ModShift)
		default:
			key, ok := comboKeys[part]
			if !ok {
				return Combo{}, fmt.Errorf("unsupported combo token %q in %q", part, s)
			}
			if haveKey {
				return Combo{}, fmt.Errorf("combo %q has more than one non-modifier key", s)
			}
			c.Key = key
			haveKey = true
		}
	}
	if !haveKey {
		return Combo{}, fmt.Errorf("combo %q has no key", s)
	}
	return c, nil
}
