package binding

import "github.com/micmonay/keybd_event"

// keyCodes maps binding key tokens to keybd_event virtual-key codes.
var keyCodes = map[string]int{
	"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C,
	"d": keybd_event.VK_D, "e": keybd_event.VK_E, "f": keybd_event.VK_F,
	"g": keybd_event.VK_G, "h": keybd_event.VK_H, "i": keybd_event.VK_I,
	"j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
	"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O,
	"p": keybd_event.VK_P, "q": keybd_event.VK_Q, "r": keybd_event.VK_R,
	"s": keybd_event.VK_S, "t": keybd_event.VK_T, "u": keybd_event.VK_U,
	"v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
	"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,

	"0": keybd_event.VK_0, "1": keybd_event.VK_1, "2": keybd_event.VK_2,
	"3": keybd_event.VK_3, "4": keybd_event.VK_4, "5": keybd_event.VK_5,
	"6": keybd_event.VK_6, "7": keybd_event.VK_7, "8": keybd_event.VK_8,
	"9": keybd_event.VK_9,

	"f1": keybd_event.VK_F1, "f2": keybd_event.VK_F2, "f3": keybd_event.VK_F3,
	"f4": keybd_event.VK_F4, "f5": keybd_event.VK_F5, "f6": keybd_event.VK_F6,
	"f7": keybd_event.VK_F7, "f8": keybd_event.VK_F8, "f9": keybd_event.VK_F9,
	"f10": keybd_event.VK_F10, "f11": keybd_event.VK_F11, "f12": keybd_event.VK_F12,

	"space": keybd_event.VK_SPACE,
	"enter": keybd_event.VK_ENTER,
	"tab":   keybd_event.VK_TAB,
	"esc":   keybd_event.VK_ESC,

	"up":    keybd_event.VK_UP,
	"down":  keybd_event.VK_DOWN,
	"left":  keybd_event.VK_LEFT,
	"right": keybd_event.VK_RIGHT,

	// Punctuation rows use keybd_event's cross-platform SP aliases:
	// - = [ ] ; ' ` \ , . /
	"minus":      keybd_event.VK_SP1,
	"equals":     keybd_event.VK_SP2,
	"lbracket":   keybd_event.VK_SP3,
	"rbracket":   keybd_event.VK_SP4,
	"semicolon":  keybd_event.VK_SP5,
	"apostrophe": keybd_event.VK_SP6,
	"grave":      keybd_event.VK_SP7,
	"backslash":  keybd_event.VK_SP8,
	"comma":      keybd_event.VK_SP9,
	"period":     keybd_event.VK_SP10,
	"slash":      keybd_event.VK_SP11,
}
