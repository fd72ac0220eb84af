package command

import (
	"fmt"
	"unicode"
)

// Accel encodes a keyboard accelerator: the base key in the low byte,
// plus modifier bits.
type Accel uint32

const (
	ShiftMask Accel = 0x100
	CtrlMask  Accel = 0x200
)

// Special base keys
const (
	EscapeKey       = 27
	DeleteKey       = 127
	FunctionKeyBase = 0xf0
)

// NewAccel encodes a key and its modifiers. Letters fold to upper case.
// Keys outside ASCII have no accelerator and encode as zero.
func NewAccel(key rune, shift, ctrl bool) Accel {
	if key <= 0 || key > unicode.MaxASCII {
		return 0
	}
	if key >= 'a' && key <= 'z' {
		key = unicode.ToUpper(key)
	}
	a := Accel(key)
	if shift {
		a |= ShiftMask
	}
	if ctrl {
		a |= CtrlMask
	}
	return a
}

// FunctionKey returns the accelerator for F1..F12
func FunctionKey(n int) Accel {
	return Accel(FunctionKeyBase + n)
}

// Key returns the base key without modifiers
func (a Accel) Key() rune { return rune(a & 0xff) }

// Shift reports the shift modifier
func (a Accel) Shift() bool { return a&ShiftMask != 0 }

// Ctrl reports the ctrl modifier
func (a Accel) Ctrl() bool { return a&CtrlMask != 0 }

// IsZero reports an empty accelerator
func (a Accel) IsZero() bool { return a == 0 }

// Label renders the accelerator the way menus show it
func (a Accel) Label() string {
	if a.IsZero() {
		return ""
	}
	var prefix string
	if a.Ctrl() {
		prefix += "Ctrl+"
	}
	if a.Shift() {
		prefix += "Shift+"
	}
	k := a.Key()
	switch {
	case k == EscapeKey:
		return prefix + "Esc"
	case k == DeleteKey:
		return prefix + "Del"
	case k == '\t':
		return prefix + "Tab"
	case k > FunctionKeyBase && k <= FunctionKeyBase+12:
		return prefix + fmt.Sprintf("F%d", k-FunctionKeyBase)
	}
	return prefix + string(k)
}

// TooltipSuffix returns the text appended to a toolbar tooltip: only
// letters, digits and '[' are shown, and never with Ctrl.
func (a Accel) TooltipSuffix() string {
	if a.Ctrl() {
		return ""
	}
	k := a.Key()
	if !isTooltipKey(k) {
		return ""
	}
	if a.Shift() {
		return fmt.Sprintf(" (Shift+%c)", k)
	}
	return fmt.Sprintf(" (%c)", k)
}

func isTooltipKey(k rune) bool {
	return (k >= 'A' && k <= 'Z') || (k >= 'a' && k <= 'z') || (k >= '0' && k <= '9') || k == '['
}
