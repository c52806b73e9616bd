package grid

// shiftedDigits holds the US-layout shifted characters for digits 0-9.
var shiftedDigits = [10]rune{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}

// MapKey translates a raw scancode and modifier state into an abstract key.
// It is a pure function: no state, no side effects. Scancodes with no
// mapping return ok == false; the caller drops them. Modifiers pass through
// unchanged on every mapped key.
//
// Printable keys map to KeyRune with the US-layout character, honoring
// shift. Named keys (Enter, arrows, function keys, ...) map to their
// KeyCode with Rune left zero.
func MapKey(sc Scancode, mods Modifiers) (Key, bool) {
	shift := mods.Has(ModShift)

	if sc >= ScancodeA && sc <= ScancodeZ {
		r := 'a' + rune(sc-ScancodeA)
		if shift {
			r = 'A' + rune(sc-ScancodeA)
		}
		return Key{Code: KeyRune, Rune: r, Mods: mods}, true
	}

	if sc >= Scancode0 && sc <= Scancode9 {
		r := '0' + rune(sc-Scancode0)
		if shift {
			r = shiftedDigits[sc-Scancode0]
		}
		return Key{Code: KeyRune, Rune: r, Mods: mods}, true
	}

	if sc >= ScancodeF1 && sc <= ScancodeF12 {
		return Key{Code: KeyF1 + KeyCode(sc-ScancodeF1), Mods: mods}, true
	}

	if base, shifted, ok := punctRune(sc); ok {
		r := base
		if shift {
			r = shifted
		}
		return Key{Code: KeyRune, Rune: r, Mods: mods}, true
	}

	if code, ok := namedKey(sc); ok {
		return Key{Code: code, Mods: mods}, true
	}

	return Key{}, false
}

// punctRune returns the base and shifted characters for US-layout
// punctuation scancodes.
func punctRune(sc Scancode) (base, shifted rune, ok bool) {
	switch sc {
	case ScancodeSpace:
		return ' ', ' ', true
	case ScancodeMinus:
		return '-', '_', true
	case ScancodeEquals:
		return '=', '+', true
	case ScancodeLeftBracket:
		return '[', '{', true
	case ScancodeRightBracket:
		return ']', '}', true
	case ScancodeBackslash:
		return '\\', '|', true
	case ScancodeSemicolon:
		return ';', ':', true
	case ScancodeApostrophe:
		return '\'', '"', true
	case ScancodeGrave:
		return '`', '~', true
	case ScancodeComma:
		return ',', '<', true
	case ScancodePeriod:
		return '.', '>', true
	case ScancodeSlash:
		return '/', '?', true
	}
	return 0, 0, false
}

// namedKey maps non-printable scancodes to their abstract key codes.
func namedKey(sc Scancode) (KeyCode, bool) {
	switch sc {
	case ScancodeEnter:
		return KeyEnter, true
	case ScancodeTab:
		return KeyTab, true
	case ScancodeBackspace:
		return KeyBackspace, true
	case ScancodeEscape:
		return KeyEscape, true
	case ScancodeInsert:
		return KeyInsert, true
	case ScancodeDelete:
		return KeyDelete, true
	case ScancodeHome:
		return KeyHome, true
	case ScancodeEnd:
		return KeyEnd, true
	case ScancodePageUp:
		return KeyPageUp, true
	case ScancodePageDown:
		return KeyPageDown, true
	case ScancodeLeft:
		return KeyLeft, true
	case ScancodeRight:
		return KeyRight, true
	case ScancodeUp:
		return KeyUp, true
	case ScancodeDown:
		return KeyDown, true
	}
	return 0, false
}
