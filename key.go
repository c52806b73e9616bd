package grid

// Scancode identifies a physical key as reported by the platform, before
// any layout mapping. The set covers a standard US keyboard; platform
// adapters translate their native codes into these.
type Scancode uint16

const (
	ScancodeUnknown Scancode = iota

	ScancodeA
	ScancodeB
	ScancodeC
	ScancodeD
	ScancodeE
	ScancodeF
	ScancodeG
	ScancodeH
	ScancodeI
	ScancodeJ
	ScancodeK
	ScancodeL
	ScancodeM
	ScancodeN
	ScancodeO
	ScancodeP
	ScancodeQ
	ScancodeR
	ScancodeS
	ScancodeT
	ScancodeU
	ScancodeV
	ScancodeW
	ScancodeX
	ScancodeY
	ScancodeZ

	Scancode0
	Scancode1
	Scancode2
	Scancode3
	Scancode4
	Scancode5
	Scancode6
	Scancode7
	Scancode8
	Scancode9

	ScancodeSpace
	ScancodeMinus
	ScancodeEquals
	ScancodeLeftBracket
	ScancodeRightBracket
	ScancodeBackslash
	ScancodeSemicolon
	ScancodeApostrophe
	ScancodeGrave
	ScancodeComma
	ScancodePeriod
	ScancodeSlash

	ScancodeEnter
	ScancodeTab
	ScancodeBackspace
	ScancodeEscape
	ScancodeInsert
	ScancodeDelete
	ScancodeHome
	ScancodeEnd
	ScancodePageUp
	ScancodePageDown

	ScancodeLeft
	ScancodeRight
	ScancodeUp
	ScancodeDown

	ScancodeF1
	ScancodeF2
	ScancodeF3
	ScancodeF4
	ScancodeF5
	ScancodeF6
	ScancodeF7
	ScancodeF8
	ScancodeF9
	ScancodeF10
	ScancodeF11
	ScancodeF12
)

// Modifiers is a bitmask of modifier keys held during an input event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether all modifiers in mask are held.
func (m Modifiers) Has(mask Modifiers) bool { return m&mask == mask }

// KeyCode classifies an abstract key. KeyRune marks a printable key whose
// character is in Key.Rune; all other codes are named keys.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Key is an abstract key event delivered to the application.
type Key struct {
	Code KeyCode
	Rune rune // valid when Code == KeyRune
	Mods Modifiers
}
