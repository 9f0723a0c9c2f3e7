// Package keys models logical keyboard input: the closed set of key
// tokens an application routes on, the registry of raw byte sequences
// that produce them, and the decoder that turns a raw terminal byte
// stream into tokens.
package keys

import (
	"encoding/hex"
	"strings"
)

// Key is a logical key name. Keys are plain comparable strings so the
// application layer can switch on them directly.
type Key string

// Modifier is a bitmap of the modifier keys held for a sequence.
type Modifier uint8

const (
	MOD_CTRL  Modifier = 1 << 0
	MOD_ALT   Modifier = 1 << 1
	MOD_SHIFT Modifier = 1 << 2
)

func (m Modifier) Has(mod Modifier) bool {
	return (m & mod) != 0
}

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}

	parts := make([]string, 0, 3)
	if m.Has(MOD_CTRL) {
		parts = append(parts, "ctrl")
	}
	if m.Has(MOD_ALT) {
		parts = append(parts, "alt")
	}
	if m.Has(MOD_SHIFT) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Category classifies how a sequence reaches us on the wire.
type Category int

const (
	CAT_ESCAPE    Category = iota // multi-byte, ESC introduced
	CAT_CONTROL                   // single C0 control byte
	CAT_SPECIAL                   // single byte with a special identity (tab, enter, ...)
	CAT_PRINTABLE                 // plain text
)

// Dialect is the terminal family a sequence variant belongs to. A
// logical key may carry one record per dialect.
type Dialect int

const (
	DIALECT_COMMON Dialect = iota
	DIALECT_XTERM
	DIALECT_LINUX
	DIALECT_VT100
	DIALECT_CUSTOM
)

// Navigation and editing keys.
const (
	KEY_UP    Key = "UP"
	KEY_DOWN  Key = "DOWN"
	KEY_LEFT  Key = "LEFT"
	KEY_RIGHT Key = "RIGHT"

	KEY_CTRL_UP    Key = "CTRL_UP"
	KEY_CTRL_DOWN  Key = "CTRL_DOWN"
	KEY_CTRL_LEFT  Key = "CTRL_LEFT"
	KEY_CTRL_RIGHT Key = "CTRL_RIGHT"

	KEY_HOME   Key = "HOME"
	KEY_END    Key = "END"
	KEY_PGUP   Key = "PGUP"
	KEY_PGDN   Key = "PGDN"
	KEY_INSERT Key = "INSERT"
	KEY_DELETE Key = "DELETE"
)

const (
	KEY_F1  Key = "F1"
	KEY_F2  Key = "F2"
	KEY_F3  Key = "F3"
	KEY_F4  Key = "F4"
	KEY_F5  Key = "F5"
	KEY_F6  Key = "F6"
	KEY_F7  Key = "F7"
	KEY_F8  Key = "F8"
	KEY_F9  Key = "F9"
	KEY_F10 Key = "F10"
	KEY_F11 Key = "F11"
	KEY_F12 Key = "F12"
)

const (
	KEY_ENTER     Key = "ENTER"
	KEY_TAB       Key = "TAB"
	KEY_ESCAPE    Key = "ESCAPE"
	KEY_BACKSPACE Key = "BACKSPACE"
)

const unknownPrefix = "UNKNOWN_"

// UnknownKey tags a byte sequence we couldn't map. The raw bytes ride
// along hex encoded so the application can log exactly what arrived.
func UnknownKey(raw []byte) Key {
	return Key(unknownPrefix + hex.EncodeToString(raw))
}

// IsUnknown reports whether k came out of UnknownKey.
func (k Key) IsUnknown() bool {
	return strings.HasPrefix(string(k), unknownPrefix)
}

// CtrlKey returns the logical key for Ctrl plus an upper case letter.
// Letters whose control codes alias Backspace, Tab or Enter (H, I, J,
// M) still produce a CTRL_x name here; the default registry simply
// never maps those codes to it.
func CtrlKey(letter byte) Key {
	return Key("CTRL_" + string(rune(letter)))
}

// PrintableKey is the identity of a plain text rune.
func PrintableKey(r rune) Key {
	return Key(r)
}
