package keys

import "fmt"

const ESC = 0x1b

// Record binds one raw byte sequence to a logical key. A key may own
// several records, one per terminal dialect; a byte sequence belongs
// to exactly one record within a registry.
type Record struct {
	Seq     string // the raw bytes, exact match
	Key     Key
	Mods    Modifier
	Cat     Category
	Dialect Dialect
	Desc    string
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%x, mods: %s)", r.Key, r.Seq, r.Mods)
}

// Registry owns the sequence table used by a decoder. Registries are
// plain constructor-injected values, never package-level state, so
// independent decoders can carry independent tables. Registration is
// add-only and last-write-wins; records are never removed. A registry
// must not be extended while a decoder is mid-read (single-threaded
// use).
type Registry struct {
	bySeq map[string]Record
	byKey map[Key][]Record

	// Every strict prefix of every registered sequence, so the
	// decoder can tell "keep reading" from "no sequence starts
	// this way" in O(1).
	prefixes map[string]bool

	maxSeqLen int
}

// NewRegistry returns an empty registry. Most callers want
// DefaultRegistry.
func NewRegistry() *Registry {
	return &Registry{
		bySeq:    make(map[string]Record),
		byKey:    make(map[Key][]Record),
		prefixes: make(map[string]bool),
	}
}

// Register inserts rec, replacing any previous record for the same
// byte sequence. It never fails.
func (reg *Registry) Register(rec Record) {
	if old, ok := reg.bySeq[rec.Seq]; ok {
		reg.dropKeyRecord(old)
	}

	reg.bySeq[rec.Seq] = rec
	reg.byKey[rec.Key] = append(reg.byKey[rec.Key], rec)

	for i := 1; i < len(rec.Seq); i++ {
		reg.prefixes[rec.Seq[:i]] = true
	}

	if len(rec.Seq) > reg.maxSeqLen {
		reg.maxSeqLen = len(rec.Seq)
	}
}

// RegisterAll is bulk Register with the same last-write-wins
// semantics.
func (reg *Registry) RegisterAll(recs []Record) {
	for _, rec := range recs {
		reg.Register(rec)
	}
}

func (reg *Registry) dropKeyRecord(old Record) {
	recs := reg.byKey[old.Key]
	for i, r := range recs {
		if r.Seq == old.Seq {
			reg.byKey[old.Key] = append(recs[:i], recs[i+1:]...)
			break
		}
	}
	if len(reg.byKey[old.Key]) == 0 {
		delete(reg.byKey, old.Key)
	}
}

// BySequence is the exact-match lookup the decoder drives on.
func (reg *Registry) BySequence(seq string) (Record, bool) {
	rec, ok := reg.bySeq[seq]
	return rec, ok
}

// ByKey returns every dialect variant registered for a logical key.
// Order is not guaranteed.
func (reg *Registry) ByKey(k Key) []Record {
	return reg.byKey[k]
}

// Has reports whether seq is registered.
func (reg *Registry) Has(seq string) bool {
	_, ok := reg.bySeq[seq]
	return ok
}

// Count returns the number of registered sequences.
func (reg *Registry) Count() int {
	return len(reg.bySeq)
}

// Records returns every registered record, in no particular order.
func (reg *Registry) Records() []Record {
	recs := make([]Record, 0, len(reg.bySeq))
	for _, rec := range reg.bySeq {
		recs = append(recs, rec)
	}
	return recs
}

// isPrefix reports whether seq is a strict prefix of some registered
// sequence.
func (reg *Registry) isPrefix(seq string) bool {
	return reg.prefixes[seq]
}

func csi(tail string) string {
	return string(rune(ESC)) + "[" + tail
}

func ss3(tail string) string {
	return string(rune(ESC)) + "O" + tail
}

// DefaultRegistry builds the stock table: arrows, Ctrl+arrows, the
// editing block, F1-F12 (with the xterm/Linux-console split for
// F1-F4), the Enter/Tab/Escape/Backspace identities and Ctrl+A..Z.
// The Ctrl codes that alias Backspace, Tab and Enter (0x08, 0x09,
// 0x0a, 0x0d) are registered under their special-key identity
// instead.
func DefaultRegistry() *Registry {
	reg := NewRegistry()

	reg.RegisterAll([]Record{
		{csi("A"), KEY_UP, 0, CAT_ESCAPE, DIALECT_COMMON, "cursor up"},
		{csi("B"), KEY_DOWN, 0, CAT_ESCAPE, DIALECT_COMMON, "cursor down"},
		{csi("C"), KEY_RIGHT, 0, CAT_ESCAPE, DIALECT_COMMON, "cursor right"},
		{csi("D"), KEY_LEFT, 0, CAT_ESCAPE, DIALECT_COMMON, "cursor left"},

		{csi("1;5A"), KEY_CTRL_UP, MOD_CTRL, CAT_ESCAPE, DIALECT_XTERM, "ctrl cursor up"},
		{csi("1;5B"), KEY_CTRL_DOWN, MOD_CTRL, CAT_ESCAPE, DIALECT_XTERM, "ctrl cursor down"},
		{csi("1;5C"), KEY_CTRL_RIGHT, MOD_CTRL, CAT_ESCAPE, DIALECT_XTERM, "ctrl cursor right"},
		{csi("1;5D"), KEY_CTRL_LEFT, MOD_CTRL, CAT_ESCAPE, DIALECT_XTERM, "ctrl cursor left"},

		{csi("1~"), KEY_HOME, 0, CAT_ESCAPE, DIALECT_COMMON, "home"},
		{csi("4~"), KEY_END, 0, CAT_ESCAPE, DIALECT_COMMON, "end"},
		{csi("5~"), KEY_PGUP, 0, CAT_ESCAPE, DIALECT_COMMON, "page up"},
		{csi("6~"), KEY_PGDN, 0, CAT_ESCAPE, DIALECT_COMMON, "page down"},
		{csi("2~"), KEY_INSERT, 0, CAT_ESCAPE, DIALECT_COMMON, "insert"},
		{csi("3~"), KEY_DELETE, 0, CAT_ESCAPE, DIALECT_COMMON, "delete"},
	})

	// F1-F4 arrive as SS3 on xterm and as CSI 11~..14~ on the
	// Linux console. Both spellings map to the same key.
	reg.RegisterAll([]Record{
		{ss3("P"), KEY_F1, 0, CAT_ESCAPE, DIALECT_XTERM, "F1"},
		{ss3("Q"), KEY_F2, 0, CAT_ESCAPE, DIALECT_XTERM, "F2"},
		{ss3("R"), KEY_F3, 0, CAT_ESCAPE, DIALECT_XTERM, "F3"},
		{ss3("S"), KEY_F4, 0, CAT_ESCAPE, DIALECT_XTERM, "F4"},
		{csi("11~"), KEY_F1, 0, CAT_ESCAPE, DIALECT_LINUX, "F1"},
		{csi("12~"), KEY_F2, 0, CAT_ESCAPE, DIALECT_LINUX, "F2"},
		{csi("13~"), KEY_F3, 0, CAT_ESCAPE, DIALECT_LINUX, "F3"},
		{csi("14~"), KEY_F4, 0, CAT_ESCAPE, DIALECT_LINUX, "F4"},
		{csi("15~"), KEY_F5, 0, CAT_ESCAPE, DIALECT_COMMON, "F5"},
		{csi("17~"), KEY_F6, 0, CAT_ESCAPE, DIALECT_COMMON, "F6"},
		{csi("18~"), KEY_F7, 0, CAT_ESCAPE, DIALECT_COMMON, "F7"},
		{csi("19~"), KEY_F8, 0, CAT_ESCAPE, DIALECT_COMMON, "F8"},
		{csi("20~"), KEY_F9, 0, CAT_ESCAPE, DIALECT_COMMON, "F9"},
		{csi("21~"), KEY_F10, 0, CAT_ESCAPE, DIALECT_COMMON, "F10"},
		{csi("23~"), KEY_F11, 0, CAT_ESCAPE, DIALECT_COMMON, "F11"},
		{csi("24~"), KEY_F12, 0, CAT_ESCAPE, DIALECT_COMMON, "F12"},
	})

	reg.RegisterAll([]Record{
		{"\n", KEY_ENTER, 0, CAT_SPECIAL, DIALECT_COMMON, "enter (LF)"},
		{"\r", KEY_ENTER, 0, CAT_SPECIAL, DIALECT_COMMON, "enter (CR)"},
		{"\r\n", KEY_ENTER, 0, CAT_SPECIAL, DIALECT_COMMON, "enter (CRLF)"},
		{"\t", KEY_TAB, 0, CAT_SPECIAL, DIALECT_COMMON, "tab"},
		{string(rune(ESC)), KEY_ESCAPE, 0, CAT_SPECIAL, DIALECT_COMMON, "escape"},
		{"\x7f", KEY_BACKSPACE, 0, CAT_SPECIAL, DIALECT_COMMON, "backspace (DEL)"},
		{"\x08", KEY_BACKSPACE, 0, CAT_SPECIAL, DIALECT_VT100, "backspace (BS)"},
	})

	// Ctrl+A..Z occupy ASCII 1..26, minus the codes owned by the
	// special keys above.
	for code := byte(1); code <= 26; code++ {
		switch code {
		case 0x08, 0x09, 0x0a, 0x0d:
			continue
		}
		letter := 'A' + code - 1
		reg.Register(Record{
			Seq:     string(rune(code)),
			Key:     CtrlKey(letter),
			Mods:    MOD_CTRL,
			Cat:     CAT_CONTROL,
			Dialect: DIALECT_COMMON,
			Desc:    "ctrl+" + string(rune(letter)),
		})
	}

	return reg
}
