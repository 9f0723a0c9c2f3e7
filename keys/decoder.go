package keys

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Longest escape sequence we'll accumulate before giving up on a
// match.
const MAX_SEQ_LEN = 16

// ByteSource yields one byte at a time without blocking. A false
// return means "no data right now", not end of stream; the decoder
// treats the drained source as the edge of the current read burst.
type ByteSource interface {
	TryReadByte() (byte, bool)
}

// BufferSource is an in-memory ByteSource. The real driver feeds it
// from a non-blocking file read; tests feed it literal sequences.
type BufferSource struct {
	buf []byte
}

func NewBufferSource() *BufferSource {
	return &BufferSource{buf: make([]byte, 0, 64)}
}

func (s *BufferSource) Feed(p []byte) {
	s.buf = append(s.buf, p...)
}

func (s *BufferSource) Len() int {
	return len(s.buf)
}

func (s *BufferSource) TryReadByte() (byte, bool) {
	if len(s.buf) == 0 {
		return 0, false
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b, true
}

// Decoder turns the raw byte stream from a terminal into logical
// keys. It owns its registry and source; neither is shared with any
// other decoder instance.
type Decoder struct {
	reg *Registry
	src ByteSource

	// Pushback stack for lookahead past the end of a candidate
	// sequence.
	pending []byte
}

func NewDecoder(reg *Registry, src ByteSource) *Decoder {
	return &Decoder{reg: reg, src: src, pending: make([]byte, 0, 1)}
}

// Next produces the next logical key, or false if the source has no
// input right now. It never blocks and never errors: anything
// unmapped degrades to a printable key or an UNKNOWN_<hex> marker.
func (d *Decoder) Next() (Key, bool) {
	b, ok := d.readByte()
	if !ok {
		return "", false
	}

	if b == ESC {
		return d.decodeEscape()
	}
	return d.decodePlain(b)
}

func (d *Decoder) readByte() (byte, bool) {
	if n := len(d.pending); n > 0 {
		b := d.pending[n-1]
		d.pending = d.pending[:n-1]
		return b, true
	}
	return d.src.TryReadByte()
}

func (d *Decoder) unreadByte(b byte) {
	d.pending = append(d.pending, b)
}

// unreadBytes pushes p back so subsequent reads see it in order.
func (d *Decoder) unreadBytes(p []byte) {
	for i := len(p) - 1; i >= 0; i-- {
		d.unreadByte(p[i])
	}
}

// decodeEscape accumulates bytes after ESC until they exactly match a
// registered sequence, until no registered sequence starts that way,
// or until the read burst drains. An exact match never wins early
// while a longer registered sequence could still complete from bytes
// already available.
func (d *Decoder) decodeEscape() (Key, bool) {
	seq := []byte{ESC}

	// When an exact match is itself the prefix of a longer
	// registered sequence, remember it; if the longer candidate
	// never completes, the shorter key still wins and the extra
	// bytes go back to the stream.
	var fallback Key
	matched := 0

	for len(seq) < MAX_SEQ_LEN {
		b, ok := d.readByte()
		if !ok {
			break
		}
		seq = append(seq, b)

		if rec, exact := d.reg.BySequence(string(seq)); exact {
			if d.reg.isPrefix(string(seq)) {
				if nb, more := d.readByte(); more {
					d.unreadByte(nb)
					fallback = rec.Key
					matched = len(seq)
					continue
				}
			}
			return rec.Key, true
		}

		if d.reg.isPrefix(string(seq)) {
			continue
		}

		if matched > 0 {
			d.unreadBytes(seq[matched:])
			return fallback, true
		}

		// Prefix miss. Drain a CSI through its final byte so
		// stale parameter bytes don't leak back in as text.
		if len(seq) > 2 && seq[1] == '[' {
			for !isCSIFinal(b) && len(seq) < MAX_SEQ_LEN {
				nb, more := d.readByte()
				if !more {
					break
				}
				seq = append(seq, nb)
				b = nb
			}
		}

		slog.Debug("unrecognized escape sequence", "seq", fmt.Sprintf("%x", seq))
		return UnknownKey(seq), true
	}

	// Burst drained (or sequence over-long). A bare ESC lands
	// here and resolves through its own registry entry.
	if rec, ok := d.reg.BySequence(string(seq)); ok {
		return rec.Key, true
	}

	if matched > 0 {
		d.unreadBytes(seq[matched:])
		return fallback, true
	}

	slog.Debug("incomplete escape sequence", "seq", fmt.Sprintf("%x", seq))
	return UnknownKey(seq), true
}

// decodePlain resolves a non-ESC lead byte: registered single-byte
// keys (Ctrl codes, Tab, Enter, Backspace), CRLF-style multi-byte
// entries, and plain text.
func (d *Decoder) decodePlain(b byte) (Key, bool) {
	seq := []byte{b}

	// Grow while a longer registered sequence could match, so
	// CRLF beats its CR prefix within one burst.
	for d.reg.isPrefix(string(seq)) {
		nb, ok := d.readByte()
		if !ok {
			break
		}
		grown := append(seq, nb)
		if d.reg.Has(string(grown)) || d.reg.isPrefix(string(grown)) {
			seq = grown
			continue
		}
		d.unreadByte(nb)
		break
	}

	if rec, ok := d.reg.BySequence(string(seq)); ok {
		return rec.Key, true
	}

	if len(seq) > 1 {
		slog.Debug("unmatched multi-byte input", "seq", fmt.Sprintf("%x", seq))
		return UnknownKey(seq), true
	}

	return d.plainRune(b)
}

func (d *Decoder) plainRune(b byte) (Key, bool) {
	switch {
	case b < 0x20 || b == 0x7f:
		slog.Debug("unmapped control byte", "byte", fmt.Sprintf("%#02x", b))
		return UnknownKey([]byte{b}), true
	case b < utf8.RuneSelf:
		return PrintableKey(rune(b)), true
	}

	// Multi-byte text: pull the rest of one rune's encoding from
	// the same burst.
	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		nb, ok := d.readByte()
		if !ok {
			break
		}
		buf = append(buf, nb)
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		slog.Debug("undecodable text bytes", "seq", fmt.Sprintf("%x", buf))
		return UnknownKey(buf), true
	}
	return PrintableKey(r), true
}

func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}
