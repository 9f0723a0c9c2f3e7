package vt

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Interpreter states. The parser is a small explicit state machine:
// plain text, post-ESC, CSI parameter accumulation, and OSC swallow
// (window-title chatter must not corrupt the grid).
type pState uint8

const (
	stGround pState = iota
	stEscape
	stCSI
	stOSC
	stOSCEsc // saw ESC inside OSC, expecting ST
)

// Write feeds application output through the interpreter, mutating
// the screen. It accepts any byte stream: truncated or unknown escape
// sequences are consumed without effect, never an error. Implements
// io.Writer so a driver can hand the screen straight to anything that
// writes terminal output.
func (s *Screen) Write(p []byte) (int, error) {
	for _, b := range p {
		s.parseByte(b)
	}
	return len(p), nil
}

// WriteString is a convenience wrapper over Write.
func (s *Screen) WriteString(str string) {
	s.Write([]byte(str))
}

func (s *Screen) parseByte(b byte) {
	switch s.state {
	case stGround:
		s.ground(b)
	case stEscape:
		s.escape(b)
	case stCSI:
		s.csiByte(b)
	case stOSC:
		if b == BEL {
			s.state = stGround
		} else if b == ESC {
			s.state = stOSCEsc
		}
	case stOSCEsc:
		// ESC \ is ST; anything else still ends the string.
		s.state = stGround
	}
}

func (s *Screen) ground(b byte) {
	switch {
	case b == ESC:
		s.utf8buf = s.utf8buf[:0]
		s.state = stEscape
	case b == CR:
		s.carriageReturn()
	case b == LF, b == VT, b == FF:
		s.lineFeed()
	case b == TAB:
		s.tab()
	case b == BS:
		s.backspace()
	case b == BEL:
		// swallow
	case b < 0x20 || b == 0x7f:
		slog.Debug("ignoring control byte", "byte", fmt.Sprintf("%#02x", b))
	case b < utf8.RuneSelf && len(s.utf8buf) == 0:
		s.print(rune(b))
	default:
		s.utf8byte(b)
	}
}

// utf8byte accumulates multi-byte text, tolerating runes split across
// Write calls.
func (s *Screen) utf8byte(b byte) {
	s.utf8buf = append(s.utf8buf, b)
	if !utf8.FullRune(s.utf8buf) {
		if len(s.utf8buf) >= utf8.UTFMax {
			slog.Debug("dropping undecodable bytes", "bytes", fmt.Sprintf("%x", s.utf8buf))
			s.utf8buf = s.utf8buf[:0]
		}
		return
	}

	r, size := utf8.DecodeRune(s.utf8buf)
	if r == utf8.RuneError && size <= 1 {
		// Only the lead byte is bad; whatever follows it may be
		// the start of valid input, so reprocess it.
		slog.Debug("dropping undecodable byte", "byte", fmt.Sprintf("%#02x", s.utf8buf[0]))
		rest := append([]byte(nil), s.utf8buf[1:]...)
		s.utf8buf = s.utf8buf[:0]
		for _, rb := range rest {
			s.parseByte(rb)
		}
		return
	}

	s.utf8buf = s.utf8buf[:0]
	s.print(r)
}

func (s *Screen) escape(b byte) {
	switch b {
	case CSI:
		s.params.reset()
		s.rawP = s.rawP[:0]
		s.private = false
		s.state = stCSI
	case OSC:
		s.state = stOSC
	default:
		// Two-byte ESC sequences (charset selection, keypad
		// modes, ...) have no grid-visible effect here.
		slog.Debug("swallowing ESC sequence", "final", string(rune(b)))
		s.state = stGround
	}
}

func (s *Screen) csiByte(b byte) {
	switch {
	case b >= '0' && b <= '9', b == ';':
		s.params.addDigit(b)
		s.rawP = append(s.rawP, b)
	case b >= 0x3c && b <= 0x3f: // private markers ? > < =
		s.private = true
		s.rawP = append(s.rawP, b)
	case b >= 0x20 && b <= 0x2f: // intermediate bytes, carried but unused
		s.rawP = append(s.rawP, b)
	case b >= 0x40 && b <= 0x7e:
		s.dispatchCSI(b)
		s.state = stGround
	case b == ESC:
		// Aborted sequence; restart parsing at the ESC.
		s.state = stEscape
	default:
		slog.Debug("ignoring byte inside CSI", "byte", fmt.Sprintf("%#02x", b))
	}
}

func (s *Screen) dispatchCSI(last byte) {
	switch last {
	case CSI_CUP, CSI_HVP:
		row, _ := s.params.getItem(0, 1)
		col, _ := s.params.getItem(1, 1)
		if row < 1 {
			row = 1
		}
		if col < 1 {
			col = 1
		}
		s.cursorMoveAbs(row-1, col-1)
	case CSI_CUU:
		_, row := s.Cursor()
		s.cursorMoveAbs(row-s.count(), s.cur.col)
	case CSI_CUD:
		_, row := s.Cursor()
		s.cursorMoveAbs(row+s.count(), s.cur.col)
	case CSI_CUF:
		s.cursorMoveAbs(s.cur.row, s.cur.col+s.count())
	case CSI_CUB:
		s.cursorMoveAbs(s.cur.row, s.cur.col-s.count())
	case CSI_ED:
		m, _ := s.params.getItem(0, 0)
		s.eraseInDisplay(m)
	case CSI_EL:
		m, _ := s.params.getItem(0, 0)
		s.eraseLine(m)
	case CSI_SGR:
		s.selectGraphicRendition()
	case CSI_MODE_SET, CSI_MODE_RESET:
		// Alternate screen, cursor visibility and friends:
		// recognized and consumed, no grid model effect.
		slog.Debug("swallowing mode toggle", "params", string(s.rawP), "set", last == CSI_MODE_SET)
	default:
		slog.Debug("unimplemented CSI code", "last", string(rune(last)), "params", string(s.rawP))
	}
}

// count is the movement repeat parameter: defaults to 1, and an
// explicit 0 means 1 as well.
func (s *Screen) count() int {
	n, _ := s.params.getItem(0, 1)
	if n < 1 {
		n = 1
	}
	return n
}

// selectGraphicRendition updates the pen. The parameter string is
// kept literally: the screen does not model colors, it records which
// rendition each cell was written under.
func (s *Screen) selectGraphicRendition() {
	if s.private {
		slog.Debug("swallowing private SGR", "params", string(s.rawP))
		return
	}

	raw := string(s.rawP)
	if raw == "" || raw == "0" {
		s.pen = ""
		return
	}
	s.pen = raw
}
