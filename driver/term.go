package driver

import (
	"errors"
	"log/slog"
	"os"
	"syscall"

	"github.com/creack/pty"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/termloom/termloom/keys"
	"github.com/termloom/termloom/vt"
)

// Term drives a real terminal: raw mode on the input stream, the
// alternate screen on the output, non-blocking byte reads decoded
// into logical keys.
type Term struct {
	in, out *os.File
	tout    *termenv.Output

	src *keys.BufferSource
	dec *keys.Decoder

	orig    *term.State // cooked-mode state to restore, nil if raw mode is off
	inited  bool
	readBuf []byte
}

// NewTerm builds a driver over the given streams (usually os.Stdin
// and os.Stdout) with the default key sequence table.
func NewTerm(in, out *os.File) *Term {
	return NewTermWithRegistry(in, out, keys.DefaultRegistry())
}

// NewTermWithRegistry lets the caller supply a sequence table, e.g.
// one extended with application shortcuts. The registry becomes owned
// by this driver.
func NewTermWithRegistry(in, out *os.File, reg *keys.Registry) *Term {
	src := keys.NewBufferSource()
	return &Term{
		in:      in,
		out:     out,
		tout:    termenv.NewOutput(out),
		src:     src,
		dec:     keys.NewDecoder(reg, src),
		readBuf: make([]byte, 256),
	}
}

// Size queries the OS for the terminal dimensions. When the query
// fails (not a tty, or the ioctl is refused) it falls back to the
// classic 80x24.
func (t *Term) Size() (cols, rows int) {
	r, c, err := pty.Getsize(t.out)
	if err != nil || r <= 0 || c <= 0 {
		slog.Debug("terminal size query failed, using fallback", "err", err)
		return vt.DEF_COLS, vt.DEF_ROWS
	}
	return c, r
}

// fill drains whatever bytes the input stream has right now into the
// decoder's source. The fd is non-blocking, so an empty stream
// surfaces as EAGAIN rather than a stall.
func (t *Term) fill() {
	for {
		n, err := t.in.Read(t.readBuf)
		if n > 0 {
			t.src.Feed(t.readBuf[:n])
		}
		if err != nil || n < len(t.readBuf) {
			if err != nil && !errors.Is(err, syscall.EAGAIN) && !errors.Is(err, os.ErrDeadlineExceeded) {
				slog.Debug("input read error", "err", err)
			}
			return
		}
	}
}

func (t *Term) HasInput() bool {
	t.fill()
	return t.src.Len() > 0
}

func (t *Term) ReadInput() (keys.Key, bool) {
	t.fill()
	return t.dec.Next()
}

func (t *Term) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Interactive reports whether both ends are actual terminal devices.
func (t *Term) Interactive() bool {
	return isatty.IsTerminal(t.in.Fd()) && isatty.IsTerminal(t.out.Fd())
}

// Init switches the terminal into application mode: raw input, the
// alternate screen, cursor hidden. On a non-interactive stream, or
// when raw mode is refused, the driver degrades to plain reads
// instead of failing. Calling Init twice is a no-op the second time.
func (t *Term) Init() error {
	if t.inited {
		return nil
	}

	// Non-blocking reads are required even when degraded, so the
	// poll loop never stalls on an idle stream.
	if err := syscall.SetNonblock(int(t.in.Fd()), true); err != nil {
		slog.Debug("couldn't set input non-blocking", "err", err)
	}

	if t.Interactive() {
		orig, err := term.MakeRaw(int(t.in.Fd()))
		if err != nil {
			slog.Error("couldn't make terminal raw, staying cooked", "err", err)
		} else {
			t.orig = orig
		}

		t.tout.AltScreen()
		t.tout.HideCursor()
	}

	t.inited = true
	return nil
}

// Cleanup restores the terminal. Safe without a prior Init and safe
// to call twice.
func (t *Term) Cleanup() error {
	if !t.inited {
		return nil
	}

	if t.orig != nil {
		if err := term.Restore(int(t.in.Fd()), t.orig); err != nil {
			slog.Error("couldn't restore terminal state", "err", err)
		}
		t.orig = nil
	}

	if t.Interactive() {
		t.tout.ShowCursor()
		t.tout.ExitAltScreen()
	}

	if err := syscall.SetNonblock(int(t.in.Fd()), false); err != nil {
		slog.Debug("couldn't restore blocking input", "err", err)
	}

	t.inited = false
	return nil
}

var _ Driver = (*Term)(nil)
