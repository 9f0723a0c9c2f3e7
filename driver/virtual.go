package driver

import (
	"bytes"
	"fmt"

	"github.com/termloom/termloom/keys"
	"github.com/termloom/termloom/vt"
)

// A queued entry is either one scripted key or a frame boundary: the
// sentinel that ends one batch of scripted input so a test can assert
// per-frame behavior.
type queued struct {
	key   keys.Key
	frame bool
}

// Virtual is the in-memory driver: scripted key input, captured
// output, and a screen snapshot computed from the captured bytes. It
// makes the whole stack above it deterministic and replayable without
// a TTY.
type Virtual struct {
	cols, rows int
	queue      []queued
	out        bytes.Buffer
}

// NewVirtual builds a virtual terminal of the given size. Dimensions
// must be positive.
func NewVirtual(cols, rows int) *Virtual {
	v := &Virtual{}
	v.SetSize(cols, rows)
	return v
}

// SetSize reconfigures the reported terminal dimensions. Like the
// screen model, a non-positive dimension fails fast.
func (v *Virtual) SetSize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("driver: invalid virtual size %dx%d", cols, rows))
	}
	v.cols = cols
	v.rows = rows
}

func (v *Virtual) Size() (cols, rows int) {
	return v.cols, v.rows
}

// QueueKeys appends scripted keys to the input queue.
func (v *Virtual) QueueKeys(ks ...keys.Key) {
	for _, k := range ks {
		v.queue = append(v.queue, queued{key: k})
	}
}

// QueueFrameBoundary appends the no-more-input-this-frame sentinel.
// ReadInput consumes it and reports no key; the keys queued after it
// become visible on the following read.
func (v *Virtual) QueueFrameBoundary() {
	v.queue = append(v.queue, queued{frame: true})
}

// HasInput reports whether a key (not a boundary) is next in line.
func (v *Virtual) HasInput() bool {
	return len(v.queue) > 0 && !v.queue[0].frame
}

// ReadInput pops the next queue entry, strictly FIFO. A frame
// boundary is consumed and reported as "nothing available".
func (v *Virtual) ReadInput() (keys.Key, bool) {
	if len(v.queue) == 0 {
		return "", false
	}

	e := v.queue[0]
	v.queue = v.queue[1:]
	if e.frame {
		return "", false
	}
	return e.key, true
}

// RemainingInput counts the queue entries not yet consumed, frame
// boundaries included.
func (v *Virtual) RemainingInput() int {
	return len(v.queue)
}

// Write appends to the output capture.
func (v *Virtual) Write(p []byte) (int, error) {
	return v.out.Write(p)
}

// Output returns a copy of everything written since the last reset.
func (v *Virtual) Output() []byte {
	return append([]byte(nil), v.out.Bytes()...)
}

// ClearOutput drops the captured output.
func (v *Virtual) ClearOutput() {
	v.out.Reset()
}

// Snapshot interprets the captured output on a fresh screen of the
// current size and returns the resulting grid.
func (v *Virtual) Snapshot() *vt.Snapshot {
	s := vt.NewScreen(v.cols, v.rows)
	s.Write(v.out.Bytes())
	return s.Snapshot()
}

// Init clears the output capture: a freshly initialized terminal
// starts from a clean screen, matching the real driver's switch to
// the alternate screen.
func (v *Virtual) Init() error {
	v.out.Reset()
	return nil
}

// Cleanup is a no-op; nothing to restore in memory.
func (v *Virtual) Cleanup() error {
	return nil
}

// Interactive is always false for a virtual terminal.
func (v *Virtual) Interactive() bool {
	return false
}

var _ Driver = (*Virtual)(nil)
