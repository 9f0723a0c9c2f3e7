package driver

import (
	"testing"

	"github.com/termloom/termloom/keys"
)

func TestVirtualInputFIFO(t *testing.T) {
	v := NewVirtual(80, 24)
	v.QueueKeys(keys.KEY_UP, keys.KEY_DOWN, keys.KEY_ENTER)

	want := []keys.Key{keys.KEY_UP, keys.KEY_DOWN, keys.KEY_ENTER}
	for i, w := range want {
		if !v.HasInput() {
			t.Fatalf("step %d: HasInput() = false, want true", i)
		}
		k, ok := v.ReadInput()
		if !ok || k != w {
			t.Errorf("step %d: ReadInput() = (%q, %t), want (%q, true)", i, k, ok, w)
		}
	}

	if v.HasInput() {
		t.Error("HasInput() = true after draining queue")
	}
	if k, ok := v.ReadInput(); ok {
		t.Errorf("ReadInput() on empty queue = (%q, true), want no key", k)
	}
}

func TestVirtualFrameBoundary(t *testing.T) {
	v := NewVirtual(80, 24)
	v.QueueKeys(keys.KEY_UP)
	v.QueueFrameBoundary()
	v.QueueKeys(keys.KEY_DOWN)

	if k, ok := v.ReadInput(); !ok || k != keys.KEY_UP {
		t.Errorf("ReadInput() = (%q, %t), want (%q, true)", k, ok, keys.KEY_UP)
	}

	// The boundary is next: nothing visible this frame.
	if v.HasInput() {
		t.Error("HasInput() = true at frame boundary, want false")
	}
	if k, ok := v.ReadInput(); ok {
		t.Errorf("ReadInput() at boundary = (%q, true), want no key", k)
	}

	// Consuming the boundary exposes the next frame's keys.
	if !v.HasInput() {
		t.Error("HasInput() = false after boundary consumed, want true")
	}
	if k, ok := v.ReadInput(); !ok || k != keys.KEY_DOWN {
		t.Errorf("ReadInput() = (%q, %t), want (%q, true)", k, ok, keys.KEY_DOWN)
	}
}

func TestVirtualRemainingInput(t *testing.T) {
	v := NewVirtual(80, 24)
	v.QueueKeys(keys.KEY_TAB, keys.KEY_TAB)
	v.QueueFrameBoundary()

	if got := v.RemainingInput(); got != 3 {
		t.Errorf("RemainingInput() = %d, want 3", got)
	}
	v.ReadInput()
	if got := v.RemainingInput(); got != 2 {
		t.Errorf("RemainingInput() = %d, want 2", got)
	}
}

func TestVirtualOutputCapture(t *testing.T) {
	v := NewVirtual(80, 24)
	v.Write([]byte("hello "))
	v.Write([]byte("world"))

	if got := string(v.Output()); got != "hello world" {
		t.Errorf("Output() = %q, want %q", got, "hello world")
	}

	// Output returns a copy; mutating it must not touch the capture.
	out := v.Output()
	out[0] = 'X'
	if got := string(v.Output()); got != "hello world" {
		t.Errorf("Output() after caller mutation = %q, want %q", got, "hello world")
	}

	v.ClearOutput()
	if got := v.Output(); len(got) != 0 {
		t.Errorf("Output() after ClearOutput() = %q, want empty", got)
	}
}

func TestVirtualSnapshot(t *testing.T) {
	v := NewVirtual(10, 3)
	v.Write([]byte("abc\r\n\x1b[31mdef"))

	snap := v.Snapshot()
	if got := snap.Line(0); got != "abc" {
		t.Errorf("Line(0) = %q, want %q", got, "abc")
	}
	if got := snap.Line(1); got != "def" {
		t.Errorf("Line(1) = %q, want %q", got, "def")
	}

	c, err := snap.Cell(0, 1)
	if err != nil {
		t.Fatalf("Cell(0, 1) returned error: %v", err)
	}
	if c.Pen() != "31" {
		t.Errorf("Cell(0, 1).Pen() = %q, want %q", c.Pen(), "31")
	}

	col, row := snap.Cursor()
	if col != 3 || row != 1 {
		t.Errorf("Cursor() = (%d, %d), want (3, 1)", col, row)
	}
}

func TestVirtualInitClearsOutput(t *testing.T) {
	v := NewVirtual(80, 24)
	v.Write([]byte("stale"))

	if err := v.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if got := v.Output(); len(got) != 0 {
		t.Errorf("Output() after Init() = %q, want empty", got)
	}
	if err := v.Cleanup(); err != nil {
		t.Errorf("Cleanup() returned error: %v", err)
	}
}

func TestVirtualSizeAndResize(t *testing.T) {
	v := NewVirtual(120, 40)
	if c, r := v.Size(); c != 120 || r != 40 {
		t.Errorf("Size() = (%d, %d), want (120, 40)", c, r)
	}

	v.SetSize(80, 24)
	if c, r := v.Size(); c != 80 || r != 24 {
		t.Errorf("Size() after SetSize = (%d, %d), want (80, 24)", c, r)
	}

	defer func() {
		if recover() == nil {
			t.Error("SetSize(0, 24) did not panic")
		}
	}()
	v.SetSize(0, 24)
}

func TestVirtualNotInteractive(t *testing.T) {
	v := NewVirtual(80, 24)
	if v.Interactive() {
		t.Error("Interactive() = true for virtual terminal, want false")
	}
}
