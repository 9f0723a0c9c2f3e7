// Package driver abstracts the terminal an application runs against.
// The same contract binds a real TTY and an in-memory substitute, so
// identical application code can run interactively or under
// deterministic tests.
package driver

import "github.com/termloom/termloom/keys"

// Driver is the surface the application loop consumes. All input
// methods are non-blocking: the expected usage is a fixed-rate poll
// loop that drains input, mutates state, writes output and sleeps out
// the rest of the frame.
type Driver interface {
	// Size returns the terminal dimensions in cells.
	Size() (cols, rows int)

	// HasInput reports whether ReadInput would yield a key right
	// now. Never blocks.
	HasInput() bool

	// ReadInput returns the next decoded logical key, or false if
	// none is pending. Never blocks.
	ReadInput() (keys.Key, bool)

	// Write sends output bytes (text plus escape sequences)
	// toward the terminal.
	Write(p []byte) (int, error)

	// Init prepares the terminal (raw mode, alternate screen) or
	// resets buffers. Calling it twice is a no-op the second
	// time.
	Init() error

	// Cleanup undoes Init. Idempotent, and safe to call without a
	// prior Init; run it via defer so the terminal is restored on
	// every exit path.
	Cleanup() error

	// Interactive reports whether a human terminal sits on the
	// other end.
	Interactive() bool
}
