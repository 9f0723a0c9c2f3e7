package vt

import "fmt"

// cursor tracks the write position. col stays within the grid; row is
// allowed to run past the last configured row so cursor arithmetic
// keeps working when an application writes beyond the screen (only
// rows inside the grid are addressable).
type cursor struct {
	row, col int
}

func (c cursor) Copy() cursor {
	return cursor{row: c.row, col: c.col}
}

func (c cursor) equal(other cursor) bool {
	return c.row == other.row && c.col == other.col
}

func (c cursor) String() string {
	return fmt.Sprintf("(%d, %d)", c.row, c.col)
}
