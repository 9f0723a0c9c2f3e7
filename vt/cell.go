package vt

import "fmt"

// Cell is one character position on the grid. The pen is the literal
// SGR parameter string that was active when the cell was written
// (empty for the default rendition); the screen carries it through
// verbatim rather than decoding it into attribute structs.
type Cell struct {
	r   rune
	pen string
}

func defaultCell() Cell {
	return Cell{r: ' '}
}

func newCell(r rune, pen string) Cell {
	return Cell{r: r, pen: pen}
}

func (c Cell) Rune() rune {
	return c.r
}

func (c Cell) Pen() string {
	return c.pen
}

func (c Cell) equal(other Cell) bool {
	return c.r == other.r && c.pen == other.pen
}

func (c Cell) String() string {
	return fmt.Sprintf("%s (%q)", string(c.r), c.pen)
}
