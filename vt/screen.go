package vt

import (
	"fmt"
	"log/slog"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Screen is a grid of cells with a cursor and a current pen, mutated
// exclusively by feeding bytes to Write. It is owned by a single
// driver instance and is not safe for concurrent use; callers wanting
// several logical terminals create several screens.
type Screen struct {
	fb  *framebuffer
	cur cursor
	pen string // active SGR parameter string, "" for default

	// Interpreter state
	state   pState
	params  *parameters
	rawP    []byte // literal CSI parameter bytes, for the pen
	private bool   // CSI had a '?'/'>'/'<' prefix

	// Partial UTF-8 rune carried across Write calls
	utf8buf []byte
}

// NewScreen builds a blank screen. Dimensions must be positive; a
// non-positive dimension is a programmer error and panics at
// construction rather than surfacing later as index faults.
func NewScreen(cols, rows int) *Screen {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("vt: invalid screen dimensions %dx%d", cols, rows))
	}

	return &Screen{
		fb:     newFramebuffer(rows, cols),
		params: newParams(),
		rawP:   make([]byte, 0, MAX_EXPECTED_PARAMS),
	}
}

func (s *Screen) Size() (cols, rows int) {
	return s.fb.getNumCols(), s.fb.getNumRows()
}

// Cursor returns the cursor clamped into the grid. The row may
// internally sit past the last row after unbounded writes; queries
// always see an addressable position.
func (s *Screen) Cursor() (col, row int) {
	col, row = s.cur.col, s.cur.row
	if nc := s.fb.getNumCols(); col >= nc {
		col = nc - 1
	}
	if nr := s.fb.getNumRows(); row >= nr {
		row = nr - 1
	}
	return col, row
}

// Pen returns the active SGR parameter string.
func (s *Screen) Pen() string {
	return s.pen
}

// Resize rebuilds the grid to the new dimensions, preserving the
// overlapping content. Sizing never happens implicitly.
func (s *Screen) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("vt: invalid screen dimensions %dx%d", cols, rows))
	}

	s.fb.resize(rows, cols)
	s.cursorMoveAbs(s.cur.row, s.cur.col)
	slog.Debug("screen resized", "cols", cols, "rows", rows)
}

// Reset blanks the grid and returns cursor, pen and parser state to
// their defaults.
func (s *Screen) Reset() {
	rows, cols := s.fb.getNumRows(), s.fb.getNumCols()
	s.fb = newFramebuffer(rows, cols)
	s.cur = cursor{}
	s.pen = ""
	s.state = stGround
	s.params.reset()
	s.rawP = s.rawP[:0]
	s.utf8buf = s.utf8buf[:0]
}

// print places one rune at the cursor with the current pen. Wide
// runes take a primary cell plus a blank spacer; zero-width runes
// merge into the previously written cell.
func (s *Screen) print(r rune) {
	rw := runewidth.RuneWidth(r)

	if rw == 0 {
		s.combine(r)
		return
	}

	nc := s.fb.getNumCols()
	if s.cur.col+rw > nc {
		// No room on this row; wrap first. Row growth is
		// deliberately unbounded.
		s.cur.col = 0
		s.cur.row += 1
	}

	s.fb.setCell(s.cur.row, s.cur.col, newCell(r, s.pen))
	if rw > 1 {
		s.fb.setCell(s.cur.row, s.cur.col+1, newCell(' ', s.pen))
	}

	s.cur.col += rw
	if s.cur.col >= nc {
		s.cur.col = 0
		s.cur.row += 1
	}
}

// combine folds a zero-width rune into the cell written before it.
func (s *Screen) combine(r rune) {
	row, col := s.cur.row, s.cur.col
	switch {
	case col == 0 && row == 0:
		slog.Debug("punting on zero-width rune with no preceding cell", "r", r)
		return
	case col == 0: // we wrapped
		col = s.fb.getNumCols() - 1
		row -= 1
	default:
		col -= 1
	}

	c, err := s.fb.getCell(row, col)
	if err != nil {
		slog.Debug("couldn't fetch cell for combining rune", "row", row, "col", col)
		return
	}

	// A wide rune leaves a spacer cell after it; step past the
	// spacer so the mark merges into the rune itself.
	if col > 0 {
		if prev, perr := s.fb.getCell(row, col-1); perr == nil && runewidth.RuneWidth(prev.r) > 1 {
			col -= 1
			c = prev
		}
	}

	n := norm.NFC.String(string(c.r) + string(r))
	c.r = []rune(n)[0]
	s.fb.setCell(row, col, c)
}

func (s *Screen) carriageReturn() {
	s.cur.col = 0
}

func (s *Screen) lineFeed() {
	s.cur.row += 1
	s.cur.col = 0
}

func (s *Screen) backspace() {
	if s.cur.col > 0 {
		s.cur.col -= 1
	}
}

func (s *Screen) tab() {
	next := ((s.cur.col / TAB_WIDTH) + 1) * TAB_WIDTH
	if last := s.fb.getNumCols() - 1; next > last {
		next = last
	}
	s.cur.col = next
}

// cursorMoveAbs clamps into the grid; explicit positioning is always
// addressable, unlike plain-text row growth.
func (s *Screen) cursorMoveAbs(row, col int) {
	s.cur.row = row
	s.cur.col = col

	nc := s.fb.getNumCols()
	switch {
	case s.cur.col < 0:
		s.cur.col = 0
	case s.cur.col >= nc:
		s.cur.col = nc - 1
	}

	nr := s.fb.getNumRows()
	switch {
	case s.cur.row < 0:
		s.cur.row = 0
	case s.cur.row >= nr:
		s.cur.row = nr - 1
	}
}

func (s *Screen) eraseLine(mode int) {
	row := s.cur.row
	if row >= s.fb.getNumRows() {
		return
	}

	nc := s.fb.getNumCols()
	col := s.cur.col
	if col >= nc {
		col = nc - 1
	}

	switch mode {
	case ERASE_TO_END:
		s.fb.resetCells(row, col, nc)
	case ERASE_TO_START:
		s.fb.resetCells(row, 0, col+1)
	case ERASE_ALL:
		s.fb.resetCells(row, 0, nc)
	default:
		slog.Debug("unknown erase-in-line mode", "mode", mode)
	}
}

func (s *Screen) eraseInDisplay(mode int) {
	nr := s.fb.getNumRows()

	switch mode {
	case ERASE_TO_END:
		s.fb.resetRows(s.cur.row+1, nr-1)
		s.eraseLine(ERASE_TO_END)
	case ERASE_TO_START:
		if s.cur.row >= nr {
			// The cursor sits logically below the grid, so the
			// whole visible screen is before it.
			s.fb.resetRows(0, nr-1)
			return
		}
		s.fb.resetRows(0, s.cur.row-1)
		s.eraseLine(ERASE_TO_START)
	case ERASE_ALL:
		s.fb.resetRows(0, nr-1)
		s.cursorMoveAbs(0, 0)
	default:
		slog.Debug("unknown erase-in-display mode", "mode", mode)
	}
}
