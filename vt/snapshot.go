package vt

import "strings"

// Snapshot is an immutable copy of a screen at the moment it was
// taken. Later writes to the live screen never show up in a snapshot
// already handed out, which is what makes render diffing and test
// assertions deterministic.
type Snapshot struct {
	fb   *framebuffer
	cur  cursor
	pen  string
	cols int
	rows int
}

// Snapshot copies the current screen state.
func (s *Screen) Snapshot() *Snapshot {
	col, row := s.Cursor()
	return &Snapshot{
		fb:   s.fb.copy(),
		cur:  cursor{row: row, col: col},
		pen:  s.pen,
		cols: s.fb.getNumCols(),
		rows: s.fb.getNumRows(),
	}
}

func (sn *Snapshot) Size() (cols, rows int) {
	return sn.cols, sn.rows
}

func (sn *Snapshot) Cursor() (col, row int) {
	return sn.cur.col, sn.cur.row
}

// Pen is the SGR parameter string that was active when the snapshot
// was taken.
func (sn *Snapshot) Pen() string {
	return sn.pen
}

// Cell returns the cell at (col, row); coordinates outside the grid
// return a default cell and a wrapped fbInvalidCell error.
func (sn *Snapshot) Cell(col, row int) (Cell, error) {
	return sn.fb.getCell(row, col)
}

// Text reads up to n characters along row starting at col. Reads past
// the edge of the grid come back as blanks-trimmed-short rather than
// an error.
func (sn *Snapshot) Text(col, row, n int) string {
	if row < 0 || row >= sn.rows || col < 0 {
		return ""
	}

	var sb strings.Builder
	for i := col; i < col+n && i < sn.cols; i++ {
		c, err := sn.fb.getCell(row, i)
		if err != nil {
			break
		}
		sb.WriteRune(c.r)
	}
	return sb.String()
}

// Line returns one row's text with trailing blanks trimmed.
func (sn *Snapshot) Line(row int) string {
	return strings.TrimRight(sn.Text(0, row, sn.cols), " ")
}

// Lines renders the whole grid, one trimmed string per row. Handy for
// golden-style assertions.
func (sn *Snapshot) Lines() []string {
	lines := make([]string, sn.rows)
	for r := 0; r < sn.rows; r++ {
		lines[r] = sn.Line(r)
	}
	return lines
}

// Equal compares two snapshots cell by cell, including cursor and
// pen.
func (sn *Snapshot) Equal(other *Snapshot) bool {
	if sn.cols != other.cols || sn.rows != other.rows {
		return false
	}
	if !sn.cur.equal(other.cur) || sn.pen != other.pen {
		return false
	}
	return sn.fb.equal(other.fb)
}
