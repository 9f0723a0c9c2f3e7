package vt

import (
	"errors"
	"fmt"
)

var fbInvalidCell = errors.New("invalid framebuffer cell")

type framebuffer struct {
	data [][]Cell
}

func newFramebuffer(rows, cols int) *framebuffer {
	d := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		d[r] = newRow(cols)
	}
	return &framebuffer{data: d}
}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := 0; i < len(row); i++ {
		row[i] = defaultCell()
	}
	return row
}

func (f *framebuffer) getNumRows() int {
	return len(f.data)
}

func (f *framebuffer) getNumCols() int {
	return len(f.data[0])
}

func (f *framebuffer) validPoint(row, col int) bool {
	if row < 0 || row >= f.getNumRows() || col < 0 || col >= f.getNumCols() {
		return false
	}
	return true
}

func (f *framebuffer) setCell(row, col int, c Cell) {
	if f.validPoint(row, col) {
		f.data[row][col] = c
	}
}

func (f *framebuffer) getCell(row, col int) (Cell, error) {
	if f.validPoint(row, col) {
		return f.data[row][col], nil
	}

	return defaultCell(), fmt.Errorf("invalid coordinates (%d, %d): %w", col, row, fbInvalidCell)
}

// resetRows blanks rows from..to inclusive.
func (f *framebuffer) resetRows(from, to int) bool {
	if from > to || from < 0 || to >= f.getNumRows() {
		return false
	}

	nc := f.getNumCols()
	for i := from; i <= to; i++ {
		f.data[i] = newRow(nc)
	}

	return true
}

// resetCells blanks row cells in [from, to).
func (f *framebuffer) resetCells(row, from, to int) bool {
	nr := f.getNumRows()
	nc := f.getNumCols()
	switch {
	case row < 0 || row >= nr:
		return false
	case from < 0 || from >= nc:
		return false
	case to < 0 || to > nc:
		return false
	case from > to:
		return false
	default:
		for col := from; col < to; col++ {
			f.setCell(row, col, defaultCell())
		}
	}

	return true
}

// resize rebuilds the grid, keeping whatever content overlaps the new
// dimensions.
func (f *framebuffer) resize(rows, cols int) {
	d := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		d[r] = newRow(cols)
		if r < f.getNumRows() {
			copy(d[r], f.data[r])
		}
	}
	f.data = d
}

// copy returns a deep copy, used for snapshots.
func (f *framebuffer) copy() *framebuffer {
	d := make([][]Cell, f.getNumRows())
	for r := range f.data {
		d[r] = make([]Cell, len(f.data[r]))
		copy(d[r], f.data[r])
	}
	return &framebuffer{data: d}
}

func (f *framebuffer) equal(other *framebuffer) bool {
	if f.getNumRows() != other.getNumRows() || f.getNumCols() != other.getNumCols() {
		return false
	}

	for r := range f.data {
		for c := range f.data[r] {
			if !f.data[r][c].equal(other.data[r][c]) {
				return false
			}
		}
	}

	return true
}
