// Package models defines data structures for the SIMA quotation pipeline.
package models

import "strconv"

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	// CellEmpty marks a cell with no value.
	CellEmpty CellKind = iota
	// CellText marks a cell holding a string.
	CellText
	// CellNumber marks a cell holding a numeric value.
	CellNumber
)

// Cell is a loosely-typed worksheet cell. Source workbooks carry strings,
// numbers, and blanks interchangeably, so every access goes through the
// explicit kind.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the cell content as a string, formatting numbers with
// minimal digits. Empty cells yield "".
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return ""
}

// NewCell builds a Cell from a raw workbook string, typing it as a number
// when it parses as one. Brazilian-formatted strings ("1.234,56") stay text;
// normalize.ParseNumber handles those later.
func NewCell(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Cell{Kind: CellNumber, Number: f}
	}
	return Cell{Kind: CellText, Text: raw}
}

// Grid is a worksheet as a dense 2-D cell matrix with 0-based indices.
type Grid [][]Cell

// At returns the cell at (row, col), or an empty cell when the coordinates
// fall outside the grid. Rows are jagged in source files.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return Cell{}
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the widest row length in the grid.
func (g Grid) Cols() int {
	max := 0
	for _, r := range g {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}
