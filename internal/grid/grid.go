// Package grid models the roof occupancy grid and the aggregate measurements
// derived from it.
//
// A Grid is a rectangular matrix of 0/1 cells where 1 marks an installed panel.
// Row 0 is the top of the roof. Every function in this package is pure and
// treats the grid as a read-only snapshot.
package grid

import (
	"strings"

	"solarbom/internal/errors"
)

// DefaultSize is the edge length of the drawing grid used by the calculator.
const DefaultSize = 25

const (
	// Empty marks a cell without a panel.
	Empty = 0
	// Panel marks a cell with a panel installed.
	Panel = 1
)

// Grid is a row-major occupancy matrix.
type Grid [][]int

// New returns an all-empty grid with the given dimensions.
func New(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]int, cols)
	}
	return g
}

// Square returns an all-empty n x n grid.
func Square(n int) Grid {
	return New(n, n)
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of columns of the first row.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks the grid is non-empty, rectangular and binary.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return errors.New(errors.InvalidGrid, "grid has no rows")
	}
	width := len(g[0])
	if width == 0 {
		return errors.New(errors.InvalidGrid, "grid has no columns")
	}
	for r, row := range g {
		if len(row) != width {
			return errors.New(errors.InvalidGrid, "row %d has %d cells, want %d", r, len(row), width).
				WithDetails(map[string]int{"row": r, "width": len(row), "want": width})
		}
		for c, v := range row {
			if v != Empty && v != Panel {
				return errors.New(errors.InvalidGrid, "cell (%d,%d) holds %d, want 0 or 1", r, c, v)
			}
		}
	}
	return nil
}

// Occupied reports whether (row, col) holds a panel. Off-grid cells are empty.
func (g Grid) Occupied(row, col int) bool {
	if row < 0 || row >= len(g) {
		return false
	}
	if col < 0 || col >= len(g[row]) {
		return false
	}
	return g[row][col] == Panel
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Toggle returns a copy of g with (row, col) flipped between empty and panel.
// The receiver is never modified.
func (g Grid) Toggle(row, col int) (Grid, error) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return nil, errors.New(errors.InvalidGrid, "cell (%d,%d) is outside the %dx%d grid", row, col, g.Rows(), g.Cols())
	}
	out := g.Clone()
	if out[row][col] == Panel {
		out[row][col] = Empty
	} else {
		out[row][col] = Panel
	}
	return out, nil
}

// Equal reports whether two grids have the same shape and cells.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid in the text layout format, one row per line.
func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g {
		for _, v := range row {
			if v == Panel {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
