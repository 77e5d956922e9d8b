package grid

// Dimensions is the footprint used for batten sizing.
type Dimensions struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Stats groups every aggregate measurement the BOM rules consume.
type Stats struct {
	TotalPanels        int        `json:"totalPanels"`
	RowsWithPanels     int        `json:"rowsWithPanels"`
	BottomRowPanels    int        `json:"bottomRowPanels"`
	NonBottomRowPanels int        `json:"nonBottomRowPanels"`
	TopRowPanels       int        `json:"topRowPanels"`
	HorizontalRows     int        `json:"horizontalRows"`
	VerticalColumns    int        `json:"verticalColumns"`
	WidestNonBottomRow int        `json:"widestNonBottomRow"`
	Battens            Dimensions `json:"battens"`
}

// Measure computes all aggregate statistics in one call.
func Measure(g Grid) Stats {
	return Stats{
		TotalPanels:        TotalPanelCount(g),
		RowsWithPanels:     TotalRowsWithPanels(g),
		BottomRowPanels:    BottomRowPanelCount(g),
		NonBottomRowPanels: NonBottomRowPanelCount(g),
		TopRowPanels:       TopRowPanelCountWithNothingAbove(g),
		HorizontalRows:     HorizontalRowCount(g),
		VerticalColumns:    VerticalColumnCount(g),
		WidestNonBottomRow: WidestNonBottomRow(g),
		Battens:            BattenDimensions(g),
	}
}

// rowCount returns the number of panels in row r.
func rowCount(g Grid, r int) int {
	n := 0
	for _, v := range g[r] {
		if v == Panel {
			n++
		}
	}
	return n
}

// firstOccupiedRow returns the index of the first row holding a panel, or -1.
func firstOccupiedRow(g Grid) int {
	for r := range g {
		if rowCount(g, r) > 0 {
			return r
		}
	}
	return -1
}

// lastOccupiedRow returns the index of the last row holding a panel, or -1.
func lastOccupiedRow(g Grid) int {
	for r := len(g) - 1; r >= 0; r-- {
		if rowCount(g, r) > 0 {
			return r
		}
	}
	return -1
}

// TotalPanelCount counts occupied cells.
func TotalPanelCount(g Grid) int {
	n := 0
	for r := range g {
		n += rowCount(g, r)
	}
	return n
}

// TotalRowsWithPanels counts rows holding at least one panel. Empty rows between
// occupied ones are not counted.
func TotalRowsWithPanels(g Grid) int {
	n := 0
	for r := range g {
		if rowCount(g, r) > 0 {
			n++
		}
	}
	return n
}

// BottomRowPanelCount counts the panels in the last occupied row.
func BottomRowPanelCount(g Grid) int {
	last := lastOccupiedRow(g)
	if last < 0 {
		return 0
	}
	return rowCount(g, last)
}

// NonBottomRowPanelCount counts panels above the bottom occupied row whose
// underside is exposed (no panel directly below).
func NonBottomRowPanelCount(g Grid) int {
	last := lastOccupiedRow(g)
	n := 0
	for r := 0; r < last; r++ {
		for c, v := range g[r] {
			if v == Panel && !g.Occupied(r+1, c) {
				n++
			}
		}
	}
	return n
}

// WidestNonBottomRow returns the largest panel count of any row above the
// bottom occupied row.
func WidestNonBottomRow(g Grid) int {
	last := lastOccupiedRow(g)
	widest := 0
	for r := 0; r < last; r++ {
		if n := rowCount(g, r); n > widest {
			widest = n
		}
	}
	return widest
}

// TopRowPanelCountWithNothingAbove counts every panel on the leading edge from
// the top: all panels of the first occupied row plus, in later rows, panels with
// no panel directly above.
func TopRowPanelCountWithNothingAbove(g Grid) int {
	first := firstOccupiedRow(g)
	if first < 0 {
		return 0
	}
	n := rowCount(g, first)
	for r := first + 1; r < len(g); r++ {
		for c, v := range g[r] {
			if v == Panel && !g.Occupied(r-1, c) {
				n++
			}
		}
	}
	return n
}

// HorizontalRowCount counts rows holding panels. It drives per-row consumables
// such as seal roll and wedges.
func HorizontalRowCount(g Grid) int {
	return TotalRowsWithPanels(g)
}

// VerticalColumnCount counts columns holding at least one panel.
func VerticalColumnCount(g Grid) int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	n := 0
	for c := 0; c < width; c++ {
		for r := range g {
			if g.Occupied(r, c) {
				n++
				break
			}
		}
	}
	return n
}

// BattenDimensions returns the occupied row count and the densest row width.
func BattenDimensions(g Grid) Dimensions {
	d := Dimensions{}
	for r := range g {
		n := rowCount(g, r)
		if n == 0 {
			continue
		}
		d.Rows++
		if n > d.Columns {
			d.Columns = n
		}
	}
	return d
}
