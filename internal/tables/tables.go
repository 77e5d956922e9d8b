// Package tables holds the two lookup tables of the BOM rules: batten counts by
// array footprint and lead lengths by bottom-row width.
package tables

import (
	"fmt"
	"sort"
)

// BattenTable maps an array footprint to a batten count.
//
// Values is row-major: Values[rows-1][columns-1]. Rows are the occupied panel
// rows, columns the densest row width. Rows may be shorter than others; a
// missing entry inside the bound reads as 0.
type BattenTable struct {
	Values    [][]int `json:"values"`
	PerRow    int     `json:"perRow"`
	PerColumn int     `json:"perColumn"`
}

// DefaultBattenTable returns the reference batten table.
//
// Only (3,2), (4,3) and the (25,5) extrapolation are measured; the other
// entries are estimates and should be replaced through reference data.
func DefaultBattenTable() BattenTable {
	return BattenTable{
		Values: [][]int{
			{6, 12, 18, 24, 30, 36},
			{12, 21, 30, 36, 45, 54},
			{18, 30, 42, 48, 57, 63},
			{24, 42, 63, 66, 69, 72},
			{30, 48, 66, 69, 72, 81},
			{36, 54, 69, 72, 81, 90},
		},
		PerRow:    9,
		PerColumn: 9,
	}
}

// MaxRows is the largest row count covered by the table.
func (t BattenTable) MaxRows() int {
	return len(t.Values)
}

// MaxColumns is the largest column count covered by the table.
func (t BattenTable) MaxColumns() int {
	width := 0
	for _, row := range t.Values {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func (t BattenTable) at(rows, columns int) int {
	if rows < 1 || rows > len(t.Values) {
		return 0
	}
	row := t.Values[rows-1]
	if columns < 1 || columns > len(row) {
		return 0
	}
	return row[columns-1]
}

// Quantity returns the batten count for a footprint. It is 0 when there are no
// panels. Beyond the table on either axis the count is the far corner entry
// plus PerRow per row and PerColumn per column away from that corner, so an
// axis still inside the table contributes a negative step. The result never
// drops below 0.
func (t BattenTable) Quantity(rows, columns, totalPanels int) int {
	if totalPanels <= 0 || rows <= 0 || columns <= 0 {
		return 0
	}
	maxRows, maxCols := t.MaxRows(), t.MaxColumns()
	if maxRows == 0 || maxCols == 0 {
		return 0
	}
	if rows <= maxRows && columns <= maxCols {
		return t.at(rows, columns)
	}

	n := t.at(maxRows, maxCols) + (rows-maxRows)*t.PerRow + (columns-maxCols)*t.PerColumn
	if n < 0 {
		return 0
	}
	return n
}

// Validate rejects negative entries and increments.
func (t BattenTable) Validate() error {
	if len(t.Values) == 0 {
		return fmt.Errorf("batten table has no rows")
	}
	if t.PerRow < 0 || t.PerColumn < 0 {
		return fmt.Errorf("batten increments must not be negative (per_row=%d, per_column=%d)", t.PerRow, t.PerColumn)
	}
	for r, row := range t.Values {
		for c, v := range row {
			if v < 0 {
				return fmt.Errorf("batten table entry [%d][%d] is negative", r+1, c+1)
			}
		}
	}
	return nil
}

// LeadTable converts bottom-row panel counts into lead pieces.
type LeadTable struct {
	// Meterage is the required length in millimetres per bottom-row panel count.
	Meterage map[int]int `json:"meterage"`
	// DefaultIncrement is the extra length per panel beyond the table.
	DefaultIncrement int `json:"defaultIncrement"`
	// StandardLength is the length of one piece of lead.
	StandardLength int `json:"standardLength"`
	// Conversion optionally maps panel counts straight to piece counts.
	Conversion map[int]int `json:"conversion,omitempty"`
}

// DefaultLeadTable returns the reference lead meterage table.
func DefaultLeadTable() LeadTable {
	return LeadTable{
		Meterage: map[int]int{
			1: 2100,
			2: 3290,
			3: 4475,
			4: 5950,
			5: 7425,
			6: 8900,
		},
		DefaultIncrement: 1375,
		StandardLength:   1500,
	}
}

// maxEntry returns the largest panel count in the meterage table.
func (t LeadTable) maxEntry() int {
	largest := 0
	for n := range t.Meterage {
		if n > largest {
			largest = n
		}
	}
	return largest
}

// Length returns the required lead length in millimetres.
func (t LeadTable) Length(panels int) int {
	if panels <= 0 {
		return 0
	}
	if mm, ok := t.Meterage[panels]; ok {
		return mm
	}
	largest := t.maxEntry()
	if panels < largest {
		// Gap inside a sparse table: extend from the nearest smaller entry.
		for n := panels - 1; n > 0; n-- {
			if mm, ok := t.Meterage[n]; ok {
				return mm + (panels-n)*t.DefaultIncrement
			}
		}
		return panels * t.DefaultIncrement
	}
	return t.Meterage[largest] + (panels-largest)*t.DefaultIncrement
}

// Pieces returns the number of standard-length pieces needed for a bottom row
// of the given width.
func (t LeadTable) Pieces(panels int) int {
	if panels <= 0 {
		return 0
	}
	if n, ok := t.Conversion[panels]; ok {
		return n
	}
	if t.StandardLength <= 0 {
		return 0
	}
	mm := t.Length(panels)
	return (mm + t.StandardLength - 1) / t.StandardLength
}

// Entries lists the meterage table in ascending panel order.
func (t LeadTable) Entries() []int {
	keys := make([]int, 0, len(t.Meterage))
	for n := range t.Meterage {
		keys = append(keys, n)
	}
	sort.Ints(keys)
	return keys
}

// Validate checks the lengths are usable.
func (t LeadTable) Validate() error {
	if t.StandardLength <= 0 {
		return fmt.Errorf("standard lead length must be positive, got %d", t.StandardLength)
	}
	if t.DefaultIncrement < 0 {
		return fmt.Errorf("default lead increment must not be negative, got %d", t.DefaultIncrement)
	}
	for n, mm := range t.Meterage {
		if n < 1 || mm < 0 {
			return fmt.Errorf("invalid lead meterage entry %d => %d", n, mm)
		}
	}
	for n, pieces := range t.Conversion {
		if n < 1 || pieces < 0 {
			return fmt.Errorf("invalid lead conversion entry %d => %d", n, pieces)
		}
	}
	return nil
}
