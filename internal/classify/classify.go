// Package classify assigns topological cell types to the panels of an
// occupancy grid and tallies them.
//
// Each occupied cell receives exactly one orientation tag derived from its four
// cardinal neighbours, plus zero or more corner tags derived from the cardinal
// and diagonal neighbours. Empty cells are tagged EmptyCell.
package classify

import (
	"fmt"

	"solarbom/internal/grid"
)

// Mode selects how corner tags combine with orientation tags.
type Mode string

const (
	// ModeAdditive reports corner tags alongside the orientation tag.
	ModeAdditive Mode = "additive"
	// ModeLegacyExclusive reports a corner tag instead of the orientation tag,
	// and only for cells exposed on two sides that still have both inward
	// neighbours.
	ModeLegacyExclusive Mode = "legacy-exclusive"
)

// ParseMode validates a mode name. The empty string selects ModeAdditive.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAdditive:
		return ModeAdditive, nil
	case ModeLegacyExclusive:
		return ModeLegacyExclusive, nil
	default:
		return "", fmt.Errorf("unknown classifier mode %q (want %s or %s)", s, ModeAdditive, ModeLegacyExclusive)
	}
}

// Classifier tags grid cells.
type Classifier struct {
	Mode Mode
}

// Default is the classifier used by the package-level functions.
var Default = Classifier{Mode: ModeAdditive}

// neighbours holds the 8-neighbourhood occupancy of a cell.
type neighbours struct {
	above, below, left, right                  bool
	topLeft, topRight, bottomLeft, bottomRight bool
}

func neighbourhood(g grid.Grid, row, col int) neighbours {
	return neighbours{
		above:       g.Occupied(row-1, col),
		below:       g.Occupied(row+1, col),
		left:        g.Occupied(row, col-1),
		right:       g.Occupied(row, col+1),
		topLeft:     g.Occupied(row-1, col-1),
		topRight:    g.Occupied(row-1, col+1),
		bottomLeft:  g.Occupied(row+1, col-1),
		bottomRight: g.Occupied(row+1, col+1),
	}
}

// orientation maps the cardinal neighbours onto the 16-way orientation table.
func orientation(n neighbours) CellType {
	vertical := 0
	switch {
	case n.above && n.below:
		vertical = 3
	case n.below:
		vertical = 1
	case n.above:
		vertical = 2
	}

	switch {
	case n.left && n.right:
		return [4]CellType{MidPanel, TopMidPanel, BottomMidPanel, MiddleMidPanel}[vertical]
	case n.left || n.right:
		return [4]CellType{EndPanel, TopEndPanel, BottomEndPanel, MiddleEndPanel}[vertical]
	default:
		return [4]CellType{SinglePanel, TopSinglePanel, BottomSinglePanel, CenterSinglePanel}[vertical]
	}
}

// corners returns the additive corner tags. A corner is either an outer corner
// (both adjoining edges exposed) or an inner notch (both adjoining neighbours
// present but the diagonal between them missing).
func corners(n neighbours) Set {
	var s Set
	if (!n.above && !n.left) || (n.above && n.left && !n.topLeft) {
		s = s.Add(TopLeftCorner)
	}
	if (!n.above && !n.right) || (n.above && n.right && !n.topRight) {
		s = s.Add(TopRightCorner)
	}
	if (!n.below && !n.left) || (n.below && n.left && !n.bottomLeft) {
		s = s.Add(BottomLeftCorner)
	}
	if (!n.below && !n.right) || (n.below && n.right && !n.bottomRight) {
		s = s.Add(BottomRightCorner)
	}
	return s
}

// legacyCorner returns the single corner tag of the exclusive rule, if any.
func legacyCorner(n neighbours) (CellType, bool) {
	switch {
	case !n.above && !n.left && n.below && n.right:
		return TopLeftCorner, true
	case !n.above && !n.right && n.below && n.left:
		return TopRightCorner, true
	case !n.below && !n.left && n.above && n.right:
		return BottomLeftCorner, true
	case !n.below && !n.right && n.above && n.left:
		return BottomRightCorner, true
	}
	return 0, false
}

// ClassifyCell returns the tags of (row, col). Off-grid or empty cells are EmptyCell.
func (c Classifier) ClassifyCell(g grid.Grid, row, col int) Set {
	if !g.Occupied(row, col) {
		return SetOf(EmptyCell)
	}
	n := neighbourhood(g, row, col)

	if c.Mode == ModeLegacyExclusive {
		if corner, ok := legacyCorner(n); ok {
			return SetOf(corner)
		}
		return SetOf(orientation(n))
	}
	return corners(n).Add(orientation(n))
}

// Classify returns the tags of every cell.
func (c Classifier) Classify(g grid.Grid) [][]Set {
	out := make([][]Set, len(g))
	for r, row := range g {
		out[r] = make([]Set, len(row))
		for col := range row {
			out[r][col] = c.ClassifyCell(g, r, col)
		}
	}
	return out
}

// CountCellTypes tallies every tag across the grid. A multi-tagged cell
// increments each of its tags.
func (c Classifier) CountCellTypes(g grid.Grid) Counts {
	var counts Counts
	for r, row := range g {
		for col := range row {
			for _, t := range c.ClassifyCell(g, r, col).Types() {
				counts[t]++
			}
		}
	}
	return counts
}

// ClassifyCell tags one cell with the default classifier.
func ClassifyCell(g grid.Grid, row, col int) Set {
	return Default.ClassifyCell(g, row, col)
}

// Classify tags every cell with the default classifier.
func Classify(g grid.Grid) [][]Set {
	return Default.Classify(g)
}

// CountCellTypes tallies tags with the default classifier.
func CountCellTypes(g grid.Grid) Counts {
	return Default.CountCellTypes(g)
}
