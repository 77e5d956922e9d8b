package classify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CellType is the topological tag of a grid cell.
type CellType uint8

const (
	SinglePanel CellType = iota
	TopSinglePanel
	BottomSinglePanel
	CenterSinglePanel
	MidPanel
	EndPanel
	MiddleMidPanel
	MiddleEndPanel
	TopMidPanel
	TopEndPanel
	BottomMidPanel
	BottomEndPanel
	TopLeftCorner
	TopRightCorner
	BottomLeftCorner
	BottomRightCorner
	EmptyCell
	Error

	// NumCellTypes is the number of defined tags.
	NumCellTypes = int(Error) + 1
)

var cellTypeNames = [NumCellTypes]string{
	SinglePanel:       "SinglePanel",
	TopSinglePanel:    "TopSinglePanel",
	BottomSinglePanel: "BottomSinglePanel",
	CenterSinglePanel: "CenterSinglePanel",
	MidPanel:          "MidPanel",
	EndPanel:          "EndPanel",
	MiddleMidPanel:    "MiddleMidPanel",
	MiddleEndPanel:    "MiddleEndPanel",
	TopMidPanel:       "TopMidPanel",
	TopEndPanel:       "TopEndPanel",
	BottomMidPanel:    "BottomMidPanel",
	BottomEndPanel:    "BottomEndPanel",
	TopLeftCorner:     "TopLeftCorner",
	TopRightCorner:    "TopRightCorner",
	BottomLeftCorner:  "BottomLeftCorner",
	BottomRightCorner: "BottomRightCorner",
	EmptyCell:         "EmptyCell",
	Error:             "Error",
}

// Orientation groups. Every occupied cell carries exactly one orientation tag.
var (
	SingleTypes = []CellType{SinglePanel, TopSinglePanel, BottomSinglePanel, CenterSinglePanel}
	EndTypes    = []CellType{EndPanel, MiddleEndPanel, TopEndPanel, BottomEndPanel}
	MidTypes    = []CellType{MidPanel, MiddleMidPanel, TopMidPanel, BottomMidPanel}
	CornerTypes = []CellType{TopLeftCorner, TopRightCorner, BottomLeftCorner, BottomRightCorner}
)

func (t CellType) String() string {
	if int(t) < NumCellTypes {
		return cellTypeNames[t]
	}
	return fmt.Sprintf("CellType(%d)", t)
}

// IsCorner reports whether t is one of the four corner tags.
func (t CellType) IsCorner() bool {
	return t >= TopLeftCorner && t <= BottomRightCorner
}

// IsOrientation reports whether t describes an occupied cell's orientation.
func (t CellType) IsOrientation() bool {
	return t <= BottomEndPanel
}

// ParseCellType looks a tag up by name.
func ParseCellType(name string) (CellType, error) {
	for i, n := range cellTypeNames {
		if n == name {
			return CellType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cell type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t CellType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CellType) UnmarshalText(text []byte) error {
	parsed, err := ParseCellType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Set is a bitset of cell types. A cell may be a corner and an orientation at once.
type Set uint32

// SetOf builds a set from tags.
func SetOf(types ...CellType) Set {
	var s Set
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

// Add returns s with t included.
func (s Set) Add(t CellType) Set {
	return s | 1<<t
}

// Has reports whether t is in s.
func (s Set) Has(t CellType) bool {
	return s&(1<<t) != 0
}

// Len returns the number of tags in s.
func (s Set) Len() int {
	n := 0
	for t := 0; t < NumCellTypes; t++ {
		if s.Has(CellType(t)) {
			n++
		}
	}
	return n
}

// Types lists the tags in declaration order.
func (s Set) Types() []CellType {
	out := make([]CellType, 0, 2)
	for t := 0; t < NumCellTypes; t++ {
		if s.Has(CellType(t)) {
			out = append(out, CellType(t))
		}
	}
	return out
}

// Orientation returns the orientation tag held by s, if any.
func (s Set) Orientation() (CellType, bool) {
	for t := SinglePanel; t <= BottomEndPanel; t++ {
		if s.Has(t) {
			return t, true
		}
	}
	return Error, false
}

func (s Set) String() string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, "+")
}

// MarshalJSON encodes the set as a list of tag names.
func (s Set) MarshalJSON() ([]byte, error) {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return json.Marshal(names)
}
