package classify

import (
	"bytes"
	"encoding/json"
)

// Counts holds the occurrence count of every cell type, indexed by CellType.
// Every tag is always present, zero when unseen.
type Counts [NumCellTypes]int

// Of returns the count for t.
func (c Counts) Of(t CellType) int {
	if int(t) >= NumCellTypes {
		return 0
	}
	return c[t]
}

// Sum adds the counts of the given tags.
func (c Counts) Sum(types ...CellType) int {
	n := 0
	for _, t := range types {
		n += c.Of(t)
	}
	return n
}

// Singles is the total of the single-orientation tags.
func (c Counts) Singles() int { return c.Sum(SingleTypes...) }

// Ends is the total of the end-orientation tags.
func (c Counts) Ends() int { return c.Sum(EndTypes...) }

// Mids is the total of the mid-orientation tags.
func (c Counts) Mids() int { return c.Sum(MidTypes...) }

// Orientation is the total of all orientation tags. It equals the number of
// occupied cells when classified in additive mode.
func (c Counts) Orientation() int {
	return c.Singles() + c.Ends() + c.Mids()
}

// Map returns the counts keyed by tag name.
func (c Counts) Map() map[string]int {
	out := make(map[string]int, NumCellTypes)
	for t := 0; t < NumCellTypes; t++ {
		out[CellType(t).String()] = c[t]
	}
	return out
}

// MarshalJSON writes the counts as an object in tag declaration order.
func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for t := 0; t < NumCellTypes; t++ {
		if t > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(CellType(t).String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c[t])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by tag name. Unknown names are rejected.
func (c *Counts) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Counts
	for name, n := range raw {
		t, err := ParseCellType(name)
		if err != nil {
			return err
		}
		out[t] = n
	}
	*c = out
	return nil
}
