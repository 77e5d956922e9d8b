// Package export renders a priced bill of materials for people: an aligned
// table for the terminal, a pallet checklist for the warehouse, CSV for
// spreadsheets and markdown for quotes.
package export

import (
	"solarbom/internal/errors"
)

// Format names a rendering.
type Format string

const (
	FormatTable     Format = "table"
	FormatChecklist Format = "checklist"
	FormatCSV       Format = "csv"
	FormatMarkdown  Format = "markdown"
)

// Formats lists every rendering in display order.
func Formats() []Format {
	return []Format{FormatTable, FormatChecklist, FormatCSV, FormatMarkdown}
}

// ParseFormat accepts a format name. "human" is an alias for table.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "human", string(FormatTable):
		return FormatTable, nil
	case string(FormatChecklist):
		return FormatChecklist, nil
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	}
	return "", errors.New(errors.InvalidConfig, "unknown export format %q", s)
}

// Options configures a rendering
type Options struct {
	// IncludeZero keeps lines whose quantity is 0. The checklist never
	// shows them.
	IncludeZero bool
	// Explanations adds the audit string column to table and CSV output.
	Explanations bool
	// Title heads markdown output. Empty uses a title built from the panel type.
	Title string
}

// ChecklistItem is one pallet line.
type ChecklistItem struct {
	Component string `json:"component"`
	Quantity  int    `json:"quantity"`
	Label     string `json:"label"`
}

// PiecesLabel renders a quantity for the pallet list: "1 pc" or "N pcs".
func PiecesLabel(n int) string {
	if n == 1 {
		return "1 pc"
	}
	return itoa(n) + " pcs"
}
