package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"solarbom/internal/bom"
	"solarbom/internal/errors"
	"solarbom/internal/slogutil"
)

// Exporter writes BOM renderings
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates a new exporter. A nil logger discards.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Exporter{logger: logger}
}

// Write renders b to w in the given format.
func (e *Exporter) Write(w io.Writer, b *bom.BOM, format Format, opts Options) error {
	if b == nil {
		return errors.New(errors.InternalError, "nothing to export")
	}

	e.logger.Debug("Exporting BOM",
		"format", string(format),
		"lines", len(b.Lines),
		"quoteId", b.QuoteID,
	)

	switch format {
	case FormatTable:
		return WriteTable(w, b, opts)
	case FormatChecklist:
		return WriteChecklist(w, b)
	case FormatCSV:
		return WriteCSV(w, b, opts)
	case FormatMarkdown:
		return WriteMarkdown(w, b, opts)
	}
	return errors.New(errors.InvalidConfig, "unknown export format %q", format)
}

func lines(b *bom.BOM, includeZero bool) []bom.Line {
	if includeZero {
		return b.Lines
	}
	return b.NonZero()
}

// WriteTable writes an aligned component table followed by the grand total.
func WriteTable(w io.Writer, b *bom.BOM, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "COMPONENT\tQTY\tPRICE\tTOTAL\t"
	if opts.Explanations {
		header += "EXPLANATION\t"
	}
	fmt.Fprintln(tw, header)

	for _, l := range lines(b, opts.IncludeZero) {
		row := fmt.Sprintf("%s\t%d\t%s\t%s\t", l.Name, l.Quantity, l.Price.Pound(), l.Total.Pound())
		if opts.Explanations {
			row += l.Explanation + "\t"
		}
		fmt.Fprintln(tw, row)
	}
	fmt.Fprintf(tw, "Total\t\t\t%s\t\n", b.Total.Pound())
	return tw.Flush()
}

// Checklist returns the pallet lines: every component with a positive
// quantity, in line order.
func Checklist(b *bom.BOM) []ChecklistItem {
	nz := b.NonZero()
	items := make([]ChecklistItem, 0, len(nz))
	for _, l := range nz {
		items = append(items, ChecklistItem{
			Component: l.Name,
			Quantity:  l.Quantity,
			Label:     PiecesLabel(l.Quantity),
		})
	}
	return items
}

// WriteChecklist writes the pallet checklist with a tick box per line.
func WriteChecklist(w io.Writer, b *bom.BOM) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Pallet checklist: %s, %s\n\n", b.PanelType, pluralStrings(b.Strings))
	for _, item := range Checklist(b) {
		fmt.Fprintf(tw, "[ ]\t%s\t%s\n", item.Component, item.Label)
	}
	return tw.Flush()
}

// WriteCSV writes one record per line with a header and a trailing total.
func WriteCSV(w io.Writer, b *bom.BOM, opts Options) error {
	cw := csv.NewWriter(w)

	header := []string{"component", "quantity", "price", "total"}
	if opts.Explanations {
		header = append(header, "explanation")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, l := range lines(b, opts.IncludeZero) {
		rec := []string{l.Name, strconv.Itoa(l.Quantity), l.Price.String(), l.Total.String()}
		if opts.Explanations {
			rec = append(rec, l.Explanation)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	footer := []string{"Total", "", "", b.Total.String()}
	if opts.Explanations {
		footer = append(footer, "")
	}
	if err := cw.Write(footer); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes a quote document: summary, grouped tables with
// subtotals, then the grand total.
func WriteMarkdown(w io.Writer, b *bom.BOM, opts Options) error {
	var sb strings.Builder

	title := opts.Title
	if title == "" {
		title = "Bill of materials: " + b.PanelType
	}
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(fmt.Sprintf("- Panels: %d\n", b.Stats.TotalPanels))
	sb.WriteString(fmt.Sprintf("- Strings: %d\n", b.Strings))
	sb.WriteString(fmt.Sprintf("- Rows: %d\n", b.Stats.HorizontalRows))
	sb.WriteString(fmt.Sprintf("- Quote: `%s`\n", b.QuoteID))

	for _, s := range Organize(b, opts.IncludeZero) {
		sb.WriteString("\n## " + string(s.Category) + "\n\n")
		sb.WriteString("| Component | Qty | Price | Total |\n")
		sb.WriteString("|---|--:|--:|--:|\n")
		for _, l := range s.Lines {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
				escapeCell(l.Name), l.Quantity, l.Price.Pound(), l.Total.Pound()))
		}
		sb.WriteString(fmt.Sprintf("| **Subtotal** | | | **%s** |\n", s.Subtotal.Pound()))
	}

	sb.WriteString(fmt.Sprintf("\n**Total: %s**\n", b.Total.Pound()))
	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func pluralStrings(n int) string {
	if n == 1 {
		return "1 string"
	}
	return itoa(n) + " strings"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
