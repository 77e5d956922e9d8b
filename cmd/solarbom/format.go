package main

import (
	"fmt"
	"strings"

	"solarbom/internal/bom"
	"solarbom/internal/classify"
	"solarbom/internal/export"
	"solarbom/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as deterministic indented JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := output.DeterministicEncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *bom.BOM:
		return formatBOMHuman(v)
	case *ClassifyResponseCLI:
		return formatClassifyHuman(v)
	case *StatsResponseCLI:
		return formatStatsHuman(v)
	case *CatalogResponseCLI:
		return formatCatalogHuman(v)
	case *RulesResponseCLI:
		return formatRulesHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatBOMHuman(b *bom.BOM) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Bill of materials: %s (%s, %s)\n\n",
		b.PanelType, plural(b.Stats.TotalPanels, "panel"), plural(b.Strings, "string")))
	if err := export.WriteTable(&sb, b, export.Options{}); err != nil {
		return "", err
	}
	sb.WriteString(fmt.Sprintf("\nQuote: %s\n", b.QuoteID))
	return strings.TrimRight(sb.String(), "\n"), nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// cellAbbrev is a two-letter code per orientation tag for the grid view.
var cellAbbrev = map[classify.CellType]string{
	classify.SinglePanel:       "S ",
	classify.TopSinglePanel:    "TS",
	classify.BottomSinglePanel: "BS",
	classify.CenterSinglePanel: "CS",
	classify.MidPanel:          "M ",
	classify.EndPanel:          "E ",
	classify.MiddleMidPanel:    "MM",
	classify.MiddleEndPanel:    "ME",
	classify.TopMidPanel:       "TM",
	classify.TopEndPanel:       "TE",
	classify.BottomMidPanel:    "BM",
	classify.BottomEndPanel:    "BE",
	classify.TopLeftCorner:     "TL",
	classify.TopRightCorner:    "TR",
	classify.BottomLeftCorner:  "BL",
	classify.BottomRightCorner: "BR",
}

func cellCode(s classify.Set) string {
	if s.Has(classify.EmptyCell) {
		return ". "
	}
	if t, ok := s.Orientation(); ok {
		code := cellAbbrev[t]
		if s.Len() > 1 {
			code = strings.TrimSpace(code) + "*"
		}
		return code
	}
	// Legacy mode replaces the orientation with a corner.
	for _, t := range s.Types() {
		if code, ok := cellAbbrev[t]; ok {
			return code
		}
	}
	return "? "
}

func formatClassifyHuman(r *ClassifyResponseCLI) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cell types (%s)\n", r.Mode))
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	for _, row := range r.Cells {
		codes := make([]string, len(row))
		for i, s := range row {
			codes[i] = cellCode(s)
		}
		sb.WriteString("  " + strings.Join(codes, " ") + "\n")
	}
	sb.WriteString("\n  * also carries a corner tag\n\n")

	sb.WriteString("Counts:\n")
	for t := 0; t < classify.NumCellTypes; t++ {
		ct := classify.CellType(t)
		if ct == classify.EmptyCell || ct == classify.Error {
			continue
		}
		if n := r.Counts.Of(ct); n > 0 {
			sb.WriteString(fmt.Sprintf("  %-20s %d\n", ct.String(), n))
		}
	}
	sb.WriteString(fmt.Sprintf("  %-20s %d\n", "Panels", r.Counts.Orientation()))
	return strings.TrimRight(sb.String(), "\n"), nil
}

func formatStatsHuman(r *StatsResponseCLI) (string, error) {
	s := r.Stats
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Grid %dx%d\n", r.Rows, r.Cols))
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")
	rows := []struct {
		label string
		value int
	}{
		{"Total panels", s.TotalPanels},
		{"Rows with panels", s.RowsWithPanels},
		{"Bottom row panels", s.BottomRowPanels},
		{"Non-bottom row panels", s.NonBottomRowPanels},
		{"Top row panels", s.TopRowPanels},
		{"Horizontal rows", s.HorizontalRows},
		{"Vertical columns", s.VerticalColumns},
		{"Widest non-bottom row", s.WidestNonBottomRow},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %-24s %d\n", row.label, row.value))
	}
	sb.WriteString(fmt.Sprintf("  %-24s %d rows x %d columns\n", "Batten footprint", s.Battens.Rows, s.Battens.Columns))
	return strings.TrimRight(sb.String(), "\n"), nil
}

func formatCatalogHuman(r *CatalogResponseCLI) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Reference data (%s)\n", r.Source))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString("Panels:\n")
	for _, name := range r.PanelTypes {
		sb.WriteString(fmt.Sprintf("  %-34s %10s\n", name, r.Panels[name].Pound()))
	}

	sb.WriteString("\nComponents:\n")
	for _, c := range r.Components {
		sb.WriteString(fmt.Sprintf("  %-34s %10s\n", c.Component, c.Price.Pound()))
	}

	sb.WriteString(fmt.Sprintf("\nBattens (rows x columns, +%d per extra row, +%d per extra column):\n",
		r.Battens.PerRow, r.Battens.PerColumn))
	for i, row := range r.Battens.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%4d", v)
		}
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i+1, strings.Join(cells, "")))
	}

	sb.WriteString(fmt.Sprintf("\nLead (%dmm pieces, +%dmm per panel beyond the table):\n",
		r.Lead.StandardLength, r.Lead.DefaultIncrement))
	for _, n := range r.Lead.Entries() {
		sb.WriteString(fmt.Sprintf("  %2d panels  %6dmm\n", n, r.Lead.Meterage[n]))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func formatRulesHuman(r *RulesResponseCLI) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Calculation rules (seal roll: %s, cable ties: %s, deep lead: %s)\n",
		r.Rules.SealRoll, r.Rules.CableTies, r.Rules.DeepLead))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	for _, d := range r.Descriptions {
		sb.WriteString(fmt.Sprintf("  %-34s %s\n", d.Name, d.Rule))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
