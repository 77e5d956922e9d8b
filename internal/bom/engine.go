// Package bom derives a priced bill of materials from a classified panel grid.
//
// An Engine is built once from reference data and rule variants and is
// immutable afterwards, so a single Engine may serve concurrent callers.
// Calculate is pure: identical inputs give identical BOMs, explanation strings
// and quote IDs included.
package bom

import (
	"fmt"
	"log/slog"

	"solarbom/internal/classify"
	"solarbom/internal/errors"
	"solarbom/internal/grid"
	"solarbom/internal/pricing"
	"solarbom/internal/slogutil"
	"solarbom/internal/tables"
)

// Options configures an Engine. Zero fields fall back to the reference data
// and default rules.
type Options struct {
	Catalog    pricing.Catalog
	Battens    tables.BattenTable
	Lead       tables.LeadTable
	Rules      Rules
	Classifier classify.Classifier
	Logger     *slog.Logger
}

// OptionsFromReference builds Options from loaded reference data.
func OptionsFromReference(ref pricing.ReferenceData, rules Rules) Options {
	return Options{
		Catalog: ref.Catalog,
		Battens: ref.Battens,
		Lead:    ref.Lead,
		Rules:   rules,
	}
}

// Engine computes BOMs.
type Engine struct {
	catalog    pricing.Catalog
	battens    tables.BattenTable
	lead       tables.LeadTable
	rules      Rules
	classifier classify.Classifier
	logger     *slog.Logger
}

// NewEngine validates opts and returns an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if len(opts.Catalog.Panels) == 0 && len(opts.Catalog.Components) == 0 {
		opts.Catalog = pricing.DefaultCatalog()
	}
	if len(opts.Battens.Values) == 0 {
		opts.Battens = tables.DefaultBattenTable()
	}
	if opts.Lead.StandardLength == 0 && len(opts.Lead.Meterage) == 0 {
		opts.Lead = tables.DefaultLeadTable()
	}
	opts.Rules = opts.Rules.withDefaults()
	if opts.Classifier.Mode == "" {
		opts.Classifier = classify.Default
	}
	if opts.Logger == nil {
		opts.Logger = slogutil.NewDiscardLogger()
	}

	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	ref := pricing.ReferenceData{Catalog: opts.Catalog, Battens: opts.Battens, Lead: opts.Lead}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if _, err := classify.ParseMode(string(opts.Classifier.Mode)); err != nil {
		return nil, errors.Wrap(errors.InvalidConfig, err, "invalid classifier")
	}

	return &Engine{
		catalog:    opts.Catalog.Clone(),
		battens:    opts.Battens,
		lead:       opts.Lead,
		rules:      opts.Rules,
		classifier: opts.Classifier,
		logger:     opts.Logger,
	}, nil
}

// Rules returns the rule variants in effect.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Catalog returns a copy of the engine's price catalog.
func (e *Engine) Catalog() pricing.Catalog {
	return e.catalog.Clone()
}

// Classifier returns the classifier used by CalculateGrid.
func (e *Engine) Classifier() classify.Classifier {
	return e.classifier
}

// CalculateGrid classifies g and derives its BOM.
func (e *Engine) CalculateGrid(g grid.Grid, panelType string, numberOfStrings int) (*BOM, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return e.Calculate(e.classifier.CountCellTypes(g), g, panelType, numberOfStrings)
}

// Calculate derives the BOM for a grid whose cell types have already been
// counted. It either returns a complete BOM or fails with INVALID_GRID,
// UNKNOWN_PANEL_TYPE or INVALID_STRING_COUNT.
func (e *Engine) Calculate(counts classify.Counts, g grid.Grid, panelType string, numberOfStrings int) (*BOM, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	panelPrice, err := e.catalog.PanelPrice(panelType)
	if err != nil {
		return nil, err
	}
	if numberOfStrings < 1 {
		return nil, errors.New(errors.InvalidStringCount, "number of strings must be at least 1, got %d", numberOfStrings).
			WithDetails(map[string]int{"strings": numberOfStrings})
	}

	stats := grid.Measure(g)
	b := &BOM{
		PanelType: panelType,
		Strings:   numberOfStrings,
		Rules:     e.rules,
		Stats:     stats,
		Counts:    counts,
		Lines:     make([]Line, 0, pricing.NumComponents),
		Total:     pricing.Zero,
	}
	for _, q := range e.quantities(counts, stats, numberOfStrings) {
		price := panelPrice
		if q.component != pricing.SolarPanels {
			price = e.catalog.ComponentPrice(q.component)
		}
		b.add(q.component, q.qty, price, q.derivation)
	}
	b.QuoteID = quoteID(g, b)

	e.logger.Debug("Calculated BOM",
		"panelType", panelType,
		"panels", stats.TotalPanels,
		"strings", numberOfStrings,
		"total", b.Total.String(),
		"quoteId", b.QuoteID,
	)
	return b, nil
}

// quantity is one computed line before pricing.
type quantity struct {
	component  pricing.Component
	qty        int
	derivation string
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// quantities applies the per-component formulas in line order.
func (e *Engine) quantities(counts classify.Counts, s grid.Stats, numberOfStrings int) []quantity {
	single := counts.Singles()
	end := counts.Ends()
	mid := counts.Mids()
	outerMid := counts.Of(classify.TopMidPanel) + counts.Of(classify.BottomMidPanel)
	total := s.TotalPanels
	top := s.TopRowPanels
	rows := s.HorizontalRows
	panels := plural(total, "panel", "panels")

	// Nothing to wire without panels.
	wired := numberOfStrings
	if total == 0 {
		wired = 0
	}
	stringsText := plural(wired, "string", "strings")

	var sealRoll quantity
	switch e.rules.SealRoll {
	case SealRollPerRow:
		sealRoll = quantity{pricing.SealRoll, rows, "1 per row x " + plural(rows, "row", "rows")}
	default:
		sealRoll = quantity{pricing.SealRoll, ceilDiv(total, 10), "1 per 10 panels, " + panels + " rounded up"}
	}

	var cableTies quantity
	switch e.rules.CableTies {
	case CableTiesPerString:
		cableTies = quantity{pricing.CableTies, wired * 5, "5 per string x " + stringsText}
	default:
		cableTies = quantity{pricing.CableTies, ceilDiv(total, 10) * 5, "5 per 10 panels, " + panels + " rounded up"}
	}

	var deepLead quantity
	switch e.rules.DeepLead {
	case DeepLeadWidestRow:
		deepLead = quantity{pricing.DeepLead, s.WidestNonBottomRow,
			"1 per panel of the widest non-bottom row x " + plural(s.WidestNonBottomRow, "panel", "panels")}
	default:
		deepLead = quantity{pricing.DeepLead, s.NonBottomRowPanels,
			"1 per non-bottom panel with nothing below x " + plural(s.NonBottomRowPanels, "panel", "panels")}
	}

	battens := e.battens.Quantity(s.Battens.Rows, s.Battens.Columns, total)
	lead := e.lead.Pieces(s.BottomRowPanels)
	leadText := fmt.Sprintf("%dmm for %s / %dmm pieces, rounded up",
		e.lead.Length(s.BottomRowPanels), plural(s.BottomRowPanels, "bottom row panel", "bottom row panels"), e.lead.StandardLength)
	if _, ok := e.lead.Conversion[s.BottomRowPanels]; ok {
		leadText = "conversion table for " + plural(s.BottomRowPanels, "bottom row panel", "bottom row panels")
	}

	return []quantity{
		{pricing.SolarPanels, total, "1 per panel x " + panels},
		{pricing.HalfPortraitFrames, total * 2, "2 per panel x " + panels},
		{pricing.EndClamp, 4*single + 2*end,
			fmt.Sprintf("4 x %d single + 2 x %d end", single, end)},
		{pricing.MidClamp, 2*mid + end,
			fmt.Sprintf("2 x %d mid + %d end", mid, end)},
		{pricing.ScrewsBlack, 4*single + 3*end + 2*mid,
			fmt.Sprintf("4 x %d single + 3 x %d end + 2 x %d mid", single, end, mid)},
		{pricing.ScrewsSilver, total * 6, "6 per panel x " + panels},
		{pricing.LateralFlashing, (2*single + end) * 2,
			fmt.Sprintf("(2 x %d single + %d end) x 2", single, end)},
		{pricing.LateralFlashingHooks, 4*single + 2*(end+outerMid),
			fmt.Sprintf("4 x %d single + 2 x (%d end + %d top/bottom mid)", single, end, outerMid)},
		{pricing.LateralFlashingNails, 4*single + 2*(end+outerMid),
			fmt.Sprintf("same as hooks: 4 x %d single + 2 x (%d end + %d top/bottom mid)", single, end, outerMid)},
		{pricing.TopFlashing, ceilDiv(top, 4),
			"1 per 4 top row panels, " + plural(top, "panel", "panels") + " rounded up"},
		{pricing.CarpetFlashing, counts.Of(classify.BottomLeftCorner) + counts.Of(classify.BottomRightCorner),
			fmt.Sprintf("%d bottom left + %d bottom right corners",
				counts.Of(classify.BottomLeftCorner), counts.Of(classify.BottomRightCorner))},
		{pricing.KickerBars, top, "1 per top row panel x " + plural(top, "panel", "panels")},
		{pricing.KickerBarHooks, top * 2, "2 per top row panel x " + plural(top, "panel", "panels")},
		{pricing.KickerBarNails, top * 2, "2 per top row panel x " + plural(top, "panel", "panels")},
		sealRoll,
		{pricing.PanelWedge, rows, "1 per row x " + plural(rows, "row", "rows")},
		{pricing.Battens, battens,
			fmt.Sprintf("batten table for %d rows x %d columns", s.Battens.Rows, s.Battens.Columns)},
		{pricing.WireCloutNails, battens * 5, "5 per batten x " + plural(battens, "batten", "battens")},
		{pricing.Lead, lead, leadText},
		deepLead,
		{pricing.CopperNails, lead * 3, "3 per piece of lead x " + plural(lead, "piece", "pieces")},
		{pricing.DCLead, wired * 2, "2 per string x " + stringsText},
		{pricing.DCLiveSticker, wired, "1 per string x " + stringsText},
		{pricing.ArcBox, wired, "1 per string x " + stringsText},
		{pricing.ArcBoxBracket, wired, "1 per string x " + stringsText},
		cableTies,
		{pricing.RooferGuideSheet, 1, "1 per plot"},
	}
}
