package export

import (
	"solarbom/internal/bom"
	"solarbom/internal/pricing"
)

// Category groups components the way installers pick them.
type Category string

const (
	CategoryPanels     Category = "Panels and mounting"
	CategoryFlashing   Category = "Flashing"
	CategoryRoofing    Category = "Roofing"
	CategoryElectrical Category = "Electrical"
	CategoryPaperwork  Category = "Paperwork"
)

// categoryOrder is the section order in grouped output.
var categoryOrder = []Category{
	CategoryPanels, CategoryFlashing, CategoryRoofing, CategoryElectrical, CategoryPaperwork,
}

// CategoryOf returns the section a component belongs to.
func CategoryOf(c pricing.Component) Category {
	switch c {
	case pricing.SolarPanels, pricing.HalfPortraitFrames, pricing.EndClamp, pricing.MidClamp,
		pricing.ScrewsBlack, pricing.ScrewsSilver:
		return CategoryPanels
	case pricing.LateralFlashing, pricing.LateralFlashingHooks, pricing.LateralFlashingNails,
		pricing.TopFlashing, pricing.CarpetFlashing, pricing.KickerBars, pricing.KickerBarHooks,
		pricing.KickerBarNails, pricing.SealRoll, pricing.PanelWedge:
		return CategoryFlashing
	case pricing.Battens, pricing.WireCloutNails, pricing.Lead, pricing.DeepLead, pricing.CopperNails:
		return CategoryRoofing
	case pricing.DCLead, pricing.DCLiveSticker, pricing.ArcBox, pricing.ArcBoxBracket, pricing.CableTies:
		return CategoryElectrical
	}
	return CategoryPaperwork
}

// Section is one category of lines with its subtotal.
type Section struct {
	Category Category      `json:"category"`
	Lines    []bom.Line    `json:"lines"`
	Subtotal pricing.Money `json:"subtotal"`
}

// Organize splits the BOM into sections. Line order is kept within a section
// and empty sections are dropped. Subtotals always sum to the BOM total.
func Organize(b *bom.BOM, includeZero bool) []Section {
	byCat := make(map[Category]*Section, len(categoryOrder))
	for _, l := range lines(b, includeZero) {
		cat := CategoryOf(l.Component)
		s, ok := byCat[cat]
		if !ok {
			s = &Section{Category: cat, Subtotal: pricing.Zero}
			byCat[cat] = s
		}
		s.Lines = append(s.Lines, l)
		s.Subtotal = s.Subtotal.Add(l.Total)
	}

	out := make([]Section, 0, len(byCat))
	for _, cat := range categoryOrder {
		if s, ok := byCat[cat]; ok {
			out = append(out, *s)
		}
	}
	return out
}
