package bom

import (
	"solarbom/internal/pricing"
)

// RuleDescription explains in words how one component is counted.
type RuleDescription struct {
	Component pricing.Component `json:"-"`
	Name      string            `json:"component"`
	Rule      string            `json:"rule"`
}

// Describe returns the calculation rules for every component in line order,
// reflecting the selected variants.
func Describe(rules Rules) []RuleDescription {
	rules = rules.withDefaults()

	text := map[pricing.Component]string{
		pricing.SolarPanels:          "1 per active cell in the grid",
		pricing.HalfPortraitFrames:   "2 per panel",
		pricing.EndClamp:             "4 per single panel (Single, TopSingle, BottomSingle, CenterSingle), 2 per end panel",
		pricing.MidClamp:             "2 per mid panel (Mid, MiddleMid, TopMid, BottomMid), 1 per end panel",
		pricing.ScrewsBlack:          "4 per single panel, 3 per end panel, 2 per mid panel",
		pricing.ScrewsSilver:         "6 per panel",
		pricing.LateralFlashing:      "2 per single panel plus 1 per end panel, then doubled",
		pricing.LateralFlashingHooks: "4 per single panel, 2 per end, TopMid and BottomMid panel",
		pricing.LateralFlashingNails: "Same as Lateral Flashing Hooks",
		pricing.TopFlashing:          "1 per 4 top row panels with nothing above (rounded up)",
		pricing.CarpetFlashing:       "1 per BottomLeftCorner and BottomRightCorner",
		pricing.KickerBars:           "1 per top row panel with nothing above",
		pricing.KickerBarHooks:       "2 per top row panel with nothing above",
		pricing.KickerBarNails:       "Same as Kicker Bar Hooks",
		pricing.PanelWedge:           "1 per horizontal row of panels",
		pricing.Battens:              "Looked up from the batten table by occupied rows and widest row; beyond it, the far corner entry plus 9 per row and column of difference",
		pricing.WireCloutNails:       "5 per batten",
		pricing.Lead:                 "Bottom row width looked up in the lead meterage table (1375mm per panel beyond it), divided into 1500mm pieces (rounded up)",
		pricing.CopperNails:          "3 per piece of lead",
		pricing.DCLead:               "2 per string",
		pricing.DCLiveSticker:        "1 per string",
		pricing.ArcBox:               "1 per string",
		pricing.ArcBoxBracket:        "1 per string",
		pricing.RooferGuideSheet:     "1 per plot",
	}

	switch rules.SealRoll {
	case SealRollPerRow:
		text[pricing.SealRoll] = "1 roll per horizontal row of panels"
	default:
		text[pricing.SealRoll] = "1 roll per 10 panels (rounded up)"
	}
	switch rules.CableTies {
	case CableTiesPerString:
		text[pricing.CableTies] = "5 per string"
	default:
		text[pricing.CableTies] = "5 per 10 panels (rounded up)"
	}
	switch rules.DeepLead {
	case DeepLeadWidestRow:
		text[pricing.DeepLead] = "1 piece per panel of the widest row above the bottom row"
	default:
		text[pricing.DeepLead] = "1 piece per non-bottom panel with nothing directly below"
	}

	out := make([]RuleDescription, 0, pricing.NumComponents)
	for _, c := range pricing.Components() {
		out = append(out, RuleDescription{Component: c, Name: c.Name(), Rule: text[c]})
	}
	return out
}
