package pricing

import (
	"fmt"
)

// Component is a fixed kind of BOM line item. The declaration order is the
// order lines appear in a bill of materials.
type Component int

const (
	SolarPanels Component = iota
	HalfPortraitFrames
	EndClamp
	MidClamp
	ScrewsBlack
	ScrewsSilver
	LateralFlashing
	LateralFlashingHooks
	LateralFlashingNails
	TopFlashing
	CarpetFlashing
	KickerBars
	KickerBarHooks
	KickerBarNails
	SealRoll
	PanelWedge
	Battens
	WireCloutNails
	Lead
	DeepLead
	CopperNails
	DCLead
	DCLiveSticker
	ArcBox
	ArcBoxBracket
	CableTies
	RooferGuideSheet

	// NumComponents is the number of component kinds.
	NumComponents = int(RooferGuideSheet) + 1
)

var componentNames = [NumComponents]string{
	SolarPanels:          "Solar Panels",
	HalfPortraitFrames:   "GSE Half Portrait Frames",
	EndClamp:             "GSE End Clamp",
	MidClamp:             "GSE Mid Clamp",
	ScrewsBlack:          "GSE Screws Black",
	ScrewsSilver:         "GSE Screws Silver",
	LateralFlashing:      "Lateral Flashing",
	LateralFlashingHooks: "Lateral Flashing Hooks",
	LateralFlashingNails: "Lateral Flashing Nails Galv 20mm",
	TopFlashing:          "Flexalu Top Flashing",
	CarpetFlashing:       "Uberflex Carpet Flashing",
	KickerBars:           "Tile Kicker Bars",
	KickerBarHooks:       "Kicker Bar Hooks",
	KickerBarNails:       "Kicker Bar Nails",
	SealRoll:             "Compressed Seal Roll",
	PanelWedge:           "Panel Wedge",
	Battens:              "Battens",
	WireCloutNails:       "Wire Clout Nails 65mm",
	Lead:                 "Lead",
	DeepLead:             "Deep Lead 600mm",
	CopperNails:          "Copper Nails",
	DCLead:               "Pre Assembled DC Lead",
	DCLiveSticker:        "DC Live Sticker",
	ArcBox:               "Arc Box",
	ArcBoxBracket:        "Arc Box Bracket",
	CableTies:            "Cable Ties",
	RooferGuideSheet:     "Roofer Guide Sheet",
}

// Components lists every kind in line order.
func Components() []Component {
	out := make([]Component, NumComponents)
	for i := range out {
		out[i] = Component(i)
	}
	return out
}

// Name returns the display name used in catalogs and BOM output.
func (c Component) Name() string {
	if c >= 0 && int(c) < NumComponents {
		return componentNames[c]
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

func (c Component) String() string {
	return c.Name()
}

// Valid reports whether c is a defined kind.
func (c Component) Valid() bool {
	return c >= 0 && int(c) < NumComponents
}

// ParseComponent looks a component up by display name.
func ParseComponent(name string) (Component, error) {
	for i, n := range componentNames {
		if n == name {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("unknown component %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Component) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid component %d", int(c))
	}
	return []byte(c.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Component) UnmarshalText(text []byte) error {
	parsed, err := ParseComponent(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
