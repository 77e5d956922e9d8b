// Package pricing holds the component kinds of a solar roof BOM, the money type
// used to price them and the catalog of unit prices.
package pricing

import (
	"sort"

	"solarbom/internal/errors"
)

// Catalog holds unit prices. Panels are keyed by panel type name.
type Catalog struct {
	Panels     map[string]Money
	Components map[Component]Money
}

// DefaultCatalog returns the reference prices.
func DefaultCatalog() Catalog {
	return Catalog{
		Panels: map[string]Money{
			"DMEGC 405w": MustMoney("112.00"),
			"LONGi 405w": MustMoney("121.50"),
		},
		Components: map[Component]Money{
			HalfPortraitFrames:   MustMoney("19.52"),
			EndClamp:             MustMoney("1.11"),
			MidClamp:             MustMoney("1.28"),
			ScrewsBlack:          MustMoney("0.26"),
			ScrewsSilver:         MustMoney("0.22"),
			LateralFlashing:      MustMoney("13.35"),
			LateralFlashingHooks: MustMoney("0.45"),
			LateralFlashingNails: MustMoney("0.01"),
			TopFlashing:          MustMoney("38.50"),
			CarpetFlashing:       MustMoney("24.95"),
			KickerBars:           MustMoney("6.80"),
			KickerBarHooks:       MustMoney("0.95"),
			KickerBarNails:       MustMoney("0.01"),
			SealRoll:             MustMoney("9.15"),
			PanelWedge:           MustMoney("1.75"),
			Battens:              MustMoney("0.24"),
			WireCloutNails:       MustMoney("0.01"),
			Lead:                 MustMoney("34.20"), // 1500mm piece at 0.0228/mm
			DeepLead:             MustMoney("41.04"),
			CopperNails:          MustMoney("0.02"),
			DCLead:               MustMoney("9.03"),
			DCLiveSticker:        MustMoney("0.24"),
			ArcBox:               MustMoney("18.50"),
			ArcBoxBracket:        MustMoney("4.20"),
			CableTies:            MustMoney("0.03"),
			RooferGuideSheet:     Zero,
		},
	}
}

// Clone returns a deep copy so callers can overlay prices without touching the source.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Panels:     make(map[string]Money, len(c.Panels)),
		Components: make(map[Component]Money, len(c.Components)),
	}
	for k, v := range c.Panels {
		out.Panels[k] = v
	}
	for k, v := range c.Components {
		out.Components[k] = v
	}
	return out
}

// PanelPrice returns the unit price of a panel type. Unknown types are an
// UNKNOWN_PANEL_TYPE error; there is no fallback price.
func (c Catalog) PanelPrice(panelType string) (Money, error) {
	price, ok := c.Panels[panelType]
	if !ok {
		return Zero, errors.New(errors.UnknownPanelType, "panel type %q is not in the catalog", panelType).
			WithDetails(map[string]interface{}{
				"panelType": panelType,
				"known":     c.PanelTypes(),
			})
	}
	return price, nil
}

// PanelTypes lists the known panel types in name order.
func (c Catalog) PanelTypes() []string {
	names := make([]string, 0, len(c.Panels))
	for name := range c.Panels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComponentPrice returns the unit price of c. Unpriced components cost nothing.
func (c Catalog) ComponentPrice(comp Component) Money {
	if price, ok := c.Components[comp]; ok {
		return price
	}
	return Zero
}

// Validate rejects negative prices and an empty panel list.
func (c Catalog) Validate() error {
	if len(c.Panels) == 0 {
		return errors.New(errors.InvalidConfig, "catalog has no panel types")
	}
	for _, name := range c.PanelTypes() {
		if c.Panels[name].IsNegative() {
			return errors.New(errors.InvalidConfig, "panel %q has a negative price", name)
		}
	}
	for _, comp := range Components() {
		if price, ok := c.Components[comp]; ok && price.IsNegative() {
			return errors.New(errors.InvalidConfig, "component %q has a negative price", comp.Name())
		}
	}
	return nil
}
