package bom

import (
	"solarbom/internal/errors"
)

// SealRollRule selects how compressed seal roll scales.
type SealRollRule string

const (
	// SealRollPerTenPanels orders one roll per ten panels, rounded up.
	SealRollPerTenPanels SealRollRule = "per-ten-panels"
	// SealRollPerRow orders one roll per horizontal row of panels.
	SealRollPerRow SealRollRule = "per-row"
)

// CableTieRule selects how cable ties scale.
type CableTieRule string

const (
	// CableTiesPerTenPanels orders five ties per ten panels, rounded up.
	CableTiesPerTenPanels CableTieRule = "per-ten-panels"
	// CableTiesPerString orders five ties per electrical string.
	CableTiesPerString CableTieRule = "per-string"
)

// DeepLeadRule selects how deep lead is counted.
type DeepLeadRule string

const (
	// DeepLeadExposedUnderside counts non-bottom-row panels with nothing below.
	DeepLeadExposedUnderside DeepLeadRule = "exposed-underside"
	// DeepLeadWidestRow counts the widest row above the bottom row.
	DeepLeadWidestRow DeepLeadRule = "widest-row"
)

// Rules holds the formula variants that differ between installers.
type Rules struct {
	SealRoll  SealRollRule `json:"sealRoll"`
	CableTies CableTieRule `json:"cableTies"`
	DeepLead  DeepLeadRule `json:"deepLead"`
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		SealRoll:  SealRollPerTenPanels,
		CableTies: CableTiesPerTenPanels,
		DeepLead:  DeepLeadExposedUnderside,
	}
}

// ParseRules builds a rule set from names. Empty names keep the default.
func ParseRules(sealRoll, cableTies, deepLead string) (Rules, error) {
	r := DefaultRules()
	if sealRoll != "" {
		r.SealRoll = SealRollRule(sealRoll)
	}
	if cableTies != "" {
		r.CableTies = CableTieRule(cableTies)
	}
	if deepLead != "" {
		r.DeepLead = DeepLeadRule(deepLead)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate rejects unknown variants.
func (r Rules) Validate() error {
	switch r.SealRoll {
	case SealRollPerTenPanels, SealRollPerRow:
	default:
		return errors.New(errors.InvalidConfig, "unknown seal roll rule %q (want %s or %s)",
			r.SealRoll, SealRollPerTenPanels, SealRollPerRow)
	}
	switch r.CableTies {
	case CableTiesPerTenPanels, CableTiesPerString:
	default:
		return errors.New(errors.InvalidConfig, "unknown cable tie rule %q (want %s or %s)",
			r.CableTies, CableTiesPerTenPanels, CableTiesPerString)
	}
	switch r.DeepLead {
	case DeepLeadExposedUnderside, DeepLeadWidestRow:
	default:
		return errors.New(errors.InvalidConfig, "unknown deep lead rule %q (want %s or %s)",
			r.DeepLead, DeepLeadExposedUnderside, DeepLeadWidestRow)
	}
	return nil
}

// withDefaults fills unset variants.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.SealRoll == "" {
		r.SealRoll = d.SealRoll
	}
	if r.CableTies == "" {
		r.CableTies = d.CableTies
	}
	if r.DeepLead == "" {
		r.DeepLead = d.DeepLead
	}
	return r
}
