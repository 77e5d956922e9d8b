package pricing

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"solarbom/internal/errors"
	"solarbom/internal/tables"
)

// ReferenceData bundles everything the BOM rules look up: prices and the two
// lookup tables.
type ReferenceData struct {
	Catalog Catalog
	Battens tables.BattenTable
	Lead    tables.LeadTable
}

// DefaultReferenceData returns the built-in prices and tables.
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Catalog: DefaultCatalog(),
		Battens: tables.DefaultBattenTable(),
		Lead:    tables.DefaultLeadTable(),
	}
}

// referenceFile is the on-disk TOML layout. Lead tables are keyed by panel
// count written as a string, since TOML keys are strings.
type referenceFile struct {
	Panels     map[string]float64 `toml:"panels"`
	Components map[string]float64 `toml:"components"`
	Battens    *battenSection     `toml:"battens"`
	Lead       *leadSection       `toml:"lead"`
}

type battenSection struct {
	Values    [][]int `toml:"values,omitempty"`
	PerRow    *int    `toml:"per_row"`
	PerColumn *int    `toml:"per_column"`
}

type leadSection struct {
	DefaultIncrement *int           `toml:"default_increment"`
	StandardLength   *int           `toml:"standard_length"`
	Meterage         map[string]int `toml:"meterage"`
	Conversion       map[string]int `toml:"conversion,omitempty"`
}

// LoadReferenceData reads a reference data file and overlays it on the
// defaults. An empty path returns the defaults.
func LoadReferenceData(path string) (ReferenceData, error) {
	if path == "" {
		return DefaultReferenceData(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ReferenceData{}, errors.Wrap(errors.InvalidConfig, err, "failed to read reference data %s", path)
	}
	ref, err := DecodeReferenceData(string(data))
	if err != nil {
		if be, ok := err.(*errors.BomError); ok {
			return ReferenceData{}, be.WithDetails(map[string]string{"path": path})
		}
		return ReferenceData{}, err
	}
	return ref, nil
}

// DecodeReferenceData parses TOML reference data and overlays it on the defaults.
func DecodeReferenceData(data string) (ReferenceData, error) {
	var file referenceFile
	md, err := toml.Decode(data, &file)
	if err != nil {
		return ReferenceData{}, errors.Wrap(errors.InvalidConfig, err, "failed to parse reference data")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return ReferenceData{}, errors.New(errors.InvalidConfig, "unknown reference data keys: %s", strings.Join(keys, ", "))
	}

	ref := DefaultReferenceData()
	if err := file.apply(&ref); err != nil {
		return ReferenceData{}, err
	}
	if err := ref.Validate(); err != nil {
		return ReferenceData{}, err
	}
	return ref, nil
}

func (f referenceFile) apply(ref *ReferenceData) error {
	for name, price := range f.Panels {
		ref.Catalog.Panels[name] = MoneyFromFloat(price)
	}
	for name, price := range f.Components {
		comp, err := ParseComponent(name)
		if err != nil {
			return errors.Wrap(errors.InvalidConfig, err, "unknown component in [components]")
		}
		if comp == SolarPanels {
			return errors.New(errors.InvalidConfig, "%q is priced per panel type under [panels]", name)
		}
		ref.Catalog.Components[comp] = MoneyFromFloat(price)
	}

	if b := f.Battens; b != nil {
		if len(b.Values) > 0 {
			ref.Battens.Values = b.Values
		}
		if b.PerRow != nil {
			ref.Battens.PerRow = *b.PerRow
		}
		if b.PerColumn != nil {
			ref.Battens.PerColumn = *b.PerColumn
		}
	}

	if l := f.Lead; l != nil {
		if l.DefaultIncrement != nil {
			ref.Lead.DefaultIncrement = *l.DefaultIncrement
		}
		if l.StandardLength != nil {
			ref.Lead.StandardLength = *l.StandardLength
		}
		meterage, err := intKeyed("lead.meterage", l.Meterage)
		if err != nil {
			return err
		}
		for n, mm := range meterage {
			ref.Lead.Meterage[n] = mm
		}
		conversion, err := intKeyed("lead.conversion", l.Conversion)
		if err != nil {
			return err
		}
		if len(conversion) > 0 {
			ref.Lead.Conversion = conversion
		}
	}
	return nil
}

func intKeyed(section string, in map[string]int) (map[int]int, error) {
	out := make(map[int]int, len(in))
	for k, v := range in {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidConfig, err, "%s key %q is not a panel count", section, k)
		}
		out[n] = v
	}
	return out, nil
}

// Validate checks the catalog and both tables.
func (r ReferenceData) Validate() error {
	if err := r.Catalog.Validate(); err != nil {
		return err
	}
	if err := r.Battens.Validate(); err != nil {
		return errors.Wrap(errors.InvalidConfig, err, "invalid batten table")
	}
	if err := r.Lead.Validate(); err != nil {
		return errors.Wrap(errors.InvalidConfig, err, "invalid lead table")
	}
	return nil
}

// WriteReferenceData encodes r as TOML.
func WriteReferenceData(w io.Writer, r ReferenceData) error {
	file := referenceFile{
		Panels:     make(map[string]float64, len(r.Catalog.Panels)),
		Components: make(map[string]float64, len(r.Catalog.Components)),
		Battens: &battenSection{
			Values:    r.Battens.Values,
			PerRow:    intPtr(r.Battens.PerRow),
			PerColumn: intPtr(r.Battens.PerColumn),
		},
		Lead: &leadSection{
			DefaultIncrement: intPtr(r.Lead.DefaultIncrement),
			StandardLength:   intPtr(r.Lead.StandardLength),
			Meterage:         stringKeyed(r.Lead.Meterage),
			Conversion:       stringKeyed(r.Lead.Conversion),
		},
	}
	for name, price := range r.Catalog.Panels {
		file.Panels[name] = price.Float64()
	}
	for comp, price := range r.Catalog.Components {
		file.Components[comp.Name()] = price.Float64()
	}

	if _, err := fmt.Fprintln(w, "# solarbom reference data: unit prices (GBP) and lookup tables"); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("failed to encode reference data: %w", err)
	}
	return nil
}

// SaveReferenceData writes r to path, refusing to overwrite unless force is set.
func SaveReferenceData(path string, r ReferenceData, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.InvalidConfig, "%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create reference data file: %w", err)
	}
	defer f.Close()

	return WriteReferenceData(f, r)
}

func intPtr(n int) *int { return &n }

func stringKeyed(in map[int]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[strconv.Itoa(k)] = v
	}
	return out
}
