package bom

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarbom/internal/classify"
	"solarbom/internal/errors"
	"solarbom/internal/grid"
	"solarbom/internal/pricing"
	"solarbom/internal/slogutil"
)

var moneyEqual = cmp.Comparer(func(a, b pricing.Money) bool { return a.Equal(b) })

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(opts)
	require.NoError(t, err)
	return e
}

func quantities(b *BOM) map[pricing.Component]int {
	out := make(map[pricing.Component]int, len(b.Lines))
	for _, l := range b.Lines {
		out[l.Component] = l.Quantity
	}
	return out
}

func TestCalculate_SinglePanel(t *testing.T) {
	e := newEngine(t, Options{})
	g := grid.Grid{{1}}

	b, err := e.Calculate(classify.CountCellTypes(g), g, "DMEGC 405w", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Quantity(pricing.SolarPanels))
	assert.Equal(t, 2, b.Quantity(pricing.HalfPortraitFrames))
	assert.Equal(t, 2, b.Quantity(pricing.DCLead))
	assert.Equal(t, 1, b.Quantity(pricing.DCLiveSticker))
	assert.Equal(t, 4, b.Quantity(pricing.EndClamp))
	assert.Equal(t, 2, b.Quantity(pricing.CarpetFlashing))
	assert.Equal(t, 6, b.Quantity(pricing.Battens))
	assert.Equal(t, 2, b.Quantity(pricing.Lead))
	assert.Equal(t, 6, b.Quantity(pricing.CopperNails))
	assert.Equal(t, "432.51", b.Total.String())

	panels, ok := b.Get(pricing.SolarPanels)
	require.True(t, ok)
	assert.Equal(t, "Solar Panels", panels.Name)
	assert.Equal(t, "112.00", panels.Price.String())

	frames, _ := b.Get(pricing.HalfPortraitFrames)
	assert.Equal(t, "2 x £19.52 = £39.04 (2 per panel x 1 panel)", frames.Explanation)
}

func TestCalculate_SingleRow(t *testing.T) {
	e := newEngine(t, Options{})
	g := grid.Grid{{1, 1, 1}}

	b, err := e.CalculateGrid(g, "LONGi 405w", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Counts.Of(classify.EndPanel))
	assert.Equal(t, 1, b.Counts.Of(classify.MidPanel))
	assert.Equal(t, grid.Dimensions{Rows: 1, Columns: 3}, b.Stats.Battens)
	assert.Equal(t, 3, b.Stats.TotalPanels)

	want := map[pricing.Component]int{
		pricing.SolarPanels:          3,
		pricing.HalfPortraitFrames:   6,
		pricing.EndClamp:             4,
		pricing.MidClamp:             4,
		pricing.ScrewsBlack:          8,
		pricing.ScrewsSilver:         18,
		pricing.LateralFlashing:      4,
		pricing.LateralFlashingHooks: 4,
		pricing.LateralFlashingNails: 4,
		pricing.TopFlashing:          1,
		pricing.CarpetFlashing:       2,
		pricing.KickerBars:           3,
		pricing.KickerBarHooks:       6,
		pricing.KickerBarNails:       6,
		pricing.SealRoll:             1,
		pricing.PanelWedge:           1,
		pricing.Battens:              18,
		pricing.WireCloutNails:       90,
		pricing.Lead:                 3,
		pricing.DeepLead:             0,
		pricing.CopperNails:          9,
		pricing.DCLead:               2,
		pricing.DCLiveSticker:        1,
		pricing.ArcBox:               1,
		pricing.ArcBoxBracket:        1,
		pricing.CableTies:            5,
		pricing.RooferGuideSheet:     1,
	}
	if diff := cmp.Diff(want, quantities(b)); diff != "" {
		t.Errorf("quantities mismatch (-want +got):\n%s", diff)
	}

	panels, _ := b.Get(pricing.SolarPanels)
	assert.Equal(t, "3 x £121.50 = £364.50 (1 per panel x 3 panels)", panels.Explanation)
}

func TestCalculate_LinesInComponentOrder(t *testing.T) {
	b, err := newEngine(t, Options{}).CalculateGrid(grid.Grid{{1, 1}, {1, 1}}, "DMEGC 405w", 2)
	require.NoError(t, err)

	require.Len(t, b.Lines, pricing.NumComponents)
	sum := pricing.Zero
	for i, l := range b.Lines {
		assert.Equal(t, pricing.Component(i), l.Component)
		assert.True(t, l.Price.Mul(l.Quantity).Equal(l.Total), l.Name)
		sum = sum.Add(l.Total)
	}
	assert.True(t, sum.Equal(b.Total), "total %s, sum of lines %s", b.Total, sum)
}

func TestCalculate_EmptyGrid(t *testing.T) {
	e := newEngine(t, Options{})
	g := grid.Square(grid.DefaultSize)

	b, err := e.CalculateGrid(g, "DMEGC 405w", 3)
	require.NoError(t, err)

	for _, l := range b.Lines {
		if l.Component == pricing.RooferGuideSheet {
			assert.Equal(t, 1, l.Quantity)
			continue
		}
		assert.Zero(t, l.Quantity, l.Name)
	}
	assert.Equal(t, "0.00", b.Total.String())
}

func TestCalculate_Deterministic(t *testing.T) {
	e := newEngine(t, Options{})
	g := grid.Grid{
		{1, 1, 0, 0},
		{1, 1, 1, 1},
		{0, 1, 1, 0},
	}

	first, err := e.CalculateGrid(g, "DMEGC 405w", 2)
	require.NoError(t, err)
	second, err := e.CalculateGrid(g.Clone(), "DMEGC 405w", 2)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, moneyEqual); diff != "" {
		t.Errorf("BOM differs between runs (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCalculate_ToggleRoundTrip(t *testing.T) {
	e := newEngine(t, Options{})
	base := grid.Grid{
		{0, 1, 1},
		{1, 1, 1},
		{0, 0, 0},
	}
	want, err := e.CalculateGrid(base, "LONGi 405w", 1)
	require.NoError(t, err)

	on, err := base.Toggle(2, 2)
	require.NoError(t, err)
	changed, err := e.CalculateGrid(on, "LONGi 405w", 1)
	require.NoError(t, err)
	assert.NotEqual(t, want.QuoteID, changed.QuoteID)

	off, err := on.Toggle(2, 2)
	require.NoError(t, err)
	got, err := e.CalculateGrid(off, "LONGi 405w", 1)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, moneyEqual); diff != "" {
		t.Errorf("BOM after toggle on/off differs (-want +got):\n%s", diff)
	}
}

func TestCalculate_PanelsMatchOrientationCounts(t *testing.T) {
	e := newEngine(t, Options{})
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		g := grid.New(1+rng.Intn(6), 1+rng.Intn(6))
		for r := range g {
			for c := range g[r] {
				g[r][c] = rng.Intn(2)
			}
		}
		b, err := e.CalculateGrid(g, "DMEGC 405w", 1)
		require.NoError(t, err)
		require.Equal(t, b.Counts.Orientation(), b.Quantity(pricing.SolarPanels), "grid:\n%s", g)
	}
}

func TestCalculate_Errors(t *testing.T) {
	e := newEngine(t, Options{})
	square := grid.Grid{{1, 0}, {0, 1}}

	tests := []struct {
		name      string
		g         grid.Grid
		panelType string
		strings   int
		code      errors.ErrorCode
	}{
		{"ragged grid", grid.Grid{{1, 1}, {1}}, "DMEGC 405w", 1, errors.InvalidGrid},
		{"empty grid", grid.Grid{}, "DMEGC 405w", 1, errors.InvalidGrid},
		{"non-binary cell", grid.Grid{{2}}, "DMEGC 405w", 1, errors.InvalidGrid},
		{"unknown panel", square, "Acme 999w", 1, errors.UnknownPanelType},
		{"zero strings", square, "DMEGC 405w", 0, errors.InvalidStringCount},
		{"negative strings", square, "DMEGC 405w", -2, errors.InvalidStringCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.Calculate(classify.CountCellTypes(tt.g), tt.g, tt.panelType, tt.strings)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.Equal(t, tt.code, errors.CodeOf(err), "got %v", err)
		})
	}
}

func TestCalculate_RuleVariants(t *testing.T) {
	g := grid.Grid{
		{1, 1, 0},
		{1, 0, 1},
		{1, 1, 1},
	}

	tests := []struct {
		name  string
		rules Rules
		want  map[pricing.Component]int
	}{
		{
			name:  "defaults",
			rules: DefaultRules(),
			want:  map[pricing.Component]int{pricing.SealRoll: 1, pricing.CableTies: 5, pricing.DeepLead: 1},
		},
		{
			name:  "per row seal roll",
			rules: Rules{SealRoll: SealRollPerRow},
			want:  map[pricing.Component]int{pricing.SealRoll: 3, pricing.CableTies: 5, pricing.DeepLead: 1},
		},
		{
			name:  "per string cable ties",
			rules: Rules{CableTies: CableTiesPerString},
			want:  map[pricing.Component]int{pricing.SealRoll: 1, pricing.CableTies: 10, pricing.DeepLead: 1},
		},
		{
			name:  "widest row deep lead",
			rules: Rules{DeepLead: DeepLeadWidestRow},
			want:  map[pricing.Component]int{pricing.SealRoll: 1, pricing.CableTies: 5, pricing.DeepLead: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := newEngine(t, Options{Rules: tt.rules}).CalculateGrid(g, "DMEGC 405w", 2)
			require.NoError(t, err)
			for comp, want := range tt.want {
				assert.Equal(t, want, b.Quantity(comp), comp.Name())
			}
			assert.Equal(t, 3, b.Quantity(pricing.Lead))
			assert.Equal(t, 9, b.Quantity(pricing.CopperNails))
		})
	}
}

func TestCalculate_QuoteID(t *testing.T) {
	e := newEngine(t, Options{})
	g := grid.Grid{{1, 1}}

	one, err := e.CalculateGrid(g, "DMEGC 405w", 1)
	require.NoError(t, err)
	two, err := e.CalculateGrid(g, "DMEGC 405w", 2)
	require.NoError(t, err)
	again, err := e.CalculateGrid(g, "DMEGC 405w", 1)
	require.NoError(t, err)

	id, err := uuid.Parse(one.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
	assert.Equal(t, one.QuoteID, again.QuoteID)
	assert.NotEqual(t, one.QuoteID, two.QuoteID)
}

func TestNewEngine_CustomCatalog(t *testing.T) {
	cat := pricing.DefaultCatalog()
	cat.Panels["Aiko 450w"] = pricing.MustMoney("140.00")
	cat.Components[pricing.Battens] = pricing.MustMoney("1.00")

	e := newEngine(t, Options{Catalog: cat})
	b, err := e.CalculateGrid(grid.Grid{{1}}, "Aiko 450w", 1)
	require.NoError(t, err)

	battens, _ := b.Get(pricing.Battens)
	assert.Equal(t, "6 x £1.00 = £6.00 (batten table for 1 rows x 1 columns)", battens.Explanation)

	cat.Panels["Aiko 450w"] = pricing.MustMoney("1.00")
	panels, _ := b.Get(pricing.SolarPanels)
	assert.Equal(t, "140.00", panels.Price.String())
	_, err = e.Catalog().PanelPrice("Aiko 450w")
	assert.NoError(t, err)
}

func TestNewEngine_InvalidOptions(t *testing.T) {
	_, err := NewEngine(Options{Rules: Rules{SealRoll: "per-week"}})
	assert.True(t, errors.HasCode(err, errors.InvalidConfig), "got %v", err)

	_, err = NewEngine(Options{Classifier: classify.Classifier{Mode: "fuzzy"}})
	assert.True(t, errors.HasCode(err, errors.InvalidConfig), "got %v", err)

	bad := pricing.DefaultCatalog()
	bad.Panels["DMEGC 405w"] = pricing.MustMoney("-5")
	_, err = NewEngine(Options{Catalog: bad})
	assert.True(t, errors.HasCode(err, errors.InvalidConfig), "got %v", err)
}

func TestNewEngine_LegacyClassifier(t *testing.T) {
	ring := grid.Grid{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	}
	legacy := newEngine(t, Options{Classifier: classify.Classifier{Mode: classify.ModeLegacyExclusive}})

	b, err := legacy.CalculateGrid(ring, "DMEGC 405w", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Counts.Of(classify.BottomLeftCorner))
	assert.Equal(t, 1, b.Counts.Of(classify.BottomRightCorner))
	assert.Equal(t, 2, b.Quantity(pricing.CarpetFlashing))
	assert.Equal(t, 8, b.Quantity(pricing.SolarPanels))
}

func TestEngine_LogsCalculation(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(t, Options{Logger: slogutil.NewLogger(&buf, slog.LevelDebug)})

	_, err := e.CalculateGrid(grid.Grid{{1}}, "DMEGC 405w", 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Calculated BOM")
	assert.Contains(t, buf.String(), "panels=1")
}

func TestParseRules(t *testing.T) {
	r, err := ParseRules("", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), r)

	r, err = ParseRules("per-row", "per-string", "widest-row")
	require.NoError(t, err)
	assert.Equal(t, Rules{SealRoll: SealRollPerRow, CableTies: CableTiesPerString, DeepLead: DeepLeadWidestRow}, r)

	for _, args := range [][3]string{
		{"daily", "", ""},
		{"", "per-panel", ""},
		{"", "", "deepest"},
	} {
		_, err := ParseRules(args[0], args[1], args[2])
		assert.True(t, errors.HasCode(err, errors.InvalidConfig), "args %v", args)
	}
}

func TestDescribe(t *testing.T) {
	rules := Describe(DefaultRules())
	require.Len(t, rules, pricing.NumComponents)
	for i, r := range rules {
		assert.Equal(t, pricing.Component(i), r.Component)
		assert.NotEmpty(t, r.Rule, r.Name)
	}
	assert.Equal(t, "3 per piece of lead", rules[pricing.CopperNails].Rule)
	assert.Equal(t, "1 roll per 10 panels (rounded up)", rules[pricing.SealRoll].Rule)

	perRow := Describe(Rules{SealRoll: SealRollPerRow, CableTies: CableTiesPerString})
	assert.Equal(t, "1 roll per horizontal row of panels", perRow[pricing.SealRoll].Rule)
	assert.Equal(t, "5 per string", perRow[pricing.CableTies].Rule)
}
