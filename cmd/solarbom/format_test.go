package main

import (
	"encoding/json"
	"strings"
	"testing"

	"solarbom/internal/bom"
	"solarbom/internal/classify"
	"solarbom/internal/config"
	"solarbom/internal/grid"
	"solarbom/internal/pricing"
	"solarbom/internal/slogutil"
)

func testBOM(t *testing.T, g grid.Grid) *bom.BOM {
	t.Helper()
	e, err := bom.NewEngine(bom.Options{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	b, err := e.CalculateGrid(g, "DMEGC 405w", 1)
	if err != nil {
		t.Fatalf("CalculateGrid: %v", err)
	}
	return b
}

// withConfig installs cfg as the loaded configuration for one test.
func withConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	prevCfg, prevLogger, prevDir := appConfig, logger, projectDir
	appConfig = cfg
	logger = slogutil.NewDiscardLogger()
	projectDir = t.TempDir()
	t.Cleanup(func() {
		appConfig, logger, projectDir = prevCfg, prevLogger, prevDir
		sealRollFlag, cableTiesFlag, deepLeadFlag, classifierFlag = "", "", "", ""
		referenceFlag = ""
	})
}

func TestFormatResponse_JSON(t *testing.T) {
	resp := map[string]interface{}{
		"key": "value",
		"num": 42,
	}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, `"key": "value"`) {
		t.Error("JSON output missing expected key")
	}
	if !strings.Contains(result, `"num": 42`) {
		t.Error("JSON output missing expected number")
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	_, err := FormatResponse(map[string]string{"key": "value"}, "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}

func TestFormatJSON_BOM(t *testing.T) {
	b := testBOM(t, grid.Grid{{1}})

	result, err := FormatResponse(b, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		PanelType string        `json:"panelType"`
		Total     pricing.Money `json:"total"`
		QuoteID   string        `json:"quoteId"`
		Lines     []struct {
			Component string  `json:"component"`
			Quantity  int     `json:"quantity"`
			Price     float64 `json:"price"`
		} `json:"lines"`
	}
	if err := json.Unmarshal([]byte(result), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, result)
	}
	if decoded.PanelType != "DMEGC 405w" {
		t.Errorf("panelType = %q", decoded.PanelType)
	}
	if decoded.Total.String() != "432.51" {
		t.Errorf("total = %s, want 432.51", decoded.Total)
	}
	if decoded.QuoteID != b.QuoteID {
		t.Errorf("quoteId = %q, want %q", decoded.QuoteID, b.QuoteID)
	}
	if len(decoded.Lines) != pricing.NumComponents {
		t.Fatalf("len(lines) = %d, want %d", len(decoded.Lines), pricing.NumComponents)
	}
	if decoded.Lines[0].Component != "Solar Panels" || decoded.Lines[0].Price != 112 {
		t.Errorf("first line = %+v", decoded.Lines[0])
	}

	again, err := FormatResponse(b, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if again != result {
		t.Error("JSON output is not deterministic")
	}
}

func TestFormatHuman_BOM(t *testing.T) {
	b := testBOM(t, grid.Grid{{1, 1, 1}})

	result, err := FormatResponse(b, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Bill of materials: DMEGC 405w (3 panels, 1 string)",
		"COMPONENT",
		"Solar Panels",
		"Total",
		"Quote: " + b.QuoteID,
	} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q:\n%s", want, result)
		}
	}
	if strings.Contains(result, "Deep Lead") {
		t.Error("zero-quantity lines should be hidden")
	}
}

func TestFormatHuman_Classify(t *testing.T) {
	g := grid.Grid{{1, 1, 1}, {0, 1, 0}}
	c := classify.Default
	resp := &ClassifyResponseCLI{
		Mode:   c.Mode,
		Grid:   g,
		Cells:  c.Classify(g),
		Counts: c.CountCellTypes(g),
	}

	result, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "Cell types (additive)") {
		t.Errorf("missing header:\n%s", result)
	}
	lines := strings.Split(result, "\n")
	if len(lines) < 5 {
		t.Fatalf("too few lines:\n%s", result)
	}
	// Second grid row: empty, panel, empty.
	if !strings.HasPrefix(lines[4], "  . ") {
		t.Errorf("grid row = %q, want empty cell first", lines[4])
	}
	if !strings.Contains(result, "Panels") {
		t.Error("missing panel total")
	}
}

func TestCellCode(t *testing.T) {
	tests := []struct {
		set  classify.Set
		want string
	}{
		{classify.SetOf(classify.EmptyCell), ". "},
		{classify.SetOf(classify.MidPanel), "M "},
		{classify.SetOf(classify.TopEndPanel), "TE"},
		{classify.SetOf(classify.SinglePanel, classify.BottomLeftCorner), "S*"},
		{classify.SetOf(classify.TopLeftCorner), "TL"},
		{classify.SetOf(), "? "},
	}
	for _, tt := range tests {
		if got := cellCode(tt.set); got != tt.want {
			t.Errorf("cellCode(%v) = %q, want %q", tt.set, got, tt.want)
		}
	}
}

func TestFormatHuman_Stats(t *testing.T) {
	g := grid.Grid{{1, 1}, {1, 1}}
	resp := &StatsResponseCLI{Rows: g.Rows(), Cols: g.Cols(), Stats: grid.Measure(g)}

	result, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "Grid 2x2") {
		t.Errorf("missing header:\n%s", result)
	}
	if !strings.Contains(result, "2 rows x 2 columns") {
		t.Errorf("missing batten footprint:\n%s", result)
	}
}

func TestFormatHuman_Catalog(t *testing.T) {
	resp := newCatalogResponse(pricing.DefaultReferenceData(), "built-in defaults")

	if len(resp.Components) != pricing.NumComponents-1 {
		t.Errorf("len(Components) = %d, want %d", len(resp.Components), pricing.NumComponents-1)
	}

	result, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"DMEGC 405w", "£112.00", "Copper Nails", "Battens (rows x columns", "2100mm"} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFormatHuman_Rules(t *testing.T) {
	rules := bom.DefaultRules()
	rules.SealRoll = bom.SealRollPerRow
	resp := &RulesResponseCLI{Rules: rules, Descriptions: bom.Describe(rules)}

	result, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "seal roll: per-row") {
		t.Errorf("missing variants header:\n%s", result)
	}
	if !strings.Contains(result, "1 roll per horizontal row of panels") {
		t.Error("missing per-row seal roll description")
	}
}

func TestFormatHuman_UnknownFallsBackToJSON(t *testing.T) {
	result, err := FormatResponse(struct {
		Name string `json:"name"`
	}{"x"}, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, `"name": "x"`) {
		t.Errorf("expected JSON fallback, got %s", result)
	}
}

func TestResolveRules_FlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.CableTies = string(bom.CableTiesPerString)
	withConfig(t, cfg)

	deepLeadFlag = string(bom.DeepLeadWidestRow)
	rules, err := resolveRules()
	if err != nil {
		t.Fatalf("resolveRules: %v", err)
	}
	want := bom.Rules{
		SealRoll:  bom.SealRollPerTenPanels,
		CableTies: bom.CableTiesPerString,
		DeepLead:  bom.DeepLeadWidestRow,
	}
	if rules != want {
		t.Errorf("rules = %+v, want %+v", rules, want)
	}

	sealRollFlag = "bogus"
	if _, err := resolveRules(); err == nil {
		t.Error("expected error for unknown seal roll rule")
	}
}

func TestResolveClassifier(t *testing.T) {
	withConfig(t, config.DefaultConfig())

	c, err := resolveClassifier()
	if err != nil || c.Mode != classify.ModeAdditive {
		t.Errorf("resolveClassifier() = %v, %v", c, err)
	}

	classifierFlag = string(classify.ModeLegacyExclusive)
	c, err = resolveClassifier()
	if err != nil || c.Mode != classify.ModeLegacyExclusive {
		t.Errorf("resolveClassifier() = %v, %v", c, err)
	}
}

func TestReadLayout_Stdin(t *testing.T) {
	prev := layoutFormatFlag
	defer func() { layoutFormatFlag = prev }()

	layoutFormatFlag = "text"
	g, err := readLayout("-", strings.NewReader("110\n011\n"))
	if err != nil {
		t.Fatalf("readLayout: %v", err)
	}
	if !g.Equal(grid.Grid{{1, 1, 0}, {0, 1, 1}}) {
		t.Errorf("grid = %v", g)
	}

	layoutFormatFlag = "json"
	g, err = readLayout("-", strings.NewReader(`{"rows": [[1, 0], [1, 1]]}`))
	if err != nil {
		t.Fatalf("readLayout json: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 2 {
		t.Errorf("grid = %v", g)
	}
}

func TestNewEngine_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.SealRoll = string(bom.SealRollPerRow)
	withConfig(t, cfg)

	e, err := newEngine()
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if e.Rules().SealRoll != bom.SealRollPerRow {
		t.Errorf("SealRoll = %q, want per-row", e.Rules().SealRoll)
	}

	referenceFlag = "does-not-exist.toml"
	if _, err := newEngine(); err == nil {
		t.Error("expected error for a missing reference data file")
	}
}
