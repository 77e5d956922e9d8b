package testutil

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	// updateExpect rewrites expectation files from the current results.
	// Use: go test ./internal/bom -run TestLayoutFixtures -update
	updateExpect = flag.Bool("update", false, "update layout expectation files")

	// layoutFilter restricts which fixtures run.
	// Use: go test ./internal/bom -run TestLayoutFixtures -layouts=single,row
	layoutFilter = flag.String("layouts", "", "filter fixtures (comma-separated names)")
)

// ShouldUpdate returns true if expectation files should be rewritten.
func ShouldUpdate() bool {
	return *updateExpect
}

// ShouldRun reports whether the named fixture passes the -layouts filter.
func ShouldRun(name string) bool {
	if *layoutFilter == "" {
		return true
	}
	for _, n := range strings.Split(*layoutFilter, ",") {
		if strings.TrimSpace(n) == name {
			return true
		}
	}
	return false
}

// ForEachLayout runs fn as a subtest for each fixture.
func ForEachLayout(t *testing.T, fn func(t *testing.T, f *LayoutFixture)) {
	t.Helper()

	fixtures := LoadLayouts(t)
	if len(fixtures) == 0 {
		t.Skip("No fixtures available")
	}

	for _, f := range fixtures {
		if !ShouldRun(f.Name) {
			continue
		}
		t.Run(f.Name, func(t *testing.T) {
			fn(t, f)
		})
	}
}

// CheckExpectation compares got against the fixture's expectation. Only the
// quantities the expectation lists are compared, and the total only when set.
// With -update the expectation file is replaced by got instead.
func CheckExpectation(t *testing.T, f *LayoutFixture, got Expectation) {
	t.Helper()

	if *updateExpect {
		WriteExpectation(t, f, got)
		t.Logf("Updated expectation: %s", f.ExpectPath)
		return
	}

	want := f.Expect
	subset := Expectation{
		PanelType:  got.PanelType,
		Strings:    got.Strings,
		Panels:     got.Panels,
		Quantities: make(map[string]int, len(want.Quantities)),
	}
	if want.Total != "" {
		subset.Total = got.Total
	}
	for name := range want.Quantities {
		q, ok := got.Quantities[name]
		if !ok {
			q = -1
		}
		subset.Quantities[name] = q
	}

	if diff := cmp.Diff(want, subset); diff != "" {
		t.Fatalf("Expectation mismatch for %s (-want +got):\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			f.Name, diff, t.Name())
	}
}

// WriteExpectation writes e as the fixture's expectation file.
func WriteExpectation(t *testing.T, f *LayoutFixture, e Expectation) {
	t.Helper()

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal expectation: %v", err)
	}
	if err := os.WriteFile(f.ExpectPath, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("Failed to write expectation: %v", err)
	}
	f.Expect = e
}
