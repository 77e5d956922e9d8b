// Package testutil loads the layout fixtures under testdata/layouts and
// checks BOM results against their expectation files.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// Expectation is the content of a <name>.expect.json file. Quantities may
// list a subset of components; only the listed ones are checked.
type Expectation struct {
	PanelType  string         `json:"panelType"`
	Strings    int            `json:"strings"`
	Panels     int            `json:"panels"`
	Total      string         `json:"total,omitempty"`
	Quantities map[string]int `json:"quantities"`
}

// LayoutFixture is one layout file with its expectation.
type LayoutFixture struct {
	// Name is the file name without extension, e.g. "single"
	Name string

	// Path is the absolute path to the layout file
	Path string

	// ExpectPath is the absolute path to the expectation file
	ExpectPath string

	Expect Expectation
}

const expectSuffix = ".expect.json"

// LoadLayouts loads every fixture in testdata/layouts, sorted by name.
func LoadLayouts(t *testing.T) []*LayoutFixture {
	t.Helper()

	root := getFixturesRoot(t)
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read fixtures: %v", err)
	}

	var fixtures []*LayoutFixture
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, expectSuffix) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		f := &LayoutFixture{
			Name:       base,
			Path:       filepath.Join(root, name),
			ExpectPath: filepath.Join(root, base+expectSuffix),
		}

		data, err := os.ReadFile(f.ExpectPath)
		if err != nil {
			t.Fatalf("Expectation missing for %s: %v", name, err)
		}
		if err := json.Unmarshal(data, &f.Expect); err != nil {
			t.Fatalf("Failed to parse %s: %v", f.ExpectPath, err)
		}
		fixtures = append(fixtures, f)
	}

	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].Name < fixtures[j].Name })
	return fixtures
}

// getFixturesRoot returns the absolute path to testdata/layouts/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// Navigate from internal/testutil to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	root := filepath.Join(projectRoot, "testdata", "layouts")

	if _, err := os.Stat(root); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", root)
	}
	return root
}
