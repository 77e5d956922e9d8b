package bom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solarbom/internal/grid"
	"solarbom/internal/testutil"
)

func TestLayoutFixtures(t *testing.T) {
	e := newEngine(t, Options{})

	testutil.ForEachLayout(t, func(t *testing.T, f *testutil.LayoutFixture) {
		g, err := grid.ParseFile(f.Path)
		require.NoError(t, err)

		b, err := e.CalculateGrid(g, f.Expect.PanelType, f.Expect.Strings)
		require.NoError(t, err)

		got := testutil.Expectation{
			PanelType:  b.PanelType,
			Strings:    b.Strings,
			Panels:     b.Stats.TotalPanels,
			Total:      b.Total.String(),
			Quantities: make(map[string]int, len(b.Lines)),
		}
		for _, l := range b.Lines {
			got.Quantities[l.Name] = l.Quantity
		}
		testutil.CheckExpectation(t, f, got)
	})
}
