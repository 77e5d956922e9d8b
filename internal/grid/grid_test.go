package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarbom/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr bool
	}{
		{"square", Square(3), false},
		{"rectangle", Grid{{1, 1, 1}}, false},
		{"default size", Square(DefaultSize), false},
		{"no rows", Grid{}, true},
		{"nil", nil, true},
		{"no columns", Grid{{}}, true},
		{"ragged", Grid{{1, 0}, {1}}, true},
		{"non binary", Grid{{1, 2}}, true},
		{"negative", Grid{{0, -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.InvalidGrid, errors.CodeOf(err))
		})
	}
}

func TestOccupied_OffGridIsEmpty(t *testing.T) {
	g := Grid{{1}}
	cases := [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	for _, c := range cases {
		assert.False(t, g.Occupied(c[0], c[1]), "Occupied(%d,%d)", c[0], c[1])
	}
	assert.True(t, g.Occupied(0, 0))
}

func TestToggle_DoesNotMutateReceiver(t *testing.T) {
	g := Square(3)

	on, err := g.Toggle(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Empty, g[1][1], "Toggle mutated the receiver")
	assert.Equal(t, Panel, on[1][1])

	off, err := on.Toggle(1, 1)
	require.NoError(t, err)
	assert.True(t, off.Equal(g), "toggling twice should restore the grid, got:\n%s", off)
}

func TestToggle_OutOfRange(t *testing.T) {
	_, err := Square(2).Toggle(2, 0)
	assert.True(t, errors.HasCode(err, errors.InvalidGrid), "Toggle() error = %v", err)
}

func TestClone_IsDeep(t *testing.T) {
	g := Grid{{1, 0}, {0, 1}}
	c := g.Clone()
	c[0][0] = 0
	assert.Equal(t, Panel, g[0][0], "Clone shares row storage with the original")
}

func TestString(t *testing.T) {
	g := Grid{{1, 0, 1}, {0, 1, 0}}
	assert.Equal(t, "101\n010\n", g.String())
}
