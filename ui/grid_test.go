package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kastheco/codex/catalog"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 1},
		{40, 1},
		{68, 2},
		{102, 3},
		{300, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Columns(tt.width), "width %d", tt.width)
	}
}

func newTestGrid(width, height int) *Grid {
	g := NewGrid()
	g.SetSize(width, height)
	g.SetItems(catalog.List())
	return g
}

func TestGrid_MoveWithinAndAcrossRows(t *testing.T) {
	g := newTestGrid(102, 40) // 3 columns

	g.Move(1, 0)
	assert.Equal(t, 1, g.SelectedIndex())
	g.Move(0, 1)
	assert.Equal(t, 4, g.SelectedIndex())
	g.Move(-1, 0)
	g.Move(-1, 0)
	assert.Equal(t, 2, g.SelectedIndex(), "left from first column wraps to previous row")
	g.Move(0, -5)
	assert.Equal(t, 2, g.SelectedIndex(), "up past the top stays in the column")
	g.Move(0, 100)
	assert.Equal(t, 20, g.SelectedIndex(), "down past the end clamps to the last item")
	g.Move(1, 0)
	assert.Equal(t, 20, g.SelectedIndex())
}

func TestGrid_SetItemsKeepsSelectionByName(t *testing.T) {
	g := newTestGrid(102, 40)
	require.True(t, g.Select(4))
	want, _ := g.Selected()
	assert.Equal(t, "Persona", want.Name)

	g.SetItems(catalog.Visible(catalog.List(), catalog.FilterState{Category: catalog.CategoryBrand}))
	got, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "Persona", got.Name)
	assert.Equal(t, 1, g.SelectedIndex())

	g.SetItems(catalog.Visible(catalog.List(), catalog.FilterState{Category: catalog.CategoryGrowth}))
	assert.Equal(t, 0, g.SelectedIndex(), "selection resets when the item is gone")
}

func TestGrid_EmptyState(t *testing.T) {
	g := newTestGrid(102, 40)
	g.SetItems(nil)
	_, ok := g.Selected()
	assert.False(t, ok)
	g.Move(1, 1)
	assert.Contains(t, ansi.Strip(g.String()), EmptyGridMessage)
}

func TestGrid_CardsReflectSessionState(t *testing.T) {
	g := newTestGrid(102, 40)

	out := ansi.Strip(g.String())
	assert.Contains(t, out, "SECURED")
	assert.NotContains(t, out, "UNLOCKED")
	assert.Contains(t, out, "MOD_01")
	assert.Contains(t, out, "Business Modeller")

	g.SetUnlocked(true)
	out = ansi.Strip(g.String())
	assert.Contains(t, out, "UNLOCKED")
	assert.NotContains(t, out, "SECURED")
}

func TestGrid_ScrollsToSelection(t *testing.T) {
	g := newTestGrid(102, 2*CardHeight+1) // two rows visible
	require.True(t, g.Select(20))

	out := ansi.Strip(g.String())
	assert.Contains(t, out, "Competitor Analysis")
	assert.NotContains(t, out, "Business Modeller")
	assert.Contains(t, out, "rows 6-7 of 7")
}

func TestClampLines(t *testing.T) {
	lines := clampLines("one two three four five six seven eight", 10, 2)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "…"))
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 10)
	}

	assert.Equal(t, []string{"short"}, clampLines("short", 10, 2))
	assert.Nil(t, clampLines("anything", 0, 2))
}

func TestModuleLabel(t *testing.T) {
	assert.Equal(t, "MOD_01", ModuleLabel(0))
	assert.Equal(t, "MOD_010", ModuleLabel(9))
}
